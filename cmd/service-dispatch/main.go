// service-dispatch runs the HTTP API for orders, partners and live
// dispatch events.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"dispatch-platform-go/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app.NewRunner().MustRun(app.MustBuildContainer(ctx))
}
