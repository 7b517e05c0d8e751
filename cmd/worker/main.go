// worker consumes intake events from Kafka and creates the matching
// orders.
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

	app.NewWorkerRunner().MustRun(app.MustBuildWorkerContainer(ctx))
}
