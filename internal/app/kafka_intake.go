package app

import (
	"context"
	"errors"

	"dispatch-platform-go/internal/apperr"
	"dispatch-platform-go/internal/intake"
	"dispatch-platform-go/internal/transport/kafka"
)

// makeIntakeHandler adapts the intake processor to the consumer contract.
// Validation failures are permanent: redelivering a malformed event can never
// succeed, so the consumer marks and skips it instead of retrying forever.
func makeIntakeHandler(p *intake.Processor) kafka.HandleFunc {
	return func(ctx context.Context, event intake.Event) error {
		err := p.Handle(ctx, event)
		if err != nil && errors.Is(err, apperr.ErrInvalid) {
			return kafka.Permanent(err)
		}
		return err
	}
}
