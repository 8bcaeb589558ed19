package srv

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/tuskshop/pkg/log"
)

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// StartServices launches every service in its own goroutine. Start errors are
// delivered on the returned channel, which has room for all of them.
func StartServices(ctx context.Context, services []Service) <-chan error {
	errs := make(chan error, len(services))
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				errs <- fmt.Errorf("%T failed to start: %w", service, err)
			}
		}(service)
	}
	return errs
}

// ShutdownServices waits for ctx to end, then stops services in reverse start
// order, giving them timeout in total.
func ShutdownServices(ctx context.Context, timeout time.Duration, services []Service) {
	<-ctx.Done()

	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(sctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
	}
}
