package infra

import (
	"context"
	"errors"

	"github.com/At1ass/Bakery/internal/domain"
)

// doOnce runs call, retrying exactly one time when the failure is a
// dependency failure (timeout, transport error, 5xx). Business errors
// such as an invalid credential never retry, and dependency calls never
// retry beyond once; the whole operation is safe to resubmit by the
// caller instead.
func doOnce(ctx context.Context, call func(ctx context.Context) error) error {
	err := call(ctx)
	if err == nil || ctx.Err() != nil || !errors.Is(err, domain.ErrDependencyUnavailable) {
		return err
	}
	return call(ctx)
}
