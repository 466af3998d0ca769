package translator

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// ErrAllServicesFailed is returned by Chain.Translate when no service in the
// chain produced a translation.
var ErrAllServicesFailed = errors.New("all translation services failed")

// Chain tries each service in order and returns the first successful result.
// Fallback is an explicit policy over tagged results: a service failed when
// its call returned an error or the result carries a non-empty Error field.
// There is no retry within a service and no backoff; each service gets one
// attempt per request.
type Chain struct {
	services []TranslationService
	timeout  time.Duration
	logger   *zap.Logger
}

// NewChain builds a fallback chain. timeout bounds each individual service
// call; ≤ 0 disables the per-call bound (the providers still apply their own
// HTTP client timeouts).
func NewChain(services []TranslationService, timeout time.Duration, logger *zap.Logger) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{services: services, timeout: timeout, logger: logger}
}

// Names lists the chained services in fallback order.
func (c *Chain) Names() []string {
	names := make([]string, len(c.services))
	for i, svc := range c.services {
		names[i] = svc.Name()
	}
	return names
}

// Translate walks the chain. The returned ServiceResult always identifies
// the service that produced it; on total failure the last failed result is
// returned together with ErrAllServicesFailed so callers still see which
// service failed and why.
func (c *Chain) Translate(ctx context.Context, cfg ServiceConfig, req TranslateRequest) (*ServiceResult, error) {
	if len(c.services) == 0 {
		return &ServiceResult{Error: "no services configured"}, ErrAllServicesFailed
	}

	var last *ServiceResult
	for _, svc := range c.services {
		callCtx := ctx
		cancel := func() {}
		if c.timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		}

		res, err := svc.Translate(callCtx, cfg, req)
		cancel()

		if err == nil && res != nil && res.Error == "" {
			return res, nil
		}

		if res == nil {
			res = &ServiceResult{ServiceName: svc.Name()}
			if err != nil {
				res.Error = err.Error()
			}
		}
		c.logger.Warn("translation service failed, trying next",
			zap.String("service", svc.Name()),
			zap.String("detail", res.Error),
			zap.Error(err))
		last = res
	}

	return last, ErrAllServicesFailed
}
