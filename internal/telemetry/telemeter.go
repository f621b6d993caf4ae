// Package telemetry provides a way to collect traces from function execution.
package telemetry

import (
	"context"
	"io"

	"github.com/gruntwork-io/treehook/internal/errors"
)

type Telemeter struct {
	*Tracer
}

// NewTelemeter initializes the telemetry collector.
func NewTelemeter(ctx context.Context, appName, appVersion string, writer io.Writer, opts *Options) (*Telemeter, error) {
	if opts == nil {
		opts = &Options{}
	}

	tracer, err := NewTracer(ctx, appName, appVersion, writer, opts)
	if err != nil {
		return nil, errors.New(err)
	}

	return &Telemeter{
		Tracer: tracer,
	}, nil
}

// Shutdown flushes pending spans and shuts down the telemetry provider.
func (tlm *Telemeter) Shutdown(ctx context.Context) error {
	if tlm == nil || tlm.Tracer == nil || tlm.Tracer.provider == nil {
		return nil
	}

	if err := tlm.Tracer.provider.Shutdown(ctx); err != nil {
		return errors.New(err)
	}

	tlm.Tracer.provider = nil

	return nil
}

// Collect collects traces from function execution.
func (tlm *Telemeter) Collect(ctx context.Context, name string, attrs map[string]any, fn func(childCtx context.Context) error) error {
	if tlm == nil {
		return fn(ctx)
	}

	return tlm.Trace(ctx, name, attrs, fn)
}
