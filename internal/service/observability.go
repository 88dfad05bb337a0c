package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/alexanderramin/campaignos/internal/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// UseCaseEvent describes one finished service call.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Err       error
	Fields    map[string]any
}

func (e UseCaseEvent) Success() bool { return e.Err == nil }

// Rejected reports a failure caused by the caller's input, such as a bad
// date range or an unknown swimlane, rather than by storage.
func (e UseCaseEvent) Rejected() bool {
	return errors.Is(e.Err, domain.ErrInvalid) || errors.Is(e.Err, domain.ErrNotFound)
}

type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type zapUseCaseObserver struct {
	logger *zap.Logger
}

// NewZapUseCaseObserver writes one "use_case" entry per call: info on
// success, warn when the input was rejected, error otherwise.
func NewZapUseCaseObserver(logger *zap.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &zapUseCaseObserver{logger: logger.Named("usecase")}
}

func (o *zapUseCaseObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	level := zapcore.InfoLevel
	switch {
	case e.Success():
	case e.Rejected():
		level = zapcore.WarnLevel
	default:
		level = zapcore.ErrorLevel
	}
	ce := o.logger.Check(level, "use_case")
	if ce == nil {
		return
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]zap.Field, 0, len(keys)+4)
	fields = append(fields,
		zap.String("use_case", e.Name),
		zap.Duration("took", e.Duration),
		zap.Bool("success", e.Success()),
	)
	for _, k := range keys {
		fields = append(fields, zap.Any(k, e.Fields[k]))
	}
	if e.Err != nil {
		fields = append(fields, zap.Error(e.Err))
	}
	ce.Write(fields...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// observe times a use case. Defer the returned func with a pointer to the
// named error result; fields may be filled in before it runs.
func observe(ctx context.Context, obs UseCaseObserver, name string, fields map[string]any) func(err *error) {
	start := time.Now().UTC()
	return func(err *error) {
		obs.ObserveUseCase(ctx, UseCaseEvent{
			Name:      name,
			StartedAt: start,
			Duration:  time.Since(start),
			Err:       *err,
			Fields:    fields,
		})
	}
}
