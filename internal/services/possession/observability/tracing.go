// Package observability wraps possession collaborators with OpenTelemetry spans.
//
// Wrappers never change outcomes: every error is returned as the same value the
// collaborator produced, so the coordinator's propagation contract holds with
// or without tracing.
package observability

import (
	"context"

	"github.com/louisbranch/possession/internal/services/possession/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/louisbranch/possession/internal/services/possession"

const (
	spanNextDecision  = "possession.next_decision"
	spanExecuteAction = "possession.execute_action"
	attrCharacterID   = "possession.character_id"
	attrPlayerControl = "possession.player_control"
)

// Option configures a traced collaborator.
type Option func(*options)

type options struct {
	provider    trace.TracerProvider
	characterID string
}

// WithTracerProvider overrides the global tracer provider.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(o *options) {
		o.provider = provider
	}
}

// WithCharacterID tags spans with the possessed character.
func WithCharacterID(characterID string) Option {
	return func(o *options) {
		o.characterID = characterID
	}
}

func newTracer(opts []Option) (trace.Tracer, []attribute.KeyValue) {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}
	provider := cfg.provider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	var attrs []attribute.KeyValue
	if cfg.characterID != "" {
		attrs = append(attrs, attribute.String(attrCharacterID, cfg.characterID))
	}
	return provider.Tracer(instrumentationName), attrs
}

// TracedSource records a span around each decision fetch.
type TracedSource struct {
	next   domain.DecisionSource
	tracer trace.Tracer
	attrs  []attribute.KeyValue
}

// TraceSource wraps source. A nil source stays nil so coordinator construction
// still reports it as missing.
func TraceSource(source domain.DecisionSource, opts ...Option) domain.DecisionSource {
	if source == nil {
		return nil
	}
	tracer, attrs := newTracer(opts)
	return &TracedSource{next: source, tracer: tracer, attrs: attrs}
}

// NextDecision implements domain.DecisionSource.
func (s *TracedSource) NextDecision(ctx context.Context) (domain.Decision, error) {
	ctx, span := s.tracer.Start(ctx, spanNextDecision, trace.WithAttributes(s.attrs...))
	defer span.End()

	decision, err := s.next.NextDecision(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if static, ok := decision.(domain.StaticDecision); ok {
		span.SetAttributes(attribute.Bool(attrPlayerControl, static.PlayerControl))
	}
	return decision, nil
}

// TracedExecutor records a span around each dispatched action.
type TracedExecutor struct {
	next   domain.ActionExecutor
	tracer trace.Tracer
	attrs  []attribute.KeyValue
}

// TraceExecutor wraps executor. A nil executor stays nil.
func TraceExecutor(executor domain.ActionExecutor, opts ...Option) domain.ActionExecutor {
	if executor == nil {
		return nil
	}
	tracer, attrs := newTracer(opts)
	return &TracedExecutor{next: executor, tracer: tracer, attrs: attrs}
}

// Execute implements domain.ActionExecutor.
func (e *TracedExecutor) Execute(ctx context.Context) error {
	ctx, span := e.tracer.Start(ctx, spanExecuteAction, trace.WithAttributes(e.attrs...))
	defer span.End()

	if err := e.next.Execute(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
