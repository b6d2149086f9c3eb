// Package possession exposes a possessed character's coordinator over gRPC.
package possession

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/louisbranch/possession/internal/platform/errors"
	"github.com/louisbranch/possession/internal/platform/requestctx"
	"github.com/louisbranch/possession/internal/services/possession/domain"
	"github.com/louisbranch/possession/internal/services/possession/storage"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// LocaleHeader selects the locale of user-facing error messages.
const LocaleHeader = "x-locale"

// Host serializes access to one character's coordinator.
type Host interface {
	RefreshDecision(ctx context.Context) error
	PerformAction(ctx context.Context) (bool, error)
	State() domain.State
}

// TickJournal reads recorded game loop ticks.
type TickJournal interface {
	ListTicks(ctx context.Context, characterID string, limit int) ([]storage.TickRecord, error)
}

// Service implements PossessionServiceServer on top of a Host.
type Service struct {
	host        Host
	journal     TickJournal
	characterID string
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithTickJournal exposes characterID's tick journal through ListTicks.
func WithTickJournal(journal TickJournal, characterID string) ServiceOption {
	return func(s *Service) {
		s.journal = journal
		s.characterID = strings.TrimSpace(characterID)
	}
}

// NewService returns a possession gRPC service.
func NewService(host Host, opts ...ServiceOption) *Service {
	s := &Service{host: host}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RefreshDecision pulls the next AI decision.
func (s *Service) RefreshDecision(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	if s == nil || s.host == nil {
		return nil, status.Error(apperrors.CodeUnknown.GRPCCode(), "possession host is not configured")
	}
	if err := s.host.RefreshDecision(ctx); err != nil {
		return nil, toStatus(ctx, err)
	}
	return &emptypb.Empty{}, nil
}

// PerformAction attempts the gated action and reports whether it ran.
func (s *Service) PerformAction(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.BoolValue, error) {
	if s == nil || s.host == nil {
		return nil, status.Error(apperrors.CodeUnknown.GRPCCode(), "possession host is not configured")
	}
	dispatched, err := s.host.PerformAction(ctx)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return wrapperspb.Bool(dispatched), nil
}

// GetState reports the coordinator state.
func (s *Service) GetState(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	if s == nil || s.host == nil {
		return nil, status.Error(apperrors.CodeUnknown.GRPCCode(), "possession host is not configured")
	}
	return wrapperspb.String(string(s.host.State())), nil
}

// ListTicks returns the newest journal entries. A non-positive limit uses
// DefaultTickPageSize; larger limits are capped at MaxTickPageSize.
func (s *Service) ListTicks(ctx context.Context, in *wrapperspb.Int32Value) (*structpb.ListValue, error) {
	if s == nil || s.journal == nil {
		return nil, status.Error(codes.Unimplemented, "tick journal is not configured")
	}
	limit := int(in.GetValue())
	if limit <= 0 {
		limit = DefaultTickPageSize
	}
	limit = min(limit, MaxTickPageSize)
	records, err := s.journal.ListTicks(ctx, s.characterID, limit)
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return ticksToList(records)
}

// toStatus keeps the original message as the status message; only the code
// and details are added at this edge.
func toStatus(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return status.FromContextError(err).Err()
	}
	locale := localeFromContext(ctx)
	if apperrors.GetCode(err) == apperrors.CodeUnknown {
		return apperrors.Wrap(apperrors.CodeCollaboratorFailed, err.Error(), err).ToGRPCStatus(locale)
	}
	var domainErr *apperrors.Error
	errors.As(err, &domainErr)
	return domainErr.ToGRPCStatus(locale)
}

func localeFromContext(ctx context.Context) string {
	if locale := requestctx.LocaleFromContext(ctx); locale != "" {
		return locale
	}
	return localeFromMetadata(ctx)
}

func localeFromMetadata(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(LocaleHeader)
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

var _ PossessionServiceServer = (*Service)(nil)
