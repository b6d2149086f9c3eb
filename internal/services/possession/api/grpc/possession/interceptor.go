package possession

import (
	"context"

	"github.com/louisbranch/possession/internal/platform/requestctx"
	"google.golang.org/grpc"
)

// LocaleUnaryInterceptor copies the x-locale request header into the request
// context so handlers and collaborators can read it with requestctx.
func LocaleUnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if locale := localeFromMetadata(ctx); locale != "" {
			ctx = requestctx.WithLocale(ctx, locale)
		}
		return handler(ctx, req)
	}
}
