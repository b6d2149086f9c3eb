package possession

import (
	"context"
	"testing"

	"github.com/louisbranch/possession/internal/platform/requestctx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

func TestLocaleUnaryInterceptor(t *testing.T) {
	interceptor := LocaleUnaryInterceptor()
	tests := []struct {
		name string
		ctx  context.Context
		want string
	}{
		{name: "no metadata", ctx: context.Background(), want: ""},
		{name: "header", ctx: metadata.NewIncomingContext(context.Background(), metadata.Pairs(LocaleHeader, " pt-BR ")), want: "pt-BR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			_, err := interceptor(tt.ctx, nil, &grpc.UnaryServerInfo{}, func(ctx context.Context, _ any) (any, error) {
				got = requestctx.LocaleFromContext(ctx)
				return nil, nil
			})
			if err != nil {
				t.Fatalf("interceptor: %v", err)
			}
			if got != tt.want {
				t.Fatalf("locale = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLocaleFromContextPrefersRequestContext(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(LocaleHeader, "en-US"))
	ctx = requestctx.WithLocale(ctx, "pt-BR")
	if got := localeFromContext(ctx); got != "pt-BR" {
		t.Fatalf("locale = %q, want %q", got, "pt-BR")
	}
}
