package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// TokenVerifier resolves a bearer token to an authenticated user id. A token
// whose session has been revoked fails verification even before the token's
// own expiry.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// SessionAuth authenticates requests against the session-backed verifier and
// injects the resolved user id, so handlers never parse tokens themselves.
func SessionAuth(verifier TokenVerifier, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			verifyCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			userID, err := verifier.Verify(verifyCtx, tokenString)
			cancel()
			if err != nil {
				logger.Warn("token verification failed", zap.Error(err))
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			ctx.SetUserValue("user_id", userID)
			ctx.Request.Header.Set("X-User-ID", userID)
			next(ctx)
		}
	}
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
