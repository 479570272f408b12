package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/questboard/backend/internal/model"
	"github.com/questboard/backend/pkg/authenticator"
	"github.com/questboard/backend/pkg/errorx"
	"github.com/questboard/backend/pkg/router"
	"github.com/questboard/backend/pkg/xcontext"
)

type AuthVerifier struct {
	engine authenticator.TokenEngine[model.AccessToken]
}

func NewAuthVerifier(engine authenticator.TokenEngine[model.AccessToken]) *AuthVerifier {
	return &AuthVerifier{engine: engine}
}

// Middleware resolves the access token from the Authorization header or the
// configured cookie and records the user id in the context.
func (v *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := getAccessToken(ctx, xcontext.HTTPRequest(ctx))
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		info, err := v.engine.Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		return xcontext.WithRequestUserID(ctx, info.ID), nil
	}
}

func getAccessToken(ctx context.Context, r *http.Request) string {
	if r == nil {
		return ""
	}

	authorization := r.Header.Get("Authorization")
	if auth, token, found := strings.Cut(authorization, " "); found {
		if auth == "Bearer" {
			return token
		}

		return ""
	}

	cookie, err := r.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
