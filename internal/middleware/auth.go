package middleware

import (
	"context"
	"strconv"
	"strings"

	"github.com/docthru/backend/internal/model"
	"github.com/docthru/backend/pkg/authenticator"
	"github.com/docthru/backend/pkg/errorx"
	"github.com/docthru/backend/pkg/router"
	"github.com/docthru/backend/pkg/xcontext"
)

// AuthVerifier resolves the requester from the access token. With Required,
// requests without a token are rejected; otherwise they pass as anonymous.
type AuthVerifier struct {
	tokenEngine authenticator.TokenEngine[model.AccessToken]
	required    bool
}

func NewAuthVerifier(tokenEngine authenticator.TokenEngine[model.AccessToken]) *AuthVerifier {
	return &AuthVerifier{tokenEngine: tokenEngine}
}

func (a *AuthVerifier) Required() *AuthVerifier {
	a.required = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := getAccessToken(ctx)
		if token == "" {
			if a.required {
				return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
			}

			return nil, nil
		}

		info, err := a.tokenEngine.Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		userID, err := strconv.ParseInt(info.ID, 10, 64)
		if err != nil || userID <= 0 {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		ctx = xcontext.WithRequestUserID(ctx, userID)
		ctx = xcontext.WithRequestUserRole(ctx, info.Role)
		return ctx, nil
	}
}

func getAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	if req == nil {
		return ""
	}

	authorization := req.Header.Get("Authorization")
	auth, token, found := strings.Cut(authorization, " ")
	if found {
		if auth == "Bearer" {
			return token
		}
		return ""
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
