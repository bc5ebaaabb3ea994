// Package auth decides whether a caller's access token is still usable and refreshes the
// session when it is not.
package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/api"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/constants"
	apperrors "github.com/DeanGilewicz/serverless-recipes-BE/internal/errors"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/identity"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/logger"
)

// Refresher exchanges a refresh token for a new session.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken, username string) (*api.Session, error)
}

// Result is the outcome of a successful authorization.
// Session is set only when the tokens had to be refreshed.
type Result struct {
	Authorized bool
	Session    *api.Session
}

// Filter authorizes callers by the expiry of their access token.
type Filter struct {
	refresher Refresher
	logger    *slog.Logger
	now       func() time.Time
}

// NewFilter creates a Filter that refreshes expired sessions through refresher.
func NewFilter(refresher Refresher, log *slog.Logger) *Filter {
	return &Filter{
		refresher: refresher,
		logger:    log,
		now:       time.Now,
	}
}

// BearerToken extracts the token from an Authorization header value. The "Bearer " scheme
// is optional since Cognito authorizer clients send the raw token. Any other scheme yields "".
func BearerToken(header string) string {
	token := strings.TrimSpace(header)
	prefix := strings.TrimSpace(constants.BearerPrefix)
	if len(token) >= len(prefix) && strings.EqualFold(token[:len(prefix)], prefix) {
		rest := token[len(prefix):]
		if rest == "" {
			return ""
		}
		if rest[0] == ' ' || rest[0] == '\t' {
			token = strings.TrimSpace(rest)
		}
	}
	if strings.ContainsAny(token, " \t") {
		return ""
	}
	return token
}

// Authorize checks the access token's exp claim. A token that has not expired is accepted
// without contacting the provider. An expired token is refreshed with refreshToken. Every
// failure, whatever its cause, is reported as a 401 so no provider detail leaks to the caller.
func (f *Filter) Authorize(ctx context.Context, accessToken, refreshToken string) (*Result, error) {
	reqLogger := logger.DeriveRequestLogger(ctx, f.logger)

	if accessToken == "" {
		return nil, apperrors.ErrUnauthorized("missing access token", nil)
	}

	exp, err := identity.Expiry(accessToken)
	if err != nil {
		reqLogger.Debug("access token rejected", "error", err)
		return nil, apperrors.ErrUnauthorized("invalid access token", err)
	}

	if f.now().Before(exp) {
		return &Result{Authorized: true}, nil
	}

	if refreshToken == "" {
		return nil, apperrors.ErrUnauthorized("access token expired", nil)
	}

	// The username is only needed for the client secret hash; refresh is still attempted
	// without it.
	username, _ := identity.Username(accessToken)

	session, err := f.refresher.Refresh(ctx, refreshToken, username)
	if err != nil {
		reqLogger.Info("session refresh failed", "username", username, "error", err)
		return nil, apperrors.ErrUnauthorized("session expired", err)
	}

	reqLogger.Debug("session refreshed", "username", username)

	return &Result{Authorized: true, Session: session}, nil
}
