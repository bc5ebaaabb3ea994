package identity

import (
	"context"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/api"
)

// Gateway is the set of identity provider operations the service relies on.
// Failures carry an *Error in their chain; use KindOf to inspect them.
type Gateway interface {
	// SignUp registers a user whose username is their email address.
	SignUp(ctx context.Context, req *api.SignUpRequest) (*api.SignUpResponse, error)

	// ConfirmSignUp confirms a registration with the emailed code.
	ConfirmSignUp(ctx context.Context, username, code string) error

	// ResendConfirmation sends a new confirmation code.
	ResendConfirmation(ctx context.Context, username string) error

	// SignIn authenticates with a username and password.
	SignIn(ctx context.Context, username, password string) (*api.SignInResponse, error)

	// SignOut revokes the refresh token of one session, or every session when global is set.
	SignOut(ctx context.Context, req *api.SignOutRequest) error

	// ChangePassword changes the password of the token's owner.
	ChangePassword(ctx context.Context, accessToken, currentPassword, newPassword string) error

	// ForgotPassword starts a password reset.
	ForgotPassword(ctx context.Context, username string) error

	// ConfirmForgotPassword completes a password reset.
	ConfirmForgotPassword(ctx context.Context, username, code, password string) error

	// UpdateProfile replaces the editable attributes and returns the re-fetched profile.
	UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.Profile, error)

	// DeleteAccount deletes the token's owner.
	DeleteAccount(ctx context.Context, accessToken string) error

	// Refresh exchanges a refresh token for a new session. username is needed to compute the
	// client secret hash when one is configured.
	Refresh(ctx context.Context, refreshToken, username string) (*api.Session, error)
}
