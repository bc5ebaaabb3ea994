package app

import (
	"context"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/api"
	apperrors "github.com/DeanGilewicz/serverless-recipes-BE/internal/errors"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/identity"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/logger"
)

// Messages returned by user operations that have no other payload.
const (
	MessageSignUpResent          = "Sign up resent"
	MessagePasswordResetSent     = "Password Reset Sent"
	MessagePasswordResetSuccess  = "Password Reset Success"
	MessagePasswordChangeSuccess = "Password Change Success"
	MessageSignUpConfirmed       = "Sign up confirmed"
	MessageSignedOut             = "Signed out"
	MessageAccountDeleted        = "Account deleted"
)

// SignInResult is the outcome of a sign-in. Exactly one of Session or Message is set: Message
// when the account needed a follow-up step that was started on the user's behalf.
type SignInResult struct {
	Session *api.SignInResponse
	Message *api.MessageResponse
}

// SignUp registers a new user.
func (s *Service) SignUp(ctx context.Context, req *api.SignUpRequest) (*api.SignUpResponse, error) {
	return s.identity.SignUp(ctx, req)
}

// ConfirmSignUp confirms a registration.
func (s *Service) ConfirmSignUp(ctx context.Context, req *api.ConfirmSignUpRequest) (*api.MessageResponse, error) {
	if err := s.identity.ConfirmSignUp(ctx, req.Username, req.ConfirmationCode); err != nil {
		return nil, err
	}
	return &api.MessageResponse{Message: MessageSignUpConfirmed}, nil
}

// ResendConfirmation sends a new confirmation code.
func (s *Service) ResendConfirmation(ctx context.Context, username string) (*api.MessageResponse, error) {
	if err := s.identity.ResendConfirmation(ctx, username); err != nil {
		return nil, err
	}
	return &api.MessageResponse{Message: MessageSignUpResent}, nil
}

// SignIn authenticates the user. An unconfirmed account gets a fresh confirmation code and an
// account that must reset its password gets a reset code; both are reported as a message
// rather than an error. If that follow-up call fails the sign-in answers 404.
func (s *Service) SignIn(ctx context.Context, username, password string) (*SignInResult, error) {
	reqLogger := logger.DeriveRequestLogger(ctx, s.Logger)

	resp, err := s.identity.SignIn(ctx, username, password)
	if err == nil {
		return &SignInResult{Session: resp}, nil
	}

	kind, _ := identity.KindOf(err)
	switch kind {
	case identity.KindUserNotConfirmed:
		reqLogger.Info("sign in for unconfirmed user, resending confirmation", "username", username)
		if resendErr := s.identity.ResendConfirmation(ctx, username); resendErr != nil {
			return nil, apperrors.ErrNotFound(identity.KindUserNotConfirmed.Message(), resendErr)
		}
		return &SignInResult{Message: &api.MessageResponse{Message: MessageSignUpResent}}, nil
	case identity.KindPasswordResetRequired:
		reqLogger.Info("sign in requires password reset, sending code", "username", username)
		if forgotErr := s.identity.ForgotPassword(ctx, username); forgotErr != nil {
			return nil, apperrors.ErrNotFound(identity.KindPasswordResetRequired.Message(), forgotErr)
		}
		return &SignInResult{Message: &api.MessageResponse{Message: MessagePasswordResetSent}}, nil
	default:
		return nil, err
	}
}

// SignOut ends the current session, or every session when requested.
func (s *Service) SignOut(ctx context.Context, req *api.SignOutRequest) (*api.MessageResponse, error) {
	if err := s.identity.SignOut(ctx, req); err != nil {
		return nil, err
	}
	return &api.MessageResponse{Message: MessageSignedOut}, nil
}

// ChangePassword changes the signed in user's password.
func (s *Service) ChangePassword(ctx context.Context, req *api.ChangePasswordRequest) (*api.MessageResponse, error) {
	if err := s.identity.ChangePassword(ctx, req.AccessToken, req.CurrentPassword, req.NewPassword); err != nil {
		return nil, err
	}
	return &api.MessageResponse{Message: MessagePasswordChangeSuccess}, nil
}

// ForgotPassword starts a password reset.
func (s *Service) ForgotPassword(ctx context.Context, username string) (*api.MessageResponse, error) {
	if err := s.identity.ForgotPassword(ctx, username); err != nil {
		return nil, err
	}
	return &api.MessageResponse{Message: MessagePasswordResetSent}, nil
}

// ConfirmForgotPassword completes a password reset.
func (s *Service) ConfirmForgotPassword(
	ctx context.Context,
	req *api.ConfirmForgotPasswordRequest,
) (*api.MessageResponse, error) {
	if err := s.identity.ConfirmForgotPassword(ctx, req.Username, req.ConfirmationCode, req.Password); err != nil {
		return nil, err
	}
	return &api.MessageResponse{Message: MessagePasswordResetSuccess}, nil
}

// UpdateProfile updates the user's attributes and returns the stored profile.
func (s *Service) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.Profile, error) {
	return s.identity.UpdateProfile(ctx, req)
}

// DeleteAccount deletes the signed in user.
func (s *Service) DeleteAccount(ctx context.Context, accessToken string) (*api.MessageResponse, error) {
	if err := s.identity.DeleteAccount(ctx, accessToken); err != nil {
		return nil, err
	}
	return &api.MessageResponse{Message: MessageAccountDeleted}, nil
}

// Authorize runs the authorization filter.
func (s *Service) Authorize(ctx context.Context, accessToken, refreshToken string) (*api.AuthorizeResponse, error) {
	res, err := s.authFilter.Authorize(ctx, accessToken, refreshToken)
	if err != nil {
		return nil, err
	}
	return &api.AuthorizeResponse{Authorized: res.Authorized, Session: res.Session}, nil
}
