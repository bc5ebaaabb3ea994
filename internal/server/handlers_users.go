package server

import (
	"net/http"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/api"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/auth"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/constants"
)

// handleSignUp handles POST /users
func (r *Router) handleSignUp(w http.ResponseWriter, req *http.Request) {
	var body api.SignUpRequest
	if err := decodeRequestBody(w, req, &body); err != nil {
		return
	}

	resp, err := r.svc.SignUp(req.Context(), &body)
	if err != nil {
		r.handleAndLogError(w, req, err, "sign up")
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// handleConfirmSignUp handles POST /users/confirm
func (r *Router) handleConfirmSignUp(w http.ResponseWriter, req *http.Request) {
	var body api.ConfirmSignUpRequest
	if err := decodeRequestBody(w, req, &body); err != nil {
		return
	}

	resp, err := r.svc.ConfirmSignUp(req.Context(), &body)
	if err != nil {
		r.handleAndLogError(w, req, err, "confirm sign up")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleResendConfirmation handles POST /users/confirm/resend
func (r *Router) handleResendConfirmation(w http.ResponseWriter, req *http.Request) {
	var body api.UsernameRequest
	if err := decodeRequestBody(w, req, &body); err != nil {
		return
	}

	resp, err := r.svc.ResendConfirmation(req.Context(), body.Username)
	if err != nil {
		r.handleAndLogError(w, req, err, "resend confirmation")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleSignIn handles POST /users/login. When the account needed a follow-up step the body is
// a message instead of a session.
func (r *Router) handleSignIn(w http.ResponseWriter, req *http.Request) {
	var body api.SignInRequest
	if err := decodeRequestBody(w, req, &body); err != nil {
		return
	}

	result, err := r.svc.SignIn(req.Context(), body.Username, body.Password)
	if err != nil {
		r.handleAndLogError(w, req, err, "sign in")
		return
	}

	if result.Message != nil {
		writeJSON(w, http.StatusOK, result.Message)
		return
	}
	writeJSON(w, http.StatusOK, result.Session)
}

// handleSignOut handles POST /users/logout
func (r *Router) handleSignOut(w http.ResponseWriter, req *http.Request) {
	var body api.SignOutRequest
	if err := decodeRequestBody(w, req, &body); err != nil {
		return
	}

	resp, err := r.svc.SignOut(req.Context(), &body)
	if err != nil {
		r.handleAndLogError(w, req, err, "sign out")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleChangePassword handles POST /users/password/change
func (r *Router) handleChangePassword(w http.ResponseWriter, req *http.Request) {
	var body api.ChangePasswordRequest
	if err := decodeRequestBody(w, req, &body); err != nil {
		return
	}

	resp, err := r.svc.ChangePassword(req.Context(), &body)
	if err != nil {
		r.handleAndLogError(w, req, err, "change password")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleForgotPassword handles POST /users/password/forgot
func (r *Router) handleForgotPassword(w http.ResponseWriter, req *http.Request) {
	var body api.UsernameRequest
	if err := decodeRequestBody(w, req, &body); err != nil {
		return
	}

	resp, err := r.svc.ForgotPassword(req.Context(), body.Username)
	if err != nil {
		r.handleAndLogError(w, req, err, "start password reset")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleConfirmForgotPassword handles POST /users/password/confirm
func (r *Router) handleConfirmForgotPassword(w http.ResponseWriter, req *http.Request) {
	var body api.ConfirmForgotPasswordRequest
	if err := decodeRequestBody(w, req, &body); err != nil {
		return
	}

	resp, err := r.svc.ConfirmForgotPassword(req.Context(), &body)
	if err != nil {
		r.handleAndLogError(w, req, err, "confirm password reset")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleUpdateProfile handles PUT /users/profile
func (r *Router) handleUpdateProfile(w http.ResponseWriter, req *http.Request) {
	var body api.UpdateProfileRequest
	if err := decodeRequestBody(w, req, &body); err != nil {
		return
	}

	profile, err := r.svc.UpdateProfile(req.Context(), &body)
	if err != nil {
		r.handleAndLogError(w, req, err, "update profile")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// handleDeleteAccount handles DELETE /users. The access token comes from the Authorization
// header, or from the body when no header is sent.
func (r *Router) handleDeleteAccount(w http.ResponseWriter, req *http.Request) {
	body := api.DeleteAccountRequest{
		AccessToken: auth.BearerToken(req.Header.Get(constants.AuthorizationHeader)),
	}
	if body.AccessToken == "" {
		if err := decodeRequestBody(w, req, &body); err != nil {
			return
		}
	}

	resp, err := r.svc.DeleteAccount(req.Context(), body.AccessToken)
	if err != nil {
		r.handleAndLogError(w, req, err, "delete account")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleAuthorize handles GET /users/authorize
func (r *Router) handleAuthorize(w http.ResponseWriter, req *http.Request) {
	accessToken := auth.BearerToken(req.Header.Get(constants.AuthorizationHeader))
	refreshToken := req.Header.Get(constants.RefreshTokenHeader)

	resp, err := r.svc.Authorize(req.Context(), accessToken, refreshToken)
	if err != nil {
		r.handleAndLogError(w, req, err, "authorize")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
