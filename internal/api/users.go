package api

// SignUpRequest represents a registration request
type SignUpRequest struct {
	EmailAddress string `json:"emailAddress" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	ProfilePic   string `json:"profilePic"`
}

// SignUpResponse represents the provider's answer to a registration
type SignUpResponse struct {
	UserSub       string `json:"userSub"`
	UserConfirmed bool   `json:"userConfirmed"`
	Destination   string `json:"destination,omitempty"`
}

// ConfirmSignUpRequest confirms a registration with the emailed code
type ConfirmSignUpRequest struct {
	Username         string `json:"username" validate:"required"`
	ConfirmationCode string `json:"confirmationCode" validate:"required"`
}

// UsernameRequest is used by operations keyed only on a username
// (resend confirmation, forgot password).
type UsernameRequest struct {
	Username string `json:"username" validate:"required"`
}

// SignInRequest represents a login request
type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Profile is the flattened view of the identity provider's user attributes.
type Profile struct {
	Username      string `json:"username"`
	Email         string `json:"email,omitempty"`
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	ProfilePic    string `json:"profilePic,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
}

// Session holds the tokens returned after authentication.
// Expiration is the access token expiry in epoch milliseconds.
type Session struct {
	AccessToken  string `json:"accessToken"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	Expiration   int64  `json:"expiration"`
}

// SignInResponse is the reshaped sign-in result
type SignInResponse struct {
	Profile *Profile `json:"profile"`
	Session *Session `json:"session"`
}

// SignOutRequest signs out the current session or, with Global, every session
type SignOutRequest struct {
	AccessToken  string `json:"accessToken" validate:"required_if=Global true"`
	RefreshToken string `json:"refreshToken" validate:"required_if=Global false"`
	Global       bool   `json:"global"`
}

// ChangePasswordRequest changes the password of the signed in user
type ChangePasswordRequest struct {
	AccessToken     string `json:"accessToken" validate:"required"`
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// ConfirmForgotPasswordRequest completes a password reset
type ConfirmForgotPasswordRequest struct {
	Username         string `json:"username" validate:"required"`
	ConfirmationCode string `json:"confirmationCode" validate:"required"`
	Password         string `json:"password" validate:"required"`
}

// UpdateProfileRequest updates the editable profile attributes. Empty fields are left as stored.
type UpdateProfileRequest struct {
	AccessToken string `json:"accessToken" validate:"required"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	ProfilePic  string `json:"profilePic"`
}

// DeleteAccountRequest deletes the signed in user's account
type DeleteAccountRequest struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

// AuthorizeResponse is the outcome of the authorization filter.
// Session is only set when the tokens were refreshed.
type AuthorizeResponse struct {
	Authorized bool     `json:"authorized"`
	Session    *Session `json:"session,omitempty"`
}
