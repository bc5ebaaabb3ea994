// Package identity defines the identity gateway used for registration, sign-in and session
// management, together with the closed set of failures it reports.
package identity

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/DeanGilewicz/serverless-recipes-BE/internal/errors"
)

// Kind classifies an identity provider failure.
type Kind int

// Identity failure kinds. Anything the provider reports that is not listed maps to KindUnknown.
const (
	KindUnknown Kind = iota
	KindUserNotConfirmed
	KindPasswordResetRequired
	KindNotAuthorized
	KindUserNotFound
	KindCodeMismatch
	KindExpiredCode
	KindInvalidParameter
	KindInvalidPassword
	KindUsernameExists
	KindLimitExceeded
)

type kindInfo struct {
	name    string
	code    string
	message string
	status  int
}

var kinds = map[Kind]kindInfo{
	KindUnknown: {
		"Unknown", apperrors.ErrCodeIdentityError, "Identity provider request failed", http.StatusBadRequest,
	},
	KindUserNotConfirmed: {
		"UserNotConfirmed", "USER_NOT_CONFIRMED", "User is not confirmed", http.StatusForbidden,
	},
	KindPasswordResetRequired: {
		"PasswordResetRequired", "PASSWORD_RESET_REQUIRED", "Password reset required", http.StatusForbidden,
	},
	KindNotAuthorized: {
		"NotAuthorized", "NOT_AUTHORIZED", "Incorrect username or password", http.StatusUnauthorized,
	},
	KindUserNotFound: {
		"UserNotFound", "USER_NOT_FOUND", "User does not exist", http.StatusNotFound,
	},
	KindCodeMismatch: {
		"CodeMismatch", "CODE_MISMATCH", "Invalid verification code", http.StatusBadRequest,
	},
	KindExpiredCode: {
		"ExpiredCode", "EXPIRED_CODE", "Verification code has expired", http.StatusBadRequest,
	},
	KindInvalidParameter: {
		"InvalidParameter", "INVALID_PARAMETER", "Invalid parameters", http.StatusBadRequest,
	},
	KindInvalidPassword: {
		"InvalidPassword", "INVALID_PASSWORD", "Password does not meet requirements", http.StatusBadRequest,
	},
	KindUsernameExists: {
		"UsernameExists", "USERNAME_EXISTS", "An account with this email already exists", http.StatusConflict,
	},
	KindLimitExceeded: {
		"LimitExceeded", "LIMIT_EXCEEDED", "Attempt limit exceeded, please try again later", http.StatusTooManyRequests,
	},
}

func (k Kind) info() kindInfo {
	if i, ok := kinds[k]; ok {
		return i
	}
	return kinds[KindUnknown]
}

// String returns the kind name.
func (k Kind) String() string { return k.info().name }

// Code returns the stable error code sent to callers.
func (k Kind) Code() string { return k.info().code }

// Message returns the stable caller-facing message.
func (k Kind) Message() string { return k.info().message }

// StatusCode returns the HTTP status for the kind.
func (k Kind) StatusCode() int { return k.info().status }

// Error is an identity provider failure tagged with its Kind.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// NewError wraps a provider error.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind carried anywhere in err's chain, and false when err is not an
// identity error.
func KindOf(err error) (Kind, bool) {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Kind, true
	}
	return KindUnknown, false
}

// IsKind reports whether err is an identity error of the given kind.
func IsKind(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
