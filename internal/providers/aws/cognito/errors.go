package cognito

import (
	"errors"

	"github.com/aws/smithy-go"

	apperrors "github.com/DeanGilewicz/serverless-recipes-BE/internal/errors"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/identity"
)

var errorKinds = map[string]identity.Kind{
	"UserNotConfirmedException":      identity.KindUserNotConfirmed,
	"PasswordResetRequiredException": identity.KindPasswordResetRequired,
	"NotAuthorizedException":         identity.KindNotAuthorized,
	"UserNotFoundException":          identity.KindUserNotFound,
	"CodeMismatchException":          identity.KindCodeMismatch,
	"ExpiredCodeException":           identity.KindExpiredCode,
	"InvalidParameterException":      identity.KindInvalidParameter,
	"InvalidPasswordException":       identity.KindInvalidPassword,
	"UsernameExistsException":        identity.KindUsernameExists,
	"LimitExceededException":         identity.KindLimitExceeded,
	"TooManyRequestsException":       identity.KindLimitExceeded,
	"TooManyFailedAttemptsException": identity.KindLimitExceeded,
}

func classify(err error) identity.Kind {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return identity.KindUnknown
	}
	if kind, ok := errorKinds[apiErr.ErrorCode()]; ok {
		return kind
	}
	return identity.KindUnknown
}

// translate converts a Cognito failure into an AppError carrying the kind's status, code and
// message, with an *identity.Error as its cause.
func translate(op string, err error) error {
	return kindError(op, classify(err), err)
}

// kindError builds the AppError for kind. err may be nil when the failure was detected
// before calling the provider.
func kindError(op string, kind identity.Kind, err error) error {
	return apperrors.NewClientError(kind.StatusCode(), kind.Code(), kind.Message(), identity.NewError(kind, op, err))
}
