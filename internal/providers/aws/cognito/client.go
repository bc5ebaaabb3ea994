// Package cognito implements the identity gateway on Amazon Cognito user pools.
package cognito

import (
	"context"

	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
)

// Client defines the Cognito user pool operations used by the Gateway.
// *cognitoidentityprovider.Client satisfies it; tests use MockClient.
type Client interface {
	SignUp(ctx context.Context, params *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error)
	ConfirmSignUp(
		ctx context.Context,
		params *cip.ConfirmSignUpInput,
		optFns ...func(*cip.Options),
	) (*cip.ConfirmSignUpOutput, error)
	ResendConfirmationCode(
		ctx context.Context,
		params *cip.ResendConfirmationCodeInput,
		optFns ...func(*cip.Options),
	) (*cip.ResendConfirmationCodeOutput, error)
	InitiateAuth(
		ctx context.Context,
		params *cip.InitiateAuthInput,
		optFns ...func(*cip.Options),
	) (*cip.InitiateAuthOutput, error)
	ForgotPassword(
		ctx context.Context,
		params *cip.ForgotPasswordInput,
		optFns ...func(*cip.Options),
	) (*cip.ForgotPasswordOutput, error)
	ConfirmForgotPassword(
		ctx context.Context,
		params *cip.ConfirmForgotPasswordInput,
		optFns ...func(*cip.Options),
	) (*cip.ConfirmForgotPasswordOutput, error)
	ChangePassword(
		ctx context.Context,
		params *cip.ChangePasswordInput,
		optFns ...func(*cip.Options),
	) (*cip.ChangePasswordOutput, error)
	RevokeToken(
		ctx context.Context,
		params *cip.RevokeTokenInput,
		optFns ...func(*cip.Options),
	) (*cip.RevokeTokenOutput, error)
	GlobalSignOut(
		ctx context.Context,
		params *cip.GlobalSignOutInput,
		optFns ...func(*cip.Options),
	) (*cip.GlobalSignOutOutput, error)
	UpdateUserAttributes(
		ctx context.Context,
		params *cip.UpdateUserAttributesInput,
		optFns ...func(*cip.Options),
	) (*cip.UpdateUserAttributesOutput, error)
	GetUser(ctx context.Context, params *cip.GetUserInput, optFns ...func(*cip.Options)) (*cip.GetUserOutput, error)
	DeleteUser(
		ctx context.Context,
		params *cip.DeleteUserInput,
		optFns ...func(*cip.Options),
	) (*cip.DeleteUserOutput, error)
}

var _ Client = (*cip.Client)(nil)
