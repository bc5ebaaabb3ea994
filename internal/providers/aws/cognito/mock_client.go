package cognito

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
)

// MockClient is a configurable implementation of Client for tests. Each operation calls its
// Func field when set and otherwise returns an empty output. Calls records every operation
// name in order.
type MockClient struct {
	mu    sync.Mutex
	Calls []string

	SignUpFunc                 func(ctx context.Context, params *cip.SignUpInput) (*cip.SignUpOutput, error)
	ConfirmSignUpFunc          func(ctx context.Context, params *cip.ConfirmSignUpInput) (*cip.ConfirmSignUpOutput, error)
	ResendConfirmationCodeFunc func(ctx context.Context, params *cip.ResendConfirmationCodeInput) (*cip.ResendConfirmationCodeOutput, error)
	InitiateAuthFunc           func(ctx context.Context, params *cip.InitiateAuthInput) (*cip.InitiateAuthOutput, error)
	ForgotPasswordFunc         func(ctx context.Context, params *cip.ForgotPasswordInput) (*cip.ForgotPasswordOutput, error)
	ConfirmForgotPasswordFunc  func(ctx context.Context, params *cip.ConfirmForgotPasswordInput) (*cip.ConfirmForgotPasswordOutput, error)
	ChangePasswordFunc         func(ctx context.Context, params *cip.ChangePasswordInput) (*cip.ChangePasswordOutput, error)
	RevokeTokenFunc            func(ctx context.Context, params *cip.RevokeTokenInput) (*cip.RevokeTokenOutput, error)
	GlobalSignOutFunc          func(ctx context.Context, params *cip.GlobalSignOutInput) (*cip.GlobalSignOutOutput, error)
	UpdateUserAttributesFunc   func(ctx context.Context, params *cip.UpdateUserAttributesInput) (*cip.UpdateUserAttributesOutput, error)
	GetUserFunc                func(ctx context.Context, params *cip.GetUserInput) (*cip.GetUserOutput, error)
	DeleteUserFunc             func(ctx context.Context, params *cip.DeleteUserInput) (*cip.DeleteUserOutput, error)
}

// NewMockClient creates an empty MockClient.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, op)
}

// CallCount returns how many times op was called.
func (m *MockClient) CallCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.Calls {
		if c == op {
			n++
		}
	}
	return n
}

// SignUp implements Client.
func (m *MockClient) SignUp(
	ctx context.Context,
	params *cip.SignUpInput,
	_ ...func(*cip.Options),
) (*cip.SignUpOutput, error) {
	m.record("SignUp")
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, params)
	}
	return &cip.SignUpOutput{}, nil
}

// ConfirmSignUp implements Client.
func (m *MockClient) ConfirmSignUp(
	ctx context.Context,
	params *cip.ConfirmSignUpInput,
	_ ...func(*cip.Options),
) (*cip.ConfirmSignUpOutput, error) {
	m.record("ConfirmSignUp")
	if m.ConfirmSignUpFunc != nil {
		return m.ConfirmSignUpFunc(ctx, params)
	}
	return &cip.ConfirmSignUpOutput{}, nil
}

// ResendConfirmationCode implements Client.
func (m *MockClient) ResendConfirmationCode(
	ctx context.Context,
	params *cip.ResendConfirmationCodeInput,
	_ ...func(*cip.Options),
) (*cip.ResendConfirmationCodeOutput, error) {
	m.record("ResendConfirmationCode")
	if m.ResendConfirmationCodeFunc != nil {
		return m.ResendConfirmationCodeFunc(ctx, params)
	}
	return &cip.ResendConfirmationCodeOutput{}, nil
}

// InitiateAuth implements Client.
func (m *MockClient) InitiateAuth(
	ctx context.Context,
	params *cip.InitiateAuthInput,
	_ ...func(*cip.Options),
) (*cip.InitiateAuthOutput, error) {
	m.record("InitiateAuth")
	if m.InitiateAuthFunc != nil {
		return m.InitiateAuthFunc(ctx, params)
	}
	return &cip.InitiateAuthOutput{}, nil
}

// ForgotPassword implements Client.
func (m *MockClient) ForgotPassword(
	ctx context.Context,
	params *cip.ForgotPasswordInput,
	_ ...func(*cip.Options),
) (*cip.ForgotPasswordOutput, error) {
	m.record("ForgotPassword")
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, params)
	}
	return &cip.ForgotPasswordOutput{}, nil
}

// ConfirmForgotPassword implements Client.
func (m *MockClient) ConfirmForgotPassword(
	ctx context.Context,
	params *cip.ConfirmForgotPasswordInput,
	_ ...func(*cip.Options),
) (*cip.ConfirmForgotPasswordOutput, error) {
	m.record("ConfirmForgotPassword")
	if m.ConfirmForgotPasswordFunc != nil {
		return m.ConfirmForgotPasswordFunc(ctx, params)
	}
	return &cip.ConfirmForgotPasswordOutput{}, nil
}

// ChangePassword implements Client.
func (m *MockClient) ChangePassword(
	ctx context.Context,
	params *cip.ChangePasswordInput,
	_ ...func(*cip.Options),
) (*cip.ChangePasswordOutput, error) {
	m.record("ChangePassword")
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, params)
	}
	return &cip.ChangePasswordOutput{}, nil
}

// RevokeToken implements Client.
func (m *MockClient) RevokeToken(
	ctx context.Context,
	params *cip.RevokeTokenInput,
	_ ...func(*cip.Options),
) (*cip.RevokeTokenOutput, error) {
	m.record("RevokeToken")
	if m.RevokeTokenFunc != nil {
		return m.RevokeTokenFunc(ctx, params)
	}
	return &cip.RevokeTokenOutput{}, nil
}

// GlobalSignOut implements Client.
func (m *MockClient) GlobalSignOut(
	ctx context.Context,
	params *cip.GlobalSignOutInput,
	_ ...func(*cip.Options),
) (*cip.GlobalSignOutOutput, error) {
	m.record("GlobalSignOut")
	if m.GlobalSignOutFunc != nil {
		return m.GlobalSignOutFunc(ctx, params)
	}
	return &cip.GlobalSignOutOutput{}, nil
}

// UpdateUserAttributes implements Client.
func (m *MockClient) UpdateUserAttributes(
	ctx context.Context,
	params *cip.UpdateUserAttributesInput,
	_ ...func(*cip.Options),
) (*cip.UpdateUserAttributesOutput, error) {
	m.record("UpdateUserAttributes")
	if m.UpdateUserAttributesFunc != nil {
		return m.UpdateUserAttributesFunc(ctx, params)
	}
	return &cip.UpdateUserAttributesOutput{}, nil
}

// GetUser implements Client.
func (m *MockClient) GetUser(
	ctx context.Context,
	params *cip.GetUserInput,
	_ ...func(*cip.Options),
) (*cip.GetUserOutput, error) {
	m.record("GetUser")
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, params)
	}
	return &cip.GetUserOutput{}, nil
}

// DeleteUser implements Client.
func (m *MockClient) DeleteUser(
	ctx context.Context,
	params *cip.DeleteUserInput,
	_ ...func(*cip.Options),
) (*cip.DeleteUserOutput, error) {
	m.record("DeleteUser")
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, params)
	}
	return &cip.DeleteUserOutput{}, nil
}

// APIError returns a provider error with the given Cognito exception code.
func APIError(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: code}
}

// AuthResult builds a successful InitiateAuth output.
func AuthResult(accessToken, idToken, refreshToken string) *cip.InitiateAuthOutput {
	return &cip.InitiateAuthOutput{
		AuthenticationResult: &types.AuthenticationResultType{
			AccessToken:  aws.String(accessToken),
			IdToken:      aws.String(idToken),
			RefreshToken: aws.String(refreshToken),
			ExpiresIn:    3600,
		},
	}
}
