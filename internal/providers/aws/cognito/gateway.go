package cognito

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/api"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/identity"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/logger"
)

// Gateway implements identity.Gateway against a Cognito user pool app client.
type Gateway struct {
	client       Client
	clientID     string
	clientSecret string
	logger       *slog.Logger
}

var _ identity.Gateway = (*Gateway)(nil)

// NewGateway creates a Cognito-backed identity gateway. clientSecret may be empty for app
// clients created without a secret.
func NewGateway(client Client, clientID, clientSecret string, log *slog.Logger) *Gateway {
	return &Gateway{
		client:       client,
		clientID:     clientID,
		clientSecret: clientSecret,
		logger:       log,
	}
}

func (g *Gateway) secretHash(username string) *string {
	if g.clientSecret == "" {
		return nil
	}
	return aws.String(secretHash(username, g.clientID, g.clientSecret))
}

func (g *Gateway) logCall(ctx context.Context, operation string, args ...any) {
	reqLogger := logger.DeriveRequestLogger(ctx, g.logger)
	logArgs := append([]any{"operation", "Cognito." + operation}, args...)
	logArgs = append(logArgs, logger.GetDeadlineInfo(ctx)...)
	reqLogger.Debug("calling external service", "context", logger.SliceToMap(logArgs))
}

func attribute(name, value string) types.AttributeType {
	return types.AttributeType{Name: aws.String(name), Value: aws.String(value)}
}

// SignUp registers a user under their email address with name, family_name and picture
// attributes.
func (g *Gateway) SignUp(ctx context.Context, req *api.SignUpRequest) (*api.SignUpResponse, error) {
	g.logCall(ctx, "SignUp", "username", req.EmailAddress)

	out, err := g.client.SignUp(ctx, &cip.SignUpInput{
		ClientId:   aws.String(g.clientID),
		Username:   aws.String(req.EmailAddress),
		Password:   aws.String(req.Password),
		SecretHash: g.secretHash(req.EmailAddress),
		UserAttributes: []types.AttributeType{
			attribute("email", req.EmailAddress),
			attribute("name", req.FirstName),
			attribute("family_name", req.LastName),
			attribute("picture", req.ProfilePic),
		},
	})
	if err != nil {
		return nil, translate("SignUp", err)
	}

	resp := &api.SignUpResponse{
		UserSub:       aws.ToString(out.UserSub),
		UserConfirmed: out.UserConfirmed,
	}
	if out.CodeDeliveryDetails != nil {
		resp.Destination = aws.ToString(out.CodeDeliveryDetails.Destination)
	}
	return resp, nil
}

// ConfirmSignUp confirms a registration.
func (g *Gateway) ConfirmSignUp(ctx context.Context, username, code string) error {
	g.logCall(ctx, "ConfirmSignUp", "username", username)

	_, err := g.client.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(g.clientID),
		Username:         aws.String(username),
		ConfirmationCode: aws.String(code),
		SecretHash:       g.secretHash(username),
	})
	if err != nil {
		return translate("ConfirmSignUp", err)
	}
	return nil
}

// ResendConfirmation sends a new sign up confirmation code.
func (g *Gateway) ResendConfirmation(ctx context.Context, username string) error {
	g.logCall(ctx, "ResendConfirmationCode", "username", username)

	_, err := g.client.ResendConfirmationCode(ctx, &cip.ResendConfirmationCodeInput{
		ClientId:   aws.String(g.clientID),
		Username:   aws.String(username),
		SecretHash: g.secretHash(username),
	})
	if err != nil {
		return translate("ResendConfirmationCode", err)
	}
	return nil
}

// SignIn runs the USER_PASSWORD_AUTH flow and reshapes the tokens into a profile taken from the
// ID token and a session whose expiration is the access token's exp.
func (g *Gateway) SignIn(ctx context.Context, username, password string) (*api.SignInResponse, error) {
	g.logCall(ctx, "InitiateAuth", "username", username, "flow", string(types.AuthFlowTypeUserPasswordAuth))

	params := map[string]string{
		"USERNAME": username,
		"PASSWORD": password,
	}
	if hash := g.secretHash(username); hash != nil {
		params["SECRET_HASH"] = *hash
	}

	out, err := g.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeUserPasswordAuth,
		ClientId:       aws.String(g.clientID),
		AuthParameters: params,
	})
	if err != nil {
		return nil, translate("InitiateAuth", err)
	}
	if out.AuthenticationResult == nil {
		return nil, translate("InitiateAuth",
			fmt.Errorf("unsupported authentication challenge %q", out.ChallengeName))
	}

	session, err := newSession(out.AuthenticationResult, "")
	if err != nil {
		return nil, translate("InitiateAuth", err)
	}

	claims, err := identity.DecodeClaims(session.IDToken)
	if err != nil {
		return nil, translate("InitiateAuth", err)
	}

	return &api.SignInResponse{
		Profile: identity.ProfileFromClaims(claims),
		Session: session,
	}, nil
}

// Refresh runs the REFRESH_TOKEN_AUTH flow. Cognito does not rotate the refresh token, so the
// one supplied is returned in the new session.
func (g *Gateway) Refresh(ctx context.Context, refreshToken, username string) (*api.Session, error) {
	g.logCall(ctx, "InitiateAuth", "username", username, "flow", string(types.AuthFlowTypeRefreshTokenAuth))

	params := map[string]string{
		"REFRESH_TOKEN": refreshToken,
	}
	if hash := g.secretHash(username); hash != nil {
		params["SECRET_HASH"] = *hash
	}

	out, err := g.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeRefreshTokenAuth,
		ClientId:       aws.String(g.clientID),
		AuthParameters: params,
	})
	if err != nil {
		return nil, translate("InitiateAuth", err)
	}
	if out.AuthenticationResult == nil {
		return nil, translate("InitiateAuth", fmt.Errorf("refresh returned no tokens"))
	}

	session, err := newSession(out.AuthenticationResult, refreshToken)
	if err != nil {
		return nil, translate("InitiateAuth", err)
	}
	return session, nil
}

func newSession(result *types.AuthenticationResultType, fallbackRefresh string) (*api.Session, error) {
	session := &api.Session{
		AccessToken:  aws.ToString(result.AccessToken),
		IDToken:      aws.ToString(result.IdToken),
		RefreshToken: aws.ToString(result.RefreshToken),
	}
	if session.RefreshToken == "" {
		session.RefreshToken = fallbackRefresh
	}

	exp, err := identity.Expiry(session.AccessToken)
	if err != nil {
		return nil, err
	}
	session.Expiration = exp.UnixMilli()
	return session, nil
}

// SignOut revokes the refresh token of the current session, or with Global set signs the user
// out of every device.
func (g *Gateway) SignOut(ctx context.Context, req *api.SignOutRequest) error {
	if req.Global {
		g.logCall(ctx, "GlobalSignOut")

		if _, err := g.client.GlobalSignOut(ctx, &cip.GlobalSignOutInput{
			AccessToken: aws.String(req.AccessToken),
		}); err != nil {
			return translate("GlobalSignOut", err)
		}
		return nil
	}

	g.logCall(ctx, "RevokeToken")

	input := &cip.RevokeTokenInput{
		ClientId: aws.String(g.clientID),
		Token:    aws.String(req.RefreshToken),
	}
	if g.clientSecret != "" {
		input.ClientSecret = aws.String(g.clientSecret)
	}
	if _, err := g.client.RevokeToken(ctx, input); err != nil {
		return translate("RevokeToken", err)
	}
	return nil
}

// ChangePassword changes the signed in user's password.
func (g *Gateway) ChangePassword(ctx context.Context, accessToken, currentPassword, newPassword string) error {
	g.logCall(ctx, "ChangePassword")

	_, err := g.client.ChangePassword(ctx, &cip.ChangePasswordInput{
		AccessToken:      aws.String(accessToken),
		PreviousPassword: aws.String(currentPassword),
		ProposedPassword: aws.String(newPassword),
	})
	if err != nil {
		return translate("ChangePassword", err)
	}
	return nil
}

// ForgotPassword sends a password reset code.
func (g *Gateway) ForgotPassword(ctx context.Context, username string) error {
	g.logCall(ctx, "ForgotPassword", "username", username)

	_, err := g.client.ForgotPassword(ctx, &cip.ForgotPasswordInput{
		ClientId:   aws.String(g.clientID),
		Username:   aws.String(username),
		SecretHash: g.secretHash(username),
	})
	if err != nil {
		return translate("ForgotPassword", err)
	}
	return nil
}

// ConfirmForgotPassword sets a new password using the reset code.
func (g *Gateway) ConfirmForgotPassword(ctx context.Context, username, code, password string) error {
	g.logCall(ctx, "ConfirmForgotPassword", "username", username)

	_, err := g.client.ConfirmForgotPassword(ctx, &cip.ConfirmForgotPasswordInput{
		ClientId:         aws.String(g.clientID),
		Username:         aws.String(username),
		ConfirmationCode: aws.String(code),
		Password:         aws.String(password),
		SecretHash:       g.secretHash(username),
	})
	if err != nil {
		return translate("ConfirmForgotPassword", err)
	}
	return nil
}

// profileAttributes returns only the attributes the caller supplied; omitted ones stay as stored.
func profileAttributes(req *api.UpdateProfileRequest) []types.AttributeType {
	attrs := make([]types.AttributeType, 0, 3)
	if req.FirstName != "" {
		attrs = append(attrs, attribute("name", req.FirstName))
	}
	if req.LastName != "" {
		attrs = append(attrs, attribute("family_name", req.LastName))
	}
	if req.ProfilePic != "" {
		attrs = append(attrs, attribute("picture", req.ProfilePic))
	}
	return attrs
}

// UpdateProfile sets the supplied name, family_name and picture attributes, then re-fetches
// the user so the returned profile reflects what the provider stored. A request with no
// attributes is rejected without calling the provider.
func (g *Gateway) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.Profile, error) {
	attrs := profileAttributes(req)
	if len(attrs) == 0 {
		return nil, kindError("UpdateUserAttributes", identity.KindInvalidParameter, nil)
	}

	g.logCall(ctx, "UpdateUserAttributes")

	_, err := g.client.UpdateUserAttributes(ctx, &cip.UpdateUserAttributesInput{
		AccessToken:    aws.String(req.AccessToken),
		UserAttributes: attrs,
	})
	if err != nil {
		return nil, translate("UpdateUserAttributes", err)
	}

	g.logCall(ctx, "GetUser")

	out, err := g.client.GetUser(ctx, &cip.GetUserInput{AccessToken: aws.String(req.AccessToken)})
	if err != nil {
		return nil, translate("GetUser", err)
	}

	claims := make(map[string]any, len(out.UserAttributes)+1)
	for _, a := range out.UserAttributes {
		claims[aws.ToString(a.Name)] = aws.ToString(a.Value)
	}
	claims["cognito:username"] = aws.ToString(out.Username)

	return identity.ProfileFromClaims(claims), nil
}

// DeleteAccount deletes the signed in user.
func (g *Gateway) DeleteAccount(ctx context.Context, accessToken string) error {
	g.logCall(ctx, "DeleteUser")

	if _, err := g.client.DeleteUser(ctx, &cip.DeleteUserInput{AccessToken: aws.String(accessToken)}); err != nil {
		return translate("DeleteUser", err)
	}
	return nil
}
