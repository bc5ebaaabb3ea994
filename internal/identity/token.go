package identity

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/api"
)

// ErrMalformedToken is returned when a token cannot be decoded.
var ErrMalformedToken = errors.New("malformed token")

var parser = jwt.NewParser()

// DecodeClaims decodes a JWT payload without verifying its signature. Tokens reaching this
// code were issued by the identity provider and are verified by the API Gateway authorizer,
// so only their claims are of interest here.
func DecodeClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	return claims, nil
}

// Expiry returns the exp claim of a token.
func Expiry(token string) (time.Time, error) {
	claims, err := DecodeClaims(token)
	if err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("%w: missing exp claim", ErrMalformedToken)
	}
	return exp.Time, nil
}

// Username returns the username claim of an access token.
func Username(token string) (string, error) {
	claims, err := DecodeClaims(token)
	if err != nil {
		return "", err
	}
	if u, ok := claims["username"].(string); ok && u != "" {
		return u, nil
	}
	if u, ok := claims["cognito:username"].(string); ok && u != "" {
		return u, nil
	}
	return "", fmt.Errorf("%w: missing username claim", ErrMalformedToken)
}

// ProfileFromClaims flattens ID token claims, or provider user attributes, into a Profile.
func ProfileFromClaims(claims map[string]any) *api.Profile {
	str := func(key string) string {
		s, _ := claims[key].(string)
		return s
	}

	p := &api.Profile{
		Username:   str("cognito:username"),
		Email:      str("email"),
		FirstName:  str("name"),
		LastName:   str("family_name"),
		ProfilePic: str("picture"),
	}
	if p.Username == "" {
		p.Username = str("username")
	}
	switch v := claims["email_verified"].(type) {
	case bool:
		p.EmailVerified = v
	case string:
		p.EmailVerified = v == "true"
	}
	return p
}
