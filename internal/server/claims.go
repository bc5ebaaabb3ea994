package server

import (
	"net/http"

	"github.com/akrylysov/algnhsa"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/auth"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/constants"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/identity"
)

const ownerClaim = "cognito:username"

// authorizerOwner returns the owner claim the API Gateway Cognito authorizer attached to the
// proxied request.
func authorizerOwner(req *http.Request) string {
	proxyReq, ok := algnhsa.APIGatewayV1RequestFromContext(req.Context())
	if !ok {
		return ""
	}
	claims, ok := proxyReq.RequestContext.Authorizer["claims"].(map[string]any)
	if !ok {
		return ""
	}
	owner, _ := claims[ownerClaim].(string)
	return owner
}

// resolveOwner finds the caller's user id. Authorizer claims are authoritative; the bearer
// token is only decoded when the router was built for local development.
func (r *Router) resolveOwner(req *http.Request) (owner, source string) {
	if owner = authorizerOwner(req); owner != "" {
		return owner, "authorizer"
	}

	if !r.opts.DecodeBearerClaims {
		return "", ""
	}

	token := auth.BearerToken(req.Header.Get(constants.AuthorizationHeader))
	if token == "" {
		return "", ""
	}
	owner, err := identity.Username(token)
	if err != nil {
		return "", ""
	}
	return owner, "bearer"
}

// ownerFromContext returns the user id stored by ownerMiddleware.
func ownerFromContext(req *http.Request) string {
	owner, _ := req.Context().Value(ownerContextKey).(string)
	return owner
}
