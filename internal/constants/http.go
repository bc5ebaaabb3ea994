package constants

import "time"

// ContentTypeHeader is the HTTP Content-Type header name.
const ContentTypeHeader = "Content-Type"

// AuthorizationHeader carries the bearer access token.
const AuthorizationHeader = "Authorization"

// RefreshTokenHeader carries the refresh token used by the authorization filter.
//
//nolint:gosec // G101: This is a header name constant, not a hardcoded credential
const RefreshTokenHeader = "X-Refresh-Token"

// BearerPrefix is the scheme prefix of the Authorization header value.
const BearerPrefix = "Bearer "

// MaxImageUploadBytes bounds the in-memory part of a multipart image upload.
const MaxImageUploadBytes = 10 << 20

// ImageFormField is the multipart field name carrying the recipe image.
const ImageFormField = "image"

// ServerReadTimeout is the HTTP server read timeout
const ServerReadTimeout = 15 * time.Second

// ServerWriteTimeout is the HTTP server write timeout
const ServerWriteTimeout = 15 * time.Second

// ServerIdleTimeout is the HTTP server idle timeout
const ServerIdleTimeout = 60 * time.Second

// ServerShutdownTimeout is the timeout for graceful server shutdown
const ServerShutdownTimeout = 5 * time.Second
