package constants

// StartTimeCtxKeyType is the type for start time context keys
type StartTimeCtxKeyType string

// StartTimeCtxKey is the key used to store the start time in context
const StartTimeCtxKey StartTimeCtxKeyType = "startTime"

// RequestIDLogField is the field name used for request ID in log entries
const RequestIDLogField = "requestID"
