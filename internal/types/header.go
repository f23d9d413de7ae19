package types

// HTTP headers recognized by the gateway
const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
	HeaderEnvironment   = "x-environment-id"
)
