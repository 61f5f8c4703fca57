package common

// RequestIDHeaderName is the HTTP header carrying the per-request id assigned
// by the API middleware.
const RequestIDHeaderName = "X-Request-Id"
