package services

import "net/http"

// ServiceResponse is the envelope every API call answers with.
type ServiceResponse[T any] struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	ResponseObject T      `json:"responseObject"`
	StatusCode     int    `json:"statusCode"`
}

// Success builds a successful response. A zero status means 200 OK.
func Success[T any](message string, obj T, status int) ServiceResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	return ServiceResponse[T]{Success: true, Message: message, ResponseObject: obj, StatusCode: status}
}

// Failure builds a failed response. A zero status means 400 Bad Request.
func Failure[T any](message string, status int) ServiceResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	var zero T
	return ServiceResponse[T]{Success: false, Message: message, ResponseObject: zero, StatusCode: status}
}
