package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrForbidden
	ErrProductExists
	ErrInsufficientStock
	ErrInvalidOffset
	ErrEndpointNotFound
	ErrMethodNotAllowed
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:           "success",
	ErrInternal:          "An unexpected error occurred. Please try again later",
	ErrNotFound:          "data not found",
	ErrInvalidRequest:    "invalid request",
	ErrUnauthorize:       "Full authentication is required to access this resource",
	ErrForbidden:         "Access Denied",
	ErrProductExists:     "product already exists",
	ErrInsufficientStock: "product is out of stock",
	ErrInvalidOffset:     "Offset must be greater than or equal to 0",
	ErrEndpointNotFound:  "The endpoint is not provided by this API. Please check the API documentation",
	ErrMethodNotAllowed:  "The HTTP method is not supported by this endpoint",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:           http.StatusOK,
	ErrInternal:          http.StatusInternalServerError,
	ErrNotFound:          http.StatusNotFound,
	ErrInvalidRequest:    http.StatusBadRequest,
	ErrUnauthorize:       http.StatusUnauthorized,
	ErrForbidden:         http.StatusForbidden,
	ErrProductExists:     http.StatusConflict,
	ErrInsufficientStock: http.StatusConflict,
	ErrInvalidOffset:     http.StatusBadRequest,
	ErrEndpointNotFound:  http.StatusNotFound,
	ErrMethodNotAllowed:  http.StatusMethodNotAllowed,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:           "0000",
	ErrInternal:          "0001",
	ErrNotFound:          "0002",
	ErrInvalidRequest:    "0003",
	ErrUnauthorize:       "0004",
	ErrForbidden:         "0005",
	ErrProductExists:     "0006",
	ErrInsufficientStock: "0007",
	ErrInvalidOffset:     "0008",
	ErrEndpointNotFound:  "0009",
	ErrMethodNotAllowed:  "0010",
}
