package errors

import (
	"errors"
	"fmt"

	"github.com/muhammadheryan/store/constant"
)

type CustomError struct {
	errType constant.ErrorType
	message string
}

func (c CustomError) Error() string {
	if c.message != "" {
		return c.message
	}
	return constant.ErrorTypeMessage[c.errType]
}

func (c CustomError) Type() constant.ErrorType {
	return c.errType
}

func (c CustomError) ErrorCode() string {
	return constant.ErrorTypeCode[c.errType]
}

func (c CustomError) ErrorHTTPCode() int {
	return constant.ErrorTypeHTTPCode[c.errType]
}

func SetCustomError(errorType constant.ErrorType) CustomError {
	return CustomError{
		errType: errorType,
	}
}

// SetCustomErrorf builds a CustomError whose message replaces the default one for its type.
func SetCustomErrorf(errorType constant.ErrorType, format string, args ...any) CustomError {
	return CustomError{
		errType: errorType,
		message: fmt.Sprintf(format, args...),
	}
}

// AsCustomError unwraps err into a CustomError when one is present in the chain.
func AsCustomError(err error) (CustomError, bool) {
	var ce CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return CustomError{}, false
}

// IsType reports whether err carries a CustomError of the given type.
func IsType(err error, errorType constant.ErrorType) bool {
	ce, ok := AsCustomError(err)
	return ok && ce.errType == errorType
}
