package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeValidation       Code = "VALIDATION_ERROR"
	CodeBadCredentials   Code = "BAD_CREDENTIALS"
	CodeUnauthorized     Code = "UNAUTHORIZED"
	CodeConflict         Code = "CONFLICT"
	CodeNotFound         Code = "NOT_FOUND"
	CodeEmptyCart        Code = "EMPTY_CART"
	CodeMethodNotAllowed Code = "METHOD_NOT_ALLOWED"
	CodePaymentIntent    Code = "PAYMENT_INTENT_ERROR"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeDependency       Code = "DEPENDENCY_ERROR"
)

type Metadata struct {
	HTTPStatus     int
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		HTTPStatus:     http.StatusBadRequest,
		PublicMessage:  "Invalid data.",
		DetailsAllowed: true,
	},
	// Failed logins are reported as 400 with non-field errors, matching the
	// account endpoints' contract.
	CodeBadCredentials: {
		HTTPStatus:     http.StatusBadRequest,
		PublicMessage:  "Login failed.",
		DetailsAllowed: true,
	},
	CodeUnauthorized: {
		HTTPStatus:     http.StatusUnauthorized,
		PublicMessage:  "User is not authenticated.",
		DetailsAllowed: false,
	},
	// Duplicate accounts surface as 400, not 409.
	CodeConflict: {
		HTTPStatus:     http.StatusBadRequest,
		PublicMessage:  "Conflict detected.",
		DetailsAllowed: true,
	},
	CodeNotFound: {
		HTTPStatus:     http.StatusNotFound,
		PublicMessage:  "Resource not found.",
		DetailsAllowed: false,
	},
	CodeEmptyCart: {
		HTTPStatus:     http.StatusBadRequest,
		PublicMessage:  "Cart is empty.",
		DetailsAllowed: false,
	},
	CodeMethodNotAllowed: {
		HTTPStatus:     http.StatusMethodNotAllowed,
		PublicMessage:  "Invalid request method.",
		DetailsAllowed: false,
	},
	CodePaymentIntent: {
		HTTPStatus:     http.StatusInternalServerError,
		PublicMessage:  "PaymentIntent creation failed",
		DetailsAllowed: false,
	},
	CodeInternal: {
		HTTPStatus:     http.StatusInternalServerError,
		PublicMessage:  "Internal server error.",
		DetailsAllowed: false,
	},
	CodeDependency: {
		HTTPStatus:     http.StatusServiceUnavailable,
		PublicMessage:  "Dependency unavailable.",
		DetailsAllowed: false,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
