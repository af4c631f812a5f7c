package api

import "github.com/bitmark-inc/huddle-api/store"

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1000: "invalid signature",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1200: store.ErrRequestNotFound.Error(),
		1201: "request could not be expired",
	}

	errorInternalServer     = errorJSON(999)
	errorInvalidSignature   = errorJSON(1000)
	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorRequestNotFound = errorJSON(1200)
	errorExpireRequest   = errorJSON(1201)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
