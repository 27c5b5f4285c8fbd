package awsclient

import (
	"errors"

	"github.com/aws/smithy-go"

	pkgerrors "github.com/agentstation/schemasync/pkg/errors"
)

// ErrorCode returns the remote error code and message carried by err,
// or empty strings when err did not come from a service response.
func ErrorCode(err error) (code, message string) {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode(), apiErr.ErrorMessage()
	}
	return "", ""
}

// IsNotFound reports whether a service answered with NotFoundException.
func IsNotFound(err error) bool {
	code, _ := ErrorCode(err)
	return code == "NotFoundException"
}

// WrapError classifies a failed call as kind, keeping the remote error
// code and message when the service sent one.
func WrapError(service, operation string, kind pkgerrors.Kind, err error) *pkgerrors.APIError {
	apiErr := pkgerrors.NewAPIError(service, operation, kind, err)
	if code, msg := ErrorCode(err); code != "" {
		apiErr.Code = code
		apiErr.Message = msg
	}
	return apiErr
}
