package assethost

import "fmt"

const (
	codeInvalid = "invalid"
)

// HostError represents an asset-host configuration or protocol error.
type HostError struct {
	Code    string
	Message string
}

func (e *HostError) Error() string {
	return e.Message
}

var (
	// ErrS3CredentialsRequired is returned when S3 credentials are missing.
	ErrS3CredentialsRequired = &HostError{Code: codeInvalid, Message: "S3 credentials are required"}

	// ErrS3BucketRequired is returned when the S3 bucket name is missing.
	ErrS3BucketRequired = &HostError{Code: codeInvalid, Message: "S3 bucket name is required"}
)

// ErrUnknownProvider creates an error for unknown asset-host providers.
func ErrUnknownProvider(provider string) error {
	return &HostError{
		Code:    codeInvalid,
		Message: fmt.Sprintf("unknown asset host provider: %s", provider),
	}
}
