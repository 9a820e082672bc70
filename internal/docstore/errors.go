package docstore

import "fmt"

// StoreError represents a document-store error with a code and message.
// The gateway converts these into its typed failures; handlers never see
// them directly.
type StoreError struct {
	Code    string
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}

const (
	codeInternal = "internal"
	codeInvalid  = "invalid"
)

var (
	// ErrPoolRequired is returned when the postgres provider is selected
	// without a connection pool.
	ErrPoolRequired = &StoreError{Code: codeInvalid, Message: "postgres document store requires a connection pool"}
)

// ErrUnknownProvider creates an error for unknown document-store providers.
func ErrUnknownProvider(provider string) error {
	return &StoreError{
		Code:    codeInvalid,
		Message: fmt.Sprintf("unknown document store provider: %s", provider),
	}
}
