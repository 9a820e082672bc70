package gateway

import "fmt"

// FetchError means the catalog listing failed. Consumers surface it as a
// catalog-wide error state with a retry affordance.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: failed to fetch products: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// UploadError means the asset upload failed. Creation is aborted before any
// document write, so there is no remote side effect.
type UploadError struct {
	Op  string
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s: failed to upload image: %v", e.Op, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// PersistError means the document write failed after a successful upload.
// AssetURL is the uploaded image left on the host with no referencing
// document. No compensation is attempted; callers may log or reconcile out
// of band.
type PersistError struct {
	Op       string
	AssetURL string
	Err      error
}

func (e *PersistError) Error() string {
	if e.AssetURL != "" {
		return fmt.Sprintf("%s: failed to persist product (asset %s orphaned): %v", e.Op, e.AssetURL, e.Err)
	}
	return fmt.Sprintf("%s: failed to persist product: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
