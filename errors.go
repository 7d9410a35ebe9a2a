package proposalpdf

import (
	"errors"
	"fmt"
)

// Sentinel errors for generation failures.
var (
	ErrAssetLoad   = errors.New("proposalpdf: image asset could not be loaded")
	ErrUnknownMode = errors.New("proposalpdf: unknown output mode")
	ErrNilDocument = errors.New("proposalpdf: nil document")
)

// GenerateError reports the stage at which a generation call failed.
type GenerateError struct {
	Op  string // "assets", "layout" or "output"
	Err error
}

func (e *GenerateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("proposalpdf.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("proposalpdf.%s: unknown error", e.Op)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

func newGenerateError(op string, err error) *GenerateError {
	return &GenerateError{Op: op, Err: err}
}

// assetError marks err as an asset failure so that errors.Is matches
// ErrAssetLoad as well as the underlying cause.
func assetError(err error) *GenerateError {
	return newGenerateError("assets", fmt.Errorf("%w: %w", ErrAssetLoad, err))
}
