package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *PraiseError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *PraiseError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// AssetsUnreadable creates an error for an asset directory that exists but cannot be listed
func AssetsUnreadable(dir string, err error) *PraiseError {
	return Wrap(err, ErrCodeAssetsUnreadable, fmt.Sprintf("cannot read asset directory: %s", dir)).
		WithDetail("dir", dir)
}

// ImageMissing creates an error for a worker image that does not exist on disk
func ImageMissing(path string) *PraiseError {
	return New(ErrCodeImageMissing, fmt.Sprintf("image not found: %s", path)).
		WithDetail("path", path)
}

// ImageDecode creates an error for an image that could not be decoded or re-encoded
func ImageDecode(path string, err error) *PraiseError {
	return Wrap(err, ErrCodeImageDecode, fmt.Sprintf("cannot decode image: %s", path)).
		WithDetail("path", path)
}

// NoWorkers is returned when an interaction needs a worker but none were enumerated
func NoWorkers() *PraiseError {
	return New(ErrCodeNoWorkers, "no worker images available")
}

// IndexOutOfRange creates an invalid input error for a worker index outside the list
func IndexOutOfRange(index, count int) *PraiseError {
	return New(ErrCodeInvalidInput,
		fmt.Sprintf("worker index %d out of range [0, %d)", index, count)).
		WithDetail("index", index).
		WithDetail("count", count)
}

// SessionNotFound creates a session not found error
func SessionNotFound(id string) *PraiseError {
	return New(ErrCodeSessionNotFound, fmt.Sprintf("session '%s' not found", id)).
		WithDetail("session", id)
}
