package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/praise/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates a new error handler writing to stderr.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints a friendly message for err and returns it unchanged.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	out := h.Out

	praiseErr, _ := errors.As(err)
	detail := func(key string) interface{} {
		if praiseErr == nil {
			return ""
		}
		return praiseErr.Details[key]
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(out, "❌ Configuration file %v not found.\n", detail("path"))
		fmt.Fprintf(out, "Run 'praise config' to see the defaults in effect without one.\n")

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		fmt.Fprintf(out, "❌ %v\n", err)
		fmt.Fprintf(out, "Run 'praise config --schema' to see every accepted setting.\n")

	case errors.ErrCodeAssetsUnreadable:
		fmt.Fprintf(out, "❌ Cannot read the asset folder %v\n", detail("dir"))
		fmt.Fprintf(out, "Check that it is a directory you can list, or set assets.dir in praise.yml.\n")

	case errors.ErrCodeNoWorkers:
		fmt.Fprintf(out, "❌ No worker images found.\n")
		fmt.Fprintf(out, "Add .png, .jpg, .jpeg or .webp files to the asset folder.\n")

	case errors.ErrCodeInvalidInput:
		fmt.Fprintf(out, "❌ %s\n", messageOf(err, praiseErr))

	default:
		fmt.Fprintf(out, "❌ Error: %v\n", err)
	}

	if h.Verbose && praiseErr != nil {
		fmt.Fprintf(out, "\nError details:\n%s\n", praiseErr.ToJSON())
	}
	return err
}

func messageOf(err error, praiseErr *errors.PraiseError) string {
	if praiseErr != nil {
		return praiseErr.Message
	}
	return err.Error()
}
