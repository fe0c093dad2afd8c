package output

import (
	"errors"
	"os"

	"github.com/klytics/stallkit/internal/formats/convert"
	"github.com/klytics/stallkit/internal/formats/xlsx"
)

// Exit codes for consistent error reporting.
const (
	ExitOK          = 0 // success
	ExitUserError   = 1 // bad flags, missing file, missing column, bad job file
	ExitSystemError = 2 // directory or file write failures
)

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var missing *xlsx.MissingColumnError
	if errors.As(err, &missing) || errors.Is(err, os.ErrNotExist) || errors.Is(err, xlsx.ErrNoSheets) || errors.Is(err, convert.ErrNameCollision) {
		return ExitUserError
	}

	var convErr *convert.Error
	if errors.As(err, &convErr) {
		switch convErr.Stage {
		case convert.StagePrepare, convert.StageWrite:
			return ExitSystemError
		}
	}
	return ExitUserError
}
