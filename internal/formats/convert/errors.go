package convert

import (
	"errors"
	"fmt"
)

// Stage names the step a conversion was in when it failed.
type Stage string

const (
	StagePrepare Stage = "prepare"
	StageRead    Stage = "read"
	StageGroup   Stage = "group"
	StageWrite   Stage = "write"
)

// ErrNameCollision is wrapped when two categories sanitize to the same file name.
var ErrNameCollision = errors.New("categories map to the same file name")

// Error is the single failure kind returned by ExcelToText.
type Error struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("conversion failed during %s (%s): %v", e.Stage, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
