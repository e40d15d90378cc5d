package types

import (
	"fmt"

	"github.com/pkg/errors"
)

// CommandError reports an external command that exited non-zero, could not
// be started, or exited zero without the success marker some AIX commands
// use instead of a meaningful exit status.
type CommandError struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
	Reason   string
}

func (e *CommandError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return fmt.Sprintf("command '%s' failed with return code %d", e.Command, e.ExitCode)
}

func IsCommandError(err error) bool {
	var e *CommandError
	return errors.As(err, &e)
}

// ParseError reports command output that does not carry an expected field.
type ParseError struct {
	What string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to get %s, parsing error", e.What)
}

func IsParseError(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

// UnsafeStateError reports a rootvg whose layout cannot be cloned.
type UnsafeStateError struct {
	Reason string
}

func (e *UnsafeStateError) Error() string {
	return e.Reason
}

func IsUnsafeStateError(err error) bool {
	var e *UnsafeStateError
	return errors.As(err, &e)
}

// ConflictError reports a pre-existing alternate rootvg that blocks a copy.
type ConflictError struct {
	Disk string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("an alternate disk already exists on disk %s", e.Disk)
}

func IsConflictError(err error) bool {
	var e *ConflictError
	return errors.As(err, &e)
}

// ValidationError reports a caller supplied disk that does not qualify for
// the requested operation.
type ValidationError struct {
	Disk    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// CapacityError reports target disks that cannot hold even the used part of
// the rootvg.
type CapacityError struct {
	TotalMB    int64
	RequiredMB int64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("alternate disks too small (%d < %d)", e.TotalMB, e.RequiredMB)
}

func IsCapacityError(err error) bool {
	var e *CapacityError
	return errors.As(err, &e)
}

// NoCandidateError reports that automatic selection found no usable disk.
type NoCandidateError struct {
	Message string
}

func (e *NoCandidateError) Error() string {
	return e.Message
}

func IsNoCandidateError(err error) bool {
	var e *NoCandidateError
	return errors.As(err, &e)
}

// MirroredStateError reports a mirrored rootvg that cannot be cloned
// because the caller did not allow suspending the mirror.
type MirroredStateError struct{}

func (e *MirroredStateError) Error() string {
	return "the rootvg is mirrored and the force option is not set"
}

func IsMirroredStateError(err error) bool {
	var e *MirroredStateError
	return errors.As(err, &e)
}

// NotFoundError reports that no alternate rootvg exists to clean.
type NotFoundError struct{}

func (e *NotFoundError) Error() string {
	return "there is no alternate install rootvg"
}

func IsNotFoundError(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}
