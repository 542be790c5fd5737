// Package renamer performs in-directory renames for Retitle without overwriting files.
package renamer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// RenameErrorType represents the type of rename error.
type RenameErrorType string

const (
	// SourceNotFound indicates the source file does not exist.
	SourceNotFound RenameErrorType = "SOURCE_NOT_FOUND"
	// DestinationExists indicates a file already exists at the destination.
	DestinationExists RenameErrorType = "DESTINATION_EXISTS"
	// PermissionDenied indicates insufficient permissions for the operation.
	PermissionDenied RenameErrorType = "PERMISSION_DENIED"
	// InvalidName indicates a name that would leave the directory.
	InvalidName RenameErrorType = "INVALID_NAME"
)

// RenameError represents an error that occurred while renaming a file.
type RenameError struct {
	Type RenameErrorType
	Path string
	Err  error
}

func (e *RenameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Path)
}

func (e *RenameError) Unwrap() error {
	return e.Err
}

// IsCollision reports whether err is a DestinationExists rename error.
func IsCollision(err error) bool {
	var renameErr *RenameError
	return errors.As(err, &renameErr) && renameErr.Type == DestinationExists
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Rename renames dir/from to dir/to.
// It never replaces an existing file: if dir/to exists and is not the source
// itself (a case-only rename on a case-insensitive filesystem) a RenameError of
// type DestinationExists is returned and nothing changes.
func Rename(dir, from, to string) error {
	if err := checkName(to); err != nil {
		return err
	}

	src := filepath.Join(dir, from)
	dst := filepath.Join(dir, to)

	srcInfo, err := os.Lstat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return &RenameError{Type: SourceNotFound, Path: src, Err: err}
		}
		return err
	}

	if from == to {
		return nil
	}

	if dstInfo, err := os.Lstat(dst); err == nil {
		if !os.SameFile(srcInfo, dstInfo) {
			return &RenameError{Type: DestinationExists, Path: dst}
		}
	}

	if err := os.Rename(src, dst); err != nil {
		if os.IsPermission(err) {
			return &RenameError{Type: PermissionDenied, Path: src, Err: err}
		}
		if os.IsNotExist(err) {
			return &RenameError{Type: SourceNotFound, Path: src, Err: err}
		}
		return err
	}

	return nil
}

// checkName rejects destination names that are empty or contain a path separator.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return &RenameError{Type: InvalidName, Path: name}
	}
	return nil
}
