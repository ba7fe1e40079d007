// File: lixenwraith/stanflags/errors.go
package stanflags

import (
	"errors"
	"fmt"
	"strings"
)

// Validation failures. Every typed error below unwraps to one of these.
var (
	ErrUnknownOption          = errors.New("unknown stanc compiler option")
	ErrInvalidIncludePaths    = errors.New("invalid include paths")
	ErrInvalidOpenCLID        = errors.New("invalid OpenCL id")
	ErrHeaderNotFound         = errors.New("user header file cannot be found")
	ErrInvalidHeaderExtension = errors.New("header file must end in .hpp")
	ErrPathContainsSpace      = errors.New("user header must be in a folder with no spaces in path")
)

// Loader failures.
var (
	ErrConfigNotFound = errors.New("configuration file not found")
	ErrCLIParse       = errors.New("failed to parse command-line arguments")
)

// UnknownOptionError reports a stanc option that is neither known nor ignorable.
type UnknownOptionError struct {
	Key string
}

func (e *UnknownOptionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownOption, e.Key)
}

func (e *UnknownOptionError) Unwrap() error { return ErrUnknownOption }

// IncludePathsError reports an include_paths value of the wrong kind,
// or the full list of directories that do not exist.
type IncludePathsError struct {
	Kind    Kind
	Missing []string
}

func (e *IncludePathsError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: %s", ErrInvalidIncludePaths, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s: expecting list or string, found type: %s", ErrInvalidIncludePaths, e.Kind)
}

func (e *IncludePathsError) Unwrap() error { return ErrInvalidIncludePaths }

// OpenCLIDError reports an OpenCL device or platform id that is not a non-negative integer.
type OpenCLIDError struct {
	Key   string
	Value Value
}

func (e *OpenCLIDError) Error() string {
	return fmt.Sprintf("%s: %s must be a non-negative integer value, found %s", ErrInvalidOpenCLID, e.Key, e.Value)
}

func (e *OpenCLIDError) Unwrap() error { return ErrInvalidOpenCLID }

// HeaderError reports a problem with the user header path.
// Err is one of ErrHeaderNotFound, ErrInvalidHeaderExtension or ErrPathContainsSpace.
type HeaderError struct {
	Path string
	Err  error
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Path)
}

func (e *HeaderError) Unwrap() error { return e.Err }
