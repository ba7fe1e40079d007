// File: lixenwraith/stanflags/validate.go
package stanflags

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// Validate checks a copy of the options and returns the enriched copy.
// Validation may add derived entries such as STAN_OPENCL=TRUE or allow_undefined=true;
// those appear only in the returned value. The receiver is left untouched.
// On failure the returned options are nil and the error is the first violation found.
func (o *CompilerOptions) Validate() (*CompilerOptions, error) {
	out := o.Clone()
	if err := out.ValidateStancOptions(); err != nil {
		return nil, err
	}
	if err := out.ValidateCppOptions(); err != nil {
		return nil, err
	}
	if err := out.ValidateUserHeader(); err != nil {
		return nil, err
	}
	return out, nil
}

// ValidateStancOptions checks stanc options and their consistency with the C++ options.
// It mutates the receiver in place, and changes made before a failure are kept.
func (o *CompilerOptions) ValidateStancOptions() error {
	o.ensureValues()
	var ignore []string
	var paths []string
	normalized := false

	for _, key := range o.stanc.Keys() {
		val, _ := o.stanc.Get(key)
		switch {
		case ignoreStancOptions[key]:
			o.logger.Info().Str("option", key).Msg("ignoring compiler option")
			ignore = append(ignore, key)
		case !knownStancOptions[key]:
			return &UnknownOptionError{Key: key}
		case key == OptIncludePaths:
			list, err := includePathList(val)
			if err != nil {
				return err
			}
			paths, normalized = list, true
		case key == OptUseOpenCL:
			o.cpp.Set(DefineStanOpenCL, String(stanOpenCLEnabled))
		}
	}

	for _, key := range ignore {
		o.stanc.Delete(key)
	}
	if !normalized {
		return nil
	}

	o.stanc.Set(OptIncludePaths, List(paths...))
	var missing []string
	for _, dir := range paths {
		info, err := os.Stat(dir)
		switch {
		case err == nil && info.IsDir():
		case err == nil || notExist(err):
			missing = append(missing, dir)
		default:
			return fmt.Errorf("failed to stat include path '%s': %w", dir, err)
		}
	}
	if len(missing) > 0 {
		return &IncludePathsError{Kind: KindList, Missing: missing}
	}
	return nil
}

// ValidateCppOptions checks the OpenCL device and platform ids.
// Either id being present forces STAN_OPENCL=TRUE.
func (o *CompilerOptions) ValidateCppOptions() error {
	o.ensureValues()
	for _, key := range []string{DefineOpenCLDeviceID, DefineOpenCLPlatformID} {
		val, ok := o.cpp.Get(key)
		if !ok {
			continue
		}
		o.cpp.Set(DefineStanOpenCL, String(stanOpenCLEnabled))
		if id, isInt := val.AsInt(); !isInt || id < 0 {
			return &OpenCLIDError{Key: key, Value: val}
		}
	}
	return nil
}

// ValidateUserHeader checks that the user header is an existing .hpp file whose
// absolute path has no spaces. It rewrites the header path to absolute form and
// sets allow_undefined unless the caller already chose a value.
func (o *CompilerOptions) ValidateUserHeader() error {
	o.ensureValues()
	if o.userHeader == "" {
		return nil
	}

	info, err := os.Stat(o.userHeader)
	if err != nil {
		if notExist(err) {
			return &HeaderError{Path: o.userHeader, Err: ErrHeaderNotFound}
		}
		return fmt.Errorf("failed to stat user header '%s': %w", o.userHeader, err)
	}
	if !info.Mode().IsRegular() {
		return &HeaderError{Path: o.userHeader, Err: ErrHeaderNotFound}
	}
	if !strings.HasSuffix(o.userHeader, headerExtension) {
		return &HeaderError{Path: o.userHeader, Err: ErrInvalidHeaderExtension}
	}

	if !o.stanc.Has(OptAllowUndefined) {
		o.stanc.Set(OptAllowUndefined, Bool(true))
	}

	abs, err := filepath.Abs(o.userHeader)
	if err != nil {
		return fmt.Errorf("failed to resolve user header '%s': %w", o.userHeader, err)
	}
	o.userHeader = abs

	if strings.Contains(abs, " ") {
		return &HeaderError{Path: abs, Err: ErrPathContainsSpace}
	}
	return nil
}

// includePathList normalizes an include_paths value: a comma-separated string
// is split, a list is taken as-is, anything else is rejected.
func includePathList(val Value) ([]string, error) {
	switch val.Kind() {
	case KindString:
		s, _ := val.AsString()
		return strings.Split(s, ","), nil
	case KindList:
		list, _ := val.AsList()
		return list, nil
	default:
		return nil, &IncludePathsError{Kind: val.Kind()}
	}
}

// notExist reports whether a stat error means nothing is at the path,
// including paths that run through a regular file.
func notExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR)
}
