// File: lixenwraith/stanflags/config.go
package stanflags

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Option names with special handling.
const (
	OptIncludePaths   = "include_paths"
	OptName           = "name"
	OptUseOpenCL      = "use-opencl"
	OptAllowUndefined = "allow_undefined"

	DefineStanOpenCL       = "STAN_OPENCL"
	DefineOpenCLDeviceID   = "OPENCL_DEVICE_ID"
	DefineOpenCLPlatformID = "OPENCL_PLATFORM_ID"
	DefineUserHeader       = "USER_HEADER"

	stanOpenCLEnabled = "TRUE"
	stancFlagPrefix   = "STANCFLAGS+=--"
	headerExtension   = ".hpp"
)

// StancOptions lists the stanc options passed through to the makefile.
var StancOptions = []string{
	"O",
	OptAllowUndefined,
	OptUseOpenCL,
	"warn-uninitialized",
	OptIncludePaths,
	OptName,
	"warn-pedantic",
}

// StancIgnoreOptions lists stanc options that are accepted but dropped during validation.
var StancIgnoreOptions = []string{
	"debug-lex",
	"debug-parse",
	"debug-ast",
	"debug-decorated-ast",
	"debug-generate-data",
	"debug-mir",
	"debug-mir-pretty",
	"debug-optimized-mir",
	"debug-optimized-mir-pretty",
	"debug-transformed-mir",
	"debug-transformed-mir-pretty",
	"dump-stan-math-signatures",
	"auto-format",
	"print-canonical",
	"print-cpp",
	"o",
	"help",
	"version",
}

var (
	knownStancOptions  = toSet(StancOptions)
	ignoreStancOptions = toSet(StancIgnoreOptions)
)

// CompilerOptions holds user-specified flags for stanc and the C++ compiler.
// New is the usual constructor; a zero value is usable and starts empty.
//
// stanc holds transpiler options, cpp holds makefile NAME=value defines and
// userHeader is the path to a user .hpp file, empty when absent.
type CompilerOptions struct {
	stanc      *Values
	cpp        *Values
	userHeader string
	logger     zerolog.Logger
}

// Option configures a CompilerOptions at construction.
type Option func(*CompilerOptions)

// WithStancOptions sets the stanc option mapping. The mapping is used as-is, not copied.
func WithStancOptions(v *Values) Option {
	return func(o *CompilerOptions) {
		if v != nil {
			o.stanc = v
		}
	}
}

// WithCppOptions sets the makefile define mapping. The mapping is used as-is, not copied.
func WithCppOptions(v *Values) Option {
	return func(o *CompilerOptions) {
		if v != nil {
			o.cpp = v
		}
	}
}

// WithUserHeader sets the user header path. An empty path means no header.
func WithUserHeader(path string) Option {
	return func(o *CompilerOptions) {
		o.userHeader = path
	}
}

// WithLogger replaces the global zerolog logger used for validation messages.
func WithLogger(l zerolog.Logger) Option {
	return func(o *CompilerOptions) {
		o.logger = l
	}
}

// New creates a CompilerOptions. Absent inputs default to empty mappings and no header.
func New(opts ...Option) *CompilerOptions {
	o := &CompilerOptions{
		stanc:  NewValues(),
		cpp:    NewValues(),
		logger: log.Logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// StancOptions returns the stanc option mapping.
func (o *CompilerOptions) StancOptions() *Values { return o.stanc }

// CppOptions returns the makefile define mapping.
func (o *CompilerOptions) CppOptions() *Values { return o.cpp }

// UserHeader returns the user header path and whether one is set.
func (o *CompilerOptions) UserHeader() (string, bool) {
	return o.userHeader, o.userHeader != ""
}

// Clone returns a deep copy sharing only the logger.
func (o *CompilerOptions) Clone() *CompilerOptions {
	return &CompilerOptions{
		stanc:      o.stanc.Clone(),
		cpp:        o.cpp.Clone(),
		userHeader: o.userHeader,
		logger:     o.logger,
	}
}

func (o *CompilerOptions) String() string {
	return fmt.Sprintf("stanc_options=%s, cpp_options=%s, user_header=%s", o.stanc, o.cpp, o.userHeader)
}

// ensureValues allocates the option mappings of a zero-value CompilerOptions.
func (o *CompilerOptions) ensureValues() {
	if o.stanc == nil {
		o.stanc = NewValues()
	}
	if o.cpp == nil {
		o.cpp = NewValues()
	}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
