// File: lixenwraith/stanflags/builder.go
package stanflags

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ValidatorFunc defines the signature for a function that can validate CompilerOptions.
// It receives the merged and validated options and should return an error if they are unacceptable.
type ValidatorFunc func(o *CompilerOptions) error

// Builder provides a fluent interface for assembling compiler options from
// defaults, a file, the environment and command-line arguments
type Builder struct {
	defaults   *CompilerOptions
	opts       LoadOptions
	file       string
	origin     fileOrigin
	args       []string
	logger     zerolog.Logger
	err        error
	validators []ValidatorFunc
}

// NewBuilder creates a new options builder
func NewBuilder() *Builder {
	return &Builder{
		defaults:   New(),
		opts:       DefaultLoadOptions(),
		logger:     log.Logger,
		validators: make([]ValidatorFunc, 0),
	}
}

// WithStancOption sets a default stanc option. raw is converted with ValueOf.
func (b *Builder) WithStancOption(key string, raw any) *Builder {
	if err := b.defaults.stanc.SetAny(key, raw); err != nil && b.err == nil {
		b.err = err
	}
	return b
}

// WithCppOption sets a default C++ define. raw is converted with ValueOf.
func (b *Builder) WithCppOption(key string, raw any) *Builder {
	if err := b.defaults.cpp.SetAny(key, raw); err != nil && b.err == nil {
		b.err = err
	}
	return b
}

// WithUserHeader sets the default user header path
func (b *Builder) WithUserHeader(path string) *Builder {
	b.defaults.userHeader = path
	return b
}

// WithDefaults merges existing options into the builder defaults
func (b *Builder) WithDefaults(o *CompilerOptions) *Builder {
	b.defaults.Add(o)
	return b
}

// WithFile sets the configuration file path
func (b *Builder) WithFile(path string) *Builder {
	b.file, b.origin = path, originExplicit
	return b
}

// WithArgs sets the command-line arguments
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithEnvPrefix sets the environment variable prefix
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.opts.EnvPrefix = prefix
	return b
}

// WithEnvTransform sets a custom stanc option to environment variable transformer
func (b *Builder) WithEnvTransform(fn EnvTransformFunc) *Builder {
	b.opts.EnvTransform = fn
	return b
}

// WithSources sets the precedence order for option sources
func (b *Builder) WithSources(sources ...Source) *Builder {
	b.opts.Sources = sources
	return b
}

// WithLogger sets the logger handed to the built options
func (b *Builder) WithLogger(l zerolog.Logger) *Builder {
	b.logger = l
	return b
}

// WithValidator adds a validation function that runs after built-in validation.
// Multiple validators are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build loads every source, merges them by precedence and validates the result.
// A missing configuration file is not fatal: the options are returned together
// with an error wrapping ErrConfigNotFound.
func (b *Builder) Build() (*CompilerOptions, error) {
	if b.err != nil {
		return nil, b.err
	}

	merged := New(WithLogger(b.logger))
	var loadErrors []error

	// Layer sources from lowest to highest precedence
	for i := len(b.opts.Sources) - 1; i >= 0; i-- {
		source := b.opts.Sources[i]
		layer, err := b.load(source)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				loadErrors = append(loadErrors, err)
				continue
			}
			return nil, err
		}
		if layer == nil {
			continue
		}

		merged.Add(layer)
		// A higher source always wins the header, unlike Add
		if header, ok := layer.UserHeader(); ok {
			merged.userHeader = header
		}
		b.logger.Debug().Str("source", string(source)).Msg("merged compiler options")
	}

	validated, err := merged.Validate()
	if err != nil {
		return nil, fmt.Errorf("compiler options validation failed: %w", err)
	}

	for _, validator := range b.validators {
		if err := validator(validated); err != nil {
			return nil, fmt.Errorf("compiler options validation failed: %w", err)
		}
	}

	// ErrConfigNotFound or nil
	return validated, errors.Join(loadErrors...)
}

// load returns the options contributed by a single source, or nil if it has nothing to offer
func (b *Builder) load(source Source) (*CompilerOptions, error) {
	logOpt := WithLogger(b.logger)
	switch source {
	case SourceDefault:
		return b.defaults, nil
	case SourceFile:
		if b.file == "" {
			return nil, nil
		}
		o, err := LoadFile(b.file, logOpt)
		if errors.Is(err, ErrConfigNotFound) {
			return nil, fmt.Errorf("%s options file '%s': %w", b.origin, b.file, err)
		}
		return o, err
	case SourceEnv:
		return LoadEnv(b.opts, logOpt), nil
	case SourceCLI:
		if len(b.args) == 0 {
			return nil, nil
		}
		return LoadArgs(b.args, logOpt)
	default:
		return nil, fmt.Errorf("unknown option source %q", source)
	}
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *CompilerOptions {
	o, err := b.Build()
	if err != nil {
		// ErrConfigNotFound is not fatal, the options still hold defaults/env/cli values
		if !errors.Is(err, ErrConfigNotFound) {
			panic(fmt.Sprintf("compiler options build failed: %v", err))
		}
	}
	return o
}

// BuildFlags builds the options and composes them into makefile arguments
func (b *Builder) BuildFlags() ([]string, error) {
	o, err := b.Build()
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		return nil, err
	}
	return o.Compose(), err
}
