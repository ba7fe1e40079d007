// File: lixenwraith/stanflags/convenience.go
package stanflags

import (
	"fmt"
	"os"
)

// Quick builds validated compiler options with a single call, reading the
// given file, environment variables under envPrefix and os.Args[1:]
// with the standard precedence CLI > Env > File.
func Quick(envPrefix, configFile string) (*CompilerOptions, error) {
	return NewBuilder().
		WithEnvPrefix(envPrefix).
		WithFile(configFile).
		WithArgs(os.Args[1:]).
		Build()
}

// MustQuick is like Quick but panics on error
func MustQuick(envPrefix, configFile string) *CompilerOptions {
	o, err := Quick(envPrefix, configFile)
	if err != nil {
		panic(fmt.Sprintf("compiler options initialization failed: %v", err))
	}
	return o
}

// FromMaps builds options from plain maps. Go maps carry no order, so keys
// are inserted in sorted order; use Values directly when order matters.
func FromMaps(stanc, cpp map[string]any, userHeader string, opts ...Option) (*CompilerOptions, error) {
	o := New(append(opts, WithUserHeader(userHeader))...)
	if err := fillValues(o.stanc, stanc, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", sectionStanc, err)
	}
	if err := fillValues(o.cpp, cpp, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", sectionCpp, err)
	}
	return o, nil
}

// Flags validates the options and composes them in one step
func (o *CompilerOptions) Flags() ([]string, error) {
	validated, err := o.Validate()
	if err != nil {
		return nil, err
	}
	return validated.Compose(), nil
}
