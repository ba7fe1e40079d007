// File: lixenwraith/stanflags/compose.go
package stanflags

import (
	"path/filepath"
	"strings"
)

// Add merges other into the receiver.
// Stanc and C++ options from other overwrite existing keys, except include_paths,
// whose entries are appended without duplicates. The user header from other is
// adopted only when the receiver has none.
func (o *CompilerOptions) Add(other *CompilerOptions) {
	o.ensureValues()
	if other == nil {
		return
	}
	for _, key := range other.stanc.Keys() {
		val, _ := other.stanc.Get(key)
		if key == OptIncludePaths {
			for _, path := range splitIncludePaths(val) {
				o.AddIncludePath(path)
			}
			continue
		}
		o.stanc.Set(key, val.clone())
	}
	for _, key := range other.cpp.Keys() {
		val, _ := other.cpp.Get(key)
		o.cpp.Set(key, val.clone())
	}
	if o.userHeader == "" && other.userHeader != "" {
		o.userHeader = other.userHeader
	}
}

// AddIncludePath appends path to include_paths unless it is already present.
func (o *CompilerOptions) AddIncludePath(path string) {
	o.ensureValues()
	val, ok := o.stanc.Get(OptIncludePaths)
	if !ok {
		o.stanc.Set(OptIncludePaths, List(path))
		return
	}
	paths := splitIncludePaths(val)
	for _, p := range paths {
		if p == path {
			if val.Kind() != KindList {
				o.stanc.Set(OptIncludePaths, List(paths...))
			}
			return
		}
	}
	o.stanc.Set(OptIncludePaths, List(append(paths, path)...))
}

// Compose formats the options as makefile arguments: stanc flags first, then
// C++ defines, then the user header. It does not validate; call Validate first.
// Define values use Value.String, so a boolean define renders as NAME=true or
// NAME=false in lowercase.
func (o *CompilerOptions) Compose() []string {
	opts := make([]string, 0, o.stanc.Len()+o.cpp.Len()+1)
	for _, key := range o.stanc.Keys() {
		val, _ := o.stanc.Get(key)
		switch key {
		case OptIncludePaths:
			paths := splitIncludePaths(val)
			for i, p := range paths {
				paths[i] = filepath.ToSlash(p)
			}
			opts = append(opts, stancFlagPrefix+OptIncludePaths+"="+strings.Join(paths, ","))
		case OptName:
			opts = append(opts, stancFlagPrefix+OptName+"="+val.String())
		default:
			opts = append(opts, stancFlagPrefix+key)
		}
	}
	for _, key := range o.cpp.Keys() {
		val, _ := o.cpp.Get(key)
		opts = append(opts, key+"="+val.String())
	}
	if o.userHeader != "" {
		opts = append(opts, DefineUserHeader+"="+o.userHeader)
	}
	return opts
}

// splitIncludePaths returns the entries of an include_paths value, splitting
// comma-separated strings. Values of other kinds yield their string form.
func splitIncludePaths(val Value) []string {
	if list, err := includePathList(val); err == nil {
		return list
	}
	return []string{val.String()}
}
