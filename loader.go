// FILE: lixenwraith/stanflags/loader.go
package stanflags

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Source represents a configuration source, used to define load precedence
type Source string

const (
	// SourceDefault represents options given directly to the builder
	SourceDefault Source = "default"
	// SourceFile represents options loaded from a configuration file
	SourceFile Source = "file"
	// SourceEnv represents options loaded from environment variables
	SourceEnv Source = "env"
	// SourceCLI represents options loaded from command-line arguments
	SourceCLI Source = "cli"
)

// Document sections, shared by files, environment names and CLI paths.
const (
	sectionStanc      = "stanc_options"
	sectionCpp        = "cpp_options"
	sectionUserHeader = "user_header"

	cliStanc  = "stanc"
	cliCpp    = "cpp"
	cliConfig = "config"

	envStanc      = "STANC_"
	envCpp        = "CPP_"
	envUserHeader = "USER_HEADER"
)

// DefaultEnvPrefix is the environment prefix used when none is configured.
const DefaultEnvPrefix = "STANFLAGS_"

// EnvTransformFunc converts a stanc option name to an environment variable name
type EnvTransformFunc func(option string) string

// LoadOptions configures how options are loaded from multiple sources
type LoadOptions struct {
	// Sources defines the precedence order (first = highest priority)
	// Default: [SourceCLI, SourceEnv, SourceFile, SourceDefault]
	Sources []Source

	// EnvPrefix is prepended to environment variable names
	// Example: "STANFLAGS_" maps "use-opencl" to "STANFLAGS_STANC_USE_OPENCL"
	EnvPrefix string

	// EnvTransform customizes how stanc option names map to environment variables
	// If nil, uses default transformation
	EnvTransform EnvTransformFunc
}

// DefaultLoadOptions returns the standard load options
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Sources:   []Source{SourceCLI, SourceEnv, SourceFile, SourceDefault},
		EnvPrefix: DefaultEnvPrefix,
	}
}

// LoadFile reads compiler options from a TOML, JSON or YAML file.
// Option order within each section follows the file.
// A missing file returns ErrConfigNotFound.
func LoadFile(path string, opts ...Option) (*CompilerOptions, error) {
	fileData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	// Try extension first, then content
	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(fileData)
	}

	var doc orderedDocument
	switch format {
	case "toml":
		doc, err = parseTOML(fileData)
	case "json":
		doc, err = parseJSON(fileData)
	case "yaml":
		doc, err = parseYAML(fileData)
	default:
		return nil, fmt.Errorf("unable to determine config format for file '%s'", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s config file '%s': %w", strings.ToUpper(format), path, err)
	}

	o, err := doc.options(opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid config file '%s': %w", path, err)
	}
	o.logger.Debug().Str("path", path).Str("format", format).Msg("loaded compiler options file")
	return o, nil
}

// LoadEnv reads compiler options from environment variables:
// <prefix>STANC_<OPTION> for each known stanc option, every <prefix>CPP_<NAME>
// as a C++ define and <prefix>USER_HEADER for the user header.
func LoadEnv(lo LoadOptions, opts ...Option) *CompilerOptions {
	transform := lo.EnvTransform
	if transform == nil {
		transform = defaultEnvTransform(lo.EnvPrefix)
	}

	o := New(opts...)
	for _, key := range StancOptions {
		if value, exists := os.LookupEnv(transform(key)); exists {
			o.stanc.Set(key, parseValue(value))
		}
	}

	cppPrefix := lo.EnvPrefix + envCpp
	var defines []string
	for _, kv := range os.Environ() {
		name, value, _ := strings.Cut(kv, "=")
		if define, ok := strings.CutPrefix(name, cppPrefix); ok && define != "" {
			defines = append(defines, define+"="+value)
		}
	}
	sort.Strings(defines)
	for _, kv := range defines {
		define, value, _ := strings.Cut(kv, "=")
		o.cpp.Set(define, parseValue(value))
	}

	if header, exists := os.LookupEnv(lo.EnvPrefix + envUserHeader); exists {
		o.userHeader = header
	}
	return o
}

// LoadArgs reads compiler options from command-line arguments of the form
// --stanc.<option>[=value], --cpp.<NAME>[=value] and --user_header=<path>.
// A flag without a value is treated as true; arguments not starting with -- and
// the --config flag are skipped.
func LoadArgs(args []string, opts ...Option) (*CompilerOptions, error) {
	parsed, err := parseArgs(args)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCLIParse, err)
	}

	o := New(opts...)
	for _, arg := range parsed {
		section, key, _ := strings.Cut(arg.path, ".")
		switch {
		case section == cliStanc && key != "":
			o.stanc.Set(key, parseValue(arg.value))
		case section == cliCpp && key != "":
			o.cpp.Set(key, parseValue(arg.value))
		case section == sectionUserHeader && key == "":
			o.userHeader = arg.value
		case section == cliConfig && key == "":
			// Consumed by file discovery
		default:
			return nil, fmt.Errorf("%w: unknown option path %q", ErrCLIParse, arg.path)
		}
	}
	return o, nil
}

// defaultEnvTransform creates the default environment variable transformer
func defaultEnvTransform(prefix string) EnvTransformFunc {
	return func(option string) string {
		env := strings.ReplaceAll(option, "-", "_")
		env = strings.ToUpper(env)
		return prefix + envStanc + env
	}
}

// argPair is a single parsed command-line option, kept in argument order
type argPair struct {
	path  string
	value string
}

// parseArgs processes command-line arguments into ordered path/value pairs.
func parseArgs(args []string) ([]argPair, error) {
	var result []argPair
	i := 0
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			// Skip non-flag arguments
			i++
			continue
		}

		argContent := strings.TrimPrefix(arg, "--")
		if argContent == "" {
			// Skip "--" argument if used as a separator
			i++
			continue
		}

		var keyPath string
		var valueStr string

		// Check for "--key=value" format
		if strings.Contains(argContent, "=") {
			parts := strings.SplitN(argContent, "=", 2)
			keyPath = parts[0]
			valueStr = parts[1]
			i++
		} else {
			keyPath = argContent
			// Boolean flag if the next arg is another flag or there are no more args
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
				valueStr = "true"
				i++
			} else {
				valueStr = args[i+1]
				i += 2
			}
		}

		if keyPath == "" {
			// Skip invalid flags like --=value
			continue
		}

		segments := strings.SplitN(keyPath, ".", 2)
		for _, segment := range segments {
			if !isValidKeySegment(segment) {
				return nil, fmt.Errorf("invalid command-line key segment %q in path %q", segment, keyPath)
			}
		}

		result = append(result, argPair{path: keyPath, value: valueStr})
	}

	return result, nil
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// Try JSON first (strict format)
	var jsonTest any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return "json"
	}

	// Try TOML before YAML, since most TOML documents are not valid YAML
	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	var yamlTest map[string]any
	if err := yaml.Unmarshal(bytes.TrimSpace(data), &yamlTest); err == nil && yamlTest != nil {
		return "yaml"
	}

	return ""
}
