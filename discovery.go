// FILE: lixenwraith/stanflags/discovery.go
package stanflags

import (
	"os"
	"path/filepath"
	"strings"
)

// FileDiscoveryOptions configures automatic options file discovery
type FileDiscoveryOptions struct {
	// Base name of the options file (without extension)
	Name string

	// Extensions to try (in order)
	Extensions []string

	// Custom search paths (in addition to defaults)
	Paths []string

	// Environment variable to check for explicit path
	EnvVar string

	// CLI flag to check (e.g., "--config")
	CLIFlag string

	// Whether to search in XDG config directories
	UseXDG bool

	// Whether to search in current directory
	UseCurrentDir bool
}

// DefaultDiscoveryOptions returns sensible defaults
func DefaultDiscoveryOptions(appName string) FileDiscoveryOptions {
	return FileDiscoveryOptions{
		Name:          appName,
		Extensions:    []string{".toml", ".yaml", ".yml", ".json"},
		EnvVar:        strings.ToUpper(appName) + "_CONFIG",
		CLIFlag:       "--config",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// fileOrigin records how the builder's options file was chosen
type fileOrigin string

const (
	originExplicit fileOrigin = "explicit"
	originFlag     fileOrigin = "flag"
	originEnv      fileOrigin = "environment"
	originSearch   fileOrigin = "search"
)

// WithFileDiscovery enables automatic options file discovery.
// Call it after WithArgs so the CLI flag can be seen. A path named by the CLI
// flag or the environment variable is used even if it does not exist, so Build
// reports it as missing; searched locations only match existing files.
func (b *Builder) WithFileDiscovery(opts FileDiscoveryOptions) *Builder {
	path, origin := discoverFile(opts, b.args)
	if path == "" {
		b.logger.Debug().Str("name", opts.Name).Msg("no compiler options file discovered")
		return b
	}
	b.file, b.origin = path, origin
	b.logger.Debug().Str("path", path).Str("origin", string(origin)).Msg("discovered compiler options file")
	return b
}

// discoverFile returns the options file to load and how it was found.
func discoverFile(opts FileDiscoveryOptions, args []string) (string, fileOrigin) {
	if path := flagValue(args, opts.CLIFlag); path != "" {
		return path, originFlag
	}
	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return path, originEnv
		}
	}

	searchPaths := append([]string{}, opts.Paths...)
	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			searchPaths = append(searchPaths, cwd)
		}
	}
	if opts.UseXDG {
		searchPaths = append(searchPaths, getXDGConfigPaths(opts.Name)...)
	}

	for _, dir := range searchPaths {
		for _, ext := range opts.Extensions {
			path := filepath.Join(dir, opts.Name+ext)
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				return path, originSearch
			}
		}
	}
	return "", ""
}

// flagValue returns the value of flag in "--flag value" or "--flag=value" form
func flagValue(args []string, flag string) string {
	if flag == "" {
		return ""
	}
	for i, arg := range args {
		if arg == flag && i+1 < len(args) {
			return args[i+1]
		}
		if value, ok := strings.CutPrefix(arg, flag+"="); ok {
			return value
		}
	}
	return ""
}

// getXDGConfigPaths returns XDG-compliant config search paths
func getXDGConfigPaths(appName string) []string {
	var paths []string

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, appName))
	} else if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if xdgDirs := os.Getenv("XDG_CONFIG_DIRS"); xdgDirs != "" {
		for _, dir := range filepath.SplitList(xdgDirs) {
			paths = append(paths, filepath.Join(dir, appName))
		}
	} else {
		paths = append(paths,
			filepath.Join("/etc/xdg", appName),
			filepath.Join("/etc", appName),
		)
	}

	return paths
}
