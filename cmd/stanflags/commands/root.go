// File: lixenwraith/stanflags/cmd/stanflags/commands/root.go
package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lixenwraith/stanflags"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by all subcommands
type rootOptions struct {
	configPath string
	envPrefix  string
	stanc      []string
	cpp        []string
	userHeader string
	logLevel   string
	logFormat  string

	logger zerolog.Logger
}

// Execute runs the root command
func Execute(ctx context.Context, version string) error {
	return newRootCommand(version).ExecuteContext(ctx)
}

func newRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "stanflags",
		Short: "Validate stanc and C++ options and compose CmdStan make arguments",
		Long: `stanflags collects compiler options for a Stan model build from an options
file, STANFLAGS_* environment variables and command-line flags, validates them
and prints the resulting arguments for the CmdStan makefile.

Precedence (highest first): flags, environment, options file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(logSettings{Level: opts.logLevel, Format: opts.logFormat}, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "options file path (TOML, JSON or YAML); discovered when empty")
	flags.StringVar(&opts.envPrefix, "env-prefix", stanflags.DefaultEnvPrefix, "environment variable prefix")
	flags.StringArrayVar(&opts.stanc, "stanc", nil, "stanc option as key[=value], repeatable")
	flags.StringArrayVar(&opts.cpp, "cpp", nil, "C++ define as NAME=value, repeatable")
	flags.StringVar(&opts.userHeader, "user-header", "", "path to a user .hpp header")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "console", "log format (console, json)")

	rootCmd.AddCommand(newComposeCommand(opts))
	rootCmd.AddCommand(newValidateCommand(opts))

	return rootCmd
}

// build assembles and validates the options from all sources
func (o *rootOptions) build() (*stanflags.CompilerOptions, error) {
	args, err := o.optionArgs()
	if err != nil {
		return nil, err
	}

	b := stanflags.NewBuilder().
		WithLogger(o.logger).
		WithEnvPrefix(o.envPrefix).
		WithArgs(args)

	if o.configPath != "" {
		b = b.WithFile(o.configPath)
	} else {
		b = b.WithFileDiscovery(stanflags.DefaultDiscoveryOptions("stanflags"))
	}

	opts, err := b.Build()
	if errors.Is(err, stanflags.ErrConfigNotFound) {
		if o.configPath != "" {
			return nil, err
		}
		o.logger.Warn().Err(err).Msg("options file not found, continuing without it")
		err = nil
	}
	return opts, err
}

// optionArgs converts --stanc and --cpp flag values into the library's CLI form
func (o *rootOptions) optionArgs() ([]string, error) {
	var args []string
	for _, kv := range o.stanc {
		key, _, _ := strings.Cut(kv, "=")
		if key == "" {
			return nil, fmt.Errorf("invalid --stanc value %q, expected key[=value]", kv)
		}
		args = append(args, "--stanc."+kv)
	}
	for _, kv := range o.cpp {
		key, _, found := strings.Cut(kv, "=")
		if key == "" || !found {
			return nil, fmt.Errorf("invalid --cpp value %q, expected NAME=value", kv)
		}
		args = append(args, "--cpp."+kv)
	}
	if o.userHeader != "" {
		args = append(args, "--user_header="+o.userHeader)
	}
	return args, nil
}
