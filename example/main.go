// FILE: lixenwraith/stanflags/example/main.go
package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/lixenwraith/stanflags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const optionsFile = "stanflags.toml"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// =========================================================================
	// PART 1: INITIAL SETUP
	// An include directory, a user header and an options file on disk.
	// =========================================================================
	workDir, err := os.MkdirTemp("", "stanflags-example")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create work directory")
	}
	defer os.RemoveAll(workDir)

	includeDir := filepath.Join(workDir, "include")
	header := filepath.Join(workDir, "my_functions.hpp")
	if err := os.Mkdir(includeDir, 0755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create include directory")
	}
	if err := os.WriteFile(header, []byte("// user-defined functions\n"), 0644); err != nil {
		log.Fatal().Err(err).Msg("Failed to write header")
	}

	content := "[stanc_options]\n" +
		"include_paths = [\"" + filepath.ToSlash(includeDir) + "\"]\n" +
		"warn-pedantic = true\n" +
		"print-cpp = true\n\n" +
		"[cpp_options]\n" +
		"STAN_THREADS = \"TRUE\"\n"
	configPath := filepath.Join(workDir, optionsFile)
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		log.Fatal().Err(err).Msg("Failed to write options file")
	}

	// =========================================================================
	// PART 2: DIRECT CONSTRUCTION
	// Ordered values in, validated flags out.
	// =========================================================================
	direct := stanflags.New(
		stanflags.WithStancOptions(stanflags.NewValues().
			Set("name", stanflags.String("bernoulli_model")).
			Set("O", stanflags.Int(1))),
		stanflags.WithCppOptions(stanflags.NewValues().
			Set("OPENCL_DEVICE_ID", stanflags.Int(0))),
		stanflags.WithUserHeader(header),
	)
	validated, err := direct.Validate()
	if err != nil {
		log.Fatal().Err(err).Msg("Validation failed")
	}
	log.Info().Strs("flags", validated.Compose()).Msg("Direct construction")
	log.Info().Str("before", direct.String()).Str("after", validated.String()).Msg("Validate enriches a copy")

	// =========================================================================
	// PART 3: BUILDER WITH PRECEDENCE
	// File < environment < arguments.
	// =========================================================================
	os.Setenv("EXAMPLE_CPP_STAN_MPI", "TRUE")
	defer os.Unsetenv("EXAMPLE_CPP_STAN_MPI")

	flags, err := stanflags.NewBuilder().
		WithFile(configPath).
		WithEnvPrefix("EXAMPLE_").
		WithArgs([]string{"--stanc.name=from_cli", "--cpp.STAN_THREADS=FALSE"}).
		BuildFlags()
	if err != nil && !errors.Is(err, stanflags.ErrConfigNotFound) {
		log.Fatal().Err(err).Msg("Build failed")
	}
	log.Info().Strs("flags", flags).Msg("Builder")

	// =========================================================================
	// PART 4: MERGING
	// Include paths accumulate; the first header wins.
	// =========================================================================
	base := stanflags.New(stanflags.WithUserHeader(header))
	base.AddIncludePath(includeDir)
	base.Add(stanflags.New(
		stanflags.WithStancOptions(stanflags.NewValues().Set("include_paths", stanflags.List(includeDir, workDir))),
		stanflags.WithUserHeader("ignored.hpp"),
	))
	log.Info().Strs("flags", base.Compose()).Msg("Merged")

	// =========================================================================
	// PART 5: ERRORS
	// =========================================================================
	_, err = stanflags.New(stanflags.WithStancOptions(
		stanflags.NewValues().Set("frobnicate", stanflags.Bool(true)),
	)).Validate()
	var unknown *stanflags.UnknownOptionError
	if errors.As(err, &unknown) {
		log.Warn().Str("key", unknown.Key).Msg("Rejected unknown option")
	}
}
