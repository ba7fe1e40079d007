// FILE: lixenwraith/stanflags/builder_test.go
package stanflags

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuilder tests the builder pattern
func TestBuilder(t *testing.T) {
	t.Run("BasicBuilder", func(t *testing.T) {
		o, err := NewBuilder().
			WithStancOption("name", "model").
			WithStancOption("O", 1).
			WithCppOption("STAN_THREADS", "TRUE").
			WithEnvPrefix("BASIC_").
			Build()

		require.NoError(t, err)
		assert.Equal(t, []string{
			"STANCFLAGS+=--name=model",
			"STANCFLAGS+=--O",
			"STAN_THREADS=TRUE",
		}, o.Compose())
	})

	t.Run("Precedence", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "opts.toml")
		require.NoError(t, os.WriteFile(configFile, []byte(`
[stanc_options]
name = "from_file"
O = 1

[cpp_options]
STAN_THREADS = "FILE"
STAN_MPI = "FILE"
OPENCL_PLATFORM_ID = 0
`), 0644))

		t.Setenv("PREC_STANC_NAME", "from_env")
		t.Setenv("PREC_CPP_STAN_THREADS", "ENV")
		t.Setenv("PREC_CPP_STAN_MPI", "ENV")

		o, err := NewBuilder().
			WithStancOption("name", "from_default").
			WithCppOption("STAN_THREADS", "DEFAULT").
			WithFile(configFile).
			WithEnvPrefix("PREC_").
			WithArgs([]string{"--cpp.STAN_MPI=CLI"}).
			Build()
		require.NoError(t, err)

		name, _ := o.StancOptions().Get("name")
		assert.Equal(t, "from_env", name.String())

		threads, _ := o.CppOptions().Get("STAN_THREADS")
		assert.Equal(t, "ENV", threads.String())

		mpi, _ := o.CppOptions().Get("STAN_MPI")
		assert.Equal(t, "CLI", mpi.String())

		// Derived by validation from the file's platform id
		opencl, _ := o.CppOptions().Get("STAN_OPENCL")
		assert.Equal(t, "TRUE", opencl.String())
	})

	t.Run("CustomSources", func(t *testing.T) {
		t.Setenv("SRC_STANC_NAME", "from_env")

		o, err := NewBuilder().
			WithStancOption("name", "from_default").
			WithEnvPrefix("SRC_").
			WithSources(SourceDefault, SourceEnv).
			Build()
		require.NoError(t, err)

		name, _ := o.StancOptions().Get("name")
		assert.Equal(t, "from_default", name.String())
	})

	t.Run("HigherSourceWinsHeader", func(t *testing.T) {
		tmpDir := t.TempDir()
		low := writeHeader(t, tmpDir, "low.hpp")
		high := writeHeader(t, tmpDir, "high.hpp")

		o, err := NewBuilder().
			WithUserHeader(low).
			WithEnvPrefix("HDR_").
			WithArgs([]string{"--user_header=" + high}).
			Build()
		require.NoError(t, err)

		header, _ := o.UserHeader()
		assert.Equal(t, high, header)
		assert.True(t, o.StancOptions().Has("allow_undefined"))
	})

	t.Run("IncludePathsAccumulate", func(t *testing.T) {
		tmpDir := t.TempDir()
		a := filepath.Join(tmpDir, "a")
		b := filepath.Join(tmpDir, "b")
		require.NoError(t, os.Mkdir(a, 0755))
		require.NoError(t, os.Mkdir(b, 0755))

		o, err := NewBuilder().
			WithStancOption("include_paths", []string{a}).
			WithEnvPrefix("INC_").
			WithArgs([]string{"--stanc.include_paths=" + a + "," + b}).
			Build()
		require.NoError(t, err)
		assert.Equal(t, []string{"STANCFLAGS+=--include_paths=" + filepath.ToSlash(a) + "," + filepath.ToSlash(b)}, o.Compose())
	})

	t.Run("MissingFileNotFatal", func(t *testing.T) {
		o, err := NewBuilder().
			WithStancOption("O", 1).
			WithEnvPrefix("MISS_").
			WithFile(filepath.Join(t.TempDir(), "absent.toml")).
			Build()

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfigNotFound)
		require.NotNil(t, o)
		assert.Equal(t, []string{"STANCFLAGS+=--O"}, o.Compose())
	})

	t.Run("ValidationFailure", func(t *testing.T) {
		o, err := NewBuilder().
			WithStancOption("frobnicate", true).
			WithEnvPrefix("FAIL_").
			Build()
		assert.Nil(t, o)
		assert.ErrorIs(t, err, ErrUnknownOption)
	})

	t.Run("InvalidDefaultValue", func(t *testing.T) {
		_, err := NewBuilder().
			WithStancOption("name", map[string]int{}).
			Build()
		assert.ErrorIs(t, err, ErrUnsupportedValue)
	})

	t.Run("BuilderWithValidator", func(t *testing.T) {
		validatorCalled := false
		requireThreads := func(o *CompilerOptions) error {
			validatorCalled = true
			if !o.CppOptions().Has("STAN_THREADS") {
				return fmt.Errorf("STAN_THREADS must be set")
			}
			return nil
		}

		o, err := NewBuilder().
			WithCppOption("STAN_THREADS", "TRUE").
			WithEnvPrefix("VAL_").
			WithValidator(requireThreads).
			WithValidator(nil).
			Build()
		require.NoError(t, err)
		assert.NotNil(t, o)
		assert.True(t, validatorCalled)

		_, err = NewBuilder().
			WithEnvPrefix("VAL_").
			WithValidator(requireThreads).
			Build()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "STAN_THREADS must be set")
	})

	t.Run("MustBuild", func(t *testing.T) {
		assert.Panics(t, func() {
			NewBuilder().WithStancOption("frobnicate", true).WithEnvPrefix("MUST_").MustBuild()
		})
		assert.NotPanics(t, func() {
			NewBuilder().WithEnvPrefix("MUST_").WithFile(filepath.Join(t.TempDir(), "absent.toml")).MustBuild()
		})
	})

	t.Run("BuildFlags", func(t *testing.T) {
		flags, err := NewBuilder().
			WithEnvPrefix("FLAGS_").
			WithArgs([]string{"--stanc.use-opencl"}).
			BuildFlags()
		require.NoError(t, err)
		assert.Equal(t, []string{"STANCFLAGS+=--use-opencl", "STAN_OPENCL=TRUE"}, flags)
	})

	t.Run("LoggerPassedThrough", func(t *testing.T) {
		var buf bytes.Buffer
		o, err := NewBuilder().
			WithStancOption("help", true).
			WithEnvPrefix("LOG_").
			WithLogger(zerolog.New(&buf)).
			Build()
		require.NoError(t, err)
		assert.Equal(t, 0, o.StancOptions().Len())
		assert.Contains(t, buf.String(), `"option":"help"`)
	})
}

// TestFileDiscovery tests automatic options file discovery
func TestFileDiscovery(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "stanflags.toml")
	require.NoError(t, os.WriteFile(configFile, []byte("[stanc_options]\nO = 1\n"), 0644))

	t.Run("CustomPath", func(t *testing.T) {
		opts := DefaultDiscoveryOptions("stanflags")
		opts.Paths = []string{tmpDir}
		opts.UseXDG = false
		opts.UseCurrentDir = false

		flags, err := NewBuilder().WithEnvPrefix("DISC_").WithFileDiscovery(opts).BuildFlags()
		require.NoError(t, err)
		assert.Equal(t, []string{"STANCFLAGS+=--O"}, flags)
	})

	t.Run("CLIFlag", func(t *testing.T) {
		opts := DefaultDiscoveryOptions("stanflags")
		opts.UseXDG = false
		opts.UseCurrentDir = false

		b := NewBuilder().WithArgs([]string{"--config", configFile}).WithFileDiscovery(opts)
		assert.Equal(t, configFile, b.file)
		assert.Equal(t, originFlag, b.origin)

		b = NewBuilder().WithArgs([]string{"--config=" + configFile}).WithFileDiscovery(opts)
		assert.Equal(t, configFile, b.file)
	})

	t.Run("EnvVar", func(t *testing.T) {
		t.Setenv("STANFLAGS_CONFIG", configFile)
		opts := DefaultDiscoveryOptions("stanflags")
		opts.UseXDG = false
		opts.UseCurrentDir = false

		b := NewBuilder().WithFileDiscovery(opts)
		assert.Equal(t, configFile, b.file)
		assert.Equal(t, originEnv, b.origin)
	})

	t.Run("MissingEnvPathNamesOrigin", func(t *testing.T) {
		missing := filepath.Join(tmpDir, "absent.toml")
		t.Setenv("STANFLAGS_CONFIG", missing)
		opts := DefaultDiscoveryOptions("stanflags")
		opts.UseXDG = false
		opts.UseCurrentDir = false

		o, err := NewBuilder().WithEnvPrefix("DISC_").WithStancOption("O", 1).WithFileDiscovery(opts).Build()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrConfigNotFound)
		assert.Contains(t, err.Error(), "environment options file '"+missing+"'")
		require.NotNil(t, o)
		assert.Equal(t, []string{"STANCFLAGS+=--O"}, o.Compose())
	})

	t.Run("XDGConfigHome", func(t *testing.T) {
		t.Setenv("STANFLAGS_CONFIG", "")
		xdg := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(xdg, "stanflags"), 0755))
		path := filepath.Join(xdg, "stanflags", "stanflags.yaml")
		require.NoError(t, os.WriteFile(path, []byte("stanc_options:\n  O: 1\n"), 0644))
		t.Setenv("XDG_CONFIG_HOME", xdg)

		opts := DefaultDiscoveryOptions("stanflags")
		opts.UseCurrentDir = false
		b := NewBuilder().WithFileDiscovery(opts)
		assert.Equal(t, path, b.file)
		assert.Equal(t, originSearch, b.origin)
	})

	t.Run("NothingFound", func(t *testing.T) {
		t.Setenv("STANFLAGS_CONFIG", "")
		opts := DefaultDiscoveryOptions("stanflags-missing")
		opts.UseXDG = false
		opts.UseCurrentDir = false

		b := NewBuilder().WithFileDiscovery(opts)
		assert.Empty(t, b.file)
	})
}
