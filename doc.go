// File: lixenwraith/stanflags/doc.go

// Package stanflags validates user options for the stanc transpiler and the
// generated C++ build, and composes them into arguments for the CmdStan makefile.
//
// Features:
//   - Ordered option mappings with a tagged Value type (bool, int, string, list)
//   - Validation against the known and ignorable stanc option sets
//   - Cross-linking of OpenCL options into STAN_OPENCL=TRUE
//   - User header checks and allow_undefined injection
//   - Merging of option sets with include path deduplication
//   - Loading from TOML, JSON and YAML files, environment variables and CLI arguments
//   - Builder pattern with configurable source precedence
//
// Quick Start:
//
//	stanc := stanflags.NewValues().
//	    Set("name", stanflags.String("bernoulli_model")).
//	    Set("O", stanflags.Int(1))
//	cpp := stanflags.NewValues().Set("STAN_THREADS", stanflags.String("TRUE"))
//
//	opts := stanflags.New(stanflags.WithStancOptions(stanc), stanflags.WithCppOptions(cpp))
//	validated, err := opts.Validate()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	args := validated.Compose()
//	// [STANCFLAGS+=--name=bernoulli_model STANCFLAGS+=--O STAN_THREADS=TRUE]
//
// Options file:
//
//	user_header = "include/my_functions.hpp"
//
//	[stanc_options]
//	include_paths = ["include", "lib"]
//	warn-pedantic = true
//
//	[cpp_options]
//	STAN_THREADS = "TRUE"
//
// Default Precedence (highest to lowest):
//  1. Command-line arguments (--stanc.O=1, --cpp.STAN_THREADS=TRUE, --user_header=h.hpp)
//  2. Environment variables (STANFLAGS_STANC_O=1, STANFLAGS_CPP_STAN_THREADS=TRUE)
//  3. Options file
//  4. Builder defaults
//
// Validate never mutates its receiver. Options returned by Validate are safe
// for concurrent reads as long as nobody calls Add or the in-place validators on them.
package stanflags
