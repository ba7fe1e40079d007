// File: lixenwraith/stanflags/cmd/stanflags/commands/logging.go
package commands

import (
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// logSettings selects the CLI log output
type logSettings struct {
	Level  string `validate:"required,oneof=trace debug info warn error"`
	Format string `validate:"required,oneof=console json"`
}

var settingsValidator = validator.New()

// newLogger builds the CLI logger writing to w
func newLogger(s logSettings, w io.Writer) (zerolog.Logger, error) {
	if err := settingsValidator.Struct(s); err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log settings: %w", err)
	}

	level, err := zerolog.ParseLevel(s.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
	}

	if s.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
