package rewrite

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"fastcat.org/go/entab/internal"
)

// Config is the resolved command line for one run.
type Config struct {
	// Input is the file to read, empty for Stdin.
	Input string `flag:"FILE" validate:"required_if=Overwrite true"`

	// Output is the file to write, empty for Stdout unless Overwrite is set.
	Output string `flag:"output" validate:"excluded_if=Overwrite true"`

	// Overwrite writes the result back into Input.
	Overwrite bool `flag:"overwrite"`

	// Spaces is the number of spaces that make up one tab.
	Spaces int `flag:"spaces" validate:"gt=0"`

	Stdin  io.Reader    `validate:"-"`
	Stdout io.Writer    `validate:"-"`
	Logger *slog.Logger `validate:"-"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("flag")
	})
	return v
}

// Validate checks the flag combination before any I/O happens. Failures are
// usage errors.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	msgs := make([]string, 0, len(ves))
	for _, fe := range ves {
		msgs = append(msgs, describe(fe))
	}
	return internal.WithExitCode(internal.ExitUsage, errors.New(strings.Join(msgs, "; ")))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "--spaces must be a positive integer"
	case "required_if":
		return "--overwrite requires an input " + fe.Field()
	case "excluded_if":
		return "--output cannot be combined with --overwrite"
	default:
		return fmt.Sprintf("invalid %s: failed %s", fe.Field(), fe.Tag())
	}
}

// Destination is where output goes: the input file when overwriting, empty
// meaning Stdout.
func (c *Config) Destination() string {
	if c.Overwrite {
		return c.Input
	}
	return c.Output
}

func (c *Config) stdin() io.Reader {
	if c.Stdin != nil {
		return c.Stdin
	}
	return os.Stdin
}

func (c *Config) stdout() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}
