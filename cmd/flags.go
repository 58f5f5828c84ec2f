package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
)

type spacesValue int

var _ pflag.Value = (*spacesValue)(nil)

// Set implements pflag.Value.
func (s *spacesValue) Set(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive integer, not %q", value)
	}
	*s = spacesValue(n)
	return nil
}

// String implements pflag.Value.
func (s *spacesValue) String() string {
	if s == nil || *s == 0 {
		return ""
	}
	return strconv.Itoa(int(*s))
}

// Type implements pflag.Value.
func (s *spacesValue) Type() string { return "N" }

type statsFormat string

const (
	statsFormatTable statsFormat = "table"
	statsFormatYAML  statsFormat = "yaml"
)

var _ pflag.Value = (*statsFormat)(nil)

// Set implements pflag.Value.
func (f *statsFormat) Set(value string) error {
	switch v := statsFormat(value); v {
	case statsFormatTable, statsFormatYAML:
		*f = v
		return nil
	default:
		return fmt.Errorf("must be one of %s, %s, not %q", statsFormatTable, statsFormatYAML, value)
	}
}

// String implements pflag.Value.
func (f *statsFormat) String() string { return string(*f) }

// Type implements pflag.Value.
func (f *statsFormat) Type() string { return "format" }
