package logger

import "github.com/kbukum/chatseg/validation"

// Config contains logging configuration.
type Config struct {
	Level     string `yaml:"level" mapstructure:"level"`
	Format    string `yaml:"format" mapstructure:"format"`
	Output    string `yaml:"output" mapstructure:"output"`
	NoColor   bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller    bool   `yaml:"caller" mapstructure:"caller"`
}

// ApplyDefaults applies default values to logging configuration.
// Output defaults to stderr so that tool results on stdout stay clean.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stderr"
	}
}

// Valid option values.
var (
	Levels  = []string{"trace", "debug", "info", "warn", "error", "fatal", "disabled"}
	Formats = []string{"json", "console", FormatPretty}
	Outputs = []string{"stdout", "stderr"}
)

// Validate checks level, format and output against their allowed values.
func (c *Config) Validate() error {
	if err := c.Check(validation.New()).Validate(); err != nil {
		return err
	}
	return nil
}

// Check records the logging field errors on v, so a parent config can
// report them together with its own.
func (c *Config) Check(v *validation.Validator) *validation.Validator {
	return v.Required("logging.level", c.Level).OneOf("logging.level", c.Level, Levels).
		Required("logging.format", c.Format).OneOf("logging.format", c.Format, Formats).
		Required("logging.output", c.Output).OneOf("logging.output", c.Output, Outputs)
}
