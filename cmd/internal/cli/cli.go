// Package cli holds the flag, config and logger wiring shared by the
// command-line tools.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/chatseg/config"
	"github.com/kbukum/chatseg/errors"
	"github.com/kbukum/chatseg/logger"
	"github.com/kbukum/chatseg/version"
)

// Exit codes.
const (
	ExitSuccess  = 0
	ExitError    = 1
	ExitInternal = 2
)

// ExitCode maps err to a process exit code. Errors that point at a
// defect rather than bad input exit with ExitInternal.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.IsFatalCode(errors.CodeOf(err)) {
		return ExitInternal
	}
	return ExitError
}

// Flag names registered by RegisterConfigFlags.
const (
	FlagConfig   = "config"
	FlagEnvFile  = "env-file"
	FlagLogLevel = "log-level"
)

// Configurable is a tool config that embeds config.ServiceConfig.
type Configurable interface {
	GetServiceConfig() *config.ServiceConfig
}

// RegisterConfigFlags adds --config, --env-file and --log-level to cmd and
// sets its version string.
func RegisterConfigFlags(cmd *cobra.Command) {
	cmd.Version = version.Get().String()
	cmd.PersistentFlags().String(FlagConfig, "", "path to a config file (default: search ./config.yml)")
	cmd.PersistentFlags().String(FlagEnvFile, "", "path to a .env file (default: search ./.env)")
	cmd.PersistentFlags().String(FlagLogLevel, "", "override logging.level (trace, debug, info, warn, error, disabled)")
}

// BaseDefaults returns the config defaults every tool starts from.
func BaseDefaults(name string) map[string]any {
	return map[string]any{
		"name":             name,
		"environment":      "development",
		"version":          version.Version,
		"logging.level":    "warn",
		"logging.format":   "console",
		"logging.output":   "stderr",
		"logging.no_color": false,
	}
}

// LoadConfig reads the tool config named by the command's flags into cfg,
// then applies defaults and validates it.
func LoadConfig(cmd *cobra.Command, name string, cfg Configurable, defaults map[string]any) error {
	flags := cmd.Flags()
	configFile, _ := flags.GetString(FlagConfig)
	envFile, _ := flags.GetString(FlagEnvFile)

	opts := []config.LoaderOption{config.WithDefaults(BaseDefaults(name)), config.WithDefaults(defaults)}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}
	if err := config.LoadConfig(name, cfg, opts...); err != nil {
		return err
	}

	svc := cfg.GetServiceConfig()
	if level, _ := flags.GetString(FlagLogLevel); level != "" {
		svc.Logging.Level = strings.ToLower(level)
	}
	svc.ApplyDefaults()
	if err := svc.Validate(); err != nil {
		return fmt.Errorf("invalid %s configuration: %w", name, err)
	}
	return nil
}

// NewLogger builds the tool logger. Output "stdout" writes to the command's
// stdout and anything else to its stderr.
func NewLogger(cmd *cobra.Command, svc *config.ServiceConfig) *logger.Logger {
	var w io.Writer = cmd.ErrOrStderr()
	if strings.EqualFold(svc.Logging.Output, "stdout") {
		w = cmd.OutOrStdout()
	}
	return logger.NewWithWriter(&svc.Logging, svc.Name, w)
}
