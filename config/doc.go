// Package config loads configuration for the command-line tools.
//
// It uses Viper to merge, in increasing priority, registered defaults, a
// YAML config file, a .env file and the process environment.
//
// # Usage
//
//	var cfg Config
//	err := config.LoadConfig("elscore", &cfg,
//	    config.WithConfigFile(path),
//	    config.WithDefaults(map[string]any{"eval.unknown_entity_id": "Unknown"}),
//	)
//
// Environment variables override keys by upper-casing them and replacing
// dots with underscores (e.g. EVAL_UNKNOWN_ENTITY_ID, LOGGING_LEVEL).
package config
