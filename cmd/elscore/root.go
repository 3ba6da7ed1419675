package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kbukum/chatseg/cmd/internal/cli"
	"github.com/kbukum/chatseg/config"
	"github.com/kbukum/chatseg/entitylink"
	"github.com/kbukum/chatseg/logger"
	"github.com/kbukum/chatseg/util"
)

const serviceName = "elscore"

// Config is the elscore configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Eval                 EvalConfig `yaml:"eval" mapstructure:"eval"`
}

// EvalConfig controls scoring.
type EvalConfig struct {
	// UnknownEntityID marks labels excluded from scoring.
	UnknownEntityID string `yaml:"unknown_entity_id" mapstructure:"unknown_entity_id"`
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "elscore <file.jsonl>",
		Short: "Score entity-linking predictions",
		Long: `Score entity-linking predictions against annotated documents.

Each line of the input is one JSON document with text, labels, output and
output_qid. Scores are printed to stdout; logs and the input header go to
stderr. Malformed input exits with a non-zero status.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runScore,
	}
	cli.RegisterConfigFlags(cmd)
	cmd.Flags().String("unknown-entity-id", "", "override eval.unknown_entity_id")
	return cmd
}

func runScore(cmd *cobra.Command, args []string) error {
	var cfg Config
	err := cli.LoadConfig(cmd, serviceName, &cfg, map[string]any{
		"eval.unknown_entity_id": entitylink.DefaultUnknownEntityID,
	})
	if err != nil {
		return err
	}
	id, _ := cmd.Flags().GetString("unknown-entity-id")
	cfg.Eval.UnknownEntityID = util.Coalesce(id, cfg.Eval.UnknownEntityID)

	path := args[0]
	log := cli.NewLogger(cmd, &cfg.ServiceConfig).WithFields(logger.Fields(
		logger.FieldRunID, uuid.NewString(),
		logger.FieldPath, path,
	))
	log.Debug("configuration loaded", logger.Fields(
		"environment", cfg.Environment,
		"unknown_entity_id", cfg.Eval.UnknownEntityID,
	))

	fmt.Fprintf(cmd.ErrOrStderr(), "Entity Linking: %s\n", path)

	res, err := entitylink.NewEvaluator(cfg.Eval.UnknownEntityID, log).EvaluateFile(path)
	if err != nil {
		log.WithError(err).Error("evaluation failed", logger.Fields(logger.FieldOperation, "evaluate"))
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "f1: %v\n", res.F1)
	fmt.Fprintf(out, "precision: %v\n", res.Precision)
	fmt.Fprintf(out, "recall: %v\n", res.Recall)
	return nil
}
