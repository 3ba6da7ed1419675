package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/chatseg/chat"
	"github.com/kbukum/chatseg/cmd/internal/cli"
	"github.com/kbukum/chatseg/config"
	"github.com/kbukum/chatseg/errors"
	"github.com/kbukum/chatseg/logger"
	"github.com/kbukum/chatseg/templator"
	"github.com/kbukum/chatseg/util"
)

const serviceName = "chatfmt"

// Config is the chatfmt configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Render               RenderConfig `yaml:"render" mapstructure:"render"`
}

// RenderConfig holds rendering defaults that flags override.
type RenderConfig struct {
	Family string `yaml:"family" mapstructure:"family"`
	// FamiliesFile is a YAML file of custom family definitions.
	FamiliesFile string `yaml:"families_file" mapstructure:"families_file"`
}

type options struct {
	family            string
	familiesFile      string
	generationPrompt  bool
	forceSystemPrompt bool
	listFamilies      bool
}

// output is what chatfmt prints.
type output struct {
	Family   string   `json:"family"`
	Flat     string   `json:"flat"`
	Segments []string `json:"segments"`
	Masks    []bool   `json:"masks"`
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "chatfmt [conversation.yaml]",
		Short: "Render a conversation in a model family's chat format",
		Long: `Render a conversation in a model family's chat format.

The conversation is a YAML or JSON file holding a list of {role, content}
messages, or a mapping with a "messages" key. With no file, or "-", it is
read from stdin. The output is a JSON object with the flat text, its
segments, and a mask marking the assistant-generated segments.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, opts)
		},
	}
	cli.RegisterConfigFlags(cmd)

	f := cmd.Flags()
	f.StringVarP(&opts.family, "family", "f", "", "template family or alias (default from render.family, else chatml)")
	f.StringVar(&opts.familiesFile, "families", "", "YAML file with custom family definitions")
	f.BoolVarP(&opts.generationPrompt, "generation-prompt", "g", false, "append the assistant opening after a final user turn")
	f.BoolVar(&opts.forceSystemPrompt, "force-system-prompt", false, "inject the family's default system prompt when none is given")
	f.BoolVar(&opts.listFamilies, "list", false, "list the available family names and exit")
	return cmd
}

func runRender(cmd *cobra.Command, args []string, opts options) error {
	var cfg Config
	err := cli.LoadConfig(cmd, serviceName, &cfg, map[string]any{
		"render.family":        templator.ChatML.String(),
		"render.families_file": "",
	})
	if err != nil {
		return err
	}
	opts.family = util.Coalesce(opts.family, cfg.Render.Family, templator.ChatML.String())
	opts.familiesFile = util.Coalesce(opts.familiesFile, cfg.Render.FamiliesFile)
	log := cli.NewLogger(cmd, &cfg.ServiceConfig).WithComponent("render")

	registry, err := loadRegistry(opts.familiesFile)
	if err != nil {
		return err
	}
	if opts.listFamilies {
		for _, name := range registry.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	tmpl, err := registry.Lookup(opts.family)
	if err != nil {
		return err
	}
	log = log.WithFields(logger.Fields(logger.FieldFamily, tmpl.Name))

	msgs, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	if !tmpl.SupportsMultiRound && msgs.Count(chat.RoleUser) > 1 {
		log.Warn("family is single-round, every turn is still rendered",
			logger.Fields("user_turns", msgs.Count(chat.RoleUser)))
	}

	var wrapOpts []templator.WrapOption
	if opts.generationPrompt {
		wrapOpts = append(wrapOpts, templator.WithGenerationPrompt())
	}
	if opts.forceSystemPrompt {
		wrapOpts = append(wrapOpts, templator.WithForceSystemPrompt())
	}

	rendered, err := templator.WrapConfig(tmpl, msgs, wrapOpts...)
	if err != nil {
		log.Error("render failed", logger.ErrorFields("render", err))
		return err
	}
	log.Debug("rendered", logger.Fields("messages", len(msgs), "segments", len(rendered.Segments)))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	err = enc.Encode(output{
		Family:   tmpl.Name,
		Flat:     rendered.Flat,
		Segments: rendered.Segments,
		Masks:    templator.Masks(rendered.Segments),
	})
	if err != nil {
		return errors.Internal(err)
	}
	return nil
}

func loadRegistry(path string) (*templator.Registry, error) {
	if path == "" {
		return templator.DefaultRegistry(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NotFound("families file", path).WithCause(err)
	}
	defer f.Close()
	return templator.LoadRegistry(f)
}

func readInput(cmd *cobra.Command, args []string) (chat.Conversation, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, errors.NotFound("conversation file", args[0]).WithCause(err)
		}
		defer f.Close()
		r = f
	}
	return readConversation(r)
}
