package templator

import (
	"strings"

	"github.com/kbukum/chatseg/errors"
	"github.com/kbukum/chatseg/validation"
)

// Placeholder marks where message content is substituted in a Template.
const Placeholder = "{prompt}"

// Template is a format string with one Placeholder.
type Template string

// Format substitutes content for the placeholder.
func (t Template) Format(content string) string {
	return strings.ReplaceAll(string(t), Placeholder, content)
}

// TemplateConfig describes how one model family formats a conversation.
// Values are immutable once constructed; methods take value receivers and
// every lookup hands out a copy.
type TemplateConfig struct {
	// Name identifies the family in errors and logs.
	Name string `json:"name" yaml:"name"`
	// SystemTemplate renders a system message. Empty means the family has no system role.
	SystemTemplate Template `json:"system_template,omitempty" yaml:"system_template"`
	UserTemplate   Template `json:"user_template" yaml:"user_template"`
	// AssistantTemplate must equal AssistantLeft + Placeholder + AssistantRight.
	AssistantTemplate Template `json:"assistant_template" yaml:"assistant_template"`
	AssistantLeft     string   `json:"assistant_template_left" yaml:"assistant_template_left"`
	AssistantRight    string   `json:"assistant_template_right" yaml:"assistant_template_right"`
	// Splitter goes between rendered turns and is trimmed once from the end.
	Splitter string `json:"splitter" yaml:"splitter"`
	// LeadingLiteral is emitted before the first message (e.g. a BOS marker).
	LeadingLiteral string `json:"leading_literal" yaml:"leading_literal"`
	// DefaultSystemPrompt is injected by WithForceSystemPrompt. Empty disables injection.
	DefaultSystemPrompt string `json:"default_system_prompt,omitempty" yaml:"default_system_prompt"`
	SupportsMultiRound  bool   `json:"supports_multi_round" yaml:"supports_multi_round"`
	// MergeSystemIntoUser folds a leading system message into the following
	// user message before rendering, for families with no standalone system turn.
	MergeSystemIntoUser bool `json:"merge_system_into_user" yaml:"merge_system_into_user"`
}

// SupportsSystem reports whether the family can render a system message.
func (c TemplateConfig) SupportsSystem() bool {
	return c.SystemTemplate != ""
}

// Validate checks that the templates can satisfy the rendering invariants.
func (c TemplateConfig) Validate() error {
	v := validation.New()
	v.Required("name", c.Name).
		Required("user_template", string(c.UserTemplate)).
		Required("assistant_template", string(c.AssistantTemplate)).
		Contains("system_template", string(c.SystemTemplate), Placeholder).
		Contains("user_template", string(c.UserTemplate), Placeholder)

	if c.AssistantTemplate != "" {
		v.Custom(strings.Count(string(c.AssistantTemplate), Placeholder) == 1,
			"assistant_template", "must contain exactly one "+Placeholder)
		v.Custom(string(c.AssistantTemplate) == c.AssistantLeft+Placeholder+c.AssistantRight,
			"assistant_template", "must equal assistant_template_left + "+Placeholder+" + assistant_template_right")
	}
	v.Custom(!c.MergeSystemIntoUser || c.SupportsSystem(),
		"merge_system_into_user", "requires a system_template")
	v.Custom(c.DefaultSystemPrompt == "" || c.SupportsSystem(),
		"default_system_prompt", "requires a system_template")

	if v.HasErrors() {
		return errors.InvalidTemplate(c.Name, v.Summary()).WithDetail("fields", v.Errors())
	}
	return nil
}
