package templator

import (
	"strings"

	"github.com/kbukum/chatseg/errors"
)

// Family selects one of the built-in template configurations.
type Family int

const (
	// ChatML is the <|im_start|>/<|im_end|> turn-tagged format (Qwen2 and others).
	ChatML Family = iota + 1
	// Llama2 is the [INST] format with a <<SYS>> block folded into the first user turn.
	Llama2
	// Llama3 is the header-tagged <|start_header_id|> format.
	Llama3
	// Mistral is the [INST] instruction-bracket format with no system role.
	Mistral
	// Gemma is the <start_of_turn> turn-marker format.
	Gemma
)

// builtinConfigs is never mutated; Config returns copies.
var builtinConfigs = map[Family]TemplateConfig{
	ChatML: {
		Name:                "chatml",
		SystemTemplate:      "<|im_start|>system\n{prompt}<|im_end|>",
		UserTemplate:        "<|im_start|>user\n{prompt}<|im_end|>",
		AssistantTemplate:   "<|im_start|>assistant\n{prompt}<|im_end|>",
		AssistantLeft:       "<|im_start|>assistant\n",
		AssistantRight:      "<|im_end|>",
		Splitter:            "\n",
		DefaultSystemPrompt: "You are a helpful assistant",
		SupportsMultiRound:  true,
	},
	Llama2: {
		Name:                "llama2",
		SystemTemplate:      "<<SYS>>\n{prompt}\n<</SYS>>\n\n",
		UserTemplate:        "<s>[INST] {prompt} [/INST]",
		AssistantTemplate:   " {prompt} </s>",
		AssistantLeft:       " ",
		AssistantRight:      " </s>",
		MergeSystemIntoUser: true,
	},
	Llama3: {
		Name:               "llama3",
		SystemTemplate:     "<|start_header_id|>system<|end_header_id|>\n\n{prompt}<|eot_id|>",
		UserTemplate:       "<|start_header_id|>user<|end_header_id|>\n\n{prompt}<|eot_id|>",
		AssistantTemplate:  "<|start_header_id|>assistant<|end_header_id|>\n\n{prompt}<|eot_id|>",
		AssistantLeft:      "<|start_header_id|>assistant<|end_header_id|>\n\n",
		AssistantRight:     "<|eot_id|>",
		LeadingLiteral:     "<|begin_of_text|>",
		SupportsMultiRound: true,
	},
	Mistral: {
		Name:               "mistral",
		UserTemplate:       "[INST] {prompt}",
		AssistantTemplate:  "[/INST] {prompt}</s>",
		AssistantLeft:      "[/INST] ",
		AssistantRight:     "</s>",
		LeadingLiteral:     "<s>",
		SupportsMultiRound: true,
	},
	Gemma: {
		// Not an official Gemma role, kept so system prompts still render.
		Name:               "gemma",
		SystemTemplate:     "<start_of_turn>system\n{prompt}<end_of_turn>",
		UserTemplate:       "<start_of_turn>user\n{prompt}<end_of_turn>",
		AssistantTemplate:  "<start_of_turn>model\n{prompt}<end_of_turn>",
		AssistantLeft:      "<start_of_turn>model\n",
		AssistantRight:     "<end_of_turn>",
		Splitter:           "\n",
		LeadingLiteral:     "<bos>",
		SupportsMultiRound: true,
	},
}

var familyAliases = map[string]Family{
	"chatml":  ChatML,
	"qwen":    ChatML,
	"qwen2":   ChatML,
	"llama2":  Llama2,
	"llama3":  Llama3,
	"mistral": Mistral,
	"gemma":   Gemma,
}

// Families returns the built-in families in declaration order.
func Families() []Family {
	return []Family{ChatML, Llama2, Llama3, Mistral, Gemma}
}

// ParseFamily resolves a family name or alias, case-insensitively.
func ParseFamily(name string) (Family, error) {
	f, ok := familyAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, errors.NotFound("family", name)
	}
	return f, nil
}

// String returns the canonical family name.
func (f Family) String() string {
	if cfg, ok := builtinConfigs[f]; ok {
		return cfg.Name
	}
	return "unknown"
}

// Config returns a copy of the family's template configuration.
// An unknown Family yields the zero TemplateConfig.
func (f Family) Config() TemplateConfig {
	return builtinConfigs[f]
}
