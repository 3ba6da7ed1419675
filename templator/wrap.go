package templator

import (
	"strconv"

	"github.com/kbukum/chatseg/chat"
	"github.com/kbukum/chatseg/errors"
)

type wrapOptions struct {
	primeGeneration   bool
	forceSystemPrompt bool
}

// WrapOption configures Wrap and WrapOutput.
type WrapOption func(*wrapOptions)

// WithGenerationPrompt appends the assistant opening when the conversation
// ends with a user message, for inference.
func WithGenerationPrompt() WrapOption {
	return func(o *wrapOptions) { o.primeGeneration = true }
}

// WithForceSystemPrompt injects the family's default system prompt when the
// conversation has no system message. Families without a default ignore it.
func WithForceSystemPrompt() WrapOption {
	return func(o *wrapOptions) { o.forceSystemPrompt = true }
}

// Preprocess applies the family-specific adjustments described by cfg and
// returns a new conversation; msgs is never modified.
func Preprocess(cfg TemplateConfig, msgs chat.Conversation, forceSystemPrompt bool) (chat.Conversation, error) {
	out := msgs.Clone()

	if forceSystemPrompt && cfg.DefaultSystemPrompt != "" && !out.HasRole(chat.RoleSystem) {
		out = append(chat.Conversation{chat.System(cfg.DefaultSystemPrompt)}, out...)
	}

	if cfg.MergeSystemIntoUser && len(out) > 0 && out[0].Role == chat.RoleSystem {
		if len(out) < 2 || out[1].Role != chat.RoleUser {
			return nil, errors.InvalidConversation(cfg.Name + ": a leading system message must be followed by a user message")
		}
		merged := chat.User(cfg.SystemTemplate.Format(out[0].Content) + out[1].Content)
		out = append(chat.Conversation{merged}, out[2:]...)
	}
	return out, nil
}

// WrapConfig preprocesses and renders msgs with an arbitrary config.
func WrapConfig(cfg TemplateConfig, msgs chat.Conversation, opts ...WrapOption) (RenderedOutput, error) {
	var o wrapOptions
	for _, opt := range opts {
		opt(&o)
	}
	prepared, err := Preprocess(cfg, msgs, o.forceSystemPrompt)
	if err != nil {
		return RenderedOutput{}, err
	}
	return Render(prepared, cfg, o.primeGeneration)
}

// WrapOutput preprocesses and renders msgs for the family.
func (f Family) WrapOutput(msgs chat.Conversation, opts ...WrapOption) (RenderedOutput, error) {
	cfg, ok := builtinConfigs[f]
	if !ok {
		return RenderedOutput{}, errors.NotFound("family", strconv.Itoa(int(f)))
	}
	return WrapConfig(cfg, msgs, opts...)
}

// Wrap returns only the segments of WrapOutput. Join them for the flat text.
func (f Family) Wrap(msgs chat.Conversation, opts ...WrapOption) ([]string, error) {
	out, err := f.WrapOutput(msgs, opts...)
	if err != nil {
		return nil, err
	}
	return out.Segments, nil
}
