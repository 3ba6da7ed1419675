package templator

import (
	"fmt"
	"strings"

	"github.com/kbukum/chatseg/chat"
	"github.com/kbukum/chatseg/errors"
)

// RenderedOutput is the flat rendering of a conversation and its
// segmentation. Flat always equals the concatenation of Segments.
type RenderedOutput struct {
	Flat     string   `json:"flat"`
	Segments []string `json:"segments"`
}

// Render formats msgs with cfg. When primeGeneration is set and the last
// message is from the user, the assistant opening is appended so a model
// can continue from the end of the text.
//
// Roles are checked before anything is rendered: an unknown role, or a
// system message for a family without a system template, fails with
// UNSUPPORTED_ROLE. Render never drops content on its own.
func Render(msgs chat.Conversation, cfg TemplateConfig, primeGeneration bool) (RenderedOutput, error) {
	if len(msgs) == 0 {
		return RenderedOutput{}, errors.InvalidConversation("conversation has no messages")
	}
	for _, m := range msgs {
		if !m.Role.Valid() {
			return RenderedOutput{}, errors.UnsupportedRole(string(m.Role), "")
		}
		if m.Role == chat.RoleSystem && !cfg.SupportsSystem() {
			return RenderedOutput{}, errors.UnsupportedRole(string(m.Role), cfg.Name)
		}
	}

	var flat strings.Builder
	flat.WriteString(cfg.LeadingLiteral)
	segments := []string{cfg.LeadingLiteral}

	for _, m := range msgs {
		switch m.Role {
		case chat.RoleSystem:
			turn := cfg.SystemTemplate.Format(m.Content) + cfg.Splitter
			flat.WriteString(turn)
			segments[len(segments)-1] += turn
		case chat.RoleUser:
			turn := cfg.UserTemplate.Format(m.Content) + cfg.Splitter
			flat.WriteString(turn)
			segments[len(segments)-1] += turn
		case chat.RoleAssistant:
			flat.WriteString(cfg.AssistantTemplate.Format(m.Content) + cfg.Splitter)
			segments[len(segments)-1] += cfg.AssistantLeft
			segments = append(segments, m.Content+cfg.AssistantRight, cfg.Splitter)
		}
	}

	out := RenderedOutput{Flat: flat.String(), Segments: segments}
	if cfg.Splitter != "" {
		last := len(out.Segments) - 1
		if !strings.HasSuffix(out.Flat, cfg.Splitter) || !strings.HasSuffix(out.Segments[last], cfg.Splitter) {
			return RenderedOutput{}, errors.InvariantViolation("splitter_suffix",
				fmt.Sprintf("%s: rendering does not end with the splitter %q", cfg.Name, cfg.Splitter))
		}
		out.Flat = strings.TrimSuffix(out.Flat, cfg.Splitter)
		out.Segments[last] = strings.TrimSuffix(out.Segments[last], cfg.Splitter)
	}

	if last, _ := msgs.Last(); primeGeneration && last.Role == chat.RoleUser {
		opening := cfg.Splitter + cfg.AssistantLeft
		out.Flat += opening
		out.Segments[len(out.Segments)-1] += opening
	}

	if out.Flat != strings.Join(out.Segments, "") {
		return RenderedOutput{}, errors.InvariantViolation("flat_segments",
			fmt.Sprintf("%s: segments do not concatenate to the flat rendering; assistant_template must equal left + %s + right", cfg.Name, Placeholder))
	}
	return out, nil
}

// Masks reports for each segment whether it holds assistant-generated text.
// Render places assistant turns at odd indexes.
func Masks(segments []string) []bool {
	masks := make([]bool, len(segments))
	for i := range segments {
		masks[i] = i%2 == 1
	}
	return masks
}
