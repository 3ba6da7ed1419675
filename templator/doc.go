// Package templator renders a chat conversation into the exact text a model
// family expects, and at the same time splits that text into segments that
// separate assistant-generated content from context.
//
// Every family is data: a [TemplateConfig] holding a handful of template
// strings. One algorithm, [Render], drives all of them. Its output always
// satisfies
//
//	out.Flat == strings.Join(out.Segments, "")
//
// and the segments at odd indexes are exactly the assistant turns (content
// plus the closing wrapper). [Masks] exposes that split for loss masking.
//
// # Usage
//
//	segments, err := templator.Llama3.Wrap(chat.Conversation{
//	    chat.System("You are terse."),
//	    chat.User("Hi"),
//	    chat.Assistant("Hello."),
//	})
//
// Family-specific message adjustments (default system prompt injection,
// folding a system message into the first user turn) run in [Preprocess]
// before rendering, driven by fields of the config.
//
// Custom families can be declared in YAML and loaded with [LoadRegistry].
package templator
