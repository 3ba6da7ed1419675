package templator

import (
	"reflect"
	"strings"
	"testing"

	"github.com/kbukum/chatseg/chat"
	"github.com/kbukum/chatseg/errors"
)

func TestWrap_ForceSystemPrompt(t *testing.T) {
	msgs := chat.Conversation{chat.User("hi"), chat.Assistant("hello")}

	got, err := ChatML.Wrap(msgs, WithForceSystemPrompt())
	if err != nil {
		t.Fatalf("Wrap() error: %v", err)
	}
	if !strings.HasPrefix(got[0], "<|im_start|>system\nYou are a helpful assistant<|im_end|>\n") {
		t.Errorf("expected default system prompt, got %q", got[0])
	}
	if len(msgs) != 2 {
		t.Errorf("caller's conversation must not grow, got %d messages", len(msgs))
	}
}

func TestWrap_ForceSystemPromptKeepsExisting(t *testing.T) {
	msgs := chat.Conversation{chat.System("be terse"), chat.User("hi")}
	forced, err := ChatML.WrapOutput(msgs, WithForceSystemPrompt())
	if err != nil {
		t.Fatalf("WrapOutput() error: %v", err)
	}
	plain, err := ChatML.WrapOutput(msgs)
	if err != nil {
		t.Fatalf("WrapOutput() error: %v", err)
	}
	if !reflect.DeepEqual(forced, plain) {
		t.Errorf("an existing system message must win over the default")
	}
	if strings.Contains(forced.Flat, "helpful assistant") {
		t.Errorf("default injected alongside an existing system message: %q", forced.Flat)
	}
}

func TestWrap_ForceSystemPromptWithoutDefaultIsNoop(t *testing.T) {
	msgs := chat.Conversation{chat.User("hi")}
	for _, f := range []Family{Llama3, Mistral, Gemma} {
		forced, err := f.WrapOutput(msgs, WithForceSystemPrompt())
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		plain, _ := f.WrapOutput(msgs)
		if !reflect.DeepEqual(forced, plain) {
			t.Errorf("%s: expected no injection for a family with no default", f)
		}
	}
}

func TestPreprocess_Llama2Merge(t *testing.T) {
	msgs := fiveTurns()
	got, err := Preprocess(Llama2.Config(), msgs, false)
	if err != nil {
		t.Fatalf("Preprocess() error: %v", err)
	}
	want := chat.Conversation{
		chat.User("<<SYS>>\nsystem prompt 1\n<</SYS>>\n\nuser input 1"),
		chat.Assistant("model output 1"),
		chat.User("user input 2"),
		chat.Assistant("model output 2"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Preprocess() =\n%+v\nwant\n%+v", got, want)
	}
	if !reflect.DeepEqual(msgs, fiveTurns()) {
		t.Error("Preprocess must not modify its input")
	}
}

func TestPreprocess_Llama2MergeOnlyPair(t *testing.T) {
	got, err := Llama2.Wrap(chat.Conversation{chat.System("sys"), chat.User("q")}, WithGenerationPrompt())
	if err != nil {
		t.Fatalf("Wrap() error: %v", err)
	}
	want := []string{"<s>[INST] <<SYS>>\nsys\n<</SYS>>\n\nq [/INST] "}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Wrap() = %q, want %q", got, want)
	}
}

func TestPreprocess_Llama2SystemWithoutUser(t *testing.T) {
	tests := map[string]chat.Conversation{
		"system only":           {chat.System("sys")},
		"system then assistant": {chat.System("sys"), chat.Assistant("a")},
	}
	for name, msgs := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Llama2.Wrap(msgs)
			if !errors.IsCode(err, errors.ErrCodeInvalidConversation) {
				t.Fatalf("expected INVALID_CONVERSATION, got %v", err)
			}
		})
	}
}

func TestPreprocess_NoopForPlainFamilies(t *testing.T) {
	msgs := fiveTurns()
	got, err := Preprocess(Llama3.Config(), msgs, true)
	if err != nil {
		t.Fatalf("Preprocess() error: %v", err)
	}
	if !reflect.DeepEqual(got, msgs) {
		t.Errorf("expected unchanged conversation, got %+v", got)
	}
	got[0].Content = "changed"
	if msgs[0].Content != "system prompt 1" {
		t.Error("Preprocess must return a fresh slice")
	}
}

func TestWrap_UnknownFamily(t *testing.T) {
	_, err := Family(99).Wrap(chat.Conversation{chat.User("q")})
	if !errors.IsCode(err, errors.ErrCodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestWrapConfig_CustomConfig(t *testing.T) {
	cfg := TemplateConfig{
		Name:              "plain",
		UserTemplate:      "Q: {prompt}",
		AssistantTemplate: "A: {prompt}",
		AssistantLeft:     "A: ",
		Splitter:          "\n\n",
	}
	out, err := WrapConfig(cfg, chat.Conversation{chat.User("1+1?"), chat.Assistant("2"), chat.User("2+2?")}, WithGenerationPrompt())
	if err != nil {
		t.Fatalf("WrapConfig() error: %v", err)
	}
	if out.Flat != "Q: 1+1?\n\nA: 2\n\nQ: 2+2?\n\nA: " {
		t.Errorf("Flat = %q", out.Flat)
	}
	want := []string{"Q: 1+1?\n\nA: ", "2", "\n\nQ: 2+2?\n\nA: "}
	if !reflect.DeepEqual(out.Segments, want) {
		t.Errorf("Segments = %q, want %q", out.Segments, want)
	}
}

func TestWrap_GemmaPrimesOnlyWhenAsked(t *testing.T) {
	msgs := chat.Conversation{chat.User("q")}

	plain, err := Gemma.WrapOutput(msgs)
	if err != nil {
		t.Fatalf("WrapOutput() error: %v", err)
	}
	if want := "<bos><start_of_turn>user\nq<end_of_turn>"; plain.Flat != want {
		t.Errorf("Flat = %q, want %q", plain.Flat, want)
	}
	if strings.HasSuffix(plain.Flat, "<start_of_turn>model\n") {
		t.Errorf("conversation ending in a user turn must not be primed by default")
	}

	primed, err := Gemma.WrapOutput(msgs, WithGenerationPrompt())
	if err != nil {
		t.Fatalf("WrapOutput() error: %v", err)
	}
	if want := "<bos><start_of_turn>user\nq<end_of_turn>\n<start_of_turn>model\n"; primed.Flat != want {
		t.Errorf("Flat = %q, want %q", primed.Flat, want)
	}
}
