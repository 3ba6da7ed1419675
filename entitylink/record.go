package entitylink

import (
	"fmt"

	"github.com/kbukum/chatseg/errors"
)

// Label annotates one span of a document's text. Span holds [start, end)
// offsets counted in characters (runes), not bytes.
type Label struct {
	Span     []int   `json:"span" validate:"required,len=2"`
	EntityID *string `json:"entity_id" validate:"required"`
}

// Record is one input document. Pointer fields distinguish a missing key
// from an empty value.
type Record struct {
	Text      *string  `json:"text" validate:"required"`
	Labels    []Label  `json:"labels" validate:"required,dive"`
	Output    *string  `json:"output" validate:"required"`
	OutputQID []string `json:"output_qid" validate:"required"`
}

// spanText returns the label's slice of text.
func (l Label) spanText(text []rune) (string, error) {
	start, end := l.Span[0], l.Span[1]
	if start < 0 || end < start || end > len(text) {
		return "", errors.MalformedInput(
			fmt.Sprintf("span [%d, %d] is out of range for text of length %d", start, end, len(text)),
		).WithDetail("field", "labels.span")
	}
	return string(text[start:end]), nil
}
