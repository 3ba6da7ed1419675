package entitylink

import "regexp"

var mentionPattern = regexp.MustCompile(`(?s)<MENTION>(.*?)</MENTION>\[LK\]\[_CONTINUE_\]`)

// ExtractMentions returns the surface forms tagged in a model output, in
// order of appearance and untrimmed. Mentions may span lines.
func ExtractMentions(output string) []string {
	matches := mentionPattern.FindAllStringSubmatch(output, -1)
	mentions := make([]string, 0, len(matches))
	for _, m := range matches {
		mentions = append(mentions, m[1])
	}
	return mentions
}
