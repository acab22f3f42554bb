package scoring

import "strings"

// AnswerDelimiter joins multiple accepted answers inside a single stored
// string. Quizzes authored before the canonical array form used it, and some
// rows were double-encoded: an array whose only element is itself a
// delimiter-joined string.
const AnswerDelimiter = "|"

// AnswerSet is a set of normalized correct-answer strings.
type AnswerSet map[string]struct{}

func (s AnswerSet) Contains(normalized string) bool {
	_, ok := s[normalized]
	return ok
}

func (s AnswerSet) Empty() bool {
	return len(s) == 0
}

// Values returns the set members in unspecified order.
func (s AnswerSet) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	return out
}

// ParseAnswerKey builds the canonical correct-answer set from any of the
// historical storage forms: a string slice, a JSON-decoded []any, a
// delimiter-joined string, or a bare string. Nil and unrecognized inputs
// yield an empty set; an empty set can never score correct, which authoring
// validation rejects up front.
func ParseAnswerKey(raw any) AnswerSet {
	set := make(AnswerSet)
	switch v := raw.(type) {
	case []string:
		addAnswers(set, v)
	case []any:
		strs := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				strs = append(strs, s)
			}
		}
		addAnswers(set, strs)
	case string:
		addSplit(set, v)
	}
	return set
}

func addAnswers(set AnswerSet, answers []string) {
	// Legacy double-encoding: a one-element list whose element still carries
	// the delimiter.
	if len(answers) == 1 && strings.Contains(answers[0], AnswerDelimiter) {
		addSplit(set, answers[0])
		return
	}
	for _, a := range answers {
		if n := Normalize(a); n != "" {
			set[n] = struct{}{}
		}
	}
}

func addSplit(set AnswerSet, joined string) {
	for _, part := range strings.Split(joined, AnswerDelimiter) {
		if n := Normalize(part); n != "" {
			set[n] = struct{}{}
		}
	}
}

// SplitAnswers flattens authored correct answers into the canonical storage
// form: trimmed display strings, with the legacy one-element delimiter-joined
// form split apart. It applies the same structural rules as ParseAnswerKey so
// the stored form always parses back to the set the validator checked.
// Unlike ParseAnswerKey it keeps the original casing, since the stored
// strings are also shown in the authoring details view.
func SplitAnswers(answers []string) []string {
	if len(answers) == 1 && strings.Contains(answers[0], AnswerDelimiter) {
		answers = strings.Split(answers[0], AnswerDelimiter)
	}
	out := make([]string, 0, len(answers))
	for _, a := range answers {
		if trimmed := strings.TrimSpace(a); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
