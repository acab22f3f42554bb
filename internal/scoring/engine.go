package scoring

// Kind classifies how a question is scored.
type Kind string

const (
	KindFreeText     Kind = "free_text"
	KindSingleChoice Kind = "single_choice"
	KindMultiChoice  Kind = "multi_choice"
)

// Result is the outcome of scoring one question.
type Result struct {
	Kind    Kind `json:"kind"`
	Awarded int  `json:"awarded"` // 0 or 1
}

// ScoreQuestion applies the matching policy for one question and returns the
// point contribution. A scoring pass must always complete: malformed
// submitted shapes (nil, wrong types, empty lists) degrade to a no-match
// comparison worth zero points, never an error.
//
// Free-text and single-choice compare one submitted token against the key.
// Multi-choice awards the point when ANY submitted element is in the key.
// The leniency of the multi-choice policy (extra wrong selections alongside
// one right one still earn the point) is intentional, observed product
// behavior; do not tighten it to strict set equality.
func ScoreQuestion(isTextInput bool, key AnswerSet, submitted any) Result {
	if isTextInput {
		token := firstToken(submitted)
		return Result{Kind: KindFreeText, Awarded: award(key.Contains(Normalize(token)))}
	}

	tokens := tokenList(submitted)
	kind := KindSingleChoice
	if len(tokens) > 1 {
		kind = KindMultiChoice
	}
	for _, t := range tokens {
		if key.Contains(Normalize(t)) {
			return Result{Kind: kind, Awarded: 1}
		}
	}
	return Result{Kind: kind, Awarded: 0}
}

// TotalScore sums per-question awards.
func TotalScore(results []Result) int {
	total := 0
	for _, r := range results {
		total += r.Awarded
	}
	return total
}

// firstToken coerces a submitted answer to a single string: a bare string is
// taken as-is, a list contributes its first string element, anything else is
// the empty string.
func firstToken(submitted any) string {
	switch v := submitted.(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

// tokenList coerces a submitted answer to a string list. Non-string elements
// are dropped rather than rejected.
func tokenList(submitted any) []string {
	switch v := submitted.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func award(correct bool) int {
	if correct {
		return 1
	}
	return 0
}
