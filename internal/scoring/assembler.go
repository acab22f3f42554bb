package scoring

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// MaxOptions is the largest option list a choice question may carry: one per
// positional label "A".."Z". Authoring validation enforces it; behavior
// beyond 26 options is undefined rather than wrapping.
const MaxOptions = 26

// Assembler produces the student-facing presentation of a question's option
// list: a fresh uniformly random permutation with positional labels. The
// correct-answer set never passes through here.
type Assembler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewAssembler() *Assembler {
	return NewAssemblerWithSeed(time.Now().UnixNano())
}

// NewAssemblerWithSeed fixes the permutation sequence, for tests.
func NewAssemblerWithSeed(seed int64) *Assembler {
	return &Assembler{rng: rand.New(rand.NewSource(seed))}
}

// Present returns the options as shown to a student. Free-text questions
// pass their (empty) option list through unmodified; choice questions get a
// shuffled copy with each entry prefixed by its new positional label, so
// "Tokyo" in the second slot becomes "B: Tokyo".
func (a *Assembler) Present(options []string, isTextInput bool) []string {
	if isTextInput || len(options) == 0 {
		return options
	}

	shuffled := make([]string, len(options))
	copy(shuffled, options)
	a.mu.Lock()
	a.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	a.mu.Unlock()

	for i, opt := range shuffled {
		shuffled[i] = fmt.Sprintf("%c: %s", 'A'+i, opt)
	}
	return shuffled
}
