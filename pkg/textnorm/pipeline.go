// Package textnorm canonicalizes noisy user text (reviews, social posts)
// for tokenization and statistical modeling.
//
// A Pipeline runs seven stages in a fixed order:
//
//	repair        undo mojibake ("cafÃ©" -> "café"); never fails
//	nfc           Unicode Normalization Form C
//	symbols       drop denylisted decorative symbols
//	contractions  expand informal spellings at word boundaries
//	hashtags      lowercase and strip accents inside #hashtags
//	diacritics    transliterate to ASCII, keeping allow-listed emoji
//	cleanup       lowercase, prune characters, collapse whitespace, trim
//
// The order is part of the contract: contractions are matched after symbol
// filtering and before accent removal, and cleanup is always last.
// A Pipeline is immutable and safe for concurrent use.
package textnorm

import (
	"fmt"
	"sync"
)

// Stage names, in execution order.
const (
	StageRepair       = "repair"
	StageNFC          = "nfc"
	StageSymbols      = "symbols"
	StageContractions = "contractions"
	StageHashtags     = "hashtags"
	StageDiacritics   = "diacritics"
	StageCleanup      = "cleanup"
)

// Options configures a Pipeline. Nil fields fall back to the defaults; an
// empty non-nil Denylist or Emoji disables the feature.
type Options struct {
	Lexicon  *Lexicon
	Denylist []string
	Emoji    []rune
	Encoding string
}

// Stage is one named step of the pipeline.
type Stage struct {
	Name  string
	Apply Normalizer
}

// StageResult is the text as it leaves a stage.
type StageResult struct {
	Stage  string `json:"stage"`
	Output string `json:"output"`
}

// Pipeline is the compiled, ordered sequence of stages.
type Pipeline struct {
	lexicon *Lexicon
	stages  []Stage
}

// New compiles a Pipeline. Rules and patterns are built once here.
func New(opts Options) (*Pipeline, error) {
	lex := opts.Lexicon
	if lex == nil {
		lex = DefaultLexicon()
	} else {
		if err := lex.Validate(); err != nil {
			return nil, err
		}
		lex = lex.clone()
	}
	denylist := opts.Denylist
	if denylist == nil {
		denylist = DefaultDenylist
	}
	emoji := opts.Emoji
	if emoji == nil {
		emoji = DefaultEmoji
	}

	rep, err := newRepairer(opts.Encoding)
	if err != nil {
		return nil, err
	}
	exp := expander(compileRules(lex))
	tr := newTransliterator(emoji)
	cl := newCleaner(emoji)

	return &Pipeline{
		lexicon: lex,
		stages: []Stage{
			{Name: StageRepair, Apply: rep.repair},
			{Name: StageNFC, Apply: ComposeNFC},
			{Name: StageSymbols, Apply: newSymbolFilter(denylist)},
			{Name: StageContractions, Apply: exp.expand},
			{Name: StageHashtags, Apply: normalizeHashtags},
			{Name: StageDiacritics, Apply: tr.transliterate},
			{Name: StageCleanup, Apply: cl.clean},
		},
	}, nil
}

// MustNew is New for static options; it panics on error.
func MustNew(opts Options) *Pipeline {
	p, err := New(opts)
	if err != nil {
		panic(fmt.Sprintf("textnorm: %v", err))
	}
	return p
}

var defaultPipeline = sync.OnceValue(func() *Pipeline {
	return MustNew(Options{})
})

// Default returns the shared pipeline built from the default options.
func Default() *Pipeline {
	return defaultPipeline()
}

// Normalize runs text through the default pipeline.
func Normalize(text string) string {
	return Default().Normalize(text)
}

// Normalize threads text through every stage. It never fails; input that
// cannot be repaired is simply cleaned less.
func (p *Pipeline) Normalize(text string) string {
	for _, st := range p.stages {
		text = st.Apply(text)
	}
	return text
}

// Trace returns the output of each stage in order. The last output equals
// Normalize(text).
func (p *Pipeline) Trace(text string) []StageResult {
	results := make([]StageResult, 0, len(p.stages))
	for _, st := range p.stages {
		text = st.Apply(text)
		results = append(results, StageResult{Stage: st.Name, Output: text})
	}
	return results
}

// Stages returns the ordered stage list.
func (p *Pipeline) Stages() []Stage {
	return append([]Stage(nil), p.stages...)
}

// Lexicon returns a copy of the lexicon the pipeline was built with.
func (p *Pipeline) Lexicon() *Lexicon {
	return p.lexicon.clone()
}
