package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"videomod/internal/pkg/filter"
	"videomod/internal/pkg/textextract"

	"github.com/go-kratos/kratos/v2/log"
)

// Built-in fraud phrase list. Deployments extend it through the fraud
// term store; the matcher is rebuilt on changes.
var builtinFraudTerms = []filter.Pattern{
	{Term: "free money", Category: "financial"},
	{Term: "get rich quick", Category: "financial"},
	{Term: "guaranteed income", Category: "financial"},
	{Term: "work from home", Category: "financial"},
	{Term: "click here", Category: "phishing"},
	{Term: "limited time", Category: "urgency"},
	{Term: "act now", Category: "urgency"},
	{Term: "urgent", Category: "urgency"},
	{Term: "congratulations", Category: "prize"},
	{Term: "you have won", Category: "prize"},
	{Term: "claim your prize", Category: "prize"},
	{Term: "no risk", Category: "financial"},
	{Term: "easy money", Category: "financial"},
	{Term: "investment opportunity", Category: "financial"},
	{Term: "double your money", Category: "financial"},
	{Term: "bitcoin", Category: "financial"},
	{Term: "cryptocurrency", Category: "financial"},
}

// BuiltinFraudTerms returns a copy of the built-in phrase list.
func BuiltinFraudTerms() []filter.Pattern {
	out := make([]filter.Pattern, len(builtinFraudTerms))
	copy(out, builtinFraudTerms)
	return out
}

// Indicator weight and text-shape limits.
const (
	indicatorWeight    = 0.2
	capsRatioCeiling   = 0.3
	exclamationCeiling = 3
	extractedTextLimit = 500
)

// FraudExtractor scans on-screen text from sampled frames for fraud
// phrases, excessive capitals, and exclamation spam.
type FraudExtractor struct {
	texts   textextract.Extractor
	matcher *filter.AhoCorasick
	log     *log.Helper
}

// NewFraudExtractor creates a FraudExtractor with the built-in phrase
// list. texts may be textextract.Noop when no OCR engine is wired.
func NewFraudExtractor(texts textextract.Extractor, logger log.Logger) *FraudExtractor {
	matcher := filter.NewAhoCorasick()
	matcher.Build(builtinFraudTerms)
	return &FraudExtractor{
		texts:   texts,
		matcher: matcher,
		log:     log.NewHelper(logger),
	}
}

// SetTerms replaces the phrase list, e.g. after the fraud term store
// changes.
func (e *FraudExtractor) SetTerms(terms []filter.Pattern) {
	e.matcher.Build(terms)
}

// Extract pulls text from sampled frames and scores fraud indicators.
func (e *FraudExtractor) Extract(ctx context.Context, src Source, cfg ModerationConfig) FraudSignal {
	frames, err := src.SampleFrames(ctx, textSampleCount)
	if err != nil {
		e.log.Warnf("fraud analysis failed: %v", err)
		return FraudSignal{Err: fmt.Sprintf("fraud analysis failed: %v", err)}
	}

	var parts []string
	for _, frame := range frames {
		texts, err := e.texts.ExtractText(ctx, frame.Image)
		if err != nil {
			// Per-frame extraction failures degrade to less evidence.
			e.log.Warnf("text extraction failed at %.1fs: %v", frame.Timestamp, err)
			continue
		}
		parts = append(parts, texts...)
	}
	text := strings.TrimSpace(strings.Join(parts, " "))

	return e.scoreText(text)
}

// scoreText runs the indicator checks on concatenated on-screen text.
func (e *FraudExtractor) scoreText(text string) FraudSignal {
	indicators := make([]string, 0)

	seen := make(map[string]bool)
	for _, m := range e.matcher.Search(text) {
		if seen[m.Term] {
			continue
		}
		seen[m.Term] = true
		indicators = append(indicators, fmt.Sprintf("suspicious keyword: %s", m.Term))
	}

	if len(text) > 0 {
		upper := 0
		for _, r := range text {
			if unicode.IsUpper(r) {
				upper++
			}
		}
		if float64(upper)/float64(len([]rune(text))) > capsRatioCeiling {
			indicators = append(indicators, "excessive use of capital letters")
		}
	}

	if strings.Count(text, "!") > exclamationCeiling {
		indicators = append(indicators, "excessive exclamation marks")
	}

	truncated := text
	if len(truncated) > extractedTextLimit {
		truncated = truncated[:extractedTextLimit]
	}

	return FraudSignal{
		Score:         BoundScore(indicatorWeight * float64(len(indicators))),
		Indicators:    indicators,
		ExtractedText: truncated,
		FraudTypes:    categorizeFraudTypes(indicators),
	}
}

// Keyword families classifying indicators into fraud types. An indicator
// may fall into several families; duplicates are removed from the result.
var fraudTypeFamilies = []struct {
	name     string
	keywords []string
}{
	{"financial fraud", []string{"money", "income", "rich", "investment"}},
	{"prize scam", []string{"prize", "won", "congratulations"}},
	{"phishing attempt", []string{"click", "link", "urgent"}},
}

func categorizeFraudTypes(indicators []string) []string {
	set := make(map[string]bool)
	for _, indicator := range indicators {
		lower := strings.ToLower(indicator)
		for _, family := range fraudTypeFamilies {
			for _, kw := range family.keywords {
				if strings.Contains(lower, kw) {
					set[family.name] = true
					break
				}
			}
		}
	}

	types := make([]string, 0, len(set))
	for name := range set {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}
