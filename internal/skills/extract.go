package skills

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/resume-ats-checker/internal/keywords"
	"github.com/jonathan/resume-ats-checker/internal/logger"
	"github.com/jonathan/resume-ats-checker/internal/resources"
)

const maxPhraseWords = 4

// determinerPrefixes mark noun phrases that are prose rather than skills.
var determinerPrefixes = []string{"the ", "this ", "that ", "these ", "those "}

// Extractor finds skills in text. Noun phrases from the tagger resource are
// added when it is available.
type Extractor struct {
	Resources *resources.Registry
	Logger    *zap.Logger
}

// Extract returns deduplicated lowercase skills in first-seen order.
func (e *Extractor) Extract(ctx context.Context, text string) []string {
	lower := strings.ToLower(text)
	found := MatchTaxonomy(lower)

	if tagger := e.tagger(ctx); tagger != nil {
		found = append(found, phrases(tagger, lower)...)
	}
	return dedupe(found)
}

func (e *Extractor) tagger(ctx context.Context) *keywords.Tagger {
	if e == nil || e.Resources == nil {
		return nil
	}
	tagger, err := resources.Get[*keywords.Tagger](ctx, e.Resources, resources.KindTagger)
	if err != nil {
		logger.OrNop(e.Logger).Debug("skill phrases skipped", zap.Error(err))
		return nil
	}
	return tagger
}

// MatchTaxonomy returns every taxonomy match in lowercased text, category by category.
func MatchTaxonomy(lower string) []string {
	var found []string
	for _, c := range Taxonomy {
		for _, m := range c.Pattern.FindAllStringSubmatch(lower, -1) {
			found = append(found, m[1])
		}
	}
	return found
}

func phrases(tagger *keywords.Tagger, lower string) []string {
	var out []string
	for _, chunk := range tagger.Chunks(tagger.Tag(lower)) {
		chunk = strings.TrimSpace(chunk)
		n := len(strings.Fields(chunk))
		if n < 1 || n > maxPhraseWords || hasDeterminer(chunk) {
			continue
		}
		out = append(out, chunk)
	}
	return out
}

func hasDeterminer(phrase string) bool {
	for _, p := range determinerPrefixes {
		if strings.Contains(phrase, p) {
			return true
		}
	}
	return false
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		norm := strings.ToLower(strings.TrimSpace(it))
		if len(norm) <= 1 || seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, norm)
	}
	return out
}
