package keywords

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// POSModel assigns Penn Treebank tags to a sequence of words. The returned
// slice is either nil or has one tag per word.
type POSModel interface {
	TagWords(words []string) ([]string, error)
}

// ProseModel tags words with the averaged perceptron bundled in prose.
type ProseModel struct{}

func (ProseModel) TagWords(words []string) ([]string, error) {
	if len(words) == 0 {
		return nil, nil
	}
	doc, err := prose.NewDocument(strings.Join(words, " "),
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, err
	}

	toks := doc.Tokens()
	texts := make([]string, len(toks))
	tags := make([]string, len(toks))
	for i, tok := range toks {
		texts[i] = tok.Text
		tags[i] = tok.Tag
	}
	return alignTags(words, texts, tags), nil
}

// alignTags maps model tokens back onto words. A word split into several
// model tokens takes the tag of its longest piece. Nil is returned when the
// two tokenizations disagree.
func alignTags(words, texts, tags []string) []string {
	out := make([]string, len(words))
	j := 0
	for i, w := range words {
		var built strings.Builder
		longest := -1
		for j < len(texts) && built.Len() < len(w) {
			built.WriteString(texts[j])
			if longest < 0 || len(texts[j]) > len(texts[longest]) {
				longest = j
			}
			j++
		}
		if built.String() != w || longest < 0 {
			return nil
		}
		out[i] = tags[longest]
	}
	if j != len(texts) {
		return nil
	}
	return out
}

// universalTag maps a Penn Treebank tag onto the universal tag set.
func universalTag(penn string) string {
	switch {
	case penn == "NNP" || penn == "NNPS":
		return TagPropn
	case strings.HasPrefix(penn, "NN"):
		return TagNoun
	case strings.HasPrefix(penn, "JJ"):
		return TagAdj
	case strings.HasPrefix(penn, "VB"):
		return TagVerb
	case strings.HasPrefix(penn, "RB") || penn == "WRB":
		return TagAdv
	case penn == "CD":
		return TagNum
	case penn == "DT" || penn == "PDT" || penn == "WDT":
		return TagDet
	case penn == "MD":
		return "AUX"
	case penn == "IN":
		return "ADP"
	case penn == "CC":
		return "CCONJ"
	case penn == "TO" || penn == "RP" || penn == "POS":
		return "PART"
	case strings.HasPrefix(penn, "PRP") || strings.HasPrefix(penn, "WP") || penn == "EX":
		return "PRON"
	}
	return ""
}
