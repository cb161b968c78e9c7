package keywords

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-ats-checker/internal/lexicon"
)

// Universal part-of-speech tags produced by Tagger.
const (
	TagNoun  = "NOUN"
	TagPropn = "PROPN"
	TagAdj   = "ADJ"
	TagVerb  = "VERB"
	TagAdv   = "ADV"
	TagNum   = "NUM"
	TagDet   = "DET"
	TagPunct = "PUNCT"
)

// closedClasses are checked in order before the open-class rules.
var closedClasses = []string{"DET", "PRON", "ADP", "CCONJ", "SCONJ", "AUX", "PART", "ADV"}

// tokenPattern keeps dotted and suffixed tech terms (node.js, c++, c#, ci/cd) as one token
// and emits every other non-space symbol as its own token.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]+(?:[.\-+#/][\p{L}\p{N}_]+)*[+#]*|[^\s\p{L}\p{N}_]`)

// Token is one tagged token.
type Token struct {
	Text string
	POS  string
	Stop bool
}

// Tagger is a part-of-speech tagger and noun-phrase chunker. Lexicon entries
// win over the statistical model, and suffix rules cover words neither knows.
// It is built once and is safe for concurrent use.
type Tagger struct {
	model       POSModel
	classes     map[string]map[string]bool
	verbs       map[string]bool
	adjectives  map[string]bool
	properNouns map[string]bool
	nounIng     map[string]bool
	nounSuffix  []string
	adjSuffix   []string
	stopwords   map[string]bool
}

// TaggerOption configures a Tagger.
type TaggerOption func(*Tagger)

// WithModel sets the statistical model consulted for words missing from the lexicons.
func WithModel(m POSModel) TaggerOption {
	return func(t *Tagger) { t.model = m }
}

// NewTagger loads the tagger lexicons. Without WithModel the tagger is purely rule based.
func NewTagger(opts ...TaggerOption) (*Tagger, error) {
	t := &Tagger{classes: make(map[string]map[string]bool)}
	for _, opt := range opts {
		opt(t)
	}

	for _, class := range closedClasses {
		set, err := lexicon.Set(lexicon.TaggerFile, class)
		if err != nil {
			return nil, fmt.Errorf("failed to load tagger class %s: %w", class, err)
		}
		t.classes[class] = set
	}

	var err error
	if t.verbs, err = lexicon.Set(lexicon.TaggerFile, "VERB"); err != nil {
		return nil, err
	}
	if t.adjectives, err = lexicon.Set(lexicon.TaggerFile, "ADJ"); err != nil {
		return nil, err
	}
	if t.properNouns, err = lexicon.Set(lexicon.TaggerFile, "PROPN"); err != nil {
		return nil, err
	}
	if t.nounIng, err = lexicon.Set(lexicon.TaggerFile, "NOUN_ING"); err != nil {
		return nil, err
	}
	if t.nounSuffix, err = lexicon.Get(lexicon.TaggerFile, "NOUN_SUFFIX"); err != nil {
		return nil, err
	}
	if t.adjSuffix, err = lexicon.Get(lexicon.TaggerFile, "ADJ_SUFFIX"); err != nil {
		return nil, err
	}
	if t.stopwords, err = lexicon.Set(lexicon.StopwordsFile, "english"); err != nil {
		return nil, err
	}
	return t, nil
}

// Tag tokenizes text and assigns a tag to each token. Token texts are lowercased;
// the model sees the original casing.
func (t *Tagger) Tag(text string) []Token {
	words := tokenPattern.FindAllString(text, -1)
	hints := t.modelTags(words)
	tokens := make([]Token, 0, len(words))

	prev := ""
	for i, raw := range words {
		w := strings.ToLower(raw)
		hint := ""
		if hints != nil {
			hint = universalTag(hints[i])
		}
		pos := t.tagWord(w, prev, hint)
		tokens = append(tokens, Token{Text: w, POS: pos, Stop: t.stopwords[w]})
		prev = pos
	}
	return tokens
}

// modelTags returns nil when there is no model or it failed.
func (t *Tagger) modelTags(words []string) []string {
	if t.model == nil || len(words) == 0 {
		return nil
	}
	tags, err := t.model.TagWords(words)
	if err != nil || len(tags) != len(words) {
		return nil
	}
	return tags
}

func (t *Tagger) tagWord(w, prev, hint string) string {
	first, _ := utf8.DecodeRuneInString(w)
	switch {
	case !unicode.IsLetter(first) && !unicode.IsDigit(first) && first != '_':
		return TagPunct
	case unicode.IsDigit(first):
		return TagNum
	case t.properNouns[w]:
		return TagPropn
	}

	for _, class := range closedClasses {
		if t.classes[class][w] {
			return class
		}
	}

	switch {
	case t.nounIng[w]:
		return TagNoun
	case t.verbs[w]:
		return TagVerb
	case t.adjectives[w]:
		return TagAdj
	case hint != "" && hint != TagPunct:
		return hint
	case t.inflectedVerb(w, prev):
		return TagVerb
	}

	if strings.HasSuffix(w, "ing") && len(w) > 4 {
		if prev == TagNoun || prev == TagAdj || prev == TagDet || prev == TagPropn {
			return TagNoun
		}
		return TagVerb
	}

	switch {
	case strings.HasSuffix(w, "ly") && len(w) > 4:
		return TagAdv
	case strings.HasSuffix(w, "ed") && len(w) > 4:
		return TagVerb
	}

	for _, suffix := range t.nounSuffix {
		if strings.HasSuffix(w, suffix) {
			return TagNoun
		}
	}
	for _, suffix := range t.adjSuffix {
		if strings.HasSuffix(w, suffix) && len(w) > len(suffix)+2 {
			return TagAdj
		}
	}
	return TagNoun
}

// inflectedVerb reports whether w is the third-person form of a lexicon verb
// following a subject, as in "the team ships" or "who enjoys".
func (t *Tagger) inflectedVerb(w, prev string) bool {
	if prev != TagNoun && prev != TagPropn && prev != "PRON" && prev != TagAdv {
		return false
	}
	for _, base := range verbBases(w) {
		if t.verbs[base] {
			return true
		}
	}
	return false
}

// verbBases lists candidate base forms of a word ending in -s, -es or -ies.
func verbBases(w string) []string {
	if len(w) < 4 || !strings.HasSuffix(w, "s") || strings.HasSuffix(w, "ss") {
		return nil
	}
	bases := []string{w[:len(w)-1]}
	if strings.HasSuffix(w, "ies") {
		bases = append(bases, w[:len(w)-3]+"y")
	} else if strings.HasSuffix(w, "es") {
		bases = append(bases, w[:len(w)-2])
	}
	return bases
}

// Chunks returns base noun phrases: an optional determiner, any adjective,
// noun, proper-noun or number modifiers, and a noun or proper-noun head.
func (t *Tagger) Chunks(tokens []Token) []string {
	var chunks []string
	var current []Token

	flush := func() {
		// trim trailing modifiers so the phrase ends on its head
		end := len(current)
		for end > 0 && !isHead(current[end-1].POS) {
			end--
		}
		if end > 0 {
			words := make([]string, end)
			for i := 0; i < end; i++ {
				words[i] = current[i].Text
			}
			chunks = append(chunks, strings.Join(words, " "))
		}
		current = current[:0]
	}

	for _, tok := range tokens {
		switch {
		case tok.POS == TagDet:
			flush()
			current = append(current, tok)
		case isModifier(tok.POS):
			current = append(current, tok)
		default:
			flush()
		}
	}
	flush()
	return chunks
}

func isHead(pos string) bool {
	return pos == TagNoun || pos == TagPropn
}

func isModifier(pos string) bool {
	return pos == TagAdj || pos == TagNoun || pos == TagPropn || pos == TagNum
}
