// Package similarity estimates whole-document relatedness between a resume and
// a job description, with dense embeddings preferred over TF-IDF.
package similarity

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/resume-ats-checker/internal/lexicon"
	"github.com/jonathan/resume-ats-checker/internal/parsing"
)

// ErrEmptyVocabulary is returned when no terms survive filtering.
var ErrEmptyVocabulary = errors.New("empty vocabulary after pruning")

// Vectorizer fits a TF-IDF space over a small set of documents.
// A Vectorizer holds configuration only and is safe for concurrent use.
type Vectorizer struct {
	MaxFeatures int
	// MinDF and MaxDF bound document frequency. MaxDF is a fraction of the document count.
	MinDF     int
	MaxDF     float64
	NGramMin  int
	NGramMax  int
	Stopwords map[string]bool
	// SublinearTF replaces tf with 1 + ln(tf).
	SublinearTF bool
}

// NewVectorizer returns a vectorizer with the default settings: up to 1000
// 1-3 word terms, English stopwords removed, terms in more than 95% of the
// documents dropped, sublinear tf.
func NewVectorizer() (*Vectorizer, error) {
	stop, err := lexicon.Set(lexicon.StopwordsFile, "english")
	if err != nil {
		return nil, err
	}
	return &Vectorizer{
		MaxFeatures: 1000,
		MinDF:       1,
		MaxDF:       0.95,
		NGramMin:    1,
		NGramMax:    3,
		Stopwords:   stop,
		SublinearTF: true,
	}, nil
}

// Similarity fits the vector space over a and b and returns their cosine
// similarity. Any failure yields 0.
func (v *Vectorizer) Similarity(a, b string) float64 {
	_, rows, err := v.FitTransform([]string{a, b})
	if err != nil {
		return 0
	}
	return cosine(rows[0], rows[1])
}

// FitTransform returns the sorted vocabulary and one L2-normalized TF-IDF row
// per document aligned to it.
func (v *Vectorizer) FitTransform(docs []string) ([]string, [][]float64, error) {
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	total := make(map[string]int)
	for i, doc := range docs {
		counts[i] = make(map[string]int)
		for _, term := range v.analyze(doc) {
			if counts[i][term] == 0 {
				df[term]++
			}
			counts[i][term]++
			total[term]++
		}
	}

	vocab := v.limit(df, total, len(docs))
	if len(vocab) == 0 {
		return nil, nil, ErrEmptyVocabulary
	}

	n := float64(len(docs))
	rows := make([][]float64, len(docs))
	for i := range docs {
		row := make([]float64, len(vocab))
		var norm float64
		for j, term := range vocab {
			tf := float64(counts[i][term])
			if tf == 0 {
				continue
			}
			if v.SublinearTF {
				tf = 1 + math.Log(tf)
			}
			idf := math.Log((1+n)/(1+float64(df[term]))) + 1
			row[j] = tf * idf
			norm += row[j] * row[j]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range row {
				row[j] /= norm
			}
		}
		rows[i] = row
	}
	return vocab, rows, nil
}

// analyze tokenizes into word runs of two or more characters, drops
// stopwords and emits the configured n-grams.
func (v *Vectorizer) analyze(doc string) []string {
	var tokens []string
	for _, w := range parsing.WordRuns(strings.ToLower(doc), 2) {
		if !v.Stopwords[w] {
			tokens = append(tokens, w)
		}
	}

	lo, hi := v.NGramMin, v.NGramMax
	if lo < 1 {
		lo = 1
	}
	if hi < lo {
		hi = lo
	}
	var terms []string
	for size := lo; size <= hi; size++ {
		for i := 0; i+size <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+size], " "))
		}
	}
	return terms
}

// limit applies the document-frequency bounds and then keeps the MaxFeatures
// terms with the highest corpus frequency, ties broken alphabetically. The
// result is sorted.
func (v *Vectorizer) limit(df, total map[string]int, nDocs int) []string {
	maxCount := v.MaxDF * float64(nDocs)
	var kept []string
	for term, d := range df {
		if float64(d) > maxCount || d < v.MinDF {
			continue
		}
		kept = append(kept, term)
	}

	if v.MaxFeatures > 0 && len(kept) > v.MaxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if total[kept[i]] != total[kept[j]] {
				return total[kept[i]] > total[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:v.MaxFeatures]
	}
	sort.Strings(kept)
	return kept
}

func cosine[T float32 | float64](a, b []T) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
