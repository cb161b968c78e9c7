package keywords

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ats-checker/internal/resources"
)

type failingStrategy struct{}

func (failingStrategy) Name() string { return "broken" }

func (failingStrategy) Extract(context.Context, string, int) ([]string, error) {
	return nil, errors.New("boom")
}

func newRegistry() *resources.Registry {
	reg := resources.NewRegistry(nil)
	reg.Register(resources.KindTagger, RuleTaggerLoader)
	return reg
}

func TestFrequencyStrategy(t *testing.T) {
	got, err := FrequencyStrategy{}.Extract(context.Background(),
		"The Go service and the Go worker use Redis; Redis caches it", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"redis", "service", "worker", "use", "caches"}, got)
}

func TestFrequencyStrategy_TopN(t *testing.T) {
	got, err := FrequencyStrategy{}.Extract(context.Background(), "alpha beta beta gamma gamma gamma", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"gamma", "beta"}, got)
}

func TestTaggerStrategy(t *testing.T) {
	s := &TaggerStrategy{Resources: newRegistry()}

	got, err := s.Extract(context.Background(),
		"senior python developer required with django experience and cloud deployment knowledge", 100)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"senior", "python", "developer", "django", "experience", "cloud", "deployment", "knowledge",
		"senior python developer", "django experience", "cloud deployment knowledge",
	}, got)
}

func TestTaggerStrategy_RepeatedTermsRankFirst(t *testing.T) {
	s := &TaggerStrategy{Resources: newRegistry()}

	got, err := s.Extract(context.Background(), "golang engineer golang services engineer", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"golang", "engineer"}, got)
}

func TestTaggerStrategy_Unavailable(t *testing.T) {
	reg := resources.NewRegistry(nil)
	reg.Register(resources.KindTagger, func(context.Context) (any, error) {
		return nil, errors.New("lexicon missing")
	})

	_, err := (&TaggerStrategy{Resources: reg}).Extract(context.Background(), "text", 5)
	var ue *resources.UnavailableError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, resources.KindTagger, ue.Kind)
}

func TestExtractor_FallsBack(t *testing.T) {
	e := NewExtractor(nil, failingStrategy{}, FrequencyStrategy{})

	res, err := e.Extract(context.Background(), "kafka kafka streaming", 5)
	require.NoError(t, err)
	assert.Equal(t, StrategyFrequency, res.Strategy)
	assert.Equal(t, []string{"kafka", "streaming"}, res.Keywords)
}

func TestExtractor_AllFail(t *testing.T) {
	e := NewExtractor(nil, failingStrategy{})

	_, err := e.Extract(context.Background(), "text", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoStrategy)
	assert.Contains(t, err.Error(), "broken: boom")
}

func TestNewDefaultExtractor_UsesTagger(t *testing.T) {
	e := NewDefaultExtractor(nil, newRegistry())

	res, err := e.Extract(context.Background(), "distributed systems engineer", 10)
	require.NoError(t, err)
	assert.Equal(t, StrategyTagger, res.Strategy)
	assert.Contains(t, res.Keywords, "distributed systems engineer")
}

const verbHeavyJob = "We are looking for an engineer who loves writing clean code and enjoys solving hard problems. " +
	"The candidate thrives in fast teams."

func TestTaggerStrategy_SkipsInflectedVerbs(t *testing.T) {
	loaders := map[string]resources.Loader{
		"rules": RuleTaggerLoader,
		"model": TaggerLoader,
	}
	for name, loader := range loaders {
		t.Run(name, func(t *testing.T) {
			reg := resources.NewRegistry(nil)
			reg.Register(resources.KindTagger, loader)

			got, err := (&TaggerStrategy{Resources: reg}).Extract(context.Background(), verbHeavyJob, 100)
			require.NoError(t, err)
			for _, verb := range []string{"loves", "enjoys", "thrives", "looking"} {
				assert.NotContains(t, got, verb)
			}
			assert.Contains(t, got, "code")
			assert.Contains(t, got, "problems")
		})
	}
}

func TestTaggerStrategy_AdjectiveNounPhrases(t *testing.T) {
	got, err := (&TaggerStrategy{Resources: newRegistry()}).Extract(context.Background(), verbHeavyJob, 100)
	require.NoError(t, err)
	assert.Contains(t, got, "clean")
	assert.Contains(t, got, "clean code")
	assert.Contains(t, got, "hard problems")
	assert.Contains(t, got, "fast teams")
}
