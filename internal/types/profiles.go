package types

// ExperienceProfile holds action-verb and metric counts for a resume.
type ExperienceProfile struct {
	ActionVerbCount         int
	MetricCount             int
	LeadershipIndicators    int
	AchievementIndicators   int
	ImprovementIndicators   int
	CreationIndicators      int
	CollaborationIndicators int
	StrengthScore           int
	HasQuantifiableResults  bool
}

// KeywordContext is the context similarity of one keyword.
type KeywordContext struct {
	Keyword string  `json:"keyword"`
	Score   float64 `json:"score"`
}

// ContextProfile holds per-keyword context similarity and its aggregates.
type ContextProfile struct {
	Scores                  []KeywordContext
	AverageContextMatch     float64
	WellContextualizedCount int
}

// Section names, in canonical order.
const (
	SectionSkills       = "skills"
	SectionExperience   = "experience"
	SectionEducation    = "education"
	SectionAchievements = "achievements"
	SectionProjects     = "projects"
)

// SectionNames lists the canonical sections in order.
var SectionNames = []string{SectionSkills, SectionExperience, SectionEducation, SectionAchievements, SectionProjects}

// SectionFlags records which canonical resume sections are present.
type SectionFlags struct {
	Skills       bool `json:"skills"`
	Experience   bool `json:"experience"`
	Education    bool `json:"education"`
	Achievements bool `json:"achievements"`
	Projects     bool `json:"projects"`
}

// Get returns the flag for a section name.
func (f SectionFlags) Get(name string) bool {
	switch name {
	case SectionSkills:
		return f.Skills
	case SectionExperience:
		return f.Experience
	case SectionEducation:
		return f.Education
	case SectionAchievements:
		return f.Achievements
	case SectionProjects:
		return f.Projects
	}
	return false
}

// Set sets the flag for a section name. Unknown names are ignored.
func (f *SectionFlags) Set(name string, present bool) {
	switch name {
	case SectionSkills:
		f.Skills = present
	case SectionExperience:
		f.Experience = present
	case SectionEducation:
		f.Education = present
	case SectionAchievements:
		f.Achievements = present
	case SectionProjects:
		f.Projects = present
	}
}

// Missing returns the absent sections in canonical order.
func (f SectionFlags) Missing() []string {
	var missing []string
	for _, name := range SectionNames {
		if !f.Get(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Completeness returns the fraction of sections present.
func (f SectionFlags) Completeness() float64 {
	present := len(SectionNames) - len(f.Missing())
	return float64(present) / float64(len(SectionNames))
}
