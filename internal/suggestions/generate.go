// Package suggestions turns analysis signals into ordered, human-readable
// recommendations.
package suggestions

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/resume-ats-checker/internal/types"
)

// SkillsSummary is the part of the skill coverage the generator reads.
type SkillsSummary struct {
	// TotalCoverage is a percentage.
	TotalCoverage float64
	MissingSkills []string
}

// Input holds the signals suggestions are derived from. Nil profiles skip
// their rules.
type Input struct {
	Score           int
	MissingKeywords []string
	Sections        types.SectionFlags
	// MatchRate is a fraction in [0,1].
	MatchRate  float64
	Experience *types.ExperienceProfile
	Skills     *SkillsSummary
	Context    *types.ContextProfile
}

// Formatting tips appended to every result.
var formattingTips = []string{
	"✨ Use industry-standard section headers (Professional Experience, Technical Skills, Education).",
	"📄 Avoid tables, text boxes, headers/footers, and images - ATS systems struggle with these.",
	"🔤 Use standard fonts (Arial, Calibri, Times New Roman) and save as .docx or PDF for best compatibility.",
	"🎯 Mirror the job description's language and terminology throughout your resume.",
}

// Generate returns suggestions in a fixed priority order.
func Generate(in Input) []string {
	var out []string
	out = append(out, scoreTier(in.Score))

	if e := in.Experience; e != nil {
		if e.MetricCount < 3 {
			out = append(out, "📊 Add quantifiable achievements with metrics (e.g., 'Increased efficiency by 40%', 'Managed team of 12', '$2M budget').")
		}
		if e.ActionVerbCount < 10 {
			out = append(out, "💪 Use more strong action verbs (led, developed, improved, achieved, etc.) to describe your experience.")
		}
		if e.LeadershipIndicators == 0 && strings.Contains(strings.ToLower(strings.Join(in.MissingKeywords, " ")), "lead") {
			out = append(out, "👥 Emphasize leadership experience if applicable (led teams, managed projects, mentored others).")
		}
		if e.StrengthScore < 50 {
			out = append(out, "📝 Strengthen your experience descriptions with specific accomplishments and measurable impact.")
		}
	}

	if s := in.Skills; s != nil {
		if s.TotalCoverage < 50 {
			out = append(out, fmt.Sprintf("🎯 Critical: Only %.0f%% skill match. Prioritize adding these missing skills to your resume.", s.TotalCoverage))
		}
		if len(s.MissingSkills) > 0 {
			out = append(out, "🔧 Add these key skills if you have them: "+strings.Join(head(s.MissingSkills, 5), ", "))
		}
	}

	if c := in.Context; c != nil {
		if c.AverageContextMatch < 0.4 {
			out = append(out, "📖 Your keywords appear in different contexts than the job description. Align your phrasing more closely.")
		}
		if c.WellContextualizedCount < 5 {
			out = append(out, "🎯 Use job description terminology more precisely to show direct relevance.")
		}
	}

	if critical := criticalKeywords(in.MissingKeywords); len(critical) >= 5 {
		out = append(out, "🔑 High-priority keywords to add: "+strings.Join(critical[:5], ", "))
	} else if len(critical) > 0 {
		out = append(out, "🔑 Important keywords to incorporate: "+strings.Join(critical, ", "))
	}

	if missing := in.Sections.Missing(); len(missing) > 0 {
		out = append(out, "📋 Add missing sections: "+cases.Title(language.English).String(strings.Join(missing, ", ")))
	}
	if !in.Sections.Skills {
		out = append(out, "💼 Create a dedicated 'Technical Skills' or 'Core Competencies' section for better ATS parsing.")
	}
	if !in.Sections.Achievements {
		out = append(out, "🏆 Consider adding an 'Achievements' or 'Key Accomplishments' section to highlight your impact.")
	}

	switch {
	case in.MatchRate < 0.3:
		out = append(out, "⚠️ Very low keyword overlap (< 30%). This resume may not pass initial ATS screening.")
	case in.MatchRate < 0.5:
		out = append(out, fmt.Sprintf("📈 Boost keyword match rate from %.0f%% to at least 50%% by tailoring content to job description.", in.MatchRate*100))
	}

	out = append(out, formattingTips...)

	if in.Score < 70 {
		out = append(out, "💡 Pro tip: Create a master resume with all your skills/experience, then customize for each application.")
	}
	return out
}

func scoreTier(score int) string {
	switch {
	case score >= 90:
		return "🌟 Outstanding! Your resume is exceptionally well-aligned with this role."
	case score >= 80:
		return "✅ Excellent match! Your resume shows strong alignment with the job requirements."
	case score >= 70:
		return "👍 Good alignment. A few targeted improvements will strengthen your application."
	case score >= 60:
		return "⚠️ Moderate match. Focus on incorporating more relevant keywords and skills."
	case score >= 50:
		return "⚠️ Below average alignment. Significant revisions needed to match this role."
	default:
		return "❌ Low compatibility. Consider major revisions or whether this role matches your background."
	}
}

// criticalKeywords returns the first ten missing keywords longer than three characters.
func criticalKeywords(missing []string) []string {
	var out []string
	for _, kw := range head(missing, 10) {
		if len([]rune(kw)) > 3 {
			out = append(out, kw)
		}
	}
	return out
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
