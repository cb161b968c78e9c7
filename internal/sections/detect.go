// Package sections detects standard resume sections by name variants.
package sections

import (
	"strings"

	"github.com/jonathan/resume-ats-checker/internal/types"
)

// Variants maps each canonical section to the names that indicate it.
var Variants = map[string][]string{
	types.SectionSkills: {"skills", "technical skills", "core competencies", "expertise", "proficiencies",
		"technologies", "tools", "technical proficiencies", "key skills"},
	types.SectionExperience: {"experience", "work history", "employment", "professional experience",
		"work experience", "career history", "employment history", "professional background"},
	types.SectionEducation: {"education", "academic", "degree", "university", "college", "qualification",
		"academic background", "certifications", "training"},
	types.SectionAchievements: {"achievements", "accomplishments", "awards", "honors", "recognition"},
	types.SectionProjects:     {"projects", "portfolio", "key projects", "notable work"},
}

// Detect flags each canonical section whose name variant appears anywhere in the resume.
func Detect(resume string) types.SectionFlags {
	lower := strings.ToLower(resume)
	var flags types.SectionFlags
	for _, name := range types.SectionNames {
		for _, v := range Variants[name] {
			if strings.Contains(lower, v) {
				flags.Set(name, true)
				break
			}
		}
	}
	return flags
}
