package fetch

import (
	"net/url"
	"strings"
)

// Platform is a known job board.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformAshby      Platform = "ashby"
	PlatformUnknown    Platform = "unknown"
)

type platformProfile struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

var platforms = []platformProfile{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content:  []string{"[data-automation-id='jobDescription']", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	{
		platform: PlatformAshby,
		hosts:    []string{"ashbyhq.com"},
		content:  []string{"[class*='_descriptionText']", "#overview", "main"},
		noise:    []string{"[class*='_applicationForm']"},
	},
}

// commonNoise is stripped from every job posting.
var commonNoise = []string{
	"form",
	".application-form",
	".apply-button-container",
	".eeo-statement",
	".eeo-section",
	".legal-disclosure",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".gdpr-notice",
}

// DetectPlatform identifies the job board from a URL's host.
func DetectPlatform(rawURL string) Platform {
	if p := lookup(rawURL); p != nil {
		return p.platform
	}
	return PlatformUnknown
}

func lookup(rawURL string) *platformProfile {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	host := strings.ToLower(parsed.Hostname())
	for i := range platforms {
		for _, h := range platforms[i].hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return &platforms[i]
			}
		}
	}
	return nil
}

// PlatformContentSelectors returns the content selectors for p, most specific first.
func PlatformContentSelectors(p Platform) []string {
	for _, prof := range platforms {
		if prof.platform == p {
			return append([]string(nil), prof.content...)
		}
	}
	return JobPostingSelectors()
}

// PlatformNoiseSelectors returns the common noise selectors plus those for p.
func PlatformNoiseSelectors(p Platform) []string {
	out := append([]string(nil), commonNoise...)
	for _, prof := range platforms {
		if prof.platform == p {
			out = append(out, prof.noise...)
		}
	}
	return out
}
