package engine

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-ats-checker/internal/types"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Messages for rejected inputs.
const (
	MsgResumeTooShort = "Resume text is too short or empty"
	MsgJobTooShort    = "Job description is too short or empty"
)

// ValidateRequest checks the minimum lengths of both documents after trimming.
// req is not modified; the analysis scores the text as submitted.
// The first violation is returned as an *InputError.
func ValidateRequest(req *types.AnalyzeRequest) error {
	trimmed := types.AnalyzeRequest{
		ResumeText:     strings.TrimSpace(req.ResumeText),
		JobDescription: strings.TrimSpace(req.JobDescription),
	}

	err := validate.Struct(&trimmed)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &InputError{Message: err.Error()}
	}

	switch verrs[0].Field() {
	case "ResumeText":
		return &InputError{Field: "resume_text", Message: MsgResumeTooShort}
	case "JobDescription":
		return &InputError{Field: "job_description", Message: MsgJobTooShort}
	}
	return &InputError{Field: verrs[0].Field(), Message: verrs[0].Error()}
}
