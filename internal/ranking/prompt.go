package ranking

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/fadilmartias/ai-recruiter/internal/util"
)

//go:embed prompts/rank_candidates.tmpl
var rankPromptRaw string

var rankPromptTemplate = template.Must(template.New("rank_candidates").
	Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
	Parse(rankPromptRaw))

var (
	ErrEmptyJobDescription = errors.New("job description is required")
	ErrNoResumes           = errors.New("at least one resume is required")
)

// BuildPrompt renders the single ranking prompt. Each résumé is listed with
// the email extracted from it so the model can echo it back verbatim instead
// of inventing one.
func BuildPrompt(jobDescription string, resumes []util.Resume) (string, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return "", ErrEmptyJobDescription
	}
	if len(resumes) == 0 {
		return "", ErrNoResumes
	}

	var buf bytes.Buffer
	err := rankPromptTemplate.Execute(&buf, struct {
		JobDescription string
		Candidates     []util.Resume
	}{
		JobDescription: strings.TrimSpace(jobDescription),
		Candidates:     resumes,
	})
	if err != nil {
		return "", fmt.Errorf("render ranking prompt: %w", err)
	}
	return buf.String(), nil
}
