package llm

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"survey-relay/api/internal/survey"
)

//go:embed prompt/analysis.tmpl
var defaultAnalysisPrompt string

// PromptName is the template file looked up under the prompt directory.
const PromptName = "analysis.tmpl"

// LoadPrompt parses dir/analysis.tmpl when present, otherwise the built-in
// template.
func LoadPrompt(dir string) (*template.Template, error) {
	text := defaultAnalysisPrompt
	if dir = strings.TrimSpace(dir); dir != "" {
		p := filepath.Join(dir, PromptName)
		b, err := os.ReadFile(p)
		switch {
		case err == nil && len(b) > 0:
			text = string(b)
		case err != nil && !os.IsNotExist(err):
			return nil, fmt.Errorf("read prompt %s: %w", p, err)
		}
	}
	t, err := template.New(PromptName).Option("missingkey=zero").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse prompt: %w", err)
	}
	return t, nil
}

// RenderPrompt fills the template with the record's answers.
func RenderPrompt(t *template.Template, rec *survey.Record) (string, error) {
	data := make(map[string]string, rec.Len()+2)
	for _, a := range rec.Attrs() {
		data[string(a)] = rec.Get(a)
	}
	data["surveyType"] = rec.SurveyType
	if rec.IsMinor() {
		data["minor"] = "true"
	}
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return b.String(), nil
}
