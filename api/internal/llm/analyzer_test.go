package llm

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"survey-relay/api/internal/survey"
)

type fakeEngine struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeEngine) Name() string     { return "fake" }
func (f *fakeEngine) GetModel() string { return "fake-1" }
func (f *fakeEngine) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func TestRenderPrompt_DefaultsAndMinorBlock(t *testing.T) {
	tmpl, err := LoadPrompt("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	adult := survey.NewRecord(map[string]string{"name": "홍길동", "age": "45"})
	out, err := RenderPrompt(tmpl, adult)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "- 이름: 홍길동") {
		t.Error("expected name in prompt")
	}
	if !strings.Contains(out, "- 성별: 미입력") {
		t.Error("expected placeholder for missing gender")
	}
	if strings.Contains(out, "소아청소년") || strings.Contains(out, "growthAnalysis") {
		t.Error("adult prompt must not carry the adolescent block")
	}
	if strings.Contains(out, "<no value>") {
		t.Error("missing keys leaked into prompt")
	}

	teen := survey.NewRecord(map[string]string{"grade": "중2", "fatherHeight": "178"})
	out, err = RenderPrompt(tmpl, teen)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "아버지 178") || !strings.Contains(out, "growthAnalysis") {
		t.Error("expected adolescent block for a student")
	}
}

func TestLoadPrompt_DirectoryOverride(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, PromptName), []byte("환자: {{.name}}"), 0o644); err != nil {
		t.Fatal(err)
	}
	tmpl, err := LoadPrompt(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, _ := RenderPrompt(tmpl, survey.NewRecord(map[string]string{"name": "김"}))
	if out != "환자: 김" {
		t.Errorf("expected override template, got %q", out)
	}

	// a directory without the file falls back to the built-in prompt
	if _, err := LoadPrompt(t.TempDir()); err != nil {
		t.Errorf("expected fallback, got %v", err)
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	tmpl, _ := LoadPrompt("")
	eng := &fakeEngine{reply: "```json\n{\"constitution\":{\"type\":\"소양인\"}}\n```"}
	a := NewAnalyzer(eng, tmpl, zerolog.Nop())

	res, err := a.Analyze(context.Background(), survey.NewRecord(map[string]string{"mainSymptom1": "두통"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Constitution.Type != "소양인" {
		t.Errorf("expected 소양인, got %q", res.Constitution.Type)
	}
	if !strings.Contains(eng.prompt, "1. 두통") {
		t.Error("expected chief complaint in prompt")
	}
}

func TestAnalyzer_UnparseableReplyIsNotAnError(t *testing.T) {
	tmpl, _ := LoadPrompt("")
	a := NewAnalyzer(&fakeEngine{reply: "분석 불가"}, tmpl, zerolog.Nop())
	res, err := a.Analyze(context.Background(), survey.NewRecord(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.ParseError || res.RawAnalysis != "분석 불가" {
		t.Errorf("expected parse error sentinel, got %+v", res)
	}
}

func TestAnalyzer_EngineErrorIsFatal(t *testing.T) {
	tmpl, _ := LoadPrompt("")
	a := NewAnalyzer(&fakeEngine{err: ErrEmptyResponse}, tmpl, zerolog.Nop())
	_, err := a.Analyze(context.Background(), survey.NewRecord(nil))
	if !errors.Is(err, ErrEmptyResponse) {
		t.Errorf("expected wrapped ErrEmptyResponse, got %v", err)
	}
}

func TestEngines_GetEngine(t *testing.T) {
	engs := &Engines{Gemini: &fakeEngine{}}
	if e, err := engs.GetEngine(""); err != nil || e == nil {
		t.Errorf("expected default gemini engine, got %v", err)
	}
	if _, err := engs.GetEngine("gpt"); err == nil {
		t.Error("expected error for unconfigured openai engine")
	}
	if _, err := engs.GetEngine("claude"); err == nil {
		t.Error("expected error for unknown engine")
	}
}
