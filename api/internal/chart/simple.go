package chart

import (
	"survey-relay/api/internal/llm/types"
	"survey-relay/api/internal/survey"
)

// FormatSimple is the compact copy-paste chart for the EMR: no rules, no AI
// narrative, one line per finding.
func FormatSimple(rec *survey.Record, a types.Analysis) string {
	w := &writer{}
	w.line(Header(rec))
	w.line(Anthropometry(rec))
	w.line("BP ___/___ mmHg  PR ___회/분")
	w.line("형색성정: " + formColor(a.FormColorNatureEmotion))
	w.blank()

	w.line("[주소]")
	for i, attr := range []survey.Attr{survey.MainSymptom1, survey.MainSymptom2, survey.MainSymptom3} {
		text := rec.Get(attr)
		if i > 0 && text == "" {
			continue
		}
		c := SplitComplaint(text)
		w.linef("#%d. %s", i+1, or(c.Name, pending))
		w.linef("o/s) %s", or(c.Onset, pending))
		w.linef("mode) %s", or(c.Mode, pending))
	}
	w.linef("po med) %s", or(rec.Get(survey.CurrentMedication), "없음"))
	w.linef("p/h) %s", or(rec.Get(survey.MedicalHistory), "없음"))
	w.linef("f/h) %s", or(rec.Get(survey.FamilyHistory), pending))
	w.blank()

	w.line("[부증]")
	for _, s := range Sections {
		w.linef("[%s] %s", s.Title, s.Render(rec, a.ChartSummary))
	}
	w.line("[복진]")
	w.line("[첨언] " + a.AdditionalObservations.Join(" / "))
	w.line("[처방] " + a.RecommendedPrescriptions.Join(", "))
	return w.String()
}
