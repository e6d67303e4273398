package chart

import (
	"fmt"
	"strings"
	"time"

	"survey-relay/api/internal/llm/types"
	"survey-relay/api/internal/survey"
)

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

// KST is the clinic's timezone for chart dates.
var KST = time.FixedZone("KST", 9*60*60)

// Format renders the clinician chart dated today.
func Format(rec *survey.Record, a types.Analysis) string {
	return FormatAt(rec, a, time.Now())
}

// FormatAt renders the chart with an explicit date. The output depends only
// on its arguments.
func FormatAt(rec *survey.Record, a types.Analysis, now time.Time) string {
	w := &writer{}
	d := now.In(KST)

	w.line(rule)
	w.linef("📋 환자 차트 (AI 사전분석) - %d. %d. %d.", d.Year(), int(d.Month()), d.Day())
	if rec.SurveyType != "" {
		w.linef("설문: %s", rec.SurveyType)
	}
	w.line(rule)
	w.blank()

	w.line(Header(rec))
	w.line(Anthropometry(rec))
	w.line("BP ___/___ mmHg  PR ___회/분")
	w.line(ConstitutionLine(a))
	if hasGrowthData(rec) {
		w.line("[성장] " + Growth(rec, a.GrowthAnalysis))
	}
	w.blank()

	w.line("━━━ 체질 및 변증 (AI 분석) ━━━")
	if a.ParseError {
		w.line("◆ AI 응답을 구조화하지 못했습니다. 원문은 메시지 하단을 확인하세요.")
		for _, label := range []string{"팔강변증", "장부", "병리", "예상질환", "치법"} {
			w.linef("◆ %s: %s", label, analysisNeeded)
		}
	} else {
		w.linef("◆ 팔강변증: %s", eightPrinciples(a.EightPrinciples))
		w.linef("◆ 장부: %s", organs(a.OrganAnalysis))
		w.linef("◆ 병리: %s", or(a.PatternDiagnosis.Pathology.String(), dash))
		w.linef("◆ 예상질환: %s", conditions(a.ExpectedConditions))
		w.linef("◆ 치법: %s", or(a.TreatmentStrategy.String(), dash))
	}
	w.linef("◆ 형색성정: %s", formColor(a.FormColorNatureEmotion))
	w.blank()

	w.line(rule)
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
		w.blank()
	}
	w.linef("po med) %s", or(rec.Get(survey.CurrentMedication), "없음"))
	w.linef("p/h) %s", or(rec.Get(survey.MedicalHistory), "없음"))
	w.linef("f/h) %s", or(rec.Get(survey.FamilyHistory), pending))
	w.blank()

	w.line(rule)
	w.line("[부증]")
	w.line(rule)
	for _, s := range Sections {
		w.linef("[%s] %s", s.Title, s.Render(rec, a.ChartSummary))
	}
	if rec.IsMinor() {
		w.blank()
		w.line("[소아청소년]")
		for _, s := range YouthSections {
			w.linef("[%s] %s", s.Title, s.Render(rec, a.ChartSummary))
		}
	}
	w.blank()

	w.line(rule)
	w.line("[복진] " + pending)
	w.line("[메모] " + Notes(rec, a))
	w.line("[첨언] " + orNone(a.AdditionalObservations, " / "))
	w.blank()

	w.line(rule)
	w.line("[처방] " + or(a.RecommendedPrescriptions.Join(", "), "진료 후 결정"))
	w.line("[침구] " + or(a.Acupuncture.String(), dash))
	w.line("[생활지도] " + or(a.LifestyleGuidance.String(), dash))
	w.line("[식이] " + or(a.DietaryAdvice.String(), dash))
	w.line("[주의] " + or(a.Precautions.Join(" / "), dash))
	w.line("[예후] " + or(a.Prognosis.String(), dash))
	w.line(rule)
	w.blank()
	w.line("※ AI 분석 근거:")
	w.line(or(a.Constitution.Rationale.String(), "상세 분석 필요"))
	w.line(rule)
	return w.String()
}

// Header is "name/sex/age세/occupation" with blanks for missing values.
func Header(rec *survey.Record) string {
	return fmt.Sprintf("%s/%s/%s세/%s",
		or(rec.Get(survey.Name), blankName),
		sexCode(rec.Get(survey.Gender)),
		or(rec.Get(survey.Age), blankAge),
		or(rec.Get(survey.Occupation), blankName),
	)
}

// BMI is weight over height in metres squared to one decimal, or "-" when
// either measurement is missing.
func BMI(rec *survey.Record) string {
	h, w := rec.Number(survey.Height), rec.Number(survey.Weight)
	if h <= 0 || w <= 0 {
		return dash
	}
	m := h / 100
	return fmt.Sprintf("%.1f", w/(m*m))
}

func Anthropometry(rec *survey.Record) string {
	h, w := blankName, blankName
	if v := rec.Number(survey.Height); v > 0 {
		h = formatNumber(v)
	}
	if v := rec.Number(survey.Weight); v > 0 {
		w = formatNumber(v)
	}
	return fmt.Sprintf("%scm/%skg BMI %s", h, w, BMI(rec))
}

// ConstitutionLine joins the constitution and pattern diagnosis.
func ConstitutionLine(a types.Analysis) string {
	c := "체질: " + or(a.Constitution.Type.String(), "미분석")
	if !a.Constitution.Confidence.Empty() {
		c += " (신뢰도: " + a.Constitution.Confidence.String() + ")"
	}
	parts := []string{c}
	var pattern []string
	for _, p := range []types.Text{a.PatternDiagnosis.Primary, a.PatternDiagnosis.Secondary} {
		if !p.Empty() {
			pattern = append(pattern, p.String())
		}
	}
	parts = append(parts, "변증: "+or(strings.Join(pattern, " / "), dash))
	return strings.Join(parts, " / ")
}

// Notes gathers habits and free-text remarks into one line.
func Notes(rec *survey.Record, a types.Analysis) string {
	var parts []string
	if drink := joinPositive(rec, ", ", survey.AlcoholFrequency, survey.AlcoholAmount); drink != "" {
		parts = append(parts, "음주 "+drink)
	}
	if smoke := joinPositive(rec, ", ", survey.Smoking, survey.SmokingAmount); smoke != "" {
		parts = append(parts, "흡연 "+smoke)
	}
	// minors get exercise in the youth block
	if ex, ok := positive(rec, survey.Exercise); ok && !rec.IsMinor() {
		parts = append(parts, "운동 "+ex)
	}
	for _, n := range []labeled{
		{survey.WorseningPattern, "악화: "},
		{survey.ConditionFactors, "컨디션: "},
		{survey.OtherSymptoms, "기타: "},
	} {
		if v, ok := positive(rec, n.attr); ok {
			parts = append(parts, n.label+v)
		}
	}
	if !a.PatternDiagnosis.Rationale.Empty() {
		parts = append(parts, "변증 근거: "+a.PatternDiagnosis.Rationale.String())
	}
	return orNone(parts, " / ")
}

func joinPositive(rec *survey.Record, sep string, attrs ...survey.Attr) string {
	var parts []string
	for _, a := range attrs {
		if v, ok := positive(rec, a); ok {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}

func eightPrinciples(e types.EightPrinciples) string {
	out := fmt.Sprintf("%s/%s/%s/%s",
		or(e.YinYang.String(), dash),
		or(e.ExteriorInterior.String(), dash),
		or(e.ColdHeat.String(), dash),
		or(e.DeficiencyExcess.String(), dash),
	)
	if !e.Summary.Empty() {
		out += " (" + e.Summary.String() + ")"
	}
	return out
}

func organs(o types.OrganAnalysis) string {
	out := or(o.Pattern.String(), dash)
	if len(o.Affected) > 0 {
		out += " [" + o.Affected.Join(", ") + "]"
	}
	return out
}

func conditions(e types.ExpectedConditions) string {
	if !e.IsSplit() {
		return or(e.Flat.Join(", "), dash)
	}
	var parts []string
	if len(e.Korean) > 0 {
		parts = append(parts, "한방 "+e.Korean.Join(", "))
	}
	if len(e.Western) > 0 {
		parts = append(parts, "양방 "+e.Western.Join(", "))
	}
	return strings.Join(parts, " | ")
}

func formColor(f types.FormColorNatureEmotion) string {
	var parts []string
	for _, t := range []types.Text{f.Form, f.Color, f.Nature, f.Emotion} {
		if !t.Empty() {
			parts = append(parts, t.String())
		}
	}
	return or(strings.Join(parts, " / "), pending)
}

type writer struct{ b strings.Builder }

func (w *writer) line(s string) {
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

func (w *writer) linef(format string, args ...any) { w.line(fmt.Sprintf(format, args...)) }

func (w *writer) blank() { w.b.WriteByte('\n') }

func (w *writer) String() string { return strings.TrimRight(w.b.String(), "\n") }
