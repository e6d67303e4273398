package chart

import (
	"strings"

	"survey-relay/api/internal/llm/types"
	"survey-relay/api/internal/survey"
)

// Section is one line of the review of systems. The model's chart summary
// takes precedence over the answer-derived text when present.
type Section struct {
	Title   string
	Format  func(*survey.Record) string
	Summary func(types.ChartSummary) types.Text
}

func (s Section) Render(rec *survey.Record, cs types.ChartSummary) string {
	if s.Summary != nil {
		if t := s.Summary(cs); !t.Empty() {
			return t.String()
		}
	}
	return s.Format(rec)
}

var Sections = []Section{
	{"두통", Headache, func(c types.ChartSummary) types.Text { return c.Headache }},
	{"현훈", Dizziness, func(c types.ChartSummary) types.Text { return c.Dizziness }},
	{"구갈", Thirst, func(c types.ChartSummary) types.Text { return c.Thirst }},
	{"구고", BitterMouth, func(c types.ChartSummary) types.Text { return c.BitterMouth }},
	{"흉만", ChestFullness, func(c types.ChartSummary) types.Text { return c.ChestFullness }},
	{"심번", Irritability, func(c types.ChartSummary) types.Text { return c.Irritability }},
	{"매핵", ThroatObstruction, func(c types.ChartSummary) types.Text { return c.ThroatObstruction }},
	{"식욕", Appetite, func(c types.ChartSummary) types.Text { return c.Appetite }},
	{"소화", Digestion, func(c types.ChartSummary) types.Text { return c.Digestion }},
	{"대변", Bowel, func(c types.ChartSummary) types.Text { return c.Bowel }},
	{"소변", Urination, func(c types.ChartSummary) types.Text { return c.Urination }},
	{"트림", Belching, func(c types.ChartSummary) types.Text { return c.Belching }},
	{"방귀", Flatulence, func(c types.ChartSummary) types.Text { return c.Flatulence }},
	{"생리", Menstruation, func(c types.ChartSummary) types.Text { return c.Menstruation }},
	{"한출", Sweating, func(c types.ChartSummary) types.Text { return c.Sweating }},
	{"수면", Sleep, func(c types.ChartSummary) types.Text { return c.Sleep }},
	{"부종", Edema, func(c types.ChartSummary) types.Text { return c.Edema }},
	{"한열", ColdHeat, func(c types.ChartSummary) types.Text { return c.ColdHeat }},
	{"정서", Mood, func(c types.ChartSummary) types.Text { return c.Mood }},
}

func Headache(rec *survey.Record) string {
	v, ok := positive(rec, survey.Headache)
	if !ok {
		return none
	}
	parts := []string{v}
	if loc, ok := positive(rec, survey.HeadacheLocation); ok {
		parts = append(parts, "부위: "+loc)
	}
	if p, ok := positive(rec, survey.HeadachePattern); ok {
		parts = append(parts, "양상: "+p)
	}
	return strings.Join(parts, ", ")
}

func Dizziness(rec *survey.Record) string {
	v, ok := positive(rec, survey.Dizziness)
	if !ok {
		return none
	}
	return v
}

func Thirst(rec *survey.Record) string {
	thirst := items(rec, survey.Thirst)
	if len(thirst) == 0 {
		return none
	}
	out := strings.Join(thirst, ", ")
	if w := rec.Get(survey.WaterIntake); w != "" {
		out += " / 물 " + withUnit(w, "L") + "/일"
	}
	if t := rec.Get(survey.WaterTemperature); t != "" {
		out += " (" + t + ")"
	}
	return out
}

func BitterMouth(rec *survey.Record) string {
	if strings.Contains(rec.Get(survey.TasteInMouth), "쓰") {
		return "(+) 구고 있음"
	}
	return none
}

func ChestFullness(rec *survey.Record) string {
	if v, ok := positive(rec, survey.ChestTightness); ok {
		return "(+) " + v
	}
	return none
}

func Irritability(rec *survey.Record) string {
	if v, ok := positive(rec, survey.Palpitation); ok {
		return "(+) " + v
	}
	return none
}

func ThroatObstruction(rec *survey.Record) string {
	if v, ok := positive(rec, survey.ThroatDiscomfort); ok {
		return "(+) " + v
	}
	if anyContains(items(rec, survey.DigestionSymptoms), "목", "걸려") {
		return "(+) 목 이물감"
	}
	return none
}

func Appetite(rec *survey.Record) string {
	var parts []string
	if v := rec.Get(survey.Appetite); v != "" {
		parts = append(parts, v)
	}
	if v := rec.Get(survey.EatingAmount); v != "" {
		parts = append(parts, "식사량 "+v)
	}
	if v := rec.Get(survey.MealsPerDay); v != "" {
		parts = append(parts, withUnit(v, "끼")+"/일")
	}
	return orNone(parts, ", ")
}

func Digestion(rec *survey.Record) string {
	var parts []string
	if v := rec.Get(survey.Digestion); v != "" {
		parts = append(parts, v)
	}
	if s := items(rec, survey.DigestionSymptoms); len(s) > 0 {
		parts = append(parts, strings.Join(s, ", "))
	}
	if v, ok := positive(rec, survey.Nausea); ok {
		parts = append(parts, "오심 "+v)
	}
	return orNone(parts, " / ")
}

func Bowel(rec *survey.Record) string {
	var parts []string
	if v := rec.Get(survey.BowelFrequency); v != "" {
		parts = append(parts, v)
	}
	if v := rec.Get(survey.StoolConsistency); v != "" {
		parts = append(parts, v)
	}
	if len(items(rec, survey.Constipation)) > 0 {
		parts = append(parts, "변비(+)")
	}
	if v, ok := positive(rec, survey.Diarrhea); ok {
		parts = append(parts, "설사 "+v)
	}
	return orNone(parts, ", ")
}

func Urination(rec *survey.Record) string {
	var parts []string
	if v := rec.Get(survey.UrinationDay); v != "" {
		parts = append(parts, "주간 "+withUnit(v, "회"))
	}
	if v, ok := positive(rec, survey.UrinationNight); ok {
		if !plainNumber.MatchString(v) || rec.Number(survey.UrinationNight) > 0 {
			parts = append(parts, "야간뇨 "+withUnit(v, "회"))
		}
	}
	if s := items(rec, survey.UrinationSymptoms); len(s) > 0 {
		parts = append(parts, strings.Join(s, ", "))
	}
	return orNone(parts, ", ")
}

func Belching(rec *survey.Record) string {
	if anyContains(items(rec, survey.DigestionSymptoms), "트림") {
		return "(+) 잦음"
	}
	return none
}

func Flatulence(rec *survey.Record) string {
	gas := items(rec, survey.Gas)
	if len(gas) == 0 {
		return none
	}
	return "(+) " + strings.Join(gas, ", ")
}

// Menstruation is N/A for male patients and 폐경 after menopause.
func Menstruation(rec *survey.Record) string {
	if sexCode(rec.Get(survey.Gender)) == "M" {
		return "N/A"
	}
	status := rec.Get(survey.Menstruation)
	if strings.Contains(status, "폐경") || strings.Contains(rec.Get(survey.Menopause), "폐경") {
		return "폐경"
	}
	var parts []string
	if v := rec.Get(survey.MenstrualCycle); v != "" {
		parts = append(parts, "주기 "+v)
	}
	if v := rec.Get(survey.MenstrualAmount); v != "" {
		parts = append(parts, "양 "+v)
	}
	if v, ok := positive(rec, survey.MenstrualPain); ok {
		parts = append(parts, "통증 "+v)
	}
	if s := items(rec, survey.MenstrualSymptoms); len(s) > 0 {
		parts = append(parts, strings.Join(s, ", "))
	}
	if len(parts) == 0 && !negative(status) {
		return status
	}
	return orNone(parts, ", ")
}

func Sweating(rec *survey.Record) string {
	var parts []string
	if v, ok := positive(rec, survey.SweatAmount); ok {
		parts = append(parts, v)
	}
	if a := items(rec, survey.SweatAreas); len(a) > 0 {
		parts = append(parts, "부위: "+strings.Join(a, ", "))
	}
	if v, ok := positive(rec, survey.SweatEffect); ok {
		parts = append(parts, "땀 후: "+v)
	}
	return orNone(parts, " / ")
}

func Sleep(rec *survey.Record) string {
	var parts []string
	if v := rec.Get(survey.SleepHours); v != "" {
		parts = append(parts, withUnit(v, "시간"))
	}
	if v := rec.Get(survey.SleepQuality); v != "" {
		parts = append(parts, v)
	}
	if p := items(rec, survey.SleepProblems); len(p) > 0 {
		parts = append(parts, strings.Join(p, ", "))
	}
	if v, ok := positive(rec, survey.Dreams); ok {
		parts = append(parts, "꿈: "+v)
	}
	return orNone(parts, ", ")
}

func Edema(rec *survey.Record) string {
	var parts []string
	if v, ok := positive(rec, survey.Edema); ok {
		parts = append(parts, v)
	}
	if a := items(rec, survey.EdemaAreas); len(a) > 0 {
		parts = append(parts, "부위: "+strings.Join(a, ", "))
	}
	if len(parts) == 0 {
		return none
	}
	if v, ok := positive(rec, survey.EdemaTime); ok {
		parts = append(parts, "시간: "+v)
	}
	return strings.Join(parts, ", ")
}

func ColdHeat(rec *survey.Record) string {
	var parts []string
	if v := rec.Get(survey.ColdVsHeat); v != "" {
		parts = append(parts, v)
	}
	if v, ok := positive(rec, survey.ColdSensitivity); ok {
		cold := "한: " + v
		if a := items(rec, survey.ColdAreas); len(a) > 0 {
			cold += " (" + strings.Join(a, ", ") + ")"
		}
		parts = append(parts, cold)
	}
	if v, ok := positive(rec, survey.HeatSensitivity); ok {
		heat := "열: " + v
		if s := items(rec, survey.HeatSymptoms); len(s) > 0 {
			heat += " (" + strings.Join(s, ", ") + ")"
		}
		parts = append(parts, heat)
	}
	if v, ok := positive(rec, survey.HeatFlushSituation); ok {
		parts = append(parts, "상열: "+v)
	}
	return orNone(parts, " / ")
}

func Mood(rec *survey.Record) string {
	var parts []string
	for _, m := range []struct {
		attr  survey.Attr
		label string
	}{
		{survey.Stress, "스트레스"},
		{survey.Anxiety, "불안"},
		{survey.Depression, "우울"},
	} {
		if v, ok := positive(rec, m.attr); ok {
			parts = append(parts, m.label+" "+v)
		}
	}
	return orNone(parts, ", ")
}
