package chart

import (
	"fmt"
	"strings"

	"survey-relay/api/internal/llm/types"
	"survey-relay/api/internal/survey"
)

type labeled struct {
	attr  survey.Attr
	label string
}

func labeledParts(rec *survey.Record, fields ...labeled) []string {
	var parts []string
	for _, f := range fields {
		if v, ok := positive(rec, f.attr); ok {
			parts = append(parts, f.label+" "+v)
		}
	}
	return parts
}

// YouthSections render only for minors.
var YouthSections = []Section{
	{Title: "알레르기", Format: Allergy},
	{Title: "주의력", Format: Attention},
	{Title: "야뇨", Format: Bedwetting},
	{Title: "성장발달", Format: Development},
	{Title: "생활습관", Format: Lifestyle},
}

func Allergy(rec *survey.Record) string {
	return orNone(labeledParts(rec,
		labeled{survey.Rhinitis, "비염"},
		labeled{survey.Atopy, "아토피"},
		labeled{survey.Allergy, "알레르기"},
		labeled{survey.Asthma, "천식"},
	), ", ")
}

func Attention(rec *survey.Record) string {
	return orNone(labeledParts(rec,
		labeled{survey.Concentration, "집중력"},
		labeled{survey.Hyperactivity, "산만"},
	), ", ")
}

func Bedwetting(rec *survey.Record) string {
	if v, ok := positive(rec, survey.Bedwetting); ok {
		return "(+) " + v
	}
	return none
}

func Development(rec *survey.Record) string {
	return orNone(labeledParts(rec,
		labeled{survey.GrowthPlate, "성장판"},
		labeled{survey.PrecociousPuberty, "성조숙"},
		labeled{survey.SecondarySex, "2차 성징"},
		labeled{survey.Menarche, "초경"},
	), ", ")
}

func Lifestyle(rec *survey.Record) string {
	return orNone(labeledParts(rec,
		labeled{survey.ScreenTime, "스마트폰"},
		labeled{survey.Exercise, "운동"},
	), ", ")
}

// hasGrowthData reports whether the growth line belongs in the chart.
func hasGrowthData(rec *survey.Record) bool {
	return rec.Has(survey.Grade) || rec.Has(survey.FatherHeight) ||
		rec.Has(survey.MotherHeight) || rec.Has(survey.GrowthInterest)
}

// MidParentalHeight is the sex-adjusted average of the parents' heights. It
// returns 0 when either height or the sex is unknown.
func MidParentalHeight(rec *survey.Record) float64 {
	father, mother := rec.Number(survey.FatherHeight), rec.Number(survey.MotherHeight)
	if father <= 0 || mother <= 0 {
		return 0
	}
	switch sexCode(rec.Get(survey.Gender)) {
	case "M":
		return (father + mother + 13) / 2
	case "F":
		return (father + mother - 13) / 2
	}
	return 0
}

// Growth renders parent heights with the genetic and AI-predicted final height.
func Growth(rec *survey.Record, g *types.GrowthAnalysis) string {
	parts := []string{
		"부 " + withUnit(or(rec.Get(survey.FatherHeight), blankName), "cm"),
		"모 " + withUnit(or(rec.Get(survey.MotherHeight), blankName), "cm"),
	}
	if mph := MidParentalHeight(rec); mph > 0 {
		parts = append(parts, fmt.Sprintf("유전 예상키 %.1fcm", mph))
	}
	if g != nil && !g.PredictedHeight.Empty() {
		parts = append(parts, "AI 예상키 "+withUnit(g.PredictedHeight.String(), "cm"))
	}
	if v := rec.Get(survey.GrowthInterest); v != "" {
		parts = append(parts, "관심: "+v)
	}
	line := strings.Join(parts, " / ")
	if g != nil && !g.GrowthPotential.Empty() {
		line += "\n  성장 잠재력: " + g.GrowthPotential.String()
	}
	return line
}
