package chart

import (
	"regexp"
	"strconv"
	"strings"

	"survey-relay/api/internal/survey"
)

const (
	none      = "(-)"
	pending   = "추후 확인"
	dash      = "-"
	blankName = "___"
	blankAge  = "__"

	analysisNeeded = "분석 필요"
)

// negatives are answers that mean the symptom is absent.
var negatives = map[string]bool{
	"없다": true, "없음": true, "없어요": true, "없습니다": true,
	"해당 없음": true, "해당없음": true, "해당 사항 없음": true,
	"아니오": true, "아니요": true, "아님": true,
	"거의 없다": true, "전혀 없다": true, "전혀 없음": true,
	"거의 안 한다": true, "거의 안 붓는다": true,
	"추위를 안 탄다": true, "더위를 안 탄다": true,
	"(-)": true, "-": true, "no": true, "none": true, "n/a": true,
}

// negative reports whether v is blank or made only of negative answers.
func negative(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" || negatives[strings.ToLower(v)] {
		return true
	}
	for _, item := range strings.Split(v, ",") {
		if !negatives[strings.ToLower(strings.TrimSpace(item))] {
			return false
		}
	}
	return true
}

// positive returns the value of a when it reports a present symptom.
func positive(rec *survey.Record, a survey.Attr) (string, bool) {
	v := rec.Get(a)
	if negative(v) {
		return "", false
	}
	return v, true
}

// items lists the non-negative entries of a multi-select answer.
func items(rec *survey.Record, a survey.Attr) []string {
	var out []string
	for _, it := range rec.List(a) {
		if !negative(it) {
			out = append(out, it)
		}
	}
	return out
}

func anyContains(list []string, subs ...string) bool {
	for _, it := range list {
		for _, s := range subs {
			if strings.Contains(it, s) {
				return true
			}
		}
	}
	return false
}

func or(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

func orNone(parts []string, sep string) string {
	if len(parts) == 0 {
		return none
	}
	return strings.Join(parts, sep)
}

var plainNumber = regexp.MustCompile(`^\d+(\.\d+)?$`)

// withUnit appends unit to bare numbers only; free-text answers such as
// "1~2L" keep their own wording.
func withUnit(v, unit string) string {
	if plainNumber.MatchString(strings.TrimSpace(v)) {
		return strings.TrimSpace(v) + unit
	}
	return v
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// sexCode maps the gender answer to M, F or _.
func sexCode(gender string) string {
	g := strings.ToLower(strings.TrimSpace(gender))
	switch {
	case g == "":
		return "_"
	case strings.HasPrefix(g, "여"), strings.HasPrefix(g, "female"), g == "f":
		return "F"
	case strings.HasPrefix(g, "남"), strings.HasPrefix(g, "male"), g == "m":
		return "M"
	}
	return "_"
}
