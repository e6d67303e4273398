package notify

import (
	"fmt"
	"strings"
	"time"

	"survey-relay/api/internal/chart"
	"survey-relay/api/internal/llm/types"
	"survey-relay/api/internal/survey"
)

func or(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// Timestamp formats t in Korean locale style, e.g. "2026. 3. 5. 오후 2:07:09".
func Timestamp(t time.Time) string {
	t = t.In(chart.KST)
	ampm, h := "오전", t.Hour()
	if h >= 12 {
		ampm = "오후"
	}
	if h%12 == 0 {
		h = 12
	} else {
		h %= 12
	}
	return fmt.Sprintf("%d. %d. %d. %s %d:%02d:%02d",
		t.Year(), int(t.Month()), t.Day(), ampm, h, t.Minute(), t.Second())
}

func surveyLabel(rec *survey.Record) string { return or(rec.SurveyType, survey.TypeGeneral) }

// Clinician is the full message for the clinical channel. The chart and the
// submitted answers follow the summary as fenced chunks.
func Clinician(rec *survey.Record, a types.Analysis, chartText string, now time.Time) Message {
	ep := a.EightPrinciples
	pattern := joinNonEmpty(" / ", a.PatternDiagnosis.Primary.String(), a.PatternDiagnosis.Secondary.String())

	blocks := []Block{
		header(fmt.Sprintf("📋 새 환자 설문 접수 [%s]", surveyLabel(rec))),
		fields(
			"*환자명:*\n"+or(rec.Get(survey.Name), "미입력"),
			fmt.Sprintf("*성별/나이:*\n%s / %s세", or(rec.Get(survey.Gender), "-"), or(rec.Get(survey.Age), "-")),
			"*추정 체질:*\n"+or(a.Constitution.Type.String(), "분석 중"),
			"*신뢰도:*\n"+or(a.Constitution.Confidence.String(), "-"),
		),
		divider(),
		section("*🎯 주호소*\n```" + or(rec.Get(survey.MainSymptom1), "미입력") + "```"),
		section(fmt.Sprintf("*⚖️ 팔강변증*\n%s/%s/%s/%s",
			or(ep.YinYang.String(), "-"), or(ep.ExteriorInterior.String(), "-"),
			or(ep.ColdHeat.String(), "-"), or(ep.DeficiencyExcess.String(), "-"))),
		section("*🧭 변증*\n" + or(pattern, "-")),
		section("*🏥 예상 질환*\n" + or(strings.Join(a.ExpectedConditions.All(), ", "), "분석 필요")),
		section("*💊 추천 처방 후보*\n" + or(a.RecommendedPrescriptions.Join(", "), "진료 후 결정")),
		divider(),
		section("*📝 체질 분석 근거*\n" + or(a.Constitution.Rationale.String(), "상세 분석 필요")),
		divider(),
		section("*📄 차트 (복사용)*"),
	}
	blocks = append(blocks, codeBlocks(chartText)...)

	if raw := rec.Responses().String(); raw != "" {
		blocks = append(blocks, divider(), section("*🗂 설문 원문*"))
		blocks = append(blocks, codeBlocks(raw)...)
	}
	if a.ParseError && strings.TrimSpace(a.RawAnalysis) != "" {
		blocks = append(blocks, divider(), section("*⚠️ AI 원문 응답 (구조화 실패)*"))
		blocks = append(blocks, codeBlocks(a.RawAnalysis)...)
	}

	if len(blocks) > maxBlocks-1 {
		blocks = blocks[:maxBlocks-1]
	}
	blocks = append(blocks, contextLine(fmt.Sprintf("⏰ %s | AI 분석 완료", Timestamp(now))))

	return Message{
		Text:   fmt.Sprintf("새 환자 설문: %s - %s", or(rec.Get(survey.Name), "미입력"), or(rec.Get(survey.MainSymptom1), "증상 미입력")),
		Blocks: blocks,
	}
}

// Staff is the short reception notice.
func Staff(rec *survey.Record, a types.Analysis, now time.Time) Message {
	lines := []string{
		fmt.Sprintf("📋 새 설문 접수 [%s]", surveyLabel(rec)),
		fmt.Sprintf("환자: %s (%s / %s세)", or(rec.Get(survey.Name), "미입력"), or(rec.Get(survey.Gender), "-"), or(rec.Get(survey.Age), "-")),
		"주호소: " + or(rec.Get(survey.MainSymptom1), "미입력"),
		"추정 체질: " + or(a.Constitution.Type.String(), "분석 중"),
		"⏰ " + Timestamp(now),
	}
	text := strings.Join(lines, "\n")
	return Message{Text: text, Blocks: []Block{section(text)}}
}

// Failure reports a processing error. It carries no blocks.
func Failure(err error) Message {
	return Message{Text: "⚠️ 설문 분석 오류: " + err.Error()}
}
