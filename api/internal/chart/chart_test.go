package chart

import (
	"strings"
	"testing"
	"time"

	"survey-relay/api/internal/llm/types"
	"survey-relay/api/internal/survey"
)

var fixedDay = time.Date(2026, 3, 5, 1, 0, 0, 0, time.UTC)

func rec(kv ...string) *survey.Record {
	m := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return survey.NewRecord(m)
}

func TestBMI(t *testing.T) {
	cases := []struct {
		height, weight, want string
	}{
		{"160", "60", "23.4"},
		{"160cm", "60kg", "23.4"},
		{"0", "60", "-"},
		{"", "60", "-"},
		{"키 모름", "60", "-"},
		{"170", "", "-"},
	}
	for _, tc := range cases {
		if got := BMI(rec("height", tc.height, "weight", tc.weight)); got != tc.want {
			t.Errorf("height %q weight %q: expected %s, got %s", tc.height, tc.weight, tc.want, got)
		}
	}
}

func TestAnthropometry(t *testing.T) {
	if got := Anthropometry(rec("height", "172.5", "weight", "70")); got != "172.5cm/70kg BMI 23.5" {
		t.Errorf("unexpected line %q", got)
	}
	if got := Anthropometry(rec()); got != "___cm/___kg BMI -" {
		t.Errorf("unexpected blank line %q", got)
	}
}

func TestHeader(t *testing.T) {
	cases := []struct {
		r    *survey.Record
		want string
	}{
		{rec("name", "홍길동", "gender", "남성", "age", "35", "occupation", "회사원"), "홍길동/M/35세/회사원"},
		{rec("name", "김영희", "gender", "여성"), "김영희/F/__세/___"},
		{rec(), "___/_/__세/___"},
	}
	for _, tc := range cases {
		if got := Header(tc.r); got != tc.want {
			t.Errorf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestSplitComplaint(t *testing.T) {
	cases := []struct {
		in   string
		want Complaint
	}{
		{"두통 3개월 전부터 지속됨", Complaint{"두통", "3개월", "전부터 지속됨"}},
		{"요통, 2 년 전 교통사고 후 심해짐", Complaint{"요통", "2년", "전 교통사고 후 심해짐"}},
		{"불면 1주일째", Complaint{"불면", "1주일", "째"}},
		{"소화불량 하루 3번 더부룩함", Complaint{"소화불량 하루", "", "3번 더부룩함"}},
		{"어깨 결림", Complaint{Name: "어깨 결림"}},
		{"", Complaint{}},
	}
	for _, tc := range cases {
		if got := SplitComplaint(tc.in); got != tc.want {
			t.Errorf("%q: expected %+v, got %+v", tc.in, tc.want, got)
		}
	}
}

func TestSections_EmptyRecordRendersPlaceholders(t *testing.T) {
	empty := rec()
	for _, s := range append(append([]Section{}, Sections...), YouthSections...) {
		if got := s.Format(empty); got != "(-)" {
			t.Errorf("[%s]: expected (-), got %q", s.Title, got)
		}
	}
}

func TestSections_NegativeAnswers(t *testing.T) {
	r := rec(
		"headache", "없다",
		"dizziness", "없음",
		"thirst", "해당 없음",
		"chestTightness", "없다",
		"gas", "해당 없음",
		"edema", "거의 안 붓는다",
		"diarrhea", "거의 안 한다",
	)
	for _, fn := range []func(*survey.Record) string{Headache, Dizziness, Thirst, ChestFullness, Flatulence, Edema, Bowel} {
		if got := fn(r); got != "(-)" {
			t.Errorf("expected (-), got %q", got)
		}
	}
}

func TestSections_Positive(t *testing.T) {
	cases := []struct {
		name string
		fn   func(*survey.Record) string
		r    *survey.Record
		want string
	}{
		{"headache", Headache, rec("headache", "자주 있다", "headacheLocation", "측두부"), "자주 있다, 부위: 측두부"},
		{"thirst", Thirst, rec("thirst", "갈증, 구강 건조", "waterIntake", "2", "waterTemperature", "찬물"), "갈증, 구강 건조 / 물 2L/일 (찬물)"},
		{"bitter mouth", BitterMouth, rec("tasteInMouth", "쓰다"), "(+) 구고 있음"},
		{"throat via digestion", ThroatObstruction, rec("digestionSymptoms", "트림, 목에 걸려 있는 느낌"), "(+) 목 이물감"},
		{"belching", Belching, rec("digestionSymptoms", "트림, 속쓰림"), "(+) 잦음"},
		{"appetite", Appetite, rec("appetite", "좋다", "eatingAmount", "보통", "mealsPerDay", "3"), "좋다, 식사량 보통, 3끼/일"},
		{"digestion", Digestion, rec("digestion", "약하다", "digestionSymptoms", "더부룩함", "nausea", "가끔"), "약하다 / 더부룩함 / 오심 가끔"},
		{"bowel", Bowel, rec("bowelFrequency", "2일에 1번", "constipation", "자주", "diarrhea", "가끔"), "2일에 1번, 변비(+), 설사 가끔"},
		{"urination", Urination, rec("urinationDay", "6", "urinationNight", "0"), "주간 6회"},
		{"nocturia", Urination, rec("urinationNight", "2"), "야간뇨 2회"},
		{"menstruation male", Menstruation, rec("gender", "남성", "menstrualCycle", "28일"), "N/A"},
		{"menopause", Menstruation, rec("gender", "여성", "menopause", "폐경"), "폐경"},
		{"menstruation", Menstruation, rec("gender", "여성", "menstrualCycle", "28일", "menstrualPain", "심하다"), "주기 28일, 통증 심하다"},
		{"sweating", Sweating, rec("sweatAmount", "많다", "sweatAreas", "머리, 손"), "많다 / 부위: 머리, 손"},
		{"sleep", Sleep, rec("sleepHours", "6", "sleepQuality", "얕다", "dreams", "자주"), "6시간, 얕다, 꿈: 자주"},
		{"edema", Edema, rec("edema", "자주 붓는다", "edemaAreas", "다리", "edemaTime", "저녁"), "자주 붓는다, 부위: 다리, 시간: 저녁"},
		{"cold heat", ColdHeat, rec("coldVsHeat", "추위를 더 탄다", "coldSensitivity", "많이 탄다", "coldAreas", "손, 발", "heatSensitivity", "더위를 안 탄다"), "추위를 더 탄다 / 한: 많이 탄다 (손, 발)"},
		{"mood", Mood, rec("stress", "많다", "depression", "없다"), "스트레스 많다"},
		{"allergy", Allergy, rec("rhinitis", "있다", "asthma", "없음"), "비염 있다"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(tc.r); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestSection_PrefersChartSummary(t *testing.T) {
	r := rec("headache", "자주 있다")
	cs := types.ChartSummary{Headache: "(+) 측두부 박동성"}
	if got := Sections[0].Render(r, cs); got != "(+) 측두부 박동성" {
		t.Errorf("expected AI summary, got %q", got)
	}
	if got := Sections[0].Render(r, types.ChartSummary{Headache: "  "}); got != "자주 있다" {
		t.Errorf("expected fallback to answers, got %q", got)
	}
}

func TestMidParentalHeight(t *testing.T) {
	if got := MidParentalHeight(rec("gender", "남성", "fatherHeight", "178", "motherHeight", "162")); got != 176.5 {
		t.Errorf("expected 176.5, got %v", got)
	}
	if got := MidParentalHeight(rec("gender", "여성", "fatherHeight", "178cm", "motherHeight", "162cm")); got != 163.5 {
		t.Errorf("expected 163.5, got %v", got)
	}
	if got := MidParentalHeight(rec("fatherHeight", "178", "motherHeight", "162")); got != 0 {
		t.Errorf("expected 0 without sex, got %v", got)
	}
}

func TestFormatAt_NoLeakedNulls(t *testing.T) {
	analyses := []types.Analysis{
		{},
		types.Unparsed("모델 응답 원문"),
		{ExpectedConditions: types.ExpectedConditions{Korean: types.List{"비기허"}}},
	}
	for _, a := range analyses {
		for _, r := range []*survey.Record{rec(), rec("grade", "중1", "gender", "여성")} {
			out := FormatAt(r, a, fixedDay)
			for _, bad := range []string{"undefined", "null", "NaN", "<nil>", "%!"} {
				if strings.Contains(out, bad) {
					t.Errorf("chart contains %q:\n%s", bad, out)
				}
			}
		}
	}
}

func TestFormatAt_MinimalSubmission(t *testing.T) {
	r := survey.Parse(survey.Payload{Data: survey.PayloadData{
		FormName: "성인 초진 설문",
		Fields: []survey.RawField{
			{Label: "성함", Value: "홍길동"},
			{Label: "성별", Value: "남성"},
			{Label: "나이", Value: "35"},
			{Label: "치료받고 싶은 증상 (1순위)", Value: "두통 3개월 전부터 지속됨"},
		},
	}})
	a := types.Analysis{
		Constitution:     types.Constitution{Type: "소음인", Confidence: "중간", Rationale: "추위를 탐"},
		PatternDiagnosis: types.PatternDiagnosis{Primary: "간양상항", Secondary: "비기허"},
	}
	out := FormatAt(r, a, fixedDay)

	for _, want := range []string{
		"📋 환자 차트 (AI 사전분석) - 2026. 3. 5.",
		"홍길동/M/35세/___",
		"___cm/___kg BMI -",
		"체질: 소음인 (신뢰도: 중간) / 변증: 간양상항 / 비기허",
		"#1. 두통\no/s) 3개월\nmode) 전부터 지속됨",
		"[두통] (-)",
		"[한열] (-)",
		"[정서] (-)",
		"[처방] 진료 후 결정",
		"추위를 탐",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected chart to contain %q:\n%s", want, out)
		}
	}
	for _, s := range Sections {
		if !strings.Contains(out, "["+s.Title+"] ") {
			t.Errorf("missing section %s", s.Title)
		}
	}
	if strings.Contains(out, "#2.") || strings.Contains(out, "[소아청소년]") {
		t.Errorf("unexpected optional block:\n%s", out)
	}
}

func TestFormatAt_YouthBlocks(t *testing.T) {
	r := rec("gender", "남성", "grade", "중2", "fatherHeight", "178", "motherHeight", "162", "bedwetting", "가끔")
	a := types.Analysis{GrowthAnalysis: &types.GrowthAnalysis{PredictedHeight: "175"}}
	out := FormatAt(r, a, fixedDay)
	for _, want := range []string{
		"[성장] 부 178cm / 모 162cm / 유전 예상키 176.5cm / AI 예상키 175cm",
		"[소아청소년]",
		"[야뇨] (+) 가끔",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestFormatSimple(t *testing.T) {
	out := FormatSimple(rec("name", "이순신", "mainSymptom1", "요통"), types.Analysis{RecommendedPrescriptions: types.List{"독활기생탕"}})
	if !strings.HasPrefix(out, "이순신/_/__세/___") {
		t.Errorf("unexpected header:\n%s", out)
	}
	if !strings.Contains(out, "#1. 요통") || !strings.Contains(out, "[처방] 독활기생탕") {
		t.Errorf("unexpected body:\n%s", out)
	}
}

func TestFormatAt_ParseErrorPlaceholders(t *testing.T) {
	out := FormatAt(rec("name", "홍길동"), types.Unparsed("not json"), fixedDay)
	for _, want := range []string{"◆ 팔강변증: 분석 필요", "◆ 예상질환: 분석 필요", "◆ 치법: 분석 필요", "[처방] 진료 후 결정"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestNotes_ExerciseForAdultsOnly(t *testing.T) {
	adult := Notes(rec("age", "42", "exercise", "주 3회 걷기"), types.Analysis{})
	if !strings.Contains(adult, "운동 주 3회 걷기") {
		t.Errorf("expected exercise in adult notes, got %q", adult)
	}
	minor := Notes(rec("age", "14", "exercise", "주 3회 축구"), types.Analysis{})
	if strings.Contains(minor, "운동") {
		t.Errorf("expected exercise left to the youth block, got %q", minor)
	}
	if got := Notes(rec("age", "42", "exercise", "없음"), types.Analysis{}); strings.Contains(got, "운동") {
		t.Errorf("expected negative answer skipped, got %q", got)
	}
}
