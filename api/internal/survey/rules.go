package survey

import "strings"

type matcher func(label string) bool

// has matches labels containing every token.
func has(tokens ...string) matcher {
	return func(label string) bool {
		for _, t := range tokens {
			if !strings.Contains(label, t) {
				return false
			}
		}
		return true
	}
}

// oneOf matches labels containing at least one token.
func oneOf(tokens ...string) matcher {
	return func(label string) bool {
		for _, t := range tokens {
			if strings.Contains(label, t) {
				return true
			}
		}
		return false
	}
}

func and(ms ...matcher) matcher {
	return func(label string) bool {
		for _, m := range ms {
			if !m(label) {
				return false
			}
		}
		return true
	}
}

func not(m matcher) matcher {
	return func(label string) bool { return !m(label) }
}

func or(ms ...matcher) matcher {
	return func(label string) bool {
		for _, m := range ms {
			if m(label) {
				return true
			}
		}
		return false
	}
}

type rule struct {
	attr      Attr
	match     matcher
	transform func(string) string
	// derive yields a default for another attribute, used only when that
	// attribute is not answered explicitly.
	derive func(string) (Attr, string)
}

func (r rule) apply(value string) string {
	if r.transform == nil {
		return value
	}
	return r.transform(value)
}

func trimAge(v string) string {
	v = strings.TrimSpace(v)
	for _, suffix := range []string{"세", "살"} {
		v = strings.TrimSpace(strings.TrimSuffix(v, suffix))
	}
	return v
}

func gradeOccupation(v string) (Attr, string) {
	if strings.HasSuffix(v, "학생") {
		return Occupation, v
	}
	return Occupation, v + "학생"
}

var (
	alcohol  = oneOf("술", "음주")
	sleep    = oneOf("수면", "잠")
	swelling = oneOf("붓", "부종")
)

// rules are tried in order; the first match wins. Specific rules sit above the
// generic ones they would otherwise lose to ("아버지 키" before "키").
var rules = []rule{
	// chief complaints and free text
	{attr: MainSymptom2, match: oneOf("2순위")},
	{attr: MainSymptom3, match: oneOf("3순위")},
	{attr: MainSymptom1, match: oneOf("1순위", "치료받고 싶은 증상")},
	{attr: WorseningPattern, match: oneOf("악화")},
	{attr: ConditionFactors, match: oneOf("컨디션")},
	{attr: OtherSymptoms, match: and(oneOf("기타", "그 외"), oneOf("증상", "불편"))},

	// children and adolescents
	{attr: Grade, match: oneOf("학년"), derive: gradeOccupation},
	{attr: FatherHeight, match: and(oneOf("아버지", "아빠", "부친"), has("키"))},
	{attr: MotherHeight, match: and(oneOf("어머니", "엄마", "모친"), has("키"))},
	{attr: GrowthPlate, match: oneOf("성장판")},
	{attr: PrecociousPuberty, match: oneOf("성조숙")},
	{attr: SecondarySex, match: oneOf("2차 성징", "이차 성징", "2차성징", "이차성징")},
	{attr: GrowthInterest, match: and(has("성장"), oneOf("관심", "고민", "걱정"))},
	{attr: Menarche, match: oneOf("초경")},
	{attr: Concentration, match: oneOf("집중")},
	{attr: Hyperactivity, match: oneOf("산만", "과잉행동", "ADHD")},
	{attr: Bedwetting, match: oneOf("야뇨", "이불에 소변", "밤에 실수")},
	{attr: Rhinitis, match: oneOf("비염", "코막힘", "콧물")},
	{attr: Atopy, match: oneOf("아토피")},
	{attr: Allergy, match: oneOf("알레르기", "알러지")},
	{attr: Asthma, match: oneOf("천식")},
	{attr: ScreenTime, match: oneOf("스마트폰", "휴대폰", "핸드폰", "게임", "영상 시청", "미디어")},
	{attr: Exercise, match: and(has("운동"), not(has("땀")))},

	// identity
	{attr: Name, match: oneOf("성함", "이름")},
	{attr: Gender, match: oneOf("성별")},
	{attr: Age, match: and(oneOf("나이", "연령", "몇 살"), not(oneOf("초경", "폐경", "생리"))), transform: trimAge},
	{attr: Occupation, match: oneOf("직업")},
	{attr: Height, match: and(has("키"), not(oneOf("트림", "일으키", "키우")))},
	{attr: Weight, match: oneOf("체중", "몸무게")},

	// history
	{attr: CurrentMedication, match: and(has("복용"), oneOf("약", "건강식품"))},
	{attr: FamilyHistory, match: and(has("가족"), oneOf("병", "질환", "력"))},
	{attr: MedicalHistory, match: oneOf("병", "수술", "질환")},

	// cold and heat
	{attr: ColdSensitivity, match: has("추위", "어느 정도")},
	{attr: ColdAreas, match: and(has("부위"), oneOf("차갑", "차가", "시린"))},
	{attr: ColdVsHeat, match: has("추위", "더위", "중")},
	{attr: HeatSensitivity, match: has("더위", "어느 정도")},
	{attr: HeatFlushSituation, match: or(has("열", "달아오르"), oneOf("상열감"))},
	{attr: ColdSymptoms, match: has("추위", "증상")},
	{attr: HeatSymptoms, match: and(oneOf("더위", "열"), has("증상"))},
	{attr: LowerAbdomen, match: oneOf("아랫배")},

	// sweating
	{attr: SweatAmount, match: has("땀", "어느 정도")},
	{attr: SweatAreas, match: has("땀", "부위")},
	{attr: SweatEffect, match: and(has("땀"), oneOf("운동", "목욕", "사우나", "흘린 후", "흘리고 나면"))},

	// hydration and stamina
	{attr: WaterIntake, match: and(has("물"), oneOf("섭취량", "얼마나"))},
	{attr: WaterTemperature, match: and(has("물"), oneOf("온도", "찬물", "따뜻한"))},
	{attr: Thirst, match: oneOf("갈증", "구강 건조", "입이 마")},
	{attr: Stamina, match: oneOf("체력")},

	// diet
	{attr: TastePreference, match: and(has("맛"), oneOf("좋아하", "선호"))},
	{attr: AlcoholFrequency, match: and(alcohol, oneOf("자주", "빈도"))},
	{attr: AlcoholAmount, match: and(alcohol, oneOf("얼마나", "주량", "양"))},
	{attr: AlcoholSymptoms, match: and(alcohol, oneOf("증상", "마신 후", "다음 날"))},
	{attr: SmokingAmount, match: and(oneOf("담배", "흡연"), oneOf("하루", "개비", "갑", "얼마나"))},
	{attr: Smoking, match: oneOf("담배", "흡연")},

	// appetite and digestion
	{attr: MealsPerDay, match: and(has("식사"), oneOf("몇 끼", "끼니"))},
	{attr: Appetite, match: oneOf("식욕")},
	{attr: EatingAmount, match: oneOf("먹는 양", "식사량")},
	{attr: Digestion, match: and(has("소화"), oneOf("기능", "상태", "잘 되"))},
	{attr: DigestionSymptoms, match: or(and(has("소화"), oneOf("증상", "불편")), oneOf("속쓰림", "더부룩"))},
	{attr: TasteInMouth, match: oneOf("입맛", "입안의 맛", "입에서")},
	{attr: Nausea, match: oneOf("울렁", "메슥", "구역")},

	// bowel
	{attr: BowelFrequency, match: and(has("대변"), oneOf("며칠", "몇번", "몇 번", "횟수"))},
	{attr: StoolConsistency, match: and(has("대변"), oneOf("상태", "모양", "형태"))},
	{attr: Constipation, match: oneOf("변비")},
	{attr: Gas, match: oneOf("가스", "방귀")},
	{attr: Diarrhea, match: oneOf("설사")},

	// urination and edema
	{attr: UrinationDay, match: and(has("소변"), oneOf("낮", "주간"))},
	{attr: UrinationNight, match: and(has("소변"), oneOf("밤", "야간", "자다가"))},
	{attr: UrinationSymptoms, match: and(has("소변"), oneOf("증상", "불편"))},
	{attr: EdemaAreas, match: and(swelling, has("부위"))},
	{attr: EdemaTime, match: and(swelling, oneOf("시간", "언제", "때"))},
	{attr: Edema, match: swelling},

	// sleep
	{attr: SleepHours, match: and(sleep, has("시간"))},
	{attr: SleepQuality, match: and(sleep, oneOf("질", "깊이", "푹"))},
	{attr: SleepProblems, match: and(sleep, oneOf("문제", "불편", "어려움"))},
	{attr: Dreams, match: oneOf("꿈")},

	// head and senses
	{attr: HeadacheLocation, match: has("두통", "부위")},
	{attr: HeadachePattern, match: and(has("두통"), oneOf("양상", "어떻게", "느낌"))},
	{attr: Headache, match: oneOf("두통", "머리가 아프")},
	{attr: Dizziness, match: oneOf("어지러", "현훈")},
	{attr: EyeSymptoms, match: and(has("눈"), oneOf("피로", "충혈", "건조", "침침", "증상"))},
	{attr: Tinnitus, match: oneOf("이명", "귀울림", "귀에서")},

	// mood
	{attr: Stress, match: oneOf("스트레스")},
	{attr: Anxiety, match: oneOf("불안", "초조")},
	{attr: Depression, match: oneOf("우울", "의욕")},

	// chest and throat
	{attr: ChestTightness, match: and(has("가슴"), oneOf("답답", "막힌"))},
	{attr: Palpitation, match: oneOf("두근", "심계")},
	{attr: ThroatDiscomfort, match: or(and(has("목"), oneOf("걸린", "이물감")), oneOf("매핵"))},

	// women's health
	{attr: Menstruation, match: and(has("생리"), oneOf("하고 계신", "하시나요", "여부"))},
	{attr: MenstrualCycle, match: has("생리", "주기")},
	{attr: MenstrualPain, match: oneOf("생리통")},
	{attr: MenstrualAmount, match: and(has("생리"), oneOf("량", "양"))},
	{attr: MenstrualSymptoms, match: and(has("생리"), oneOf("증상", "전후"))},
	{attr: Pregnancy, match: oneOf("임신", "출산")},
	{attr: Menopause, match: oneOf("폐경", "갱년기")},
}

// Classify returns the canonical attribute for a normalized label.
func Classify(label string) (Attr, bool) {
	r, ok := classify(label)
	return r.attr, ok
}

func classify(label string) (rule, bool) {
	for _, r := range rules {
		if r.match(label) {
			return r, true
		}
	}
	return rule{}, false
}
