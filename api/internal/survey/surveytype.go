package survey

import "strings"

const (
	TypeGeneral   = "일반"
	TypeAdult     = "성인"
	TypeTeen      = "청소년"
	TypeDiet      = "다이어트"
	TypeInsurance = "자동차보험"
	TypeChild     = "소아"
)

var surveyTypes = []struct {
	tokens []string
	kind   string
}{
	{[]string{"성인", "adult"}, TypeAdult},
	{[]string{"청소년", "teen"}, TypeTeen},
	{[]string{"다이어트", "diet"}, TypeDiet},
	{[]string{"자보", "자동차", "보험"}, TypeInsurance},
	{[]string{"소아", "아동", "child"}, TypeChild},
}

// SurveyType tags a form by its name. An empty name is general; a name without
// a known token is returned as-is.
func SurveyType(formName string) string {
	name := strings.TrimSpace(formName)
	if name == "" {
		return TypeGeneral
	}
	lower := strings.ToLower(name)
	for _, st := range surveyTypes {
		for _, tok := range st.tokens {
			if strings.Contains(lower, tok) {
				return st.kind
			}
		}
	}
	return name
}
