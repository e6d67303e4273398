package survey

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Attr is a canonical record attribute name.
type Attr string

// Chief complaints and free-text notes.
const (
	MainSymptom1     Attr = "mainSymptom1"
	MainSymptom2     Attr = "mainSymptom2"
	MainSymptom3     Attr = "mainSymptom3"
	WorseningPattern Attr = "worseningPattern"
	ConditionFactors Attr = "conditionFactors"
	OtherSymptoms    Attr = "otherSymptoms"
)

// Identity and anthropometry.
const (
	Name       Attr = "name"
	Gender     Attr = "gender"
	Age        Attr = "age"
	Occupation Attr = "occupation"
	Height     Attr = "height"
	Weight     Attr = "weight"
)

// Children and adolescents.
const (
	Grade             Attr = "grade"
	FatherHeight      Attr = "fatherHeight"
	MotherHeight      Attr = "motherHeight"
	GrowthInterest    Attr = "growthInterest"
	GrowthPlate       Attr = "growthPlate"
	PrecociousPuberty Attr = "precociousPuberty"
	SecondarySex      Attr = "secondarySexCharacteristics"
	Menarche          Attr = "menarche"
	Concentration     Attr = "concentration"
	Hyperactivity     Attr = "hyperactivity"
	Bedwetting        Attr = "bedwetting"
	Rhinitis          Attr = "rhinitis"
	Atopy             Attr = "atopy"
	Allergy           Attr = "allergy"
	Asthma            Attr = "asthma"
	ScreenTime        Attr = "screenTime"
	Exercise          Attr = "exercise"
)

// History.
const (
	CurrentMedication Attr = "currentMedication"
	FamilyHistory     Attr = "familyHistory"
	MedicalHistory    Attr = "medicalHistory"
)

// Cold, heat and sweating.
const (
	ColdSensitivity    Attr = "coldSensitivity"
	ColdAreas          Attr = "coldAreas"
	ColdVsHeat         Attr = "coldVsHeat"
	HeatSensitivity    Attr = "heatSensitivity"
	HeatFlushSituation Attr = "heatFlushSituation"
	ColdSymptoms       Attr = "coldSymptoms"
	HeatSymptoms       Attr = "heatSymptoms"
	LowerAbdomen       Attr = "lowerAbdomen"
	SweatAmount        Attr = "sweatAmount"
	SweatAreas         Attr = "sweatAreas"
	SweatEffect        Attr = "sweatEffect"
)

// Hydration, stamina, diet and digestion.
const (
	WaterIntake       Attr = "waterIntake"
	WaterTemperature  Attr = "waterTemperature"
	Thirst            Attr = "thirst"
	Stamina           Attr = "stamina"
	TastePreference   Attr = "tastePreference"
	AlcoholFrequency  Attr = "alcoholFrequency"
	AlcoholAmount     Attr = "alcoholAmount"
	AlcoholSymptoms   Attr = "alcoholSymptoms"
	SmokingAmount     Attr = "smokingAmount"
	Smoking           Attr = "smoking"
	MealsPerDay       Attr = "mealsPerDay"
	Appetite          Attr = "appetite"
	EatingAmount      Attr = "eatingAmount"
	Digestion         Attr = "digestion"
	DigestionSymptoms Attr = "digestionSymptoms"
	TasteInMouth      Attr = "tasteInMouth"
	Nausea            Attr = "nausea"
)

// Bowel, urination and edema.
const (
	BowelFrequency    Attr = "bowelFrequency"
	StoolConsistency  Attr = "stoolConsistency"
	Constipation      Attr = "constipation"
	Gas               Attr = "gas"
	Diarrhea          Attr = "diarrhea"
	UrinationDay      Attr = "urinationDay"
	UrinationNight    Attr = "urinationNight"
	UrinationSymptoms Attr = "urinationSymptoms"
	EdemaAreas        Attr = "edemaAreas"
	EdemaTime         Attr = "edemaTime"
	Edema             Attr = "edema"
)

// Sleep, head, senses and mood.
const (
	SleepHours       Attr = "sleepHours"
	SleepQuality     Attr = "sleepQuality"
	SleepProblems    Attr = "sleepProblems"
	Dreams           Attr = "dreams"
	HeadacheLocation Attr = "headacheLocation"
	HeadachePattern  Attr = "headachePattern"
	Headache         Attr = "headache"
	Dizziness        Attr = "dizziness"
	EyeSymptoms      Attr = "eyeSymptoms"
	Tinnitus         Attr = "tinnitus"
	Stress           Attr = "stress"
	Anxiety          Attr = "anxiety"
	Depression       Attr = "depression"
	ChestTightness   Attr = "chestTightness"
	Palpitation      Attr = "palpitation"
	ThroatDiscomfort Attr = "throatDiscomfort"
)

// Women's health.
const (
	Menstruation      Attr = "menstruation"
	MenstrualCycle    Attr = "menstrualCycle"
	MenstrualAmount   Attr = "menstrualAmount"
	MenstrualPain     Attr = "menstrualPain"
	MenstrualSymptoms Attr = "menstrualSymptoms"
	Pregnancy         Attr = "pregnancy"
	Menopause         Attr = "menopause"
)

// Record is the canonical patient record built from one submission. It is
// read-only once built.
type Record struct {
	SurveyType string
	FormName   string
	FormID     string
	ResponseID string

	values    map[Attr]string
	responses Responses
	unmatched []string
}

// NewRecord builds a record from already-canonical values, as posted to the
// manual analysis endpoint.
func NewRecord(values map[string]string) *Record {
	r := &Record{values: make(map[Attr]string, len(values))}
	for k, v := range values {
		if v = clean(v); v != "" {
			r.values[Attr(k)] = v
		}
	}
	r.SurveyType = SurveyType(values["surveyType"])
	delete(r.values, "surveyType")
	return r
}

func (r *Record) Get(a Attr) string {
	if r == nil {
		return ""
	}
	return r.values[a]
}

func (r *Record) Has(a Attr) bool { return r.Get(a) != "" }

// List splits a multi-select answer back into its items.
func (r *Record) List(a Attr) []string {
	v := r.Get(a)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Len is the number of populated attributes.
func (r *Record) Len() int { return len(r.values) }

// Attrs returns the populated attribute names in sorted order.
func (r *Record) Attrs() []Attr {
	out := make([]Attr, 0, len(r.values))
	for a := range r.values {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (r *Record) Responses() Responses { return r.responses }

// Unmatched lists the normalized labels no rule claimed.
func (r *Record) Unmatched() []string { return r.unmatched }

var leadingNumber = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)`)

// Number parses the leading number of a value ("160cm" -> 160). It returns 0
// when none is present.
func (r *Record) Number(a Attr) float64 {
	m := leadingNumber.FindStringSubmatch(r.Get(a))
	if m == nil {
		return 0
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return f
}

// IsMinor reports whether the submission is for a child or adolescent.
func (r *Record) IsMinor() bool {
	switch r.SurveyType {
	case TypeTeen, TypeChild:
		return true
	}
	if r.Has(Grade) {
		return true
	}
	age := r.Number(Age)
	return age > 0 && age < 19
}

func (r *Record) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(r.values)+1)
	for k, v := range r.values {
		m[string(k)] = v
	}
	if r.SurveyType != "" {
		m["surveyType"] = r.SurveyType
	}
	return json.Marshal(m)
}
