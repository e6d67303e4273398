package types

import (
	"bytes"
	"encoding/json"
)

// Analysis is the structured clinical pre-analysis returned by the model.
// Every field is optional.
type Analysis struct {
	Constitution             Constitution           `json:"constitution"`
	PatternDiagnosis         PatternDiagnosis       `json:"patternDiagnosis"`
	EightPrinciples          EightPrinciples        `json:"eightPrinciples"`
	OrganAnalysis            OrganAnalysis          `json:"organAnalysis"`
	ExpectedConditions       ExpectedConditions     `json:"expectedConditions"`
	FormColorNatureEmotion   FormColorNatureEmotion `json:"formColorNatureEmotion"`
	TreatmentStrategy        Text                   `json:"treatmentStrategy"`
	RecommendedPrescriptions List                   `json:"recommendedPrescriptions"`
	Acupuncture              Text                   `json:"acupuncture"`
	LifestyleGuidance        Text                   `json:"lifestyleGuidance"`
	DietaryAdvice            Text                   `json:"dietaryAdvice"`
	Precautions              List                   `json:"precautions"`
	Prognosis                Text                   `json:"prognosis"`
	GrowthAnalysis           *GrowthAnalysis        `json:"growthAnalysis,omitempty"`
	ChartSummary             ChartSummary           `json:"chartSummary"`
	AdditionalObservations   List                   `json:"additionalObservations"`

	RawAnalysis string `json:"rawAnalysis,omitempty"`
	ParseError  bool   `json:"parseError,omitempty"`
}

type Constitution struct {
	Type       Text `json:"type"`
	Confidence Text `json:"confidence"`
	Rationale  Text `json:"rationale"`
}

// UnmarshalJSON accepts a bare string as the constitution type.
func (c *Constitution) UnmarshalJSON(b []byte) error {
	type plain Constitution
	return lenient(b, (*plain)(c), func(s string) { *c = Constitution{Type: Text(s)} })
}

type PatternDiagnosis struct {
	Primary   Text `json:"primary"`
	Secondary Text `json:"secondary"`
	Rationale Text `json:"rationale"`
	Pathology Text `json:"pathology"`
}

// UnmarshalJSON accepts a bare string as the primary pattern.
func (p *PatternDiagnosis) UnmarshalJSON(b []byte) error {
	type plain PatternDiagnosis
	return lenient(b, (*plain)(p), func(s string) { *p = PatternDiagnosis{Primary: Text(s)} })
}

type EightPrinciples struct {
	YinYang          Text `json:"yinYang"`
	ExteriorInterior Text `json:"exteriorInterior"`
	ColdHeat         Text `json:"coldHeat"`
	DeficiencyExcess Text `json:"deficiencyExcess"`
	Summary          Text `json:"summary"`
}

// UnmarshalJSON accepts a bare string as the summary.
func (e *EightPrinciples) UnmarshalJSON(b []byte) error {
	type plain EightPrinciples
	return lenient(b, (*plain)(e), func(s string) { *e = EightPrinciples{Summary: Text(s)} })
}

type OrganAnalysis struct {
	Affected    List `json:"affected"`
	Pattern     Text `json:"pattern"`
	Description Text `json:"description"`
}

// UnmarshalJSON accepts a bare string as the pattern.
func (o *OrganAnalysis) UnmarshalJSON(b []byte) error {
	type plain OrganAnalysis
	return lenient(b, (*plain)(o), func(s string) { *o = OrganAnalysis{Pattern: Text(s)} })
}

type FormColorNatureEmotion struct {
	Form    Text `json:"form"`
	Color   Text `json:"color"`
	Nature  Text `json:"nature"`
	Emotion Text `json:"emotion"`
}

// UnmarshalJSON accepts a bare string as the form observation.
func (f *FormColorNatureEmotion) UnmarshalJSON(b []byte) error {
	type plain FormColorNatureEmotion
	return lenient(b, (*plain)(f), func(s string) { *f = FormColorNatureEmotion{Form: Text(s)} })
}

type GrowthAnalysis struct {
	PredictedHeight Text `json:"predictedHeight"`
	GrowthPotential Text `json:"growthPotential"`
	Comment         Text `json:"comment"`
}

// UnmarshalJSON accepts a bare string as the comment.
func (g *GrowthAnalysis) UnmarshalJSON(b []byte) error {
	type plain GrowthAnalysis
	return lenient(b, (*plain)(g), func(s string) { *g = GrowthAnalysis{Comment: Text(s)} })
}

// ExpectedConditions arrives either as a flat list or split into Korean and
// Western medicine diagnoses.
type ExpectedConditions struct {
	Flat    List
	Korean  List
	Western List
}

func (e *ExpectedConditions) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var split struct {
			Korean  List `json:"korean"`
			Western List `json:"western"`
		}
		_ = json.Unmarshal(b, &split)
		*e = ExpectedConditions{Korean: split.Korean, Western: split.Western}
		return nil
	}
	var flat List
	if err := json.Unmarshal(b, &flat); err != nil {
		return err
	}
	*e = ExpectedConditions{Flat: flat}
	return nil
}

func (e ExpectedConditions) MarshalJSON() ([]byte, error) {
	if e.IsSplit() {
		return json.Marshal(map[string]List{"korean": e.Korean, "western": e.Western})
	}
	if e.Flat == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(e.Flat)
}

func (e ExpectedConditions) IsSplit() bool { return len(e.Korean) > 0 || len(e.Western) > 0 }

// All lists every condition, Korean diagnoses first.
func (e ExpectedConditions) All() []string {
	out := make([]string, 0, len(e.Flat)+len(e.Korean)+len(e.Western))
	out = append(out, e.Flat...)
	out = append(out, e.Korean...)
	return append(out, e.Western...)
}

// ChartSummary holds model-written one-liners for the chart's review of
// systems, keyed like the chart sections.
type ChartSummary struct {
	Headache          Text `json:"headache"`
	Dizziness         Text `json:"dizziness"`
	Thirst            Text `json:"thirst"`
	BitterMouth       Text `json:"bitterMouth"`
	ChestFullness     Text `json:"chestFullness"`
	Irritability      Text `json:"irritability"`
	ThroatObstruction Text `json:"throatObstruction"`
	Appetite          Text `json:"appetite"`
	Digestion         Text `json:"digestion"`
	Bowel             Text `json:"bowel"`
	Urination         Text `json:"urination"`
	Belching          Text `json:"belching"`
	Flatulence        Text `json:"flatulence"`
	Menstruation      Text `json:"menstruation"`
	Sweating          Text `json:"sweating"`
	Sleep             Text `json:"sleep"`
	Edema             Text `json:"edema"`
	ColdHeat          Text `json:"coldHeat"`
	Mood              Text `json:"mood"`
}

// UnmarshalJSON ignores anything but an object; a free-text summary has no
// section to land in.
func (c *ChartSummary) UnmarshalJSON(b []byte) error {
	type plain ChartSummary
	return lenient(b, (*plain)(c), func(string) {})
}

// lenient decodes an object into v and hands a bare string to fromString.
// Other shapes and mistyped members leave v as decoded so far.
func lenient(b []byte, v any, fromString func(string)) error {
	if s, ok := bareString(b); ok {
		fromString(s)
		return nil
	}
	if b = bytes.TrimSpace(b); len(b) == 0 || b[0] != '{' {
		return nil
	}
	_ = json.Unmarshal(b, v)
	return nil
}

func bareString(b []byte) (string, bool) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return "", false
	}
	return s, true
}
