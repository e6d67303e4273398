package survey

import (
	"strings"

	"survey-relay/api/internal/util"
)

type assignment struct {
	attr    Attr
	value   string
	derived bool
}

// builder accumulates classifier output; build folds it into a Record.
type builder struct {
	assignments []assignment
	responses   Responses
	unmatched   []string
}

func (b *builder) add(f RawField) {
	raw, ok := ExtractValue(f)
	if !ok {
		return
	}
	b.responses.add(strings.TrimSpace(f.Label), raw)

	label := util.NormalizeLabel(f.Label)
	r, ok := classify(label)
	if !ok {
		b.unmatched = append(b.unmatched, label)
		return
	}
	value := r.apply(clean(raw))
	if value == "" {
		return
	}
	b.assignments = append(b.assignments, assignment{attr: r.attr, value: value})
	if r.derive != nil {
		attr, v := r.derive(value)
		b.assignments = append(b.assignments, assignment{attr: attr, value: v, derived: true})
	}
}

// build applies explicit assignments in order, so a later field overwrites an
// earlier one for the same attribute. Derived values fill gaps afterwards.
func (b *builder) build() *Record {
	values := make(map[Attr]string, len(b.assignments))
	for _, a := range b.assignments {
		if !a.derived {
			values[a.attr] = a.value
		}
	}
	for _, a := range b.assignments {
		if _, ok := values[a.attr]; a.derived && !ok {
			values[a.attr] = a.value
		}
	}
	return &Record{values: values, responses: b.responses, unmatched: b.unmatched}
}

type Option func(*options)

type options struct {
	responseCap int
}

// WithResponseCap sets the byte budget of the rendered response log.
func WithResponseCap(n int) Option {
	return func(o *options) { o.responseCap = n }
}

// ParseFields classifies every answered field into a Record.
func ParseFields(fields []RawField, opts ...Option) *Record {
	o := options{responseCap: DefaultResponseCap}
	for _, fn := range opts {
		fn(&o)
	}
	var b builder
	b.responses.limit = o.responseCap
	for _, f := range fields {
		b.add(f)
	}
	rec := b.build()
	rec.SurveyType = TypeGeneral
	return rec
}

// Parse classifies a whole submission and tags it with its survey type.
func Parse(p Payload, opts ...Option) *Record {
	rec := ParseFields(p.Data.Fields, opts...)
	rec.SurveyType = SurveyType(p.Data.FormName)
	rec.FormName = p.Data.FormName
	rec.FormID = p.Data.FormID
	rec.ResponseID = p.Data.ResponseID
	return rec
}
