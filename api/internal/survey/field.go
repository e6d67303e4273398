package survey

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"survey-relay/api/internal/util"
)

// Payload is the inbound form-submission webhook body.
type Payload struct {
	EventID string      `json:"eventId,omitempty"`
	Data    PayloadData `json:"data"`
}

type PayloadData struct {
	FormName   string     `json:"formName"`
	FormID     string     `json:"formId"`
	ResponseID string     `json:"responseId"`
	CreatedAt  string     `json:"createdAt,omitempty"`
	Fields     []RawField `json:"fields"`
}

// RawField is one answered (or skipped) question. Only one of Value, Answer
// and Text is normally populated.
type RawField struct {
	Key     string   `json:"key,omitempty"`
	Label   string   `json:"label"`
	Type    string   `json:"type,omitempty"`
	Value   any      `json:"value,omitempty"`
	Answer  any      `json:"answer,omitempty"`
	Text    any      `json:"text,omitempty"`
	Options []Choice `json:"options,omitempty"`
}

type Choice struct {
	ID   any    `json:"id"`
	Text string `json:"text,omitempty"`
	Name string `json:"name,omitempty"`
}

func (o Choice) display() string {
	if s := strings.TrimSpace(o.Text); s != "" {
		return s
	}
	if s := strings.TrimSpace(o.Name); s != "" {
		return s
	}
	return stringify(o.ID)
}

// ExtractValue resolves the human-readable answer of a field. The boolean is
// false when the field was not answered.
func ExtractValue(f RawField) (string, bool) {
	if len(f.Options) > 0 && !isEmpty(f.Value) {
		if list, ok := f.Value.([]any); ok {
			out := make([]string, 0, len(list))
			for _, id := range list {
				if opt, ok := findOption(f.Options, id); ok {
					out = append(out, opt.display())
				} else {
					out = append(out, stringify(id))
				}
			}
			return joinNonEmpty(out)
		}
		if opt, ok := findOption(f.Options, f.Value); ok {
			return nonEmpty(opt.display())
		}
	}
	if !isEmpty(f.Value) {
		return render(f.Value)
	}
	if !isEmpty(f.Answer) {
		return render(f.Answer)
	}
	if f.Text != nil {
		return render(f.Text)
	}
	return "", false
}

func findOption(opts []Choice, id any) (Choice, bool) {
	key := stringify(id)
	if key == "" {
		return Choice{}, false
	}
	for _, o := range opts {
		if stringify(o.ID) == key {
			return o, true
		}
	}
	return Choice{}, false
}

func render(v any) (string, bool) {
	if list, ok := v.([]any); ok {
		out := make([]string, 0, len(list))
		for _, el := range list {
			out = append(out, stringify(el))
		}
		return joinNonEmpty(out)
	}
	return nonEmpty(stringify(v))
}

func joinNonEmpty(parts []string) (string, bool) {
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return nonEmpty(strings.Join(kept, ", "))
}

func nonEmpty(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []any:
		return len(x) == 0
	}
	return false
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}

// clean is the value form stored on the record.
func clean(v string) string {
	return util.NormalizeText(v)
}
