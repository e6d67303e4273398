package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Text is a string field that also accepts numbers, booleans, lists and
// objects, since model output does not always follow the requested schema.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	s, err := coerce(b)
	if err != nil {
		return err
	}
	*t = Text(s)
	return nil
}

func (t Text) String() string { return strings.TrimSpace(string(t)) }

func (t Text) Empty() bool { return t.String() == "" }

// List is a string list that also accepts a single string or scalar.
type List []string

func (l *List) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		out := make(List, 0, len(raw))
		for _, r := range raw {
			s, err := coerce(r)
			if err != nil {
				return err
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		*l = out
		return nil
	}
	s, err := coerce(b)
	if err != nil {
		return err
	}
	if s = strings.TrimSpace(s); s != "" {
		*l = List{s}
	} else {
		*l = nil
	}
	return nil
}

func (l List) Join(sep string) string { return strings.Join(l, sep) }

func coerce(b []byte) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return "", nil
	}
	switch b[0] {
	case '"':
		var s string
		err := json.Unmarshal(b, &s)
		return s, err
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(b, &raw); err != nil {
			return "", err
		}
		parts := make([]string, 0, len(raw))
		for _, r := range raw {
			s, err := coerce(r)
			if err != nil {
				return "", err
			}
			if s = strings.TrimSpace(s); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", "), nil
	case '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, b); err != nil {
			return "", err
		}
		return buf.String(), nil
	case 't', 'f':
		v, err := strconv.ParseBool(string(b))
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(v), nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	}
}
