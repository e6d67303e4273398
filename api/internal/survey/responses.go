package survey

import "strings"

// DefaultResponseCap keeps the rendered log inside one Slack section block.
const DefaultResponseCap = 2900

// Elision ends a rendered log that hit its cap.
const Elision = "…(이하 생략)"

// Response is one answered question exactly as submitted.
type Response struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func (r Response) line() string {
	return "[" + r.Label + "] " + r.Value + "\n"
}

// Responses is the append-only log of answered questions in input order.
type Responses struct {
	items []Response
	limit int
}

func (rs *Responses) add(label, value string) {
	rs.items = append(rs.items, Response{Label: label, Value: value})
}

func (rs Responses) Items() []Response {
	out := make([]Response, len(rs.items))
	copy(out, rs.items)
	return out
}

func (rs Responses) Len() int { return len(rs.items) }

// String renders the log within the cap the record was built with.
func (rs Responses) String() string {
	n := rs.limit
	if n <= 0 {
		n = DefaultResponseCap
	}
	return rs.Render(n)
}

// Render writes one "[label] value" line per response. If the full text would
// exceed maxBytes, only whole lines are kept and Elision is appended; the
// result never exceeds maxBytes.
func (rs Responses) Render(maxBytes int) string {
	total := 0
	for _, it := range rs.items {
		total += len(it.line())
	}
	var b strings.Builder
	if total <= maxBytes {
		b.Grow(total)
		for _, it := range rs.items {
			b.WriteString(it.line())
		}
		return b.String()
	}
	if len(Elision) > maxBytes {
		return ""
	}
	budget := maxBytes - len(Elision)
	for _, it := range rs.items {
		l := it.line()
		if b.Len()+len(l) > budget {
			break
		}
		b.WriteString(l)
	}
	b.WriteString(Elision)
	return b.String()
}
