package types

import (
	"encoding/json"
	"strings"

	"survey-relay/api/internal/util"
)

// ParseAnalysis recovers an Analysis from free-form model output. It never
// fails: text without a decodable JSON object comes back as RawAnalysis with
// ParseError set.
func ParseAnalysis(text string) Analysis {
	text = strings.TrimSpace(text)
	var a Analysis
	if body := util.StripCodeFences(text); strings.HasPrefix(body, "{") {
		if err := json.Unmarshal([]byte(body), &a); err == nil {
			return a
		}
	}
	obj, ok := util.ExtractJSONObject(text)
	if !ok {
		return Unparsed(text)
	}
	a = Analysis{}
	if err := json.Unmarshal([]byte(obj), &a); err != nil {
		return Unparsed(text)
	}
	return a
}

// Unparsed is the sentinel for output that carried no usable JSON.
func Unparsed(text string) Analysis {
	return Analysis{RawAnalysis: text, ParseError: true}
}
