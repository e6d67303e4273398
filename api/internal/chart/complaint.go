package chart

import (
	"regexp"
	"strings"
)

// Complaint is a chief complaint split into symptom, onset and mode.
type Complaint struct {
	Name  string
	Onset string
	Mode  string
}

var (
	duration   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(년|개월|주일|주|일|달)`)
	firstDigit = regexp.MustCompile(`\d`)
)

const trimSet = " \t\n,.:;-/()"

// SplitComplaint splits free text on its first duration token: the text
// before it is the symptom, the token is the onset, the rest is the mode.
// Without a duration token the onset is empty and everything after the
// symptom name is the mode.
func SplitComplaint(text string) Complaint {
	text = strings.TrimSpace(text)
	if text == "" {
		return Complaint{}
	}
	if loc := duration.FindStringSubmatchIndex(text); loc != nil {
		c := Complaint{
			Name:  strings.Trim(text[:loc[0]], trimSet),
			Onset: text[loc[2]:loc[3]] + text[loc[4]:loc[5]],
			Mode:  strings.Trim(text[loc[1]:], trimSet),
		}
		if c.Name == "" {
			c.Name = text
		}
		return c
	}
	if loc := firstDigit.FindStringIndex(text); loc != nil && loc[0] > 0 {
		return Complaint{
			Name: strings.Trim(text[:loc[0]], trimSet),
			Mode: strings.Trim(text[loc[0]:], trimSet),
		}
	}
	return Complaint{Name: text}
}
