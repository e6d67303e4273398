package notify

import (
	"strings"
	"unicode/utf8"
)

// Message is a Slack webhook payload. Text is the notification fallback and
// the whole message for plain-text channels.
type Message struct {
	Text   string  `json:"text"`
	Blocks []Block `json:"blocks,omitempty"`
}

type Block struct {
	Type     string       `json:"type"`
	Text     *TextObject  `json:"text,omitempty"`
	Fields   []TextObject `json:"fields,omitempty"`
	Elements []TextObject `json:"elements,omitempty"`
}

type TextObject struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// Slack rejects section text over 3000 characters and messages over 50 blocks.
const (
	ChunkSize = 2900
	maxBlocks = 50
)

func header(text string) Block {
	return Block{Type: "header", Text: &TextObject{Type: "plain_text", Text: text, Emoji: true}}
}

func section(text string) Block {
	return Block{Type: "section", Text: &TextObject{Type: "mrkdwn", Text: text}}
}

func fields(texts ...string) Block {
	b := Block{Type: "section"}
	for _, t := range texts {
		b.Fields = append(b.Fields, TextObject{Type: "mrkdwn", Text: t})
	}
	return b
}

func divider() Block { return Block{Type: "divider"} }

func contextLine(text string) Block {
	return Block{Type: "context", Elements: []TextObject{{Type: "mrkdwn", Text: text}}}
}

// codeBlocks fences each chunk of text as its own section.
func codeBlocks(text string) []Block {
	var out []Block
	for _, c := range Chunks(text, ChunkSize-6) {
		out = append(out, section("```"+c+"```"))
	}
	return out
}

// Chunks splits text into pieces of at most limit characters, breaking on line
// boundaries where possible. Lines longer than limit are cut at rune boundaries.
func Chunks(text string, limit int) []string {
	text = strings.TrimRight(text, "\n")
	if text == "" || limit <= 0 {
		return nil
	}
	var (
		out []string
		cur strings.Builder
		n   int
	)
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
			n = 0
		}
	}
	for _, line := range strings.Split(text, "\n") {
		for utf8.RuneCountInString(line) > limit {
			flush()
			cut := runePrefix(line, limit)
			out = append(out, cut)
			line = line[len(cut):]
		}
		ln := utf8.RuneCountInString(line)
		if n > 0 && n+1+ln > limit {
			flush()
		}
		if n > 0 {
			cur.WriteByte('\n')
			n++
		}
		cur.WriteString(line)
		n += ln
	}
	flush()
	return out
}

func runePrefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
