// Package segment splits raw message text into typed, non-overlapping spans
// for rendering: plain narration, fenced code blocks, and bare URLs.
package segment

import "regexp"

// Kind identifies the type of a segment.
type Kind int

const (
	KindPlain Kind = iota
	KindCode
	KindLink
)

// Segment is one typed span of a message. Code segments carry the fence
// language tag; Link segments carry the URL in Text.
type Segment struct {
	Kind     Kind
	Text     string
	Language string
}

var (
	codeFenceRe = regexp.MustCompile("(?s)```(\\w+)?\\n(.*?)```")
	urlRe       = regexp.MustCompile(`https?://[^\s]+`)
)

// Render decomposes text into an ordered segment list. Fenced code regions
// are extracted first, left to right; the remaining plain spans are then
// rescanned for URLs. Calling Render twice on the same input yields the same
// result; it keeps no state between calls.
func Render(text string) []Segment {
	if text == "" {
		return nil
	}

	var segs []Segment
	last := 0
	for _, m := range codeFenceRe.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			segs = append(segs, splitLinks(text[last:m[0]])...)
		}
		lang := "text"
		if m[2] >= 0 && m[3] > m[2] {
			lang = text[m[2]:m[3]]
		}
		segs = append(segs, Segment{Kind: KindCode, Text: text[m[4]:m[5]], Language: lang})
		last = m[1]
	}
	if last < len(text) {
		segs = append(segs, splitLinks(text[last:])...)
	}
	return segs
}

// splitLinks splits a plain span into alternating Plain/Link segments.
func splitLinks(text string) []Segment {
	var segs []Segment
	last := 0
	for _, m := range urlRe.FindAllStringIndex(text, -1) {
		if m[0] > last {
			segs = append(segs, Segment{Kind: KindPlain, Text: text[last:m[0]]})
		}
		segs = append(segs, Segment{Kind: KindLink, Text: text[m[0]:m[1]]})
		last = m[1]
	}
	if last < len(text) {
		segs = append(segs, Segment{Kind: KindPlain, Text: text[last:]})
	}
	return segs
}

// Links returns every URL in text, in order of occurrence.
func Links(text string) []string {
	var urls []string
	for _, s := range Render(text) {
		if s.Kind == KindLink {
			urls = append(urls, s.Text)
		}
	}
	return urls
}
