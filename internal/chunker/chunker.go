package chunker

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Chunk is one slice of a converted document, capped in size, together with
// the trail of markdown headings in effect where the chunk starts.
//
// Pos:      stable, zero-based position of the chunk inside the document.
// Headings: heading texts from outermost to innermost level.
// Text:     chunk content.
type Chunk struct {
	Pos      int
	Headings []string
	Text     string
}

// Split cuts text into chunks of at most maxChars characters (runes),
// breaking preferentially at markdown headings so sections stay together.
// Text that fits yields a single chunk. maxChars <= 0 disables splitting.
func Split(text string, maxChars int) []Chunk {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return []Chunk{{Pos: 0, Text: text}}
	}

	var (
		chunks  []Chunk
		buf     []string
		bufLen  int
		trail   = map[int]string{} // heading level -> text
		started = headingTrail(trail)
	)

	flush := func() {
		if bufLen == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Pos:      len(chunks),
			Headings: started,
			Text:     strings.Join(buf, "\n"),
		})
		buf = buf[:0]
		bufLen = 0
		started = headingTrail(trail)
	}

	for _, line := range strings.Split(text, "\n") {
		if level, heading := parseHeading(line); level > 0 {
			// A heading is a preferred break point once the chunk has
			// accumulated a reasonable amount of text.
			if bufLen >= maxChars/2 {
				flush()
			}
			for l := range trail {
				if l >= level {
					delete(trail, l)
				}
			}
			trail[level] = heading
		}

		for _, part := range hardSplit(line, maxChars) {
			partLen := utf8.RuneCountInString(part)
			if bufLen > 0 && bufLen+partLen+1 > maxChars {
				flush()
			}
			buf = append(buf, part)
			bufLen += partLen + 1
		}
	}
	flush()

	if len(chunks) == 0 {
		return []Chunk{{Pos: 0, Text: text}}
	}
	return chunks
}

// parseHeading reports the level and text of an ATX markdown heading line,
// or level 0 when the line is not a heading.
func parseHeading(line string) (int, string) {
	trimmed := strings.TrimSpace(line)
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level == len(trimmed) || trimmed[level] != ' ' {
		return 0, ""
	}
	return level, strings.TrimSpace(trimmed[level:])
}

func headingTrail(trail map[int]string) []string {
	if len(trail) == 0 {
		return nil
	}
	levels := make([]int, 0, len(trail))
	for l := range trail {
		levels = append(levels, l)
	}
	sort.Ints(levels)
	out := make([]string, 0, len(levels))
	for _, l := range levels {
		out = append(out, trail[l])
	}
	return out
}

// hardSplit cuts a single oversized line at maxChars rune boundaries so one
// line can never exceed the chunk cap.
func hardSplit(line string, maxChars int) []string {
	if utf8.RuneCountInString(line) <= maxChars {
		return []string{line}
	}
	var parts []string
	runes := []rune(line)
	for len(runes) > maxChars {
		parts = append(parts, string(runes[:maxChars]))
		runes = runes[maxChars:]
	}
	parts = append(parts, string(runes))
	return parts
}
