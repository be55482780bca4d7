// Package codeblock extracts fenced code blocks from free-form text,
// typically model output that mixes prose with ``` fences.
//
// The scanner works on whole lines and delimiter tokens rather than a
// single regular expression, so it tolerates the formatting drift real
// model output shows: backtick and tilde fences, indented fences,
// language tags with version suffixes, and a final fence the model
// forgot to close.
package codeblock

import (
	"bufio"
	"strings"
)

// Block is one fenced code block.
type Block struct {
	// Lang is the info-string language tag, lowercased. Empty for a
	// bare fence.
	Lang string

	// Text is the block body without the fence lines. A trailing
	// newline is included when the block has at least one line.
	Text string
}

// ExtractAll returns every fenced block in text, in order of
// appearance. A fence opened but never closed yields a block running to
// the end of the text.
func ExtractAll(text string) []Block {
	var (
		blocks  []Block
		body    strings.Builder
		lang    string
		fence   byte
		inBlock bool
	)

	flush := func() {
		blocks = append(blocks, Block{Lang: lang, Text: body.String()})
		body.Reset()
		inBlock = false
	}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		if !inBlock {
			marker, info, ok := openFence(line)
			if !ok {
				continue
			}

			fence = marker
			lang = strings.ToLower(firstToken(info))
			inBlock = true

			continue
		}

		if closesFence(line, fence) {
			flush()

			continue
		}

		body.WriteString(line)
		body.WriteByte('\n')
	}

	if inBlock {
		flush()
	}

	return blocks
}

// Extract returns the body of the first block whose language tag
// matches lang, ignoring case and trailing version digits, so asking
// for "python" finds a ```python3 block. An empty lang matches any
// block. The second return is false when no block matches.
func Extract(text, lang string) (string, bool) {
	want := strings.ToLower(lang)

	for _, block := range ExtractAll(text) {
		if langMatches(block.Lang, want) {
			return block.Text, true
		}
	}

	return "", false
}

// openFence reports whether line opens a fence, returning the fence
// character and the info string after it.
func openFence(line string) (marker byte, info string, ok bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return 0, "", false
	}

	c := trimmed[0]
	if c != '`' && c != '~' {
		return 0, "", false
	}

	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}

	if n < 3 {
		return 0, "", false
	}

	info = strings.TrimSpace(trimmed[n:])

	// An info string containing the fence character is prose like
	// "````` is a fence", not an opener.
	if strings.IndexByte(info, c) >= 0 {
		return 0, "", false
	}

	return c, info, true
}

// closesFence reports whether line terminates a block opened with the
// given fence character: nothing but fence characters after optional
// indentation.
func closesFence(line string, fence byte) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 3 {
		return false
	}

	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != fence {
			return false
		}
	}

	return true
}

func firstToken(s string) string {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i]
	}

	return s
}

// langMatches treats "python3" and "Python" as the same language:
// equality after lowercasing, ignoring a trailing run of digits and
// dots on the block's tag.
func langMatches(blockLang, want string) bool {
	if want == "" {
		return true
	}

	if blockLang == want {
		return true
	}

	if !strings.HasPrefix(blockLang, want) {
		return false
	}

	for _, r := range blockLang[len(want):] {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}

	return true
}
