// Package xmlentity escapes XML entities inside attribute value spans of
// an already-serialized XML fragment. It deliberately does not use
// encoding/xml: that package's escaper walks element text, not
// selectively-quoted attribute spans, and has no notion of skipping an
// <?xml ...?> header or a <!-- ... --> comment the way this escaper does.
package xmlentity

import (
	"regexp"
	"strings"
)

var attrValuePattern = regexp.MustCompile(`="([^"]*)"`)

// Escaper escapes &, < and > inside attribute values line by line,
// leaving XML headers and comments untouched. An attribute value ends at
// the first '"' after '=', so a '"' character is never escaped.
type Escaper struct{}

// Escape runs the escaper over xml and returns the result.
func (Escaper) Escape(xml string) string {
	return Escape(xml)
}

// Escape is the package-level entry point Escaper.Escape delegates to.
func Escape(xml string) string {
	lines := splitKeepEnds(xml)
	inComment := false

	for i, line := range lines {
		trimmed := line
		isHeader := strings.Contains(trimmed, "<?xml")
		if !inComment {
			inComment = strings.Contains(trimmed, "<!--")
		} else if strings.Contains(trimmed, "-->") {
			inComment = false
		}

		if trimmed == "" || isHeader || inComment {
			continue
		}
		lines[i] = attrValuePattern.ReplaceAllStringFunc(line, escapeAttrMatch)
	}
	return strings.Join(lines, "")
}

func escapeAttrMatch(match string) string {
	// match is `="value"`; escape only the value between the quotes.
	inner := match[2 : len(match)-1]
	escaped := escapeEntities(inner)
	return `="` + escaped + `"`
}

// alreadyEscaped reports whether value already contains one of the five
// canonical entity references — when it does, a bare '&' is left alone so
// a value escaped on a previous pass is never double-escaped.
func alreadyEscaped(value string) bool {
	for _, ent := range []string{"&quot;", "&lt;", "&gt;", "&amp;", "&apos;"} {
		if strings.Contains(value, ent) {
			return true
		}
	}
	return false
}

func escapeEntities(value string) string {
	escapeAmp := !alreadyEscaped(value) && strings.Contains(value, "&")

	var out []rune
	for _, r := range value {
		switch r {
		case '&':
			if escapeAmp {
				out = append(out, []rune("&amp;")...)
			} else {
				out = append(out, r)
			}
		case '"':
			out = append(out, []rune("&quot;")...)
		case '<':
			out = append(out, []rune("&lt;")...)
		case '>':
			out = append(out, []rune("&gt;")...)
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

func splitKeepEnds(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i+1])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
