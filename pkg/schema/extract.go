package schema

import "strings"

// ExtractAttributeNames returns the deduplicated list of attribute names
// appearing as {name} anywhere in buf, in first-occurrence order.
//
// This is a raw per-line scan for '{' ... '}' pairs, not a structural
// parse: it has no notion of pure-text spans, comments-within-directives,
// or name validity, and sees every brace pair in the buffer, including
// ones inside a [pure text] span or a malformed/space-containing name.
// The error return always comes back nil; it exists for signature
// symmetry with the rest of the parser's buffer-walking entry points.
func ExtractAttributeNames(buf *Buffer) ([]string, error) {
	seen := make(map[string]bool)
	var order []string

	for _, line := range buf.Lines {
		start := 0
		for {
			open := strings.IndexByte(line[start:], '{')
			if open < 0 {
				break
			}
			open += start
			end := strings.IndexByte(line[open+1:], '}')
			if end < 0 {
				break
			}
			end += open + 1
			name := line[open+1 : end]
			if !seen[name] {
				seen[name] = true
				order = append(order, name)
			}
			start = end
		}
	}
	return order, nil
}
