package schema

import "strings"

// Buffer is the loaded, comment-stripped source a Cursor walks. Every line
// is non-empty and ends with a single newline, even a line that was blank
// in the source (it becomes the one-character line "\n").
type Buffer struct {
	Origin       string
	Lines        []string
	CommentCount int
}

// LoadBuffer splits text into the in-memory line buffer, stripping
// comments and normalizing line endings. origin is stored for diagnostics
// (a filename, or "[memory buffer]" for in-memory input).
func LoadBuffer(text, origin string) *Buffer {
	normalized := strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(text)
	parts := strings.Split(normalized, "\n")
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	buf := &Buffer{Origin: origin}
	for _, raw := range parts {
		line := raw
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "#") {
			buf.CommentCount++
			continue
		}
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}
		if line == "" {
			line = "\n"
		} else {
			line += "\n"
		}
		buf.Lines = append(buf.Lines, line)
	}
	return buf
}

func (b *Buffer) lineCount() int { return len(b.Lines) }
