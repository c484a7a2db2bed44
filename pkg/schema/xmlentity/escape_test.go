package xmlentity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape_AttributeValues(t *testing.T) {
	in := `<column name="a < b & c > d"/>` + "\n"
	out := Escape(in)
	assert.Equal(t, `<column name="a &lt; b &amp; c &gt; d"/>`+"\n", out)
}

func TestEscape_SkipsXMLHeader(t *testing.T) {
	in := `<?xml version="1.0" & weird?>` + "\n"
	out := Escape(in)
	assert.Equal(t, in, out)
}

// A comment that both opens and closes on the same physical line still
// leaves the following line treated as in-comment, ported as-is from the
// reference implementation (the close check only runs on a line where the
// comment was already open coming in, not the line it opens on).
func TestEscape_SingleLineCommentBleedsIntoNextLine(t *testing.T) {
	in := "<!-- note: a < b & c -->\n<col name=\"x < y\"/>\n"
	out := Escape(in)
	assert.Equal(t, in, out)
}

func TestEscape_DoesNotDoubleEscapeAlreadyEscapedAmpersand(t *testing.T) {
	in := `<col name="already &amp; escaped"/>` + "\n"
	out := Escape(in)
	assert.Equal(t, in, out)
}

func TestEscape_MultilineCommentSpan(t *testing.T) {
	in := "<!--\na < b & c\n-->\n<col name=\"x < y\"/>\n"
	out := Escape(in)
	assert.Equal(t, "<!--\na < b & c\n-->\n<col name=\"x &lt; y\"/>\n", out)
}
