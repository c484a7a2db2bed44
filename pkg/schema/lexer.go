package schema

import "strings"

// Lexer holds no state of its own; every primitive takes the cursor it
// operates on explicitly, so a single Lexer value can be shared freely.
type Lexer struct{}

const specialChars = "{}%$[]"

func isSpecial(r rune) bool {
	return strings.ContainsRune(specialChars, r)
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

// SkipBlanks advances the cursor over spaces and tabs on the current line.
func (Lexer) SkipBlanks(c *Cursor) {
	for !c.AtLineEnd() && isBlank(c.Peek()) {
		c.Advance()
	}
}

// GetAttribute requires the cursor to sit on '{' and returns the validated
// name between it and the matching '}'.
func (Lexer) GetAttribute(c *Cursor) (string, error) {
	if c.Peek() != '{' {
		return "", NewSyntaxError(c.Pos(), "expected '{'")
	}
	c.Advance()
	var sb strings.Builder
	for {
		if c.AtLineEnd() {
			return "", NewSyntaxError(c.Pos(), "unterminated attribute reference")
		}
		r := c.Peek()
		if r == '}' {
			c.Advance()
			break
		}
		if isBlank(r) || r == '{' {
			return "", NewSyntaxError(c.Pos(), "invalid character in attribute reference")
		}
		sb.WriteRune(r)
		c.Advance()
	}
	name := sb.String()
	if !ValidAttributeName(name) {
		return "", NewAttributeError(c.Pos(), name)
	}
	return name, nil
}

// GetWord consumes characters while not whitespace, newline, or special.
// It may return an empty string if the cursor is already on a stop
// character.
func (Lexer) GetWord(c *Cursor) string {
	var sb strings.Builder
	for !c.AtLineEnd() {
		r := c.Peek()
		if isBlank(r) || isSpecial(r) {
			break
		}
		sb.WriteRune(r)
		c.Advance()
	}
	return sb.String()
}

// GetPureText requires the cursor to sit on '[' and returns everything up
// to the matching ']', crossing newlines as needed.
func (Lexer) GetPureText(c *Cursor) (string, error) {
	if c.Peek() != '[' {
		return "", NewSyntaxError(c.Pos(), "expected '['")
	}
	c.Advance()
	var sb strings.Builder
	for {
		if c.AtEOF() {
			return "", NewSyntaxError(c.Pos(), "unterminated pure text span")
		}
		if c.AtLineEnd() {
			if c.Peek() == ']' {
				c.Advance()
				break
			}
			sb.WriteRune('\n')
			c.NextLine()
			continue
		}
		r := c.Peek()
		if r == ']' {
			c.Advance()
			break
		}
		sb.WriteRune(r)
		c.Advance()
	}
	return sb.String(), nil
}

// GetConditional requires the cursor to sit on '%' and returns the
// following run of non-whitespace, non-newline characters.
func (Lexer) GetConditional(c *Cursor) (string, error) {
	if c.Peek() != '%' {
		return "", NewSyntaxError(c.Pos(), "expected '%'")
	}
	c.Advance()
	var sb strings.Builder
	for !c.AtLineEnd() {
		r := c.Peek()
		if isBlank(r) {
			break
		}
		sb.WriteRune(r)
		c.Advance()
	}
	if sb.Len() == 0 {
		return "", NewSyntaxError(c.Pos(), "empty conditional token")
	}
	return sb.String(), nil
}

// GetMeta requires the cursor to sit on '$' and returns the following run
// of non-whitespace characters.
func (Lexer) GetMeta(c *Cursor) (string, error) {
	if c.Peek() != '$' {
		return "", NewSyntaxError(c.Pos(), "expected '$'")
	}
	c.Advance()
	var sb strings.Builder
	for !c.AtLineEnd() {
		r := c.Peek()
		if isBlank(r) {
			break
		}
		sb.WriteRune(r)
		c.Advance()
	}
	if sb.Len() == 0 {
		return "", NewSyntaxError(c.Pos(), "empty metacharacter token")
	}
	return sb.String(), nil
}

var metaTranslations = map[string]rune{
	"sp": ' ',
	"br": '\n',
	"tb": '\t',
	"ob": '[',
	"cb": ']',
	"oc": '{',
	"cc": '}',
}

// TranslateMeta maps a metacharacter token to its literal rune.
func (Lexer) TranslateMeta(pos Position, token string) (rune, error) {
	r, ok := metaTranslations[token]
	if !ok {
		return 0, NewMetacharacterError(pos, token)
	}
	return r, nil
}
