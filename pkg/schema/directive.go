package schema

import "strings"

// executeSet implements %set {name} <value> / %set @{name_src} <value>.
// The cursor is positioned right after the "set" token has been consumed
// and the mandatory separating blank skipped.
func executeSet(lx Lexer, c *Cursor, env Environment, ignoreUnknown bool) error {
	var target string
	useValAsName := false
	sawAt := false
	var value strings.Builder

	for !c.AtLineEnd() {
		lx.SkipBlanks(c)
		if c.AtLineEnd() {
			break
		}
		switch c.Peek() {
		case '@':
			if sawAt {
				return NewSyntaxError(c.Pos(), "'@' specified twice in %set")
			}
			sawAt = true
			c.Advance()
			name, err := lx.GetAttribute(c)
			if err != nil {
				return err
			}
			target = name
			useValAsName = true
		case '%':
			return NewSyntaxError(c.Pos(), "'%' inside %set value region")
		case '{':
			name, err := lx.GetAttribute(c)
			if err != nil {
				return err
			}
			if target == "" && !useValAsName {
				target = name
				continue
			}
			v, ok := env[name]
			if !ok && !ignoreUnknown {
				return NewUnknownAttributeError(c.Pos(), name)
			}
			value.WriteString(v)
		case '[':
			text, err := lx.GetPureText(c)
			if err != nil {
				return err
			}
			value.WriteString(text)
		case '$':
			pos := c.Pos()
			tok, err := lx.GetMeta(c)
			if err != nil {
				return err
			}
			r, err := lx.TranslateMeta(pos, tok)
			if err != nil {
				return err
			}
			value.WriteRune(r)
		default:
			word := lx.GetWord(c)
			if word == "" {
				return NewSyntaxError(c.Pos(), "unexpected character in %set value")
			}
			value.WriteString(word)
		}
	}

	if target == "" {
		return NewSyntaxError(c.Pos(), "%set is missing an attribute name")
	}

	resolvedTarget := target
	if useValAsName {
		v, ok := env[target]
		if !ok && !ignoreUnknown {
			return NewUnknownAttributeError(c.Pos(), target)
		}
		resolvedTarget = v
	}
	if !ValidAttributeName(resolvedTarget) {
		return NewAttributeError(c.Pos(), resolvedTarget)
	}

	env[resolvedTarget] = value.String()
	return nil
}

// executeUnset implements %unset {a1} {a2} ... — each named attribute is
// reset to the empty string.
func executeUnset(lx Lexer, c *Cursor, env Environment, ignoreUnknown bool) error {
	for !c.AtLineEnd() {
		lx.SkipBlanks(c)
		if c.AtLineEnd() {
			break
		}
		if c.Peek() != '{' {
			return NewSyntaxError(c.Pos(), "%unset only accepts attribute references")
		}
		name, err := lx.GetAttribute(c)
		if err != nil {
			return err
		}
		if _, ok := env[name]; !ok && !ignoreUnknown {
			return NewUnknownAttributeError(c.Pos(), name)
		}
		env[name] = ""
	}
	return nil
}
