package schema

import "strings"

// fragment is a captured piece of conditionally-emitted output: either
// already-resolved literal text, or an attribute reference whose
// resolution is deferred until the enclosing frame is flushed at %end.
type fragment struct {
	literal bool
	text    string
	attr    string
	attrPos Position
}

// frame is one entry in the conditional stack, representing one active
// %if ... %end block.
type frame struct {
	condTrue     bool
	sawThen      bool
	sawElse      bool
	ifFragments  []fragment
	elseFragments []fragment
	parentLevel  int
}

// engine drives the token dispatch loop described by the expansion
// engine component: it walks the buffer, maintains the conditional
// stack, and routes tokens to whichever sink is currently active.
type engine struct {
	lx            Lexer
	cur           *Cursor
	env           Environment
	ignoreUnknown bool
	ignoreEmpty   bool

	out   strings.Builder
	stack []*frame

	ifCount, endCount int
}

func newEngine(buf *Buffer, env Environment, ignoreUnknown, ignoreEmpty bool) *engine {
	return &engine{
		cur:           newCursor(buf),
		env:           env,
		ignoreUnknown: ignoreUnknown,
		ignoreEmpty:   ignoreEmpty,
	}
}

func (e *engine) run() (string, error) {
	for !e.cur.AtEOF() {
		if err := e.step(); err != nil {
			return "", err
		}
	}
	if e.ifCount != e.endCount {
		return "", NewSyntaxError(e.cur.Pos(), "mismatched %if/%end count")
	}
	return e.out.String(), nil
}

func (e *engine) step() error {
	if e.cur.AtLineEnd() {
		e.emitRune('\n')
		e.cur.NextLine()
		return nil
	}

	r := e.cur.Peek()
	switch {
	case isBlank(r):
		e.emitRune(r)
		e.cur.Advance()
		return nil
	case r == '$':
		pos := e.cur.Pos()
		tok, err := e.lx.GetMeta(e.cur)
		if err != nil {
			return err
		}
		ch, err := e.lx.TranslateMeta(pos, tok)
		if err != nil {
			return err
		}
		e.emitRune(ch)
		return nil
	case r == '{':
		return e.dispatchAttribute()
	case r == '%':
		return e.dispatchConditional()
	case r == '[':
		text, err := e.lx.GetPureText(e.cur)
		if err != nil {
			return err
		}
		e.emitLiteral(text)
		return nil
	default:
		if e.insideExpression() {
			return NewSyntaxError(e.cur.Pos(), "only attribute/comparison tokens are legal before %then")
		}
		word := e.lx.GetWord(e.cur)
		if word == "" {
			return NewSyntaxError(e.cur.Pos(), "unexpected character")
		}
		e.emitLiteral(word)
		return nil
	}
}

// insideExpression reports whether the top frame has been pushed by %if
// but has not yet seen its %then — i.e. the engine should not be in the
// main dispatch loop at all in this state, since the boolean expression
// evaluator owns the cursor until %then. This only guards against a
// malformed buffer that somehow returns control here early.
func (e *engine) insideExpression() bool {
	if len(e.stack) == 0 {
		return false
	}
	top := e.stack[len(e.stack)-1]
	return !top.sawThen
}

func (e *engine) dispatchAttribute() error {
	pos := e.cur.Pos()
	name, err := e.lx.GetAttribute(e.cur)
	if err != nil {
		return err
	}
	if len(e.stack) > 0 {
		e.appendFragment(fragment{attr: name, attrPos: pos})
		return nil
	}
	return e.resolveAndEmit(name, pos)
}

func (e *engine) resolveAndEmit(name string, pos Position) error {
	v, ok := e.env[name]
	if !ok {
		if !e.ignoreUnknown {
			return NewUnknownAttributeError(pos, name)
		}
	}
	if v == "" && !e.ignoreEmpty {
		return NewUndefinedAttributeValueError(pos, name)
	}
	e.out.WriteString(v)
	return nil
}

func (e *engine) dispatchConditional() error {
	tok, err := e.lx.GetConditional(e.cur)
	if err != nil {
		return err
	}
	switch tok {
	case "if":
		return e.handleIf()
	case "then":
		return e.handleThen()
	case "else":
		return e.handleElse()
	case "end":
		return e.handleEnd()
	case "set":
		return e.handleDirective(tok)
	case "unset":
		return e.handleDirective(tok)
	case "and", "or", "not":
		return NewSyntaxError(e.cur.Pos(), "'%"+tok+"' outside a conditional expression")
	default:
		return NewInstructionError(e.cur.Pos(), tok)
	}
}

func (e *engine) handleIf() error {
	e.ifCount++
	f := &frame{parentLevel: len(e.stack)}
	e.stack = append(e.stack, f)

	ev := &evaluator{lx: e.lx, cur: e.cur, env: e.env, ignoreUnknown: e.ignoreUnknown}
	result, err := ev.evaluateBoolean()
	if err != nil {
		return err
	}
	f.condTrue = result
	return nil
}

func (e *engine) handleThen() error {
	if len(e.stack) == 0 {
		return NewSyntaxError(e.cur.Pos(), "%then without %if")
	}
	top := e.stack[len(e.stack)-1]
	if top.sawThen {
		return NewSyntaxError(e.cur.Pos(), "%then must not immediately follow another %then")
	}
	top.sawThen = true
	return e.consumeDirectiveLine()
}

func (e *engine) handleElse() error {
	if len(e.stack) == 0 {
		return NewSyntaxError(e.cur.Pos(), "%else without %if")
	}
	top := e.stack[len(e.stack)-1]
	if !top.sawThen || top.sawElse {
		return NewSyntaxError(e.cur.Pos(), "%else out of order")
	}
	top.sawElse = true
	return e.consumeDirectiveLine()
}

func (e *engine) handleEnd() error {
	if len(e.stack) == 0 {
		return NewSyntaxError(e.cur.Pos(), "%end without %if")
	}
	e.endCount++
	n := len(e.stack)
	top := e.stack[n-1]
	e.stack = e.stack[:n-1]

	var chosen []fragment
	if top.condTrue {
		chosen = top.ifFragments
	} else if top.sawElse {
		chosen = top.elseFragments
	}
	if err := e.flush(chosen); err != nil {
		return err
	}
	return e.consumeDirectiveLine()
}

func (e *engine) handleDirective(kind string) error {
	e.lx.SkipBlanks(e.cur)
	if !e.liveBranch() {
		e.cur.NextLine()
		return nil
	}
	var err error
	if kind == "set" {
		err = executeSet(e.lx, e.cur, e.env, e.ignoreUnknown)
	} else {
		err = executeUnset(e.lx, e.cur, e.env, e.ignoreUnknown)
	}
	if err != nil {
		return err
	}
	return e.consumeDirectiveLine()
}

// consumeDirectiveLine skips the mandatory blank after a conditional
// keyword and, if nothing else follows on the line, silently advances
// past the trailing newline so directive-only lines contribute no
// formatting to the output.
func (e *engine) consumeDirectiveLine() error {
	e.lx.SkipBlanks(e.cur)
	if e.cur.AtLineEnd() {
		e.cur.NextLine()
	}
	return nil
}

// liveBranch reports whether every enclosing frame's current branch is the
// one that will survive to %end — i.e. %set/%unset should actually run.
func (e *engine) liveBranch() bool {
	for _, f := range e.stack {
		if f.sawElse {
			if f.condTrue {
				return false
			}
		} else if !f.condTrue {
			return false
		}
	}
	return true
}

func (e *engine) appendFragment(frag fragment) {
	top := e.stack[len(e.stack)-1]
	if top.sawElse {
		top.elseFragments = append(top.elseFragments, frag)
	} else {
		top.ifFragments = append(top.ifFragments, frag)
	}
}

func (e *engine) emitLiteral(text string) {
	if len(e.stack) == 0 {
		e.out.WriteString(text)
		return
	}
	e.appendFragment(fragment{literal: true, text: text})
}

func (e *engine) emitRune(r rune) {
	e.emitLiteral(string(r))
}

// flush appends a chosen fragment list to whatever sink is now active
// (the parent frame, or the final output) after a frame pops. An attr
// fragment is only resolved once it reaches the final output: while a
// parent frame is still on the stack, the reference may yet live inside
// that parent's dead branch, so the raw fragment is re-deferred to the
// parent instead of being resolved here.
func (e *engine) flush(frags []fragment) error {
	for _, f := range frags {
		if f.literal {
			e.emitLiteral(f.text)
			continue
		}
		if len(e.stack) > 0 {
			e.appendFragment(f)
			continue
		}
		if err := e.resolveAndEmitFragment(f); err != nil {
			return err
		}
	}
	return nil
}

func (e *engine) resolveAndEmitFragment(f fragment) error {
	v, ok := e.env[f.attr]
	if !ok && !e.ignoreUnknown {
		return NewUnknownAttributeError(f.attrPos, f.attr)
	}
	if v == "" && !e.ignoreEmpty {
		return NewUndefinedAttributeValueError(f.attrPos, f.attr)
	}
	e.emitLiteral(v)
	return nil
}
