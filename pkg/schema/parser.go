package schema

import (
	"context"
	"os"
)

// FileResolver resolves a schema object name and kind to a template file
// path by convention. pkg/schema/resolver provides the concrete
// implementation; Parser only depends on this interface so the core DSL
// stays free of filesystem-layout policy.
type FileResolver interface {
	Resolve(objName string, kindDir string) (string, error)
}

// EntityEscaper post-processes an expanded XML fragment. pkg/schema/xmlentity
// provides the concrete implementation.
type EntityEscaper interface {
	Escape(xml string) string
}

// Parser is the stateful evaluator: one instance owns its cursor, buffer,
// attribute environment, and conditional stack for the duration of a
// single expansion call. It must not be invoked re-entrantly; distinct
// instances are fully independent.
type Parser struct {
	version       string
	ignoreUnknown bool
	ignoreEmpty   bool
}

// NewParser returns a Parser targeting the compiled-in default version.
func NewParser() *Parser {
	return &Parser{version: DefaultVersion}
}

// IgnoreUnknown configures whether unknown attribute references raise an
// error for the next expansion call only.
func (p *Parser) IgnoreUnknown(v bool) { p.ignoreUnknown = v }

// IgnoreEmpty configures whether emitted empty attribute values raise an
// error for the next expansion call only.
func (p *Parser) IgnoreEmpty(v bool) { p.ignoreEmpty = v }

// Expand runs a loaded buffer through the evaluator against attrs, merged
// with the implicit pgsql-version attribute. The ignore flags reset to
// false afterward, whether or not expansion succeeded.
func (p *Parser) Expand(ctx context.Context, buf *Buffer, attrs Environment) (string, error) {
	defer func() {
		p.ignoreUnknown = false
		p.ignoreEmpty = false
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	env := attrs.Clone()
	env["pgsql-version"] = p.version

	e := newEngine(buf, env, p.ignoreUnknown, p.ignoreEmpty)
	return e.run()
}

// ExpandString is a convenience wrapper that loads text as an in-memory
// buffer before expanding it.
func (p *Parser) ExpandString(ctx context.Context, text string, attrs Environment) (string, error) {
	return p.Expand(ctx, LoadBuffer(text, "[memory buffer]"), attrs)
}

// ExpandFile loads and expands a template file from disk.
func (p *Parser) ExpandFile(ctx context.Context, path string, attrs Environment) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", NewFileNotAccessibleError(path, err)
	}
	return p.Expand(ctx, LoadBuffer(string(data), path), attrs)
}

// ExpandFromObject resolves a schema file by convention via resolver,
// expands it, and — for Kind XML — post-processes the result through
// escaper. The implicit pgsql-version attribute is injected by Expand.
func (p *Parser) ExpandFromObject(ctx context.Context, resolver FileResolver, escaper EntityEscaper, objName string, kind Kind, attrs Environment) (string, error) {
	path, err := resolver.Resolve(objName, kind.Dir())
	if err != nil {
		return "", err
	}
	out, err := p.ExpandFile(ctx, path, attrs)
	if err != nil {
		return "", err
	}
	if kind == XML && escaper != nil {
		out = escaper.Escape(out)
	}
	return out, nil
}

// ExtractAttributeNamesFromFile is a convenience wrapper that loads a file
// and extracts its referenced attribute names.
func (p *Parser) ExtractAttributeNamesFromFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewFileNotAccessibleError(path, err)
	}
	return ExtractAttributeNames(LoadBuffer(string(data), path))
}
