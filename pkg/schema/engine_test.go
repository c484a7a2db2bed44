package schema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expandString(t *testing.T, tmpl string, env Environment, configure func(*Parser)) (string, error) {
	t.Helper()
	p := NewParser()
	if configure != nil {
		configure(p)
	}
	return p.ExpandString(context.Background(), tmpl, env)
}

func TestExpand_ConcreteScenarios(t *testing.T) {
	t.Run("simple attribute substitution", func(t *testing.T) {
		out, err := expandString(t, "CREATE TABLE {name} ();\n", Environment{"name": "users"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "CREATE TABLE users ();\n", out)
	})

	t.Run("if-then-else true branch", func(t *testing.T) {
		out, err := expandString(t, "%if {a} %then [x] %else [y] %end\n", Environment{"a": "1"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "x ", out)
	})

	t.Run("if-then-else false branch", func(t *testing.T) {
		out, err := expandString(t, "%if {a} %then [x] %else [y] %end\n", Environment{"a": ""}, nil)
		require.NoError(t, err)
		assert.Equal(t, "y ", out)
	})

	t.Run("comparison with integer coercion", func(t *testing.T) {
		out, err := expandString(t, `%if ({n} >=i "3") %then [big] %else [small] %end`+"\n", Environment{"n": "5"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "big ", out)
	})

	t.Run("set then reference with ignore_unknown", func(t *testing.T) {
		out, err := expandString(t, "%set {greet} hello\n{greet} world\n", Environment{}, func(p *Parser) {
			p.IgnoreUnknown(true)
		})
		require.NoError(t, err)
		assert.Equal(t, "hello world\n", out)
	})

	t.Run("and requires both operands truthy", func(t *testing.T) {
		out, err := expandString(t, "%if {a} %and {b} %then [ok] %end\n", Environment{"a": "1", "b": ""}, nil)
		require.NoError(t, err)
		assert.Equal(t, "", out)

		out, err = expandString(t, "%if {a} %and {b} %then [ok] %end\n", Environment{"a": "1", "b": "1"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "ok ", out)
	})
}

func TestExpand_ErrorScenarios(t *testing.T) {
	t.Run("invalid attribute name", func(t *testing.T) {
		_, err := expandString(t, "{1bad}\n", Environment{}, nil)
		require.Error(t, err)
		var attrErr *AttributeError
		require.ErrorAs(t, err, &attrErr)
	})

	t.Run("then before any operand", func(t *testing.T) {
		_, err := expandString(t, "%if %then\n", Environment{}, nil)
		require.Error(t, err)
		var synErr *SyntaxError
		require.ErrorAs(t, err, &synErr)
	})

	t.Run("invalid metacharacter", func(t *testing.T) {
		_, err := expandString(t, "$zz\n", Environment{}, nil)
		require.Error(t, err)
		var metaErr *MetacharacterError
		require.ErrorAs(t, err, &metaErr)
	})

	t.Run("unterminated if block", func(t *testing.T) {
		_, err := expandString(t, "%if {a} %then [x]\n", Environment{"a": "1"}, nil)
		require.Error(t, err)
		var synErr *SyntaxError
		require.ErrorAs(t, err, &synErr)
	})
}

func TestExpand_NestedConditionalsComposeIntoEnclosingBranch(t *testing.T) {
	tmpl := "%if {a} %then [outer-]%if {b} %then [inner]%end [- ]%end\n"
	out, err := expandString(t, tmpl, Environment{"a": "1", "b": "1"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "outer-inner- ", out)
}

func TestExpand_BranchIsolation(t *testing.T) {
	tmpl := "%if {a} %then\n%set {x} A\n%else\n%set {x} B\n%end\n{x}\n"

	out, err := expandString(t, tmpl, Environment{"a": "1", "x": "seed"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "A\n", out)

	out, err = expandString(t, tmpl, Environment{"a": "", "x": "seed"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "B\n", out)
}

func TestExpand_IgnoreEmptyAttribute(t *testing.T) {
	_, err := expandString(t, "{missing}\n", Environment{"missing": ""}, nil)
	require.Error(t, err)
	var undefErr *UndefinedAttributeValueError
	require.ErrorAs(t, err, &undefErr)

	out, err := expandString(t, "{missing}\n", Environment{"missing": ""}, func(p *Parser) {
		p.IgnoreEmpty(true)
	})
	require.NoError(t, err)
	assert.Equal(t, "\n", out)
}

func TestExpand_AttributeInDeadNestedBranchNeverResolves(t *testing.T) {
	tmpl := "%if {a} %then\n[keep]\n%else\n%if {b} %then {c} %end\n%end\n"
	out, err := expandString(t, tmpl, Environment{"a": "1", "b": "1", "c": ""}, nil)
	require.NoError(t, err)
	assert.Equal(t, "keep\n", out)
}

func TestExpand_SetInEnclosingBranchReachesNestedCapturedAttribute(t *testing.T) {
	tmpl := "%if {a} %then\n%if {b} %then {x} %end\n%set {x} changed\n%end\n"
	out, err := expandString(t, tmpl, Environment{"a": "1", "b": "1", "x": "orig"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "changed ", out)
}

func TestExpand_IgnoreFlagsAreSingleShot(t *testing.T) {
	p := NewParser()
	p.IgnoreUnknown(true)

	_, err := p.ExpandString(context.Background(), "{known}\n", Environment{"known": "v"})
	require.NoError(t, err)

	_, err = p.ExpandString(context.Background(), "{missing}\n", Environment{})
	require.Error(t, err)
	var unknownErr *UnknownAttributeError
	require.ErrorAs(t, err, &unknownErr)
}
