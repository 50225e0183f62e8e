package target

import (
	"errors"
	"strings"
	"testing"

	"codemasti/internal/gen/schema"
	herrors "codemasti/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	for _, tgt := range schema.Targets() {
		m, ok := Lookup(tgt)
		require.True(t, ok, tgt)
		assert.Equal(t, tgt, m.Target())
	}

	_, ok := Lookup(schema.Target("rust"))
	assert.False(t, ok)
}

func TestSupports(t *testing.T) {
	obj := schema.Object()
	nested := schema.ArrayOf(schema.ArrayOf(schema.Object()))

	for _, tgt := range []schema.Target{schema.Java, schema.Cpp} {
		m, _ := Lookup(tgt)
		for _, typ := range []schema.Type{obj, nested} {
			err := m.Supports(typ)
			assert.True(t, errors.Is(err, herrors.ErrUnsupportedType), "%s %s", tgt, typ)
		}
		assert.NoError(t, m.Supports(schema.ArrayOf(schema.String())))
	}

	for _, tgt := range []schema.Target{schema.JavaScript, schema.Python, schema.Go} {
		m, _ := Lookup(tgt)
		assert.NoError(t, m.Supports(nested), tgt)
	}
}

func TestDeclareAndParse_Literals(t *testing.T) {
	tests := []struct {
		target schema.Target
		typ    schema.Type
		token  string
		want   string
	}{
		{schema.JavaScript, schema.Boolean(), "true", "const v = true;"},
		{schema.Python, schema.Boolean(), "false", "v = False"},
		{schema.Python, schema.ArrayOf(schema.String()), `["a", "b"]`, `v = ["a", "b"]`},
		{schema.Java, schema.ArrayOf(schema.ArrayOf(schema.Int())), "[[1],[]]", "int[][] v = new int[][]{new int[]{1}, new int[]{}};"},
		{schema.Cpp, schema.ArrayOf(schema.Boolean()), "[true,false]", "std::vector<bool> v = {true, false};"},
		{schema.Go, schema.ArrayOf(schema.ArrayOf(schema.String())), `[["x"],[]]`, `v := [][]string{[]string{"x"}, []string{}}`},
		{schema.Go, schema.Int(), "-42", "v := -42"},
	}

	for _, tt := range tests {
		t.Run(string(tt.target)+"/"+tt.typ.String(), func(t *testing.T) {
			m, _ := Lookup(tt.target)
			got, err := m.DeclareAndParse(NewContext(tt.target), "v", tt.typ, tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.Join(got, "\n"))
		})
	}
}

func TestDeclareAndParse_Objects(t *testing.T) {
	js, _ := Lookup(schema.JavaScript)
	got, err := js.DeclareAndParse(NewContext(schema.JavaScript), "o", schema.Object(), `{"a": [1, "x"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{`const o = JSON.parse("{\"a\": [1, \"x\"]}");`}, got)

	_, err = js.DeclareAndParse(NewContext(schema.JavaScript), "o", schema.Object(), `{"a": }`)
	assert.True(t, errors.Is(err, herrors.ErrInputParse))

	ctx := NewContext(schema.Go)
	gm, _ := Lookup(schema.Go)
	got, err = gm.DeclareAndParse(ctx, "o", schema.Object(), `{"a":1}`)
	require.NoError(t, err)
	assert.Contains(t, got[0], "o := func() map[string]interface{} {")
	assert.Contains(t, got[0], "json.Unmarshal([]byte(\"{\\\"a\\\":1}\"), &harnessV)")
	assert.Contains(t, ctx.Imports, "encoding/json")
}

func TestDeclareAndParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target schema.Target
		typ    schema.Type
		token  string
		kind   herrors.Kind
	}{
		{"int32 overflow", schema.Java, schema.Int(), "2147483648", herrors.InputParse},
		{"int64 overflow", schema.Python, schema.Int(), "9223372036854775808", herrors.InputParse},
		{"float", schema.Go, schema.Int(), "1.5", herrors.InputParse},
		{"bad bool", schema.Cpp, schema.Boolean(), "yes", herrors.InputParse},
		{"leading zero", schema.Go, schema.Int(), "007", herrors.InputParse},
		{"plus sign", schema.Java, schema.Int(), "+5", herrors.InputParse},
		{"bare string element", schema.Python, schema.ArrayOf(schema.String()), `["a", b]`, herrors.InputParse},
		{"array for scalar", schema.JavaScript, schema.String(), "[1]", herrors.InputParse},
		{"scalar for array", schema.Java, schema.ArrayOf(schema.Int()), "1", herrors.InputParse},
		{"object on java", schema.Java, schema.Object(), "{}", herrors.UnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := Lookup(tt.target)
			_, err := m.DeclareAndParse(NewContext(tt.target), "v", tt.typ, tt.token)
			require.Error(t, err)
			assert.Equal(t, tt.kind, herrors.KindOf(err), err.Error())
		})
	}

	m, _ := Lookup(schema.Java)
	_, err := m.DeclareAndParse(NewContext(schema.Java), "v", schema.Int(), "-2147483648")
	assert.NoError(t, err)
}

// Scalars follow JSON literal syntax on every target, so a token one runtime's
// JSON parser would reject is rejected everywhere
func TestDeclareAndParse_ScalarsAreJSONLiterals(t *testing.T) {
	tests := []struct {
		typ   schema.Type
		token string
	}{
		{schema.Boolean(), "True"},
		{schema.Boolean(), "FALSE"},
		{schema.String(), "racecar"},
		{schema.String(), "'racecar'"},
		{schema.Int(), "007"},
		{schema.Int(), "-"},
	}

	for _, tgt := range schema.Targets() {
		m, _ := Lookup(tgt)
		for _, tt := range tests {
			_, err := m.DeclareAndParse(NewContext(tgt), "v", tt.typ, tt.token)
			require.Error(t, err, "%s %s %q", tgt, tt.typ, tt.token)
			assert.Equal(t, herrors.InputParse, herrors.KindOf(err), "%s %q", tgt, tt.token)
		}
		_, err := m.DeclareAndParse(NewContext(tgt), "v", schema.Int(), "-0")
		assert.NoError(t, err, tgt)
	}
}

func TestFormatValue_RequiresHelpers(t *testing.T) {
	ctx := NewContext(schema.Java)
	java, _ := Lookup(schema.Java)

	frag, err := java.FormatValue(ctx, "result", schema.Int())
	require.NoError(t, err)
	assert.Equal(t, "String.valueOf(result)", frag.Expr)
	assert.Empty(t, java.Helpers(ctx))

	frag, err = java.FormatValue(ctx, "result", schema.String())
	require.NoError(t, err)
	assert.Equal(t, "harnessQuote.apply(result)", frag.Expr)
	helpers := java.Helpers(ctx)
	require.NotEmpty(t, helpers)
	assert.True(t, strings.HasPrefix(helpers[0], "java.util.function.Function<String, String> harnessQuote"))

	cctx := NewContext(schema.Cpp)
	cpp, _ := Lookup(schema.Cpp)
	frag, err = cpp.FormatValue(cctx, "result", schema.Boolean())
	require.NoError(t, err)
	assert.Equal(t, `std::string(result ? "true" : "false")`, frag.Expr)
	assert.Empty(t, cpp.Helpers(cctx))
}

// A Go map iterates in random order, so printing one cannot reproduce the
// key order JSON.stringify would give
func TestFormatValue_GoRejectsObjectResults(t *testing.T) {
	m, _ := Lookup(schema.Go)
	rc, ok := m.(ResultChecker)
	require.True(t, ok)

	for _, typ := range []schema.Type{schema.Object(), schema.ArrayOf(schema.Object())} {
		_, err := m.FormatValue(NewContext(schema.Go), "result", typ)
		assert.True(t, errors.Is(err, herrors.ErrUnsupportedType), typ.String())
		assert.True(t, errors.Is(rc.SupportsResult(typ), herrors.ErrUnsupportedType), typ.String())
	}

	assert.NoError(t, m.Supports(schema.Object()), "object parameters stay allowed")
	assert.NoError(t, rc.SupportsResult(schema.ArrayOf(schema.String())))
}

func TestFormatValue_GoNilSlicePrintsNull(t *testing.T) {
	ctx := NewContext(schema.Go)
	m, _ := Lookup(schema.Go)

	frag, err := m.FormatValue(ctx, "result", schema.ArrayOf(schema.ArrayOf(schema.Int())))
	require.NoError(t, err)
	text := strings.Join(frag.Stmts, "\n")
	assert.Contains(t, text, "if result == nil {\n\tharnessSb0.WriteString(\"null\")\n} else {")
	assert.Contains(t, text, "if harnessV2 == nil {")
	assert.Equal(t, "harnessSb0.String()", frag.Expr)
}

func TestEscapeString(t *testing.T) {
	in := "a\"b\\c\nd\te\x01é"

	tests := map[schema.Target]string{
		schema.JavaScript: `a\"b\\c\nd\te\u0001é`,
		schema.Python:     `a\"b\\c\nd\te\x01é`,
		schema.Java:       `a\"b\\c\nd\te\001\u00e9`,
		schema.Cpp:        `a\"b\\c\nd\te\001\303\251`,
		schema.Go:         `a\"b\\c\nd\te\x01é`,
	}

	for tgt, want := range tests {
		m, _ := Lookup(tgt)
		assert.Equal(t, want, m.EscapeString(in), tgt)
	}

	js, _ := Lookup(schema.JavaScript)
	assert.Equal(t, `\u2028`, js.EscapeString("\u2028"))
}

func TestContextLocal(t *testing.T) {
	ctx := NewContext(schema.Java)
	java, _ := Lookup(schema.Java)

	ctx.Claim("solve")
	assert.Equal(t, "solve_", ctx.Local("solve", java.Reserved))
	assert.Equal(t, "int_", ctx.Local("int", java.Reserved))
	assert.Equal(t, "x", ctx.Local("x", java.Reserved))
	assert.Equal(t, "x_", ctx.Local("x", java.Reserved))
	assert.Equal(t, "harnessSb0_", ctx.Local("harnessSb0", java.Reserved))
	assert.Equal(t, "harness", ctx.Local("harness", java.Reserved))
	assert.Equal(t, "harnessSb0", ctx.Temp("Sb"))
	assert.Equal(t, "harnessI1", ctx.Temp("I"))
}

func TestGoFinalize(t *testing.T) {
	m, _ := Lookup(schema.Go)
	ctx := NewContext(schema.Go)
	ctx.AddImport("fmt")
	ctx.AddImport("strconv")

	src := "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(strconv.Itoa(1))\n}\n"
	got := m.Finalize(ctx, src)

	assert.Contains(t, got, "\"strconv\"")
	assert.Equal(t, 1, strings.Count(got, "\"fmt\""))
	assert.Equal(t, "package main", strings.SplitN(got, "\n", 2)[0])

	broken := "package main\nfunc main() { strconv.Itoa( }\n"
	got = m.Finalize(ctx, broken)
	assert.Contains(t, got, "\"strconv\"")
	assert.Contains(t, got, "strconv.Itoa( }")
}

func TestCppFinalize(t *testing.T) {
	m, _ := Lookup(schema.Cpp)
	ctx := NewContext(schema.Cpp)
	ctx.AddImport("iostream")
	ctx.AddImport("vector")

	got := m.Finalize(ctx, "#include <iostream>\nint main() {}\n")
	assert.Equal(t, "#include <vector>\n#include <iostream>\nint main() {}\n", got)

	all := "#include <bits/stdc++.h>\nint main() {}\n"
	assert.Equal(t, all, m.Finalize(ctx, all))
}

func TestPythonFinalize(t *testing.T) {
	m, _ := Lookup(schema.Python)
	ctx := NewContext(schema.Python)
	ctx.AddImport("json")

	assert.Equal(t, "import json\nprint(1)\n", m.Finalize(ctx, "print(1)\n"))
	assert.Equal(t, "import json\nprint(1)\n", m.Finalize(ctx, "import json\nprint(1)\n"))
}

func TestGoPrepareUserCode(t *testing.T) {
	m := &GoMapper{}
	ctx := NewContext(schema.Go)

	code := "package main\n\nimport (\n\t\"sort\"\n\tstr \"strings\"\n)\n\nfunc solve(xs []int) string {\n\tsort.Ints(xs)\n\treturn str.Repeat(\"x\", len(xs))\n}\n"
	got := m.PrepareUserCode(ctx, code)

	assert.Equal(t, "func solve(xs []int) string {\n\tsort.Ints(xs)\n\treturn str.Repeat(\"x\", len(xs))\n}\n", got)
	assert.Equal(t, map[string]string{"sort": "", "strings": "str"}, ctx.Imports)

	plain := "func solve() int { return 1 }\n"
	assert.Equal(t, plain, m.PrepareUserCode(NewContext(schema.Go), plain))

	ctx = NewContext(schema.Go)
	ctx.AddImportAlias("str", "strings")
	out := m.Finalize(ctx, "package main\n\nfunc main() { _ = str.Repeat }\n")
	assert.Contains(t, out, "str \"strings\"")
}
