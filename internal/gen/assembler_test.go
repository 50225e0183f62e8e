package gen

import (
	"strings"
	"sync"
	"testing"

	"codemasti/internal/gen/render"
	"codemasti/internal/gen/schema"
	herrors "codemasti/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSumConfig() schema.ExecutionConfig {
	return schema.ExecutionConfig{
		IO: schema.IOConfig{
			InputFormat:  schema.FormatArray,
			FunctionName: "twoSum",
			Parameters: []schema.Parameter{
				{Name: "nums", Type: schema.ArrayOf(schema.Int())},
				{Name: "target", Type: schema.Int()},
			},
			ReturnType: schema.ArrayOf(schema.Int()),
		},
		TimeoutMs: 2000,
	}
}

var twoSumCase = schema.TestCase{Input: "[[2,7,11,15],9]", Output: "[0,1]"}

const javaSolution = `class Solution {
    public int[] twoSum(int[] nums, int target) {
        return new int[]{0, 1};
    }
}`

const goSolution = `import "sort"

func twoSum(nums []int, target int) []int {
	sort.Ints(nums)
	return []int{0, 1}
}`

func TestAssemble_Java(t *testing.T) {
	a := NewAssembler()
	program, err := a.Assemble(twoSumConfig(), javaSolution, twoSumCase, schema.Java)
	require.NoError(t, err)

	assert.Equal(t, 62, program.TargetLanguageID)
	assert.Equal(t, schema.Java, program.Target)
	assert.Equal(t, render.DefaultVersion, program.TemplateVersion)

	src := program.SourceText
	assert.Contains(t, src, javaSolution)
	assert.Contains(t, src, `final String harnessInput = "[[2,7,11,15],9]";`)
	assert.Contains(t, src, `final String harnessFunction = "twoSum";`)
	assert.Contains(t, src, "            int[] nums = new int[]{2, 7, 11, 15};\n            int target = 9;\n")
	assert.Contains(t, src, "            int[] result = solution.twoSum(nums, target);")
	assert.NotContains(t, src, "{{")
}

func TestAssemble_Go(t *testing.T) {
	program, err := NewAssembler().Assemble(twoSumConfig(), goSolution, twoSumCase, schema.Go)
	require.NoError(t, err)

	src := program.SourceText
	assert.Equal(t, 60, program.TargetLanguageID)
	assert.True(t, strings.HasPrefix(src, "package main\n\nimport (\n"))
	for _, path := range []string{`"fmt"`, `"os"`, `"sort"`, `"strconv"`, `"strings"`} {
		assert.Equal(t, 1, strings.Count(src, path), path)
	}
	assert.NotContains(t, src, "import \"sort\"\n\nfunc twoSum")
	assert.Contains(t, src, "\tnums := []int{2, 7, 11, 15}\n\ttarget := 9\n\tresult := twoSum(nums, target)\n")
}

func TestAssemble_Cpp(t *testing.T) {
	cfg := twoSumConfig()
	cfg.LanguageIDs = map[schema.Target]int{schema.Cpp: 76}

	program, err := NewAssembler().Assemble(cfg, "class Solution {};", twoSumCase, schema.Cpp)
	require.NoError(t, err)

	assert.Equal(t, 76, program.TargetLanguageID)
	assert.True(t, strings.HasPrefix(program.SourceText, "#include <bits/stdc++.h>\n"))
	assert.Contains(t, program.SourceText, "        std::vector<int> nums = {2, 7, 11, 15};")
}

func TestAssemble_DynamicTargetsEmbedInput(t *testing.T) {
	cfg := twoSumConfig()
	cfg.IO = schema.IOConfig{
		InputFormat:  schema.FormatSingle,
		FunctionName: "isPalindrome",
		Parameters:   []schema.Parameter{{Name: "x", Type: schema.String()}},
		ReturnType:   schema.Boolean(),
	}
	tc := schema.TestCase{Input: `"racecar"`, Output: "true"}

	js, err := NewAssembler().Assemble(cfg, "function isPalindrome(x) { return true; }", tc, schema.JavaScript)
	require.NoError(t, err)
	assert.Equal(t, 63, js.TargetLanguageID)
	assert.Contains(t, js.SourceText, `const harnessFn = isPalindrome;`)
	assert.Contains(t, js.SourceText, `let args = harnessArgs("\"racecar\"", "single");`)

	py, err := NewAssembler().Assemble(cfg, "def isPalindrome(x):\n    return True", tc, schema.Python)
	require.NoError(t, err)
	assert.Equal(t, 71, py.TargetLanguageID)
	assert.Contains(t, py.SourceText, `args = harness_args("\"racecar\"", "single")`)
	assert.Equal(t, 1, strings.Count(py.SourceText, "import json\n"))
}

// Every target reads the argument list the same way: no runtime guess based
// on the function's arity
func TestAssemble_DynamicTargetsSpreadArgumentList(t *testing.T) {
	cfg := twoSumConfig()
	cfg.IO.Parameters = []schema.Parameter{{Name: "nums", Type: schema.ArrayOf(schema.Int())}}
	cfg.IO.ReturnType = schema.Int()

	for _, tgt := range schema.Targets() {
		_, err := NewAssembler().Assemble(cfg, "", schema.TestCase{Input: "[5]"}, tgt)
		assert.True(t, herrors.IsKind(err, herrors.InputParse), "%s: %v", tgt, err)

		_, err = NewAssembler().Assemble(cfg, "", schema.TestCase{Input: "[[5]]"}, tgt)
		assert.NoError(t, err, tgt)
	}

	js, err := NewAssembler().Assemble(cfg, "function sum(nums) { return 0; }", schema.TestCase{Input: "[[5]]"}, schema.JavaScript)
	require.NoError(t, err)
	assert.NotContains(t, js.SourceText, ".length")
	assert.Contains(t, js.SourceText, `if (format === "array" && Array.isArray(value)) return value;`)

	py, err := NewAssembler().Assemble(cfg, "def sum(nums):\n    return 0", schema.TestCase{Input: "[[5]]"}, schema.Python)
	require.NoError(t, err)
	assert.NotContains(t, py.SourceText, "inspect")
	assert.Contains(t, py.SourceText, `if fmt == "array" and isinstance(value, list):`)
}

func TestAssemble_MalformedScalarsFailOnEveryTarget(t *testing.T) {
	cfg := twoSumConfig()
	cfg.IO = schema.IOConfig{
		InputFormat:  schema.FormatArray,
		FunctionName: "check",
		Parameters: []schema.Parameter{
			{Name: "s", Type: schema.String()},
			{Name: "flag", Type: schema.Boolean()},
		},
		ReturnType: schema.Boolean(),
	}

	for _, input := range []string{`["racecar",True]`, `[racecar,true]`, `["racecar",1]`} {
		for _, tgt := range schema.Targets() {
			_, err := NewAssembler().Assemble(cfg, "", schema.TestCase{Input: input}, tgt)
			assert.True(t, herrors.IsKind(err, herrors.InputParse), "%s %s: %v", tgt, input, err)
		}
	}
}

func TestAssemble_ObjectInputOnDynamicTargets(t *testing.T) {
	cfg := twoSumConfig()
	cfg.IO.InputFormat = schema.FormatObject
	tc := schema.TestCase{Input: `{"target": 9, "nums": [2,7,11,15]}`, Output: "[0,1]"}

	js, err := NewAssembler().Assemble(cfg, "function twoSum(nums, target) { return [0, 1]; }", tc, schema.JavaScript)
	require.NoError(t, err)
	assert.Contains(t, js.SourceText, "  let args = harnessArgs(")
	assert.Contains(t, js.SourceText, "\n  args = [args[0][\"nums\"], args[0][\"target\"]];\n  const result = harnessFn(...args);")

	py, err := NewAssembler().Assemble(cfg, "def twoSum(nums, target):\n    return [0, 1]", tc, schema.Python)
	require.NoError(t, err)
	assert.Contains(t, py.SourceText, "\n    args = [args[0][\"nums\"], args[0][\"target\"]]\n    result = fn(*args)")

	_, err = NewAssembler().Assemble(cfg, "", schema.TestCase{Input: `{"nums": [1]}`}, schema.JavaScript)
	assert.True(t, herrors.IsKind(err, herrors.InputParse))
}

func TestAssemble_GoRefusesObjectResults(t *testing.T) {
	cfg := twoSumConfig()
	cfg.IO.ReturnType = schema.Object()

	_, err := NewAssembler().Assemble(cfg, "", twoSumCase, schema.Go)
	assert.True(t, herrors.IsKind(err, herrors.UnsupportedType), "got %v", err)
	assert.True(t, herrors.IsKind(NewAssembler().Validate(cfg.IO, schema.Go), herrors.UnsupportedType))

	_, err = NewAssembler().Assemble(cfg, "", twoSumCase, schema.JavaScript)
	assert.NoError(t, err)
}

func TestAssemble_PlaceholderExclusivity(t *testing.T) {
	code := "// {{USER_CODE}} {{TEST_INPUT}}\n" + javaSolution
	program, err := NewAssembler().Assemble(twoSumConfig(), code, twoSumCase, schema.Java)
	require.NoError(t, err)
	assert.Contains(t, program.SourceText, code)

	words := twoSumConfig()
	words.IO.Parameters[0].Type = schema.ArrayOf(schema.String())
	js, err := NewAssembler().Assemble(words, "function twoSum() {}", schema.TestCase{Input: `[["{{USER_CODE}}"],1]`}, schema.JavaScript)
	require.NoError(t, err)
	assert.Contains(t, js.SourceText, `harnessArgs("[[\"{{USER_CODE}}\"],1]"`)
	assert.Equal(t, 1, strings.Count(js.SourceText, "function twoSum() {}"))
}

func TestAssemble_Deterministic(t *testing.T) {
	a := NewAssembler()
	for _, tgt := range schema.Targets() {
		var wg sync.WaitGroup
		results := make([]string, 8)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				program, err := a.Assemble(twoSumConfig(), "class Solution {}", twoSumCase, tgt)
				if assert.NoError(t, err) {
					results[i] = program.SourceText
				}
			}(i)
		}
		wg.Wait()
		for _, r := range results[1:] {
			assert.Equal(t, results[0], r, tgt)
		}
	}
}

func TestAssemble_Errors(t *testing.T) {
	a := NewAssembler()

	bad := twoSumConfig()
	bad.IO.FunctionName = ""
	bad.IO.Parameters = append(bad.IO.Parameters, schema.Parameter{Name: "nums", Type: schema.Int()})
	_, err := a.Assemble(bad, "", twoSumCase, schema.Java)
	require.Error(t, err)
	assert.True(t, herrors.IsKind(err, herrors.SchemaValidation))
	var he *herrors.Error
	require.ErrorAs(t, err, &he)
	assert.GreaterOrEqual(t, len(he.Violations), 2)

	obj := twoSumConfig()
	obj.IO.Parameters[0].Type = schema.Object()
	_, err = a.Assemble(obj, "", schema.TestCase{Input: `[{"a":1},2]`}, schema.Java)
	assert.True(t, herrors.IsKind(err, herrors.UnsupportedType))

	_, err = a.Assemble(twoSumConfig(), "", schema.TestCase{Input: "[1,2"}, schema.Cpp)
	assert.True(t, herrors.IsKind(err, herrors.InputParse))

	_, err = a.Assemble(twoSumConfig(), "", schema.TestCase{Input: "[[1],2,3]"}, schema.Go)
	assert.True(t, herrors.IsKind(err, herrors.InputArity))

	_, err = a.Assemble(twoSumConfig(), "", twoSumCase, schema.Target("rust"))
	assert.True(t, herrors.IsKind(err, herrors.UnsupportedType))

	broken := twoSumConfig()
	broken.Templates = map[schema.Target]schema.WrapperTemplate{
		schema.Java: {Version: "x", Source: "{{USER_CODE}} {{DYNAMIC_INPUT_PARSING_AND_METHOD_CALL}}"},
	}
	_, err = a.Assemble(broken, "", twoSumCase, schema.Java)
	assert.True(t, herrors.IsKind(err, herrors.TemplateIntegrity))
}

func TestValidate(t *testing.T) {
	a := NewAssembler()
	io := twoSumConfig().IO

	assert.NoError(t, a.Validate(io, ""))
	assert.NoError(t, a.Validate(io, schema.Cpp))

	io.ReturnType = schema.Object()
	assert.NoError(t, a.Validate(io, schema.Python))
	assert.True(t, herrors.IsKind(a.Validate(io, schema.Cpp), herrors.UnsupportedType))

	io.FunctionName = "two sum"
	assert.True(t, herrors.IsKind(a.Validate(io, schema.Go), herrors.SchemaValidation))
}

func TestValidateTemplates(t *testing.T) {
	cfg := twoSumConfig()
	cfg.Templates = map[schema.Target]schema.WrapperTemplate{
		schema.Go:   {Source: "{{USER_CODE}}"},
		schema.Java: {Source: "{{USER_CODE}}{{TEST_INPUT}}{{FUNCTION_NAME}}{{INPUT_FORMAT}}{{DYNAMIC_INPUT_PARSING_AND_METHOD_CALL}}"},
	}

	err := NewAssembler().ValidateTemplates(cfg)
	require.Error(t, err)
	var he *herrors.Error
	require.ErrorAs(t, err, &he)
	require.Len(t, he.Violations, 1)
	assert.True(t, strings.HasPrefix(he.Violations[0], "templates.go: "))
}
