package schema

import (
	"errors"
	"testing"

	herrors "codemasti/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoSumIO() IOConfig {
	return IOConfig{
		InputFormat:  FormatArray,
		FunctionName: "twoSum",
		Parameters: []Parameter{
			{Name: "nums", Type: ArrayOf(Int())},
			{Name: "target", Type: Int()},
		},
		ReturnType: ArrayOf(Int()),
	}
}

func TestValidateIO_Valid(t *testing.T) {
	assert.NoError(t, ValidateIO(twoSumIO()))

	single := IOConfig{InputFormat: FormatSingle, FunctionName: "isPalindrome", ReturnType: Boolean()}
	assert.NoError(t, ValidateIO(single))

	str := IOConfig{
		InputFormat:  FormatString,
		FunctionName: "reverse",
		Parameters:   []Parameter{{Name: "s", Type: String()}},
		ReturnType:   String(),
	}
	assert.NoError(t, ValidateIO(str))
}

func TestValidateIO_ListsEveryViolation(t *testing.T) {
	io := IOConfig{
		InputFormat:  FormatArray,
		FunctionName: "",
		Parameters: []Parameter{
			{Name: "a", Type: Int()},
			{Name: "a", Type: String()},
			{Name: "", Type: Int()},
			{Name: "v", Type: Void()},
		},
		ReturnType: Int(),
	}

	err := ValidateIO(io)
	require.Error(t, err)
	assert.True(t, errors.Is(err, herrors.ErrSchemaValidation))

	var he *herrors.Error
	require.True(t, errors.As(err, &he))
	assert.Len(t, he.Violations, 4)
	assert.Contains(t, he.Violations, "functionName is required")
	assert.Contains(t, he.Violations, "parameters[2].name is required")
	assert.Contains(t, he.Violations, `parameters[1].name "a" duplicates parameters[0]`)
	assert.Contains(t, he.Violations, "parameters[3].type cannot be void")
}

func TestValidateIO_FormatRules(t *testing.T) {
	tests := []struct {
		name string
		io   IOConfig
		want string
	}{
		{
			name: "array without parameters",
			io:   IOConfig{InputFormat: FormatArray, FunctionName: "f", ReturnType: Int()},
			want: "parameters must not be empty when inputFormat is array",
		},
		{
			name: "object without parameters",
			io:   IOConfig{InputFormat: FormatObject, FunctionName: "f", ReturnType: Int()},
			want: "parameters must not be empty when inputFormat is object",
		},
		{
			name: "unknown format",
			io:   IOConfig{InputFormat: "csv", FunctionName: "f", ReturnType: Int()},
			want: "inputFormat must be one of [array single object string]",
		},
		{
			name: "bad identifier",
			io:   IOConfig{InputFormat: FormatSingle, FunctionName: "two-sum", ReturnType: Int()},
			want: `functionName "two-sum" is not a valid identifier`,
		},
		{
			name: "missing return type",
			io:   IOConfig{InputFormat: FormatSingle, FunctionName: "f"},
			want: "returnType: type is required",
		},
		{
			name: "string format with int parameter",
			io: IOConfig{
				InputFormat:  FormatString,
				FunctionName: "f",
				Parameters:   []Parameter{{Name: "n", Type: Int()}},
				ReturnType:   Int(),
			},
			want: "parameters[0].type must be string when inputFormat is string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIO(tt.io)
			require.Error(t, err)
			var he *herrors.Error
			require.True(t, errors.As(err, &he))
			assert.Contains(t, he.Violations, tt.want)
		})
	}
}

func TestValidateExecutionConfig(t *testing.T) {
	cfg := ExecutionConfig{
		LanguageIDs: map[Target]int{Java: 0, "rust": 73},
		IO:          IOConfig{InputFormat: FormatArray, FunctionName: "f", ReturnType: Int()},
		Templates:   map[Target]WrapperTemplate{Go: {Version: "1"}},
		TimeoutMs:   -1,
	}

	err := ValidateExecutionConfig(cfg)
	require.Error(t, err)
	var he *herrors.Error
	require.True(t, errors.As(err, &he))
	assert.Equal(t, []string{
		"timeoutMs must be >= 0",
		"io.parameters must not be empty when inputFormat is array",
		"languageIds.java must be positive",
		"languageIds.rust: unknown target",
		"templates.go.source is required",
	}, he.Violations)
}
