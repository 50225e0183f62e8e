package tokenizer

import (
	"errors"
	"testing"

	herrors "codemasti/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTopLevel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"two sum", "[[2,7,11,15],9]", []string{"[2,7,11,15]", "9"}},
		{"whitespace", "  [ 1 , 2 ,3 ] ", []string{"1", "2", "3"}},
		{"empty list", "[]", []string{}},
		{"bare scalar", "42", []string{"42"}},
		{"quoted scalar", `"racecar"`, []string{`"racecar"`}},
		{"comma in string", `["a,b","c"]`, []string{`"a,b"`, `"c"`}},
		{"escaped quote", `["say \"hi\", ok",1]`, []string{`"say \"hi\", ok"`, "1"}},
		{"bracket in string", `["]",1]`, []string{`"]"`, "1"}},
		{"nested object", `[{"a":[1,2]},true]`, []string{`{"a":[1,2]}`, "true"}},
		{"object scalar", `{"a":1,"b":2}`, []string{`{"a":1,"b":2}`}},
		{"deep nesting", "[[[1],[2,3]],[]]", []string{"[[1],[2,3]]", "[]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitTopLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitTopLevel_Malformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"unbalanced", "[1,2"},
		{"mismatched", "[1,2}"},
		{"extra closer", "[1,2]]"},
		{"trailing text", "[1,2] 3"},
		{"unterminated string", `["abc,1]`},
		{"empty element", "[1,,2]"},
		{"trailing comma", "[1,2,]"},
		{"leading comma", "[,1]"},
		{"stray closer in scalar", "12]"},
		{"empty input", "   "},
		{"text after string", `"abc"def`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitTopLevel(tt.in)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(err, herrors.ErrInputParse), "got %v", err)
		})
	}
}

func TestSplitArrayLiteral(t *testing.T) {
	got, err := SplitArrayLiteral("[2,7,11,15]")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "7", "11", "15"}, got)

	_, err = SplitArrayLiteral("9")
	assert.True(t, errors.Is(err, herrors.ErrInputParse))
}

func TestSplitObjectLiteral(t *testing.T) {
	fields, err := SplitObjectLiteral(`{"nums": [1, 2], target: 9, "label":"a:b"}`)
	require.NoError(t, err)
	assert.Equal(t, []Field{
		{Key: "nums", Value: "[1, 2]"},
		{Key: "target", Value: "9"},
		{Key: "label", Value: `"a:b"`},
	}, fields)

	v, ok := Lookup(fields, "target")
	assert.True(t, ok)
	assert.Equal(t, "9", v)

	_, ok = Lookup(fields, "missing")
	assert.False(t, ok)
}

func TestSplitObjectLiteral_Malformed(t *testing.T) {
	for _, in := range []string{`[1]`, `{"a" 1}`, `{"a":}`, `{a}`, `{"a":1`} {
		_, err := SplitObjectLiteral(in)
		assert.True(t, errors.Is(err, herrors.ErrInputParse), in)
	}
}

func TestUnquote(t *testing.T) {
	s, err := Unquote(`"line\nbreak é \"q\""`)
	require.NoError(t, err)
	assert.Equal(t, "line\nbreak é \"q\"", s)

	_, err = Unquote("abc")
	assert.Error(t, err)

	_, err = Unquote(`"bad \x"`)
	assert.True(t, errors.Is(err, herrors.ErrInputParse))
}
