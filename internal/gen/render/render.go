// Package render substitutes slots into wrapper templates.
package render

import (
	"strings"

	"codemasti/internal/gen/schema"
	herrors "codemasti/pkg/errors"
)

// Placeholder names every wrapper template carries exactly once
const (
	UserCode     = "USER_CODE"
	TestInput    = "TEST_INPUT"
	FunctionName = "FUNCTION_NAME"
	InputFormat  = "INPUT_FORMAT"
	DynamicBlock = "DYNAMIC_INPUT_PARSING_AND_METHOD_CALL"
)

const (
	markerOpen  = "{{"
	markerClose = "}}"
)

// Placeholders returns the five placeholder names
func Placeholders() []string {
	return []string{UserCode, TestInput, FunctionName, InputFormat, DynamicBlock}
}

// Slots maps placeholder names to the text substituted for them
type Slots map[string]string

// Render substitutes every placeholder of tmpl once. The template is scanned a
// single time, so text coming from the slots is never searched for markers.
// escape is applied to TEST_INPUT; the dynamic block is indented to the
// column of its placeholder.
func Render(tmpl schema.WrapperTemplate, slots Slots, escape func(string) string) (string, error) {
	src := tmpl.Source
	seen := make(map[string]int)
	var out strings.Builder
	out.Grow(len(src) + len(slots[UserCode]) + len(slots[DynamicBlock]))

	for i := 0; i < len(src); {
		start := strings.Index(src[i:], markerOpen)
		if start < 0 {
			out.WriteString(src[i:])
			break
		}
		start += i

		name, end, ok := marker(src, start)
		if !ok {
			// not a marker, e.g. a nested initializer list
			out.WriteString(src[i : start+1])
			i = start + 1
			continue
		}

		out.WriteString(src[i:start])
		seen[name]++

		switch name {
		case TestInput:
			value := slots[name]
			if escape != nil {
				value = escape(value)
			}
			out.WriteString(value)
		case DynamicBlock:
			out.WriteString(indent(slots[name], lineIndent(src, start)))
		case UserCode, FunctionName, InputFormat:
			out.WriteString(slots[name])
		default:
			return "", herrors.Newf(herrors.TemplateIntegrity, "unknown placeholder %s%s%s", markerOpen, name, markerClose).
				WithDetail("placeholder", name).
				WithDetail("version", tmpl.Version)
		}
		i = end
	}

	var violations []string
	for _, name := range Placeholders() {
		switch seen[name] {
		case 1:
		case 0:
			violations = append(violations, "missing placeholder "+markerOpen+name+markerClose)
		default:
			violations = append(violations, "duplicated placeholder "+markerOpen+name+markerClose)
		}
	}
	if len(violations) > 0 {
		e := herrors.Newf(herrors.TemplateIntegrity, "template %q: %s", tmpl.Version, strings.Join(violations, "; "))
		return "", e.WithDetail("version", tmpl.Version)
	}
	return out.String(), nil
}

// Check reports the placeholder problems of a template without rendering it
func Check(tmpl schema.WrapperTemplate) error {
	_, err := Render(tmpl, nil, nil)
	return err
}

// marker parses {{NAME}} at start, NAME being upper-case letters and underscores
func marker(src string, start int) (string, int, bool) {
	j := start + len(markerOpen)
	k := j
	for k < len(src) && (src[k] == '_' || (src[k] >= 'A' && src[k] <= 'Z')) {
		k++
	}
	if k == j || !strings.HasPrefix(src[k:], markerClose) {
		return "", 0, false
	}
	return src[j:k], k + len(markerClose), true
}

// lineIndent returns the whitespace between the start of the line and pos,
// or "" when anything else precedes pos on that line
func lineIndent(src string, pos int) string {
	lineStart := strings.LastIndexByte(src[:pos], '\n') + 1
	prefix := src[lineStart:pos]
	if strings.TrimLeft(prefix, " \t") != "" {
		return ""
	}
	return prefix
}

func indent(block, prefix string) string {
	if prefix == "" || !strings.Contains(block, "\n") {
		return block
	}
	lines := strings.Split(block, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
