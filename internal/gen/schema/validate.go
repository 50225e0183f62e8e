package schema

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	herrors "codemasti/pkg/errors"

	"github.com/go-playground/validator/v10"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// IsIdentifier reports whether s is usable as a function or variable name in every target
func IsIdentifier(s string) bool {
	return identifierPattern.MatchString(s)
}

// ValidateIO checks the IO invariants and returns a SchemaValidationError listing every violation
func ValidateIO(io IOConfig) error {
	violations := ioViolations(io, "")
	if len(violations) > 0 {
		return herrors.Validation(violations)
	}
	return nil
}

// ValidateExecutionConfig checks the IO block plus the per-target tables
func ValidateExecutionConfig(cfg ExecutionConfig) error {
	violations := structViolations(cfg, "")
	violations = append(violations, ioViolations(cfg.IO, "io.")...)

	for _, target := range sortedKeys(cfg.LanguageIDs) {
		if _, ok := DefaultLanguageIDs[target]; !ok {
			violations = append(violations, fmt.Sprintf("languageIds.%s: unknown target", target))
		} else if cfg.LanguageIDs[target] <= 0 {
			violations = append(violations, fmt.Sprintf("languageIds.%s must be positive", target))
		}
	}
	for _, target := range sortedKeys(cfg.Templates) {
		if _, ok := DefaultLanguageIDs[target]; !ok {
			violations = append(violations, fmt.Sprintf("templates.%s: unknown target", target))
		} else if strings.TrimSpace(cfg.Templates[target].Source) == "" {
			violations = append(violations, fmt.Sprintf("templates.%s.source is required", target))
		}
	}

	if len(violations) > 0 {
		return herrors.Validation(violations)
	}
	return nil
}

func sortedKeys[V any](m map[Target]V) []Target {
	keys := make([]Target, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func ioViolations(io IOConfig, prefix string) []string {
	violations := structViolations(io, prefix)

	switch io.InputFormat {
	case FormatArray, FormatObject:
		if len(io.Parameters) == 0 {
			violations = append(violations, fmt.Sprintf("%sparameters must not be empty when inputFormat is %s", prefix, io.InputFormat))
		}
	case FormatSingle:
		if len(io.Parameters) > 1 {
			violations = append(violations, fmt.Sprintf("%sparameters must declare at most one parameter when inputFormat is single", prefix))
		}
	case FormatString:
		if len(io.Parameters) > 1 {
			violations = append(violations, fmt.Sprintf("%sparameters must declare at most one parameter when inputFormat is string", prefix))
		} else if len(io.Parameters) == 1 && io.Parameters[0].Type.Kind != KindString && io.Parameters[0].Type.Check() == nil {
			violations = append(violations, fmt.Sprintf("%sparameters[0].type must be string when inputFormat is string", prefix))
		}
	}

	seen := make(map[string]int)
	for i, p := range io.Parameters {
		if p.Name != "" {
			if first, dup := seen[p.Name]; dup {
				violations = append(violations, fmt.Sprintf("%sparameters[%d].name %q duplicates parameters[%d]", prefix, i, p.Name, first))
			} else {
				seen[p.Name] = i
			}
		}
		if err := p.Type.Check(); err != nil {
			violations = append(violations, fmt.Sprintf("%sparameters[%d].type: %s", prefix, i, err))
		} else if p.Type.Kind == KindVoid {
			violations = append(violations, fmt.Sprintf("%sparameters[%d].type cannot be void", prefix, i))
		}
	}

	if err := io.ReturnType.Check(); err != nil {
		violations = append(violations, fmt.Sprintf("%sreturnType: %s", prefix, err))
	}
	return violations
}

// structViolations runs the tag rules and renders each failure as one violation line
func structViolations(s interface{}, prefix string) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	violations := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Namespace()
		// drop the root struct name
		if idx := strings.Index(field, "."); idx >= 0 {
			field = field[idx+1:]
		}
		// the IO block is validated on its own with its prefix
		if prefix == "" && strings.HasPrefix(field, "io.") {
			continue
		}
		violations = append(violations, prefix+describe(field, fe))
	}
	return violations
}

func describe(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "identifier":
		return fmt.Sprintf("%s %q is not a valid identifier", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %q", field, fe.Tag())
	}
}
