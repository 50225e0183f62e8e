package render

import (
	"embed"
	"fmt"

	"codemasti/internal/gen/schema"
)

// DefaultVersion is the version stamped on the built-in templates
const DefaultVersion = "builtin-1"

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Default returns the built-in wrapper template of a target
func Default(t schema.Target) (schema.WrapperTemplate, error) {
	source, err := templatesFS.ReadFile("templates/" + string(t) + ".tmpl")
	if err != nil {
		return schema.WrapperTemplate{}, fmt.Errorf("no default template for %s: %w", t, err)
	}
	return schema.WrapperTemplate{Version: DefaultVersion, Source: string(source)}, nil
}

// Resolve returns the template cfg carries for t, or the built-in one
func Resolve(cfg schema.ExecutionConfig, t schema.Target) (schema.WrapperTemplate, error) {
	if tmpl, ok := cfg.Templates[t]; ok && tmpl.Source != "" {
		return tmpl, nil
	}
	return Default(t)
}
