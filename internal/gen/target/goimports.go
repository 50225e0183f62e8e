package target

import (
	"go/parser"
	"go/token"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var goPackageClause = regexp.MustCompile(`(?m)^package\s+\w+`)

// addGoImports inserts an import declaration for every path the program does
// not import yet, directly after the package clause
func addGoImports(source string, imports map[string]string) string {
	if len(imports) == 0 {
		return source
	}

	present := make(map[string]bool)
	insertAt := -1

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", source, parser.ImportsOnly)
	if err == nil {
		for _, imp := range file.Imports {
			if path, err := strconv.Unquote(imp.Path.Value); err == nil {
				present[path] = true
			}
		}
		insertAt = fset.Position(file.Name.End()).Offset
	} else {
		// fall back to text search when the program does not parse
		for path := range imports {
			if strings.Contains(source, strconv.Quote(path)) {
				present[path] = true
			}
		}
		if loc := goPackageClause.FindStringIndex(source); loc != nil {
			insertAt = loc[1]
		}
	}

	paths := make([]string, 0, len(imports))
	for path := range imports {
		if !present[path] {
			paths = append(paths, path)
		}
	}
	if len(paths) == 0 || insertAt < 0 {
		return source
	}
	sort.Strings(paths)

	var decl strings.Builder
	decl.WriteString("\n\nimport (\n")
	for _, path := range paths {
		decl.WriteString("\t")
		if alias := imports[path]; alias != "" {
			decl.WriteString(alias + " ")
		}
		decl.WriteString(strconv.Quote(path) + "\n")
	}
	decl.WriteString(")")
	return source[:insertAt] + decl.String() + source[insertAt:]
}

// splitGoImports removes a leading package clause and import declarations
// from candidate code, returning the remaining code and the imports it had
func splitGoImports(code string) (string, map[string]string) {
	src := code
	if _, err := parser.ParseFile(token.NewFileSet(), "", code, parser.PackageClauseOnly); err != nil {
		src = "package harness\n" + code
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", src, parser.ImportsOnly)
	if err != nil {
		return code, nil
	}

	imports := make(map[string]string)
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		alias := ""
		if imp.Name != nil {
			alias = imp.Name.Name
		}
		imports[path] = alias
	}

	end := fset.Position(file.Name.End()).Offset
	if n := len(file.Decls); n > 0 {
		end = fset.Position(file.Decls[n-1].End()).Offset
	}
	return strings.TrimLeft(src[end:], "\r\n"), imports
}
