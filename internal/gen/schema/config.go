package schema

import "strings"

// InputFormat is the convention mapping raw test input onto the parameter list
type InputFormat string

const (
	FormatArray  InputFormat = "array"  // positional spread
	FormatSingle InputFormat = "single" // one argument
	FormatObject InputFormat = "object" // named fields located by key
	FormatString InputFormat = "string" // whole raw input as one string
)

// Target is a supported harness language
type Target string

const (
	JavaScript Target = "javascript"
	Python     Target = "python"
	Java       Target = "java"
	Cpp        Target = "cpp"
	Go         Target = "go"
)

// Targets returns every supported target in a stable order
func Targets() []Target {
	return []Target{JavaScript, Python, Java, Cpp, Go}
}

var targetAliases = map[string]Target{
	"javascript": JavaScript,
	"js":         JavaScript,
	"node":       JavaScript,
	"python":     Python,
	"python3":    Python,
	"py":         Python,
	"java":       Java,
	"cpp":        Cpp,
	"c++":        Cpp,
	"go":         Go,
	"golang":     Go,
}

// ParseTarget resolves a language selector to a Target
func ParseTarget(s string) (Target, bool) {
	t, ok := targetAliases[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// IsDynamic reports whether the target parses input at run time inside its template
func (t Target) IsDynamic() bool {
	return t == JavaScript || t == Python
}

// DefaultLanguageIDs are the execution backend ids (Judge0 CE numbering)
// used when a config does not name one for a target
var DefaultLanguageIDs = map[Target]int{
	JavaScript: 63,
	Python:     71,
	Java:       62,
	Cpp:        54,
	Go:         60,
}

// Parameter is one declared function argument. Its position is the calling order.
type Parameter struct {
	Name        string `json:"name" validate:"required,identifier"`
	Type        Type   `json:"type" validate:"-"`
	Description string `json:"description,omitempty"`
}

// IOConfig is a problem's declared function signature
type IOConfig struct {
	InputFormat  InputFormat `json:"inputFormat" validate:"required,oneof=array single object string"`
	FunctionName string      `json:"functionName" validate:"required,identifier"`
	Parameters   []Parameter `json:"parameters" validate:"dive"`
	ReturnType   Type        `json:"returnType" validate:"-"`
}

// WrapperTemplate is the base program for one target, holding the five placeholders
type WrapperTemplate struct {
	Version string `json:"version,omitempty"`
	Source  string `json:"source"`
}

// ExecutionConfig is the per-problem document the generator reads
type ExecutionConfig struct {
	LanguageIDs   map[Target]int             `json:"languageIds,omitempty"`
	IO            IOConfig                   `json:"io"`
	Templates     map[Target]WrapperTemplate `json:"templates,omitempty"`
	TimeoutMs     int                        `json:"timeoutMs,omitempty" validate:"gte=0"`
	MemoryLimitKb int                        `json:"memoryLimitKb,omitempty" validate:"gte=0"`
}

// LanguageID returns the backend id for a target, falling back to the default table
func (c ExecutionConfig) LanguageID(t Target) int {
	if id, ok := c.LanguageIDs[t]; ok && id > 0 {
		return id
	}
	return DefaultLanguageIDs[t]
}

// TestCase is one literal input/output pair
type TestCase struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

// GeneratedProgram is the finished harness handed to the execution backend
type GeneratedProgram struct {
	SourceText       string `json:"sourceText"`
	TargetLanguageID int    `json:"targetLanguageId"`
	Target           Target `json:"target"`
	TemplateVersion  string `json:"templateVersion,omitempty"`
}
