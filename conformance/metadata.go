package conformance

import (
	"strings"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Phases a negative fixture may name. Any other phase (such as "runtime")
// lies past parsing, so such fixtures must parse successfully.
const (
	PhaseLex   = "lex"
	PhaseParse = "parse"
)

// Metadata is the YAML frontmatter of a fixture, written between "/*---"
// and "---*/".
type Metadata struct {
	Description string    `yaml:"description"`
	Features    []string  `yaml:"features"`
	Flags       []string  `yaml:"flags"`
	Negative    *Negative `yaml:"negative"`
}

// Negative marks a fixture that must fail.
type Negative struct {
	Phase string `yaml:"phase"`
	Type  string `yaml:"type"`
}

func expectsFailure(phase string) bool {
	return phase == PhaseLex || phase == PhaseParse
}

func parseMetadata(source string) (Metadata, error) {
	var meta Metadata

	startIdx := strings.Index(source, "/*---")
	if startIdx < 0 {
		return meta, nil
	}
	endIdx := strings.Index(source[startIdx:], "---*/")
	if endIdx < 0 {
		return meta, errors.New("unterminated frontmatter")
	}

	if err := yaml.Unmarshal([]byte(source[startIdx+5:startIdx+endIdx]), &meta); err != nil {
		return meta, errors.Wrap(err, "decoding frontmatter")
	}
	return meta, nil
}

var unsupportedFeatures = map[string]bool{
	"regexp":            true,
	"template":          true,
	"destructuring":     true,
	"jsx":               true,
	"arrow-function":    true,
	"let":               true,
	"const":             true,
	"class":             true,
	"object-literal":    true,
	"array-literal":     true,
	"function-expr":     true,
	"asi":               true,
	"strict-equality":   true,
	"labels":            true,
	"switch":            true,
	"do-while":          true,
	"try-catch":         true,
	"generators":        true,
	"async-functions":   true,
	"dynamic-import":    true,
	"import.meta":       true,
	"top-level-await":   true,
	"optional-chaining": true,
}

func isUnsupportedFeature(feat string) bool {
	return unsupportedFeatures[feat]
}
