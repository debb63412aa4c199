package validation

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Patterns shared by the form rules and the storage schema.
var (
	EmailPattern       = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	PhonePattern       = regexp.MustCompile(`^\d{10}$`)
	PincodePattern     = regexp.MustCompile(`^\d{6}$`)
	BankAccountPattern = regexp.MustCompile(`^\d{9,18}$`)
	IFSCPattern        = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
)

// Age bounds accepted for an employee.
const (
	MinAge        = 18
	MaxAge        = 60
	MinNameLength = 3
)

// Rule checks a single field value and returns a human-readable message, or ""
// when the value is acceptable.
type Rule func(value string) string

// Field is one entry of a Schema. A nil Rule accepts any value.
type Field struct {
	Path string
	Rule Rule
}

// Schema is an ordered catalogue of field paths and their rules. Nested fields
// use dotted paths such as "address.pincode".
type Schema struct {
	name   string
	fields []Field
	index  map[string]int
}

// NewSchema builds a schema from the given fields. Paths must be unique.
func NewSchema(name string, fields ...Field) *Schema {
	s := &Schema{
		name:   name,
		fields: fields,
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if _, dup := s.index[f.Path]; dup {
			panic("validation: duplicate field path " + f.Path + " in schema " + name)
		}
		s.index[f.Path] = i
	}
	return s
}

// Name returns the entity name the schema describes.
func (s *Schema) Name() string {
	return s.name
}

// Paths returns every field path in declaration order.
func (s *Schema) Paths() []string {
	paths := make([]string, len(s.fields))
	for i, f := range s.fields {
		paths[i] = f.Path
	}
	return paths
}

// Has reports whether path is part of the schema.
func (s *Schema) Has(path string) bool {
	_, ok := s.index[path]
	return ok
}

// Errors maps a field path to its validation message.
type Errors map[string]string

// Error joins the messages in path order so the value can travel as an error.
func (e Errors) Error() string {
	paths := make([]string, 0, len(e))
	for p := range e {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	parts := make([]string, len(paths))
	for i, p := range paths {
		parts[i] = p + ": " + e[p]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidateField evaluates the rule registered for path. Unknown paths and
// fields without a rule are accepted.
func ValidateField(s *Schema, path, value string) string {
	i, ok := s.index[path]
	if !ok || s.fields[i].Rule == nil {
		return ""
	}
	return s.fields[i].Rule(value)
}

// ValidateForm evaluates every field of the schema against values. Missing
// values are treated as empty strings. The form is valid iff the result is empty.
func ValidateForm(s *Schema, values map[string]string) Errors {
	errs := make(Errors)
	for _, f := range s.fields {
		if f.Rule == nil {
			continue
		}
		if msg := f.Rule(values[f.Path]); msg != "" {
			errs[f.Path] = msg
		}
	}
	return errs
}

// Rule constructors

// Chain runs rules in order and returns the first message.
func Chain(rules ...Rule) Rule {
	return func(v string) string {
		for _, r := range rules {
			if msg := r(v); msg != "" {
				return msg
			}
		}
		return ""
	}
}

// Required rejects values that are empty after trimming.
func Required(msg string) Rule {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return msg
		}
		return ""
	}
}

// Present rejects only the empty string.
func Present(msg string) Rule {
	return func(v string) string {
		if v == "" {
			return msg
		}
		return ""
	}
}

// MinLength rejects values shorter than n characters.
func MinLength(n int, msg string) Rule {
	return func(v string) string {
		if utf8.RuneCountInString(v) < n {
			return msg
		}
		return ""
	}
}

// Matches rejects values that do not match re.
func Matches(re *regexp.Regexp, msg string) Rule {
	return func(v string) string {
		if !re.MatchString(v) {
			return msg
		}
		return ""
	}
}

// Optional skips rule when the value is empty.
func Optional(rule Rule) Rule {
	return func(v string) string {
		if v == "" {
			return ""
		}
		return rule(v)
	}
}

// Number rejects values that do not parse as a number, then checks the parsed
// value with each bound in order.
func Number(msg string, bounds ...Bound) Rule {
	return func(v string) string {
		n, ok := ParseNumber(v)
		if !ok {
			return msg
		}
		for _, b := range bounds {
			if m := b(n); m != "" {
				return m
			}
		}
		return ""
	}
}

// Bound checks a parsed number.
type Bound func(n float64) string

// AtLeast rejects numbers below min.
func AtLeast(min float64, msg string) Bound {
	return func(n float64) string {
		if n < min {
			return msg
		}
		return ""
	}
}

// Whole rejects numbers with a fractional part.
func Whole(msg string) Bound {
	return func(n float64) string {
		if n != math.Trunc(n) {
			return msg
		}
		return ""
	}
}

// AtMost rejects numbers above max.
func AtMost(max float64, msg string) Bound {
	return func(n float64) string {
		if n > max {
			return msg
		}
		return ""
	}
}

// ParseNumber parses a form value as a decimal number. Surrounding whitespace
// is ignored; NaN is not a number.
func ParseNumber(v string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}
