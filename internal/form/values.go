package form

import "regexp"

// numericPattern is the lenient input filter: digits with at most one
// decimal point. It deliberately accepts "" and ".".
var numericPattern = regexp.MustCompile(`^[0-9]*\.?[0-9]*$`)

// Values holds the raw string for each field. It is a value type: every
// mutation returns a new Values and the receiver is never modified.
type Values struct {
	raw [NumFields]string
}

// Empty returns a Values with all seven fields blank.
func Empty() Values {
	return Values{}
}

// Accepts reports whether raw passes the input filter.
func Accepts(raw string) bool {
	return raw == "" || numericPattern.MatchString(raw)
}

// Get returns the raw string stored for f. Unknown fields read as "".
func (v Values) Get(f Field) string {
	i := indexOf(f)
	if i < 0 {
		return ""
	}
	return v.raw[i]
}

// Update returns a copy of v with f set to raw. When raw fails the input
// filter or f is unknown, v is returned unchanged and ok is false.
func (v Values) Update(f Field, raw string) (Values, bool) {
	i := indexOf(f)
	if i < 0 || !Accepts(raw) {
		return v, false
	}
	v.raw[i] = raw
	return v, true
}

// Reset returns all seven fields to empty.
func (v Values) Reset() Values {
	return Empty()
}

// Map returns a field-name keyed copy of the raw strings.
func (v Values) Map() map[Field]string {
	m := make(map[Field]string, NumFields)
	for i, s := range specs {
		m[s.Field] = v.raw[i]
	}
	return m
}

// IsEmpty reports whether every field is blank.
func (v Values) IsEmpty() bool {
	return v == Values{}
}
