package wizard

import "strings"

// Field accessors tolerate both native Go types and the types produced by
// JSON decoding (float64 for every number, []any for every list).

// StringField returns the named field as a trimmed-preserving string, or
// "" if absent or not a string.
func StringField(f Fields, key string) string {
	s, _ := f[key].(string)
	return s
}

// NumberField returns the named field as a float64. Ints stored by Go
// callers and float64s stored by the JSON decoder both work.
func NumberField(f Fields, key string) float64 {
	switch v := f[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return 0
}

// BoolField returns the named field as a bool, false if absent.
func BoolField(f Fields, key string) bool {
	b, _ := f[key].(bool)
	return b
}

// ListField returns the named field as a string slice. JSON-decoded
// []any values are converted element-wise; non-string elements dropped.
func ListField(f Fields, key string) []string {
	switch v := f[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// MinLength gates on a string field having at least n characters after
// trimming surrounding whitespace.
func MinLength(key string, n int) Predicate {
	return func(f Fields) bool {
		return len(strings.TrimSpace(StringField(f, key))) >= n
	}
}

// NonEmpty gates on a string field being present and non-blank.
func NonEmpty(key string) Predicate {
	return MinLength(key, 1)
}

// Positive gates on a numeric field being present AND greater than zero.
// Zero is rejected: a numeric input left at its default is treated as
// absent (years of experience, hourly rate).
func Positive(key string) Predicate {
	return func(f Fields) bool {
		return NumberField(f, key) > 0
	}
}

// NonEmptyList gates on a list field having at least one element.
func NonEmptyList(key string) Predicate {
	return func(f Fields) bool {
		return len(ListField(f, key)) > 0
	}
}

// AllTrue gates on every named boolean field being true simultaneously.
// Used for consent checkboxes on final steps.
func AllTrue(keys ...string) Predicate {
	return func(f Fields) bool {
		for _, k := range keys {
			if !BoolField(f, k) {
				return false
			}
		}
		return true
	}
}

// All combines predicates; the gate holds only when every predicate holds.
func All(preds ...Predicate) Predicate {
	return func(f Fields) bool {
		for _, p := range preds {
			if !p(f) {
				return false
			}
		}
		return true
	}
}
