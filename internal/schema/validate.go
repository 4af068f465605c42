package schema

import (
	"fmt"
	"math"

	apperrors "github.com/DanieleFedeli/lyra/pkg/errors"
)

// ValidateDocument checks that doc conforms to s: every key present in doc
// must exist in s, leaf types must match the document value's runtime
// type, and nested objects recurse. A key in doc that s does not declare is
// InvalidDocSchema, as is a leaf whose value has the wrong type or, for a
// number leaf, is not finite.
//
// The original recursion this is modeled on discarded a nested failure and
// kept validating sibling fields; that is fixed here — a failure anywhere
// in the tree propagates immediately.
func ValidateDocument(doc map[string]any, s Schema) error {
	return validateLevel(doc, s, "")
}

func validateLevel(doc map[string]any, s Schema, prefix string) error {
	for field, value := range doc {
		path := field
		if prefix != "" {
			path = prefix + "." + field
		}
		node, ok := s[field]
		if !ok {
			return apperrors.InvalidDocSchema(fmt.Sprintf("unknown field: %s", path))
		}
		if err := validateValue(value, node, path); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(value any, node Node, path string) error {
	switch node.Kind {
	case KindObject:
		nested, ok := value.(map[string]any)
		if !ok {
			return apperrors.InvalidDocSchema(fmt.Sprintf("%s: expected an object, got %T", path, value))
		}
		return validateLevel(nested, node.Children, path)

	case KindText:
		if _, ok := value.(string); !ok {
			return apperrors.InvalidDocSchema(fmt.Sprintf("%s: expected text, got %T", path, value))
		}
		return nil

	case KindNumber:
		n, ok := asFloat64(value)
		if !ok {
			return apperrors.InvalidDocSchema(fmt.Sprintf("%s: expected a number, got %T", path, value))
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return apperrors.InvalidDocSchema(fmt.Sprintf("%s: number must be finite", path))
		}
		return nil

	case KindBoolean:
		if _, ok := value.(bool); !ok {
			return apperrors.InvalidDocSchema(fmt.Sprintf("%s: expected a boolean, got %T", path, value))
		}
		return nil

	default:
		return apperrors.InvalidDocSchema(fmt.Sprintf("%s: unrecognized schema kind", path))
	}
}

// asFloat64 accepts any of Go's numeric literal types, since a document
// built by hand in Go code may use int, and one decoded from JSON will use
// float64.
func asFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
