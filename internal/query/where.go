package query

import (
	"fmt"

	"github.com/DanieleFedeli/lyra/internal/numindex"
	"github.com/DanieleFedeli/lyra/internal/schema"
	apperrors "github.com/DanieleFedeli/lyra/pkg/errors"
)

// BooleanFilter is one normalized boolean leaf constraint from a `where`
// clause.
type BooleanFilter struct {
	Path  string
	Value bool
}

// NumericFilter is one normalized numeric leaf constraint from a `where`
// clause — a structured type, never a serialized "path.op.value" string.
type NumericFilter struct {
	Path   string
	Op     numindex.Operator
	Target float64
}

// Where is a `where` clause normalized into two bags, one per leaf kind.
type Where struct {
	Boolean []BooleanFilter
	Numeric []NumericFilter
}

var numericOperators = map[string]numindex.Operator{
	string(numindex.LessThan):      numindex.LessThan,
	string(numindex.LessOrEqual):   numindex.LessOrEqual,
	string(numindex.Equal):         numindex.Equal,
	string(numindex.GreaterThan):   numindex.GreaterThan,
	string(numindex.GreaterOrEqual): numindex.GreaterOrEqual,
}

// parseWhere normalizes a raw `where` object — a map paralleling the
// schema, booleans as bare values and numeric leaves as a single-key
// {op: target} object — into a Where. Any field not present (or of the
// wrong kind) in s, any numeric leaf with other than exactly one
// comparison key, or any key outside the enumerated operator set is
// InvalidQueryParams.
func parseWhere(raw map[string]any, s schema.Schema) (Where, error) {
	var w Where
	if err := walkWhere(raw, s, "", &w); err != nil {
		return Where{}, err
	}
	return w, nil
}

func walkWhere(raw map[string]any, s schema.Schema, prefix string, w *Where) error {
	for field, value := range raw {
		path := field
		if prefix != "" {
			path = prefix + "." + field
		}
		node, ok := s[field]
		if !ok {
			return apperrors.InvalidQueryParams(fmt.Sprintf("%s: not a field of the schema", path))
		}

		switch node.Kind {
		case schema.KindObject:
			nested, ok := value.(map[string]any)
			if !ok {
				return apperrors.InvalidQueryParams(fmt.Sprintf("%s: expected a nested where object", path))
			}
			if err := walkWhere(nested, node.Children, path, w); err != nil {
				return err
			}

		case schema.KindBoolean:
			b, ok := value.(bool)
			if !ok {
				return apperrors.InvalidQueryParams(fmt.Sprintf("%s: expected a boolean", path))
			}
			w.Boolean = append(w.Boolean, BooleanFilter{Path: path, Value: b})

		case schema.KindNumber:
			filter, err := parseNumericFilter(path, value)
			if err != nil {
				return err
			}
			w.Numeric = append(w.Numeric, filter)

		default:
			return apperrors.InvalidQueryParams(fmt.Sprintf("%s: only boolean and number fields can be filtered", path))
		}
	}
	return nil
}

func parseNumericFilter(path string, value any) (NumericFilter, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return NumericFilter{}, apperrors.InvalidQueryParams(
			fmt.Sprintf("%s: expected an object with exactly one comparison operator", path))
	}
	if len(obj) != 1 {
		return NumericFilter{}, apperrors.InvalidQueryParams(
			fmt.Sprintf("%s: expected exactly one comparison operator, got %d", path, len(obj)))
	}
	for key, target := range obj {
		op, ok := numericOperators[key]
		if !ok {
			return NumericFilter{}, apperrors.InvalidQueryParams(fmt.Sprintf("%s: unknown operator %q", path, key))
		}
		n, ok := asFloat64(target)
		if !ok {
			return NumericFilter{}, apperrors.InvalidQueryParams(fmt.Sprintf("%s: comparison target must be a number", path))
		}
		return NumericFilter{Path: path, Op: op, Target: n}, nil
	}
	panic("unreachable")
}

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
