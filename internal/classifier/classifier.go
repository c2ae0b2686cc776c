// Package classifier converts arbitrary Go values into the closed Value
// union used by the marshaller. It is the runtime type-dispatch layer:
// once a value is inside the union, everything downstream is a
// compiler-checked match.
package classifier

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/mcncl/dynomarshal/internal/errors"
	"github.com/mcncl/dynomarshal/internal/models"
)

// Classify converts a single Go value into a models.Value.
//
// Kinds are checked in a fixed priority: null, boolean, number, string,
// list, map. The boolean case sits above the numeric ones so languages
// and decoders where booleans satisfy integer predicates cannot
// misclassify them; in Go the type switch makes the order moot for
// correctness but the cases are kept in the documented priority anyway.
//
// Map keys are emitted in sorted order: Go map iteration order is
// random, and classification must be deterministic. Callers that need a
// specific key order should build a models.Map directly or parse JSON
// text, which preserves document order.
func Classify(v interface{}) (models.Value, error) {
	return classify(v, "")
}

// ClassifyDocument converts a map of top-level attributes into an
// ordered Document, keys sorted for determinism.
func ClassifyDocument(item map[string]interface{}) (*models.Document, error) {
	doc := models.NewMap()
	for _, key := range sortedKeys(item) {
		val, err := classify(item[key], key)
		if err != nil {
			return nil, err
		}
		doc.Set(key, val)
	}
	return doc, nil
}

func classify(v interface{}, path string) (models.Value, error) {
	switch val := v.(type) {
	case nil:
		return models.Null{}, nil
	case models.Value:
		return val, nil
	case bool:
		return models.Bool(val), nil
	case json.Number:
		return models.NumberFromJSON(val), nil
	case int:
		return models.Number(strconv.FormatInt(int64(val), 10)), nil
	case int8:
		return models.Number(strconv.FormatInt(int64(val), 10)), nil
	case int16:
		return models.Number(strconv.FormatInt(int64(val), 10)), nil
	case int32:
		return models.Number(strconv.FormatInt(int64(val), 10)), nil
	case int64:
		return models.Number(strconv.FormatInt(val, 10)), nil
	case uint:
		return models.Number(strconv.FormatUint(uint64(val), 10)), nil
	case uint8:
		return models.Number(strconv.FormatUint(uint64(val), 10)), nil
	case uint16:
		return models.Number(strconv.FormatUint(uint64(val), 10)), nil
	case uint32:
		return models.Number(strconv.FormatUint(uint64(val), 10)), nil
	case uint64:
		return models.Number(strconv.FormatUint(val, 10)), nil
	case float32:
		// 'f' keeps the decimal form; DynamoDB number text should not
		// carry an exponent.
		return models.Number(strconv.FormatFloat(float64(val), 'f', -1, 32)), nil
	case float64:
		return models.Number(strconv.FormatFloat(val, 'f', -1, 64)), nil
	case string:
		return models.String(val), nil
	case []interface{}:
		list := make(models.List, 0, len(val))
		for i, elem := range val {
			converted, err := classify(elem, childPath(path, strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
			list = append(list, converted)
		}
		return list, nil
	case map[string]interface{}:
		obj := models.NewMap()
		for _, key := range sortedKeys(val) {
			converted, err := classify(val[key], childPath(path, key))
			if err != nil {
				return nil, err
			}
			obj.Set(key, converted)
		}
		return obj, nil
	default:
		where := path
		if where == "" {
			where = "(root)"
		}
		return nil, errors.NewTypeError(
			fmt.Sprintf("value of type %T at attribute '%s' cannot be represented", v, where),
			errors.ErrUnsupportedType,
		)
	}
}

func childPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
