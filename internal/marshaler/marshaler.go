// Package marshaler converts a dynamic document into a DynamoDB
// marshalled item, tracking how deeply each top-level attribute nests
// and enforcing a configurable nesting ceiling so adversarial or
// mistakenly-deep input cannot recurse without bound.
package marshaler

import (
	"fmt"

	"github.com/mcncl/dynomarshal/internal/classifier"
	"github.com/mcncl/dynomarshal/internal/errors"
	"github.com/mcncl/dynomarshal/internal/models"
)

// Nesting level bounds. The default matches the data this tool was built
// for, where attributes should never exceed three levels of nesting.
const (
	DefaultMaxNestingLevels = 3
	MinNestingLevels        = 1
	MaxNestingLevelsLimit   = 10
)

// Options configures a marshalling run.
type Options struct {
	// MaxNestingLevels is the maximum number of container boundaries
	// (lists or maps) any single top-level attribute may cross. Zero
	// means DefaultMaxNestingLevels; values outside [1, 10] are
	// rejected rather than clamped.
	MaxNestingLevels int
}

// maxNestingLevels validates the configured ceiling and applies the
// default.
func (o Options) maxNestingLevels() (int, error) {
	levels := o.MaxNestingLevels
	if levels == 0 {
		return DefaultMaxNestingLevels, nil
	}
	if levels < MinNestingLevels || levels > MaxNestingLevelsLimit {
		return 0, errors.NewConfigError(
			fmt.Sprintf("expected an integer between %d and %d inclusive for max nesting levels, received %d",
				MinNestingLevels, MaxNestingLevelsLimit, levels),
			errors.ErrInvalidMaxNesting,
		)
	}
	return levels, nil
}

// Marshal converts the document into a DynamoDB item and reports the
// maximum nesting depth reached by each top-level attribute. A scalar
// attribute has depth 0; each list or map boundary crossed adds one.
//
// The call is pure: it neither mutates the document nor retains state,
// so independent documents may be marshalled concurrently. On any
// failure no partial item or level map is returned.
func Marshal(doc *models.Document, opts Options) (models.Result, error) {
	limit, err := opts.maxNestingLevels()
	if err != nil {
		return models.Result{}, err
	}

	item := models.NewItem()
	levels := make(map[string]int, doc.Len())
	for _, pair := range doc.Pairs() {
		maxSeen := 0
		av, err := encodeValue(pair.Value, 0, &maxSeen, pair.Key, limit)
		if err != nil {
			return models.Result{}, err
		}
		item.Set(pair.Key, av)
		levels[pair.Key] = maxSeen
	}

	return models.Result{Item: item, AttributeLevels: levels}, nil
}

// MarshalGo is a convenience for callers holding plain Go values: the
// map is classified into a Document (keys sorted, see classifier) and
// then marshalled.
func MarshalGo(item map[string]interface{}, opts Options) (models.Result, error) {
	doc, err := classifier.ClassifyDocument(item)
	if err != nil {
		return models.Result{}, err
	}
	return Marshal(doc, opts)
}

// encodeValue is the recursive descent. depth is the number of container
// boundaries crossed so far; maxSeen accumulates the maximum across all
// branches of the current top-level attribute. The ceiling is checked
// before entering a container, so a structure needing exactly limit
// levels passes and one needing limit+1 fails.
func encodeValue(v models.Value, depth int, maxSeen *int, topKey string, limit int) (models.AttributeValue, error) {
	if depth > *maxSeen {
		*maxSeen = depth
	}

	switch val := v.(type) {
	case models.Null:
		return &models.MemberNULL{Value: true}, nil
	case models.Bool:
		return &models.MemberBOOL{Value: bool(val)}, nil
	case models.Number:
		return &models.MemberN{Value: string(val)}, nil
	case models.String:
		return &models.MemberS{Value: string(val)}, nil
	case models.List:
		if err := checkDepth(depth, topKey, limit); err != nil {
			return nil, err
		}
		if depth+1 > *maxSeen {
			*maxSeen = depth + 1
		}
		elems := make([]models.AttributeValue, 0, len(val))
		for _, elem := range val {
			encoded, err := encodeValue(elem, depth+1, maxSeen, topKey, limit)
			if err != nil {
				return nil, err
			}
			elems = append(elems, encoded)
		}
		return &models.MemberL{Value: elems}, nil
	case *models.Map:
		if err := checkDepth(depth, topKey, limit); err != nil {
			return nil, err
		}
		if depth+1 > *maxSeen {
			*maxSeen = depth + 1
		}
		inner := models.NewItem()
		for _, pair := range val.Pairs() {
			encoded, err := encodeValue(pair.Value, depth+1, maxSeen, topKey, limit)
			if err != nil {
				return nil, err
			}
			inner.Set(pair.Key, encoded)
		}
		return &models.MemberM{Value: inner}, nil
	case nil:
		return &models.MemberNULL{Value: true}, nil
	default:
		// Unreachable for values built through models or the
		// classifier; guards against foreign Value implementations.
		return nil, errors.NewTypeError(
			fmt.Sprintf("value of type %T at attribute '%s' cannot be represented", v, topKey),
			errors.ErrUnsupportedType,
		)
	}
}

func checkDepth(depth int, topKey string, limit int) error {
	if depth+1 > limit {
		return errors.NewDepthError(
			fmt.Sprintf("item key '%s' exceeds maximum nesting levels of %d", topKey, limit),
			errors.ErrNestingExceeded,
		)
	}
	return nil
}

// Unmarshal converts a DynamoDB item back into a dynamic document,
// the inverse of Marshal. NULL attributes come back as models.Null
// regardless of the wire payload's boolean.
func Unmarshal(item *models.Item) (*models.Document, error) {
	doc := models.NewMap()
	for _, pair := range item.Pairs() {
		val, err := decodeValue(pair.Value, pair.Key)
		if err != nil {
			return nil, err
		}
		doc.Set(pair.Key, val)
	}
	return doc, nil
}

func decodeValue(av models.AttributeValue, path string) (models.Value, error) {
	switch v := av.(type) {
	case *models.MemberS:
		return models.String(v.Value), nil
	case *models.MemberN:
		return models.Number(v.Value), nil
	case *models.MemberBOOL:
		return models.Bool(v.Value), nil
	case *models.MemberNULL:
		return models.Null{}, nil
	case *models.MemberL:
		list := make(models.List, 0, len(v.Value))
		for i, elem := range v.Value {
			decoded, err := decodeValue(elem, fmt.Sprintf("%s.%d", path, i))
			if err != nil {
				return nil, err
			}
			list = append(list, decoded)
		}
		return list, nil
	case *models.MemberM:
		obj := models.NewMap()
		for _, pair := range v.Value.Pairs() {
			decoded, err := decodeValue(pair.Value, path+"."+pair.Key)
			if err != nil {
				return nil, err
			}
			obj.Set(pair.Key, decoded)
		}
		return obj, nil
	default:
		return nil, errors.NewTypeError(
			fmt.Sprintf("attribute value of type %T at '%s' cannot be decoded", av, path),
			errors.ErrUnsupportedType,
		)
	}
}
