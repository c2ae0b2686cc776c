// Package awscompat bridges marshalled items to the AWS SDK's attribute
// value types, so encoded output can be handed straight to a DynamoDB
// client's PutItem input. The network client itself stays outside this
// module.
//
// The SDK's map members are plain Go maps, so key order is not carried
// across the bridge; DynamoDB itself attaches no meaning to it.
package awscompat

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdktypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/mcncl/dynomarshal/internal/errors"
	"github.com/mcncl/dynomarshal/internal/models"
)

// ToSDK converts an encoded item into the SDK's item shape.
func ToSDK(item *models.Item) (map[string]sdktypes.AttributeValue, error) {
	out := make(map[string]sdktypes.AttributeValue, item.Len())
	for _, pair := range item.Pairs() {
		av, err := ValueToSDK(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("attribute '%s': %w", pair.Key, err)
		}
		out[pair.Key] = av
	}
	return out, nil
}

// ValueToSDK converts one attribute value into its SDK counterpart.
func ValueToSDK(av models.AttributeValue) (sdktypes.AttributeValue, error) {
	switch v := av.(type) {
	case *models.MemberS:
		return &sdktypes.AttributeValueMemberS{Value: v.Value}, nil
	case *models.MemberN:
		return &sdktypes.AttributeValueMemberN{Value: v.Value}, nil
	case *models.MemberBOOL:
		return &sdktypes.AttributeValueMemberBOOL{Value: v.Value}, nil
	case *models.MemberNULL:
		return &sdktypes.AttributeValueMemberNULL{Value: v.Value}, nil
	case *models.MemberL:
		elems := make([]sdktypes.AttributeValue, 0, len(v.Value))
		for _, elem := range v.Value {
			converted, err := ValueToSDK(elem)
			if err != nil {
				return nil, err
			}
			elems = append(elems, converted)
		}
		return &sdktypes.AttributeValueMemberL{Value: elems}, nil
	case *models.MemberM:
		inner := make(map[string]sdktypes.AttributeValue, v.Value.Len())
		for _, pair := range v.Value.Pairs() {
			converted, err := ValueToSDK(pair.Value)
			if err != nil {
				return nil, fmt.Errorf("key '%s': %w", pair.Key, err)
			}
			inner[pair.Key] = converted
		}
		return &sdktypes.AttributeValueMemberM{Value: inner}, nil
	default:
		return nil, errors.NewTypeError(
			fmt.Sprintf("attribute value of type %T has no SDK equivalent", av),
			errors.ErrUnsupportedType,
		)
	}
}

// FromSDK converts an SDK item into an encoded item. SDK members outside
// the modelled set (binary and set types) are reported as unsupported
// rather than mapped lossily.
func FromSDK(item map[string]sdktypes.AttributeValue) (*models.Item, error) {
	out := models.NewItem()
	for key, av := range item {
		converted, err := ValueFromSDK(av)
		if err != nil {
			return nil, fmt.Errorf("attribute '%s': %w", key, err)
		}
		out.Set(key, converted)
	}
	return out, nil
}

// ValueFromSDK converts one SDK attribute value.
func ValueFromSDK(av sdktypes.AttributeValue) (models.AttributeValue, error) {
	switch v := av.(type) {
	case *sdktypes.AttributeValueMemberS:
		return &models.MemberS{Value: v.Value}, nil
	case *sdktypes.AttributeValueMemberN:
		return &models.MemberN{Value: v.Value}, nil
	case *sdktypes.AttributeValueMemberBOOL:
		return &models.MemberBOOL{Value: v.Value}, nil
	case *sdktypes.AttributeValueMemberNULL:
		return &models.MemberNULL{Value: v.Value}, nil
	case *sdktypes.AttributeValueMemberL:
		elems := make([]models.AttributeValue, 0, len(v.Value))
		for _, elem := range v.Value {
			converted, err := ValueFromSDK(elem)
			if err != nil {
				return nil, err
			}
			elems = append(elems, converted)
		}
		return &models.MemberL{Value: elems}, nil
	case *sdktypes.AttributeValueMemberM:
		inner := models.NewItem()
		for key, elem := range v.Value {
			converted, err := ValueFromSDK(elem)
			if err != nil {
				return nil, fmt.Errorf("key '%s': %w", key, err)
			}
			inner.Set(key, converted)
		}
		return &models.MemberM{Value: inner}, nil
	default:
		return nil, errors.NewTypeError(
			fmt.Sprintf("SDK attribute value of type %T is not modelled", av),
			errors.ErrUnsupportedType,
		)
	}
}

// MarshalAny marshals a plain Go value through the SDK's own
// attributevalue encoder, for callers already living on the SDK types.
func MarshalAny(v interface{}) (sdktypes.AttributeValue, error) {
	av, err := attributevalue.Marshal(v)
	if err != nil {
		return nil, errors.NewTypeError("SDK attributevalue marshal failed", err)
	}
	return av, nil
}

// UnmarshalAny is the inverse of MarshalAny.
func UnmarshalAny(av sdktypes.AttributeValue) (interface{}, error) {
	var out interface{}
	if err := attributevalue.Unmarshal(av, &out); err != nil {
		return nil, errors.NewTypeError("SDK attributevalue unmarshal failed", err)
	}
	return out, nil
}
