package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AttributeValue is the tagged union of the DynamoDB wire format. Every
// node in an encoded item is exactly one of the member types below, and
// serialises as a single-key JSON object whose key is the wire tag
// (S, N, BOOL, NULL, L or M).
//
// The member-per-tag shape follows the AWS SDK's attribute value types,
// with the difference that MemberM carries an ordered map so document key
// order survives encoding.
type AttributeValue interface {
	isAttributeValue()
}

// MemberS is a string attribute ({"S": "..."}).
type MemberS struct {
	Value string
}

// MemberN is a number attribute ({"N": "..."}). The payload is the
// number's decimal text form, as DynamoDB requires.
type MemberN struct {
	Value string
}

// MemberBOOL is a boolean attribute ({"BOOL": true|false}).
type MemberBOOL struct {
	Value bool
}

// MemberNULL is a null attribute ({"NULL": true}).
type MemberNULL struct {
	Value bool
}

// MemberL is a list attribute ({"L": [...]}).
type MemberL struct {
	Value []AttributeValue
}

// MemberM is a map attribute ({"M": {...}}), key order preserved.
type MemberM struct {
	Value *Item
}

func (*MemberS) isAttributeValue()    {}
func (*MemberN) isAttributeValue()    {}
func (*MemberBOOL) isAttributeValue() {}
func (*MemberNULL) isAttributeValue() {}
func (*MemberL) isAttributeValue()    {}
func (*MemberM) isAttributeValue()    {}

// Item is an insertion-ordered mapping from attribute name to
// AttributeValue. It is both the root of an encoded item and the payload
// of every MemberM node.
type Item struct {
	pairs []ItemPair
	index map[string]int
}

// ItemPair is one attribute of an Item.
type ItemPair struct {
	Key   string
	Value AttributeValue
}

// NewItem creates an empty item.
func NewItem() *Item {
	return &Item{index: make(map[string]int)}
}

// Set adds or replaces the attribute value for key. A new key is appended
// after all existing keys; an existing key keeps its position.
func (it *Item) Set(key string, value AttributeValue) {
	if i, ok := it.index[key]; ok {
		it.pairs[i].Value = value
		return
	}
	it.index[key] = len(it.pairs)
	it.pairs = append(it.pairs, ItemPair{Key: key, Value: value})
}

// Get returns the attribute value for key and whether it is present.
func (it *Item) Get(key string) (AttributeValue, bool) {
	if it == nil {
		return nil, false
	}
	i, ok := it.index[key]
	if !ok {
		return nil, false
	}
	return it.pairs[i].Value, true
}

// Len returns the number of attributes.
func (it *Item) Len() int {
	if it == nil {
		return 0
	}
	return len(it.pairs)
}

// Keys returns the attribute names in insertion order.
func (it *Item) Keys() []string {
	if it == nil {
		return nil
	}
	keys := make([]string, len(it.pairs))
	for i, p := range it.pairs {
		keys[i] = p.Key
	}
	return keys
}

// Pairs returns the attributes in insertion order. The returned slice is
// shared with the item and must not be modified.
func (it *Item) Pairs() []ItemPair {
	if it == nil {
		return nil
	}
	return it.pairs
}

// MarshalJSON writes the item as a JSON object with keys in insertion
// order. encoding/json's map marshalling sorts keys, so the object is
// built by hand.
func (it *Item) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range it.Pairs() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := marshalAttributeValue(p.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object of wrapped attribute values,
// preserving key order.
func (it *Item) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	parsed, err := decodeItem(dec)
	if err != nil {
		return err
	}
	*it = *parsed
	return nil
}

func marshalAttributeValue(av AttributeValue) ([]byte, error) {
	switch v := av.(type) {
	case *MemberS:
		return wrapTag("S", v.Value)
	case *MemberN:
		return wrapTag("N", v.Value)
	case *MemberBOOL:
		return wrapTag("BOOL", v.Value)
	case *MemberNULL:
		return wrapTag("NULL", v.Value)
	case *MemberL:
		var buf bytes.Buffer
		buf.WriteString(`{"L":[`)
		for i, elem := range v.Value {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := marshalAttributeValue(elem)
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteString("]}")
		return buf.Bytes(), nil
	case *MemberM:
		inner, err := v.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		buf.WriteString(`{"M":`)
		buf.Write(inner)
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case nil:
		return nil, fmt.Errorf("nil attribute value")
	default:
		return nil, fmt.Errorf("unknown attribute value type %T", av)
	}
}

func wrapTag(tag string, payload interface{}) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"`)
	buf.WriteString(tag)
	buf.WriteString(`":`)
	buf.Write(b)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON implementations so attribute values embedded in other
// structures (not just via Item) still serialise in wire form.
func (v *MemberS) MarshalJSON() ([]byte, error)    { return marshalAttributeValue(v) }
func (v *MemberN) MarshalJSON() ([]byte, error)    { return marshalAttributeValue(v) }
func (v *MemberBOOL) MarshalJSON() ([]byte, error) { return marshalAttributeValue(v) }
func (v *MemberNULL) MarshalJSON() ([]byte, error) { return marshalAttributeValue(v) }
func (v *MemberL) MarshalJSON() ([]byte, error)    { return marshalAttributeValue(v) }
func (v *MemberM) MarshalJSON() ([]byte, error)    { return marshalAttributeValue(v) }

func decodeItem(dec *json.Decoder) (*Item, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}
	item := NewItem()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		av, err := decodeAttributeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", key, err)
		}
		item.Set(key, av)
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return item, nil
}

func decodeAttributeValue(dec *json.Decoder) (AttributeValue, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected wrapped value, got %v", tok)
	}
	if !dec.More() {
		return nil, fmt.Errorf("empty wrapper object, expected one wire tag")
	}
	tagTok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	tag, ok := tagTok.(string)
	if !ok {
		return nil, fmt.Errorf("expected wire tag, got %v", tagTok)
	}

	var av AttributeValue
	switch tag {
	case "S":
		s, err := decodeString(dec)
		if err != nil {
			return nil, fmt.Errorf("tag S: %w", err)
		}
		av = &MemberS{Value: s}
	case "N":
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch n := tok.(type) {
		case string:
			av = &MemberN{Value: n}
		case json.Number:
			av = &MemberN{Value: n.String()}
		default:
			return nil, fmt.Errorf("tag N: expected numeric text, got %v", tok)
		}
	case "BOOL":
		b, err := decodeBool(dec)
		if err != nil {
			return nil, fmt.Errorf("tag BOOL: %w", err)
		}
		av = &MemberBOOL{Value: b}
	case "NULL":
		b, err := decodeBool(dec)
		if err != nil {
			return nil, fmt.Errorf("tag NULL: %w", err)
		}
		av = &MemberNULL{Value: b}
	case "L":
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '[' {
			return nil, fmt.Errorf("tag L: expected array, got %v", tok)
		}
		elems := []AttributeValue{}
		for dec.More() {
			elem, err := decodeAttributeValue(dec)
			if err != nil {
				return nil, fmt.Errorf("tag L: %w", err)
			}
			elems = append(elems, elem)
		}
		if _, err := dec.Token(); err != nil { // closing ']'
			return nil, err
		}
		av = &MemberL{Value: elems}
	case "M":
		inner, err := decodeItem(dec)
		if err != nil {
			return nil, fmt.Errorf("tag M: %w", err)
		}
		av = &MemberM{Value: inner}
	default:
		return nil, fmt.Errorf("unknown wire tag %q", tag)
	}

	if dec.More() {
		return nil, fmt.Errorf("wrapper for tag %q has more than one key", tag)
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return av, nil
}

func decodeString(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected string, got %v", tok)
	}
	return s, nil
}

func decodeBool(dec *json.Decoder) (bool, error) {
	tok, err := dec.Token()
	if err != nil {
		return false, err
	}
	b, ok := tok.(bool)
	if !ok {
		return false, fmt.Errorf("expected boolean, got %v", tok)
	}
	return b, nil
}
