package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_PreservesInsertionOrder(t *testing.T) {
	m := NewMap()
	m.Set("zebra", String("z"))
	m.Set("apple", String("a"))
	m.Set("mango", String("m"))

	assert.Equal(t, []string{"zebra", "apple", "mango"}, m.Keys())
}

func TestMap_SetExistingKeyKeepsPosition(t *testing.T) {
	m := NewMap()
	m.Set("first", Number("1"))
	m.Set("second", Number("2"))
	m.Set("first", Number("10"))

	assert.Equal(t, []string{"first", "second"}, m.Keys())
	val, ok := m.Get("first")
	require.True(t, ok)
	assert.Equal(t, Number("10"), val)
}

func TestMap_GetMissingKey(t *testing.T) {
	m := NewMap()
	m.Set("present", Bool(true))

	_, ok := m.Get("absent")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestItem_MarshalJSON_WireShape(t *testing.T) {
	inner := NewItem()
	inner.Set("hello", &MemberS{Value: "moon"})

	item := NewItem()
	item.Set("pk", &MemberS{Value: "pk"})
	item.Set("count", &MemberN{Value: "1.2"})
	item.Set("flag", &MemberBOOL{Value: true})
	item.Set("missing", &MemberNULL{Value: true})
	item.Set("list", &MemberL{Value: []AttributeValue{
		&MemberN{Value: "1"},
		&MemberS{Value: "2"},
	}})
	item.Set("obj", &MemberM{Value: inner})

	raw, err := json.Marshal(item)
	require.NoError(t, err)

	// Key order is insertion order, so the output is byte-stable.
	expected := `{"pk":{"S":"pk"},"count":{"N":"1.2"},"flag":{"BOOL":true},"missing":{"NULL":true},` +
		`"list":{"L":[{"N":"1"},{"S":"2"}]},"obj":{"M":{"hello":{"S":"moon"}}}}`
	assert.Equal(t, expected, string(raw))
}

func TestItem_MarshalJSON_EmptyContainers(t *testing.T) {
	item := NewItem()
	item.Set("emptyList", &MemberL{Value: []AttributeValue{}})
	item.Set("emptyMap", &MemberM{Value: NewItem()})

	raw, err := json.Marshal(item)
	require.NoError(t, err)
	assert.Equal(t, `{"emptyList":{"L":[]},"emptyMap":{"M":{}}}`, string(raw))
}

func TestItem_UnmarshalJSON_RoundTrip(t *testing.T) {
	wire := `{"pk":{"S":"pk"},"nested":{"M":{"zz":{"N":"42"},"aa":{"L":[{"BOOL":false},{"NULL":true}]}}}}`

	var item Item
	err := json.Unmarshal([]byte(wire), &item)
	require.NoError(t, err)

	assert.Equal(t, []string{"pk", "nested"}, item.Keys())
	nested, ok := item.Get("nested")
	require.True(t, ok)
	m, ok := nested.(*MemberM)
	require.True(t, ok)
	assert.Equal(t, []string{"zz", "aa"}, m.Value.Keys(), "nested key order should survive decoding")

	raw, err := json.Marshal(&item)
	require.NoError(t, err)
	assert.Equal(t, wire, string(raw))
}

func TestItem_UnmarshalJSON_NumberPayloadVariants(t *testing.T) {
	// DynamoDB JSON carries N as a string, but a bare number is accepted too.
	var item Item
	err := json.Unmarshal([]byte(`{"a":{"N":"1.5"},"b":{"N":2.5}}`), &item)
	require.NoError(t, err)

	a, _ := item.Get("a")
	b, _ := item.Get("b")
	assert.Equal(t, &MemberN{Value: "1.5"}, a)
	assert.Equal(t, &MemberN{Value: "2.5"}, b)
}

func TestItem_UnmarshalJSON_RejectsMalformedWrappers(t *testing.T) {
	tests := []struct {
		name string
		wire string
	}{
		{name: "unknown tag", wire: `{"a":{"X":"1"}}`},
		{name: "two tags in one wrapper", wire: `{"a":{"S":"x","N":"1"}}`},
		{name: "empty wrapper", wire: `{"a":{}}`},
		{name: "unwrapped raw value", wire: `{"a":"bare"}`},
		{name: "wrong payload type for BOOL", wire: `{"a":{"BOOL":"true"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var item Item
			err := json.Unmarshal([]byte(tt.wire), &item)
			assert.Error(t, err)
		})
	}
}

func TestNumberFromJSON(t *testing.T) {
	n := NumberFromJSON(json.Number("1.20"))
	assert.Equal(t, Number("1.20"), n, "decimal text should be kept verbatim")
}
