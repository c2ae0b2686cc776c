package parser

import (
	"os"
	"path/filepath"
	"testing"

	stderrors "errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/dynomarshal/internal/errors"
	"github.com/mcncl/dynomarshal/internal/models"
)

func TestParseString_SimpleDocument(t *testing.T) {
	doc, err := ParseString(`{"pk": "pk", "count": 3, "active": true, "note": null}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"pk", "count", "active", "note"}, doc.Keys())

	pk, _ := doc.Get("pk")
	count, _ := doc.Get("count")
	active, _ := doc.Get("active")
	note, _ := doc.Get("note")
	assert.Equal(t, models.String("pk"), pk)
	assert.Equal(t, models.Number("3"), count)
	assert.Equal(t, models.Bool(true), active)
	assert.Equal(t, models.Null{}, note)
}

func TestParseString_KeyOrderPreserved(t *testing.T) {
	doc, err := ParseString(`{"zebra": 1, "apple": 2, "mango": {"second": true, "first": false}}`)
	require.NoError(t, err)

	assert.Equal(t, []string{"zebra", "apple", "mango"}, doc.Keys())

	mango, ok := doc.Get("mango")
	require.True(t, ok)
	nested, ok := mango.(*models.Map)
	require.True(t, ok)
	assert.Equal(t, []string{"second", "first"}, nested.Keys(), "nested object key order should match the document")
}

func TestParseString_NumbersKeepDecimalText(t *testing.T) {
	doc, err := ParseString(`{"int": 42, "float": 1.2, "big": 12345678901234567890, "padded": 1.20}`)
	require.NoError(t, err)

	intVal, _ := doc.Get("int")
	floatVal, _ := doc.Get("float")
	bigVal, _ := doc.Get("big")
	paddedVal, _ := doc.Get("padded")
	assert.Equal(t, models.Number("42"), intVal)
	assert.Equal(t, models.Number("1.2"), floatVal)
	assert.Equal(t, models.Number("12345678901234567890"), bigVal, "large integers should not lose precision")
	assert.Equal(t, models.Number("1.20"), paddedVal, "source text should be kept verbatim")
}

func TestParseString_NestedListsAndMaps(t *testing.T) {
	doc, err := ParseString(`{"ddbList": [1.2, "2", {"hello": "moon"}], "empty": [], "emptyObj": {}}`)
	require.NoError(t, err)

	listVal, ok := doc.Get("ddbList")
	require.True(t, ok)
	list, ok := listVal.(models.List)
	require.True(t, ok)
	require.Len(t, list, 3)
	assert.Equal(t, models.Number("1.2"), list[0])
	assert.Equal(t, models.String("2"), list[1])
	obj, ok := list[2].(*models.Map)
	require.True(t, ok)
	hello, _ := obj.Get("hello")
	assert.Equal(t, models.String("moon"), hello)

	emptyVal, _ := doc.Get("empty")
	assert.Equal(t, models.List{}, emptyVal)
	emptyObjVal, _ := doc.Get("emptyObj")
	assert.Equal(t, 0, emptyObjVal.(*models.Map).Len())
}

func TestParseString_EmptyInput(t *testing.T) {
	tests := []string{"", "   ", "\n\t"}
	for _, input := range tests {
		_, err := ParseString(input)
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, errors.ErrEmptyInput))
	}
}

func TestParseString_InvalidJSON(t *testing.T) {
	_, err := ParseString(`{"pk": "pk"`)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidJSON))

	_, err = ParseString(`{"pk": pk}`)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidJSON))
}

func TestParseString_MultipleRootValues(t *testing.T) {
	_, err := ParseString(`{"a": 1} {"b": 2}`)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrMultipleJSON))
}

func TestParseString_RootMustBeObject(t *testing.T) {
	tests := []string{`[1, 2]`, `"text"`, `42`, `true`, `null`}
	for _, input := range tests {
		_, err := ParseString(input)
		require.Error(t, err, "input %q should be rejected", input)
		assert.True(t, stderrors.Is(err, errors.ErrRootNotObject))
	}
}

func TestParseFile_Success(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "item.json")
	err := os.WriteFile(path, []byte(`{"pk": "pk"}`), 0644)
	require.NoError(t, err)

	doc, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"pk"}, doc.Keys())
}

func TestParseFile_NotFound(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrFileNotFound))
}

func TestParseFile_Empty(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "empty.json")
	err := os.WriteFile(path, []byte(""), 0644)
	require.NoError(t, err)

	_, err = ParseFile(path)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrFileEmpty))
}

func TestParseFile_EmptyPath(t *testing.T) {
	_, err := ParseFile("  ")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalidFilePath))
}
