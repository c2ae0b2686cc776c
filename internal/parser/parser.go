package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/mcncl/dynomarshal/internal/errors" // Custom errors package
	"github.com/mcncl/dynomarshal/internal/models"
)

// Parse reads one JSON object from the reader and converts it into an
// ordered Document. The decoder walks tokens rather than decoding into a
// Go map, because map decoding would lose the document's key order, and
// uses UseNumber so numeric values keep their exact decimal text.
func Parse(reader io.Reader) (*models.Document, error) {
	dec := json.NewDecoder(reader)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return nil, parseSyntaxError(err)
	}

	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, errors.NewParsingError(
			fmt.Sprintf("document root must be a JSON object, got %v", tok),
			errors.ErrRootNotObject,
		)
	}

	doc, err := parseObject(dec)
	if err != nil {
		return nil, parseSyntaxError(err)
	}

	// Check for trailing data after the first JSON value.
	var trailing interface{}
	if err := dec.Decode(&trailing); err != nil {
		if !stderrors.Is(err, io.EOF) {
			return nil, errors.NewParsingError("invalid trailing data after first JSON value", err)
		}
		// io.EOF here means only whitespace followed the document.
	} else {
		return nil, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	}

	return doc, nil
}

// parseObject consumes object members up to and including the closing
// brace. The opening brace has already been read.
func parseObject(dec *json.Decoder) (*models.Map, error) {
	obj := models.NewMap()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return obj, nil
}

func parseArray(dec *json.Decoder) (models.List, error) {
	list := models.List{}
	for dec.More() {
		val, err := parseValue(dec)
		if err != nil {
			return nil, err
		}
		list = append(list, val)
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return nil, err
	}
	return list, nil
}

func parseValue(dec *json.Decoder) (models.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", v)
		}
	case string:
		return models.String(v), nil
	case json.Number:
		return models.NumberFromJSON(v), nil
	case bool:
		return models.Bool(v), nil
	case nil:
		return models.Null{}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// parseSyntaxError maps decoder failures onto the application error set.
func parseSyntaxError(err error) error {
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
			errors.ErrInvalidJSON,
		)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// ParseString parses a document from a string
func ParseString(jsonString string) (*models.Document, error) {
	// TrimSpace is important here because an empty string reader will give io.EOF to Token,
	// but a string with only spaces might not, depending on the decoder's behavior.
	if strings.TrimSpace(jsonString) == "" {
		return nil, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	reader := strings.NewReader(jsonString)
	return Parse(reader)
}

// ParseFile parses a document from a file path
func ParseFile(filePath string) (*models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		// Check if the file doesn't exist
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	// Check for empty file before parsing
	stat, err := file.Stat()
	if err != nil {
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}
