// Package profile reads slicer configurations from their serialized form.
//
// The accepted key set is exactly the one model.SlicerConfiguration.ToJSON
// produces. Input may be JSON or YAML; absent keys keep their defaults.
package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/me/slicecfg/pkg/model"
	"gopkg.in/yaml.v3"
)

// DecodeError reports a configuration document that cannot be mapped.
type DecodeError struct {
	Path  string // source file, empty for in-memory input
	Field string // offending key, empty for syntax errors
	Msg   string
	Err   error
}

func (e *DecodeError) Error() string {
	src := "profile"
	if e.Path != "" {
		src = e.Path
	}
	switch {
	case e.Field != "":
		return fmt.Sprintf("%s: field %q: %s", src, e.Field, e.Msg)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", src, e.Err)
	default:
		return fmt.Sprintf("%s: %s", src, e.Msg)
	}
}

func (e *DecodeError) Unwrap() error { return e.Err }

// FieldError converts the decode error into an API validation detail.
func (e *DecodeError) FieldError() model.FieldError {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return model.FieldError{Field: e.Field, Message: msg}
}

// Decode builds a configuration from its serialized form.
func Decode(data []byte) (*model.SlicerConfiguration, error) {
	var doc document

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, &DecodeError{Err: err}
	}
	return mapDocument(doc)
}

// DecodeMap decodes an already-parsed JSON object, such as a request body field.
func DecodeMap(m map[string]any) (*model.SlicerConfiguration, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return Decode(data)
}

// LoadFile reads and decodes a configuration file.
func LoadFile(path string) (*model.SlicerConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	cfg, err := Decode(data)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Path = path
		}
		return nil, err
	}
	return cfg, nil
}

// Encode writes the serialized form as indented JSON.
func Encode(cfg *model.SlicerConfiguration) ([]byte, error) {
	return json.MarshalIndent(cfg.ToJSON(), "", "  ")
}
