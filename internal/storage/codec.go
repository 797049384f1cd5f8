package storage

import (
	"encoding/json"
	"errors"

	"gopkg.in/yaml.v3"
)

var errEmptyDocument = errors.New("empty document")

// Codec encodes documents for storage.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, out any) error
	Extension() string
}

// JSONCodec stores documents as indented JSON.
type JSONCodec struct{}

// Marshal implements Codec.
func (JSONCodec) Marshal(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Unmarshal implements Codec.
func (JSONCodec) Unmarshal(data []byte, out any) error {
	return json.Unmarshal(data, out)
}

// Extension implements Codec.
func (JSONCodec) Extension() string { return ".json" }

// YAMLCodec stores documents as YAML.
type YAMLCodec struct{}

// Marshal implements Codec.
func (YAMLCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal implements Codec. Empty content is malformed, as with JSON.
func (YAMLCodec) Unmarshal(data []byte, out any) error {
	if len(data) == 0 {
		return errEmptyDocument
	}
	return yaml.Unmarshal(data, out)
}

// Extension implements Codec.
func (YAMLCodec) Extension() string { return ".yaml" }
