package loader

import (
	"errors"

	"github.com/tidwall/gjson"
)

var errInvalidJSON = errors.New("invalid json")

// NewJSONLoader creates a loader for a JSON file.
func NewJSONLoader(path string) Loader {
	return NewJSONLoaderWithFS(DefaultFS(), path)
}

// NewJSONLoaderWithFS creates a JSON loader with a custom file system.
func NewJSONLoaderWithFS(fs FileSystem, path string) Loader {
	return &fileLoader{fs: fs, path: path, format: "json", parse: parseJSON}
}

// parseJSON decodes a JSON object. Numbers decode as float64.
func parseJSON(data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, errInvalidJSON
	}
	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return nil, errors.New("top level must be an object")
	}
	config, _ := result.Value().(map[string]any)
	return config, nil
}
