package loader

import "github.com/pelletier/go-toml/v2"

// NewTOMLLoader creates a loader for a TOML file.
func NewTOMLLoader(path string) Loader {
	return NewTOMLLoaderWithFS(DefaultFS(), path)
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fs FileSystem, path string) Loader {
	return &fileLoader{fs: fs, path: path, format: "toml", parse: parseTOML}
}

func parseTOML(data []byte) (map[string]any, error) {
	var config map[string]any
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	return config, nil
}
