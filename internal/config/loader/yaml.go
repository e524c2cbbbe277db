package loader

import "gopkg.in/yaml.v3"

// NewYAMLLoader creates a loader for a YAML file.
func NewYAMLLoader(path string) Loader {
	return NewYAMLLoaderWithFS(DefaultFS(), path)
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
func NewYAMLLoaderWithFS(fs FileSystem, path string) Loader {
	return &fileLoader{fs: fs, path: path, format: "yaml", parse: parseYAML}
}

func parseYAML(data []byte) (map[string]any, error) {
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	return config, nil
}
