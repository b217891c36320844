package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "github.com/graybeam/testpolicy/internal/model"
)

// configFileName is looked up at the scan root.
const configFileName = ".testpolicy.yml"

// PolicyConfig is the optional per-repository configuration.
type PolicyConfig struct {
	// Exclude holds regular expressions matched against root-relative paths.
	Exclude []string `yaml:"exclude"`
	// Workers is the default parallelism for per-file collection; flags
	// override it.
	Workers int `yaml:"workers"`
	// Colocation lists the directories whose test files must carry specific
	// path suffixes.
	Colocation []m.ColocationRule `yaml:"colocation"`
}

// ConfigLoader reads the policy configuration for a scan root.
type ConfigLoader interface {
	Load(root m.Path) (PolicyConfig, error)
}

// FileConfigLoader reads .testpolicy.yml from the scan root. A missing file
// yields the zero config, not an error.
type FileConfigLoader struct{}

// NewFileConfigLoader constructs a FileConfigLoader.
func NewFileConfigLoader() *FileConfigLoader {
	return &FileConfigLoader{}
}

// Load decodes the config file if present.
func (l *FileConfigLoader) Load(root m.Path) (PolicyConfig, error) {
	content, err := os.ReadFile(filepath.Join(string(root), configFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return PolicyConfig{}, nil
		}

		return PolicyConfig{}, fmt.Errorf("read %s: %w", configFileName, err)
	}

	var cfg PolicyConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return PolicyConfig{}, fmt.Errorf("parse %s: %w", configFileName, err)
	}

	return cfg, nil
}
