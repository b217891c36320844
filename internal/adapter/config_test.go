package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/graybeam/testpolicy/internal/model"
)

func TestFileConfigLoader_Load(t *testing.T) {
	content := `
exclude:
  - "fixtures/"
  - "generated/"
workers: 4
colocation:
  - within: src/
    suffixes: [".test.ts", ".test.tsx"]
`

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, configFileName), []byte(content), 0o644))

	cfg, err := NewFileConfigLoader().Load(m.Path(root))
	require.NoError(t, err)

	assert.Equal(t, []string{"fixtures/", "generated/"}, cfg.Exclude)
	assert.Equal(t, 4, cfg.Workers)
	require.Len(t, cfg.Colocation, 1)
	assert.Equal(t, "src/", cfg.Colocation[0].Within)
	assert.Equal(t, []string{".test.ts", ".test.tsx"}, cfg.Colocation[0].Suffixes)
}

func TestFileConfigLoader_MissingFile(t *testing.T) {
	cfg, err := NewFileConfigLoader().Load(m.Path(t.TempDir()))
	require.NoError(t, err)
	assert.Equal(t, PolicyConfig{}, cfg)
}

func TestFileConfigLoader_Malformed(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, configFileName), []byte("exclude: {nope"), 0o644))

	_, err := NewFileConfigLoader().Load(m.Path(root))
	require.Error(t, err)
	assert.Contains(t, err.Error(), configFileName)
}
