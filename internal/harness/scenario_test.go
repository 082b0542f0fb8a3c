package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenario(t, `
name: simple
steps:
  - op: add
    record:
      id: 1
      name: Alice
      age: 30
  - op: list
`)
	sc, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "simple", sc.Name)
	require.Len(t, sc.Steps, 2)
	assert.Equal(t, "add", sc.Steps[0].Op)
	require.NotNil(t, sc.Steps[0].Record)
	assert.Equal(t, "Alice", sc.Steps[0].Record.Name)
}

func TestLoadScenario_MissingName(t *testing.T) {
	path := writeScenario(t, `
steps:
  - op: list
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoadScenario_NoSteps(t *testing.T) {
	path := writeScenario(t, `name: empty`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one step")
}

func TestLoadScenario_UnknownOp(t *testing.T) {
	path := writeScenario(t, `
name: bad
steps:
  - op: explode
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown op "explode"`)
}

func TestLoadScenario_AddWithoutRecord(t *testing.T) {
	path := writeScenario(t, `
name: bad
steps:
  - op: add
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "add requires a record")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

// TestCommittedScenariosPass runs every scenario shipped in testdata.
func TestCommittedScenariosPass(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "no committed scenarios found")

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			sc, err := LoadScenario(file)
			require.NoError(t, err)

			result, err := Run(sc)
			require.NoError(t, err)
			for _, v := range result.Violations {
				t.Errorf("%v", v)
			}
		})
	}
}
