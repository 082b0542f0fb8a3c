package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_CrudWalkthrough(t *testing.T) {
	sc, err := LoadScenario(filepath.Join("testdata", "scenarios", "crud-walkthrough.yaml"))
	require.NoError(t, err)

	require.NoError(t, RunWithGolden(t, sc))
}
