package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gogrim"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSimplifyCommand(t *testing.T) {
	out, err := run(t, "simplify", "Div(Add(1, Sqrt(5)), 2)")
	require.NoError(t, err)
	assert.Equal(t, "GoldenRatio\n", out)

	out, err = run(t, "simplify", "--var", "x", "-a", "Element(x, ZZ)", "Element(x, RR)")
	require.NoError(t, err)
	assert.Equal(t, "True\n", out)

	_, err = run(t, "simplify", "Add(1,")
	assert.Error(t, err)
	_, err = run(t, "simplify", "--var", "f(x)", "x")
	assert.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	out, err := run(t, "check", "--var", "x", "-a", "Element(x, ZZ)", "-n", "2", "Equal(Add(x, 1), x)")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "False (2 samples: 0 true, 2 false, 0 unknown)"), out)
	assert.Contains(t, out, "counterexample: map[x:0]")

	out, err = run(t, "check", "--json", "--var", "x", "-a", "Element(x, ZZ)", "-n", "3", "Equal(Sub(x, x), 0)")
	require.NoError(t, err)
	var r gogrim.Report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, gogrim.Report{Samples: 3, True: 3}, r)
}

func TestCorpusCommand(t *testing.T) {
	out, err := run(t, "corpus")
	require.NoError(t, err)
	assert.Contains(t, out, "ee2d4e\tEqual(GoldenRatio, Div(Add(1, Sqrt(5)), 2))\n")
	assert.Contains(t, out, "\tif Element(z, CC)")

	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries:\n  - id: q1\n    formula: Greater(4, 3)\n"), 0o644))
	out, err = run(t, "corpus", "-f", path)
	require.NoError(t, err)
	assert.Equal(t, "q1\tGreater(4, 3)\n", out)

	require.NoError(t, os.WriteFile(path, []byte("entries:\n  - id: q1\n    formula: Greater(w, 3)\n"), 0o644))
	_, err = run(t, "corpus", "-f", path)
	assert.Error(t, err)
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: shout\n"), 0o644))
	_, err := run(t, "-c", path, "corpus")
	assert.Error(t, err)
}
