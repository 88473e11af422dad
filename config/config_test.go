package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/gogrim/config"
)

func TestDefault(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, uint(128), c.Precision)
	assert.Equal(t, 16, c.Budget.Degree)
	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, "info", c.LogLevel)
}

func TestRead(t *testing.T) {
	doc := `
precision: 256
budget:
  degree: 24
sampler:
  samples: 50
server:
  addr: localhost:9090
  request_timeout: 5s
log_level: debug
`
	c, err := config.Read(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, uint(256), c.Precision)
	assert.Equal(t, 24, c.Budget.Degree)
	assert.Equal(t, 4096, c.Budget.Bits, "unset keys keep their defaults")
	assert.Equal(t, 50, c.Sampler.Samples)
	assert.Equal(t, 100000, c.Sampler.MaxCandidates)
	assert.Equal(t, "localhost:9090", c.Server.Addr)
	assert.Equal(t, 5*time.Second, c.Server.RequestTimeout)
	assert.Equal(t, 10*time.Second, c.Server.ReadTimeout)

	c, err = config.Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)
}

func TestReadRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown key":   "colour: blue\n",
		"low precision": "precision: 8\n",
		"bad degree":    "budget:\n  degree: 1\n",
		"no samples":    "sampler:\n  samples: 0\n",
		"bad addr":      "server:\n  addr: nowhere\n",
		"bad level":     "log_level: loud\n",
		"bad timeout":   "server:\n  read_timeout: 0s\n",
		"not yaml":      "precision: [\n",
	} {
		_, err := config.Read(strings.NewReader(doc))
		assert.True(t, errors.Is(err, config.ErrInvalid), name)
	}
}

func TestLoad(t *testing.T) {
	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), c)

	path := filepath.Join(t.TempDir(), "grim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("corpus: extra.yaml\n"), 0o644))
	c, err = config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "extra.yaml", c.Corpus)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("precision: 1\n"), 0o644))
	_, err = config.Load(path)
	assert.True(t, errors.Is(err, config.ErrInvalid))
}
