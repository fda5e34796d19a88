package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"homeprice/ml"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  port: 8081
  timeout: 5s
artifacts:
  model_type: decision_tree
  model_path: /srv/model.json
predict:
  strict_locations: true
log:
  level: debug
`), 0o600))

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8081, config.HTTP.Port)
	assert.Equal(t, 5*time.Second, config.HTTP.Timeout)
	assert.Equal(t, ml.ModelTypeDecisionTree, config.Artifacts.ModelType)
	assert.Equal(t, "/srv/model.json", config.Artifacts.ModelPath)
	assert.Equal(t, "artifacts/columns.json", config.Artifacts.ColumnsPath)
	assert.True(t, config.Predict.StrictLocations)
	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "console", config.Log.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HOMEPRICE_PORT", "9090")
	t.Setenv("HOMEPRICE_MODEL_PATH", "/tmp/m.json")
	t.Setenv("HOMEPRICE_CLIENT_DIR", "/srv/client")

	config, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 9090, config.HTTP.Port)
	assert.Equal(t, "/tmp/m.json", config.Artifacts.ModelPath)
	assert.Equal(t, "/srv/client", config.Client.Dir)

	t.Setenv("HOMEPRICE_PORT", "http")
	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	config := Default()
	config.HTTP.Port = 0
	config.Artifacts.ModelType = "svm"
	config.Log.Level = "loud"

	err := config.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http: [unterminated"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}
