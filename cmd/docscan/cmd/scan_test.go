package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/docscan/internal/config"
)

func TestScanCommandStructure(t *testing.T) {
	assert.NotNil(t, scanCmd)
	assert.Equal(t, "scan", scanCmd.Use)
	assert.NotEmpty(t, scanCmd.Short)
	assert.NotEmpty(t, scanCmd.Long)
	assert.NotNil(t, scanCmd.RunE)
}

func TestApplyScanFlags(t *testing.T) {
	// Save original values and restore after test
	origProject, origToken := scanProject, scanToken
	origSampleSize, origCollection := scanSampleSize, scanCollection
	origRecurse, origMaxDepth, origOutput := scanRecurse, scanMaxDepth, scanOutput
	defer func() {
		scanProject, scanToken = origProject, origToken
		scanSampleSize, scanCollection = origSampleSize, origCollection
		scanRecurse, scanMaxDepth, scanOutput = origRecurse, origMaxDepth, origOutput
	}()

	scanProject = "flag-project"
	scanToken = "flag-token"
	scanSampleSize = 25
	scanCollection = "orders"
	scanRecurse = true
	scanMaxDepth = 3
	scanOutput = "custom.json"

	cfg := config.DefaultConfig()
	cfg.Store.Project = "file-project"
	applyScanFlags(cfg)

	assert.Equal(t, "flag-project", cfg.Store.Project, "flags take precedence over file")
	assert.Equal(t, "flag-token", cfg.Store.Token)
	assert.Equal(t, 25, cfg.Sampling.SampleSize)
	assert.Equal(t, "orders", cfg.Sampling.Collection)
	assert.True(t, cfg.Sampling.Recurse)
	assert.Equal(t, 3, cfg.Sampling.MaxDepth)
	assert.Equal(t, "custom.json", cfg.Output.Path)
}

func TestApplyScanFlags_UnsetFlagsKeepConfig(t *testing.T) {
	origSampleSize := scanSampleSize
	defer func() { scanSampleSize = origSampleSize }()
	scanSampleSize = 0

	cfg := config.DefaultConfig()
	cfg.Sampling.SampleSize = 42
	applyScanFlags(cfg)

	assert.Equal(t, 42, cfg.Sampling.SampleSize)
}

// fakeStoreServer serves a minimal store API: one root collection
// "users" with two documents.
func fakeStoreServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "documents:listCollectionIds"):
			fmt.Fprint(w, `{"collectionIds":["users"]}`)
		case strings.HasSuffix(r.URL.Path, "/documents/users"):
			fmt.Fprint(w, `{"documents":[
				{"name":"projects/demo/databases/(default)/documents/users/u1",
				 "fields":{"name":{"stringValue":"alice"},"age":{"integerValue":30}}},
				{"name":"projects/demo/databases/(default)/documents/users/u2",
				 "fields":{"name":{"stringValue":"bob"}}}
			]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"error":"no such resource"}`)
		}
	}))
}

func TestRunScan_EndToEnd(t *testing.T) {
	srv := fakeStoreServer(t)
	defer srv.Close()

	originalCfgFile := cfgFile
	defer func() { cfgFile = originalCfgFile }()

	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "schema.json")
	configPath := filepath.Join(tmpDir, "docscan.yaml")
	configContent := fmt.Sprintf(`store:
  base_url: %s
  project: demo
  token: test-token
output:
  path: %s
logging:
  level: error
`, srv.URL, outputPath)
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	cfgFile = configPath

	var buf bytes.Buffer
	setOutputWriter(&buf)
	defer resetOutputWriter()

	require.NoError(t, runScan(scanCmd, nil))

	// Report file content
	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)

	var report struct {
		TargetIdentity string `json:"targetIdentity"`
		Collections    map[string]struct {
			Fields map[string]struct {
				Count int      `json:"count"`
				Types []string `json:"types"`
			} `json:"fields"`
			TotalSampled int `json:"totalSampled"`
		} `json:"collections"`
	}
	require.NoError(t, json.Unmarshal(data, &report))

	assert.Equal(t, "demo", report.TargetIdentity)
	users := report.Collections["users"]
	assert.Equal(t, 2, users.TotalSampled)
	assert.Equal(t, 2, users.Fields["name"].Count)
	assert.Equal(t, []string{"string"}, users.Fields["name"].Types)
	assert.Equal(t, 1, users.Fields["age"].Count)
	assert.Equal(t, []string{"number"}, users.Fields["age"].Types)

	// Summary output
	out := buf.String()
	assert.Contains(t, out, "users")
	assert.Contains(t, out, "1 collection(s) scanned")
	assert.Contains(t, out, outputPath)
}

func TestRunScan_MissingCredentialFailsBeforeNetwork(t *testing.T) {
	originalCfgFile := cfgFile
	defer func() { cfgFile = originalCfgFile }()

	configPath := filepath.Join(t.TempDir(), "docscan.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("store:\n  project: demo\n"), 0644))
	cfgFile = configPath

	err := runScan(scanCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.token")
}

func TestRunScan_TransportErrorAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"invalid credential"}`)
	}))
	defer srv.Close()

	originalCfgFile := cfgFile
	defer func() { cfgFile = originalCfgFile }()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "docscan.yaml")
	configContent := fmt.Sprintf(`store:
  base_url: %s
  project: demo
  token: bad-token
output:
  path: %s
logging:
  level: error
`, srv.URL, filepath.Join(tmpDir, "schema.json"))
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	cfgFile = configPath

	err := runScan(scanCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.NoFileExists(t, filepath.Join(tmpDir, "schema.json"), "no partial report on failure")
}
