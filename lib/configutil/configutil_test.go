package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	ApiKey  string `json:"api_key"`
	BaseUrl string `json:"base_url"`
}

func TestReadConfigMergesLocalOverrides(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(
		filepath.Join(dir, "askpablos.json5"),
		[]byte(`{api_key: "from-default", base_url: "https://api.askpablos.com/v1/fetch"}`),
		0600,
	)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(
		filepath.Join(dir, "askpablos.local.json5"),
		[]byte(`{api_key: "from-local"}`),
		0600,
	)
	if err != nil {
		t.Fatal(err)
	}

	config, err := ReadConfig[testConfig](filepath.Join(dir, "askpablos.json5"))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "from-local", config.ApiKey)
	require.Equal(t, "https://api.askpablos.com/v1/fetch", config.BaseUrl)
}

func TestReadConfigMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadConfig[testConfig](filepath.Join(dir, "nope.json5"))
	require.True(t, os.IsNotExist(err))
}
