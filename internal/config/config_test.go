package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "appirater.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("app-id", "", "")
	fs.String("db", "", "")
	fs.Int32("version-code", 0, "")
	fs.String("log-level", "", "")
	return fs
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
appId: com.example.notes
appName: Notes
versionCode: 12
store:
  driver: file
  path: /tmp/appirater
logger:
  level: debug
policy:
  minLaunches: 5
  remindAfter: 72h
prompt:
  title: Enjoying Notes?
`)

	conf, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "com.example.notes", conf.AppID)
	assert.Equal(t, "Notes", conf.AppName)
	require.NotNil(t, conf.VersionCode)
	assert.Equal(t, int32(12), *conf.VersionCode)
	assert.Equal(t, "file", conf.Store.Driver)
	assert.Equal(t, "/tmp/appirater", conf.Store.Path)
	assert.Equal(t, "debug", conf.Logger.Level)
	assert.Equal(t, uint64(5), conf.Policy.MinLaunches)
	assert.Equal(t, 72*time.Hour, conf.Policy.RemindAfter)
	assert.Equal(t, "Enjoying Notes?", conf.Prompt.Title)
	assert.Equal(t, path, conf.Path)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APPIRATER_APP_ID", "com.example.env")

	conf, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "com.example.env", conf.AppID)
	assert.Equal(t, "en", conf.Language)
	assert.Equal(t, "sqlite", conf.Store.Driver)
	assert.Equal(t, "appirater.db", conf.Store.Path)
	assert.Equal(t, "warn", conf.Logger.Level)
	assert.Nil(t, conf.VersionCode)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "appId: com.example.file\n")
	t.Setenv("APPIRATER_APP_ID", "com.example.env")
	t.Setenv("APPIRATER_VERSION_CODE", "7")

	conf, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "com.example.env", conf.AppID)
	require.NotNil(t, conf.VersionCode)
	assert.Equal(t, int32(7), *conf.VersionCode)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("APPIRATER_APP_ID", "com.example.env")
	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--app-id", "com.example.flag", "--version-code", "3"}))

	conf, err := Load("", fs)
	require.NoError(t, err)

	assert.Equal(t, "com.example.flag", conf.AppID)
	require.NotNil(t, conf.VersionCode)
	assert.Equal(t, int32(3), *conf.VersionCode)
}

func TestLoad_UnsetFlagsAreIgnored(t *testing.T) {
	t.Setenv("APPIRATER_APP_ID", "com.example.env")
	fs := testFlags()
	require.NoError(t, fs.Parse(nil))

	conf, err := Load("", fs)
	require.NoError(t, err)

	assert.Nil(t, conf.VersionCode)
	assert.Equal(t, "appirater.db", conf.Store.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_MissingAppID(t *testing.T) {
	_, err := Load("", nil)
	assert.Error(t, err)
}

func validConfig() *Config {
	return &Config{
		AppID:    "com.example.notes",
		Language: "en",
		Store:    StoreConfig{Driver: "sqlite", Path: "/tmp/appirater.db"},
		Logger:   LoggerConfig{Level: "info"},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, Validate(validConfig()))
}

func TestValidate_InvalidDriver(t *testing.T) {
	c := validConfig()
	c.Store.Driver = "postgres"
	assert.Error(t, Validate(c))
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	assert.Error(t, Validate(c))
}

func TestValidate_PathRequiredForDurableStores(t *testing.T) {
	c := validConfig()
	c.Store.Path = ""
	assert.Error(t, Validate(c))

	c.Store.Driver = "memory"
	assert.NoError(t, Validate(c))
}
