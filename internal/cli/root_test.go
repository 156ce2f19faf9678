package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cliEnv runs commands against one SQLite file and captures clipboard writes.
type cliEnv struct {
	t         *testing.T
	db        string
	clipboard []string
	clipErr   error
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	env := &cliEnv{t: t, db: filepath.Join(t.TempDir(), "appirater.db")}

	prev := copyToClipboard
	copyToClipboard = func(text string) error {
		if env.clipErr != nil {
			return env.clipErr
		}
		env.clipboard = append(env.clipboard, text)
		return nil
	}
	t.Cleanup(func() { copyToClipboard = prev })
	return env
}

// run executes the root command and returns stdout and stderr.
func (e *cliEnv) run(args ...string) (string, string, error) {
	e.t.Helper()
	cmd := NewRootCommand("test")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append([]string{"--app-id", "com.example.notes", "--db", e.db}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func (e *cliEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, stderr, err := e.run(args...)
	require.NoError(e.t, err, stderr)
	return out
}

func (e *cliEnv) state() stateView {
	e.t.Helper()
	var v stateView
	require.NoError(e.t, json.Unmarshal([]byte(e.mustRun("state", "--json")), &v))
	return v
}

func TestNewRootCommand(t *testing.T) {
	t.Run("creates root command", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		assert.NotNil(t, cmd)
		assert.Equal(t, "appirater", cmd.Use)
		assert.Equal(t, "1.0.0", cmd.Version)
	})

	t.Run("has config flag", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		flag := cmd.PersistentFlags().Lookup("config")
		require.NotNil(t, flag)
		assert.Equal(t, "c", flag.Shorthand)
	})

	t.Run("has subcommands", func(t *testing.T) {
		cmd := NewRootCommand("1.0.0")
		for _, name := range []string{"launch", "prompt", "reset", "state", "set"} {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Contains(t, sub.Use, name)
		}
	})
}

func TestLaunch_CountsAndAnswers(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("launch", "--version-code", "1", "--answer", "later")
	assert.Contains(t, out, "Launches: 1 (this version: 1)")
	assert.Contains(t, out, "Prompt: answered RemindLater")

	env.mustRun("launch", "--version-code", "1", "--answer", "later")

	v := env.state()
	assert.Equal(t, "com.example.notes", v.AppID)
	assert.Equal(t, uint64(2), v.LaunchCount)
	assert.Equal(t, uint64(2), v.VersionLaunchCount)
	require.NotNil(t, v.VersionCode)
	assert.Equal(t, int32(1), *v.VersionCode)
	assert.NotNil(t, v.FirstLaunch)
	assert.NotNil(t, v.RemindClicked)
	assert.Nil(t, v.RateClicked)
	assert.False(t, v.DeclinedForever)
}

func TestLaunch_RateCopiesStoreLink(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("launch", "--answer", "rate")
	assert.Contains(t, out, "Store page: market://details?id=com.example.notes")
	assert.Equal(t, []string{"market://details?id=com.example.notes"}, env.clipboard)
	assert.NotNil(t, env.state().RateClicked)

	out = env.mustRun("launch", "--answer", "rate")
	assert.Contains(t, out, "Prompt: not due")
	assert.Len(t, env.clipboard, 1)
}

func TestLaunch_ClipboardFailureStillRecordsRate(t *testing.T) {
	env := newCLIEnv(t)
	env.clipErr = errors.New("no clipboard utility")

	_, stderr, err := env.run("--log-level", "warn", "launch", "--answer", "rate")
	require.NoError(t, err)
	assert.Contains(t, stderr, "store page could not be opened")
	assert.NotNil(t, env.state().RateClicked)
}

func TestLaunch_DeclineIsSticky(t *testing.T) {
	env := newCLIEnv(t)

	env.mustRun("launch", "--answer", "decline")
	assert.True(t, env.state().DeclinedForever)

	out := env.mustRun("launch", "--answer", "rate")
	assert.Contains(t, out, "Prompt: not due")
	assert.Empty(t, env.clipboard)
}

func TestLaunch_MinLaunches(t *testing.T) {
	env := newCLIEnv(t)

	for i := 0; i < 2; i++ {
		out := env.mustRun("launch", "--min-launches", "3", "--answer", "later")
		assert.Contains(t, out, "Prompt: not due")
	}
	out := env.mustRun("launch", "--min-launches", "3", "--answer", "later")
	assert.Contains(t, out, "Prompt: answered RemindLater")
}

func TestLaunch_NoPrompt(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("launch", "--no-prompt")
	assert.Contains(t, out, "Prompt: due")
	assert.Nil(t, env.state().RemindClicked)
}

func TestLaunch_VersionChangeResetsVersionCount(t *testing.T) {
	env := newCLIEnv(t)

	env.mustRun("launch", "--version-code", "1", "--no-prompt")
	env.mustRun("launch", "--version-code", "1", "--no-prompt")
	out := env.mustRun("launch", "--version-code", "2", "--no-prompt")

	assert.Contains(t, out, "Launches: 3 (this version: 1)")
}

func TestLaunch_Metrics(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("launch", "--answer", "dismiss", "--metrics")
	assert.Contains(t, out, "appirater_launches_total 1")
	assert.Contains(t, out, "appirater_prompts_shown_total 1")
	assert.Contains(t, out, `appirater_responses_total{response="Dismissed"} 1`)
}

func TestLaunch_InvalidAnswer(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run("launch", "--answer", "maybe")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown answer")
}

func TestPrompt_DoesNotCountLaunch(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("prompt", "--answer", "later")
	assert.Contains(t, out, "Prompt: answered RemindLater")

	v := env.state()
	assert.Equal(t, uint64(0), v.LaunchCount)
	assert.NotNil(t, v.RemindClicked)
}

func TestReset(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("launch", "--version-code", "1", "--answer", "decline")

	t.Run("same version", func(t *testing.T) {
		out := env.mustRun("reset", "--version-code", "1")
		assert.Contains(t, out, "nothing reset")
		assert.True(t, env.state().DeclinedForever)
	})

	t.Run("no version code", func(t *testing.T) {
		out := env.mustRun("reset")
		assert.Contains(t, out, "No version code given")
		assert.Equal(t, uint64(1), env.state().LaunchCount)
	})

	t.Run("new version", func(t *testing.T) {
		out := env.mustRun("reset", "--version-code", "2")
		assert.Contains(t, out, "Version changed (1 -> 2)")

		v := env.state()
		assert.Equal(t, uint64(0), v.LaunchCount)
		assert.Nil(t, v.VersionCode)
		assert.False(t, v.DeclinedForever)
	})
}

func TestState_Human(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("state")
	assert.Contains(t, out, "com.example.notes")
	assert.Contains(t, out, "Version code:         unknown")
	assert.Contains(t, out, "First launch:         never")
}

func TestSet(t *testing.T) {
	env := newCLIEnv(t)

	env.mustRun("set", "launch-count", "41")
	env.mustRun("set", "version-launch-count", "7")
	env.mustRun("set", "first-launch", "2024-01-15T14:30:00Z")
	env.mustRun("set", "rate-click", "now")
	env.mustRun("set", "declined", "true")

	v := env.state()
	assert.Equal(t, uint64(41), v.LaunchCount)
	assert.Equal(t, uint64(7), v.VersionLaunchCount)
	require.NotNil(t, v.FirstLaunch)
	assert.Equal(t, "2024-01-15T14:30:00Z", v.FirstLaunch.Format("2006-01-02T15:04:05Z07:00"))
	assert.NotNil(t, v.RateClicked)
	assert.True(t, v.DeclinedForever)

	env.mustRun("set", "rate-click", "none")
	assert.Nil(t, env.state().RateClicked)
}

func TestSet_InvalidInput(t *testing.T) {
	env := newCLIEnv(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown field", []string{"set", "colour", "blue"}, "unknown field"},
		{"bad count", []string{"set", "launch-count", "many"}, "invalid count"},
		{"bad date", []string{"set", "first-launch", "yesterday"}, "invalid date"},
		{"bad flag", []string{"set", "declined", "perhaps"}, "invalid flag value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := env.run(tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfigFile(t *testing.T) {
	env := newCLIEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "appirater.yaml")
	content := "appName: Notes\nstore:\n  driver: file\n  path: " + dir + "\npolicy:\n  minLaunches: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cmd := NewRootCommand("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "--app-id", "com.example.notes", "launch", "--answer", "later"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "Prompt: not due")
	assert.FileExists(t, filepath.Join(dir, "com.example.notes.yaml"))
	assert.Empty(t, env.clipboard)
}

func TestMissingAppID(t *testing.T) {
	t.Setenv("APPIRATER_APP_ID", "")

	cmd := NewRootCommand("test")
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--store", "memory", "state"})

	assert.Error(t, cmd.Execute())
}

func TestConfigFilePromptTexts(t *testing.T) {
	env := newCLIEnv(t)
	path := filepath.Join(t.TempDir(), "appirater.yaml")
	content := "prompt:\n  title: Enjoying Notes?\n  laterButton: Not now\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	out := env.mustRun("--config", path, "launch", "--answer", "later")
	assert.Contains(t, out, "Prompt shown: Enjoying Notes?")

	out = env.mustRun("--config", path, "prompt", "--answer", "later")
	assert.Contains(t, out, "Prompt shown: Enjoying Notes?")
}

func TestDefaultPromptTitle(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("--app-name", "Notes", "launch", "--answer", "later")
	assert.Contains(t, out, "Prompt shown: Rate Notes")
}
