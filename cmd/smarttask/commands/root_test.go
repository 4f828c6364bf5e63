package commands_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MacroPower/smarttask/cmd/smarttask/commands"
)

type testEnv struct {
	config string
	store  string
	dir    string
}

// newTestEnv writes a config file pointing at a store in a temp dir.
func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	dir := t.TempDir()
	env := testEnv{
		dir:    dir,
		config: filepath.Join(dir, "config.yaml"),
		store:  filepath.Join(dir, "tasks.yaml"),
	}

	cfg := fmt.Sprintf("store: %s\ntheme: light\nchart:\n  width: 200\n  height: 150\n  pixelRatio: 1\n", env.store)
	require.NoError(t, os.WriteFile(env.config, []byte(cfg), 0o600))

	return env
}

func (e testEnv) run(args ...string) (string, string, error) {
	cmd := commands.NewRootCmd("test_smarttask", "", "")
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd.SetArgs(append([]string{"--config", e.config}, args...))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(&bytes.Buffer{})

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestRootCmdArgs(t *testing.T) {
	tcs := map[string]struct {
		wantErr   error
		logLevel  string
		logFormat string
	}{
		"default config": {
			logLevel:  "warn",
			logFormat: "text",
		},
		"json format": {
			logLevel:  "info",
			logFormat: "json",
		},
		"debug level": {
			logLevel:  "debug",
			logFormat: "logfmt",
		},
		"invalid log level": {
			logLevel:  "invalid",
			logFormat: "text",
			wantErr:   commands.ErrLogHandlerFailed,
		},
		"invalid log format": {
			logLevel:  "warn",
			logFormat: "invalid",
			wantErr:   commands.ErrLogHandlerFailed,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)

			stdout, _, err := env.run(
				"--log_level", tc.logLevel,
				"--log_format", tc.logFormat,
				"version",
			)

			if tc.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
				assert.Contains(t, stdout, "smarttask")
			}
		})
	}
}

func TestRootCmdConfig(t *testing.T) {
	tcs := map[string]struct {
		wantErr error
		args    []string
	}{
		"theme flag": {
			args: []string{"--theme", "dark"},
		},
		"auto theme": {
			args: []string{"--theme", "auto"},
		},
		"invalid theme flag": {
			args:    []string{"--theme", "sepia"},
			wantErr: commands.ErrConfigFailed,
		},
		"empty store flag": {
			args:    []string{"--store", ""},
			wantErr: commands.ErrConfigFailed,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(t)

			_, _, err := env.run(append(tc.args, "version")...)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestRootCmdMissingConfig(t *testing.T) {
	cmd := commands.NewRootCmd("test_smarttask", "", "")
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml"), "version"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	err := cmd.Execute()
	require.ErrorIs(t, err, commands.ErrConfigFailed)
}

func TestRootCmdArgPointers(t *testing.T) {
	args := commands.NewRootArgs()

	// Test default values
	assert.Empty(t, args.GetLogLevel())
	assert.Empty(t, args.GetLogFormat())
	assert.Empty(t, args.GetConfigFile())
	assert.Empty(t, args.GetStore())
	assert.Empty(t, args.GetConfig().StorePath)
}

func TestVersionCmd(t *testing.T) {
	env := newTestEnv(t)

	stdout, stderr, err := env.run("version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "revision")
	assert.Empty(t, stderr)
}
