package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govalues/bcnum"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestEval(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"quoted", []string{"eval", "* 10 + 1.23 4.56"}, "57.9\n"},
		{"unquoted", []string{"eval", "+", "0.1", "0.2"}, "0.3\n"},
		{"precision", []string{"eval", "--precision", "4", "--", "sqrt", "2"}, "1.4142\n"},
		{"padded", []string{"eval", "-p", "3", "^ 3 3"}, "27.000\n"},
		{"negative operand", []string{"eval", "--", "% -10 3"}, "-1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"division by zero", []string{"eval", "/ 1 0"}, bcnum.ErrDivisionByZero},
		{"invalid number", []string{"eval", "+ 1 one"}, bcnum.ErrInvalidValue},
		{"negative precision", []string{"eval", "--precision=-1", "+ 1 1"}, bcnum.ErrPrecisionRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, stderr, err := run(t, tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, out)
			assert.Contains(t, stderr, "level=error")
		})
	}

	t.Run("no arguments", func(t *testing.T) {
		_, _, err := run(t, "eval")
		assert.Error(t, err)
	})
}

func TestRounding(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"round default", []string{"round", "1234.5555"}, "1234.56\n"},
		{"round precision", []string{"round", "-p", "0", "0.5"}, "1\n"},
		{"floor default", []string{"floor", "1.555"}, "1.55\n"},
		{"floor negative", []string{"floor", "--", "-1.2301"}, "-1.24\n"},
		{"ceil default", []string{"ceil", "1.2345"}, "1.24\n"},
		{"ceil padded", []string{"ceil", "1234"}, "1234.00\n"},
		{"ceil precision", []string{"ceil", "--precision", "3", "1234.0001"}, "1234.001\n"},
		{"ceil negative", []string{"ceil", "--", "-0.0001"}, "0.00\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestRounding_Errors(t *testing.T) {
	_, _, err := run(t, "floor", "abc")
	assert.ErrorIs(t, err, bcnum.ErrInvalidValue)

	_, _, err = run(t, "ceil", "--precision=-2", "1.5")
	assert.ErrorIs(t, err, bcnum.ErrPrecisionRange)

	_, _, err = run(t, "round")
	assert.Error(t, err)

	_, _, err = run(t, "round", "1", "2")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "bccalc.yaml")
	require.NoError(t, os.WriteFile(p, []byte("precision: 4\nlog_level: debug\n"), 0o644))

	t.Run("precision from file", func(t *testing.T) {
		out, stderr, err := run(t, "--config", p, "ceil", "1.23456")
		require.NoError(t, err)
		assert.Equal(t, "1.2346\n", out)
		assert.Contains(t, stderr, "level=debug")
		assert.Contains(t, stderr, "command=ceil")
	})

	t.Run("flags override file", func(t *testing.T) {
		out, stderr, err := run(t, "--config", p, "--log-level", "error", "--log-format", "json", "floor", "-p", "1", "1.99")
		require.NoError(t, err)
		assert.Equal(t, "1.9\n", out)
		assert.Empty(t, stderr)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := run(t, "--config", filepath.Join(dir, "absent.yaml"), "round", "1")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid flag value", func(t *testing.T) {
		_, _, err := run(t, "--log-format", "xml", "round", "1")
		assert.Error(t, err)
	})
}

func TestJSONLogs(t *testing.T) {
	_, stderr, err := run(t, "--log-level", "debug", "--log-format", "json", "eval", "+ 1 2")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"command":"eval"`)
	assert.Contains(t, stderr, `"result":"3"`)
}
