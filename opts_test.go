// FILE: lixenwraith/conftree/opts_test.go
package conftree

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tmpDir := t.TempDir()
	doc := writeFile(t, tmpDir, "app.yaml", "log:\n  dir: /from/doc\nextra: 7\n")

	t.Run("Values And Document", func(t *testing.T) {
		root := NewRoot()
		defer root.Destroy()

		err := ParseFlags(root, sampleSchema(), []string{"-l", "/tmp", "--daemonize", "--config-file", doc})
		require.NoError(t, err)

		daemonize, _, err := root.GetBool("daemonize")
		require.NoError(t, err)
		assert.True(t, daemonize)

		file, _, err := root.GetString("config_file")
		require.NoError(t, err)
		assert.Equal(t, doc, file)

		extra, _, err := root.GetInt("extra")
		require.NoError(t, err)
		assert.Equal(t, int64(7), extra)

		// The document came after -l and overwrote it.
		dir, _, err := root.GetString("log.dir")
		require.NoError(t, err)
		assert.Equal(t, "/from/doc", dir)
	})

	t.Run("Option After Document Wins", func(t *testing.T) {
		root := NewRoot()
		defer root.Destroy()

		require.NoError(t, ParseFlags(root, sampleSchema(), []string{"-c", doc, "--log-dir=/tmp"}))
		dir, _, err := root.GetString("log.dir")
		require.NoError(t, err)
		assert.Equal(t, "/tmp", dir)
	})

	t.Run("Optional Bool Argument", func(t *testing.T) {
		root := NewRoot()
		defer root.Destroy()

		require.NoError(t, ParseFlags(root, sampleSchema(), []string{"--daemonize=off"}))
		daemonize, ok, err := root.GetBool("daemonize")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.False(t, daemonize)

		require.NoError(t, ParseFlags(root, sampleSchema(), []string{"-D"}))
		daemonize, _, _ = root.GetBool("daemonize")
		assert.True(t, daemonize)
	})

	t.Run("Short Only Option", func(t *testing.T) {
		root := NewRoot()
		defer root.Destroy()

		schema := Schema{{Path: "pool.workers", Type: TypeInt, Short: 'w'}}
		require.NoError(t, ParseFlags(root, schema, []string{"-w", "0x10"}))
		workers, _, err := root.GetInt("pool.workers")
		require.NoError(t, err)
		assert.Equal(t, int64(16), workers)
	})

	t.Run("No Arguments", func(t *testing.T) {
		root := NewRoot()
		defer root.Destroy()
		require.NoError(t, ParseFlags(root, sampleSchema(), nil))
		assert.Equal(t, 0, root.Dict().Len())
	})
}

func TestParseFlagsErrors(t *testing.T) {
	schema := Schema{
		{Path: "workers", Type: TypeInt, Short: 'w', Long: "workers"},
		{Path: "ratio", Type: TypeFloat, Long: "ratio"},
		{Path: "config_file", Type: TypeDocument, Short: 'c'},
	}

	tests := []struct {
		name string
		args []string
		kind Kind
		msg  string
	}{
		{"Not An Integer", []string{"--workers", "abc"}, KindParse, "expected integer for option --workers/-w"},
		{"Not A Float", []string{"--ratio", "fast"}, KindParse, "expected floating-point number for option --ratio"},
		{"Integer Overflow", []string{"-w", "99999999999999999999"}, KindNumeric, "invalid value for option --workers/-w"},
		{"Unknown Option", []string{"--nope"}, KindParse, "unsupported option"},
		{"Missing Argument", []string{"--workers"}, KindParse, "unsupported option"},
		{"Non Option Argument", []string{"-w", "1", "extra"}, KindParse, "non-option arguments are unsupported, found 'extra'"},
		{"Missing Document", []string{"-c", "/non/existent.yaml"}, KindIO, "could not open file"},
		{"Spelled Out Short Option", []string{"--short-option-c", "doc.yaml"}, KindParse, "unsupported option"},
		{"Internal Long Name", []string{"--short=c", "doc.yaml"}, KindParse, "unsupported option"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NewRoot()
			defer root.Destroy()

			err := ParseFlags(root, schema, tt.args)
			require.Error(t, err)
			assert.Equal(t, tt.kind, KindOf(err))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestFlagRegistration(t *testing.T) {
	tests := []struct {
		name   string
		schema Schema
		msg    string
	}{
		{
			name:   "Missing Path",
			schema: Schema{{Type: TypeString, Short: 'a'}},
			msg:    "path is missing for option -a",
		},
		{
			name:   "Unsupported Type",
			schema: Schema{{Path: "a", Type: TypeDict, Long: "a"}},
			msg:    "unsupported config node type 'dictionary'",
		},
		{
			name:   "Duplicate Short",
			schema: Schema{{Path: "a", Type: TypeString, Short: 'x'}, {Path: "b", Type: TypeString, Short: 'x'}},
			msg:    "short option 'x' is used more than once",
		},
		{
			name:   "Duplicate Long",
			schema: Schema{{Path: "a", Type: TypeString, Long: "same"}, {Path: "b", Type: TypeString, Long: "same"}},
			msg:    "long option 'same' is used more than once",
		},
		{
			name:   "Dash Short",
			schema: Schema{{Path: "a", Type: TypeString, Short: '-'}},
			msg:    "is not a printable ASCII character",
		},
		{
			name:   "Invalid Long",
			schema: Schema{{Path: "a", Type: TypeString, Long: "bad name"}},
			msg:    "long option 'bad name' contains invalid characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NewRoot()
			defer root.Destroy()

			err := ParseFlags(root, tt.schema, nil)
			assert.ErrorIs(t, err, ErrStructural)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	assert.True(t, isValidLongOption("log-dir"))
	assert.True(t, isValidLongOption("log.dir_2"))
	assert.False(t, isValidLongOption(""))
	assert.False(t, isValidLongOption("-x"))
	assert.False(t, isValidLongOption("a=b"))
}

func TestUsageOption(t *testing.T) {
	t.Run("Callback", func(t *testing.T) {
		root := NewRoot()
		defer root.Destroy()

		var got string
		schema := sampleSchema()
		schema[3].Usage = func(usage string) { got = usage }

		require.NoError(t, ParseFlags(root, schema, []string{"-h"}, WithProgramName("app")))
		assert.Equal(t, Usage("app", "All your base are belong to us.", schema), got)
	})

	t.Run("Default Action Prints And Exits", func(t *testing.T) {
		root := NewRoot()
		defer root.Destroy()

		var out bytes.Buffer
		exitCode := -1
		err := ParseFlags(root, sampleSchema(), []string{"--help"},
			WithProgramName("app"),
			WithUsageOutput(&out),
			WithExitFunc(func(code int) { exitCode = code }))
		require.NoError(t, err)
		assert.Equal(t, 0, exitCode)
		assert.Contains(t, out.String(), "USAGE: app\n")
		assert.Contains(t, out.String(), "--log-dir <dir>")
	})
}
