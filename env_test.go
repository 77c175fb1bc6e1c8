// File: lixenwraith/conftree/env_test.go
package conftree_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/conftree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envSchema() conftree.Schema {
	return conftree.Schema{
		{Path: "config_file", Type: conftree.TypeDocument, Env: "TEST_CONFIG_FILE"},
		{Path: "server.host", Type: conftree.TypeString, Env: "TEST_SERVER_HOST"},
		{Path: "server.port", Type: conftree.TypeInt, Env: "TEST_SERVER_PORT"},
		{Path: "server.ratio", Type: conftree.TypeFloat, Env: "TEST_SERVER_RATIO"},
		{Path: "debug", Type: conftree.TypeBool, Env: "TEST_DEBUG"},
		{Type: conftree.TypeUsage, Short: 'h', Env: "TEST_HELP"},
	}
}

func TestEnvironmentVariables(t *testing.T) {
	t.Run("Basic Environment Loading", func(t *testing.T) {
		envVars := map[string]string{
			"TEST_SERVER_HOST":  "env-host",
			"TEST_SERVER_PORT":  "9999",
			"TEST_SERVER_RATIO": "0.25",
			"TEST_DEBUG":        "on",
			"TEST_HELP":         "1",
		}
		for k, v := range envVars {
			t.Setenv(k, v)
		}

		root := conftree.NewRoot()
		defer root.Destroy()
		require.NoError(t, conftree.ReadEnv(root, envSchema()))

		host, _, err := root.GetString("server.host")
		require.NoError(t, err)
		assert.Equal(t, "env-host", host)

		port, _, err := root.GetInt("server.port")
		require.NoError(t, err)
		assert.Equal(t, int64(9999), port)

		ratio, _, err := root.GetFloat("server.ratio")
		require.NoError(t, err)
		assert.Equal(t, 0.25, ratio)

		debug, _, err := root.GetBool("debug")
		require.NoError(t, err)
		assert.True(t, debug)

		assert.False(t, root.Has("config_file"))
	})

	t.Run("Existing Values Are Kept", func(t *testing.T) {
		t.Setenv("TEST_SERVER_HOST", "env-host")

		root := conftree.NewRoot()
		defer root.Destroy()
		require.NoError(t, root.SetString("server.host", "flag-host"))
		require.NoError(t, conftree.ReadEnv(root, envSchema()))

		host, _, _ := root.GetString("server.host")
		assert.Equal(t, "flag-host", host)
	})

	t.Run("Document Fills Gaps", func(t *testing.T) {
		doc := filepath.Join(t.TempDir(), "env.yaml")
		require.NoError(t, os.WriteFile(doc, []byte("server:\n  host: doc-host\n  port: 1234\n"), 0644))
		t.Setenv("TEST_CONFIG_FILE", doc)

		root := conftree.NewRoot()
		defer root.Destroy()
		require.NoError(t, root.SetString("server.host", "flag-host"))
		require.NoError(t, conftree.ReadEnv(root, envSchema()))

		host, _, _ := root.GetString("server.host")
		assert.Equal(t, "flag-host", host)

		port, _, err := root.GetInt("server.port")
		require.NoError(t, err)
		assert.Equal(t, int64(1234), port)

		file, _, _ := root.GetString("config_file")
		assert.Equal(t, doc, file)
	})

	t.Run("Document Keys Are Verbatim", func(t *testing.T) {
		doc := filepath.Join(t.TempDir(), "env.yaml")
		content := "host.name: x\n\"[0]\": y\nnested:\n  a.b: 1\n"
		require.NoError(t, os.WriteFile(doc, []byte(content), 0644))
		t.Setenv("TEST_CONFIG_FILE", doc)

		direct := conftree.NewRoot()
		defer direct.Destroy()
		require.NoError(t, conftree.ReadFile(direct, doc))

		root := conftree.NewRoot()
		defer root.Destroy()
		require.NoError(t, conftree.ReadEnv(root, envSchema()))

		for _, r := range []*conftree.Node{direct, root} {
			_, ok := r.Dict().Search("host.name")
			assert.True(t, ok)
			_, ok = r.Dict().Search("[0]")
			assert.True(t, ok)
			assert.False(t, r.Has("host"))

			nested, _, err := r.Get("nested")
			require.NoError(t, err)
			n, ok := nested.Dict().Search("a.b")
			require.True(t, ok)
			i, _ := n.AsInt()
			assert.Equal(t, int64(1), i)
		}
	})

	t.Run("Missing Document", func(t *testing.T) {
		t.Setenv("TEST_CONFIG_FILE", "/non/existent.yaml")

		root := conftree.NewRoot()
		defer root.Destroy()
		err := conftree.ReadEnv(root, envSchema())
		assert.ErrorIs(t, err, conftree.ErrIO)
		assert.Contains(t, err.Error(), "TEST_CONFIG_FILE")
	})

	t.Run("Invalid Values", func(t *testing.T) {
		tests := map[string]struct {
			value string
			kind  conftree.Kind
			msg   string
		}{
			"TEST_SERVER_PORT":  {"many", conftree.KindParse, "expected integer for environment variable TEST_SERVER_PORT"},
			"TEST_DEBUG":        {"maybe", conftree.KindParse, "expected boolean for environment variable TEST_DEBUG"},
			"TEST_SERVER_RATIO": {"1e999", conftree.KindNumeric, "invalid value for environment variable TEST_SERVER_RATIO"},
		}

		for name, tt := range tests {
			t.Run(name, func(t *testing.T) {
				t.Setenv(name, tt.value)

				root := conftree.NewRoot()
				defer root.Destroy()
				err := conftree.ReadEnv(root, envSchema())
				require.Error(t, err)
				assert.Equal(t, tt.kind, conftree.KindOf(err))
				assert.Contains(t, err.Error(), tt.msg)
			})
		}
	})

	t.Run("Nil Root", func(t *testing.T) {
		assert.ErrorIs(t, conftree.ReadEnv(nil, envSchema()), conftree.ErrStructural)
	})
}
