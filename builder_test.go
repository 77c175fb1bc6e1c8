// FILE: lixenwraith/conftree/builder_test.go
package conftree

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestBuilder tests the builder pattern
func TestBuilder(t *testing.T) {
	t.Run("BasicBuilder", func(t *testing.T) {
		root, err := NewBuilder().
			WithSchema(sampleSchema()...).
			WithArgs([]string{"--log-dir", "/tmp/logs"}).
			Build()
		require.NoError(t, err)
		defer root.Destroy()

		dir, ok, err := root.GetString("log.dir")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "/tmp/logs", dir)

		daemonize, _, _ := root.GetBool("daemonize")
		assert.False(t, daemonize)
	})

	t.Run("BuilderWithAllOptions", func(t *testing.T) {
		doc := writeFile(t, t.TempDir(), "app.json", `{"server": {"port": 9090}}`)
		core, logs := observer.New(zapcore.DebugLevel)

		existing := NewRoot()
		defer existing.Destroy()
		require.NoError(t, existing.SetString("preset", "kept"))

		schema := append(sampleSchema(), Entry{Path: "server.port", Type: TypeInt, Default: "8080"})
		root, err := NewBuilder().
			WithRoot(existing).
			WithSchema(schema...).
			WithArgs([]string{"-c", doc, "-D"}).
			WithProgramName("app").
			WithLogger(zap.New(core)).
			WithReadOptions(WithMaxFileSize(1 << 10)).
			WithInitOptions(WithExitFunc(func(int) {})).
			Build()
		require.NoError(t, err)
		assert.Same(t, existing, root)

		port, _, _ := root.GetInt("server.port")
		assert.Equal(t, int64(9090), port)

		preset, _, _ := root.GetString("preset")
		assert.Equal(t, "kept", preset)

		assert.NotEmpty(t, logs.FilterMessage("document ingested").All())
		assert.NotEmpty(t, logs.FilterMessage("default applied").All())
	})

	t.Run("BuildErrors", func(t *testing.T) {
		_, err := NewBuilder().
			WithSchema(sampleSchema()...).
			WithArgs([]string{"--unknown"}).
			Build()
		assert.ErrorIs(t, err, ErrParse)

		_, err = NewBuilder().
			WithArgs(nil).
			Build()
		assert.ErrorIs(t, err, ErrStructural, "empty schema")
	})
}

// TestBuilderValidation tests validation functionality
func TestBuilderValidation(t *testing.T) {
	errNoHost := errors.New("host is required")

	t.Run("ValidationPasses", func(t *testing.T) {
		calls := 0
		root, err := NewBuilder().
			WithSchema(Entry{Path: "host", Type: TypeString, Default: "localhost"}).
			WithArgs(nil).
			WithValidator(func(root *Node) error {
				calls++
				return nil
			}).
			WithValidator(nil).
			Build()
		require.NoError(t, err)
		defer root.Destroy()
		assert.Equal(t, 1, calls)
	})

	t.Run("ValidationFails", func(t *testing.T) {
		var order []int
		_, err := NewBuilder().
			WithSchema(Entry{Path: "host", Type: TypeString}).
			WithArgs(nil).
			WithValidator(func(root *Node) error {
				order = append(order, 1)
				return nil
			}).
			WithValidator(func(root *Node) error {
				order = append(order, 2)
				if !root.Has("host") {
					return errNoHost
				}
				return nil
			}).
			WithValidator(func(root *Node) error {
				order = append(order, 3)
				return nil
			}).
			Build()
		assert.ErrorIs(t, err, ErrValidation)
		assert.ErrorIs(t, err, errNoHost)
		assert.Contains(t, err.Error(), "configuration validation failed")
		assert.Equal(t, []int{1, 2}, order)
	})

	t.Run("MustBuildPanics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewBuilder().
				WithSchema(Entry{Path: "host", Type: TypeString, Required: true}).
				WithArgs(nil).
				MustBuild()
		})
	})
}

// TestBuilderDiscovery tests default document discovery
func TestBuilderDiscovery(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "svc.toml", "[log]\ndir = \"/from/discovery\"\n")

	opts := DiscoveryOptions{
		Name:       "svc",
		Extensions: []string{".yaml", ".toml"},
		Paths:      []string{filepath.Join(dir, "missing"), dir},
	}

	t.Run("FillsDocumentDefault", func(t *testing.T) {
		root, err := NewBuilder().
			WithSchema(sampleSchema()...).
			WithArgs(nil).
			WithDocumentDiscovery(opts).
			Build()
		require.NoError(t, err)
		defer root.Destroy()

		file, _, _ := root.GetString("config_file")
		assert.Equal(t, doc, file)
		logDir, _, _ := root.GetString("log.dir")
		assert.Equal(t, "/from/discovery", logDir)
	})

	t.Run("ExplicitDefaultWins", func(t *testing.T) {
		schema := sampleSchema()
		schema[0].Default = filepath.Join(dir, "absent.yaml")

		root, err := NewBuilder().
			WithSchema(schema...).
			WithArgs(nil).
			WithDocumentDiscovery(opts).
			Build()
		require.NoError(t, err)
		defer root.Destroy()

		assert.False(t, root.Has("config_file"))
		logDir, _, _ := root.GetString("log.dir")
		assert.Equal(t, "/var/log/app", logDir)
	})

	t.Run("NothingFound", func(t *testing.T) {
		none := opts
		none.Paths = []string{filepath.Join(dir, "missing")}

		root, err := NewBuilder().
			WithSchema(sampleSchema()...).
			WithArgs(nil).
			WithDocumentDiscovery(none).
			Build()
		require.NoError(t, err)
		defer root.Destroy()
		assert.False(t, root.Has("config_file"))
	})
}

// TestBuildAndScan tests building directly into a struct
func TestBuildAndScan(t *testing.T) {
	type LogConfig struct {
		Dir   string `yaml:"dir"`
		Level string `yaml:"level"`
	}

	var cfg LogConfig
	err := NewBuilder().
		WithSchema(
			Entry{Path: "log.dir", Type: TypeString, Long: "log-dir", Default: "/var/log/app"},
			Entry{Path: "log.level", Type: TypeString, Default: "info"},
		).
		WithArgs([]string{"--log-dir=/srv/log"}).
		BuildAndScan("log", &cfg)
	require.NoError(t, err)
	assert.Equal(t, LogConfig{Dir: "/srv/log", Level: "info"}, cfg)

	var bad struct{ Dir string }
	err = NewBuilder().
		WithSchema(Entry{Path: "log.dir", Type: TypeString, Default: "/var/log/app"}).
		WithArgs(nil).
		BuildAndScan("log.dir", &bad)
	assert.ErrorIs(t, err, ErrTypeMismatch)
}
