// FILE: lixenwraith/conftree/loader.go
package conftree

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Format names a document encoding.
type Format string

const (
	FormatAuto Format = ""
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// YAMLDriver selects the library behind the YAML event source.
type YAMLDriver int

const (
	// YAMLDriverStd uses gopkg.in/yaml.v3 and streams documents one at a time
	YAMLDriverStd YAMLDriver = iota
	// YAMLDriverGoccy uses github.com/goccy/go-yaml and parses the input up front
	YAMLDriverGoccy
)

// ReadOption configures document reading.
type ReadOption func(*readOptions)

type readOptions struct {
	format               Format
	driver               YAMLDriver
	maxSize              int64
	preventPathTraversal bool
	logger               *zap.Logger
}

func defaultReadOptions() readOptions {
	return readOptions{
		maxSize: DefaultMaxDocumentSize,
		logger:  zap.NewNop(),
	}
}

// WithFormat forces the document format instead of detecting it.
func WithFormat(f Format) ReadOption {
	return func(o *readOptions) { o.format = f }
}

// WithYAMLDriver selects the YAML parser.
func WithYAMLDriver(d YAMLDriver) ReadOption {
	return func(o *readOptions) { o.driver = d }
}

// WithMaxFileSize limits the bytes read from a document. Zero disables the limit.
func WithMaxFileSize(n int64) ReadOption {
	return func(o *readOptions) { o.maxSize = n }
}

// WithPathTraversalCheck rejects relative paths that escape the working directory.
func WithPathTraversalCheck(enabled bool) ReadOption {
	return func(o *readOptions) { o.preventPathTraversal = enabled }
}

// WithReadLogger sets the logger used while reading documents.
func WithReadLogger(l *zap.Logger) ReadOption {
	return func(o *readOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewEventSource returns the event source for format reading from r.
// FormatAuto is not accepted here; detection needs the whole input.
func NewEventSource(r io.Reader, format Format, driver YAMLDriver) (EventSource, error) {
	switch format {
	case FormatYAML:
		if driver == YAMLDriverGoccy {
			return NewGoYAMLSource(r)
		}
		return NewYAMLSource(r), nil
	case FormatJSON:
		return NewJSONSource(r), nil
	case FormatTOML:
		return NewTOMLSource(r)
	default:
		return nil, newError(KindStructural, "unsupported document format '%s'", format)
	}
}

// ReadFile reads the document at path and merges it into root.
func ReadFile(root *Node, path string, opts ...ReadOption) error {
	o := defaultReadOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.preventPathTraversal {
		if err := checkTraversal(path); err != nil {
			return err
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return wrapError(KindIO, err, "could not open file '%s'", path)
	}
	if info.IsDir() {
		return newError(KindIO, "could not read '%s': is a directory", path)
	}
	if o.maxSize > 0 && info.Size() > o.maxSize {
		return newError(KindCapacity, "file '%s' exceeds maximum size %d bytes", path, o.maxSize)
	}

	file, err := os.Open(path)
	if err != nil {
		return wrapError(KindIO, err, "could not open file '%s'", path)
	}
	defer file.Close()

	data, err := readLimited(file, o.maxSize)
	if err != nil {
		if KindOf(err) == KindCapacity {
			return err
		}
		return wrapError(KindIO, err, "failed to read file '%s'", path)
	}

	format := o.format
	if format == FormatAuto {
		format = detectFileFormat(path)
		if format == FormatAuto {
			format = detectFormatFromContent(data)
		}
		if format == FormatAuto {
			return newError(KindParse, "unable to determine document format for file '%s'", path)
		}
	}

	if err := ingestBytes(root, data, format, o); err != nil {
		return wrapError(KindOf(err), err, "failed to read '%s'", path)
	}
	o.logger.Debug("document ingested", zap.String("path", path), zap.String("format", string(format)))
	return nil
}

// ReadDocument reads a document of the given format from r and merges it into root.
func ReadDocument(root *Node, r io.Reader, format Format, opts ...ReadOption) error {
	o := defaultReadOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if format == FormatAuto {
		format = o.format
	}

	// Streaming is only possible when the format is known up front.
	if format != FormatAuto && o.maxSize == 0 {
		src, err := NewEventSource(r, format, o.driver)
		if err != nil {
			return err
		}
		return Ingest(root, src)
	}

	data, err := readLimited(r, o.maxSize)
	if err != nil {
		if KindOf(err) == KindCapacity {
			return err
		}
		return wrapError(KindIO, err, "failed to read document")
	}
	if format == FormatAuto {
		if format = detectFormatFromContent(data); format == FormatAuto {
			return newError(KindParse, "unable to determine document format")
		}
	}
	return ingestBytes(root, data, format, o)
}

func ingestBytes(root *Node, data []byte, format Format, o readOptions) error {
	src, err := NewEventSource(bytes.NewReader(data), format, o.driver)
	if err != nil {
		return err
	}
	return Ingest(root, src)
}

// readLimited reads all of r, failing when more than limit bytes are available.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, newError(KindCapacity, "document exceeds maximum size %d bytes", limit)
	}
	return data, nil
}

func checkTraversal(path string) error {
	cleanPath := filepath.Clean(path)
	if strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) || cleanPath == ".." {
		return newError(KindIO, "potential path traversal detected in document path: %s", path)
	}
	// Relative path became absolute after cleaning
	if filepath.IsAbs(cleanPath) && !filepath.IsAbs(path) {
		return newError(KindIO, "potential path traversal detected in document path: %s", path)
	}
	return nil
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// detectFormatFromContent attempts to detect format by parsing.
// TOML is tried before YAML because most TOML text is also a valid YAML scalar.
func detectFormatFromContent(data []byte) Format {
	if json.Valid(data) {
		return FormatJSON
	}

	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return FormatTOML
	}

	var yamlTest any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return FormatYAML
	}

	return FormatAuto
}

// isNotExist reports whether err came from a missing document.
func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
