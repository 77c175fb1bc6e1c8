// FILE: lixenwraith/conftree/schema.go
package conftree

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// UsageFunc receives the rendered usage text when a usage entry is triggered.
type UsageFunc func(usage string)

// ValidateFunc checks the node resolved for path. n is nil when the path is unset.
type ValidateFunc func(path string, n *Node) error

// Entry declares one configuration path and where its value may come from.
type Entry struct {
	Path string
	Type Type

	Short     rune   // short option, 0 for none
	Long      string // long option without dashes
	Help      string
	ArgType   string // placeholder shown in usage, defaults to Type.ArgString()
	UsageDesc string // description printed under the usage header

	Env      string // environment variable name
	Default  string // literal coerced to Type, or a document path for TypeDocument
	Required bool

	Usage    UsageFunc
	Validate ValidateFunc
}

// Schema is the flat, path-keyed list of entries driving Initialize.
type Schema []Entry

// argType returns the usage placeholder for the entry.
func (e *Entry) argType() string {
	if e.ArgType != "" {
		return e.ArgType
	}
	return e.Type.ArgString()
}

// storedType is the type the entry's path holds in the tree.
func (e *Entry) storedType() Type {
	if e.Type == TypeDocument {
		return TypeString
	}
	return e.Type
}

// InitOption configures Initialize and the individual pipeline stages.
type InitOption func(*initOptions)

type initOptions struct {
	prog        string
	usageOutput io.Writer
	exit        func(code int)
	logger      *zap.Logger
	readOpts    []ReadOption
}

func newInitOptions(opts []InitOption) *initOptions {
	o := &initOptions{
		prog:        filepath.Base(os.Args[0]),
		usageOutput: os.Stdout,
		exit:        os.Exit,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithProgramName sets the program name shown in usage output.
func WithProgramName(name string) InitOption {
	return func(o *initOptions) { o.prog = name }
}

// WithUsageOutput sets where the default usage action prints.
func WithUsageOutput(w io.Writer) InitOption {
	return func(o *initOptions) { o.usageOutput = w }
}

// WithExitFunc replaces os.Exit in the default usage action.
func WithExitFunc(fn func(code int)) InitOption {
	return func(o *initOptions) { o.exit = fn }
}

// WithLogger sets the logger used by every pipeline stage.
func WithLogger(l *zap.Logger) InitOption {
	return func(o *initOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithReadOptions passes options to every document read by the pipeline.
func WithReadOptions(opts ...ReadOption) InitOption {
	return func(o *initOptions) { o.readOpts = append(o.readOpts, opts...) }
}

// read ingests a document referenced by a schema entry, sharing the pipeline logger.
func (o *initOptions) read(root *Node, path string) error {
	opts := append([]ReadOption{WithReadLogger(o.logger)}, o.readOpts...)
	return ReadFile(root, path, opts...)
}
