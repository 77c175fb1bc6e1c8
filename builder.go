// File: lixenwraith/conftree/builder.go
package conftree

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// ValidatorFunc validates the fully built tree.
type ValidatorFunc func(root *Node) error

// Builder provides a fluent interface for building a configuration tree
type Builder struct {
	root       *Node
	schema     Schema
	args       []string
	opts       []InitOption
	discovery  *DiscoveryOptions
	logger     *zap.Logger
	validators []ValidatorFunc
}

// NewBuilder creates a builder reading os.Args[1:] into a fresh root
func NewBuilder() *Builder {
	return &Builder{
		root:   NewRoot(),
		args:   os.Args[1:],
		logger: zap.NewNop(),
	}
}

// WithRoot builds into an existing tree instead of a fresh one
func (b *Builder) WithRoot(root *Node) *Builder {
	if root != nil {
		b.root = root
	}
	return b
}

// WithSchema appends entries to the schema
func (b *Builder) WithSchema(entries ...Entry) *Builder {
	b.schema = append(b.schema, entries...)
	return b
}

// WithArgs sets the command-line arguments, excluding the program name
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithProgramName sets the program name used in usage output
func (b *Builder) WithProgramName(name string) *Builder {
	b.opts = append(b.opts, WithProgramName(name))
	return b
}

// WithLogger sets the logger for all pipeline stages
func (b *Builder) WithLogger(l *zap.Logger) *Builder {
	if l != nil {
		b.logger = l
	}
	return b
}

// WithReadOptions passes options to every document read
func (b *Builder) WithReadOptions(opts ...ReadOption) *Builder {
	b.opts = append(b.opts, WithReadOptions(opts...))
	return b
}

// WithInitOptions passes raw options to Initialize
func (b *Builder) WithInitOptions(opts ...InitOption) *Builder {
	b.opts = append(b.opts, opts...)
	return b
}

// WithDocumentDiscovery searches for a default document for document entries
// that declare no default of their own
func (b *Builder) WithDocumentDiscovery(opts DiscoveryOptions) *Builder {
	b.discovery = &opts
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build runs the precedence pipeline and the validators
func (b *Builder) Build() (*Node, error) {
	schema := b.schema
	if b.discovery != nil {
		schema = b.withDiscoveredDefaults(schema)
	}

	opts := append([]InitOption{WithLogger(b.logger)}, b.opts...)
	if err := Initialize(b.root, schema, b.args, opts...); err != nil {
		return nil, err
	}

	for _, validator := range b.validators {
		if err := validator(b.root); err != nil {
			return nil, wrapError(KindValidation, err, "configuration validation failed")
		}
	}

	return b.root, nil
}

// withDiscoveredDefaults returns a copy of schema where document entries
// without a default point at the discovered document.
func (b *Builder) withDiscoveredDefaults(schema Schema) Schema {
	path, ok := DiscoverDocument(*b.discovery)
	if !ok {
		return schema
	}
	out := make(Schema, len(schema))
	copy(out, schema)
	for i := range out {
		if out[i].Type == TypeDocument && out[i].Default == "" {
			out[i].Default = path
			b.logger.Debug("document discovered", zap.String("path", out[i].Path), zap.String("file", path))
		}
	}
	return out
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Node {
	root, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return root
}

// BuildAndScan builds the tree and decodes the subtree at path into target
func (b *Builder) BuildAndScan(path string, target any) error {
	root, err := b.Build()
	if err != nil {
		return err
	}
	if err := root.Scan(path, target); err != nil {
		return wrapError(KindOf(err), err, "failed to scan final config into target")
	}
	return nil
}
