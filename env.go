// FILE: lixenwraith/conftree/env.go
package conftree

import (
	"os"

	"go.uber.org/zap"
)

// ReadEnv fills paths from the environment variables named in schema. Paths
// that already hold a value are left alone. A document entry reads the named
// file, fills the gaps it covers, and records the file path.
func ReadEnv(root *Node, schema Schema, opts ...InitOption) error {
	return readEnv(root, schema, newInitOptions(opts))
}

func readEnv(root *Node, schema Schema, o *initOptions) error {
	if root == nil {
		return newError(KindStructural, "no root was specified")
	}

	for i := range schema {
		e := &schema[i]
		if e.Env == "" || e.Path == "" || e.Type == TypeUsage {
			continue
		}
		value, ok := os.LookupEnv(e.Env)
		if !ok {
			continue
		}

		_, found, err := root.Get(e.Path)
		if err != nil {
			return err
		}
		if found {
			o.logger.Debug("environment value ignored, path already set",
				zap.String("path", e.Path), zap.String("env", e.Env))
			continue
		}

		if e.Type == TypeDocument {
			if err := fillFromDocument(root, value, o); err != nil {
				return wrapError(KindOf(err), err, "failed to read document from environment variable %s", e.Env)
			}
			if err := root.SetString(e.Path, value); err != nil {
				return err
			}
		} else {
			v, err := coerceEntry(e, value, "environment variable "+e.Env)
			if err != nil {
				return err
			}
			if err := root.Set(e.Path, e.Type, v); err != nil {
				return err
			}
		}

		o.logger.Debug("option applied",
			zap.String("path", e.Path),
			zap.String("env", e.Env),
			zap.String("source", "env"))
	}
	return nil
}

// fillFromDocument reads path into a scratch tree and copies only the leaves
// root does not already have.
func fillFromDocument(root *Node, path string, o *initOptions) error {
	scratch := NewRoot()
	defer scratch.Destroy()

	if err := o.read(scratch, path); err != nil {
		return err
	}
	return Merge(root, scratch, false)
}
