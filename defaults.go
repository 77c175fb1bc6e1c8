// FILE: lixenwraith/conftree/defaults.go
package conftree

import (
	"go.uber.org/zap"
)

// ApplyDefaults sets the declared default of every entry whose path is still
// unset. A default document that does not exist is skipped.
func ApplyDefaults(root *Node, schema Schema, opts ...InitOption) error {
	return applyDefaults(root, schema, newInitOptions(opts))
}

func applyDefaults(root *Node, schema Schema, o *initOptions) error {
	if root == nil {
		return newError(KindStructural, "no root was specified")
	}

	for i := range schema {
		e := &schema[i]
		if e.Default == "" || e.Path == "" || e.Type == TypeUsage {
			continue
		}

		_, found, err := root.Get(e.Path)
		if err != nil {
			return err
		}
		if found {
			continue
		}

		if e.Type == TypeDocument {
			if err := fillFromDocument(root, e.Default, o); err != nil {
				if isNotExist(err) {
					o.logger.Debug("default document not found",
						zap.String("path", e.Path), zap.String("file", e.Default))
					continue
				}
				return wrapError(KindOf(err), err, "failed to read default document for '%s'", e.Path)
			}
			if err := root.SetString(e.Path, e.Default); err != nil {
				return err
			}
		} else {
			v, err := coerceEntry(e, e.Default, "default value of '"+e.Path+"'")
			if err != nil {
				return err
			}
			if err := root.Set(e.Path, e.Type, v); err != nil {
				return err
			}
		}

		o.logger.Debug("default applied", zap.String("path", e.Path), zap.String("source", "default"))
	}
	return nil
}
