// FILE: lixenwraith/conftree/pipeline.go
package conftree

import "go.uber.org/zap"

// Initialize builds root from schema in fixed precedence: command-line
// options, then environment variables, then defaults. Each later stage only
// fills paths that are still unset. Validation runs last.
func Initialize(root *Node, schema Schema, args []string, opts ...InitOption) error {
	if root == nil {
		return newError(KindStructural, "root config node is nil")
	}
	if schema == nil {
		return newError(KindStructural, "config schema is missing")
	}

	o := newInitOptions(opts)

	stages := []struct {
		name string
		run  func() error
	}{
		{"flags", func() error { return parseFlags(root, schema, args, o) }},
		{"env", func() error { return readEnv(root, schema, o) }},
		{"defaults", func() error { return applyDefaults(root, schema, o) }},
		{"validate", func() error { return Validate(root, schema) }},
	}

	for _, stage := range stages {
		if err := stage.run(); err != nil {
			o.logger.Debug("pipeline stage failed", zap.String("stage", stage.name), zap.Error(err))
			return err
		}
	}
	return nil
}
