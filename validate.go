// FILE: lixenwraith/conftree/validate.go
package conftree

// Validate checks every schema path: present values must have the declared
// type, required paths must exist, and validators run with the resolved node
// (nil when the path is unset). The first failure is returned.
func Validate(root *Node, schema Schema) error {
	if root == nil {
		return newError(KindStructural, "no root was specified")
	}

	for i := range schema {
		e := &schema[i]
		if e.Path == "" || e.Type == TypeUsage {
			continue
		}

		n, found, err := root.Get(e.Path)
		if err != nil {
			return wrapError(KindValidation, err, "failed to resolve config path '%s'", e.Path)
		}

		want := e.storedType()
		switch {
		case found && n.Type() != want:
			return newError(KindValidation, "config path '%s' exists, but is wrong type %s != %s",
				e.Path, n.Type(), want)
		case !found && e.Required:
			return newError(KindValidation, "required config path '%s' does not exist", e.Path)
		}

		if e.Validate != nil {
			if !found {
				n = nil
			}
			if err := e.Validate(e.Path, n); err != nil {
				return wrapError(KindValidation, err, "validation of '%s' failed", e.Path)
			}
		}
	}
	return nil
}
