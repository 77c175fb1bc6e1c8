// File: lixenwraith/conftree/helper.go
package conftree

// Flatten converts the tree below root to a flat map keyed by full path.
// Only leaves are included; array elements use "[n]" segments.
func Flatten(root *Node) (map[string]any, error) {
	flat := make(map[string]any)
	err := Walk(root, func(path string, n *Node) error {
		if n.Type().IsScalar() {
			flat[path] = n.Value()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return flat, nil
}

// isValidLongOption checks a long option name. Names are sequences of ASCII
// letters, digits, underscores, dots and dashes, not starting with a dash.
func isValidLongOption(s string) bool {
	if len(s) == 0 || s[0] == '-' {
		return false
	}

	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isPunct := r == '_' || r == '-' || r == '.'

		if !(isLetter || isDigit || isPunct) {
			return false
		}
	}
	return true
}
