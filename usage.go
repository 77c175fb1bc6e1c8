// FILE: lixenwraith/conftree/usage.go
package conftree

import "strings"

// Usage renders the help text for schema: a header naming prog, the optional
// description, and one aligned line per option.
func Usage(prog, desc string, schema Schema) string {
	var b strings.Builder

	b.WriteString("USAGE: " + prog + "\n")
	if desc != "" {
		b.WriteString(desc + "\n")
	}
	b.WriteString("\nOPTIONS:\n")

	padding := usagePadding(schema)
	for i := range schema {
		e := &schema[i]
		if e.Short == 0 && e.Long == "" {
			continue
		}

		pad := padding
		if e.Short != 0 {
			b.WriteString("\t-" + string(e.Short) + " ")
		} else {
			b.WriteString("\t   ")
		}
		if e.Long != "" {
			long := "--" + e.Long + " "
			b.WriteString(long)
			pad -= len(long)
		}
		arg := e.argType()
		b.WriteString(arg)
		pad -= len(arg)

		b.WriteString(strings.Repeat(" ", max(pad, 0)))
		if e.Help != "" {
			b.WriteString(": " + e.Help + "\n")
		} else {
			b.WriteString(":\n")
		}
	}

	return b.String()
}

// usagePadding is the widest long option plus argument, with room for the
// dashes and separators.
func usagePadding(schema Schema) int {
	width := 0
	for i := range schema {
		e := &schema[i]
		if e.Short == 0 && e.Long == "" {
			continue
		}
		width = max(width, len(e.Long)+len(e.argType()))
	}
	return width + 4
}
