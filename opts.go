// FILE: lixenwraith/conftree/opts.go
package conftree

import (
	"fmt"
	"io"
	"unicode"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// ParseFlags applies command-line options declared in schema to root. args
// excludes the program name. Options are applied in argument order, so a
// document given with one option can be overridden by options after it.
func ParseFlags(root *Node, schema Schema, args []string, opts ...InitOption) error {
	return parseFlags(root, schema, args, newInitOptions(opts))
}

type flagParser struct {
	root   *Node
	schema Schema
	o      *initOptions
	err    error // first error raised while applying a value
}

// entryValue adapts a schema entry to pflag.Value. Set writes straight into
// the tree.
type entryValue struct {
	p    *flagParser
	e    *Entry
	text string
}

func (v *entryValue) String() string { return v.text }

func (v *entryValue) Type() string { return v.e.Type.String() }

func (v *entryValue) Set(s string) error {
	v.text = s
	if err := v.p.apply(v.e, s); err != nil {
		if v.p.err == nil {
			v.p.err = err
		}
		return err
	}
	return nil
}

func parseFlags(root *Node, schema Schema, args []string, o *initOptions) error {
	if root == nil {
		return newError(KindStructural, "no root was specified")
	}

	fs := pflag.NewFlagSet(o.prog, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false

	p := &flagParser{root: root, schema: schema, o: o}
	if err := p.register(fs); err != nil {
		return err
	}

	if err := fs.Parse(args); err != nil {
		if p.err != nil {
			return p.err
		}
		return wrapError(KindParse, err, "unsupported option")
	}
	if rest := fs.Args(); len(rest) > 0 {
		return newError(KindParse, "non-option arguments are unsupported, found '%s'", rest[0])
	}
	return nil
}

// register declares one flag per schema entry that has a short or long option.
func (p *flagParser) register(fs *pflag.FlagSet) error {
	shorts := make(map[rune]bool)
	longs := make(map[string]bool)

	for i := range p.schema {
		e := &p.schema[i]
		if e.Short == 0 && e.Long == "" {
			continue
		}

		if e.Path == "" && e.Type != TypeUsage {
			return newError(KindStructural, "path is missing for option %s", optionName(e))
		}
		switch e.Type {
		case TypeString, TypeInt, TypeFloat, TypeBool, TypeDocument, TypeUsage:
		default:
			return newError(KindStructural, "unsupported config node type '%s' used in schema", e.Type)
		}

		shorthand := ""
		if e.Short != 0 {
			if e.Short > unicode.MaxASCII || !unicode.IsPrint(e.Short) || e.Short == '-' {
				return newError(KindStructural, "short option '%c' is not a printable ASCII character", e.Short)
			}
			if shorts[e.Short] {
				return newError(KindStructural, "short option '%c' is used more than once", e.Short)
			}
			shorts[e.Short] = true
			shorthand = string(e.Short)
		}

		if e.Long != "" && !isValidLongOption(e.Long) {
			return newError(KindStructural, "long option '%s' contains invalid characters", e.Long)
		}

		name := e.Long
		hidden := false
		if name == "" {
			// pflag needs a long name. pflag splits "--name=value" at the first
			// '=', so a name containing one can never be typed.
			name = "short=" + shorthand
			hidden = true
		}
		if longs[name] {
			return newError(KindStructural, "long option '%s' is used more than once", name)
		}
		longs[name] = true

		flag := fs.VarPF(&entryValue{p: p, e: e}, name, shorthand, e.Help)
		flag.Hidden = hidden
		if e.Type == TypeBool || e.Type == TypeUsage {
			flag.NoOptDefVal = "true"
		}
	}
	return nil
}

func (p *flagParser) apply(e *Entry, text string) error {
	o := p.o
	switch e.Type {
	case TypeUsage:
		usage := Usage(o.prog, e.UsageDesc, p.schema)
		if e.Usage != nil {
			e.Usage(usage)
			return nil
		}
		fmt.Fprintln(o.usageOutput, usage)
		o.exit(0)
		return nil

	case TypeDocument:
		if err := o.read(p.root, text); err != nil {
			return err
		}
		if err := p.root.SetString(e.Path, text); err != nil {
			return err
		}

	default:
		v, err := coerceEntry(e, text, "option "+optionName(e))
		if err != nil {
			return err
		}
		if err := p.root.Set(e.Path, e.Type, v); err != nil {
			return err
		}
	}

	o.logger.Debug("option applied",
		zap.String("path", e.Path),
		zap.String("option", optionName(e)),
		zap.String("source", "flag"))
	return nil
}

// optionName renders the entry's options the way they are typed.
func optionName(e *Entry) string {
	switch {
	case e.Long != "" && e.Short != 0:
		return fmt.Sprintf("--%s/-%c", e.Long, e.Short)
	case e.Long != "":
		return "--" + e.Long
	default:
		return fmt.Sprintf("-%c", e.Short)
	}
}

// coerceEntry converts text for e, naming where the text came from on failure.
func coerceEntry(e *Entry, text, origin string) (any, error) {
	v, err := coerce(e.storedType(), text)
	if err == nil {
		return v, nil
	}
	if KindOf(err) == KindNumeric {
		return nil, wrapError(KindNumeric, err, "invalid value for %s", origin)
	}
	return nil, newError(KindParse, "expected %s for %s", e.storedType(), origin)
}
