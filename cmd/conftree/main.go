package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/conftree"
)

var version = "0.1.0"

func main() {
	var verbose bool
	var format, driver, colorMode string
	var maxSize int64

	root := &cobra.Command{
		Use:   "conftree",
		Short: "conftree - inspect configuration documents as a typed tree",
		Long: `conftree reads YAML, JSON or TOML documents into a typed configuration tree
and prints values, paths or the whole tree.

Example:
  conftree get app.yaml server.hosts.[0].port`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVarP(&format, "format", "f", "", "Document format (yaml, json, toml); detected when empty")
	root.PersistentFlags().StringVar(&driver, "yaml-driver", "std", "YAML parser (std, goccy)")
	root.PersistentFlags().Int64Var(&maxSize, "max-size", conftree.DefaultMaxDocumentSize, "Maximum document size in bytes")
	root.PersistentFlags().StringVar(&colorMode, "color", "auto", "Colorize output (auto, always, never)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		switch colorMode {
		case "auto":
			color.NoColor = !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())
		case "always":
			color.NoColor = false
		case "never":
			color.NoColor = true
		default:
			return fmt.Errorf("unknown color mode %q", colorMode)
		}
		return nil
	}

	// load reads every file into a fresh tree. Later files overwrite earlier ones.
	load := func(files []string) (*conftree.Node, *zap.Logger, error) {
		logger := zap.NewNop()
		if verbose {
			l, err := zap.NewDevelopment()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to create logger: %w", err)
			}
			logger = l
		}

		opts := []conftree.ReadOption{
			conftree.WithFormat(conftree.Format(format)),
			conftree.WithMaxFileSize(maxSize),
			conftree.WithReadLogger(logger),
		}
		switch driver {
		case "std":
		case "goccy":
			opts = append(opts, conftree.WithYAMLDriver(conftree.YAMLDriverGoccy))
		default:
			return nil, nil, fmt.Errorf("unknown yaml driver %q", driver)
		}

		tree := conftree.NewRoot()
		for _, file := range files {
			if err := conftree.ReadFile(tree, file, opts...); err != nil {
				tree.Destroy()
				return nil, nil, err
			}
		}
		return tree, logger, nil
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("conftree v%s\n", version)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "get <file> <path>",
		Short: "Print the value at a path",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, logger, err := load(args[:1])
			if err != nil {
				return err
			}
			defer tree.Destroy()
			defer func() { _ = logger.Sync() }()

			n, found, err := tree.Get(args[1])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("path '%s' not found", args[1])
			}
			if n.Type().IsScalar() {
				fmt.Fprintln(cmd.OutOrStdout(), n.String())
				return nil
			}
			return printJSON(cmd, conftree.ToValue(n))
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "paths <file>...",
		Short: "List every leaf path with its type and value",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, logger, err := load(args)
			if err != nil {
				return err
			}
			defer tree.Destroy()
			defer func() { _ = logger.Sync() }()

			pathColor := color.New(color.FgCyan)
			typeColor := color.New(color.FgYellow)
			return conftree.Walk(tree, func(path string, n *conftree.Node) error {
				if n.Type().IsScalar() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) = %s\n",
						pathColor.Sprint(path), typeColor.Sprint(n.Type()), n)
				}
				return nil
			})
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "dump <file>...",
		Short: "Print the merged tree as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, logger, err := load(args)
			if err != nil {
				return err
			}
			defer tree.Destroy()
			defer func() { _ = logger.Sync() }()

			return printJSON(cmd, conftree.ToValue(tree))
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "check <file>...",
		Short: "Check that documents parse",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, file := range args {
				tree, logger, err := load([]string{file})
				if err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
				flat, err := conftree.Flatten(tree)
				tree.Destroy()
				_ = logger.Sync()
				if err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d values)\n", file, color.GreenString("ok"), len(flat))
			}
			return nil
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
