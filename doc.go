// File: lixenwraith/conftree/doc.go

// Package conftree provides a hierarchical configuration tree for Go
// applications, populated from YAML, JSON and TOML documents, command-line
// options, environment variables and default values.
//
// Features:
//   - Typed nodes: dictionaries, arrays, strings, integers, booleans and floats
//   - Dot-separated paths with "[n]" array segments (server.hosts.[0].port)
//   - Intermediate containers are created on write
//   - Scalar type inference: quoted text stays a string, otherwise integer,
//     float, boolean, then string
//   - Event-driven document ingestion with a bounded nesting depth
//   - Schema-driven precedence pipeline with usage output
//   - Struct decoding via mapstructure
//
// Quick Start:
//
//	root := conftree.NewRoot()
//	defer root.Destroy()
//
//	if err := conftree.ReadFile(root, "app.yaml"); err != nil {
//	    log.Fatal(err)
//	}
//
//	port, err := root.GetInt("server.port")
//	host, err := root.GetString("server.hosts.[0].name")
//
// Schema Pipeline:
//
//	schema := conftree.Schema{
//	    {Path: "config_file", Type: conftree.TypeDocument, Short: 'c', Long: "config-file", Env: "APP_CONFIG_FILE"},
//	    {Path: "log.dir", Type: conftree.TypeString, Short: 'l', Long: "log-dir", Default: "/var/log/app"},
//	    {Type: conftree.TypeUsage, Short: 'h', Long: "help"},
//	}
//	err := conftree.Initialize(root, schema, os.Args[1:])
//
// Precedence (highest to lowest):
//  1. Command-line options, applied in argument order
//  2. Environment variables
//  3. Default values
//
// Later stages only fill paths that are still unset.
//
// Concurrency:
// A tree is not safe for concurrent mutation. Build it once at startup and
// share it read-only, or guard it externally.
package conftree
