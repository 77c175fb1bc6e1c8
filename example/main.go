// FILE: lixenwraith/conftree/example/main.go
package main

import (
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/lixenwraith/conftree"
)

// LogConfig is scanned from the "log" section of the tree.
type LogConfig struct {
	Dir string `yaml:"dir"`
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("❌ Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	schema := conftree.Schema{
		{
			Path:  "config_file",
			Type:  conftree.TypeDocument,
			Short: 'c',
			Long:  "config-file",
			Help:  "path to the configuration document",
			Env:   "APP_CONFIG_FILE",
		},
		{
			Path:     "log.dir",
			Type:     conftree.TypeString,
			Short:    'l',
			Long:     "log-dir",
			ArgType:  "<dir>",
			Help:     "directory for log files",
			Env:      "APP_LOG_DIR",
			Default:  "/var/log/app",
			Required: true,
			Validate: dirExists,
		},
		{
			Path:    "daemonize",
			Type:    conftree.TypeBool,
			Short:   'D',
			Long:    "daemonize",
			Help:    "run in the background",
			Default: "false",
		},
		{
			Type:      conftree.TypeUsage,
			Short:     'h',
			Long:      "help",
			Help:      "print this help and exit",
			UsageDesc: "All your base are belong to us.",
		},
	}

	root, err := conftree.NewBuilder().
		WithSchema(schema...).
		WithProgramName("app").
		WithLogger(logger).
		WithDocumentDiscovery(conftree.DefaultDiscoveryOptions("app")).
		Build()
	if err != nil {
		log.Fatalf("❌ Configuration failed: %v", err)
	}
	defer root.Destroy()

	var logCfg LogConfig
	if err := root.Scan("log", &logCfg); err != nil {
		log.Fatalf("❌ Failed to scan log section: %v", err)
	}

	daemonize, _, err := root.GetBool("daemonize")
	if err != nil {
		log.Fatalf("❌ Failed to read daemonize: %v", err)
	}

	log.Printf("✅ log.dir   = %s", logCfg.Dir)
	log.Printf("✅ daemonize = %t", daemonize)

	if doc, ok, _ := root.GetString("config_file"); ok {
		log.Printf("✅ document  = %s", doc)
	}
}

// dirExists rejects a log directory that is missing or not a directory.
func dirExists(path string, n *conftree.Node) error {
	if n == nil {
		return nil
	}
	dir, _ := n.AsString()
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("log directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("log directory %q is not a directory", dir)
	}
	return nil
}
