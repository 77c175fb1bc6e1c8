// FILE: lixenwraith/conftree/discovery.go
package conftree

import (
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// DiscoveryOptions describes where a default document may live.
type DiscoveryOptions struct {
	Name          string   // document base name, without extension
	Extensions    []string // tried in order within each directory
	Paths         []string // directories searched first
	EnvVar        string   // variable holding an explicit document path
	UseXDG        bool
	UseCurrentDir bool
}

// DefaultDiscoveryOptions searches for name with every supported extension
// in the working directory and the XDG directories, honoring NAME_CONFIG.
func DefaultDiscoveryOptions(name string) DiscoveryOptions {
	return DiscoveryOptions{
		Name:          name,
		Extensions:    []string{".yaml", ".yml", ".json", ".toml"},
		EnvVar:        strings.ToUpper(name) + "_CONFIG",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// DiscoverDocument returns the first existing document matching opts. A
// non-empty EnvVar value wins without checking the file.
func DiscoverDocument(opts DiscoveryOptions) (string, bool) {
	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return path, true
		}
	}
	for path := range documentCandidates(opts) {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// documentCandidates yields Name plus each extension for every search
// directory: Paths, then the working directory, then the XDG directories.
func documentCandidates(opts DiscoveryOptions) iter.Seq[string] {
	return func(yield func(string) bool) {
		dirs := slices.Clone(opts.Paths)
		if opts.UseCurrentDir {
			if cwd, err := os.Getwd(); err == nil {
				dirs = append(dirs, cwd)
			}
		}
		if opts.UseXDG {
			dirs = append(dirs, xdgDirs(opts.Name)...)
		}

		for _, dir := range dirs {
			for _, ext := range opts.Extensions {
				if !yield(filepath.Join(dir, opts.Name+ext)) {
					return
				}
			}
		}
	}
}

// xdgDirs lists the per-application directories of the XDG base directory
// layout, user directory first.
func xdgDirs(name string) []string {
	user := os.Getenv("XDG_CONFIG_HOME")
	if user == "" {
		if home := os.Getenv("HOME"); home != "" {
			user = filepath.Join(home, ".config")
		}
	}

	system := filepath.SplitList(os.Getenv("XDG_CONFIG_DIRS"))
	if len(system) == 0 {
		system = []string{"/etc/xdg", "/etc"}
	}

	var dirs []string
	if user != "" {
		dirs = append(dirs, filepath.Join(user, name))
	}
	for _, dir := range system {
		dirs = append(dirs, filepath.Join(dir, name))
	}
	return dirs
}
