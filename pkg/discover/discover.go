// Package discover locates Frei0r plugins on disk. It is a thin layer over
// pkg/host: it resolves the conventional search directories, scans them for
// shared objects and deduplicates plugins by declared name.
package discover

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/justyntemme/frei0rgo/pkg/host"
)

// SubdirName is the directory name Frei0r plugins install under.
const SubdirName = "frei0r-1"

// Opener loads one plugin candidate. host.Open is the production opener.
type Opener func(path string) (*host.Plugin, error)

// Directories returns the directories to search for plugins, in precedence
// order: the FREI0R_PATH environment variable when set (colon-separated),
// otherwise ~/.frei0r-1, /usr/local/lib/frei0r-1 and /usr/lib/frei0r-1. A
// non-empty vendor is appended as a subdirectory of each default.
func Directories(vendor string) []string {
	if env := os.Getenv("FREI0R_PATH"); env != "" {
		return strings.Split(env, ":")
	}
	dirs := []string{
		filepath.Join(os.Getenv("HOME"), "."+SubdirName),
		filepath.Join("/usr/local/lib", SubdirName),
		filepath.Join("/usr/lib", SubdirName),
	}
	if vendor != "" {
		for i, d := range dirs {
			dirs[i] = filepath.Join(d, vendor)
		}
	}
	return dirs
}

// Scan opens every .so file under dirs in order and returns the loaded
// plugins keyed nowhere - the slice preserves directory precedence. When two
// candidates declare the same plugin name, the one from the earlier
// directory wins and the later one is closed again. Candidates that fail to
// load are logged and skipped.
func Scan(dirs []string, open Opener) []*host.Plugin {
	seen := make(map[string]bool)
	var plugins []*host.Plugin
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue // missing search directories are expected
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".so") {
				continue
			}
			path := filepath.Join(dir, e.Name())
			p, err := open(path)
			if err != nil {
				logrus.WithError(err).WithField("path", path).Warn("skipping frei0r candidate")
				continue
			}
			name := p.Metadata().Name
			if seen[name] {
				if err := p.Close(); err != nil {
					logrus.WithError(err).WithField("path", path).Warn("closing duplicate plugin")
				}
				continue
			}
			seen[name] = true
			plugins = append(plugins, p)
		}
	}
	return plugins
}

// FindAll scans the conventional directories with the production opener.
func FindAll(vendor string) []*host.Plugin {
	return Scan(Directories(vendor), host.Open)
}

// All returns the discovered plugins keyed by declared name.
func All(vendor string) map[string]*host.Plugin {
	byName := make(map[string]*host.Plugin)
	for _, p := range FindAll(vendor) {
		byName[p.Metadata().Name] = p
	}
	return byName
}
