package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

const (
	// UserConfigName is the config file name in the user's home directory.
	UserConfigName = ".telly_done"
	// SystemConfigPath is the system-wide config file.
	SystemConfigPath = "/etc/telly_done"
)

// Paths lists the config files tried in order when no explicit file is given.
// The first one that exists and parses wins.
type Paths struct {
	Candidates []string
}

// DefaultPaths returns the standard candidates for the given home directory:
// ~/.telly_done followed by /etc/telly_done.
func DefaultPaths(home string) Paths {
	var candidates []string
	if home != "" {
		candidates = append(candidates, filepath.Join(home, UserConfigName))
	}
	candidates = append(candidates, SystemConfigPath)
	return Paths{Candidates: candidates}
}

// UserConfigPath returns ~/.telly_done for the invoking user.
func UserConfigPath() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, UserConfigName), nil
}

// HomeDir returns the home directory of the invoking user. Under sudo the
// account named by SUDO_UID is used so that the caller's config is found.
func HomeDir() (string, error) {
	if uid := strings.TrimSpace(os.Getenv("SUDO_UID")); uid != "" {
		u, err := user.LookupId(uid)
		if err == nil && u.HomeDir != "" {
			return u.HomeDir, nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return home, nil
}

// ExpandHomePath expands a leading ~/ to the invoking user's home directory.
func ExpandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := HomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
