package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// PathResolver finds dictionary files relative to the places a user is likely to
// keep them: as given, next to the executable, in the working dir and in the config dir.
type PathResolver struct {
	executableDir string
	configDir     string
}

// NewPathResolver creates a resolver. configDir may be empty.
func NewPathResolver(configDir string) *PathResolver {
	execDir, err := GetExecutableDir()
	if err != nil {
		log.Debugf("Could not determine executable dir: %v", err)
	} else if resolved, err := filepath.EvalSymlinks(execDir); err == nil {
		execDir = resolved
	}

	pr := &PathResolver{
		executableDir: execDir,
		configDir:     configDir,
	}
	log.Debugf("PathResolver initialized: execDir=%s, configDir=%s", execDir, configDir)
	return pr
}

// Candidates lists the locations tried for path, in order. Absolute paths are
// returned alone.
func (pr *PathResolver) Candidates(path string) []string {
	if path == "" {
		return nil
	}
	if filepath.IsAbs(path) {
		return []string{path}
	}

	candidates := []string{path}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, path))
	}
	if pr.executableDir != "" {
		candidates = append(candidates,
			filepath.Join(pr.executableDir, path),
			filepath.Join(pr.executableDir, "data", path),
		)
	}
	if pr.configDir != "" {
		candidates = append(candidates, filepath.Join(pr.configDir, path))
	}
	return candidates
}

// Resolve returns the first existing candidate for path. When none exists the
// path itself is returned with false.
func (pr *PathResolver) Resolve(path string) (string, bool) {
	for _, candidate := range pr.Candidates(path) {
		if FileExists(candidate) {
			log.Debugf("Resolved %s to %s", path, candidate)
			return candidate, true
		}
		log.Debugf("Path candidate not found: %s", candidate)
	}
	return path, false
}

// ConfigDir returns the directory used as last resort.
func (pr *PathResolver) ConfigDir() string {
	return pr.configDir
}
