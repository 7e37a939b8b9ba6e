package run

import (
	"os"
	"path/filepath"
)

// FindHook returns the path of the named hook under dir, or "" when no
// executable file of that name exists there.
func FindHook(dir, name string) string {
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}
	if info.Mode().Perm()&0o111 == 0 {
		return ""
	}
	return path
}

// Hook runs the named hook from dir with the extra environment entries
// applied, stdin suppressed and stdout merged into stderr. A hook that is
// absent or not executable is not an error: the result is 0 without
// anything being launched.
func Hook(dir string, env []string, name string, args ...string) (int, error) {
	path := FindHook(dir, name)
	if path == "" {
		return 0, nil
	}
	cmd := &Command{
		Program:        path,
		Args:           append([]string{path}, args...),
		Env:            env,
		Stdin:          IONull,
		StdoutToStderr: true,
	}
	return cmd.Run()
}

// HookWithIndex runs the hook with an alternate index file named in its
// environment, for hooks that must see a staging state other than the
// default one.
func HookWithIndex(dir, indexFile, name string, args ...string) (int, error) {
	return Hook(dir, []string{"GIT_INDEX_FILE=" + indexFile}, name, args...)
}
