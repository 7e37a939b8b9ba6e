package gitcmd

import "strings"

// Remote is one configured remote with its fetch URL.
type Remote struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// RemoteList returns the configured remotes.
func RemoteList() ([]Remote, error) {
	out, err := Run("remote", "-v")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	seen := make(map[string]bool)
	var remotes []Remote
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || seen[fields[0]] {
			continue
		}
		seen[fields[0]] = true
		remotes = append(remotes, Remote{Name: fields[0], URL: fields[1]})
	}
	return remotes, nil
}

// RemoteAdd configures a new remote.
func RemoteAdd(name, url string) error {
	_, err := Run("remote", "add", name, url)
	return err
}

// RemoteRemove deletes a configured remote.
func RemoteRemove(name string) error {
	_, err := Run("remote", "remove", name)
	return err
}

// RemoteRename renames a configured remote.
func RemoteRename(oldName, newName string) error {
	_, err := Run("remote", "rename", oldName, newName)
	return err
}
