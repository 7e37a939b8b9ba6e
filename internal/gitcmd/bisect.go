package gitcmd

import "strings"

// Bisect drives git's binary-search state machine. Each call shells
// out once; git keeps the search state in the repository.

// BisectStart begins a bisect session with known bad and good commits.
func BisectStart(bad, good string) (string, error) {
	return Run("bisect", "start", bad, good)
}

// BisectMark records a verdict for the current revision. verdict is
// "good", "bad", or "skip"; git replies with the next revision to test
// or the final culprit.
func BisectMark(verdict string) (string, error) {
	return Run("bisect", verdict)
}

// BisectReset ends the session and returns to the original branch.
func BisectReset() error {
	_, err := Run("bisect", "reset")
	return err
}

// BisectDone reports whether the session has identified the first bad
// commit, returning its SHA when it has.
func BisectDone() (string, bool) {
	sha, err := Run("rev-parse", "--verify", "-q", "refs/bisect/bad")
	if err != nil || sha == "" {
		return "", false
	}
	// refs/bisect/bad exists for the whole session; the log says
	// whether the search has converged.
	log, err := Run("bisect", "log")
	if err != nil {
		return "", false
	}
	for _, line := range strings.Split(log, "\n") {
		if strings.HasPrefix(line, "# first bad commit") {
			return sha, true
		}
	}
	return "", false
}
