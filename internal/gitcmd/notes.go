package gitcmd

import "strings"

// DefaultNotesRef is where git stores notes unless told otherwise.
const DefaultNotesRef = "refs/notes/commits"

// Note pairs a note object with the commit it annotates.
type Note struct {
	NoteSHA   string `json:"note_sha"`
	CommitSHA string `json:"commit_sha"`
}

func notesArgs(ref string, rest ...string) []string {
	args := []string{"notes"}
	if ref != "" && ref != DefaultNotesRef {
		args = append(args, "--ref", ref)
	}
	return append(args, rest...)
}

// NotesList returns all notes under ref.
func NotesList(ref string) ([]Note, error) {
	out, err := Run(notesArgs(ref, "list")...)
	if err != nil {
		// An absent notes ref is an empty list, not a failure.
		if strings.Contains(err.Error(), "No note found") ||
			strings.Contains(err.Error(), "not a valid ref") {
			return nil, nil
		}
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	var notes []Note
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		notes = append(notes, Note{NoteSHA: fields[0], CommitSHA: fields[1]})
	}
	return notes, nil
}

// NotesShow returns the note text attached to object under ref.
func NotesShow(ref, object string) (string, error) {
	return Run(notesArgs(ref, "show", object)...)
}

// NotesAdd attaches message to object under ref, replacing any
// existing note.
func NotesAdd(ref, object, message string) error {
	_, err := Run(notesArgs(ref, "add", "-f", "-m", message, object)...)
	return err
}

// NotesAddFromInput attaches message read from input to object under
// ref, feeding git's stdin through the async pump.
func NotesAddFromInput(ref, object, input string) error {
	args := notesArgs(ref, "add", "-f", "-F", "-", object)
	_, err := RunWithInput(input, args...)
	return err
}

// NotesRemove deletes the note attached to object under ref.
func NotesRemove(ref, object string) error {
	_, err := Run(notesArgs(ref, "remove", object)...)
	return err
}
