package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/keelson/internal/gitcmd"
)

// StatusInput is the input for the status tool.
type StatusInput struct{}

// StatusOutput is the output for the status tool.
type StatusOutput struct {
	Root   string `json:"root"   jsonschema:"repository root directory"`
	Branch string `json:"branch" jsonschema:"current branch name"`
	HEAD   string `json:"head"   jsonschema:"full SHA of HEAD"`
	Dirty  bool   `json:"dirty"  jsonschema:"whether the working tree has uncommitted changes"`
}

func handleStatus() mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		root, err := gitcmd.RepoRoot()
		if err != nil {
			return nil, StatusOutput{}, err
		}
		branch, err := gitcmd.CurrentBranch()
		if err != nil {
			return nil, StatusOutput{}, err
		}
		head, err := gitcmd.HEAD()
		if err != nil {
			return nil, StatusOutput{}, err
		}
		return nil, StatusOutput{
			Root:   root,
			Branch: branch,
			HEAD:   head,
			Dirty:  gitcmd.HasUncommittedChanges(),
		}, nil
	}
}

// RefsListInput is the input for the refs_list tool.
type RefsListInput struct {
	Patterns []string `json:"patterns,omitempty" jsonschema:"ref patterns to match, all refs when empty"`
}

// RefsListOutput is the output for the refs_list tool.
type RefsListOutput struct {
	Count int          `json:"count" jsonschema:"number of refs returned"`
	Refs  []gitcmd.Ref `json:"refs"  jsonschema:"matching references"`
}

func handleRefsList() mcp.ToolHandlerFor[RefsListInput, RefsListOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input RefsListInput) (*mcp.CallToolResult, RefsListOutput, error) {
		refs, err := gitcmd.ForEachRef(input.Patterns...)
		if err != nil {
			return nil, RefsListOutput{}, err
		}
		return nil, RefsListOutput{Count: len(refs), Refs: refs}, nil
	}
}

// NotesListInput is the input for the notes_list tool.
type NotesListInput struct {
	Ref string `json:"ref,omitempty" jsonschema:"notes ref, refs/notes/commits when empty"`
}

// NotesListOutput is the output for the notes_list tool.
type NotesListOutput struct {
	Count int           `json:"count" jsonschema:"number of notes returned"`
	Notes []gitcmd.Note `json:"notes" jsonschema:"note and annotated commit SHAs"`
}

func handleNotesList() mcp.ToolHandlerFor[NotesListInput, NotesListOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input NotesListInput) (*mcp.CallToolResult, NotesListOutput, error) {
		notes, err := gitcmd.NotesList(input.Ref)
		if err != nil {
			return nil, NotesListOutput{}, err
		}
		return nil, NotesListOutput{Count: len(notes), Notes: notes}, nil
	}
}

// NotesShowInput is the input for the notes_show tool.
type NotesShowInput struct {
	Object string `json:"object"        jsonschema:"commit to read the note from"`
	Ref    string `json:"ref,omitempty" jsonschema:"notes ref, refs/notes/commits when empty"`
}

// NotesShowOutput is the output for the notes_show tool.
type NotesShowOutput struct {
	Object string `json:"object" jsonschema:"the annotated commit"`
	Text   string `json:"text"   jsonschema:"the note text"`
}

func handleNotesShow() mcp.ToolHandlerFor[NotesShowInput, NotesShowOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input NotesShowInput) (*mcp.CallToolResult, NotesShowOutput, error) {
		if input.Object == "" {
			return nil, NotesShowOutput{}, errors.New("object is required")
		}
		text, err := gitcmd.NotesShow(input.Ref, input.Object)
		if err != nil {
			return nil, NotesShowOutput{}, err
		}
		return nil, NotesShowOutput{Object: input.Object, Text: text}, nil
	}
}

// NotesAddInput is the input for the notes_add tool.
type NotesAddInput struct {
	Object  string `json:"object"        jsonschema:"commit to annotate"`
	Message string `json:"message"       jsonschema:"note text to attach"`
	Ref     string `json:"ref,omitempty" jsonschema:"notes ref, refs/notes/commits when empty"`
}

// NotesAddOutput is the output for the notes_add tool.
type NotesAddOutput struct {
	Object string `json:"object" jsonschema:"the annotated commit"`
}

func handleNotesAdd() mcp.ToolHandlerFor[NotesAddInput, NotesAddOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input NotesAddInput) (*mcp.CallToolResult, NotesAddOutput, error) {
		if input.Object == "" || input.Message == "" {
			return nil, NotesAddOutput{}, errors.New("object and message are required")
		}
		if err := gitcmd.NotesAdd(input.Ref, input.Object, input.Message); err != nil {
			return nil, NotesAddOutput{}, err
		}
		return nil, NotesAddOutput{Object: input.Object}, nil
	}
}

// RemoteListInput is the input for the remote_list tool.
type RemoteListInput struct{}

// RemoteListOutput is the output for the remote_list tool.
type RemoteListOutput struct {
	Count   int             `json:"count"   jsonschema:"number of remotes returned"`
	Remotes []gitcmd.Remote `json:"remotes" jsonschema:"configured remotes"`
}

func handleRemoteList() mcp.ToolHandlerFor[RemoteListInput, RemoteListOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ RemoteListInput) (*mcp.CallToolResult, RemoteListOutput, error) {
		remotes, err := gitcmd.RemoteList()
		if err != nil {
			return nil, RemoteListOutput{}, err
		}
		return nil, RemoteListOutput{Count: len(remotes), Remotes: remotes}, nil
	}
}
