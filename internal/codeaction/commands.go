package codeaction

import (
	"fmt"

	"github.com/amarbel-llc/spelld/internal/lsp"
)

// DiagnosticSource tags diagnostics produced by this engine's validator.
// Only diagnostics carrying it are eligible for fix actions.
const DiagnosticSource = "spelld"

// Command identifiers are opaque to this engine; the editor client
// interprets them. Each carries exactly one typed argument struct.
const (
	CommandEditText           = "spelld.editText"
	CommandAddWordToUser      = "spelld.addWordToUserDictionary"
	CommandAddWordToFolder    = "spelld.addWordToFolderDictionary"
	CommandAddWordToWorkspace = "spelld.addWordToWorkspaceDictionary"
)

// EditTextArgs describes a single text replacement pinned to one document
// version, so a client can refuse the edit if the document moved on.
type EditTextArgs struct {
	URI     lsp.DocumentURI `json:"uri"`
	Version int             `json:"version"`
	Edit    lsp.TextEdit    `json:"edit"`
}

// AddWordArgs carries a word to add to a dictionary scope. URI identifies
// the document the word came from; for the folder scope the client resolves
// the containing folder from it.
type AddWordArgs struct {
	Word string          `json:"word"`
	URI  lsp.DocumentURI `json:"uri"`
}

func replaceAction(doc docIdentity, diag lsp.Diagnostic, suggestion string) lsp.CodeAction {
	return lsp.CodeAction{
		Title:       suggestion,
		Kind:        lsp.CodeActionKindQuickFix,
		Diagnostics: []lsp.Diagnostic{diag},
		Command: &lsp.Command{
			Title:   suggestion,
			Command: CommandEditText,
			Arguments: []any{EditTextArgs{
				URI:     doc.uri,
				Version: doc.version,
				Edit:    lsp.TextEdit{Range: diag.Range, NewText: suggestion},
			}},
		},
	}
}

func addWordAction(command, scope string, doc docIdentity, word string, diags []lsp.Diagnostic) lsp.CodeAction {
	title := fmt.Sprintf("Add %q to %s dictionary", word, scope)
	return lsp.CodeAction{
		Title:       title,
		Kind:        lsp.CodeActionKindQuickFix,
		Diagnostics: diags,
		Command: &lsp.Command{
			Title:     title,
			Command:   command,
			Arguments: []any{AddWordArgs{Word: word, URI: doc.uri}},
		},
	}
}

type docIdentity struct {
	uri     lsp.DocumentURI
	version int
}
