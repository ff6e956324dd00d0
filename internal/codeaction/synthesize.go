package codeaction

import (
	"github.com/amarbel-llc/spelld/internal/document"
	"github.com/amarbel-llc/spelld/internal/lsp"
)

// SuggestFunc produces replacement candidates for one misspelled word.
type SuggestFunc func(word string) []string

// Synthesize turns the request's diagnostics into a flat, ordered list of
// independently applicable fix actions. Stateless, single pass:
//
//  1. Only diagnostics from this engine's validator participate; foreign
//     diagnostics are inert.
//  2. Each eligible diagnostic contributes one replace action per
//     suggestion, bound to that diagnostic alone.
//  3. The first non-empty misspelled word wins for the add-word family,
//     falling back to the request range when diagnostics yielded none.
//  4. Add-to-user fires when a word was found and at least one eligible
//     diagnostic exists; add-to-folder additionally with >=1 workspace
//     folder, add-to-workspace with >=2.
func Synthesize(doc *document.Document, params *lsp.CodeActionParams, suggest SuggestFunc, folderCount int) []lsp.CodeAction {
	id := docIdentity{uri: doc.URI, version: doc.Version}

	var actions []lsp.CodeAction
	var eligible []lsp.Diagnostic
	word := ""

	for _, diag := range params.Context.Diagnostics {
		if diag.Source != DiagnosticSource {
			continue
		}
		eligible = append(eligible, diag)

		diagWord := doc.WordAt(diag.Range)
		if word == "" {
			word = diagWord
		}
		for _, suggestion := range suggest(diagWord) {
			actions = append(actions, replaceAction(id, diag, suggestion))
		}
	}

	if len(eligible) == 0 {
		return actions
	}
	if word == "" {
		word = doc.WordAt(params.Range)
	}
	if word == "" {
		return actions
	}

	actions = append(actions, addWordAction(CommandAddWordToUser, "user", id, word, eligible))
	if folderCount >= 1 {
		actions = append(actions, addWordAction(CommandAddWordToFolder, "folder", id, word, eligible))
	}
	if folderCount >= 2 {
		actions = append(actions, addWordAction(CommandAddWordToWorkspace, "workspace", id, word, eligible))
	}
	return actions
}
