package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/amarbel-llc/purse-first/libs/go-mcp/jsonrpc"

	"github.com/amarbel-llc/spelld/internal/codeaction"
	"github.com/amarbel-llc/spelld/internal/document"
	"github.com/amarbel-llc/spelld/internal/lsp"
)

type Handler struct {
	server *Server
}

func NewHandler(s *Server) *Handler {
	return &Handler{server: s}
}

func (h *Handler) Handle(ctx context.Context, msg *jsonrpc.Message) (*jsonrpc.Message, error) {
	slog.Debug("received message", "method", msg.Method)

	switch msg.Method {
	case lsp.MethodInitialize:
		return h.handleInitialize(msg)
	case lsp.MethodInitialized:
		return nil, nil
	case lsp.MethodShutdown:
		return h.handleShutdown(msg)
	case lsp.MethodExit:
		h.server.Close()
		return nil, nil
	case lsp.MethodTextDocumentDidOpen:
		return h.handleDidOpen(msg)
	case lsp.MethodTextDocumentDidChange:
		return h.handleDidChange(msg)
	case lsp.MethodTextDocumentDidClose:
		return h.handleDidClose(msg)
	case lsp.MethodTextDocumentCodeAction:
		return h.handleCodeAction(ctx, msg)
	case lsp.MethodWorkspaceDidChangeConfiguration:
		h.server.settings.Bump()
		return nil, nil
	case lsp.MethodWorkspaceDidChangeFolders:
		return h.handleDidChangeFolders(msg)
	default:
		if strings.HasPrefix(msg.Method, "$/") {
			return nil, nil
		}
		if msg.IsRequest() {
			return jsonrpc.NewErrorResponse(*msg.ID, jsonrpc.MethodNotFound, "unsupported method: "+msg.Method, nil)
		}
		return nil, nil
	}
}

func (h *Handler) handleInitialize(msg *jsonrpc.Message) (*jsonrpc.Message, error) {
	var params lsp.InitializeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return jsonrpc.NewErrorResponse(*msg.ID, jsonrpc.InvalidParams, "invalid params", nil)
	}

	folders := params.WorkspaceFolders
	if len(folders) == 0 && params.RootURI != nil && *params.RootURI != "" {
		folders = []lsp.WorkspaceFolder{{
			URI:  *params.RootURI,
			Name: filepath.Base(params.RootURI.Path()),
		}}
	}

	h.server.mu.Lock()
	h.server.folders = folders
	h.server.initialized = true
	h.server.mu.Unlock()

	if params.ClientInfo != nil {
		slog.Info("connected to client", "name", params.ClientInfo.Name, "version", params.ClientInfo.Version)
	}

	result := lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    lsp.TextDocumentSyncKindIncremental,
			},
			CodeActionProvider: lsp.CodeActionOptions{
				CodeActionKinds: []lsp.CodeActionKind{lsp.CodeActionKindQuickFix},
			},
			ExecuteCommandProvider: &lsp.ExecuteCommandOptions{
				Commands: []string{
					codeaction.CommandEditText,
					codeaction.CommandAddWordToUser,
					codeaction.CommandAddWordToFolder,
					codeaction.CommandAddWordToWorkspace,
				},
			},
			Workspace: &lsp.ServerWorkspaceCaps{
				WorkspaceFolders: &lsp.WorkspaceFoldersServerCaps{
					Supported:           true,
					ChangeNotifications: true,
				},
			},
		},
		ServerInfo: &lsp.ServerInfo{Name: h.server.name, Version: h.server.version},
	}
	return jsonrpc.NewResponse(*msg.ID, result)
}

func (h *Handler) handleShutdown(msg *jsonrpc.Message) (*jsonrpc.Message, error) {
	h.server.mu.Lock()
	h.server.shutdownRequested = true
	h.server.mu.Unlock()
	return jsonrpc.NewResponse(*msg.ID, nil)
}

func (h *Handler) handleDidOpen(msg *jsonrpc.Message) (*jsonrpc.Message, error) {
	var params lsp.DidOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		slog.Error("could not parse didOpen params", "err", err)
		return nil, nil
	}
	td := params.TextDocument
	h.server.docs.Open(td.URI, td.LanguageID, td.Version, td.Text)
	return nil, nil
}

func (h *Handler) handleDidChange(msg *jsonrpc.Message) (*jsonrpc.Message, error) {
	var params lsp.DidChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		slog.Error("could not parse didChange params", "err", err)
		return nil, nil
	}
	uri := params.TextDocument.URI
	_, err := h.server.docs.Apply(uri, params.TextDocument.Version, params.ContentChanges)
	if err != nil && !errors.Is(err, document.ErrStaleVersion) {
		slog.Error("could not apply document change", "uri", uri, "err", err)
	}
	return nil, nil
}

func (h *Handler) handleDidClose(msg *jsonrpc.Message) (*jsonrpc.Message, error) {
	var params lsp.DidCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		slog.Error("could not parse didClose params", "err", err)
		return nil, nil
	}
	h.server.docs.Close(params.TextDocument.URI)
	h.server.actions.Cache().Evict(params.TextDocument.URI)
	return nil, nil
}

func (h *Handler) handleCodeAction(ctx context.Context, msg *jsonrpc.Message) (*jsonrpc.Message, error) {
	var params lsp.CodeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return jsonrpc.NewErrorResponse(*msg.ID, jsonrpc.InvalidParams, "invalid params", nil)
	}

	actions, err := h.server.actions.HandleCodeAction(ctx, &params)
	if err != nil {
		slog.Error("codeAction failed", "uri", params.TextDocument.URI, "err", err)
		return jsonrpc.NewErrorResponse(*msg.ID, jsonrpc.InternalError, err.Error(), nil)
	}
	return jsonrpc.NewResponse(*msg.ID, actions)
}

func (h *Handler) handleDidChangeFolders(msg *jsonrpc.Message) (*jsonrpc.Message, error) {
	var params lsp.DidChangeWorkspaceFoldersParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		slog.Error("could not parse didChangeWorkspaceFolders params", "err", err)
		return nil, nil
	}

	removed := make(map[lsp.DocumentURI]struct{}, len(params.Event.Removed))
	for _, f := range params.Event.Removed {
		removed[f.URI] = struct{}{}
	}

	h.server.mu.Lock()
	kept := h.server.folders[:0]
	for _, f := range h.server.folders {
		if _, gone := removed[f.URI]; !gone {
			kept = append(kept, f)
		}
	}
	h.server.folders = append(kept, params.Event.Added...)
	h.server.mu.Unlock()

	// Folder membership feeds folder-level config, so topology changes act
	// like a configuration change.
	h.server.settings.Bump()
	return nil, nil
}
