package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/amarbel-llc/purse-first/libs/go-mcp/jsonrpc"

	"github.com/amarbel-llc/spelld/internal/codeaction"
	"github.com/amarbel-llc/spelld/internal/config"
	"github.com/amarbel-llc/spelld/internal/control"
	"github.com/amarbel-llc/spelld/internal/dictionary"
	"github.com/amarbel-llc/spelld/internal/document"
	"github.com/amarbel-llc/spelld/internal/lsp"
)

type Server struct {
	name    string
	version string

	settings *config.Manager
	docs     *document.Store
	actions  *codeaction.Handler

	clientConn *jsonrpc.Conn
	controlSrv *control.Server

	mu                sync.RWMutex
	folders           []lsp.WorkspaceFolder
	initialized       bool
	shutdownRequested bool

	// exitErr is set before done closes and read only after.
	exitErr error
	done    chan struct{}
}

func New(name, version string, base config.Settings) *Server {
	s := &Server{
		name:    name,
		version: version,
		docs:    document.NewStore(),
		done:    make(chan struct{}),
	}
	s.settings = config.NewManager(base, s.Folders)

	load := func(ctx context.Context, cfg config.Settings) (dictionary.Dictionary, error) {
		return dictionary.Load(ctx, cfg)
	}
	cache := codeaction.NewSettingsCache(s.settings, load)
	s.actions = codeaction.NewHandler(s.docs, cache, s)

	return s
}

// Folders returns a copy of the current workspace folders.
func (s *Server) Folders() []lsp.WorkspaceFolder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]lsp.WorkspaceFolder, len(s.folders))
	copy(out, s.folders)
	return out
}

// Settings returns the settings manager, shared with the CLI and control
// socket.
func (s *Server) Settings() *config.Manager {
	return s.settings
}

func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	handler := NewHandler(s)
	s.clientConn = jsonrpc.NewConn(os.Stdin, os.Stdout, handler.Handle)

	controlSrv, err := control.NewServer(config.SocketPath(), s.Status, s.reload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not start control socket: %v\n", err)
	} else {
		s.controlSrv = controlSrv
		go s.controlSrv.Run(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.clientConn.Run(ctx)
	}()

	select {
	case err := <-errCh:
		s.shutdown()
		return err
	case <-ctx.Done():
		s.shutdown()
		return ctx.Err()
	case <-s.done:
		return s.exitErr
	}
}

func (s *Server) shutdown() {
	if s.controlSrv != nil {
		s.controlSrv.Close()
	}
}

// Close ends the session on an exit notification. Exiting without a prior
// shutdown request is a protocol violation, surfaced as a Run error so the
// process exits nonzero.
func (s *Server) Close() {
	s.shutdown()
	s.mu.RLock()
	clean := s.shutdownRequested
	s.mu.RUnlock()
	if !clean {
		s.exitErr = errors.New("exit received before shutdown")
	}
	close(s.done)
}

// Status reports runtime counters for the control socket.
func (s *Server) Status() control.Status {
	s.mu.RLock()
	folderCount := len(s.folders)
	initialized := s.initialized
	s.mu.RUnlock()

	return control.Status{
		Initialized:        initialized,
		OpenDocuments:      s.docs.Len(),
		CachedResolutions:  s.actions.Cache().Len(),
		SettingsGeneration: s.settings.Version(),
		WorkspaceFolders:   folderCount,
	}
}

// reload rereads the user config and bumps the settings generation, so the
// next request per document resolves fresh.
func (s *Server) reload() error {
	base, err := config.LoadUser("")
	if err != nil {
		return err
	}
	s.settings.SetBase(base)
	return nil
}
