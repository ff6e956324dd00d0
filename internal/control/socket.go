// Package control serves a line-oriented status/reload protocol on a unix
// socket, for inspecting a running spelld without an editor attached.
package control

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"
)

// Status is the snapshot reported by the "status" command.
type Status struct {
	Initialized        bool  `json:"initialized"`
	OpenDocuments      int   `json:"open_documents"`
	CachedResolutions  int   `json:"cached_resolutions"`
	SettingsGeneration int64 `json:"settings_generation"`
	WorkspaceFolders   int   `json:"workspace_folders"`
}

// StatusFunc supplies the current status snapshot.
type StatusFunc func() Status

// ReloadFunc rereads configuration; invoked by the "reload" command.
type ReloadFunc func() error

type Server struct {
	path     string
	status   StatusFunc
	reload   ReloadFunc
	listener net.Listener
	mu       sync.Mutex
	closed   bool
}

func NewServer(path string, status StatusFunc, reload ReloadFunc) (*Server, error) {
	os.Remove(path)

	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listening on socket: %w", err)
	}

	return &Server{
		path:     path,
		status:   status,
		reload:   reload,
		listener: listener,
	}, nil
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return nil
			}
			continue
		}

		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		response := s.handleCommand(line)
		conn.Write([]byte(response + "\n"))
	}
}

func (s *Server) handleCommand(line string) string {
	switch strings.Fields(line)[0] {
	case "status":
		data, err := json.Marshal(s.status())
		if err != nil {
			return fmt.Sprintf(`{"error": %q}`, err.Error())
		}
		return string(data)
	case "reload":
		if err := s.reload(); err != nil {
			return fmt.Sprintf(`{"error": %q}`, err.Error())
		}
		return `{"ok": true}`
	default:
		return `{"error": "unknown command"}`
	}
}

func (s *Server) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.listener.Close()
	os.Remove(s.path)
}
