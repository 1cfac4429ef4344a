package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-scene/internal/config"
	"github.com/vovakirdan/tui-scene/internal/registry"
	"github.com/vovakirdan/tui-scene/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.tui-scene/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Engine is the configuration every session's engine starts from.
	Engine config.Engine

	// Logger receives server and engine logs. Defaults to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/" + config.AppDir + "/scores.db",
		IdleTimeout: 30 * time.Minute,
		Engine:      config.DefaultEngine(),
	}
}

// SSHServer wraps a Wish SSH server. Every session runs its own engine.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "scene-ssh",
		})
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, config.AppDir, "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	model := NewSessionModel(SessionOptions{
		Engine: s.config.Engine,
		Store:  s.store,
		Logger: s.logger.With("user", sshSession.User()),
		User:   sshSession.User(),
		Width:  pty.Window.Width,
		Height: pty.Window.Height,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Engine config.Engine
	Store  *storage.Store
	Logger *log.Logger
	User   string
	Width  int
	Height int
}

// SessionModel manages the full session flow: menu -> demo -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	opts     SessionOptions
	menu     MenuModel
	board    *ScoreboardModel
	game     *GameModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return SessionModel{
		opts: opts,
		menu: NewMenuModel(opts.Width, opts.Height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Width = wsm.Width
		m.opts.Height = wsm.Height
	}

	switch {
	case m.game != nil:
		return m.updateGame(msg)
	case m.board != nil:
		return m.updateBoard(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		m.close()
		return m, tea.Quit
	}
	if m.menu.WantsScoreboard() {
		board := NewScoreboardModel(m.opts.Store, m.opts.Width, m.opts.Height)
		m.board = &board
		return m, m.board.Init()
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	demo, err := registry.Create(selected.ID)
	if err != nil {
		// Shouldn't happen since menu only shows registered demos
		m.menu = NewMenuModel(m.opts.Width, m.opts.Height)
		return m, nil
	}
	game, err := NewGameModel(demo, GameOptions{
		Engine:  m.opts.Engine,
		Store:   m.opts.Store,
		Logger:  m.opts.Logger,
		Session: m.opts.User,
		Width:   m.opts.Width,
		Height:  m.opts.Height,
	})
	if err != nil {
		m.opts.Logger.Error("cannot start demo", "demo", selected.ID, "err", err)
		m.menu = NewMenuModel(m.opts.Width, m.opts.Height)
		return m, nil
	}
	m.game = game
	return m, m.game.Init()
}

// updateBoard handles updates while the scoreboard is open.
func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.board.Update(msg)
	if board, ok := next.(ScoreboardModel); ok {
		m.board = &board
	}

	switch {
	case m.board.IsGoingBack():
		m.board = nil
		m.menu = NewMenuModel(m.opts.Width, m.opts.Height)
		return m, m.menu.Init()
	case m.board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.game.Update(msg)

	switch {
	case m.game.BackToMenu():
		m.game.Close()
		m.game = nil
		m.menu = NewMenuModel(m.opts.Width, m.opts.Height)
		return m, m.menu.Init()
	case m.game.quitting:
		m.quitting = true
		m.close()
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) close() {
	if m.game != nil {
		m.game.Close()
	}
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch {
	case m.game != nil:
		return m.game.View()
	case m.board != nil:
		return m.board.View()
	}
	return m.menu.View()
}
