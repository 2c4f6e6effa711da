// Package mcpserver exposes a story as a Model Context Protocol tool so an
// agent can play it over HTTP.
package mcpserver

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/tatianab/bby/internal/console"
	"github.com/tatianab/bby/internal/engine"
	"github.com/tatianab/bby/internal/models"
)

const endedText = "The game has ended. Send reset to play again."

type CommandInput struct {
	Command string `json:"command" jsonschema:"Game command to execute, e.g. 'go north' or 'take key'"`
	Reset   bool   `json:"reset,omitempty" jsonschema:"Restart the story before executing the command"`
}

type CommandOutput struct {
	Output string  `json:"output" jsonschema:"Text the player would see"`
	State  Summary `json:"state" jsonschema:"Summary of the current game state"`
}

type Summary struct {
	RoomID    string   `json:"room_id" jsonschema:"Current room id"`
	RoomTitle string   `json:"room_title" jsonschema:"Current room title"`
	Exits     []string `json:"exits" jsonschema:"Directions leading out of the room"`
	Turns     int      `json:"turns" jsonschema:"Number of turns taken"`
	IsPlaying bool     `json:"is_playing" jsonschema:"Whether the game is still active"`
	Inventory []string `json:"inventory" jsonschema:"Names of carried items"`
}

// Loader builds a fresh world each time the game starts.
type Loader func() (*models.World, error)

// Server holds one game shared by every client. Turns are serialised.
type Server struct {
	mu   sync.Mutex
	load Loader
	game *engine.Game
	opts []engine.Option
	log  logrus.FieldLogger
}

func NewServer(load Loader, log logrus.FieldLogger, opts ...engine.Option) (*Server, error) {
	world, err := load()
	if err != nil {
		return nil, err
	}
	return &Server{
		load: load,
		game: engine.NewGame(world, opts...),
		opts: opts,
		log:  log,
	}, nil
}

func Summarize(g *engine.Game) Summary {
	session := g.Session()
	summary := Summary{
		RoomID:    session.CurrentRoomID().String(),
		Turns:     g.Turns(),
		IsPlaying: g.State() == engine.StatePlaying,
		Inventory: []string{},
		Exits:     []string{},
	}
	if room, err := session.CurrentRoom(); err == nil {
		summary.RoomTitle = room.Title
		summary.Exits = room.Directions()
	}
	for _, id := range session.Inventory() {
		if item := session.World().Item(id); item != nil {
			summary.Inventory = append(summary.Inventory, item.Name)
		}
	}
	return summary
}

// Execute plays one command and returns everything the player would have
// seen. An empty command looks around.
func Execute(ctx context.Context, g *engine.Game, command string) (string, error) {
	var buf bytes.Buffer
	out := console.NewRenderer(&buf, console.WithWrapWidth(0))

	if g.State() == engine.StateTerminated {
		return endedText, nil
	}

	command = strings.TrimSpace(command)
	if command == "" {
		command = "look"
	}

	outcome := g.Step(ctx, command)
	if outcome.Quit {
		if err := out.Goodbye(); err != nil {
			return "", err
		}
		return strings.TrimSpace(buf.String()), nil
	}
	if err := engine.RenderOutcome(out, g, outcome); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func (s *Server) HandleCommand(ctx context.Context, _ *mcp.CallToolRequest, input *CommandInput) (*mcp.CallToolResult, *CommandOutput, error) {
	if input == nil {
		input = &CommandInput{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var intro string
	if input.Reset {
		var err error
		intro, err = s.reset()
		if err != nil {
			return nil, nil, err
		}
		if strings.TrimSpace(input.Command) == "" {
			return nil, &CommandOutput{Output: intro, State: Summarize(s.game)}, nil
		}
	}

	output, err := Execute(ctx, s.game, input.Command)
	if err != nil {
		return nil, nil, err
	}
	if intro != "" {
		output = intro + "\n\n" + output
	}

	s.log.WithFields(logrus.Fields{
		"command": input.Command,
		"room":    s.game.Session().CurrentRoomID(),
		"turns":   s.game.Turns(),
	}).Debug("mcp command")

	return nil, &CommandOutput{
		Output: output,
		State:  Summarize(s.game),
	}, nil
}

func (s *Server) reset() (string, error) {
	world, err := s.load()
	if err != nil {
		return "", err
	}
	s.game = engine.NewGame(world, s.opts...)

	var buf bytes.Buffer
	out := console.NewRenderer(&buf, console.WithWrapWidth(0))
	if err := out.Welcome(s.game.Title()); err != nil {
		return "", err
	}
	if err := engine.ShowRoom(out, s.game); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// HTTPOptions controls how the MCP endpoint is served.
type HTTPOptions struct {
	Addr         string
	Path         string
	Origins      []string
	Token        string
	JSONResponse bool
	Stateless    bool
}

// Handler returns the MCP endpoint guarded by the origin allow-list and the
// optional bearer token.
func (s *Server) Handler(opts HTTPOptions) http.Handler {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "bby",
		Version: "v0.1.0",
	}, nil)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "command",
		Description: "Send a command to the interactive story and return the output plus a state summary.",
	}, s.HandleCommand)

	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return mcpServer
	}, &mcp.StreamableHTTPOptions{
		Stateless:    opts.Stateless,
		JSONResponse: opts.JSONResponse,
	})

	originSet := map[string]struct{}{}
	for _, origin := range opts.Origins {
		originSet[origin] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isAllowedOrigin(r, originSet) {
			http.Error(w, "Forbidden origin", http.StatusForbidden)
			return
		}
		if opts.Token != "" && r.Header.Get("Authorization") != "Bearer "+opts.Token {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	})
}

// Run serves the MCP endpoint until ctx is cancelled.
func (s *Server) Run(ctx context.Context, opts HTTPOptions) error {
	path := opts.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	mux := http.NewServeMux()
	mux.Handle(path, s.Handler(opts))

	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithFields(logrus.Fields{"addr": opts.Addr, "path": path}).Info("mcp server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func isAllowedOrigin(r *http.Request, allowed map[string]struct{}) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	_, ok := allowed[origin]
	return ok
}
