package engine

import (
	"context"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tatianab/bby/internal/models"
	"github.com/tatianab/bby/internal/telemetry"
)

// State is the lifecycle state of a Game.
type State int

const (
	StatePlaying State = iota
	StateTerminated
)

func (s State) String() string {
	if s == StateTerminated {
		return "terminated"
	}
	return "playing"
}

// Outcome is the observable result of one turn.
type Outcome struct {
	Command Command
	Output  string
	Err     error
	// ShowRoom is set for every movement command, whether or not the
	// player actually moved.
	ShowRoom bool
	Quit     bool
}

// Game runs turns against a single Session.
type Game struct {
	session *Session
	state   State
	turns   int

	log    logrus.FieldLogger
	tracer trace.Tracer
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger turns are reported to.
func WithLogger(l logrus.FieldLogger) Option {
	return func(g *Game) {
		g.log = l
	}
}

// WithTracer sets the tracer each turn is recorded with.
func WithTracer(t trace.Tracer) Option {
	return func(g *Game) {
		g.tracer = t
	}
}

// NewGame starts a new session over world.
func NewGame(world *models.World, opts ...Option) *Game {
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	g := &Game{
		session: NewSession(world),
		state:   StatePlaying,
		log:     silent,
		tracer:  telemetry.Tracer("engine"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Session returns the session the game drives.
func (g *Game) Session() *Session {
	return g.session
}

// State returns whether the game is still being played.
func (g *Game) State() State {
	return g.state
}

// Stop terminates the game without playing a turn.
func (g *Game) Stop() {
	g.state = StateTerminated
}

// Turns returns how many turns have been played.
func (g *Game) Turns() int {
	return g.turns
}

// Title returns the story title.
func (g *Game) Title() string {
	return g.session.World().Story.Title
}

// IsQuit reports whether a raw input line asks to leave the game.
func IsQuit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "quit", "exit", "q":
		return true
	default:
		return false
	}
}

// Step plays one turn. Quit words are recognised before parsing, so they
// never reach the parser or the session.
func (g *Game) Step(ctx context.Context, line string) Outcome {
	if g.state == StateTerminated {
		return Outcome{Quit: true}
	}
	if IsQuit(line) {
		g.state = StateTerminated
		g.log.WithField("turn", g.turns).Debug("player quit")
		return Outcome{Quit: true}
	}

	from := g.session.CurrentRoomID()
	_, span := g.tracer.Start(ctx, "game.turn")
	defer span.End()

	cmd := Parse(line)
	output, err := g.session.Apply(cmd)
	g.turns++

	to := g.session.CurrentRoomID()
	span.SetAttributes(
		attribute.Int("game.turn", g.turns),
		attribute.String("game.command", cmd.Kind.String()),
		attribute.String("game.room.from", from.String()),
		attribute.String("game.room.to", to.String()),
	)

	entry := g.log.WithFields(logrus.Fields{
		"turn":    g.turns,
		"command": cmd.String(),
		"room":    to,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		entry.WithError(err).Debug("turn failed")
	} else {
		entry.Debug("turn played")
	}

	return Outcome{
		Command:  cmd,
		Output:   output,
		Err:      err,
		ShowRoom: cmd.IsMovement(),
	}
}
