package engine

import (
	"context"
	"errors"
	"io"

	"github.com/tatianab/bby/internal/models"
)

// LineReader supplies raw input lines. It returns io.EOF when input ends.
type LineReader interface {
	ReadLine() (string, error)
}

// Renderer presents turn results to the player.
type Renderer interface {
	Welcome(title string) error
	Room(room *models.Room) error
	Message(text string) error
	Error(err error) error
	Goodbye() error
}

// Loop reads lines, plays them as turns and renders the results until the
// player quits or input runs out.
type Loop struct {
	game *Game
	in   LineReader
	out  Renderer
}

// NewLoop returns a loop driving game.
func NewLoop(game *Game, in LineReader, out Renderer) *Loop {
	return &Loop{game: game, in: in, out: out}
}

// Run plays until the game terminates. Turn errors are shown to the player
// and play continues; only input and output failures end the loop early.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.out.Welcome(l.game.Title()); err != nil {
		return err
	}
	if err := ShowRoom(l.out, l.game); err != nil {
		return err
	}

	for l.game.State() == StatePlaying {
		if ctx.Err() != nil {
			break
		}

		line, err := l.in.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		outcome := l.game.Step(ctx, line)
		if outcome.Quit {
			break
		}

		if err := RenderOutcome(l.out, l.game, outcome); err != nil {
			return err
		}
	}

	l.game.Stop()
	return l.out.Goodbye()
}

// RenderOutcome shows the result of one turn: its error or message, then
// the room when the turn was a movement command.
func RenderOutcome(out Renderer, game *Game, o Outcome) error {
	switch {
	case o.Err != nil:
		if err := out.Error(o.Err); err != nil {
			return err
		}
	case o.Output != "":
		if err := out.Message(o.Output); err != nil {
			return err
		}
	}

	if o.ShowRoom {
		return ShowRoom(out, game)
	}
	return nil
}

// ShowRoom renders the player's current room, or the error explaining why
// there is none.
func ShowRoom(out Renderer, game *Game) error {
	room, err := game.Session().CurrentRoom()
	if err != nil {
		return out.Error(err)
	}
	return out.Room(room)
}
