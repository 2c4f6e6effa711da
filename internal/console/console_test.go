package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/bby/internal/engine"
	"github.com/tatianab/bby/internal/models"
	"github.com/tatianab/bby/internal/telemetry"
)

var (
	_ engine.Renderer   = (*Renderer)(nil)
	_ engine.LineReader = (*Reader)(nil)
)

func TestRendererWelcomeAndGoodbye(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	require.NoError(t, r.Welcome("Cave"))
	require.NoError(t, r.Goodbye())

	assert.Equal(t,
		rule+"\n    Welcome to: Cave\n"+rule+"\n\n\nThanks for playing! :D\n",
		buf.String())
}

func TestRendererRoomWraps(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, WithWrapWidth(20))

	err := r.Room(&models.Room{
		Title:       "Hall",
		Description: "A long hall lined with portraits of forgotten kings.",
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, "Hall", lines[0])
	for _, line := range lines[1:] {
		assert.LessOrEqual(t, len(line), 20, "line %q", line)
	}
	assert.Greater(t, len(lines), 2)
}

func TestRendererMessageTyping(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, WithTypingDelay(time.Millisecond))
	var sleeps int
	r.sleep = func(time.Duration) { sleeps++ }

	require.NoError(t, r.Message("Hi. Go!"))
	assert.Equal(t, "Hi. Go!\n\n", buf.String())
	// H, i, G, o
	assert.Equal(t, 4, sleeps)

	buf.Reset()
	sleeps = 0
	require.NoError(t, r.Message(strings.Repeat("long ", 50)))
	assert.Zero(t, sleeps)
}

func TestRendererError(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	require.NoError(t, r.Error(engine.ErrItemNotFound))
	assert.Equal(t, "Error: Item not found\n\n", buf.String())
}

func TestReader(t *testing.T) {
	var out bytes.Buffer
	r := NewReader(strings.NewReader("look\r\ngo north\n\ntake key"), &out, Prompt)

	var lines []string
	for {
		line, err := r.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		lines = append(lines, line)
	}

	assert.Equal(t, []string{"look", "go north", "", "take key"}, lines)
	assert.Equal(t, strings.Repeat(Prompt, 5), out.String())
}

func TestPlayHeadless(t *testing.T) {
	world := models.NewWorld(models.Story{Title: "Tiny", StartRoom: "a"})
	world.Rooms["a"] = &models.Room{
		ID:          "a",
		Title:       "Attic",
		Description: "Dusty.",
		Exits:       map[string]models.Identifier{"down": "b"},
	}
	world.Rooms["b"] = &models.Room{ID: "b", Title: "Basement", Description: "Damp."}

	var out bytes.Buffer
	in := NewReader(strings.NewReader("go down\ntake cheese\nq\n"), io.Discard, Prompt)
	game := engine.NewGame(world, engine.WithTracer(telemetry.NoopTracer()))

	err := engine.NewLoop(game, in, NewRenderer(&out)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, rule+"\n    Welcome to: Tiny\n"+rule+"\n\n"+
		"Attic\nDusty.\n\n"+
		"You go down.\n\n"+
		"Basement\nDamp.\n\n"+
		"Error: Item not found\n\n"+
		"\nThanks for playing! :D\n",
		out.String())
}
