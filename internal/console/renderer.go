// Package console is the plain line-oriented front end.
package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/tatianab/bby/internal/models"
)

const (
	rule = "========================================="

	// Longer messages are printed at once.
	typingLimit = 200
)

// Renderer prints turn results to a terminal or any other writer.
type Renderer struct {
	out   io.Writer
	width int
	delay time.Duration
	sleep func(time.Duration)

	ruleStyle    lipgloss.Style
	welcomeStyle lipgloss.Style
	titleStyle   lipgloss.Style
	errorStyle   lipgloss.Style
	goodbyeStyle lipgloss.Style
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWrapWidth wraps text at width columns. Zero disables wrapping.
func WithWrapWidth(width int) Option {
	return func(r *Renderer) {
		r.width = width
	}
}

// WithTypingDelay prints short messages one character at a time.
func WithTypingDelay(d time.Duration) Option {
	return func(r *Renderer) {
		r.delay = d
	}
}

// NewRenderer returns a renderer writing to out. Colours are only used when
// out is a terminal.
func NewRenderer(out io.Writer, opts ...Option) *Renderer {
	lg := lipgloss.NewRenderer(out)
	r := &Renderer{
		out:   out,
		width: 80,
		sleep: time.Sleep,

		ruleStyle:    lg.NewStyle().Foreground(lipgloss.Color("6")),
		welcomeStyle: lg.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		titleStyle:   lg.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		errorStyle:   lg.NewStyle().Foreground(lipgloss.Color("1")),
		goodbyeStyle: lg.NewStyle().Foreground(lipgloss.Color("2")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Welcome(title string) error {
	_, err := fmt.Fprintf(r.out, "%s\n%s\n%s\n\n",
		r.ruleStyle.Render(rule),
		r.welcomeStyle.Render("    Welcome to: "+title),
		r.ruleStyle.Render(rule),
	)
	return err
}

func (r *Renderer) Room(room *models.Room) error {
	_, err := fmt.Fprintf(r.out, "%s\n%s\n\n",
		r.titleStyle.Render(room.Title),
		r.wrap(room.Description),
	)
	return err
}

func (r *Renderer) Message(text string) error {
	text = r.wrap(text)
	if r.delay <= 0 || len(text) >= typingLimit {
		_, err := fmt.Fprintf(r.out, "%s\n\n", text)
		return err
	}

	for _, c := range text {
		if _, err := io.WriteString(r.out, string(c)); err != nil {
			return err
		}
		if !strings.ContainsRune(" \n.!?", c) {
			r.sleep(r.delay)
		}
	}
	_, err := io.WriteString(r.out, "\n\n")
	return err
}

func (r *Renderer) Error(err error) error {
	_, werr := fmt.Fprintf(r.out, "%s\n\n", r.errorStyle.Render("Error: "+err.Error()))
	return werr
}

func (r *Renderer) Goodbye() error {
	_, err := fmt.Fprintf(r.out, "\n%s\n", r.goodbyeStyle.Render("Thanks for playing! :D"))
	return err
}

func (r *Renderer) wrap(text string) string {
	if r.width <= 0 {
		return text
	}
	return wordwrap.String(text, r.width)
}
