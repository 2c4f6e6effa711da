package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		input string
		exp   Command
	}{
		"look":                  {input: "look", exp: Command{Kind: KindLook}},
		"look short":            {input: "l", exp: Command{Kind: KindLook}},
		"examine":               {input: "examine", exp: Command{Kind: KindLook}},
		"examine short":         {input: "x", exp: Command{Kind: KindLook}},
		"verb case insensitive": {input: "LoOk", exp: Command{Kind: KindLook}},
		"go with direction":     {input: "go north", exp: Command{Kind: KindGo, Arg: "north"}},
		"go keeps arg case":     {input: "GO Up", exp: Command{Kind: KindGo, Arg: "Up"}},
		"bare go":               {input: "go", exp: Command{Kind: KindUnknown}},
		"north":                 {input: "north", exp: Command{Kind: KindNorth}},
		"n":                     {input: "N", exp: Command{Kind: KindNorth}},
		"south":                 {input: "s", exp: Command{Kind: KindSouth}},
		"east":                  {input: "east", exp: Command{Kind: KindEast}},
		"west":                  {input: "w", exp: Command{Kind: KindWest}},
		"take":                  {input: "take Key", exp: Command{Kind: KindTake, Arg: "Key"}},
		"get":                   {input: "get book", exp: Command{Kind: KindTake, Arg: "book"}},
		"pick up":               {input: "pick up lamp", exp: Command{Kind: KindTake, Arg: "lamp"}},
		"pick without up":       {input: "pick lamp", exp: Command{Kind: KindTake, Arg: "lamp"}},
		"pick up alone":         {input: "pick up", exp: Command{Kind: KindTake, Arg: "up"}},
		"take extra tokens":     {input: "take brass key", exp: Command{Kind: KindTake, Arg: "brass"}},
		"bare take":             {input: "take", exp: Command{Kind: KindUnknown}},
		"drop":                  {input: "drop Book", exp: Command{Kind: KindDrop, Arg: "Book"}},
		"bare drop":             {input: "drop", exp: Command{Kind: KindUnknown}},
		"inventory":             {input: "inventory", exp: Command{Kind: KindInventory}},
		"inv":                   {input: "inv", exp: Command{Kind: KindInventory}},
		"i":                     {input: "i", exp: Command{Kind: KindInventory}},
		"help":                  {input: "help", exp: Command{Kind: KindHelp}},
		"h":                     {input: "h", exp: Command{Kind: KindHelp}},
		"question mark":         {input: "?", exp: Command{Kind: KindHelp}},
		"surrounding space":     {input: "   look   ", exp: Command{Kind: KindLook}},
		"empty":                 {input: "", exp: Command{Kind: KindUnknown}},
		"whitespace only":       {input: " \t ", exp: Command{Kind: KindUnknown}},
		"unknown verb":          {input: "frobnicate", exp: Command{Kind: KindUnknown}},
		"quit is not a command": {input: "quit", exp: Command{Kind: KindUnknown}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.exp, Parse(tt.input))
		})
	}
}

func TestParseDeterministic(t *testing.T) {
	inputs := []string{"look", "go west", "pick up Lamp", "drop", "", "xyzzy"}
	for _, in := range inputs {
		assert.Equal(t, Parse(in), Parse(in), "input %q", in)
	}
}

func TestCommandIsMovement(t *testing.T) {
	tests := map[string]struct {
		cmd Command
		exp bool
	}{
		"go":        {cmd: Command{Kind: KindGo, Arg: "up"}, exp: true},
		"north":     {cmd: Command{Kind: KindNorth}, exp: true},
		"south":     {cmd: Command{Kind: KindSouth}, exp: true},
		"east":      {cmd: Command{Kind: KindEast}, exp: true},
		"west":      {cmd: Command{Kind: KindWest}, exp: true},
		"look":      {cmd: Command{Kind: KindLook}, exp: false},
		"take":      {cmd: Command{Kind: KindTake, Arg: "key"}, exp: false},
		"unknown":   {cmd: Command{Kind: KindUnknown}, exp: false},
		"inventory": {cmd: Command{Kind: KindInventory}, exp: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.exp, tt.cmd.IsMovement())
		})
	}
}

func TestCommandDirection(t *testing.T) {
	assert.Equal(t, "north", Command{Kind: KindNorth}.Direction())
	assert.Equal(t, "up", Command{Kind: KindGo, Arg: "up"}.Direction())
	assert.Equal(t, "", Command{Kind: KindLook}.Direction())
}
