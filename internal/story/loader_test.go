package story

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/bby/internal/models"
)

func TestLoadFormats(t *testing.T) {
	for _, name := range []string{"adventure.toml", "adventure.yaml", "adventure.ini"} {
		t.Run(name, func(t *testing.T) {
			world, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)

			assert.Equal(t, "Test Adventure", world.Story.Title)
			assert.Equal(t, models.Identifier("start"), world.Story.StartRoom)
			require.Len(t, world.Rooms, 2)
			require.Len(t, world.Items, 2)

			start := world.Room("start")
			require.NotNil(t, start)
			assert.Equal(t, models.Identifier("start"), start.ID)
			assert.Equal(t, "Starting Room", start.Title)
			assert.Equal(t, "You are in a starting room.", start.Description)
			assert.Equal(t, map[string]models.Identifier{"north": "end"}, start.Exits)
			assert.Equal(t, []models.Identifier{"key"}, start.Items)

			end := world.Room("end")
			require.NotNil(t, end)
			assert.Equal(t, map[string]models.Identifier{"south": "start"}, end.Exits)

			key := world.Item("key")
			require.NotNil(t, key)
			assert.Equal(t, models.Identifier("key"), key.ID)
			assert.Equal(t, "Magic Key", key.Name)
			assert.Equal(t, "A key that opens doors.", key.Description)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorContains(t, err, "opening story")

	_, err = Load(filepath.Join(dir, "story.json"))
	assert.ErrorContains(t, err, `unsupported story format "json"`)

	_, err = Load(filepath.Join(dir, "story"))
	assert.ErrorContains(t, err, "no extension")

	path := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[story\ntitle = "), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "loading broken.toml")
	assert.ErrorContains(t, err, "parsing toml")
}

func TestDecodeInvalid(t *testing.T) {
	tests := map[string]struct {
		format  Format
		doc     string
		expErrs []string
	}{
		"empty": {
			format:  FormatYAML,
			doc:     "  \n",
			expErrs: []string{"story is empty"},
		},
		"missing story": {
			format: FormatYAML,
			doc: `
rooms:
  a: {title: A}
`,
			expErrs: []string{"story section is required"},
		},
		"missing title and start room": {
			format: FormatTOML,
			doc: `
[story]
[rooms.a]
title = "A"
`,
			expErrs: []string{"story.title is required", "story.start_room is required"},
		},
		"start room does not exist": {
			format: FormatTOML,
			doc: `
[story]
title = "T"
start_room = "nowhere"
[rooms.a]
title = "A"
`,
			expErrs: []string{`start room "nowhere" does not exist in story`},
		},
		"no rooms": {
			format: FormatYAML,
			doc: `
story: {title: T, start_room: a}
`,
			expErrs: []string{"story has no rooms"},
		},
		"wrong field types": {
			format: FormatYAML,
			doc: `
story: {title: 3, start_room: a}
rooms:
  a:
    title: A
    items: key
    east: 7
  b: just a string
items:
  key: {name: [a, b]}
`,
			expErrs: []string{
				"story.title: expected a string, got number",
				"items: expected a list, got string",
				"unexpected field east (number)",
				"room b: expected a table, got string",
				"name: expected a string, got list",
			},
		},
		"room without title": {
			format: FormatINI,
			doc: `
[story]
title = T
start_room = a
[room.a]
description = nothing here
`,
			expErrs: []string{"title is required"},
		},
		"exit declared twice": {
			format: FormatYAML,
			doc: `
story: {title: T, start_room: a}
rooms:
  a:
    title: A
    north: b
    exits: {north: b}
  b: {title: B}
`,
			expErrs: []string{"exit north is declared twice"},
		},
		"unknown ini section": {
			format:  FormatINI,
			doc:     "[monster.troll]\nname = troll\n",
			expErrs: []string{"unknown section [monster.troll]"},
		},
		"bad yaml": {
			format:  FormatYAML,
			doc:     "story: [unclosed",
			expErrs: []string{"parsing yaml"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			world, err := Decode(strings.NewReader(tt.doc), tt.format)
			require.Error(t, err)
			assert.Nil(t, world)
			for _, e := range tt.expErrs {
				assert.ErrorContains(t, err, e)
			}
		})
	}
}

func TestDecodeExitsTableAndFlattened(t *testing.T) {
	doc := `
story: {title: T, start_room: hall}
rooms:
  hall:
    title: Hall
    description: Big.
    up: attic
    exits:
      down: cellar
  attic: {title: Attic}
  cellar: {title: Cellar}
`
	world, err := Decode(strings.NewReader(doc), FormatYAML)
	require.NoError(t, err)

	hall := world.Room("hall")
	assert.Equal(t, map[string]models.Identifier{"up": "attic", "down": "cellar"}, hall.Exits)
	assert.Empty(t, hall.Items)
	assert.Empty(t, world.Room("attic").Exits)
}

func TestDecodeKeepsDanglingReferences(t *testing.T) {
	doc := `
[story]
title = "T"
start_room = "a"

[rooms.a]
title = "A"
description = ""
west = "ghost_room"
items = ["ghost_item"]
`
	world, err := Decode(strings.NewReader(doc), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, models.Identifier("ghost_room"), world.Room("a").Exits["west"])
	assert.Equal(t, []models.Identifier{"ghost_item"}, world.Room("a").Items)
}

func TestDecodeINIKeepsCommentCharacters(t *testing.T) {
	doc := `
; stories may carry comments on their own line
[story]
title = Chapter #1; The Door
start_room = hall

# so may rooms
[room.hall]
title = Hall #2
description = A dark room; smells of smoke.
items = note

[item.note]
name = note #7
`
	world, err := Decode(strings.NewReader(doc), FormatINI)
	require.NoError(t, err)

	assert.Equal(t, "Chapter #1; The Door", world.Story.Title)
	hall := world.Room("hall")
	require.NotNil(t, hall)
	assert.Equal(t, "Hall #2", hall.Title)
	assert.Equal(t, "A dark room; smells of smoke.", hall.Description)
	assert.Equal(t, []models.Identifier{"note"}, hall.Items)
	assert.Equal(t, "note #7", world.Item("note").Name)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]struct {
		input  string
		exp    Format
		expErr bool
	}{
		"yaml":  {input: "yaml", exp: FormatYAML},
		"yml":   {input: "YML", exp: FormatYAML},
		"toml":  {input: "toml", exp: FormatTOML},
		"ini":   {input: " ini ", exp: FormatINI},
		"json":  {input: "json", expErr: true},
		"empty": {input: "", expErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := ParseFormat(tt.input)
			if tt.expErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.exp, f)
		})
	}
}
