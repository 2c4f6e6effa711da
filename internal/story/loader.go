// Package story loads story files into a models.World.
package story

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/pixil98/go-errors"

	"github.com/tatianab/bby/internal/models"
)

// Load reads the story file at path. The format is taken from the extension.
func Load(path string) (*models.World, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening story: %w", err)
	}
	// Ignoring close error, the file is only read.
	defer func() { _ = file.Close() }()

	world, err := Decode(file, format)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", filepath.Base(path), err)
	}
	return world, nil
}

// Decode builds a world from an in-memory story document.
func Decode(r io.Reader, format Format) (*models.World, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading story: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("story is empty")
	}

	doc, err := decodeDocument(data, format)
	if err != nil {
		return nil, err
	}
	return build(doc)
}

// reserved room keys; every other string-valued key is a flattened exit.
var roomFields = map[string]bool{
	"title":       true,
	"description": true,
	"items":       true,
	"exits":       true,
}

func build(doc document) (*models.World, error) {
	el := errors.NewErrorList()

	var meta models.Story
	storyTable, err := table(doc, "story")
	if err != nil {
		el.Add(err)
	} else if storyTable == nil {
		el.Add(fmt.Errorf("story section is required"))
	} else {
		title, titleErr := str(storyTable, "title", "story")
		el.Add(titleErr)
		start, startErr := str(storyTable, "start_room", "story")
		el.Add(startErr)
		meta.Title = title
		meta.StartRoom = models.Identifier(start)

		if title == "" && titleErr == nil {
			el.Add(fmt.Errorf("story.title is required"))
		}
		if start == "" && startErr == nil {
			el.Add(fmt.Errorf("story.start_room is required"))
		}
	}

	world := models.NewWorld(meta)

	rooms, err := table(doc, "rooms")
	el.Add(err)
	for _, id := range sortedKeys(rooms) {
		room, err := buildRoom(models.Identifier(id), rooms[id])
		if err != nil {
			el.Add(fmt.Errorf("room %s: %w", id, err))
			continue
		}
		world.Rooms[room.ID] = room
	}

	items, err := table(doc, "items")
	el.Add(err)
	for _, id := range sortedKeys(items) {
		item, err := buildItem(models.Identifier(id), items[id])
		if err != nil {
			el.Add(fmt.Errorf("item %s: %w", id, err))
			continue
		}
		world.Items[item.ID] = item
	}

	if meta.StartRoom != "" && rooms != nil && world.Room(meta.StartRoom) == nil {
		if _, declared := rooms[meta.StartRoom.String()]; !declared {
			el.Add(fmt.Errorf("start room %q does not exist in story", meta.StartRoom))
		}
	}
	if len(rooms) == 0 {
		el.Add(fmt.Errorf("story has no rooms"))
	}

	if err := el.Err(); err != nil {
		return nil, err
	}
	return world, nil
}

func buildRoom(id models.Identifier, v any) (*models.Room, error) {
	fields, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a table, got %s", typeName(v))
	}

	el := errors.NewErrorList()
	room := &models.Room{
		ID:    id,
		Exits: map[string]models.Identifier{},
	}

	var err error
	room.Title, err = str(fields, "title", "")
	el.Add(err)
	if room.Title == "" && err == nil {
		el.Add(fmt.Errorf("title is required"))
	}
	room.Description, err = str(fields, "description", "")
	el.Add(err)

	ids, err := strList(fields, "items")
	el.Add(err)
	room.Items = ids

	exits, err := table(fields, "exits")
	el.Add(err)
	for _, dir := range sortedKeys(exits) {
		dest, ok := exits[dir].(string)
		if !ok {
			el.Add(fmt.Errorf("exit %s: expected a room id, got %s", dir, typeName(exits[dir])))
			continue
		}
		room.Exits[dir] = models.Identifier(dest)
	}

	for _, key := range sortedKeys(fields) {
		if roomFields[key] {
			continue
		}
		dest, ok := fields[key].(string)
		if !ok {
			el.Add(fmt.Errorf("unexpected field %s (%s)", key, typeName(fields[key])))
			continue
		}
		if _, dup := room.Exits[key]; dup {
			el.Add(fmt.Errorf("exit %s is declared twice", key))
			continue
		}
		room.Exits[key] = models.Identifier(dest)
	}

	if err := el.Err(); err != nil {
		return nil, err
	}
	return room, nil
}

func buildItem(id models.Identifier, v any) (*models.Item, error) {
	fields, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a table, got %s", typeName(v))
	}

	el := errors.NewErrorList()
	item := &models.Item{ID: id}

	var err error
	item.Name, err = str(fields, "name", "")
	el.Add(err)
	if item.Name == "" && err == nil {
		el.Add(fmt.Errorf("name is required"))
	}
	item.Description, err = str(fields, "description", "")
	el.Add(err)

	if err := el.Err(); err != nil {
		return nil, err
	}
	return item, nil
}

// table returns the nested table under key, or nil when it is absent.
func table(doc document, key string) (document, error) {
	v, ok := doc[key]
	if !ok || v == nil {
		return nil, nil
	}
	t, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a table, got %s", key, typeName(v))
	}
	return t, nil
}

// str returns the string under key, or "" when it is absent.
func str(doc document, key, prefix string) (string, error) {
	v, ok := doc[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		if prefix != "" {
			key = prefix + "." + key
		}
		return "", fmt.Errorf("%s: expected a string, got %s", key, typeName(v))
	}
	return s, nil
}

func strList(doc document, key string) ([]models.Identifier, error) {
	v, ok := doc[key]
	if !ok || v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a list, got %s", key, typeName(v))
	}

	ids := make([]models.Identifier, 0, len(list))
	for i, e := range list {
		s, ok := e.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: expected a string, got %s", key, i, typeName(e))
		}
		ids = append(ids, models.Identifier(s))
	}
	return ids, nil
}

func sortedKeys(doc document) []string {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func typeName(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64, uint64, float64:
		return "number"
	case []any:
		return "list"
	case map[string]any:
		return "table"
	case nil:
		return "nothing"
	default:
		return fmt.Sprintf("%T", v)
	}
}
