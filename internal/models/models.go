package models

import "sort"

// Identifier is the opaque key of a room or item in a story.
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Story holds the metadata of a loaded story.
type Story struct {
	Title     string     `yaml:"title"`
	StartRoom Identifier `yaml:"start_room"`
}

// Room is a node of the world graph. Exits never change after load; Items
// changes as the player takes and drops things. ID is the room's key in
// World.Rooms and is not written to documents.
type Room struct {
	ID          Identifier            `yaml:"-"`
	Title       string                `yaml:"title"`
	Description string                `yaml:"description"`
	Exits       map[string]Identifier `yaml:"exits,omitempty"` // direction -> room id
	Items       []Identifier          `yaml:"items"`
}

// Item is something the player can carry. Where it currently lives is
// tracked by rooms and the session inventory, not here. ID is the item's
// key in World.Items and is not written to documents.
type Item struct {
	ID          Identifier `yaml:"-"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
}

// World is the complete entity graph of one story.
type World struct {
	Story Story                `yaml:"story"`
	Rooms map[Identifier]*Room `yaml:"rooms"`
	Items map[Identifier]*Item `yaml:"items"`
}

// NewWorld returns an empty world for the given story.
func NewWorld(story Story) *World {
	return &World{
		Story: story,
		Rooms: make(map[Identifier]*Room),
		Items: make(map[Identifier]*Item),
	}
}

// Room returns the room with the given id, or nil.
func (w *World) Room(id Identifier) *Room {
	return w.Rooms[id]
}

// Item returns the item with the given id, or nil.
func (w *World) Item(id Identifier) *Item {
	return w.Items[id]
}

// RoomIDs returns every room id in sorted order.
func (w *World) RoomIDs() []Identifier {
	ids := make([]Identifier, 0, len(w.Rooms))
	for id := range w.Rooms {
		ids = append(ids, id)
	}
	sortIdentifiers(ids)
	return ids
}

// Directions returns the exit names of the room in sorted order.
func (r *Room) Directions() []string {
	dirs := make([]string, 0, len(r.Exits))
	for dir := range r.Exits {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// HasItem reports whether the room currently holds the item.
func (r *Room) HasItem(id Identifier) bool {
	for _, itemID := range r.Items {
		if itemID == id {
			return true
		}
	}
	return false
}

// RemoveItem drops every occurrence of id from the room's item list.
// It reports whether anything was removed.
func (r *Room) RemoveItem(id Identifier) bool {
	kept := r.Items[:0]
	removed := false
	for _, itemID := range r.Items {
		if itemID == id {
			removed = true
			continue
		}
		kept = append(kept, itemID)
	}
	r.Items = kept
	return removed
}

// AddItem appends the item to the end of the room's item list.
func (r *Room) AddItem(id Identifier) {
	r.Items = append(r.Items, id)
}

func sortIdentifiers(ids []Identifier) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
