package engine

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tatianab/bby/internal/models"
)

const helpText = `Available commands:
- look: Look around the current room
- go [direction]: Move in a direction (north, south, east, west)
- n/s/e/w: Short forms for directions
- take [item]: Pick up an item
- drop [item]: Drop an item
- inventory: Check your inventory
- help: Show this help
- quit: Exit the game

Example: 'go north' or 'take key' :D`

const unknownText = "I don't understand that command. Type 'help' for available commands. :0"

const emptyInventoryText = "Your inventory is empty. :0"

// Session is the mutable state of one player walking through a World.
// It is not safe for concurrent use.
type Session struct {
	world     *models.World
	current   models.Identifier
	inventory []models.Identifier
}

// NewSession starts a session in the story's start room with empty hands.
func NewSession(world *models.World) *Session {
	return &Session{
		world:   world,
		current: world.Story.StartRoom,
	}
}

// World returns the world the session plays in.
func (s *Session) World() *models.World {
	return s.world
}

// CurrentRoomID returns the id of the room the player is in.
func (s *Session) CurrentRoomID() models.Identifier {
	return s.current
}

// CurrentRoom returns the room the player is in.
func (s *Session) CurrentRoom() (*models.Room, error) {
	room := s.world.Room(s.current)
	if room == nil {
		return nil, ErrInvalidRoom
	}
	return room, nil
}

// Inventory returns the carried item ids in the order they were taken.
func (s *Session) Inventory() []models.Identifier {
	return slices.Clone(s.inventory)
}

// Carrying reports whether the item is in the inventory.
func (s *Session) Carrying(id models.Identifier) bool {
	return slices.Contains(s.inventory, id)
}

// Apply executes one command against the session and returns the text to
// show the player. Failed moves and unknown commands are not errors.
func (s *Session) Apply(cmd Command) (string, error) {
	switch cmd.Kind {
	case KindLook:
		return s.look()
	case KindGo, KindNorth, KindSouth, KindEast, KindWest:
		return s.move(cmd.Direction())
	case KindTake:
		return s.take(cmd.Arg)
	case KindDrop:
		return s.drop(cmd.Arg)
	case KindInventory:
		return s.showInventory(), nil
	case KindHelp:
		return helpText, nil
	default:
		return unknownText, nil
	}
}

func (s *Session) look() (string, error) {
	room, err := s.CurrentRoom()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s", room.Title)
	fmt.Fprintf(&b, "\n%s", room.Description)

	if names := s.itemNames(room.Items); len(names) > 0 {
		b.WriteString("\n\nYou see: ")
		b.WriteString(strings.Join(names, ", "))
	}

	if len(room.Exits) > 0 {
		b.WriteString("\n\nExits: ")
		b.WriteString(strings.Join(room.Directions(), ", "))
	}

	return b.String(), nil
}

func (s *Session) move(direction string) (string, error) {
	room, err := s.CurrentRoom()
	if err != nil {
		return "", err
	}

	dest, ok := exitFor(room, direction)
	if !ok {
		return fmt.Sprintf("You can't go %s from here.", direction), nil
	}
	if s.world.Room(dest) == nil {
		return "", ErrRoomNotFound
	}

	s.current = dest
	return fmt.Sprintf("You go %s.", direction), nil
}

// exitFor prefers an exact direction match and falls back to a
// case-insensitive one so "go North" works against a "north" exit.
func exitFor(room *models.Room, direction string) (models.Identifier, bool) {
	if dest, ok := room.Exits[direction]; ok {
		return dest, true
	}
	for _, dir := range room.Directions() {
		if strings.EqualFold(dir, direction) {
			return room.Exits[dir], true
		}
	}
	return "", false
}

func (s *Session) take(query string) (string, error) {
	room, err := s.CurrentRoom()
	if err != nil {
		return "", err
	}

	item := s.match(room.Items, query)
	if item == nil {
		return "", ErrItemNotFound
	}

	room.RemoveItem(item.ID)
	s.inventory = append(s.inventory, item.ID)
	return fmt.Sprintf("You take the %s.", item.Name), nil
}

func (s *Session) drop(query string) (string, error) {
	room, err := s.CurrentRoom()
	if err != nil {
		return "", err
	}

	item := s.match(s.inventory, query)
	if item == nil {
		return "", ErrItemNotFound
	}

	s.inventory = slices.DeleteFunc(s.inventory, func(id models.Identifier) bool { return id == item.ID })
	room.AddItem(item.ID)
	return fmt.Sprintf("You drop the %s.", item.Name), nil
}

func (s *Session) showInventory() string {
	names := s.itemNames(s.inventory)
	if len(names) == 0 {
		return emptyInventoryText
	}

	lines := make([]string, 0, len(names)+1)
	lines = append(lines, "You are carrying:")
	for _, name := range names {
		lines = append(lines, "- "+name)
	}
	return strings.Join(lines, "\n")
}

// match returns the first item among ids whose display name contains query,
// ignoring case. Ids with no item definition are skipped.
func (s *Session) match(ids []models.Identifier, query string) *models.Item {
	needle := fold(query)
	for _, id := range ids {
		item := s.world.Item(id)
		if item == nil {
			continue
		}
		if strings.Contains(fold(item.Name), needle) {
			return item
		}
	}
	return nil
}

func (s *Session) itemNames(ids []models.Identifier) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if item := s.world.Item(id); item != nil {
			names = append(names, item.Name)
		}
	}
	return names
}

// fold normalises text for case-insensitive matching. A Caser keeps state,
// so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}
