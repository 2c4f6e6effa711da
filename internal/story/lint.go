package story

import (
	"fmt"

	"github.com/tatianab/bby/internal/models"
)

// Problem is a non-fatal finding about a loaded story. Play still works,
// but some part of the world will misbehave or never be seen.
type Problem struct {
	Room    models.Identifier
	Message string
}

func (p Problem) String() string {
	if p.Room == "" {
		return p.Message
	}
	return fmt.Sprintf("room %s: %s", p.Room, p.Message)
}

// Lint reports dangling exits and item references, items placed in more
// than one room and rooms that cannot be reached from the start room.
// Problems are ordered by room id.
func Lint(world *models.World) []Problem {
	var problems []Problem
	placed := map[models.Identifier]models.Identifier{}

	for _, id := range world.RoomIDs() {
		room := world.Rooms[id]

		for _, dir := range room.Directions() {
			if world.Room(room.Exits[dir]) == nil {
				problems = append(problems, Problem{
					Room:    id,
					Message: fmt.Sprintf("exit %s leads to unknown room %q", dir, room.Exits[dir]),
				})
			}
		}

		for _, itemID := range room.Items {
			if world.Item(itemID) == nil {
				problems = append(problems, Problem{
					Room:    id,
					Message: fmt.Sprintf("item %q is not defined", itemID),
				})
				continue
			}
			if first, ok := placed[itemID]; ok {
				problems = append(problems, Problem{
					Room:    id,
					Message: fmt.Sprintf("item %q is also placed in room %s", itemID, first),
				})
				continue
			}
			placed[itemID] = id
		}
	}

	reachable := reach(world)
	for _, id := range world.RoomIDs() {
		if !reachable[id] {
			problems = append(problems, Problem{
				Room:    id,
				Message: "cannot be reached from the start room",
			})
		}
	}

	return problems
}

func reach(world *models.World) map[models.Identifier]bool {
	seen := map[models.Identifier]bool{}
	if world.Room(world.Story.StartRoom) == nil {
		return seen
	}

	queue := []models.Identifier{world.Story.StartRoom}
	seen[world.Story.StartRoom] = true
	for len(queue) > 0 {
		room := world.Rooms[queue[0]]
		queue = queue[1:]
		for _, dir := range room.Directions() {
			next := room.Exits[dir]
			if seen[next] || world.Room(next) == nil {
				continue
			}
			seen[next] = true
			queue = append(queue, next)
		}
	}
	return seen
}
