package engine

import "strings"

// Parse turns a line of player input into a Command. Only the verb is
// lower-cased; arguments keep their case. Parse never fails: anything it
// does not recognise becomes KindUnknown.
func Parse(line string) Command {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Command{Kind: KindUnknown}
	}

	verb := strings.ToLower(tokens[0])
	switch verb {
	case "look", "l", "examine", "x":
		return Command{Kind: KindLook}
	case "go":
		if len(tokens) > 1 {
			return Command{Kind: KindGo, Arg: tokens[1]}
		}
	case "n", "north":
		return Command{Kind: KindNorth}
	case "s", "south":
		return Command{Kind: KindSouth}
	case "e", "east":
		return Command{Kind: KindEast}
	case "w", "west":
		return Command{Kind: KindWest}
	case "take", "get", "pick":
		if len(tokens) > 1 {
			// "pick up X" names the item in the third token.
			if verb == "pick" && len(tokens) > 2 && tokens[1] == "up" {
				return Command{Kind: KindTake, Arg: tokens[2]}
			}
			return Command{Kind: KindTake, Arg: tokens[1]}
		}
	case "drop":
		if len(tokens) > 1 {
			return Command{Kind: KindDrop, Arg: tokens[1]}
		}
	case "inventory", "i", "inv":
		return Command{Kind: KindInventory}
	case "help", "h", "?":
		return Command{Kind: KindHelp}
	}

	return Command{Kind: KindUnknown}
}
