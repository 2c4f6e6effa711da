package engine

// Kind identifies which command a line of input was parsed into.
type Kind int

const (
	KindUnknown Kind = iota
	KindLook
	KindGo
	KindNorth
	KindSouth
	KindEast
	KindWest
	KindTake
	KindDrop
	KindInventory
	KindHelp
)

var kindNames = map[Kind]string{
	KindUnknown:   "unknown",
	KindLook:      "look",
	KindGo:        "go",
	KindNorth:     "north",
	KindSouth:     "south",
	KindEast:      "east",
	KindWest:      "west",
	KindTake:      "take",
	KindDrop:      "drop",
	KindInventory: "inventory",
	KindHelp:      "help",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is a parsed player command. Arg carries the direction for Go and
// the item query for Take and Drop, with its original case.
type Command struct {
	Kind Kind
	Arg  string
}

// IsMovement reports whether the command belongs to the movement category.
func (c Command) IsMovement() bool {
	switch c.Kind {
	case KindGo, KindNorth, KindSouth, KindEast, KindWest:
		return true
	default:
		return false
	}
}

// Direction returns the direction a movement command travels in.
func (c Command) Direction() string {
	switch c.Kind {
	case KindGo:
		return c.Arg
	case KindNorth:
		return "north"
	case KindSouth:
		return "south"
	case KindEast:
		return "east"
	case KindWest:
		return "west"
	default:
		return ""
	}
}

func (c Command) String() string {
	if c.Arg == "" {
		return c.Kind.String()
	}
	return c.Kind.String() + " " + c.Arg
}
