package game

import (
	"strings"
	"unicode"

	"snake-sprites/game/types"
)

// Command is one of the five abstract player commands
type Command int

const (
	CommandNone Command = iota
	CommandUp
	CommandLeft
	CommandDown
	CommandRight
	CommandPause
)

func (c Command) String() string {
	switch c {
	case CommandUp:
		return "up"
	case CommandLeft:
		return "left"
	case CommandDown:
		return "down"
	case CommandRight:
		return "right"
	case CommandPause:
		return "pause"
	default:
		return "none"
	}
}

// Direction returns the movement direction for a movement command.
func (c Command) Direction() (types.Direction, bool) {
	switch c {
	case CommandUp:
		return types.Up, true
	case CommandLeft:
		return types.Left, true
	case CommandDown:
		return types.Down, true
	case CommandRight:
		return types.Right, true
	}
	return types.None, false
}

// MapKey translates the reference key layout: w/a/s/d to move, space to pause.
func MapKey(r rune) (Command, error) {
	switch unicode.ToLower(r) {
	case 'w':
		return CommandUp, nil
	case 'a':
		return CommandLeft, nil
	case 's':
		return CommandDown, nil
	case 'd':
		return CommandRight, nil
	case ' ':
		return CommandPause, nil
	}
	return CommandNone, types.NewValidationError(types.ErrInvalidCommand, "no command bound to key %q", r)
}

// ParseCommand accepts the command names returned by Command.String.
func ParseCommand(s string) (Command, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return CommandUp, nil
	case "left":
		return CommandLeft, nil
	case "down":
		return CommandDown, nil
	case "right":
		return CommandRight, nil
	case "pause":
		return CommandPause, nil
	}
	return CommandNone, types.NewValidationError(types.ErrInvalidCommand, "unknown command %q", s)
}
