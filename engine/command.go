package engine

// Command is an external input forwarded by the host to the game loop
type Command int

const (
	CmdNone        Command = iota
	CmdCast                // Ability button
	CmdSelect              // Click on the shown card
	CmdCommit              // Throw the selected card
	CmdReset               // Hidden hat reset
	CmdStrong              // Shake gesture
	CmdToggleDebug         // Hidden gold card debug toggle
)

var commandNames = map[Command]string{
	CmdNone:        "none",
	CmdCast:        "cast",
	CmdSelect:      "select",
	CmdCommit:      "commit",
	CmdReset:       "reset",
	CmdStrong:      "strong",
	CmdToggleDebug: "debug",
}

// String returns the command name used in logs and scenario files
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCommand resolves a command by name
func ParseCommand(name string) (Command, bool) {
	for c, n := range commandNames {
		if n == name && c != CmdNone {
			return c, true
		}
	}
	return CmdNone, false
}
