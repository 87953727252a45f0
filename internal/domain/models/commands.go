package models

import "strings"

// CommandType enumerates the owner commands accepted over WhatsApp.
type CommandType string

const (
	CommandStats   CommandType = "stats"
	CommandHistory CommandType = "history"
	CommandSearch  CommandType = "search"
	CommandHelp    CommandType = "help"
	CommandUnknown CommandType = "unknown"
)

// Command represents a parsed owner instruction extracted from WhatsApp text.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command instance from free-form text messages.
// Only the command word is lowercased; arguments keep their original case
// so phone searches stay as typed.
func ParseCommand(message string) Command {
	tokens := strings.Fields(message)
	cmd := Command{Type: CommandUnknown, Raw: message}

	if len(tokens) == 0 {
		return cmd
	}

	head := strings.TrimPrefix(strings.ToLower(tokens[0]), "/")
	switch CommandType(head) {
	case CommandStats, CommandHistory, CommandSearch, CommandHelp:
		cmd.Type = CommandType(head)
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}

	return cmd
}
