package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-threads")
	Args    []string // Possible argument values (for non-option arguments)
}

var commandMetadata = map[string]CommandMetadata{
	"solve": {
		Options: []string{"-threads", "-show", "-out", "-format", "-progress"},
	},
	"load": {
		Options: []string{"-reload"},
	},
	"candidates": {
		Options: []string{"-n"},
	},
	"histogram": {
		Options: []string{"-bins"},
		Args:    []string{"candidates", "tasks"},
	},
	"set": {
		Args: settableKeys,
	},
	"help": {
		Args: []string{"load", "solve", "candidates", "histogram", "set"},
	},
}

var commandNames = []string{
	"help", "load", "info", "rank", "candidates", "anagrams", "solve",
	"report", "histogram", "set", "exit",
}

var boolValues = []string{"true", "false"}
var formatValues = []string{"csv", "sqlite", "nats"}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		// Unbalanced quotes while typing.
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch {
		case lastCompleteField == "-reload" || lastCompleteField == "-progress":
			completions = boolValues
		case lastCompleteField == "-format":
			completions = formatValues
		case cmdName == "set" && lastCompleteField == "progress":
			completions = boolValues
		case cmdName == "set" && lastCompleteField == "output-format":
			completions = formatValues
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
