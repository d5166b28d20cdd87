package commands

import (
	"fmt"
	"strings"
)

// Definition describes one slash command. Definitions without a Handler are
// menu-only and never match in Dispatch.
type Definition struct {
	Name        string
	Description string
	Usage       string
	Aliases     []string
	Handler     Handler
}

// FormatHelpLines renders "usage - description" lines for defs.
func FormatHelpLines(defs []Definition) string {
	if len(defs) == 0 {
		return "No commands available."
	}

	lines := make([]string, 0, len(defs))
	for _, def := range defs {
		usage := def.Usage
		if usage == "" {
			usage = "/" + def.Name
		}
		desc := def.Description
		if desc == "" {
			desc = "No description"
		}
		lines = append(lines, fmt.Sprintf("%s - %s", usage, desc))
	}
	return strings.Join(lines, "\n")
}
