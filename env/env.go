// Package env prepares the environment handed to the launched server.
package env

import (
	"strings"
)

// Scrub removes the named variables from environ. The launcher scrubs the
// secret-bearing variables before the handoff so the secret reaches the
// server only through the rendered configuration file.
func Scrub(environ []string, names ...string) []string {
	scrubbed := make([]string, 0, len(environ))

	for _, entry := range environ {
		key := entry
		if idx := strings.Index(entry, "="); idx >= 0 {
			key = entry[:idx]
		}

		dropped := false
		for _, name := range names {
			if name != "" && key == name {
				dropped = true
				break
			}
		}
		if !dropped {
			scrubbed = append(scrubbed, entry)
		}
	}

	return scrubbed
}
