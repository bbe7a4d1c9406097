package config

import "strings"

// ParseArgs extracts configuration overrides from command-line arguments.
// Only arguments starting with "--" are considered: "--server.port=9090"
// sets server.port and a bare "--debug" sets debug to "true". Anything
// else is left for the caller. Later occurrences win.
func ParseArgs(args []string) map[string]string {
	overrides := make(map[string]string)
	for _, arg := range args {
		if !strings.HasPrefix(arg, "--") {
			continue
		}
		key, value, found := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		if !found {
			value = "true"
		}
		overrides[key] = value
	}
	return overrides
}
