package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Load resolves a secret from a file path or an inline value, preferring the
// file. The result is trimmed; a blank secret is an error so misconfiguration
// fails loudly instead of producing empty credentials.
func Load(name, file, value string) (string, error) {
	if strings.TrimSpace(name) == "" {
		name = "secret"
	}

	if file = strings.TrimSpace(file); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}
		value = string(data)
	}

	secret := strings.TrimSpace(value)
	if secret == "" {
		if file != "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}
