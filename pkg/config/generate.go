package config

import (
	"strings"

	"github.com/arthur-debert/pacdec/pkg/errors"
	gotoml "github.com/pelletier/go-toml/v2"
)

// GenerateConfigContent returns the defaults file with every value commented
// out, ready to be saved as a starting config.toml.
func GenerateConfigContent() string {
	return commentOutConfigValues(DefaultsContent())
}

// Marshal renders cfg as TOML, e.g. to show the effective settings.
func Marshal(cfg *Config) (string, error) {
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return string(data), nil
}

// commentOutConfigValues comments out assignment lines. Comments, blank
// lines and section headers are kept as they are.
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}

	return strings.Join(result, "\n")
}
