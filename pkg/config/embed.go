package config

import (
	_ "embed"

	"github.com/arthur-debert/pacdec/pkg/errors"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultsContent returns the embedded defaults file verbatim.
func DefaultsContent() string {
	return string(defaultConfig)
}

// loadDefaults merges the embedded defaults into k.
func loadDefaults(k *koanf.Koanf) error {
	if err := k.Load(bytesProvider(defaultConfig), toml.Parser()); err != nil {
		return errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}
	return nil
}

// bytesProvider feeds an in-memory TOML document to koanf.
type bytesProvider []byte

func (b bytesProvider) ReadBytes() ([]byte, error) { return b, nil }

func (b bytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "bytesProvider only supports ReadBytes")
}
