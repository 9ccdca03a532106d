package cluster

import (
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// readTransformConfig pulls the transform value out of a YAML config file.
// The key may sit at the top level or nested under a section, as mcmicro
// parameter files nest module settings. A config without a transform key is
// a ConfigError: the caller asked for the file to decide, so staying silent
// and defaulting would hide a typo in the key name.
func readTransformConfig(path string) (string, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return "", &ConfigError{Path: path, Reason: err.Error()}
	}
	for _, key := range k.Keys() {
		if key == "transform" || strings.HasSuffix(key, ".transform") {
			return strings.TrimSpace(k.String(key)), nil
		}
	}
	return "", &ConfigError{Path: path, Reason: "no transform key"}
}
