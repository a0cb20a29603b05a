package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// KeybindingsFile is the on-disk shape of keybinding overrides.
//
//	version = 1
//	[bindings]
//	quit = ["q"]
//	refresh = ["r", "f5"]
type KeybindingsFile struct {
	Version  int                 `toml:"version"`
	Bindings map[string][]string `toml:"bindings"`
}

// LoadKeybindings reads action -> keys overrides. A missing file yields nil.
func LoadKeybindings(path string) (map[string][]string, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	var file KeybindingsFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	out := make(map[string][]string, len(file.Bindings))
	for action, keys := range file.Bindings {
		action = strings.TrimSpace(action)
		if action == "" {
			continue
		}
		clean := make([]string, 0, len(keys))
		for _, k := range keys {
			k = strings.ToLower(strings.TrimSpace(k))
			if k == "" {
				continue
			}
			clean = append(clean, k)
		}
		if len(clean) == 0 {
			return nil, fmt.Errorf("parse %s: action %q has no keys", path, action)
		}
		out[action] = clean
	}
	return out, nil
}
