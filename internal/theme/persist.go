package theme

import (
	"errors"
	"fmt"

	"github.com/yiblet/dash/internal/store"
)

// ConfigKey is the runtime config key holding the chosen palette.
const ConfigKey = "theme"

// Load returns the palette saved in cs, or fallback when none is saved or the
// saved value is not a known palette.
func Load(cs store.ConfigStore, fallback Name) Name {
	if cs == nil {
		return fallback
	}
	value, err := cs.Get(ConfigKey)
	if err != nil {
		return fallback
	}
	name, err := Parse(value)
	if err != nil {
		return fallback
	}
	return name
}

// Save records name as the chosen palette.
func Save(cs store.ConfigStore, name Name) error {
	if cs == nil {
		return errors.New("no config store")
	}
	if _, err := Parse(string(name)); err != nil {
		return err
	}
	if err := cs.Set(ConfigKey, string(name)); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}
