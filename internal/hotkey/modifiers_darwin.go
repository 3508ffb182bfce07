//go:build darwin

package hotkey

import "golang.design/x/hotkey"

// modifiers maps the neutral config flags to macOS modifier masks
func (c Config) modifiers() []hotkey.Modifier {
	var mods []hotkey.Modifier
	if c.Ctrl {
		mods = append(mods, hotkey.ModCtrl)
	}
	if c.Shift {
		mods = append(mods, hotkey.ModShift)
	}
	if c.Alt {
		mods = append(mods, hotkey.ModOption)
	}
	if c.Cmd {
		mods = append(mods, hotkey.ModCmd)
	}
	return mods
}
