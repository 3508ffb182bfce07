//go:build linux

package hotkey

import "golang.design/x/hotkey"

// modifiers maps the neutral config flags to X11 modifier masks.
// Alt is Mod1 and the Super/Cmd key is Mod4 in the default X keymap.
func (c Config) modifiers() []hotkey.Modifier {
	var mods []hotkey.Modifier
	if c.Ctrl {
		mods = append(mods, hotkey.ModCtrl)
	}
	if c.Shift {
		mods = append(mods, hotkey.ModShift)
	}
	if c.Alt {
		mods = append(mods, hotkey.Mod1)
	}
	if c.Cmd {
		mods = append(mods, hotkey.Mod4)
	}
	return mods
}
