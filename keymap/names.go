package keymap

import "github.com/kbfw/corekbd/keyaction"

// nameToCode is the reverse of keyaction.KeyName, extended with the eight
// modifier usage codes so a layout document can name a bare modifier key
// the same way it names any other key.
var nameToCode = buildNameToCode()

func buildNameToCode() map[string]uint8 {
	m := make(map[string]uint8, len(keyaction.KeyName)+8)
	for code, name := range keyaction.KeyName {
		m[name] = code
	}
	m["LCTL"] = keyaction.UsageLeftControl
	m["LSFT"] = keyaction.UsageLeftShift
	m["LALT"] = keyaction.UsageLeftAlt
	m["LGUI"] = keyaction.UsageLeftGUI
	m["RCTL"] = keyaction.UsageRightControl
	m["RSFT"] = keyaction.UsageRightShift
	m["RALT"] = keyaction.UsageRightAlt
	m["RGUI"] = keyaction.UsageRightGUI
	return m
}

// modBit maps a modifier name to its report.Model.Mods bitmask, used for
// the "+"-joined modifier prefixes in a layout cell (e.g. "LSFT+A").
var modBit = map[string]uint8{
	"LCTL": keyaction.ModLeftCtrl,
	"LSFT": keyaction.ModLeftShift,
	"LALT": keyaction.ModLeftAlt,
	"LGUI": keyaction.ModLeftGUI,
	"RCTL": keyaction.ModRightCtrl,
	"RSFT": keyaction.ModRightShift,
	"RALT": keyaction.ModRightAlt,
	"RGUI": keyaction.ModRightGUI,
}

// consumerUsageNames and systemUsageNames resolve the short mnemonics a
// layout document may use inside CONSUMER(...)/SYSTEM(...) cells.
var consumerUsageNames = map[string]uint16{
	"PLAY": keyaction.ConsumerPlayPause,
	"NEXT": keyaction.ConsumerScanNext,
	"PREV": keyaction.ConsumerScanPrevious,
	"STOP": keyaction.ConsumerStop,
	"MUTE": keyaction.ConsumerMute,
	"VOLU": keyaction.ConsumerVolumeUp,
	"VOLD": keyaction.ConsumerVolumeDown,
}

var systemUsageNames = map[string]uint16{
	"POWER": keyaction.SystemPowerDown,
	"SLEEP": keyaction.SystemSleep,
	"WAKE":  keyaction.SystemWakeUp,
}

// LookupKeyCode resolves a layout-DSL key name (the same names ParseCell
// accepts) to its HID usage code, for callers outside this package that
// need the same name table — e.g. a macro byte-stream assembler.
func LookupKeyCode(name string) (uint8, bool) {
	code, ok := nameToCode[name]
	return code, ok
}
