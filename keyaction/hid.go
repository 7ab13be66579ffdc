package keyaction

// HID usage codes for keyboard keys (USB HID Usage Tables, Keyboard/Keypad
// page). These are the values a Basic or DualRole action's Code field
// carries, and the values MacroEngine opcodes operate on.
const (
	// Letters A-Z
	KeyA = 0x04
	KeyB = 0x05
	KeyC = 0x06
	KeyD = 0x07
	KeyE = 0x08
	KeyF = 0x09
	KeyG = 0x0A
	KeyH = 0x0B
	KeyI = 0x0C
	KeyJ = 0x0D
	KeyK = 0x0E
	KeyL = 0x0F
	KeyM = 0x10
	KeyN = 0x11
	KeyO = 0x12
	KeyP = 0x13
	KeyQ = 0x14
	KeyR = 0x15
	KeyS = 0x16
	KeyT = 0x17
	KeyU = 0x18
	KeyV = 0x19
	KeyW = 0x1A
	KeyX = 0x1B
	KeyY = 0x1C
	KeyZ = 0x1D

	// Numbers 1-0 (top row)
	Key1 = 0x1E
	Key2 = 0x1F
	Key3 = 0x20
	Key4 = 0x21
	Key5 = 0x22
	Key6 = 0x23
	Key7 = 0x24
	Key8 = 0x25
	Key9 = 0x26
	Key0 = 0x27

	// Special keys
	KeyEnter      = 0x28
	KeyEscape     = 0x29
	KeyBackspace  = 0x2A
	KeyTab        = 0x2B
	KeySpace      = 0x2C
	KeyMinus      = 0x2D
	KeyEqual      = 0x2E
	KeyLeftBrace  = 0x2F
	KeyRightBrace = 0x30
	KeyBackslash  = 0x31
	KeyNonUSHash  = 0x32
	KeySemicolon  = 0x33
	KeyApostrophe = 0x34
	KeyGrave      = 0x35
	KeyComma      = 0x36
	KeyPeriod     = 0x37
	KeySlash      = 0x38
	KeyCapsLock   = 0x39

	// Function keys
	KeyF1  = 0x3A
	KeyF2  = 0x3B
	KeyF3  = 0x3C
	KeyF4  = 0x3D
	KeyF5  = 0x3E
	KeyF6  = 0x3F
	KeyF7  = 0x40
	KeyF8  = 0x41
	KeyF9  = 0x42
	KeyF10 = 0x43
	KeyF11 = 0x44
	KeyF12 = 0x45

	// Control keys
	KeyPrintScreen = 0x46
	KeyScrollLock  = 0x47
	KeyPause       = 0x48
	KeyInsert      = 0x49
	KeyHome        = 0x4A
	KeyPageUp      = 0x4B
	KeyDelete      = 0x4C
	KeyEnd         = 0x4D
	KeyPageDown    = 0x4E

	// Arrow keys
	KeyRight = 0x4F
	KeyLeft  = 0x50
	KeyDown  = 0x51
	KeyUp    = 0x52

	// Numpad
	KeyNumLock    = 0x53
	KeyKpSlash    = 0x54
	KeyKpAsterisk = 0x55
	KeyKpMinus    = 0x56
	KeyKpPlus     = 0x57
	KeyKpEnter    = 0x58
	KeyKp1        = 0x59
	KeyKp2        = 0x5A
	KeyKp3        = 0x5B
	KeyKp4        = 0x5C
	KeyKp5        = 0x5D
	KeyKp6        = 0x5E
	KeyKp7        = 0x5F
	KeyKp8        = 0x60
	KeyKp9        = 0x61
	KeyKp0        = 0x62
	KeyKpDot      = 0x63

	// Additional keys
	KeyNonUSBackslash = 0x64
	KeyApplication    = 0x65
	KeyPower          = 0x66
	KeyKpEqual        = 0x67

	// Extended function keys
	KeyF13 = 0x68
	KeyF14 = 0x69
	KeyF15 = 0x6A
	KeyF16 = 0x6B
	KeyF17 = 0x6C
	KeyF18 = 0x6D
	KeyF19 = 0x6E
	KeyF20 = 0x6F
	KeyF21 = 0x70
	KeyF22 = 0x71
	KeyF23 = 0x72
	KeyF24 = 0x73

	KeyMute       = 0x7F
	KeyVolumeUp   = 0x80
	KeyVolumeDown = 0x81
)

// Modifier HID usage codes (USB HID Keyboard/Keypad page 0xE0-0xE7). A
// Basic or DualRole whose Code falls in this range contributes only a
// modifier bit, never a keys[] slot entry (spec §3, §4.5).
const (
	UsageLeftControl  uint8 = 0xE0
	UsageLeftShift    uint8 = 0xE1
	UsageLeftAlt      uint8 = 0xE2
	UsageLeftGUI      uint8 = 0xE3
	UsageRightControl uint8 = 0xE4
	UsageRightShift   uint8 = 0xE5
	UsageRightAlt     uint8 = 0xE6
	UsageRightGUI     uint8 = 0xE7
)

// Modifier bitmasks for report.Model.Mods, USB HID 1.11 §B.1.
const (
	ModLeftCtrl   uint8 = 0x01
	ModLeftShift  uint8 = 0x02
	ModLeftAlt    uint8 = 0x04
	ModLeftGUI    uint8 = 0x08
	ModRightCtrl  uint8 = 0x10
	ModRightShift uint8 = 0x20
	ModRightAlt   uint8 = 0x40
	ModRightGUI   uint8 = 0x80
)

// IsModifierUsage reports whether code is one of the eight modifier usage
// codes (0xE0-0xE7) rather than an ordinary key usage.
func IsModifierUsage(code uint8) bool {
	return code >= UsageLeftControl && code <= UsageRightGUI
}

// ModifierBit converts a modifier usage code into its report.Model.Mods
// bitmask. The caller must first confirm IsModifierUsage(code).
func ModifierBit(code uint8) uint8 {
	return 1 << (code - UsageLeftControl)
}

// Consumer usage codes (USB HID Consumer page, a practical subset).
const (
	ConsumerPlayPause    uint16 = 0x00CD
	ConsumerScanNext     uint16 = 0x00B5
	ConsumerScanPrevious uint16 = 0x00B6
	ConsumerStop         uint16 = 0x00B7
	ConsumerMute         uint16 = 0x00E2
	ConsumerVolumeUp     uint16 = 0x00E9
	ConsumerVolumeDown   uint16 = 0x00EA
)

// System usage codes (USB HID Generic Desktop page, power control subset).
const (
	SystemPowerDown uint16 = 0x0081
	SystemSleep     uint16 = 0x0082
	SystemWakeUp    uint16 = 0x0083
)

// KeyName maps HID usage codes to human-readable key names, used by the
// keymap layout DSL's name table.
var KeyName = map[uint8]string{
	KeyA: "A", KeyB: "B", KeyC: "C", KeyD: "D", KeyE: "E", KeyF: "F", KeyG: "G",
	KeyH: "H", KeyI: "I", KeyJ: "J", KeyK: "K", KeyL: "L", KeyM: "M", KeyN: "N",
	KeyO: "O", KeyP: "P", KeyQ: "Q", KeyR: "R", KeyS: "S", KeyT: "T", KeyU: "U",
	KeyV: "V", KeyW: "W", KeyX: "X", KeyY: "Y", KeyZ: "Z",

	Key1: "1", Key2: "2", Key3: "3", Key4: "4", Key5: "5",
	Key6: "6", Key7: "7", Key8: "8", Key9: "9", Key0: "0",

	KeyEnter:      "ENT",
	KeyEscape:     "ESC",
	KeyBackspace:  "BSPC",
	KeyTab:        "TAB",
	KeySpace:      "SPC",
	KeyMinus:      "MINUS",
	KeyEqual:      "EQUAL",
	KeyLeftBrace:  "LBRC",
	KeyRightBrace: "RBRC",
	KeyBackslash:  "BSLS",
	KeySemicolon:  "SEMI",
	KeyApostrophe: "QUOT",
	KeyGrave:      "GRV",
	KeyComma:      "COMM",
	KeyPeriod:     "DOT",
	KeySlash:      "SLSH",
	KeyCapsLock:   "CAPS",

	KeyF1: "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4", KeyF5: "F5", KeyF6: "F6",
	KeyF7: "F7", KeyF8: "F8", KeyF9: "F9", KeyF10: "F10", KeyF11: "F11", KeyF12: "F12",

	KeyHome: "HOME", KeyEnd: "END", KeyPageUp: "PGUP", KeyPageDown: "PGDN",
	KeyInsert: "INS", KeyDelete: "DEL",

	KeyRight: "RIGHT", KeyLeft: "LEFT", KeyDown: "DOWN", KeyUp: "UP",
}

// CharToKey maps ASCII characters to the HID usage code that (with Shift,
// per ShiftChars) produces them. Used by macro.TextSequence.
var CharToKey = map[byte]uint8{
	'a': KeyA, 'b': KeyB, 'c': KeyC, 'd': KeyD, 'e': KeyE, 'f': KeyF, 'g': KeyG,
	'h': KeyH, 'i': KeyI, 'j': KeyJ, 'k': KeyK, 'l': KeyL, 'm': KeyM, 'n': KeyN,
	'o': KeyO, 'p': KeyP, 'q': KeyQ, 'r': KeyR, 's': KeyS, 't': KeyT, 'u': KeyU,
	'v': KeyV, 'w': KeyW, 'x': KeyX, 'y': KeyY, 'z': KeyZ,

	'A': KeyA, 'B': KeyB, 'C': KeyC, 'D': KeyD, 'E': KeyE, 'F': KeyF, 'G': KeyG,
	'H': KeyH, 'I': KeyI, 'J': KeyJ, 'K': KeyK, 'L': KeyL, 'M': KeyM, 'N': KeyN,
	'O': KeyO, 'P': KeyP, 'Q': KeyQ, 'R': KeyR, 'S': KeyS, 'T': KeyT, 'U': KeyU,
	'V': KeyV, 'W': KeyW, 'X': KeyX, 'Y': KeyY, 'Z': KeyZ,

	'1': Key1, '2': Key2, '3': Key3, '4': Key4, '5': Key5,
	'6': Key6, '7': Key7, '8': Key8, '9': Key9, '0': Key0,

	'!': Key1, '@': Key2, '#': Key3, '$': Key4, '%': Key5,
	'^': Key6, '&': Key7, '*': Key8, '(': Key9, ')': Key0,

	'-': KeyMinus, '=': KeyEqual, '[': KeyLeftBrace, ']': KeyRightBrace,
	'\\': KeyBackslash, ';': KeySemicolon, '\'': KeyApostrophe, '`': KeyGrave,
	',': KeyComma, '.': KeyPeriod, '/': KeySlash,

	'_': KeyMinus, '+': KeyEqual, '{': KeyLeftBrace, '}': KeyRightBrace,
	'|': KeyBackslash, ':': KeySemicolon, '"': KeyApostrophe, '~': KeyGrave,
	'<': KeyComma, '>': KeyPeriod, '?': KeySlash,

	' ': KeySpace, '\n': KeyEnter, '\r': KeyEnter, '\t': KeyTab,
}

// ShiftChars defines which characters require the Shift modifier to type.
var ShiftChars = map[byte]bool{
	'A': true, 'B': true, 'C': true, 'D': true, 'E': true, 'F': true, 'G': true,
	'H': true, 'I': true, 'J': true, 'K': true, 'L': true, 'M': true, 'N': true,
	'O': true, 'P': true, 'Q': true, 'R': true, 'S': true, 'T': true, 'U': true,
	'V': true, 'W': true, 'X': true, 'Y': true, 'Z': true,

	'!': true, '@': true, '#': true, '$': true, '%': true,
	'^': true, '&': true, '*': true, '(': true, ')': true,

	'_': true, '+': true, '{': true, '}': true, '|': true,
	':': true, '"': true, '~': true, '<': true, '>': true, '?': true,
}
