package macro

import "github.com/kbfw/corekbd/keyaction"

// TextSequence assembles a macro byte stream that types s literally,
// using keyaction.CharToKey/ShiftChars to resolve each character to a
// HID usage (and, where needed, a Shift tap around it). Characters with
// no known mapping are skipped. The result is ready to pass to
// Engine.Run.
func TextSequence(s string) []byte {
	var stream []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		code, ok := keyaction.CharToKey[c]
		if !ok {
			continue
		}
		if keyaction.ShiftChars[c] {
			stream = append(stream, byte(MacroKeyDown), keyaction.UsageLeftShift)
		}
		stream = append(stream,
			byte(MacroKeyDown), code,
			byte(MacroKeyUp), code,
		)
		if keyaction.ShiftChars[c] {
			stream = append(stream, byte(MacroKeyUp), keyaction.UsageLeftShift)
		}
	}
	stream = append(stream, byte(MacroEnd))
	return stream
}
