// Package report implements the USB HID boot-keyboard report and the
// extra-key (consumer/system) report emitted by the dispatcher.
package report

// Model is the bit-packed HID boot-keyboard report: a modifier byte plus
// up to six simultaneously-pressed HID usage codes. It is rebuilt from
// scratch every dispatcher pass; there is no persistent or shared state
// beyond a single value.
type Model struct {
	Mods uint8
	Keys [6]uint8
}

// Clear zeros the modifier byte and all key slots.
func (m *Model) Clear() {
	m.Mods = 0
	for i := range m.Keys {
		m.Keys[i] = 0
	}
}

// AddKey places code in the first zero slot. A code already present is a
// no-op. If all six slots are occupied the code is silently discarded;
// the HID boot-keyboard protocol has no rollover beyond six keys.
func (m *Model) AddKey(code uint8) {
	if code == 0 {
		return
	}
	firstZero := -1
	for i, k := range m.Keys {
		if k == code {
			return
		}
		if firstZero == -1 && k == 0 {
			firstZero = i
		}
	}
	if firstZero != -1 {
		m.Keys[firstZero] = code
	}
}

// ClearKey zeros the first slot holding code. Absent codes are a no-op.
func (m *Model) ClearKey(code uint8) {
	for i, k := range m.Keys {
		if k == code {
			m.Keys[i] = 0
			return
		}
	}
}

// ToggleKey clears code if present, else adds it.
func (m *Model) ToggleKey(code uint8) {
	for _, k := range m.Keys {
		if k == code {
			m.ClearKey(code)
			return
		}
	}
	m.AddKey(code)
}

// Empty reports whether the modifier byte and every key slot are zero.
func (m Model) Empty() bool {
	if m.Mods != 0 {
		return false
	}
	for _, k := range m.Keys {
		if k != 0 {
			return false
		}
	}
	return true
}

// Equal reports byte-wise equality with other, used to suppress duplicate
// transmissions to the sink.
func (m Model) Equal(other Model) bool {
	return m == other
}

// BuildReport encodes m into the 8-byte wire format of USB HID 1.11 §B.1:
// byte 0 modifiers, byte 1 reserved, bytes 2-7 up to six usage codes.
func (m Model) BuildReport() []byte {
	b := make([]byte, 8)
	b[0] = m.Mods
	copy(b[2:8], m.Keys[:])
	return b
}

// Channel identifies which extra-key usage page a report targets.
type Channel uint8

const (
	ChannelConsumer Channel = iota
	ChannelSystem
)

// ExtraKey is the vendor-selectable extra-key report of spec §6: a report
// ID (2=System, 3=Consumer) and a 16-bit little-endian usage, 0 for release.
type ExtraKey struct {
	Channel Channel
	Usage   uint16
}

// BuildReport encodes e into the 3-byte wire format: report ID, then the
// usage as little-endian bytes.
func (e ExtraKey) BuildReport() []byte {
	id := byte(3)
	if e.Channel == ChannelSystem {
		id = 2
	}
	return []byte{id, byte(e.Usage), byte(e.Usage >> 8)}
}
