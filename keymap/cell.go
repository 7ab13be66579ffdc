package keymap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kbfw/corekbd/keyaction"
)

// ParseCell parses a single layout-document cell into a KeyAction.
//
// Grammar:
//
//	""  | "TRANS"              -> NoEvent (fall through to base layer)
//	NAME                       -> Basic(code(NAME), 0)
//	MOD+...+NAME               -> Basic(code(NAME), mods) for plain modifier prefixes
//	DR(NAME,MOD[+MOD...])      -> DualRole(code(NAME), mods)
//	LAYER(id,MO)               -> Layer(id, momentary=true)
//	LAYER(id,TG)               -> Layer(id, momentary=false)
//	MACRO(id)                  -> Macro(id)
//	CONSUMER(NAME|0xHEX)       -> Consumer(usage)
//	SYSTEM(NAME|0xHEX)         -> System(usage)
func ParseCell(cell string) (keyaction.Action, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == "TRANS" {
		return keyaction.NoEvent(), nil
	}

	if name, args, ok := splitCall(cell); ok {
		switch name {
		case "DR":
			parts := strings.Split(args, ",")
			if len(parts) != 2 {
				return keyaction.Action{}, fmt.Errorf("keymap: DR(...) wants 2 args, got %q", args)
			}
			code, err := lookupCode(parts[0])
			if err != nil {
				return keyaction.Action{}, err
			}
			mods, err := lookupMods(parts[1])
			if err != nil {
				return keyaction.Action{}, err
			}
			return keyaction.DualRole(code, mods), nil

		case "LAYER":
			parts := strings.Split(args, ",")
			if len(parts) != 2 {
				return keyaction.Action{}, fmt.Errorf("keymap: LAYER(...) wants 2 args, got %q", args)
			}
			id, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 8)
			if err != nil {
				return keyaction.Action{}, fmt.Errorf("keymap: bad layer id %q: %w", parts[0], err)
			}
			switch strings.TrimSpace(parts[1]) {
			case "MO":
				return keyaction.Layer(uint8(id), true), nil
			case "TG":
				return keyaction.Layer(uint8(id), false), nil
			default:
				return keyaction.Action{}, fmt.Errorf("keymap: unknown layer mode %q", parts[1])
			}

		case "MACRO":
			id, err := strconv.ParseUint(strings.TrimSpace(args), 10, 16)
			if err != nil {
				return keyaction.Action{}, fmt.Errorf("keymap: bad macro id %q: %w", args, err)
			}
			return keyaction.Macro(uint16(id)), nil

		case "CONSUMER":
			usage, err := lookupUsage(args, consumerUsageNames)
			if err != nil {
				return keyaction.Action{}, err
			}
			return keyaction.Consumer(usage), nil

		case "SYSTEM":
			usage, err := lookupUsage(args, systemUsageNames)
			if err != nil {
				return keyaction.Action{}, err
			}
			return keyaction.System(usage), nil

		default:
			return keyaction.Action{}, fmt.Errorf("keymap: unknown cell function %q", name)
		}
	}

	parts := strings.Split(cell, "+")
	last := strings.TrimSpace(parts[len(parts)-1])
	code, err := lookupCode(last)
	if err != nil {
		return keyaction.Action{}, err
	}
	var mods uint8
	for _, p := range parts[:len(parts)-1] {
		bit, ok := modBit[strings.TrimSpace(p)]
		if !ok {
			return keyaction.Action{}, fmt.Errorf("keymap: unknown modifier %q", p)
		}
		mods |= bit
	}
	return keyaction.Basic(code, mods), nil
}

func splitCall(s string) (name, args string, ok bool) {
	open := strings.IndexByte(s, '(')
	if open == -1 || !strings.HasSuffix(s, ")") {
		return "", "", false
	}
	return s[:open], s[open+1 : len(s)-1], true
}

func lookupCode(name string) (uint8, error) {
	name = strings.TrimSpace(name)
	code, ok := nameToCode[name]
	if !ok {
		return 0, fmt.Errorf("keymap: unknown key name %q", name)
	}
	return code, nil
}

func lookupMods(spec string) (uint8, error) {
	var mods uint8
	for _, p := range strings.Split(spec, "+") {
		bit, ok := modBit[strings.TrimSpace(p)]
		if !ok {
			return 0, fmt.Errorf("keymap: unknown modifier %q", p)
		}
		mods |= bit
	}
	return mods, nil
}

func lookupUsage(spec string, names map[string]uint16) (uint16, error) {
	spec = strings.TrimSpace(spec)
	if strings.HasPrefix(spec, "0x") || strings.HasPrefix(spec, "0X") {
		v, err := strconv.ParseUint(spec[2:], 16, 16)
		if err != nil {
			return 0, fmt.Errorf("keymap: bad hex usage %q: %w", spec, err)
		}
		return uint16(v), nil
	}
	if usage, ok := names[spec]; ok {
		return usage, nil
	}
	return 0, fmt.Errorf("keymap: unknown usage %q", spec)
}
