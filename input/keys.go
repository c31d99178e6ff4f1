package input

import (
	"fmt"
	"slices"
	"strings"
)

// Key is a logical control key.
type Key int

const (
	KeyForward Key = iota
	KeyBackward
	KeyLeft
	KeyRight
	KeyJump

	keyCount
)

var keyNames = [keyCount]string{
	KeyForward:  "forward",
	KeyBackward: "backward",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyJump:     "jump",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// Keys lists every logical key in declaration order.
func Keys() []Key {
	out := make([]Key, 0, keyCount)
	for k := Key(0); k < keyCount; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKey resolves a logical key name such as "forward".
func ParseKey(name string) (Key, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for k, kn := range keyNames {
		if kn == n {
			return Key(k), nil
		}
	}
	return 0, fmt.Errorf("input: unknown key %q", name)
}

// Code names a physical key, using ebiten key names ("W", "Space", "ArrowUp").
type Code string

// Keymap binds physical codes to logical keys. Several codes may share a key.
type Keymap map[Code]Key

func DefaultKeymap() Keymap {
	return Keymap{
		"W":          KeyForward,
		"S":          KeyBackward,
		"A":          KeyLeft,
		"D":          KeyRight,
		"Space":      KeyJump,
		"ArrowUp":    KeyForward,
		"ArrowDown":  KeyBackward,
		"ArrowLeft":  KeyLeft,
		"ArrowRight": KeyRight,
	}
}

// ParseKeymap builds a Keymap from code -> key name pairs.
func ParseKeymap(raw map[string]string) (Keymap, error) {
	km := make(Keymap, len(raw))
	for code, name := range raw {
		k, err := ParseKey(name)
		if err != nil {
			return nil, fmt.Errorf("input: binding %q: %w", code, err)
		}
		km[Code(code)] = k
	}
	return km, nil
}

// Codes returns the codes bound to k in name order.
func (km Keymap) Codes(k Key) []Code {
	var out []Code
	for code, bound := range km {
		if bound == k {
			out = append(out, code)
		}
	}
	slices.Sort(out)
	return out
}

// Help describes every bound key, one line per logical key, e.g.
// "ArrowUp/W - forward". Unbound keys are left out.
func (km Keymap) Help() []string {
	var lines []string
	for _, k := range Keys() {
		codes := km.Codes(k)
		if len(codes) == 0 {
			continue
		}
		names := make([]string, len(codes))
		for i, c := range codes {
			names[i] = string(c)
		}
		lines = append(lines, strings.Join(names, "/")+" - "+k.String())
	}
	return lines
}

// KeyState is the pressed/released state of every logical key.
type KeyState [keyCount]bool

func (s KeyState) IsPressed(k Key) bool {
	if k < 0 || k >= keyCount {
		return false
	}
	return s[k]
}

// With returns a copy of s with k set to pressed.
func (s KeyState) With(keys ...Key) KeyState {
	for _, k := range keys {
		if k >= 0 && k < keyCount {
			s[k] = true
		}
	}
	return s
}
