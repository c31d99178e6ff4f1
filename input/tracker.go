package input

// Tracker keeps the pressed state of the logical control keys. It is written
// by raw key events and read once per frame; the last write between two
// frames wins.
type Tracker struct {
	keymap      Keymap
	down        map[Code]bool
	unsubscribe func()
}

func NewTracker(km Keymap) *Tracker {
	if km == nil {
		km = DefaultKeymap()
	}
	return &Tracker{keymap: km, down: make(map[Code]bool)}
}

// Activate subscribes the tracker to src. Activating an active tracker is a no-op.
func (t *Tracker) Activate(src Source) {
	if t == nil || src == nil || t.unsubscribe != nil {
		return
	}
	t.unsubscribe = src.Subscribe(t.handle)
}

// Deactivate unsubscribes from the source and releases every key.
func (t *Tracker) Deactivate() {
	if t == nil || t.unsubscribe == nil {
		return
	}
	t.unsubscribe()
	t.unsubscribe = nil
	clear(t.down)
}

func (t *Tracker) Active() bool {
	return t != nil && t.unsubscribe != nil
}

func (t *Tracker) handle(ev Event) {
	if ev.Down {
		t.OnKeyDown(ev.Code)
		return
	}
	t.OnKeyUp(ev.Code)
}

// OnKeyDown marks code as held. Codes outside the keymap are ignored.
func (t *Tracker) OnKeyDown(code Code) {
	if t == nil {
		return
	}
	if _, ok := t.keymap[code]; !ok {
		return
	}
	t.down[code] = true
}

func (t *Tracker) OnKeyUp(code Code) {
	if t == nil {
		return
	}
	delete(t.down, code)
}

// IsPressed reports whether any code bound to k is held.
func (t *Tracker) IsPressed(k Key) bool {
	return t.State().IsPressed(k)
}

// State snapshots the logical key state.
func (t *Tracker) State() KeyState {
	var s KeyState
	if t == nil {
		return s
	}
	for code := range t.down {
		if k, ok := t.keymap[code]; ok {
			s[k] = true
		}
	}
	return s
}

// SetKeymap replaces the bindings. Held codes that are no longer bound are released.
func (t *Tracker) SetKeymap(km Keymap) {
	if t == nil || km == nil {
		return
	}
	t.keymap = km
	for code := range t.down {
		if _, ok := km[code]; !ok {
			delete(t.down, code)
		}
	}
}
