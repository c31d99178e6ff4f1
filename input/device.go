package input

// Event is a raw key transition.
type Event struct {
	Code Code
	Down bool
}

// Listener receives raw key events.
type Listener func(Event)

// Source is anything that can deliver raw key events to subscribers.
type Source interface {
	Subscribe(Listener) (unsubscribe func())
}

// Device fans raw key events out to its subscribers. The host feeds it from
// whatever it polls; the game feeds it from ebiten once per frame.
type Device struct {
	listeners map[int]Listener
	order     []int
	nextID    int
}

func NewDevice() *Device {
	return &Device{listeners: make(map[int]Listener)}
}

// Subscribe registers l. The returned func removes it and is safe to call twice.
func (d *Device) Subscribe(l Listener) func() {
	if d == nil || l == nil {
		return func() {}
	}
	if d.listeners == nil {
		d.listeners = make(map[int]Listener)
	}
	d.nextID++
	id := d.nextID
	d.listeners[id] = l
	d.order = append(d.order, id)
	return func() {
		if _, ok := d.listeners[id]; !ok {
			return
		}
		delete(d.listeners, id)
		for i, existing := range d.order {
			if existing == id {
				d.order = append(d.order[:i], d.order[i+1:]...)
				break
			}
		}
	}
}

// Emit delivers ev to every listener in subscription order.
func (d *Device) Emit(ev Event) {
	if d == nil {
		return
	}
	ids := append([]int(nil), d.order...)
	for _, id := range ids {
		if l, ok := d.listeners[id]; ok {
			l(ev)
		}
	}
}

func (d *Device) KeyDown(code Code) { d.Emit(Event{Code: code, Down: true}) }
func (d *Device) KeyUp(code Code)   { d.Emit(Event{Code: code, Down: false}) }

// Listeners reports how many subscribers are registered.
func (d *Device) Listeners() int {
	if d == nil {
		return 0
	}
	return len(d.listeners)
}
