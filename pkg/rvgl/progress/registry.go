package progress

import "slices"

// registry keeps entries by name and remembers insertion order for display.
type registry[E any] struct {
	order  []string
	byName map[string]*E
}

func newRegistry[E any]() registry[E] {
	return registry[E]{byName: make(map[string]*E)}
}

func (r *registry[E]) get(name string) (*E, bool) {
	e, ok := r.byName[name]
	return e, ok
}

// put stores e under name. Replacing keeps the original position.
func (r *registry[E]) put(name string, e *E) {
	if _, ok := r.byName[name]; !ok {
		r.order = append(r.order, name)
	}
	r.byName[name] = e
}

func (r *registry[E]) remove(name string) bool {
	if _, ok := r.byName[name]; !ok {
		return false
	}
	delete(r.byName, name)
	r.order = slices.DeleteFunc(r.order, func(n string) bool { return n == name })
	return true
}

func (r *registry[E]) first() (string, bool) {
	if len(r.order) == 0 {
		return "", false
	}
	return r.order[0], true
}

func (r *registry[E]) len() int {
	return len(r.order)
}

// all returns the entries in insertion order.
func (r *registry[E]) all() []*E {
	out := make([]*E, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

func (r *registry[E]) clear() {
	r.order = nil
	clear(r.byName)
}
