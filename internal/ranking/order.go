package ranking

// Order is a rank order of player ids, strongest first. MoveTo is the only
// operation that rearranges it.
type Order struct {
	ids []string
}

// NewOrder copies ids into a new Order.
func NewOrder(ids []string) *Order {
	o := &Order{ids: make([]string, len(ids))}
	copy(o.ids, ids)
	return o
}

// Len returns the number of ids in the order.
func (o *Order) Len() int {
	return len(o.ids)
}

// IDs returns a copy of the current order.
func (o *Order) IDs() []string {
	out := make([]string, len(o.ids))
	copy(out, o.ids)
	return out
}

// Index returns the position of id, or -1 if it is not ranked.
func (o *Order) Index(id string) int {
	for i, v := range o.ids {
		if v == id {
			return i
		}
	}
	return -1
}

// MoveTo moves the id at from to position to, shifting the ids in between.
// Both positions are clamped to the order's bounds.
func (o *Order) MoveTo(from, to int) {
	n := len(o.ids)
	if n == 0 || from < 0 || from >= n {
		return
	}
	to = clamp(to, 0, n-1)
	if from == to {
		return
	}
	id := o.ids[from]
	if from < to {
		copy(o.ids[from:to], o.ids[from+1:to+1])
	} else {
		copy(o.ids[to+1:from+1], o.ids[to:from])
	}
	o.ids[to] = id
}

// Shift moves id by delta positions; negative delta moves it toward the top.
// Ids that are not ranked are ignored.
func (o *Order) Shift(id string, delta int) {
	from := o.Index(id)
	if from < 0 {
		return
	}
	o.MoveTo(from, from+delta)
}

// Positions returns id -> position for the current order.
func (o *Order) Positions() map[string]int {
	m := make(map[string]int, len(o.ids))
	for i, id := range o.ids {
		m[id] = i
	}
	return m
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
