package thunkx

// Cell is the single source of truth for a store's current state.
// Reads are never tied to a render: Read always returns the last committed value.
type Cell[S any] struct {
	value   S
	version uint64
	notify  func()
}

// NewCell returns a cell holding initial. notify, if non-nil, is called after every commit.
func NewCell[S any](initial S, notify func()) *Cell[S] {
	return &Cell[S]{value: initial, notify: notify}
}

// NewLazyCell returns a cell holding init(arg). init is called exactly once, here.
func NewLazyCell[S, I any](arg I, init func(I) S, notify func()) *Cell[S] {
	return NewCell(init(arg), notify)
}

// Read returns the current state.
func (c *Cell[S]) Read() S {
	return c.value
}

// Commit replaces the current state and notifies. There is no equality
// check: committing an equal value still counts as a commit.
func (c *Cell[S]) Commit(next S) {
	c.value = next
	c.version++
	if c.notify != nil {
		c.notify()
	}
}

// Version returns the number of commits so far.
func (c *Cell[S]) Version() uint64 {
	return c.version
}
