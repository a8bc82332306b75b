package observe

// Disposable releases a subscription or a scheduled action. Dispose must be idempotent.
type Disposable interface {
	Dispose()
}

// Disposed is a Disposable with nothing to release.
var Disposed Disposable = NewDisposable(func() {})

// ActionDisposable runs its action on the first Dispose.
type ActionDisposable struct {
	action   func()
	disposed bool
}

func NewDisposable(action func()) *ActionDisposable {
	return &ActionDisposable{action: action}
}

func (d *ActionDisposable) Dispose() {
	if d.disposed {
		return
	}
	d.disposed = true
	d.action()
}

func (d *ActionDisposable) IsDisposed() bool {
	return d.disposed
}

// CompositeDisposable disposes a group of disposables together. Anything added after the group was
// disposed is disposed immediately.
type CompositeDisposable struct {
	items    []Disposable
	disposed bool
}

func NewCompositeDisposable(items ...Disposable) *CompositeDisposable {
	c := &CompositeDisposable{items: make([]Disposable, 0, len(items))}
	for _, item := range items {
		c.Add(item)
	}
	return c
}

func (c *CompositeDisposable) Add(item Disposable) {
	if item == nil {
		return
	}

	if c.disposed {
		item.Dispose()
		return
	}

	c.items = append(c.items, item)
}

// Dispose releases every item in the order they were added.
func (c *CompositeDisposable) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true

	items := c.items
	c.items = nil
	for _, item := range items {
		item.Dispose()
	}
}

func (c *CompositeDisposable) IsDisposed() bool {
	return c.disposed
}

// SerialDisposable holds at most one disposable. Replacing it disposes the previous one.
type SerialDisposable struct {
	current  Disposable
	disposed bool
}

func NewSerialDisposable() *SerialDisposable {
	return &SerialDisposable{}
}

func (s *SerialDisposable) Set(item Disposable) {
	if s.disposed {
		if item != nil {
			item.Dispose()
		}
		return
	}

	previous := s.current
	s.current = item
	if previous != nil {
		previous.Dispose()
	}
}

func (s *SerialDisposable) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true

	if s.current != nil {
		s.current.Dispose()
		s.current = nil
	}
}

func (s *SerialDisposable) IsDisposed() bool {
	return s.disposed
}
