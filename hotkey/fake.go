package hotkey

type FakeListener struct {
	events chan Action
}

func NewFake() *FakeListener {
	return &FakeListener{
		events: make(chan Action, 8),
	}
}

func (f *FakeListener) Register() error       { return nil }
func (f *FakeListener) Unregister()           {}
func (f *FakeListener) Events() <-chan Action { return f.events }

func (f *FakeListener) Fire(a Action) { f.events <- a }
