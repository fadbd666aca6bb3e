package announce

// FakePublisher records published events for tests.
type FakePublisher struct {
	Events       []Event
	SystemEvents []SystemEvent
	Closed       bool

	// PublishError, if set, is returned by both publish methods.
	PublishError error
}

// Publish records the event.
func (f *FakePublisher) Publish(event Event) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.Events = append(f.Events, event)
	return nil
}

// PublishSystem records the lifecycle event.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.SystemEvents = append(f.SystemEvents, event)
	return nil
}

// Close marks the publisher closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// Kinds returns the kinds of the recorded events, in order.
func (f *FakePublisher) Kinds() []string {
	kinds := make([]string, len(f.Events))
	for i, e := range f.Events {
		kinds[i] = e.Kind
	}
	return kinds
}
