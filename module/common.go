package module

// ReadyDoneAware is implemented by modules with a single start-stop cycle.
// Ready starts the module and closes the returned channel once startup has
// finished; Done triggers shutdown and closes its channel once shutdown has
// completed. Both are idempotent, and a module will not restart if Ready is
// called again after shutdown has commenced.
type ReadyDoneAware interface {
	Ready() <-chan struct{}
	Done() <-chan struct{}
}

// NoopReadyDoneAware satisfies ReadyDoneAware with immediately-closed
// channels, for components without their own lifecycle.
type NoopReadyDoneAware struct{}

func (n *NoopReadyDoneAware) Ready() <-chan struct{} {
	ready := make(chan struct{})
	defer close(ready)
	return ready
}

func (n *NoopReadyDoneAware) Done() <-chan struct{} {
	done := make(chan struct{})
	defer close(done)
	return done
}
