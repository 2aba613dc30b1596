package motion

// Source delivers gravity samples to a callback. Start and Stop are
// fire-and-forget registration calls: Start spawns the source's own
// delivery goroutine, Stop halts further callbacks. fail, when non-nil, is
// called once if the source dies on its own; no samples follow it. Sources
// never touch shared state; the host serializes the callbacks onto its
// update loop.
type Source interface {
	Start(emit func(Sample), fail func(error)) error
	Stop()
}
