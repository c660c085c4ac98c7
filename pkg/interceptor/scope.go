package interceptor

// With applies cfg to the slot's Interceptor, runs fn and puts the previous
// configuration back on every exit path, including a panic in fn. The
// outermost scope therefore restores the original transport, while a nested
// scope only swaps the configuration and never wraps the installed wrapper.
// opts only take effect if the slot has no Interceptor yet.
func With(slot *Slot, cfg Config, fn func() error, opts ...Option) error {
	ic := slot.Interceptor(opts...)
	prev := ic.Config()
	ic.UpdateConfig(cfg)
	defer ic.UpdateConfig(prev)
	return fn()
}
