package cache

// ScopedKeyer wraps a Keyer with a prefix so that several users or projects
// can share one Redis instance without seeing each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "project:planner:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PreviewKey generates a prefixed preview key.
func (k *ScopedKeyer) PreviewKey(templateHash string, page int, opts PreviewKeyOpts) string {
	return k.prefix + k.inner.PreviewKey(templateHash, page, opts)
}

// PlanKey generates a prefixed plan key.
func (k *ScopedKeyer) PlanKey(templateHash string, opts PlanKeyOpts) string {
	return k.prefix + k.inner.PlanKey(templateHash, opts)
}
