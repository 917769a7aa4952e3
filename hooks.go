package pantry

// Hooks are lightweight callbacks for high-signal cache events.
// Implementations MUST be cheap and non-blocking; the engine calls them on
// hot paths. Wrap with hooks/async to move work off the caller.
type Hooks interface {
	// A cached snapshot failed frame or codec validation and was deleted.
	// reason ∈ {"corrupt", "value_decode"}
	SelfHeal(storageKey, reason string)

	// An index query read through to the backing store.
	IndexReadThrough(attribute string, misses int)

	// Index entries were (re)populated for an attribute.
	IndexFilled(attribute string, values int)

	// A full restock completed.
	Restocked(count int)

	// Expired members were pruned from the all-records index.
	Pruned(removed int64)
}

// NopHooks is the default no-op.
type NopHooks struct{}

func (NopHooks) SelfHeal(string, string)      {}
func (NopHooks) IndexReadThrough(string, int) {}
func (NopHooks) IndexFilled(string, int)      {}
func (NopHooks) Restocked(int)                {}
func (NopHooks) Pruned(int64)                 {}
