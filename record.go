package pantry

import "context"

// Record is a snapshot handed over by the backing store: a unique id, a
// destroyed flag, and the attribute map that gets cached. The store owns
// record identity and attribute values; pantry treats them as the source of
// truth on every miss.
type Record interface {
	ID() string
	Destroyed() bool
	Attributes() map[string]any
}

// Filter narrows a backing-store query with extra attribute equality
// constraints. A nil Filter means no narrowing. The store adapter decides
// how to translate it (SQL WHERE, ORM scope, ...).
type Filter map[string]any

// Store is the backing store of record. FindByIDs and FindByAttribute omit
// records that no longer exist; FindAll returns every live record and backs
// Restock.
type Store interface {
	FindByIDs(ctx context.Context, ids []string) ([]Record, error)
	FindByAttribute(ctx context.Context, attribute string, values []any, filter Filter) ([]Record, error)
	FindAll(ctx context.Context) ([]Record, error)
}

// ValueChange is a before/after pair for one watched attribute.
type ValueChange struct {
	Old any
	New any
}

// Change describes one committed write the integration layer is reporting.
// Diff maps attribute name to its old/new values; attributes that did not
// change may be omitted. A nil Diff means the caller does not know what
// changed, and the engine conservatively assumes index membership moved.
type Change struct {
	Record Record
	Diff   map[string]ValueChange
}
