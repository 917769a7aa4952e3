// Package pantry implements a read/write-through record cache in front of a
// persistent store. Records are cached by primary id; declared secondary
// indices answer "records where attribute = value" from attribute-keyed id
// sets; a scored all-records index bounds bulk retrieval for models that opt
// into restocking.
//
// Components:
//   - backend.Backend: cache-side storage (values, sets, sorted sets) with
//     pipelined batches (Redis in production, in-memory for tests).
//   - Store: the backing store of record, consulted on every miss.
//   - codec.Codec[map[string]any]: (de)serializes attribute snapshots.
//
// Keys:
//
//	{prefix}:v{gv}:{local}:v{lv}:#{id}                   - record snapshots
//	{prefix}:v{gv}:{local}:v{lv}:index:{attr}:{value}    - secondary indices
//
// with __pantry_nil__ in place of a nil attribute value. The all-records
// sorted set reuses the index format with attribute "id", value "all".
//
// Misses fill from the Store and write back; index misses rebuild the index
// entry from the Store. Concurrent fillers may race; the last write wins and
// indices self-heal on the next read, so no engine-side locks are taken.
package pantry
