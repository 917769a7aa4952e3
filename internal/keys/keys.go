// Package keys derives the cache-side key strings for primary entries and
// secondary indices. Keys are pure functions of the configured namespace
// versions; bumping a version orphans every previously written key.
package keys

import (
	"fmt"
	"strconv"
)

// NilValue is substituted for a nil attribute value in index keys so that
// "no value" never collides with an empty string.
const NilValue = "__pantry_nil__"

// AllAttribute / AllValue address the all-records sorted set, which reuses
// the index key format.
const (
	AllAttribute = "id"
	AllValue     = "all"
)

// Codec formats keys for one model under one global namespace.
type Codec struct {
	GlobalPrefix  string
	GlobalVersion int
	LocalPrefix   string
	LocalVersion  int
}

func (c Codec) base() string {
	return c.GlobalPrefix + ":v" + strconv.Itoa(c.GlobalVersion) +
		":" + c.LocalPrefix + ":v" + strconv.Itoa(c.LocalVersion)
}

// Primary returns the key for a record snapshot:
//
//	{globalPrefix}:v{gv}:{localPrefix}:v{lv}:#{id}
func (c Codec) Primary(id string) string {
	return c.base() + ":#" + id
}

// Index returns the key for a secondary index entry:
//
//	{globalPrefix}:v{gv}:{localPrefix}:v{lv}:index:{attribute}:{value}
//
// A nil value maps to NilValue.
func (c Codec) Index(attribute string, value any) string {
	return c.base() + ":index:" + attribute + ":" + ValueToken(value)
}

// All returns the key of the model's all-records sorted set.
func (c Codec) All() string {
	return c.Index(AllAttribute, AllValue)
}

// ValueToken renders an attribute value into its key segment.
func ValueToken(value any) string {
	if value == nil {
		return NilValue
	}
	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
