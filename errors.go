package pantry

import "fmt"

// ConfigurationError reports misuse of the engine's configuration surface,
// e.g. a bulk retrieval on a model that never opted into restocking, or a
// lookup on an attribute with no declared index. It is the only engine-level
// error; "not found" conditions are absent map entries, never errors.
type ConfigurationError struct {
	Model  string
	Op     string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("pantry: %s on model %q: %s", e.Op, e.Model, e.Reason)
}
