package domain

// ConfigKeyFamily is the configuration key stage filtering reads. An
// Instance without it matches no processing plugin.
const ConfigKeyFamily = "family"

// Instance is an individually publishable unit selected from the authoring
// environment, e.g. a rig or a model. Instances are created by selector
// plugins during selection and live for exactly one publish run.
type Instance struct {
	path   string
	config map[string]any
	errors []*ProcessError
}

// NewInstance creates an Instance for the unit identified by path. The
// config map is adopted as-is so selector plugins can hand over what they
// read from the scene; a nil config is replaced with an empty map.
func NewInstance(path string, config map[string]any) *Instance {
	if config == nil {
		config = map[string]any{}
	}
	return &Instance{path: path, config: config}
}

// Path returns the identifier of the underlying selected unit. The value is
// opaque to the pipeline; only the host collaborator can interpret it.
func (i *Instance) Path() string {
	return i.path
}

// Config returns the live configuration map. Plugins mutate it in place as
// a processing side effect.
func (i *Instance) Config() map[string]any {
	return i.config
}

// Family returns the instance's family label and whether one is present.
// A missing or non-string family means the instance matches no plugin.
func (i *Instance) Family() (string, bool) {
	family, ok := i.config[ConfigKeyFamily].(string)
	return family, ok
}

// RecordError appends a processing failure to the instance. Errors are
// append-only; the pipeline never clears them within a run.
func (i *Instance) RecordError(err *ProcessError) {
	i.errors = append(i.errors, err)
}

// Errors returns the processing failures recorded so far, in order.
func (i *Instance) Errors() []*ProcessError {
	out := make([]*ProcessError, len(i.errors))
	copy(out, i.errors)
	return out
}

// String implements the Stringer interface
func (i *Instance) String() string {
	return i.path
}
