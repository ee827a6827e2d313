package domain

// Context is the ordered collection of Instances selected for one publish
// run. It is created once per run, threaded by reference through every
// stage, and discarded by the caller when the run ends. Instances are never
// removed once appended and never shared across Contexts.
type Context struct {
	instances []*Instance
}

// NewContext returns an empty Context.
func NewContext() *Context {
	return &Context{}
}

// Append adds an instance to the end of the context.
func (c *Context) Append(inst *Instance) {
	c.instances = append(c.instances, inst)
}

// Len returns the number of instances in the context.
func (c *Context) Len() int {
	return len(c.instances)
}

// Instances returns the instances in insertion order. The slice is a copy;
// the instances themselves are shared.
func (c *Context) Instances() []*Instance {
	out := make([]*Instance, len(c.instances))
	copy(out, c.instances)
	return out
}

// Errors returns every instance's errors concatenated in context order.
// The result is derived on each call, never stored.
func (c *Context) Errors() []*ProcessError {
	var errs []*ProcessError
	for _, inst := range c.instances {
		errs = append(errs, inst.Errors()...)
	}
	return errs
}

// HasErrors reports whether any instance in the context carries an error.
func (c *Context) HasErrors() bool {
	for _, inst := range c.instances {
		if len(inst.Errors()) > 0 {
			return true
		}
	}
	return false
}
