package bt

// MapContext is a simple Context built from two name-keyed function maps,
// convenient for tests and for small hosts that don't need a richer
// resolver. Missing names yield Failure and are reported through Missing,
// matching spec §4.7's "missing names yield Failure and a diagnostic".
type MapContext struct {
	Actions    map[string]func() Status
	Conditions map[string]func() Status
	Missing    []string
}

func NewMapContext() *MapContext {
	return &MapContext{Actions: map[string]func() Status{}, Conditions: map[string]func() Status{}}
}

func (c *MapContext) RunAction(name string) Status {
	fn, ok := c.Actions[name]
	if !ok {
		c.Missing = append(c.Missing, name)
		return Failure
	}
	return fn()
}

func (c *MapContext) CheckCondition(name string) Status {
	fn, ok := c.Conditions[name]
	if !ok {
		c.Missing = append(c.Missing, name)
		return Failure
	}
	return fn()
}
