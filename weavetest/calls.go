package weavetest

// calls counts how many times Check and Deliver were called, regardless of
// the result.
type calls struct {
	check   int
	deliver int
}

func (c *calls) CheckCallCount() int {
	return c.check
}

func (c *calls) DeliverCallCount() int {
	return c.deliver
}

func (c *calls) CallCount() int {
	return c.check + c.deliver
}
