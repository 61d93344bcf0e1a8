package kernel

// Context provides task-local access to kernel operations for one Step call.
type Context struct {
	k *Kernel

	blocked     bool
	blockOnTick bool
	blockOn     Endpoint
}

// TryRecv reads one message from the capability endpoint without blocking.
func (c *Context) TryRecv(epCap Capability) (Message, bool) {
	if c.k == nil || !epCap.valid() || !epCap.canRecv() {
		return Message{}, false
	}
	return c.k.recv(epCap.ep)
}

// BlockOnRecv parks the task after this step until a message arrives on epCap.
// It reports false (and does not block) for a capability without the recv right.
func (c *Context) BlockOnRecv(epCap Capability) bool {
	if !epCap.valid() || !epCap.canRecv() {
		return false
	}
	c.blocked = true
	c.blockOnTick = false
	c.blockOn = epCap.ep
	return true
}

// BlockOnTick parks the task after this step until the next Kernel.Tick call.
func (c *Context) BlockOnTick() {
	c.blocked = true
	c.blockOnTick = true
}

// SendTo sends a message to the capability endpoint.
func (c *Context) SendTo(toCap Capability, kind uint16, payload []byte) bool {
	return c.TrySendTo(toCap, kind, payload) == SendOK
}

// TrySendTo sends a message and reports why it was refused, if it was.
func (c *Context) TrySendTo(toCap Capability, kind uint16, payload []byte) SendResult {
	if !toCap.valid() {
		return SendErrInvalidToCap
	}
	if !toCap.canSend() {
		return SendErrToNoSendRight
	}
	if c.k == nil {
		return SendErrNoEndpoint
	}
	return c.k.send(toCap.ep, kind, payload)
}
