package kernel

const (
	maxTasks     = 16
	maxEndpoints = 32
	mailboxSlots = 8
)

type TaskID uint8

// Rights define which operations are allowed for a capability.
type Rights uint8

const (
	RightSend Rights = 1 << iota
	RightRecv
)

// Endpoint identifies an IPC destination.
type Endpoint uint8

// Capability grants access to an IPC endpoint.
//
// It is opaque by construction (no exported fields).
type Capability struct {
	ep     Endpoint
	rights Rights
}

func (c Capability) valid() bool {
	return c.rights != 0
}

func (c Capability) Valid() bool { return c.valid() }

func (c Capability) canSend() bool { return c.rights&RightSend != 0 }
func (c Capability) canRecv() bool { return c.rights&RightRecv != 0 }

// Restrict returns a capability with a reduced set of rights.
func (c Capability) Restrict(rights Rights) Capability {
	if !c.valid() {
		return Capability{}
	}
	r := c.rights & rights
	if r == 0 {
		return Capability{}
	}
	return Capability{ep: c.ep, rights: r}
}

// MaxMessageBytes is the maximum payload size for IPC messages.
const MaxMessageBytes = 128

// Message is a fixed-size IPC envelope.
type Message struct {
	Kind uint16
	Len  uint16
	Data [MaxMessageBytes]byte
}

// Payload returns the used part of Data.
func (m *Message) Payload() []byte {
	n := int(m.Len)
	if n > MaxMessageBytes {
		n = MaxMessageBytes
	}
	return m.Data[:n]
}

// SendResult describes the outcome of a send attempt.
type SendResult uint8

const (
	SendOK SendResult = iota
	SendErrInvalidToCap
	SendErrToNoSendRight
	SendErrNoEndpoint
	SendErrPayloadTooLarge
	SendErrQueueFull
)

func (r SendResult) String() string {
	switch r {
	case SendOK:
		return "ok"
	case SendErrInvalidToCap:
		return "invalid to capability"
	case SendErrToNoSendRight:
		return "to capability has no send right"
	case SendErrNoEndpoint:
		return "no such endpoint"
	case SendErrPayloadTooLarge:
		return "payload too large"
	case SendErrQueueFull:
		return "queue full"
	default:
		return "unknown"
	}
}

// Task is a cooperative unit of execution.
//
// Step must return promptly; a task that has nothing to do blocks on an endpoint
// or on the next tick through its Context.
type Task interface {
	Step(*Context)
}

type endpointState struct {
	q        mailbox
	waitMask uint32
}

type taskState struct {
	task     Task
	runnable bool
	waiting  Endpoint
}

// Kernel is a minimal cooperative scheduler plus IPC router and timer table.
//
// It is not safe for concurrent use: one goroutine drives TickTo and Step.
type Kernel struct {
	endpoints     [maxEndpoints]endpointState
	endpointCount Endpoint

	tasks     [maxTasks]taskState
	taskCount TaskID

	rr TaskID

	tickWaitMask uint32

	now    uint64
	timers [maxTimers]timerSlot
}

// New creates a kernel instance.
func New() *Kernel {
	return &Kernel{}
}

// NewEndpoint allocates a new endpoint and returns a capability for it.
func (k *Kernel) NewEndpoint(rights Rights) Capability {
	if k.endpointCount >= maxEndpoints {
		return Capability{}
	}
	ep := k.endpointCount
	k.endpointCount++
	return Capability{ep: ep, rights: rights}
}

// AddTask registers a task and returns its ID. ok is false when the task table is full.
func (k *Kernel) AddTask(t Task) (id TaskID, ok bool) {
	if k.taskCount >= maxTasks || t == nil {
		return 0, false
	}
	id = k.taskCount
	k.taskCount++
	k.tasks[id] = taskState{task: t, runnable: true}
	return id, true
}

// Step runs at most one runnable task step. It reports whether a task ran.
func (k *Kernel) Step() bool {
	if k.taskCount == 0 || InPanicMode() {
		return false
	}

	for i := TaskID(0); i < k.taskCount; i++ {
		id := (k.rr + i) % k.taskCount
		st := &k.tasks[id]
		if st.task == nil || !st.runnable {
			continue
		}

		k.rr = (id + 1) % k.taskCount
		ctx := &Context{k: k}
		if !k.runTask(id, st.task, ctx) {
			st.task = nil
			st.runnable = false
			return true
		}

		if ctx.blocked {
			st.runnable = false
			if ctx.blockOnTick {
				k.tickWaitMask |= 1 << id
			} else {
				st.waiting = ctx.blockOn
				if st.waiting < k.endpointCount {
					ep := &k.endpoints[st.waiting]
					if ep.q.len() > 0 {
						st.runnable = true
					} else {
						ep.waitMask |= 1 << id
					}
				}
			}
		}
		return true
	}
	return false
}

func (k *Kernel) runTask(id TaskID, t Task, ctx *Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			triggerPanic(PanicInfo{TaskID: id, Tick: k.now, Value: r})
			ok = false
		}
	}()
	t.Step(ctx)
	return true
}

// RunPending runs task steps until no task is runnable or budget steps have run.
// A budget <= 0 means no limit. It returns the number of steps taken.
func (k *Kernel) RunPending(budget int) int {
	n := 0
	for budget <= 0 || n < budget {
		if !k.Step() {
			break
		}
		n++
	}
	return n
}

// Now returns the last tick passed to TickTo.
func (k *Kernel) Now() uint64 { return k.now }

// TickTo advances the clock to now, fires due timers and wakes tasks blocked
// via Context.BlockOnTick. A value behind the current clock only wakes tasks.
func (k *Kernel) TickTo(now uint64) {
	if now > k.now {
		k.now = now
	}
	k.fireTimers()
	k.Tick()
}

// Tick wakes tasks blocked via Context.BlockOnTick.
func (k *Kernel) Tick() {
	wait := k.tickWaitMask
	if wait == 0 {
		return
	}

	for tid := TaskID(0); tid < k.taskCount; tid++ {
		if wait&(1<<tid) == 0 {
			continue
		}
		if k.tasks[tid].task != nil {
			k.tasks[tid].runnable = true
		}
	}
	k.tickWaitMask = 0
}

func (k *Kernel) send(to Endpoint, kind uint16, payload []byte) SendResult {
	if to >= k.endpointCount {
		return SendErrNoEndpoint
	}
	if len(payload) > MaxMessageBytes {
		return SendErrPayloadTooLarge
	}

	var msg Message
	msg.Kind = kind
	msg.Len = uint16(len(payload))
	copy(msg.Data[:], payload)

	ep := &k.endpoints[to]
	if !ep.q.push(msg) {
		return SendErrQueueFull
	}

	wait := ep.waitMask
	if wait == 0 {
		return SendOK
	}

	for tid := TaskID(0); tid < k.taskCount; tid++ {
		if wait&(1<<tid) == 0 {
			continue
		}
		if k.tasks[tid].task != nil {
			k.tasks[tid].runnable = true
		}
		ep.waitMask &^= 1 << tid
	}
	return SendOK
}

// Dropped returns how many sends the capability's endpoint has refused
// because its mailbox was full. Senders that retry count once per refusal.
func (k *Kernel) Dropped(c Capability) uint32 {
	if !c.valid() || c.ep >= k.endpointCount {
		return 0
	}
	return k.endpoints[c.ep].q.dropped
}

func (k *Kernel) recv(to Endpoint) (Message, bool) {
	if to >= k.endpointCount {
		return Message{}, false
	}
	return k.endpoints[to].q.pop()
}
