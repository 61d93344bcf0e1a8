package kernel

// mailbox is a fixed ring of mailboxSlots messages. A push onto a full ring is
// refused and counted.
type mailbox struct {
	slots [mailboxSlots]Message
	start int
	count int

	dropped uint32
}

func (mb *mailbox) len() int { return mb.count }

func (mb *mailbox) push(msg Message) bool {
	if mb.count == mailboxSlots {
		mb.dropped++
		return false
	}
	mb.slots[(mb.start+mb.count)%mailboxSlots] = msg
	mb.count++
	return true
}

func (mb *mailbox) pop() (Message, bool) {
	if mb.count == 0 {
		return Message{}, false
	}
	msg := mb.slots[mb.start]
	mb.slots[mb.start] = Message{}
	mb.start = (mb.start + 1) % mailboxSlots
	mb.count--
	return msg, true
}
