package kernel

import (
	"sync"
	"sync/atomic"
)

// PanicInfo describes the first task or timer panic recovered in this process.
//
// Timer is set when a timer callback panicked rather than a task; TaskID is
// then meaningless. Tick is the kernel clock at the panic.
type PanicInfo struct {
	TaskID TaskID
	Timer  bool
	Tick   uint64
	Value  any
	Stack  []byte
}

var (
	panicActive atomic.Bool
	panicOnce   sync.Once

	panicHandler atomic.Value // func(PanicInfo)
)

// InPanicMode reports whether a task has panicked. Every kernel stops
// scheduling once it is set; there is no way back.
func InPanicMode() bool {
	return panicActive.Load()
}

// SetPanicHandler installs the process-wide handler run for the first panic.
// It must not panic itself.
func SetPanicHandler(fn func(PanicInfo)) {
	panicHandler.Store(fn)
}

func triggerPanic(info PanicInfo) {
	panicOnce.Do(func() {
		panicActive.Store(true)
		info.Stack = captureStack()
		fn, _ := panicHandler.Load().(func(PanicInfo))
		if fn != nil {
			fn(info)
		}
	})
}
