package logger

import (
	"fmt"

	"tally/kernel"
	"tally/proto"
)

// Log sends a log line to the logger service.
//
// The call is best-effort: it may drop on queue full. Lines longer than
// kernel.MaxMessageBytes are truncated.
func Log(ctx *kernel.Context, logCap kernel.Capability, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrNoEndpoint
	}
	b := []byte(line)
	if len(b) > kernel.MaxMessageBytes {
		b = b[:kernel.MaxMessageBytes]
	}
	return ctx.TrySendTo(logCap, uint16(proto.MsgLogLine), proto.LogLinePayload(b))
}

// Logf formats and sends a log line; see Log.
func Logf(ctx *kernel.Context, logCap kernel.Capability, format string, args ...any) kernel.SendResult {
	return Log(ctx, logCap, fmt.Sprintf(format, args...))
}
