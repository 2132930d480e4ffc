package plugins

import (
	"io"

	"github.com/fatih/color"

	"github.com/nido/Oclgrind/emu"
	"github.com/nido/Oclgrind/ir"
)

// A Logger prints kernel begin/end, log messages, item-attributed loads
// and stores, atomic mutations, barriers, group and item completion, and
// host stores. Other bus events (instruction retirement, host loads,
// allocations, atomic loads, group-attributed copies) are not printed.
// It is meant for interactive
// runs; it is not thread-safe, which forces the dispatcher onto the
// serial path and keeps the output in schedule order.
type Logger struct {
	emu.PluginBase

	out io.Writer

	event *color.Color
	warn  *color.Color
	fail  *color.Color
}

// NewLogger creates a logger writing to out.
func NewLogger(out io.Writer) *Logger {
	return &Logger{
		out:   out,
		event: color.New(color.FgCyan),
		warn:  color.New(color.FgYellow),
		fail:  color.New(color.FgRed),
	}
}

func (l *Logger) printf(c *color.Color, format string, args ...interface{}) {
	c.Fprintf(l.out, format+"\n", args...)
}

func (l *Logger) KernelBegin(inv *emu.KernelInvocation) {
	l.printf(l.event, "[%s] kernel %s begin global=%v local=%v",
		inv.ID, inv.Kernel.Name(), inv.GlobalSize, inv.LocalSize)
}

func (l *Logger) KernelEnd(inv *emu.KernelInvocation) {
	l.printf(l.event, "[%s] kernel %s end", inv.ID, inv.Kernel.Name())
}

func (l *Logger) Log(typ emu.MessageType, message string) {
	c := l.event
	switch typ {
	case emu.MessageWarning:
		c = l.warn
	case emu.MessageError:
		c = l.fail
	}
	l.printf(c, "[%s] %s", typ, message)
}

func (l *Logger) MemoryLoad(mem *emu.Memory, item *emu.WorkItem,
	address, size uint64) {
	l.printf(l.event, "%s load  %s 0x%x,%d",
		item, mem.AddressSpace(), address, size)
}

func (l *Logger) MemoryStore(mem *emu.Memory, item *emu.WorkItem,
	address, size uint64, data []byte) {
	l.printf(l.event, "%s store %s 0x%x,%d",
		item, mem.AddressSpace(), address, size)
}

func (l *Logger) MemoryAtomicStore(mem *emu.Memory, item *emu.WorkItem,
	op ir.AtomicOp, address, size uint64) {
	l.printf(l.event, "%s %s %s 0x%x",
		item, op, mem.AddressSpace(), address)
}

func (l *Logger) WorkGroupBarrier(group *emu.WorkGroup, flags uint32) {
	l.printf(l.event, "%s barrier flags=%d", group, flags)
}

func (l *Logger) WorkGroupComplete(group *emu.WorkGroup) {
	l.printf(l.event, "%s complete", group)
}

func (l *Logger) WorkItemComplete(item *emu.WorkItem) {
	l.printf(l.event, "%s complete (%s)", item, item.State())
}

func (l *Logger) HostMemoryStore(mem *emu.Memory, address, size uint64,
	data []byte) {
	l.printf(l.event, "host store %s 0x%x,%d", mem.AddressSpace(), address, size)
}

// IsThreadSafe reports false; the logger wants schedule-ordered output.
func (l *Logger) IsThreadSafe() bool {
	return false
}
