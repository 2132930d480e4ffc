// Package plugins provides stock observers for the simulator's plugin
// bus: an instruction counter and a colorized event logger.
package plugins

import (
	"sync/atomic"

	"github.com/nido/Oclgrind/emu"
	"github.com/nido/Oclgrind/ir"
)

// An InstCounter tallies retired instructions and memory operations per
// kernel invocation. Counters are atomic so it can be attached to a
// device running groups in parallel.
type InstCounter struct {
	emu.PluginBase

	InstCount   uint64
	LoadCount   uint64
	StoreCount  uint64
	AtomicCount uint64
}

// NewInstCounter returns a zeroed counter.
func NewInstCounter() *InstCounter {
	return &InstCounter{}
}

// KernelBegin resets the counters for the new invocation.
func (c *InstCounter) KernelBegin(inv *emu.KernelInvocation) {
	atomic.StoreUint64(&c.InstCount, 0)
	atomic.StoreUint64(&c.LoadCount, 0)
	atomic.StoreUint64(&c.StoreCount, 0)
	atomic.StoreUint64(&c.AtomicCount, 0)
}

// InstructionExecuted counts one retirement.
func (c *InstCounter) InstructionExecuted(item *emu.WorkItem, inst *ir.Value,
	result emu.TypedValue) {
	atomic.AddUint64(&c.InstCount, 1)
}

// MemoryLoad counts one item-attributed load.
func (c *InstCounter) MemoryLoad(mem *emu.Memory, item *emu.WorkItem,
	address, size uint64) {
	atomic.AddUint64(&c.LoadCount, 1)
}

// MemoryStore counts one item-attributed store.
func (c *InstCounter) MemoryStore(mem *emu.Memory, item *emu.WorkItem,
	address, size uint64, data []byte) {
	atomic.AddUint64(&c.StoreCount, 1)
}

// MemoryAtomicStore counts one atomic mutation.
func (c *InstCounter) MemoryAtomicStore(mem *emu.Memory, item *emu.WorkItem,
	op ir.AtomicOp, address, size uint64) {
	atomic.AddUint64(&c.AtomicCount, 1)
}

// IsThreadSafe reports that the counter tolerates parallel groups.
func (c *InstCounter) IsThreadSafe() bool {
	return true
}
