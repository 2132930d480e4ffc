package emu

import "github.com/nido/Oclgrind/ir"

// MessageType classifies a log event on the plugin bus.
type MessageType int

// A list of all message types.
const (
	MessageDebug MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

var messageTypeNames = [...]string{
	MessageDebug:   "DEBUG",
	MessageInfo:    "INFO",
	MessageWarning: "WARNING",
	MessageError:   "ERROR",
}

func (t MessageType) String() string {
	if int(t) < len(messageTypeNames) {
		return messageTypeNames[t]
	}
	return "UNKNOWN"
}

// A Plugin observes execution events. Delivery is synchronous, in the
// thread that performed the originating operation, and ordered per plugin
// consistently with the originating work-item's program order. Embed
// PluginBase to get no-op defaults.
type Plugin interface {
	HostMemoryLoad(mem *Memory, address, size uint64)
	HostMemoryStore(mem *Memory, address, size uint64, data []byte)
	InstructionExecuted(item *WorkItem, inst *ir.Value, result TypedValue)
	KernelBegin(inv *KernelInvocation)
	KernelEnd(inv *KernelInvocation)
	Log(typ MessageType, message string)
	MemoryAllocated(mem *Memory, address, size uint64)
	MemoryDeallocated(mem *Memory, address uint64)
	MemoryAtomicLoad(mem *Memory, item *WorkItem, op ir.AtomicOp, address, size uint64)
	MemoryAtomicStore(mem *Memory, item *WorkItem, op ir.AtomicOp, address, size uint64)
	MemoryLoad(mem *Memory, item *WorkItem, address, size uint64)
	MemoryStore(mem *Memory, item *WorkItem, address, size uint64, data []byte)
	WorkGroupMemoryLoad(mem *Memory, group *WorkGroup, address, size uint64)
	WorkGroupMemoryStore(mem *Memory, group *WorkGroup, address, size uint64, data []byte)
	WorkGroupBarrier(group *WorkGroup, flags uint32)
	WorkGroupComplete(group *WorkGroup)
	WorkItemComplete(item *WorkItem)

	// IsThreadSafe reports whether the plugin may be notified from
	// multiple goroutines concurrently. When any registered plugin
	// returns false the dispatcher runs work-groups serially.
	IsThreadSafe() bool
}

// A Controller is a plugin that takes over group execution when the
// device is in interactive mode. The interactive debugger implements
// this; the core only defines the hand-off point.
type Controller interface {
	Plugin
	RunKernel(inv *KernelInvocation, groups []*WorkGroup)
}

// PluginBase provides no-op implementations of every Plugin callback.
type PluginBase struct{}

func (PluginBase) HostMemoryLoad(mem *Memory, address, size uint64)                {}
func (PluginBase) HostMemoryStore(mem *Memory, address, size uint64, data []byte) {}
func (PluginBase) InstructionExecuted(item *WorkItem, inst *ir.Value, result TypedValue) {
}
func (PluginBase) KernelBegin(inv *KernelInvocation)                {}
func (PluginBase) KernelEnd(inv *KernelInvocation)                  {}
func (PluginBase) Log(typ MessageType, message string)              {}
func (PluginBase) MemoryAllocated(mem *Memory, address, size uint64) {}
func (PluginBase) MemoryDeallocated(mem *Memory, address uint64)     {}
func (PluginBase) MemoryAtomicLoad(mem *Memory, item *WorkItem, op ir.AtomicOp, address, size uint64) {
}
func (PluginBase) MemoryAtomicStore(mem *Memory, item *WorkItem, op ir.AtomicOp, address, size uint64) {
}
func (PluginBase) MemoryLoad(mem *Memory, item *WorkItem, address, size uint64) {}
func (PluginBase) MemoryStore(mem *Memory, item *WorkItem, address, size uint64, data []byte) {
}
func (PluginBase) WorkGroupMemoryLoad(mem *Memory, group *WorkGroup, address, size uint64) {}
func (PluginBase) WorkGroupMemoryStore(mem *Memory, group *WorkGroup, address, size uint64, data []byte) {
}
func (PluginBase) WorkGroupBarrier(group *WorkGroup, flags uint32) {}
func (PluginBase) WorkGroupComplete(group *WorkGroup)              {}
func (PluginBase) WorkItemComplete(item *WorkItem)                 {}
func (PluginBase) IsThreadSafe() bool                              { return false }
