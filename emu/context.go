package emu

import (
	"github.com/nido/Oclgrind/ir"
)

// A Context carries the state shared by every component of one simulated
// device: the global memory region and the plugin registry. Components
// receive it explicitly; there are no process-level globals.
type Context struct {
	globalMemory *Memory
	plugins      []Plugin

	// running is set for the duration of a launch; plugin registration
	// is rejected while it is.
	running bool

	// serial is set while notifications come from a single goroutine,
	// which is when reentrancy can be detected reliably.
	serial bool

	notifyDepth int
}

// NewContext creates a context with an empty global memory region.
func NewContext() *Context {
	c := &Context{serial: true}
	c.globalMemory = newMemory(c, ir.AddrSpaceGlobal, globalMemorySize)
	return c
}

// GlobalMemory returns the device's global region.
func (c *Context) GlobalMemory() *Memory {
	return c.globalMemory
}

// AddPlugin registers an observer. Registration during a launch is an
// InvalidPluginCallback error and leaves the registry unchanged.
func (c *Context) AddPlugin(p Plugin) error {
	if c.running {
		err := launchFault(FaultInvalidPluginCallback,
			"plugin registered during a kernel launch")
		c.Message(MessageError, err.Error())
		return err
	}
	c.plugins = append(c.plugins, p)
	return nil
}

// RemovePlugin unregisters an observer, with the same launch guard.
func (c *Context) RemovePlugin(p Plugin) error {
	if c.running {
		err := launchFault(FaultInvalidPluginCallback,
			"plugin removed during a kernel launch")
		c.Message(MessageError, err.Error())
		return err
	}
	for i, registered := range c.plugins {
		if registered == p {
			c.plugins = append(c.plugins[:i], c.plugins[i+1:]...)
			return nil
		}
	}
	err := launchFault(FaultInvalidArgument, "plugin not registered")
	c.Message(MessageError, err.Error())
	return err
}

func (c *Context) allThreadSafe() bool {
	for _, p := range c.plugins {
		if !p.IsThreadSafe() {
			return false
		}
	}
	return true
}

// Message publishes a log event. Unlike every other notification, log
// events may be published from inside a plugin callback.
func (c *Context) Message(typ MessageType, text string) {
	for _, p := range c.plugins {
		p.Log(typ, text)
	}
}

// enter guards against recursive notification from a plugin callback.
// Detection is only possible on the serial path; in parallel mode every
// plugin has declared itself thread-safe and carries its own guard.
func (c *Context) enter() bool {
	if !c.serial {
		return true
	}
	if c.notifyDepth > 0 {
		c.Message(MessageError, launchFault(FaultInvalidPluginCallback,
			"recursive notification from a plugin callback").Error())
		return false
	}
	c.notifyDepth++
	return true
}

func (c *Context) leave() {
	if c.serial {
		c.notifyDepth--
	}
}

func (c *Context) notifyMemoryAllocated(m *Memory, address, size uint64) {
	if !c.enter() {
		return
	}
	defer c.leave()
	for _, p := range c.plugins {
		p.MemoryAllocated(m, address, size)
	}
}

func (c *Context) notifyMemoryDeallocated(m *Memory, address uint64) {
	if !c.enter() {
		return
	}
	defer c.leave()
	for _, p := range c.plugins {
		p.MemoryDeallocated(m, address)
	}
}

func (c *Context) notifyHostMemoryLoad(m *Memory, address, size uint64) {
	if !c.enter() {
		return
	}
	defer c.leave()
	for _, p := range c.plugins {
		p.HostMemoryLoad(m, address, size)
	}
}

func (c *Context) notifyHostMemoryStore(m *Memory, address, size uint64, data []byte) {
	if !c.enter() {
		return
	}
	defer c.leave()
	for _, p := range c.plugins {
		p.HostMemoryStore(m, address, size, data)
	}
}

func (c *Context) notifyMemoryLoad(m *Memory, item *WorkItem, address, size uint64) {
	if !c.enter() {
		return
	}
	defer c.leave()
	for _, p := range c.plugins {
		p.MemoryLoad(m, item, address, size)
	}
}

func (c *Context) notifyMemoryStore(m *Memory, item *WorkItem, address, size uint64, data []byte) {
	if !c.enter() {
		return
	}
	defer c.leave()
	for _, p := range c.plugins {
		p.MemoryStore(m, item, address, size, data)
	}
}

func (c *Context) notifyWorkGroupMemoryLoad(m *Memory, group *WorkGroup, address, size uint64) {
	if !c.enter() {
		return
	}
	defer c.leave()
	for _, p := range c.plugins {
		p.WorkGroupMemoryLoad(m, group, address, size)
	}
}

func (c *Context) notifyWorkGroupMemoryStore(m *Memory, group *WorkGroup, address, size uint64, data []byte) {
	if !c.enter() {
		return
	}
	defer c.leave()
	for _, p := range c.plugins {
		p.WorkGroupMemoryStore(m, group, address, size, data)
	}
}

func (c *Context) notifyMemoryAtomicLoad(m *Memory, item *WorkItem, op ir.AtomicOp, address, size uint64) {
	if !c.enter() {
		return
	}
	defer c.leave()
	for _, p := range c.plugins {
		p.MemoryAtomicLoad(m, item, op, address, size)
	}
}

func (c *Context) notifyMemoryAtomicStore(m *Memory, item *WorkItem, op ir.AtomicOp, address, size uint64) {
	if !c.enter() {
		return
	}
	defer c.leave()
	for _, p := range c.plugins {
		p.MemoryAtomicStore(m, item, op, address, size)
	}
}

func (c *Context) notifyInstructionExecuted(item *WorkItem, inst *ir.Value, result TypedValue) {
	if !c.enter() {
		return
	}
	defer c.leave()
	for _, p := range c.plugins {
		p.InstructionExecuted(item, inst, result)
	}
}

func (c *Context) notifyKernelBegin(inv *KernelInvocation) {
	if !c.enter() {
		return
	}
	defer c.leave()
	for _, p := range c.plugins {
		p.KernelBegin(inv)
	}
}

func (c *Context) notifyKernelEnd(inv *KernelInvocation) {
	if !c.enter() {
		return
	}
	defer c.leave()
	for _, p := range c.plugins {
		p.KernelEnd(inv)
	}
}

func (c *Context) notifyWorkGroupBarrier(group *WorkGroup, flags uint32) {
	if !c.enter() {
		return
	}
	defer c.leave()
	for _, p := range c.plugins {
		p.WorkGroupBarrier(group, flags)
	}
}

func (c *Context) notifyWorkGroupComplete(group *WorkGroup) {
	if !c.enter() {
		return
	}
	defer c.leave()
	for _, p := range c.plugins {
		p.WorkGroupComplete(group)
	}
}

func (c *Context) notifyWorkItemComplete(item *WorkItem) {
	if !c.enter() {
		return
	}
	defer c.leave()
	for _, p := range c.plugins {
		p.WorkItemComplete(item)
	}
}
