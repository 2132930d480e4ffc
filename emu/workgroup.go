package emu

import (
	"fmt"

	"gitlab.com/akita/akita/v3/sim"

	"github.com/nido/Oclgrind/ir"
)

// A WorkGroup is a fixed block of work-items sharing one local region
// and able to synchronize at barriers. Items are stored row-major
// (index = i + (k*Ny + j)*Nx); plugin event order depends on that
// layout, so it is part of the contract.
type WorkGroup struct {
	UID string

	ctx *Context
	inv *KernelInvocation

	groupID   [3]uint64
	localSize [3]uint64

	localMemory *Memory
	localBase   uint64

	workItems []*WorkItem
	bindings  []binding

	faulted bool
}

func newWorkGroup(inv *KernelInvocation, i, j, k uint64) *WorkGroup {
	g := &WorkGroup{
		UID:       sim.GetIDGenerator().Generate(),
		ctx:       inv.ctx,
		inv:       inv,
		groupID:   [3]uint64{i, j, k},
		localSize: inv.LocalSize,
	}

	localBytes := inv.Kernel.LocalMemorySize()
	g.localMemory = newMemory(g.ctx, ir.AddrSpaceLocal,
		localBytes+2*allocationAlignment)
	if localBytes > 0 {
		// The whole static+dynamic block is one allocation; bindings
		// hold offsets into it and are rebased below.
		g.localBase, _ = g.localMemory.Allocate(localBytes)
	}

	for _, b := range inv.Kernel.bindings {
		snap := b
		snap.value = b.value.Clone()
		if b.localPtr {
			snap.value.SetPointer(snap.value.Pointer() + g.localBase)
		}
		g.bindings = append(g.bindings, snap)
	}

	for z := uint64(0); z < g.localSize[2]; z++ {
		for y := uint64(0); y < g.localSize[1]; y++ {
			for x := uint64(0); x < g.localSize[0]; x++ {
				g.workItems = append(g.workItems,
					newWorkItem(g, [3]uint64{x, y, z}))
			}
		}
	}
	return g
}

// GroupID returns the group's id triple.
func (g *WorkGroup) GroupID() [3]uint64 {
	return g.groupID
}

// LocalMemory returns the group's local region.
func (g *WorkGroup) LocalMemory() *Memory {
	return g.localMemory
}

// WorkItems returns the row-major item array.
func (g *WorkGroup) WorkItems() []*WorkItem {
	return g.workItems
}

// Faulted reports whether the group was stopped by a divergent barrier.
func (g *WorkGroup) Faulted() bool {
	return g.faulted
}

func (g *WorkGroup) String() string {
	return fmt.Sprintf("work-group (%d,%d,%d)",
		g.groupID[0], g.groupID[1], g.groupID[2])
}

// copyMemory performs a group-attributed transfer between two regions,
// used by async work-group copies.
func (g *WorkGroup) copyMemory(dstMem *Memory, dst uint64,
	srcMem *Memory, src, size uint64) error {
	data, err := srcMem.load(src, size)
	if err != nil {
		return err
	}
	g.ctx.notifyWorkGroupMemoryLoad(srcMem, g, src, size)
	if err := dstMem.store(dst, data); err != nil {
		return err
	}
	g.ctx.notifyWorkGroupMemoryStore(dstMem, g, dst, size, data)
	return nil
}

// Run drives the group to completion. The scheduler is cooperative and
// deterministic: it visits items in row-major order, stepping each until
// it suspends or finishes. When every live item sits at a barrier with
// matching fence flags the barrier releases; a barrier missing a
// participant, or reached with divergent flags, faults the whole group.
func (g *WorkGroup) Run() {
	for {
		for _, item := range g.workItems {
			for item.State() == WorkItemReady {
				item.Step()
			}
		}

		atBarrier := 0
		retired := 0
		for _, item := range g.workItems {
			switch item.State() {
			case WorkItemAtBarrier:
				atBarrier++
			case WorkItemFinished, WorkItemFaulted:
				retired++
			}
		}

		if atBarrier == 0 {
			break
		}
		if retired > 0 || !g.barrierFlagsUniform() {
			g.barrierDivergence()
			break
		}

		flags := g.workItems[0].barrierFlags
		g.ctx.notifyWorkGroupBarrier(g, flags)
		for _, item := range g.workItems {
			item.clearBarrier()
		}
	}

	g.ctx.notifyWorkGroupComplete(g)
}

func (g *WorkGroup) barrierFlagsUniform() bool {
	flags := uint32(0)
	seen := false
	for _, item := range g.workItems {
		if item.State() != WorkItemAtBarrier {
			continue
		}
		if seen && item.barrierFlags != flags {
			return false
		}
		flags = item.barrierFlags
		seen = true
	}
	return true
}

func (g *WorkGroup) barrierDivergence() {
	g.faulted = true
	err := launchFault(FaultBarrierDivergence,
		"%s: barrier not reached by all work-items", g)
	g.ctx.Message(MessageError, err.Error())
	for _, item := range g.workItems {
		if item.State() == WorkItemAtBarrier {
			item.state = WorkItemFaulted
			g.ctx.notifyWorkItemComplete(item)
		}
	}
}
