package emu

import (
	"encoding/binary"
	"sync"

	"github.com/google/btree"
	"gitlab.com/akita/mem/v3/mem"

	"github.com/nido/Oclgrind/ir"
)

// Region capacities. Local regions are sized per work-group from the
// kernel's local-memory requirement.
const (
	globalMemorySize  = 1 << 28
	privateMemorySize = 1 << 20

	// allocationAlignment spaces allocation bases so natural alignment
	// holds for any element up to 16 bytes. Base 0 stays unmapped so a
	// null pointer never hits a live allocation.
	allocationAlignment = 16
)

// An allocation is a live range tagged with its base and size. The btree
// orders allocations by base address.
type allocation struct {
	base uint64
	size uint64
}

func (a *allocation) Less(than btree.Item) bool {
	return a.base < than.(*allocation).base
}

// A Memory is one byte-addressable region of the device: global (owned
// by the device), local (one per work-group), or private (one per
// work-item). Constant data lives in the global region. Bytes are backed
// by a mem.Storage; the allocation table is kept in a btree keyed by
// base address so a containing allocation is found in one descent.
type Memory struct {
	ctx   *Context
	space ir.AddressSpace

	mu          sync.Mutex
	storage     *mem.Storage
	allocations *btree.BTree
	next        uint64
	capacity    uint64
}

func newMemory(ctx *Context, space ir.AddressSpace, capacity uint64) *Memory {
	return &Memory{
		ctx:         ctx,
		space:       space,
		storage:     mem.NewStorage(capacity),
		allocations: btree.New(2),
		next:        allocationAlignment,
		capacity:    capacity,
	}
}

// AddressSpace reports which region this memory realizes.
func (m *Memory) AddressSpace() ir.AddressSpace {
	return m.space
}

// Allocate reserves a fresh range and returns its base address. The
// range never aliases another live allocation; addresses are stable
// until Deallocate.
func (m *Memory) Allocate(size uint64) (uint64, error) {
	m.mu.Lock()
	if size == 0 || m.next+size > m.capacity || m.next+size < m.next {
		m.mu.Unlock()
		return 0, memoryFault(FaultOutOfMemory, m.next, size)
	}
	base := m.next
	m.next += size
	if rem := m.next % allocationAlignment; rem != 0 {
		m.next += allocationAlignment - rem
	}
	m.allocations.ReplaceOrInsert(&allocation{base: base, size: size})
	m.mu.Unlock()

	m.ctx.notifyMemoryAllocated(m, base, size)
	return base, nil
}

// Deallocate frees the range beginning at address. Freeing an address
// that is not a live base (including a second free) is InvalidAddress.
func (m *Memory) Deallocate(address uint64) error {
	m.mu.Lock()
	removed := m.allocations.Delete(&allocation{base: address})
	m.mu.Unlock()
	if removed == nil {
		return memoryFault(FaultInvalidAddress, address, 0)
	}

	m.ctx.notifyMemoryDeallocated(m, address)
	return nil
}

// containing returns the live allocation fully covering [address,
// address+size), or nil. Caller holds mu.
func (m *Memory) containing(address, size uint64) *allocation {
	var found *allocation
	m.allocations.DescendLessOrEqual(&allocation{base: address},
		func(it btree.Item) bool {
			found = it.(*allocation)
			return false
		})
	if found == nil {
		return nil
	}
	if address+size < address || address+size > found.base+found.size {
		return nil
	}
	return found
}

// check validates containment and natural alignment. Caller holds mu.
func (m *Memory) check(address, size uint64) error {
	if m.containing(address, size) == nil {
		return memoryFault(FaultInvalidAddress, address, size)
	}
	if size != 0 && size&(size-1) == 0 && address%size != 0 {
		return memoryFault(FaultUnaligned, address, size)
	}
	return nil
}

// load reads size bytes without publishing an event; callers attribute
// the access themselves.
func (m *Memory) load(address, size uint64) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(address, size); err != nil {
		return nil, err
	}
	data, err := m.storage.Read(address, size)
	if err != nil {
		return nil, memoryFault(FaultInvalidAddress, address, size)
	}
	return data, nil
}

// store writes data without publishing an event.
func (m *Memory) store(address uint64, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	size := uint64(len(data))
	if err := m.check(address, size); err != nil {
		return err
	}
	if err := m.storage.Write(address, data); err != nil {
		return memoryFault(FaultInvalidAddress, address, size)
	}
	return nil
}

// Load is the host-side read used by the API shim outside a launch. It
// surfaces on the plugin bus as a hostMemoryLoad event.
func (m *Memory) Load(address, size uint64) ([]byte, error) {
	data, err := m.load(address, size)
	if err != nil {
		m.ctx.Message(MessageError, err.Error())
		return nil, err
	}
	m.ctx.notifyHostMemoryLoad(m, address, size)
	return data, nil
}

// Store is the host-side write used by the API shim outside a launch.
func (m *Memory) Store(address uint64, data []byte) error {
	if err := m.store(address, data); err != nil {
		m.ctx.Message(MessageError, err.Error())
		return err
	}
	m.ctx.notifyHostMemoryStore(m, address, uint64(len(data)), data)
	return nil
}

// atomic performs one indivisible read-modify-write on the 32-bit word
// at address and returns the previous value. Concurrent atomics on the
// same word linearize under the region lock.
func (m *Memory) atomic(op ir.AtomicOp, address uint64, operand, cmp uint32) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.check(address, 4); err != nil {
		return 0, err
	}
	buf, err := m.storage.Read(address, 4)
	if err != nil {
		return 0, memoryFault(FaultInvalidAddress, address, 4)
	}
	old := binary.LittleEndian.Uint32(buf)

	updated := old
	switch op {
	case ir.AtomicAdd:
		updated = old + operand
	case ir.AtomicSub:
		updated = old - operand
	case ir.AtomicInc:
		updated = old + 1
	case ir.AtomicDec:
		updated = old - 1
	case ir.AtomicMin:
		if operand < old {
			updated = operand
		}
	case ir.AtomicMax:
		if operand > old {
			updated = operand
		}
	case ir.AtomicAnd:
		updated = old & operand
	case ir.AtomicOr:
		updated = old | operand
	case ir.AtomicXor:
		updated = old ^ operand
	case ir.AtomicXchg, ir.AtomicStore:
		updated = operand
	case ir.AtomicCmpxchg:
		if old == cmp {
			updated = operand
		}
	case ir.AtomicLoad:
		return old, nil
	}

	word := make([]byte, 4)
	binary.LittleEndian.PutUint32(word, updated)
	if err := m.storage.Write(address, word); err != nil {
		return 0, memoryFault(FaultInvalidAddress, address, 4)
	}
	return old, nil
}
