package emu

import (
	ginkgo "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nido/Oclgrind/ir"
)

var _ = ginkgo.Describe("Memory", func() {
	var (
		ctx    *Context
		memory *Memory
	)

	ginkgo.BeforeEach(func() {
		ctx = NewContext()
		memory = ctx.GlobalMemory()
	})

	ginkgo.It("should round-trip stored bytes", func() {
		address, err := memory.Allocate(16)
		Expect(err).To(BeNil())

		data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
		Expect(memory.Store(address, data)).To(Succeed())

		out, err := memory.Load(address, 8)
		Expect(err).To(BeNil())
		Expect(out).To(Equal(data))
	})

	ginkgo.It("should never alias live allocations", func() {
		type span struct{ base, size uint64 }
		var spans []span
		for _, size := range []uint64{1, 7, 16, 64, 3, 128} {
			base, err := memory.Allocate(size)
			Expect(err).To(BeNil())
			spans = append(spans, span{base, size})
		}
		for i, a := range spans {
			for j, b := range spans {
				if i == j {
					continue
				}
				overlaps := a.base < b.base+b.size && b.base < a.base+a.size
				Expect(overlaps).To(BeFalse())
			}
		}
	})

	ginkgo.It("should fault loads outside any live allocation", func() {
		address, err := memory.Allocate(8)
		Expect(err).To(BeNil())

		_, err = memory.Load(address+4, 8)
		Expect(FaultOf(err).Kind).To(Equal(FaultInvalidAddress))

		_, err = memory.Load(0xdead000, 4)
		Expect(FaultOf(err).Kind).To(Equal(FaultInvalidAddress))
	})

	ginkgo.It("should fault access to freed ranges and double frees", func() {
		address, err := memory.Allocate(8)
		Expect(err).To(BeNil())
		Expect(memory.Deallocate(address)).To(Succeed())

		_, err = memory.Load(address, 4)
		Expect(FaultOf(err).Kind).To(Equal(FaultInvalidAddress))

		err = memory.Deallocate(address)
		Expect(FaultOf(err).Kind).To(Equal(FaultInvalidAddress))
	})

	ginkgo.It("should handle zero-size access without faulting", func() {
		address, err := memory.Allocate(8)
		Expect(err).To(BeNil())

		_, err = memory.Load(address, 0)
		Expect(err).To(BeNil())
		Expect(memory.Store(address, nil)).To(Succeed())
	})

	ginkgo.It("should fault misaligned natural-width access", func() {
		address, err := memory.Allocate(16)
		Expect(err).To(BeNil())

		_, err = memory.Load(address+2, 4)
		Expect(FaultOf(err).Kind).To(Equal(FaultUnaligned))
	})

	ginkgo.It("should report exhaustion as OutOfMemory", func() {
		small := newMemory(ctx, ir.AddrSpacePrivate, 64)
		_, err := small.Allocate(128)
		Expect(FaultOf(err).Kind).To(Equal(FaultOutOfMemory))
	})

	ginkgo.It("should publish host events and allocation events", func() {
		r := &recorder{}
		Expect(ctx.AddPlugin(r)).To(Succeed())

		address, err := memory.Allocate(8)
		Expect(err).To(BeNil())
		Expect(memory.Store(address, []byte{9, 9, 9, 9})).To(Succeed())
		_, err = memory.Load(address, 4)
		Expect(err).To(BeNil())
		Expect(memory.Deallocate(address)).To(Succeed())

		Expect(r.count("memoryAllocated")).To(Equal(1))
		Expect(r.count("hostMemoryStore")).To(Equal(1))
		Expect(r.count("hostMemoryLoad")).To(Equal(1))
		Expect(r.count("memoryDeallocated")).To(Equal(1))
	})

	ginkgo.Describe("atomics", func() {
		var address uint64

		ginkgo.BeforeEach(func() {
			var err error
			address, err = memory.Allocate(4)
			Expect(err).To(BeNil())
			Expect(memory.store(address, []byte{0, 0, 0, 0})).To(Succeed())
		})

		ginkgo.It("should linearize increments", func() {
			for i := 0; i < 10; i++ {
				old, err := memory.atomic(ir.AtomicInc, address, 0, 0)
				Expect(err).To(BeNil())
				Expect(old).To(Equal(uint32(i)))
			}
		})

		ginkgo.It("should apply cmpxchg only on a match", func() {
			_, err := memory.atomic(ir.AtomicStore, address, 5, 0)
			Expect(err).To(BeNil())

			old, err := memory.atomic(ir.AtomicCmpxchg, address, 9, 4)
			Expect(err).To(BeNil())
			Expect(old).To(Equal(uint32(5)))

			old, err = memory.atomic(ir.AtomicCmpxchg, address, 9, 5)
			Expect(err).To(BeNil())
			Expect(old).To(Equal(uint32(5)))

			old, err = memory.atomic(ir.AtomicLoad, address, 0, 0)
			Expect(err).To(BeNil())
			Expect(old).To(Equal(uint32(9)))
		})

		ginkgo.It("should reject a misaligned word", func() {
			_, err := memory.atomic(ir.AtomicInc, address+1, 0, 0)
			Expect(FaultOf(err).Kind).To(Equal(FaultInvalidAddress))
		})
	})
})

var _ = ginkgo.Describe("TypedValue", func() {
	ginkgo.It("should keep buffer length equal to size times count", func() {
		v := NewTypedValue(4, 4)
		Expect(v.Data).To(HaveLen(16))
	})

	ginkgo.It("should clone deeply", func() {
		v := NewTypedValue(4, 2)
		v.SetUint(0, 7)
		c := v.Clone()
		c.SetUint(0, 9)
		Expect(v.Uint(0)).To(Equal(uint64(7)))
		Expect(c.Uint(0)).To(Equal(uint64(9)))
	})

	ginkgo.It("should sign-extend through Int", func() {
		v := NewTypedValue(2, 1)
		v.SetUint(0, 0xFFFF)
		Expect(v.Int(0)).To(Equal(int64(-1)))
	})

	ginkgo.It("should store floats per lane", func() {
		v := NewTypedValue(4, 4)
		for i := 0; i < 4; i++ {
			v.SetFloat(i, float64(i)+0.5)
		}
		Expect(v.Float(2)).To(BeNumerically("~", 2.5, 1e-6))
	})
})
