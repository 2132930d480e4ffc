package emu

import (
	"encoding/binary"
	"math"
)

// A TypedValue is an owned byte buffer with an element layout: Size bytes
// per element, Num elements. Scalars have Num == 1; vector values carry
// one element per lane. The buffer length is always Size*Num.
type TypedValue struct {
	Size uint64
	Num  int
	Data []byte
}

// NewTypedValue returns a zeroed value with the given layout.
func NewTypedValue(size uint64, num int) TypedValue {
	return TypedValue{
		Size: size,
		Num:  num,
		Data: make([]byte, size*uint64(num)),
	}
}

// NewPointerValue returns a pointer-sized value holding address.
func NewPointerValue(address uint64) TypedValue {
	v := NewTypedValue(8, 1)
	binary.LittleEndian.PutUint64(v.Data, address)
	return v
}

// Clone returns a deep copy; the clone owns its bytes.
func (v TypedValue) Clone() TypedValue {
	c := TypedValue{Size: v.Size, Num: v.Num}
	c.Data = make([]byte, len(v.Data))
	copy(c.Data, v.Data)
	return c
}

// Pointer reads the value as a single address.
func (v TypedValue) Pointer() uint64 {
	return v.Uint(0)
}

// SetPointer stores an address into the value.
func (v TypedValue) SetPointer(address uint64) {
	v.SetUint(0, address)
}

// Uint reads lane i zero-extended to 64 bits.
func (v TypedValue) Uint(i int) uint64 {
	b := v.Data[uint64(i)*v.Size:]
	switch v.Size {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	default:
		return binary.LittleEndian.Uint64(b)
	}
}

// Int reads lane i sign-extended to 64 bits.
func (v TypedValue) Int(i int) int64 {
	u := v.Uint(i)
	shift := 64 - 8*v.Size
	return int64(u<<shift) >> shift
}

// SetUint stores the low Size bytes of val into lane i.
func (v TypedValue) SetUint(i int, val uint64) {
	b := v.Data[uint64(i)*v.Size:]
	switch v.Size {
	case 1:
		b[0] = byte(val)
	case 2:
		binary.LittleEndian.PutUint16(b, uint16(val))
	case 4:
		binary.LittleEndian.PutUint32(b, uint32(val))
	default:
		binary.LittleEndian.PutUint64(b, val)
	}
}

// Float reads lane i as a 32- or 64-bit float.
func (v TypedValue) Float(i int) float64 {
	if v.Size == 4 {
		return float64(math.Float32frombits(uint32(v.Uint(i))))
	}
	return math.Float64frombits(v.Uint(i))
}

// SetFloat stores val into lane i as a 32- or 64-bit float.
func (v TypedValue) SetFloat(i int, val float64) {
	if v.Size == 4 {
		v.SetUint(i, uint64(math.Float32bits(float32(val))))
		return
	}
	v.SetUint(i, math.Float64bits(val))
}
