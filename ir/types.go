package ir

import "fmt"

// An AddressSpace tags which memory region a pointer resolves against.
// The numbering follows the SPIR convention and is stable across the
// simulator; plugins see these values verbatim.
type AddressSpace uint32

// A list of all address spaces.
const (
	AddrSpacePrivate  AddressSpace = 0
	AddrSpaceGlobal   AddressSpace = 1
	AddrSpaceConstant AddressSpace = 2
	AddrSpaceLocal    AddressSpace = 3
)

var addrSpaceNames = map[AddressSpace]string{
	AddrSpacePrivate:  "private",
	AddrSpaceGlobal:   "global",
	AddrSpaceConstant: "constant",
	AddrSpaceLocal:    "local",
}

func (s AddressSpace) String() string {
	if name, ok := addrSpaceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("addrspace(%d)", uint32(s))
}

// Type describes the shape of a value. Size is the number of bytes an
// object of the type occupies in simulated memory.
type Type interface {
	Size() uint64
	String() string
}

// VoidType is the type of instructions that produce no value.
type VoidType struct{}

func (t *VoidType) Size() uint64   { return 0 }
func (t *VoidType) String() string { return "void" }

// IntType is an integer type of the given bit width.
type IntType struct {
	Bits uint32
}

func (t *IntType) Size() uint64   { return uint64(t.Bits) / 8 }
func (t *IntType) String() string { return fmt.Sprintf("i%d", t.Bits) }

// FloatType is a floating point type of 32 or 64 bits.
type FloatType struct {
	Bits uint32
}

func (t *FloatType) Size() uint64 { return uint64(t.Bits) / 8 }

func (t *FloatType) String() string {
	if t.Bits == 64 {
		return "double"
	}
	return "float"
}

// PointerType is an address into one of the four memory regions. Pointers
// are always pointer-width (8 bytes) regardless of the pointee.
type PointerType struct {
	Elem  Type
	Space AddressSpace
}

func (t *PointerType) Size() uint64   { return 8 }
func (t *PointerType) String() string { return fmt.Sprintf("%s %s*", t.Space, t.Elem) }

// VectorType is a short vector of scalar elements, e.g. float4.
type VectorType struct {
	Elem Type
	Num  int
}

func (t *VectorType) Size() uint64   { return t.Elem.Size() * uint64(t.Num) }
func (t *VectorType) String() string { return fmt.Sprintf("<%d x %s>", t.Num, t.Elem) }

// ArrayType is a fixed-length aggregate, used by module-scope variables.
type ArrayType struct {
	Elem Type
	Num  int
}

func (t *ArrayType) Size() uint64   { return t.Elem.Size() * uint64(t.Num) }
func (t *ArrayType) String() string { return fmt.Sprintf("[%d x %s]", t.Num, t.Elem) }

// Predeclared types shared by builders and tests.
var (
	Void    = &VoidType{}
	Int8    = &IntType{Bits: 8}
	Int16   = &IntType{Bits: 16}
	Int32   = &IntType{Bits: 32}
	Int64   = &IntType{Bits: 64}
	Float32 = &FloatType{Bits: 32}
	Float64 = &FloatType{Bits: 64}

	// SizeT is the device size_t, 64 bits on this simulator.
	SizeT = Int64
)

// NewPointer returns a pointer type into the given address space.
func NewPointer(elem Type, space AddressSpace) *PointerType {
	return &PointerType{Elem: elem, Space: space}
}

// NewVector returns a vector type with num lanes.
func NewVector(elem Type, num int) *VectorType {
	return &VectorType{Elem: elem, Num: num}
}

// NewArray returns an array type with num elements.
func NewArray(elem Type, num int) *ArrayType {
	return &ArrayType{Elem: elem, Num: num}
}
