package ir

import "fmt"

// ID is a unique identifier for Values and Blocks within a Function. IDs
// are dense, so a register file can be a flat slice indexed by ID.
type ID int32

// A Value is a single SSA computation. Formal parameters, constants, and
// instructions are all Values; the emulator keys its register file by ID
// rather than by pointer so nothing dangles past the module.
type Value struct {
	// ID is unique within the containing Function.
	ID ID

	// Op is the operation this value computes.
	Op Op

	// Type is the result type, Void for effect-only operations.
	Type Type

	// Args are the operand values.
	Args []*Value

	// AuxInt holds an auxiliary integer: constant value, parameter index,
	// atomic op code, or barrier fence flags, depending on Op.
	AuxInt int64

	// AuxFloat holds the value of an OpConstFloat.
	AuxFloat float64

	// Aux holds operation-specific data: *Global for OpGlobalRef, the
	// built-in name for OpCall, branch targets for OpBr/OpCondBr, the
	// predecessor list for OpPhi, the pointee Type for OpAlloca.
	Aux interface{}

	// Block is the basic block containing this value, nil for parameters.
	Block *Block
}

func (v *Value) String() string {
	return fmt.Sprintf("v%d", v.ID)
}

// LongString renders the value with op and operands, for debugger output.
func (v *Value) LongString() string {
	s := fmt.Sprintf("v%d = %s", v.ID, v.Op)
	if v.Type != nil {
		s += fmt.Sprintf(" <%s>", v.Type)
	}
	switch v.Op {
	case OpConstInt, OpParam, OpBarrier:
		s += fmt.Sprintf(" [%d]", v.AuxInt)
	case OpConstFloat:
		s += fmt.Sprintf(" [%g]", v.AuxFloat)
	case OpAtomic:
		s += fmt.Sprintf(" [%s]", AtomicOp(v.AuxInt))
	case OpCall:
		s += fmt.Sprintf(" {%s}", v.Aux)
	case OpGlobalRef:
		s += fmt.Sprintf(" {@%s}", v.Aux.(*Global).Name)
	}
	for _, arg := range v.Args {
		s += " " + arg.String()
	}
	return s
}

// AddArg appends an operand.
func (v *Value) AddArg(arg *Value) {
	v.Args = append(v.Args, arg)
}

// A Block is a basic block: an ordered list of values whose last entry is
// a terminator (OpBr, OpCondBr, or OpRet).
type Block struct {
	// ID is unique within the containing Function.
	ID ID

	// Values is the ordered instruction list.
	Values []*Value

	// Preds lists predecessor blocks, in the order OpPhi operands use.
	Preds []*Block

	// Func is the containing function.
	Func *Function
}

func (b *Block) String() string {
	return fmt.Sprintf("b%d", b.ID)
}

// Terminator returns the block's final value, or nil if the block is
// still being built.
func (b *Block) Terminator() *Value {
	if len(b.Values) == 0 {
		return nil
	}
	last := b.Values[len(b.Values)-1]
	if !last.Op.IsTerminator() {
		return nil
	}
	return last
}
