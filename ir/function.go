package ir

// A Function is a kernel body: ordered formal parameters and a CFG of
// basic blocks. Blocks[0] is the entry block.
type Function struct {
	// Name is the function name as declared in the program.
	Name string

	// Params are the formal parameters, in declaration order. Pointer
	// parameters carry their address space in the pointer type.
	Params []*Value

	// Blocks is the list of basic blocks.
	Blocks []*Block

	nextValueID ID
	nextBlockID ID
}

// NewFunction creates an empty function. Parameters are added with
// NewParam and the entry block with NewBlock.
func NewFunction(name string) *Function {
	return &Function{Name: name}
}

// NumValues returns the number of value IDs issued so far. Register
// files are sized by this.
func (f *Function) NumValues() int {
	return int(f.nextValueID)
}

// Entry returns the entry block.
func (f *Function) Entry() *Block {
	return f.Blocks[0]
}

// NewParam appends a formal parameter of the given type.
func (f *Function) NewParam(typ Type) *Value {
	v := &Value{
		ID:     f.nextValueID,
		Op:     OpParam,
		Type:   typ,
		AuxInt: int64(len(f.Params)),
	}
	f.nextValueID++
	f.Params = append(f.Params, v)
	return v
}

// NewBlock appends a new empty basic block.
func (f *Function) NewBlock() *Block {
	b := &Block{
		ID:   f.nextBlockID,
		Func: f,
	}
	f.nextBlockID++
	f.Blocks = append(f.Blocks, b)
	return b
}

// NewValue appends a value with the given op to block b.
func (f *Function) NewValue(b *Block, op Op, typ Type, args ...*Value) *Value {
	v := &Value{
		ID:    f.nextValueID,
		Op:    op,
		Type:  typ,
		Block: b,
	}
	f.nextValueID++
	for _, arg := range args {
		v.AddArg(arg)
	}
	b.Values = append(b.Values, v)
	return v
}

// ConstInt creates an integer constant usable as an operand.
func (f *Function) ConstInt(typ Type, val int64) *Value {
	v := &Value{ID: f.nextValueID, Op: OpConstInt, Type: typ, AuxInt: val}
	f.nextValueID++
	return v
}

// ConstFloat creates a float constant usable as an operand.
func (f *Function) ConstFloat(typ Type, val float64) *Value {
	v := &Value{ID: f.nextValueID, Op: OpConstFloat, Type: typ, AuxFloat: val}
	f.nextValueID++
	return v
}

// GlobalRef creates a reference to a module-scope variable; its type is a
// pointer into the variable's address space.
func (f *Function) GlobalRef(g *Global) *Value {
	v := &Value{
		ID:   f.nextValueID,
		Op:   OpGlobalRef,
		Type: NewPointer(g.Type, g.Space),
		Aux:  g,
	}
	f.nextValueID++
	return v
}

// Call appends a built-in call to block b.
func (f *Function) Call(b *Block, name string, typ Type, args ...*Value) *Value {
	v := f.NewValue(b, OpCall, typ, args...)
	v.Aux = name
	return v
}

// Atomic appends an atomic read-modify-write to block b.
func (f *Function) Atomic(b *Block, op AtomicOp, ptr *Value, args ...*Value) *Value {
	v := f.NewValue(b, OpAtomic, Int32, append([]*Value{ptr}, args...)...)
	v.AuxInt = int64(op)
	return v
}

// Barrier appends a work-group barrier with the given fence flags.
func (f *Function) Barrier(b *Block, flags uint32) *Value {
	v := f.NewValue(b, OpBarrier, Void)
	v.AuxInt = int64(flags)
	return v
}

// Br appends an unconditional branch to target and records the CFG edge.
func (f *Function) Br(b, target *Block) *Value {
	v := f.NewValue(b, OpBr, Void)
	v.Aux = target
	target.Preds = append(target.Preds, b)
	return v
}

// CondBr appends a conditional branch and records both CFG edges.
func (f *Function) CondBr(b *Block, cond *Value, then, els *Block) *Value {
	v := f.NewValue(b, OpCondBr, Void, cond)
	v.Aux = [2]*Block{then, els}
	then.Preds = append(then.Preds, b)
	els.Preds = append(els.Preds, b)
	return v
}

// Ret appends a return; val may be nil for a void return.
func (f *Function) Ret(b *Block, val *Value) *Value {
	if val == nil {
		return f.NewValue(b, OpRet, Void)
	}
	return f.NewValue(b, OpRet, Void, val)
}

// Phi appends a phi node; args must line up with the block's Preds.
func (f *Function) Phi(b *Block, typ Type, args ...*Value) *Value {
	v := f.NewValue(b, OpPhi, typ, args...)
	v.Aux = b.Preds
	return v
}
