package ir

// A Global is a module-scope variable. The ID is dense within the module
// so binding maps can use it as a stable key.
type Global struct {
	ID    int
	Name  string
	Type  Type // pointee type
	Space AddressSpace

	// Const marks program-scope constants that are staged into the
	// constant area of global memory per launch.
	Const bool

	// Init is the optional constant initializer (OpConstInt,
	// OpConstFloat, or OpConstArray of those).
	Init *Value
}

// KernelInfo is the named-metadata record attached to a kernel function.
// A zero ReqdWorkGroupSize dimension means unconstrained.
type KernelInfo struct {
	Name              string
	ReqdWorkGroupSize [3]uint32
}

// A Module is the immutable output of the front-end loader: functions,
// module-scope variables, and kernel metadata.
type Module struct {
	Functions []*Function
	Globals   []*Global
	Kernels   []KernelInfo
}

// NewModule returns an empty module.
func NewModule() *Module {
	return &Module{}
}

// Function returns the function with the given name, or nil.
func (m *Module) Function(name string) *Function {
	for _, f := range m.Functions {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// AddFunction appends a function to the module.
func (m *Module) AddFunction(f *Function) {
	m.Functions = append(m.Functions, f)
}

// NewGlobal appends a module-scope variable and assigns its ID.
func (m *Module) NewGlobal(name string, typ Type, space AddressSpace) *Global {
	g := &Global{
		ID:    len(m.Globals),
		Name:  name,
		Type:  typ,
		Space: space,
	}
	m.Globals = append(m.Globals, g)
	return g
}

// KernelMetadata returns the metadata record for the named kernel. The
// second return is false when the module carries no record for it.
func (m *Module) KernelMetadata(name string) (KernelInfo, bool) {
	for _, k := range m.Kernels {
		if k.Name == name {
			return k, true
		}
	}
	return KernelInfo{}, false
}

// ConstInt builds a detached integer constant, for global initializers.
func ConstInt(typ Type, val int64) *Value {
	return &Value{Op: OpConstInt, Type: typ, AuxInt: val}
}

// ConstFloat builds a detached float constant, for global initializers.
func ConstFloat(typ Type, val float64) *Value {
	return &Value{Op: OpConstFloat, Type: typ, AuxFloat: val}
}

// ConstArray builds a detached array constant from element constants.
func ConstArray(typ Type, elems ...*Value) *Value {
	return &Value{Op: OpConstArray, Type: typ, Args: elems}
}
