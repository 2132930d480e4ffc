package emu

import "fmt"

// FaultKind classifies an observable simulator error. Faults are
// propagated as error values and reported through the plugin bus; they
// are never host-language panics.
type FaultKind int

// A list of all fault kinds.
const (
	FaultInvalidAddress FaultKind = iota
	FaultUnaligned
	FaultOutOfMemory
	FaultInvalidWorkSize
	FaultInvalidArgument
	FaultBarrierDivergence
	FaultUnhandledConstant
	FaultInvalidPluginCallback
)

var faultKindNames = [...]string{
	FaultInvalidAddress:        "InvalidAddress",
	FaultUnaligned:             "Unaligned",
	FaultOutOfMemory:           "OutOfMemory",
	FaultInvalidWorkSize:       "InvalidWorkSize",
	FaultInvalidArgument:       "InvalidArgument",
	FaultBarrierDivergence:     "BarrierDivergence",
	FaultUnhandledConstant:     "UnhandledConstant",
	FaultInvalidPluginCallback: "InvalidPluginCallback",
}

func (k FaultKind) String() string {
	if int(k) < len(faultKindNames) {
		return faultKindNames[k]
	}
	return "UnknownFault"
}

// A Fault is an error attributed to a work-item, work-group, or launch.
type Fault struct {
	Kind    FaultKind
	Address uint64
	Size    uint64
	Detail  string
}

func (f *Fault) Error() string {
	s := f.Kind.String()
	if f.Size > 0 {
		s += fmt.Sprintf(" (address 0x%x, size %d)", f.Address, f.Size)
	}
	if f.Detail != "" {
		s += ": " + f.Detail
	}
	return s
}

func memoryFault(kind FaultKind, address, size uint64) *Fault {
	return &Fault{Kind: kind, Address: address, Size: size}
}

func launchFault(kind FaultKind, format string, args ...interface{}) *Fault {
	return &Fault{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// FaultOf unwraps an error into a *Fault, or nil if it is not one.
func FaultOf(err error) *Fault {
	f, _ := err.(*Fault)
	return f
}
