// Package ir defines the register/label instruction set the code generator
// emits and renders it into the textual form the downstream runner consumes.
package ir

// InstrKind enumerates instruction kinds.
type InstrKind uint8

const (
	// InstrBin represents an integer add or sub into a fresh register.
	InstrBin InstrKind = iota
	// InstrCmp represents an equality comparison into a fresh register.
	InstrCmp
	// InstrCondBr represents a conditional branch on an i1 register.
	InstrCondBr
	// InstrBr represents an unconditional branch.
	InstrBr
	// InstrLabel represents a label line, a jump target with fallthrough.
	InstrLabel
	// InstrAlloca represents a stack-slot allocation.
	InstrAlloca
	// InstrStore represents a store into a slot.
	InstrStore
	// InstrLoad represents a load from a slot.
	InstrLoad
	// InstrCall represents a call with typed arguments.
	InstrCall
	// InstrRet represents a return.
	InstrRet
	// InstrComment represents a diagnostic comment line.
	InstrComment
)

// Instr is one IR instruction: a kind tag plus the payload for that kind.
type Instr struct {
	Kind InstrKind

	Bin     BinInstr
	Cmp     CmpInstr
	CondBr  CondBrInstr
	Br      BrInstr
	Label   LabelInstr
	Alloca  AllocaInstr
	Store   StoreInstr
	Load    LoadInstr
	Call    CallInstr
	Ret     RetInstr
	Comment CommentInstr
}

// BinOp selects the operation of a BinInstr.
type BinOp uint8

const (
	OpAdd BinOp = iota
	OpSub
)

func (op BinOp) String() string {
	if op == OpAdd {
		return "add"
	}
	return "sub"
}

// BinInstr is `%dst = add/sub ty a, b`.
type BinInstr struct {
	Op  BinOp
	Dst string
	Ty  string
	A   Value
	B   Value
}

// CmpInstr is `%dst = icmp eq ty a, b`.
type CmpInstr struct {
	Dst string
	Ty  string
	A   Value
	B   Value
}

// CondBrInstr is `br i1 %cond, label %true, label %false`.
type CondBrInstr struct {
	Cond  Value
	True  string
	False string
}

// BrInstr is `br label %target`.
type BrInstr struct {
	Target string
}

// LabelInstr is a `name:` line, rendered without indentation.
type LabelInstr struct {
	Name string
}

// AllocaInstr is `%dst = alloca ty`.
type AllocaInstr struct {
	Dst string
	Ty  string
}

// StoreInstr is `store ty val, ptr slot`.
type StoreInstr struct {
	Ty   string
	Val  Value
	Slot Value
}

// LoadInstr is `%dst = load ty, ptr slot`.
type LoadInstr struct {
	Dst  string
	Ty   string
	Slot Value
}

// Arg is one typed call argument.
type Arg struct {
	Ty  string
	Val Value
}

// CallInstr is `%dst = call ret callee(args...)`. Sig, when set, replaces
// the plain return type with a full variadic signature, as the printf call
// in the main epilogue requires.
type CallInstr struct {
	Dst    string
	Ret    string
	Sig    string
	Callee Value
	Args   []Arg
}

// RetInstr is `ret ty val`.
type RetInstr struct {
	Ty  string
	Val Value
}

// CommentInstr is a `; text` line.
type CommentInstr struct {
	Text string
}

// Param is one formal parameter of a function definition.
type Param struct {
	Name string
	Ty   string
}

// Func is one function definition block.
type Func struct {
	Name   string
	Ret    string
	Params []Param
	Body   []Instr
}

// Module is an ordered list of function definitions; rendering prepends the
// fixed constant-pool preamble.
type Module struct {
	Funcs []*Func
}
