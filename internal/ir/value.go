package ir

import "strconv"

// ValueKind discriminates operand values.
type ValueKind uint8

const (
	// ValImm is an immediate integer; no instruction materializes it.
	ValImm ValueKind = iota
	// ValReg is a fresh virtual register, rendered %name.
	ValReg
	// ValLocal is a named local (function parameter), rendered %name.
	ValLocal
	// ValGlobal is a global function reference, rendered @name.
	ValGlobal
)

// Value is an operand: an immediate or a named register/local/global.
type Value struct {
	Kind ValueKind
	Imm  int64
	Name string
}

func Imm(v int64) Value {
	return Value{Kind: ValImm, Imm: v}
}

func Reg(name string) Value {
	return Value{Kind: ValReg, Name: name}
}

func Local(name string) Value {
	return Value{Kind: ValLocal, Name: name}
}

func Global(name string) Value {
	return Value{Kind: ValGlobal, Name: name}
}

func (v Value) String() string {
	switch v.Kind {
	case ValImm:
		return strconv.FormatInt(v.Imm, 10)
	case ValReg, ValLocal:
		return "%" + v.Name
	case ValGlobal:
		return "@" + v.Name
	}
	return "<bad value>"
}
