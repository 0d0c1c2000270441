package instruction

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// mnemonics maps every Op to the canonical CHIP-8 instruction name.
var mnemonics = [opCount]*chip8.Instruction{
	ClearDisplay:         chip8.Cls,
	ReturnFromSubroutine: chip8.Ret,
	Jump:                 chip8.Jp,
	CallSubroutine:       chip8.Call,
	SkipRegEqByte:        chip8.Se,
	SkipRegNotEqByte:     chip8.Sne,
	SkipRegEqReg:         chip8.Se,
	SetRegToByte:         chip8.Ld,
	AddByteToReg:         chip8.Add,
	MoveValue:            chip8.Ld,
	OrRegs:               chip8.Or,
	AndRegs:              chip8.And,
	XorRegs:              chip8.Xor,
	AddRegs:              chip8.Add,
	SubRegs:              chip8.Sub,
	ShiftRight:           chip8.Shr,
	ReverseSubRegs:       chip8.Subn,
	ShiftLeft:            chip8.Shl,
	SkipRegNotEqReg:      chip8.Sne,
	SetI:                 chip8.Ld,
	JumpV0PlusAddr:       chip8.Jp,
	RandomAndByte:        chip8.Rnd,
	DrawSprite:           chip8.Drw,
	SkipIfKey:            chip8.Skp,
	SkipIfNotKey:         chip8.Sknp,
	LoadDelayToReg:       chip8.Ld,
	LoadKeyToReg:         chip8.Ld,
	SetDelayToReg:        chip8.Ld,
	SetSoundToReg:        chip8.Ld,
	AddRegToI:            chip8.Add,
	SetIToDigitSprite:    chip8.Ld,
	StoreBCD:             chip8.Ld,
	StoreRegsToMem:       chip8.Ld,
	LoadRegsFromMem:      chip8.Ld,
}

// Name returns the mnemonic of the operation, e.g. "drw".
func (op Op) Name() string {
	if op >= opCount {
		return "???"
	}
	return mnemonics[op].Name
}

// String formats the instruction as assembly, e.g. "drw V1, V2, $5".
func (i Instruction) String() string {
	name := i.Op.Name()
	switch i.Op {
	case ClearDisplay, ReturnFromSubroutine:
		return name
	case Jump, CallSubroutine:
		return fmt.Sprintf("%s $%03X", name, i.Addr)
	case SkipRegEqByte, SkipRegNotEqByte, SetRegToByte, AddByteToReg, RandomAndByte:
		return fmt.Sprintf("%s V%X, $%02X", name, i.X, i.KK)
	case SkipRegEqReg, SkipRegNotEqReg, MoveValue, OrRegs, AndRegs, XorRegs,
		AddRegs, SubRegs, ReverseSubRegs:
		return fmt.Sprintf("%s V%X, V%X", name, i.X, i.Y)
	case ShiftRight, ShiftLeft, SkipIfKey, SkipIfNotKey:
		return fmt.Sprintf("%s V%X", name, i.X)
	case SetI:
		return fmt.Sprintf("%s I, $%03X", name, i.Addr)
	case JumpV0PlusAddr:
		return fmt.Sprintf("%s V0, $%03X", name, i.Addr)
	case DrawSprite:
		return fmt.Sprintf("%s V%X, V%X, $%X", name, i.X, i.Y, i.N)
	case LoadDelayToReg:
		return fmt.Sprintf("%s V%X, DT", name, i.X)
	case LoadKeyToReg:
		return fmt.Sprintf("%s V%X, K", name, i.X)
	case SetDelayToReg:
		return fmt.Sprintf("%s DT, V%X", name, i.X)
	case SetSoundToReg:
		return fmt.Sprintf("%s ST, V%X", name, i.X)
	case AddRegToI:
		return fmt.Sprintf("%s I, V%X", name, i.X)
	case SetIToDigitSprite:
		return fmt.Sprintf("%s F, V%X", name, i.X)
	case StoreBCD:
		return fmt.Sprintf("%s B, V%X", name, i.X)
	case StoreRegsToMem:
		return fmt.Sprintf("%s [I], V%X", name, i.X)
	case LoadRegsFromMem:
		return fmt.Sprintf("%s V%X, [I]", name, i.X)
	}
	return fmt.Sprintf("invalid opcode %04X", i.Raw)
}
