// Package instruction decodes 16-bit CHIP-8 instruction words.
//
// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM
package instruction

import (
	"errors"
	"fmt"
)

// Op identifies one of the 34 canonical CHIP-8 operations.
type Op uint8

// CHIP-8 operations, named after what they do.
const (
	ClearDisplay         Op = iota // 00E0 CLS
	ReturnFromSubroutine           // 00EE RET
	Jump                           // 1nnn JP addr
	CallSubroutine                 // 2nnn CALL addr
	SkipRegEqByte                  // 3xkk SE Vx, byte
	SkipRegNotEqByte               // 4xkk SNE Vx, byte
	SkipRegEqReg                   // 5xy0 SE Vx, Vy
	SetRegToByte                   // 6xkk LD Vx, byte
	AddByteToReg                   // 7xkk ADD Vx, byte
	MoveValue                      // 8xy0 LD Vx, Vy
	OrRegs                         // 8xy1 OR Vx, Vy
	AndRegs                        // 8xy2 AND Vx, Vy
	XorRegs                        // 8xy3 XOR Vx, Vy
	AddRegs                        // 8xy4 ADD Vx, Vy
	SubRegs                        // 8xy5 SUB Vx, Vy
	ShiftRight                     // 8xy6 SHR Vx
	ReverseSubRegs                 // 8xy7 SUBN Vx, Vy
	ShiftLeft                      // 8xyE SHL Vx
	SkipRegNotEqReg                // 9xy0 SNE Vx, Vy
	SetI                           // Annn LD I, addr
	JumpV0PlusAddr                 // Bnnn JP V0, addr
	RandomAndByte                  // Cxkk RND Vx, byte
	DrawSprite                     // Dxyn DRW Vx, Vy, nibble
	SkipIfKey                      // Ex9E SKP Vx
	SkipIfNotKey                   // ExA1 SKNP Vx
	LoadDelayToReg                 // Fx07 LD Vx, DT
	LoadKeyToReg                   // Fx0A LD Vx, K
	SetDelayToReg                  // Fx15 LD DT, Vx
	SetSoundToReg                  // Fx18 LD ST, Vx
	AddRegToI                      // Fx1E ADD I, Vx
	SetIToDigitSprite              // Fx29 LD F, Vx
	StoreBCD                       // Fx33 LD B, Vx
	StoreRegsToMem                 // Fx55 LD [I], Vx
	LoadRegsFromMem                // Fx65 LD Vx, [I]

	opCount
)

// ErrInvalidOpcode is matched by every *DecodeError.
var ErrInvalidOpcode = errors.New("invalid opcode")

// DecodeError reports an instruction word that does not map to any operation.
type DecodeError struct {
	Raw uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid opcode %04X", e.Raw)
}

// Is reports whether target is ErrInvalidOpcode.
func (e *DecodeError) Is(target error) bool {
	return target == ErrInvalidOpcode
}

// Instruction is a decoded instruction word. Only the operands used by Op
// are meaningful; the others are zero.
type Instruction struct {
	Op   Op
	Raw  uint16 // the word this instruction was decoded from
	X    uint8  // register index, the lower 4 bits of the high byte
	Y    uint8  // register index, the upper 4 bits of the low byte
	N    uint8  // the lowest 4 bits of the instruction
	KK   uint8  // the lowest 8 bits of the instruction
	Addr uint16 // the lowest 12 bits of the instruction
}

// Decode maps a big-endian instruction word to an Instruction. Unknown words
// yield a *DecodeError carrying the raw word.
func Decode(raw uint16) (Instruction, error) {
	x := uint8((raw >> 8) & 0x000F)
	y := uint8((raw >> 4) & 0x000F)
	n := uint8(raw & 0x000F)
	kk := uint8(raw & 0x00FF)
	nnn := raw & 0x0FFF

	reg := func(op Op) (Instruction, error) {
		return Instruction{Op: op, Raw: raw, X: x}, nil
	}
	regs := func(op Op) (Instruction, error) {
		return Instruction{Op: op, Raw: raw, X: x, Y: y}, nil
	}
	regByte := func(op Op) (Instruction, error) {
		return Instruction{Op: op, Raw: raw, X: x, KK: kk}, nil
	}
	addr := func(op Op) (Instruction, error) {
		return Instruction{Op: op, Raw: raw, Addr: nnn}, nil
	}

	switch raw & 0xF000 { // Compare against the first 4 bits of the instruction only
	case 0x0000:
		switch raw {
		case 0x00E0:
			return Instruction{Op: ClearDisplay, Raw: raw}, nil
		case 0x00EE:
			return Instruction{Op: ReturnFromSubroutine, Raw: raw}, nil
		}
	case 0x1000:
		return addr(Jump)
	case 0x2000:
		return addr(CallSubroutine)
	case 0x3000:
		return regByte(SkipRegEqByte)
	case 0x4000:
		return regByte(SkipRegNotEqByte)
	case 0x5000:
		if n == 0x0 {
			return regs(SkipRegEqReg)
		}
	case 0x6000:
		return regByte(SetRegToByte)
	case 0x7000:
		return regByte(AddByteToReg)
	case 0x8000:
		switch n {
		case 0x0:
			return regs(MoveValue)
		case 0x1:
			return regs(OrRegs)
		case 0x2:
			return regs(AndRegs)
		case 0x3:
			return regs(XorRegs)
		case 0x4:
			return regs(AddRegs)
		case 0x5:
			return regs(SubRegs)
		case 0x6:
			return regs(ShiftRight)
		case 0x7:
			return regs(ReverseSubRegs)
		case 0xE:
			return regs(ShiftLeft)
		}
	case 0x9000:
		if n == 0x0 {
			return regs(SkipRegNotEqReg)
		}
	case 0xA000:
		return addr(SetI)
	case 0xB000:
		return addr(JumpV0PlusAddr)
	case 0xC000:
		return regByte(RandomAndByte)
	case 0xD000:
		return Instruction{Op: DrawSprite, Raw: raw, X: x, Y: y, N: n}, nil
	case 0xE000:
		switch kk {
		case 0x9E:
			return reg(SkipIfKey)
		case 0xA1:
			return reg(SkipIfNotKey)
		}
	case 0xF000:
		switch kk {
		case 0x07:
			return reg(LoadDelayToReg)
		case 0x0A:
			return reg(LoadKeyToReg)
		case 0x15:
			return reg(SetDelayToReg)
		case 0x18:
			return reg(SetSoundToReg)
		case 0x1E:
			return reg(AddRegToI)
		case 0x29:
			return reg(SetIToDigitSprite)
		case 0x33:
			return reg(StoreBCD)
		case 0x55:
			return reg(StoreRegsToMem)
		case 0x65:
			return reg(LoadRegsFromMem)
		}
	}
	return Instruction{}, &DecodeError{Raw: raw}
}
