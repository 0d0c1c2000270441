package internal

import (
	"github.com/mnafees/chopper/v2/internal/instruction"
)

func (vm *C8VM) execute(ins instruction.Instruction) {
	x, y := ins.X, ins.Y

	switch ins.Op {
	case instruction.ClearDisplay: // CLS
		vm.display.Clear()
	case instruction.ReturnFromSubroutine: // RET
		if vm.sp == 0 {
			vm.halt(ErrStackUnderflow)
			return
		}
		vm.pc = vm.stack[vm.sp]
		vm.sp--
	case instruction.Jump: // JP nnn
		vm.pc = ins.Addr
	case instruction.CallSubroutine: // CALL nnn
		if int(vm.sp) == stackSize-1 {
			vm.halt(ErrStackOverflow)
			return
		}
		vm.sp++
		vm.stack[vm.sp] = vm.pc
		vm.pc = ins.Addr
	case instruction.SkipRegEqByte: // SE Vx, kk
		if vm.regV[x] == ins.KK {
			vm.pc += 2
		}
	case instruction.SkipRegNotEqByte: // SNE Vx, kk
		if vm.regV[x] != ins.KK {
			vm.pc += 2
		}
	case instruction.SkipRegEqReg: // SE Vx, Vy
		if vm.regV[x] == vm.regV[y] {
			vm.pc += 2
		}
	case instruction.SetRegToByte: // LD Vx, kk
		vm.regV[x] = ins.KK
	case instruction.AddByteToReg: // ADD Vx, kk
		vm.regV[x] += ins.KK
	case instruction.MoveValue: // LD Vx, Vy
		vm.regV[x] = vm.regV[y]
	case instruction.OrRegs: // OR Vx, Vy
		vm.regV[x] |= vm.regV[y]
	case instruction.AndRegs: // AND Vx, Vy
		vm.regV[x] &= vm.regV[y]
	case instruction.XorRegs: // XOR Vx, Vy
		vm.regV[x] ^= vm.regV[y]
	case instruction.AddRegs: // ADD Vx, Vy
		sum := uint16(vm.regV[x]) + uint16(vm.regV[y])
		vm.regV[flagReg] = boolToFlag(sum > 0xFF)
		vm.regV[x] = uint8(sum & 0xFF)
	case instruction.SubRegs: // SUB Vx, Vy
		vx, vy := vm.regV[x], vm.regV[y]
		vm.regV[flagReg] = boolToFlag(vx >= vy)
		vm.regV[x] = vx - vy
	case instruction.ShiftRight: // SHR Vx
		vx := vm.regV[x]
		vm.regV[flagReg] = vx & 0x01
		vm.regV[x] = vx >> 1
	case instruction.ReverseSubRegs: // SUBN Vx, Vy
		vx, vy := vm.regV[x], vm.regV[y]
		vm.regV[flagReg] = boolToFlag(vy >= vx)
		vm.regV[x] = vy - vx
	case instruction.ShiftLeft: // SHL Vx
		vx := vm.regV[x]
		vm.regV[flagReg] = vx >> 7
		vm.regV[x] = vx << 1
	case instruction.SkipRegNotEqReg: // SNE Vx, Vy
		if vm.regV[x] != vm.regV[y] {
			vm.pc += 2
		}
	case instruction.SetI: // LD I, nnn
		vm.regI = ins.Addr
	case instruction.JumpV0PlusAddr: // JP V0, nnn
		vm.pc = ins.Addr + uint16(vm.regV[0])
	case instruction.RandomAndByte: // RND Vx, kk
		vm.regV[x] = uint8(vm.rng.Uint32()) & ins.KK
	case instruction.DrawSprite: // DRW Vx, Vy, n
		sprite := make([]byte, ins.N)
		for i := range sprite {
			sprite[i] = vm.read(vm.regI + uint16(i))
		}
		collision := vm.display.Blit(vm.regV[x], vm.regV[y], sprite)
		vm.regV[flagReg] = boolToFlag(collision)
	case instruction.SkipIfKey: // SKP Vx
		if key, ok := vm.keys.Pop(); ok && key == vm.regV[x] {
			vm.pc += 2
		}
	case instruction.SkipIfNotKey: // SKNP Vx
		if key, ok := vm.keys.Pop(); ok && key != vm.regV[x] {
			vm.pc += 2
		}
	case instruction.LoadDelayToReg: // LD Vx, DT
		vm.regV[x] = vm.delayTimer
	case instruction.LoadKeyToReg: // LD Vx, K
		vm.state = AwaitingKey
		vm.waitReg = x
		vm.logger.Debug("Waiting for key")
	case instruction.SetDelayToReg: // LD DT, Vx
		vm.delayTimer = vm.regV[x]
	case instruction.SetSoundToReg: // LD ST, Vx
		vm.soundTimer = vm.regV[x]
	case instruction.AddRegToI: // ADD I, Vx
		vm.regI += uint16(vm.regV[x])
	case instruction.SetIToDigitSprite: // LD F, Vx
		vm.regI = uint16(vm.regV[x]) * fontGlyphSize
	case instruction.StoreBCD: // LD B, Vx
		val := vm.regV[x]
		hundreds := val / 100
		tens := (val - hundreds*100) / 10
		ones := val - hundreds*100 - tens*10
		vm.write(vm.regI, hundreds)
		vm.write(vm.regI+1, tens)
		vm.write(vm.regI+2, ones)
	case instruction.StoreRegsToMem: // LD [I], Vx
		for i := uint16(0); i <= uint16(x); i++ {
			vm.write(vm.regI+i, vm.regV[i])
		}
	case instruction.LoadRegsFromMem: // LD Vx, [I]
		for i := uint16(0); i <= uint16(x); i++ {
			vm.regV[i] = vm.read(vm.regI + i)
		}
	}
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
