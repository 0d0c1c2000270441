package internal

// State returns the current execution state
func (vm *C8VM) State() State {
	return vm.state
}

// PC returns the program counter
func (vm *C8VM) PC() uint16 {
	return vm.pc
}

// Register returns the value of Vx
func (vm *C8VM) Register(x uint8) uint8 {
	return vm.regV[x&0xF]
}

// DelayTimer returns the value of DT
func (vm *C8VM) DelayTimer() uint8 {
	return vm.delayTimer
}

// SoundTimer returns the value of ST
func (vm *C8VM) SoundTimer() uint8 {
	return vm.soundTimer
}

// SoundActive reports whether the buzzer should be sounding
func (vm *C8VM) SoundActive() bool {
	return vm.soundTimer > 0
}

// PendingKeys returns the number of queued key presses
func (vm *C8VM) PendingKeys() int {
	return vm.keys.Len()
}
