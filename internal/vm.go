package internal

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/mnafees/chopper/v2/internal/display"
	"github.com/mnafees/chopper/v2/internal/instruction"
	"github.com/mnafees/chopper/v2/internal/keypad"
	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 VM constants
const (
	totalMemory    = 0x1000
	addrMask       = totalMemory - 1
	pcStartAddr    = 0x200
	maxProgramSize = totalMemory - pcStartAddr
	stackSize      = 16
	flagReg        = 0xF
	fontGlyphSize  = 5

	TimerInterval = time.Second / 60
)

var (
	// ErrProgramTooLarge is returned when a program does not fit between 0x200 and the end of memory.
	ErrProgramTooLarge = errors.New("program size exceeds the maximum size")
	// ErrStackOverflow is the fault raised by a call with all stack slots in use.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is the fault raised by a return with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
)

// State is the execution state of the VM.
type State uint8

// VM execution states.
const (
	Running     State = iota // executing one instruction per tick
	AwaitingKey              // suspended in LD Vx, K until a key is queued
	Halted                   // stopped by a stack fault
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingKey:
		return "awaiting key"
	case Halted:
		return "halted"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// C8VM is an emulated CHIP-8 VM
type C8VM struct {
	regV       [16]uint8          // 16 general purpose 8-bit registers
	regI       uint16             // 16-bit register that is generally used to store memory addresses
	delayTimer uint8              // Delay timer
	soundTimer uint8              // Sound timer
	pc         uint16             // Program counter
	sp         uint8              // Stack pointer
	stack      [stackSize]uint16  // A stack of 16 16-bit values
	memory     [totalMemory]uint8 // 4 KB global memory

	state   State
	waitReg uint8 // register receiving the key while AwaitingKey
	fault   error // sticky stack fault while Halted

	display *display.Display
	keys    keypad.Queue

	prevTime time.Time        // time of the last timer decrement
	now      func() time.Time // clock used for timer decay
	rng      *rand.Rand
	logger   *log.Logger
	trace    bool
}

var fontset = [16 * fontGlyphSize]uint8{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// Option configures a C8VM.
type Option func(*C8VM)

// WithLogger sets the logger used for decode failures, state changes and tracing.
func WithLogger(logger *log.Logger) Option {
	return func(vm *C8VM) { vm.logger = logger }
}

// WithTrace logs every executed instruction at debug level.
func WithTrace(enabled bool) Option {
	return func(vm *C8VM) { vm.trace = enabled }
}

// WithClock replaces the wall clock used for timer decay.
func WithClock(now func() time.Time) Option {
	return func(vm *C8VM) { vm.now = now }
}

// WithRand sets the random source used by RND.
func WithRand(rng *rand.Rand) Option {
	return func(vm *C8VM) { vm.rng = rng }
}

// NewC8VM creates a new instance of an emulated CHIP-8 VM rendering onto target.
func NewC8VM(target display.RenderTarget, opts ...Option) *C8VM {
	vm := &C8VM{
		pc:      pcStartAddr,
		display: display.New(target),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(vm)
	}
	if vm.rng == nil {
		vm.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if vm.logger == nil {
		cfg := log.DefaultConfig()
		cfg.Level = log.ErrorLevel
		vm.logger = log.NewWithConfig(cfg)
	}
	copy(vm.memory[:], fontset[:])
	vm.prevTime = vm.now()
	return vm
}

// Load copies program into memory at 0x200. Memory is left untouched if
// the program does not fit.
func (vm *C8VM) Load(program []byte) error {
	if len(program) > maxProgramSize {
		return fmt.Errorf("%w: %d bytes, limit is %d", ErrProgramTooLarge, len(program), maxProgramSize)
	}
	copy(vm.memory[pcStartAddr:], program)
	return nil
}

// LoadProgram loads a given CHIP-8 program file into the VM's memory
func (vm *C8VM) LoadProgram(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	if err := vm.Load(data); err != nil {
		return fmt.Errorf("loading program %s: %w", filename, err)
	}
	return nil
}

// PushKey queues the keypad key mapped to sym. Unmapped symbols are ignored.
func (vm *C8VM) PushKey(sym keypad.Symbol) {
	if key, ok := keypad.Index(sym); ok {
		vm.keys.Push(key)
	}
}

// Tick runs one instruction cycle: fetch, decode and execute the instruction
// at pc, render the framebuffer and decay the timers if a timer interval has
// passed. While awaiting a key no instruction is executed. A non-nil error
// means the VM is halted by a stack fault.
func (vm *C8VM) Tick() error {
	switch vm.state {
	case Running:
		vm.step()
	case AwaitingKey:
		vm.resumeOnKey()
	}

	vm.display.Render()
	vm.decayTimers()
	return vm.fault
}

func (vm *C8VM) step() {
	raw := vm.fetch()
	ins, err := instruction.Decode(raw)
	if err != nil {
		vm.logger.Debug("Skipping unknown opcode",
			log.Hex("opcode", raw),
			log.Hex("pc", vm.pc-2))
		return
	}
	if vm.trace {
		vm.logger.Debug("Executing",
			log.Hex("pc", vm.pc-2),
			log.String("instruction", ins.String()))
	}
	vm.execute(ins)
}

func (vm *C8VM) resumeOnKey() {
	key, ok := vm.keys.Pop()
	if !ok {
		return
	}
	vm.regV[vm.waitReg] = key
	vm.state = Running
	vm.logger.Debug("Key received, resuming", log.Hex("key", key))
}

func (vm *C8VM) decayTimers() {
	now := vm.now()
	if now.Sub(vm.prevTime) < TimerInterval {
		return
	}
	if vm.delayTimer > 0 {
		vm.delayTimer--
	}
	if vm.soundTimer > 0 {
		vm.soundTimer--
	}
	vm.prevTime = now
}

func (vm *C8VM) fetch() uint16 {
	opcode := uint16(vm.read(vm.pc))<<8 | uint16(vm.read(vm.pc+1))
	vm.pc += 2
	return opcode
}

// read returns the byte at addr, wrapping around the 4 KB address space.
func (vm *C8VM) read(addr uint16) uint8 {
	return vm.memory[addr&addrMask]
}

func (vm *C8VM) write(addr uint16, val uint8) {
	vm.memory[addr&addrMask] = val
}

func (vm *C8VM) halt(err error) {
	vm.state = Halted
	vm.fault = fmt.Errorf("pc %03X: %w", vm.pc-2, err)
	vm.logger.Error("VM halted", log.Err(vm.fault))
}
