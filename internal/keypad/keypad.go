// Package keypad maps host key symbols onto the 16-key CHIP-8 keypad and
// queues pressed keys for the VM.
package keypad

import "sync"

// Keys is the number of keys on the CHIP-8 keypad.
const Keys = 16

// Symbol is a host-side key symbol. The sixteen valid symbols are the keys
// of the left hand block of a QWERTY keyboard.
type Symbol rune

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
var symbols = [Keys]Symbol{
	0x0: 'x', 0x1: '1', 0x2: '2', 0x3: '3',
	0x4: 'q', 0x5: 'w', 0x6: 'e', 0x7: 'a',
	0x8: 's', 0x9: 'd', 0xA: 'z', 0xB: 'c',
	0xC: '4', 0xD: 'r', 0xE: 'f', 0xF: 'v',
}

// Index returns the keypad index for s. ok is false for unmapped symbols.
func Index(s Symbol) (index uint8, ok bool) {
	if s >= 'A' && s <= 'Z' {
		s += 'a' - 'A'
	}
	for i, sym := range symbols {
		if sym == s {
			return uint8(i), true
		}
	}
	return 0, false
}

// SymbolFor returns the symbol mapped to keypad index i.
func SymbolFor(i uint8) (Symbol, bool) {
	if int(i) >= Keys {
		return 0, false
	}
	return symbols[i], true
}

// Queue holds pressed keys; the most recently pushed key is popped first.
// It is safe for one goroutine to push while another pops.
type Queue struct {
	mu   sync.Mutex
	keys []uint8
}

// Push appends key index to the queue.
func (q *Queue) Push(key uint8) {
	q.mu.Lock()
	q.keys = append(q.keys, key)
	q.mu.Unlock()
}

// Pop removes and returns the most recent key. ok is false if the queue is empty.
func (q *Queue) Pop() (key uint8, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.keys)
	if n == 0 {
		return 0, false
	}
	key = q.keys[n-1]
	q.keys = q.keys[:n-1]
	return key, true
}

// Len returns the number of queued keys.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.keys)
}
