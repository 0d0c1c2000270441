package headless

import (
	"context"
	"fmt"
)

// Ticker runs one instruction cycle per call.
type Ticker interface {
	Tick() error
}

// Run ticks vm cycles times without pacing. It stops early when ctx is done
// or a tick fails.
func Run(ctx context.Context, vm Ticker, cycles int) error {
	for i := 0; i < cycles; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := vm.Tick(); err != nil {
			return fmt.Errorf("cycle %d: %w", i, err)
		}
	}
	return nil
}
