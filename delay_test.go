package settle

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDelay(t *testing.T) {
	start := time.Now()
	if err := Delay(context.Background(), 15*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if el := time.Since(start); el < 15*time.Millisecond {
		t.Fatalf("returned after %v; want at least 15ms", el)
	}

	if err := Delay(context.Background(), 0); err != nil {
		t.Fatalf("zero delay: unexpected error: %v", err)
	}
}

func TestDelay_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := Delay(ctx, time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if el := time.Since(start); el > time.Second {
		t.Fatalf("Delay did not stop on cancel (took %v)", el)
	}

	// already done ctx is reported even without waiting
	if err := Delay(ctx, -time.Second); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled for negative delay, got %v", err)
	}
}
