package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"orderflow/domain/order"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

func quickConfig() Config {
	cfg := DefaultConfig
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 5 * time.Millisecond
	return cfg
}

func TestIsRetryableError(t *testing.T) {
	cfg := DefaultConfig

	if IsRetryableError(nil, cfg) {
		t.Error("Expected nil error to not be retryable")
	}

	if !IsRetryableError(order.NewConcurrentModificationError("order-1"), cfg) {
		t.Error("Expected optimistic lock miss to be retryable")
	}

	deadlock := &mysqlDriver.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}
	if !IsRetryableError(deadlock, cfg) {
		t.Error("Expected MySQL deadlock (1213) to be retryable")
	}

	lockTimeout := &mysqlDriver.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"}
	if !IsRetryableError(lockTimeout, cfg) {
		t.Error("Expected MySQL lock wait timeout (1205) to be retryable")
	}

	duplicate := &mysqlDriver.MySQLError{Number: 1062, Message: "Duplicate entry"}
	if IsRetryableError(duplicate, cfg) {
		t.Error("Expected duplicate key (1062) to not be retryable")
	}

	if !IsRetryableError(gorm.ErrInvalidTransaction, cfg) {
		t.Error("Expected invalid transaction to be retryable")
	}

	if IsRetryableError(order.ErrInvalidStateTransition, cfg) {
		t.Error("Expected business rejection to not be retryable")
	}
	if IsRetryableError(errors.New("voucher usage exhausted"), cfg) {
		t.Error("Expected arbitrary error to not be retryable")
	}

	// Toggles disable their error class
	noLockRetry := cfg
	noLockRetry.RetryOnConcurrentModification = false
	if IsRetryableError(order.NewConcurrentModificationError("order-1"), noLockRetry) {
		t.Error("Expected disabled toggle to make lock misses non-retryable")
	}

	noDeadlockRetry := cfg
	noDeadlockRetry.RetryOnDeadlock = false
	if IsRetryableError(deadlock, noDeadlockRetry) {
		t.Error("Expected disabled toggle to make deadlocks non-retryable")
	}

	// Custom predicate extends the retryable set
	custom := cfg
	custom.RetryPredicate = func(err error) bool {
		return err.Error() == "replica lag"
	}
	if !IsRetryableError(errors.New("replica lag"), custom) {
		t.Error("Expected custom predicate match to be retryable")
	}

	t.Log("✓ Retryable error classification tests passed")
}

func TestExponentialBackoffWithJitter(t *testing.T) {
	cfg := Config{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 2.0,
	}

	if got := ExponentialBackoffWithJitter(0, cfg); got != 0 {
		t.Errorf("Expected zero delay for attempt 0, got %v", got)
	}
	if got := ExponentialBackoffWithJitter(1, cfg); got != 100*time.Millisecond {
		t.Errorf("Expected 100ms for attempt 1 without jitter, got %v", got)
	}
	if got := ExponentialBackoffWithJitter(2, cfg); got != 200*time.Millisecond {
		t.Errorf("Expected 200ms for attempt 2 without jitter, got %v", got)
	}

	// Capped by MaxDelay no matter the attempt
	if got := ExponentialBackoffWithJitter(20, cfg); got != 2*time.Second {
		t.Errorf("Expected cap at 2s, got %v", got)
	}

	// Jitter stays within the 0.8-1.2 band around the base delay
	jittered := cfg
	jittered.JitterEnabled = true
	for i := 0; i < 50; i++ {
		got := ExponentialBackoffWithJitter(1, jittered)
		if got < 80*time.Millisecond || got > 120*time.Millisecond {
			t.Fatalf("Expected jittered delay in [80ms, 120ms], got %v", got)
		}
	}

	t.Log("✓ Backoff calculation tests passed")
}

func TestExecuteWithRetry(t *testing.T) {
	ctx := context.Background()

	// Succeeds on a later attempt
	cfg := quickConfig()
	attempts := 0
	err := ExecuteWithRetry(ctx, cfg, func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return order.NewConcurrentModificationError("order-1")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Expected eventual success, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}

	// Exhausts the attempt budget and returns the last error
	attempts = 0
	err = ExecuteWithRetry(ctx, cfg, func(ctx context.Context) error {
		attempts++
		return order.NewConcurrentModificationError("order-1")
	})
	if !errors.Is(err, order.ErrConcurrentModification) {
		t.Fatalf("Expected last error after exhaustion, got %v", err)
	}
	if attempts != cfg.MaxAttempts {
		t.Errorf("Expected %d attempts, got %d", cfg.MaxAttempts, attempts)
	}

	// Non-retryable errors stop after the first attempt
	attempts = 0
	err = ExecuteWithRetry(ctx, cfg, func(ctx context.Context) error {
		attempts++
		return order.ErrInvalidStateTransition
	})
	if !errors.Is(err, order.ErrInvalidStateTransition) {
		t.Fatalf("Expected the business error back, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected a single attempt, got %d", attempts)
	}

	// Disabled retry runs the function exactly once
	disabled := quickConfig()
	disabled.Enabled = false
	attempts = 0
	err = ExecuteWithRetry(ctx, disabled, func(ctx context.Context) error {
		attempts++
		return order.NewConcurrentModificationError("order-1")
	})
	if err == nil || attempts != 1 {
		t.Errorf("Expected one failing attempt with retry disabled, got %d attempts, err %v", attempts, err)
	}

	t.Log("✓ Retry execution tests passed")
}

func TestExecuteWithRetryHonorsContext(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := ExecuteWithRetry(cancelled, quickConfig(), func(ctx context.Context) error {
		attempts++
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if attempts != 0 {
		t.Errorf("Expected no attempts on a cancelled context, got %d", attempts)
	}

	// Cancellation during the backoff wait aborts the retry loop
	ctx, cancel := context.WithCancel(context.Background())
	attempts = 0
	done := make(chan error, 1)
	cfg := quickConfig()
	cfg.InitialDelay = 500 * time.Millisecond
	cfg.MaxDelay = time.Second
	cfg.JitterEnabled = false
	go func() {
		done <- ExecuteWithRetry(ctx, cfg, func(ctx context.Context) error {
			attempts++
			return order.NewConcurrentModificationError("order-1")
		})
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled during backoff, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected a single attempt before cancellation, got %d", attempts)
	}

	t.Log("✓ Context cancellation tests passed")
}
