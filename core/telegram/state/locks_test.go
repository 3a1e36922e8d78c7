package state

import (
	"sync"
	"testing"
)

func TestChatLocksSerializesSameChat(t *testing.T) {
	locks := NewChatLocks()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.Lock(1)
			counter++
			locks.Unlock(1)
		}()
	}
	wg.Wait()

	if counter != 100 {
		t.Fatalf("counter = %d, want 100", counter)
	}
}

func TestChatLocksIndependentChats(t *testing.T) {
	locks := NewChatLocks()

	locks.Lock(1)
	done := make(chan struct{})
	go func() {
		// A different chat must not block on chat 1's lock.
		locks.Lock(2)
		locks.Unlock(2)
		close(done)
	}()
	<-done
	locks.Unlock(1)
}

func TestChatLocksTableShrinks(t *testing.T) {
	locks := NewChatLocks()
	locks.Lock(5)
	locks.Unlock(5)

	locks.mu.Lock()
	n := len(locks.locks)
	locks.mu.Unlock()
	if n != 0 {
		t.Fatalf("lock table has %d entries, want 0", n)
	}
}
