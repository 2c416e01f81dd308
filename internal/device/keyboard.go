package device

import "sync"

// Keyboard fans key events out to registered handlers.
// Backends embed it to implement OnKeyDown and OnKeyUp.
// It is safe for concurrent use.
type Keyboard struct {
	mu     sync.RWMutex
	nextID uint64
	down   map[uint64]KeyHandler
	up     map[uint64]KeyHandler
	order  []uint64
}

// OnKeyDown registers h for key-down events.
func (k *Keyboard) OnKeyDown(h KeyHandler) Subscription {
	return k.add(true, h)
}

// OnKeyUp registers h for key-up events.
func (k *Keyboard) OnKeyUp(h KeyHandler) Subscription {
	return k.add(false, h)
}

func (k *Keyboard) add(down bool, h KeyHandler) Subscription {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.down == nil {
		k.down = make(map[uint64]KeyHandler)
		k.up = make(map[uint64]KeyHandler)
	}
	k.nextID++
	id := k.nextID
	if down {
		k.down[id] = h
	} else {
		k.up[id] = h
	}
	k.order = append(k.order, id)

	var once sync.Once
	return SubscriptionFunc(func() {
		once.Do(func() { k.remove(id) })
	})
}

func (k *Keyboard) remove(id uint64) {
	k.mu.Lock()
	defer k.mu.Unlock()

	delete(k.down, id)
	delete(k.up, id)
	for i, o := range k.order {
		if o == id {
			k.order = append(k.order[:i], k.order[i+1:]...)
			break
		}
	}
}

// Emit calls every key-down (down=true) or key-up handler with code,
// in registration order. Handlers run without the lock held.
func (k *Keyboard) Emit(down bool, code int) {
	k.mu.RLock()
	set := k.up
	if down {
		set = k.down
	}
	handlers := make([]KeyHandler, 0, len(set))
	for _, id := range k.order {
		if h, ok := set[id]; ok {
			handlers = append(handlers, h)
		}
	}
	k.mu.RUnlock()

	for _, h := range handlers {
		h(code)
	}
}

// Subscribers returns the number of registered handlers.
func (k *Keyboard) Subscribers() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.order)
}
