package adaboost

import (
	"fmt"
	"sync"

	"github.com/tevino/abool"
)

// Handle is an opaque reference to an object held by a Context. The zero
// Handle never names an object.
type Handle uint64

// Context owns the state behind every Parameter created from it. Objects are
// addressed by Handle and live until Dispose is called.
type Context struct {
	mu       sync.Mutex
	next     Handle
	objects  map[Handle]interface{}
	disposed *abool.AtomicBool
}

// NewContext returns an empty Context
func NewContext() *Context {
	return &Context{
		objects:  make(map[Handle]interface{}),
		disposed: abool.New(),
	}
}

// Dispose releases every object and invalidates all handles issued by c.
// It is safe to call more than once.
func (c *Context) Dispose() {
	if !c.disposed.SetToIf(false, true) {
		return
	}

	c.mu.Lock()
	n := len(c.objects)
	c.objects = nil
	c.mu.Unlock()

	logger.Debug().Int("objects", n).Msg("context disposed")
}

// Disposed reports whether Dispose has been called.
func (c *Context) Disposed() bool {
	return c.disposed.IsSet()
}

func (c *Context) register(obj interface{}) (Handle, error) {
	if c.disposed.IsSet() {
		return 0, fmt.Errorf("register on disposed context: %w", ErrInvalidHandle)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.objects == nil {
		return 0, fmt.Errorf("register on disposed context: %w", ErrInvalidHandle)
	}

	c.next++
	c.objects[c.next] = obj

	return c.next, nil
}

// with runs fn on the object named by h while holding the context lock.
func (c *Context) with(h Handle, fn func(obj interface{}) error) error {
	if c.disposed.IsSet() {
		return fmt.Errorf("handle %d: %w", h, ErrInvalidHandle)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	obj, ok := c.objects[h]
	if !ok {
		return fmt.Errorf("handle %d: %w", h, ErrInvalidHandle)
	}

	return fn(obj)
}
