// Package ids implements the process-wide component id registry.
//
// A ComponentId is a 64-bit handle shared by every live gate, conn, point,
// and segment in a world. Allocation goes through a single monotonically
// increasing Counter per world; each live id carries an IdKind recorded at
// allocation time and removed on Unregister.
package ids

import (
	"fmt"
	"sync"
)

// ComponentId is a process-wide opaque identifier for a gate, conn, point,
// or segment.
type ComponentId uint64

// Kind enumerates what a ComponentId currently denotes.
type Kind int

const (
	// KindGate marks an id as belonging to a SimGate/LayoutGate pair.
	KindGate Kind = iota
	// KindConn marks an id as belonging to a LayoutConn.
	KindConn
	// KindConnPoint marks an id as belonging to a point inside a LayoutConn.
	KindConnPoint
	// KindConnSegment marks an id as belonging to a segment inside a LayoutConn.
	KindConnSegment
)

func (k Kind) String() string {
	switch k {
	case KindGate:
		return "Gate"
	case KindConn:
		return "Conn"
	case KindConnPoint:
		return "ConnPoint"
	case KindConnSegment:
		return "ConnSegment"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// entry is the registry record for one live id.
type entry struct {
	kind   Kind
	parent ComponentId // only meaningful for KindConnPoint/KindConnSegment
}

// WrongKindError is returned when an id is looked up under an assertion
// that doesn't match its registered Kind.
type WrongKindError struct {
	ID       ComponentId
	Expected Kind
	Actual   Kind
}

func (e *WrongKindError) Error() string {
	return fmt.Sprintf("id %d: expected kind %s, got %s", e.ID, e.Expected, e.Actual)
}

// UnknownIDError is returned when an id has never been registered or has
// already been unregistered.
type UnknownIDError struct {
	ID ComponentId
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("id %d: not registered", e.ID)
}

// Counter is the per-world monotonic id allocator plus kind registry.
type Counter struct {
	mu      sync.Mutex
	next    ComponentId
	entries map[ComponentId]entry
}

// NewCounter builds an empty counter. Ids start at 1 so the zero value of
// ComponentId can be used as "no id" by callers that need it.
func NewCounter() *Counter {
	return &Counter{
		next:    1,
		entries: make(map[ComponentId]entry),
	}
}

// AllocGate reserves a fresh id of kind KindGate.
func (c *Counter) AllocGate() ComponentId {
	return c.alloc(entry{kind: KindGate})
}

// AllocConn reserves a fresh id of kind KindConn.
func (c *Counter) AllocConn() ComponentId {
	return c.alloc(entry{kind: KindConn})
}

// AllocConnPoint reserves a fresh id of kind KindConnPoint owned by parent.
func (c *Counter) AllocConnPoint(parent ComponentId) ComponentId {
	return c.alloc(entry{kind: KindConnPoint, parent: parent})
}

// AllocConnSegment reserves a fresh id of kind KindConnSegment owned by parent.
func (c *Counter) AllocConnSegment(parent ComponentId) ComponentId {
	return c.alloc(entry{kind: KindConnSegment, parent: parent})
}

func (c *Counter) alloc(e entry) ComponentId {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.next
	c.next++
	c.entries[id] = e
	return id
}

// Unregister releases id, removing its kind registration. It is a no-op if
// the id is not currently registered, so rollback paths can call it
// unconditionally after a failed "prepare" step.
func (c *Counter) Unregister(id ComponentId) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

// Kind reports the registered kind of id, or an error if it isn't live.
func (c *Counter) Kind(id ComponentId) (Kind, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		return 0, &UnknownIDError{ID: id}
	}
	return e.kind, nil
}

// AssertGate checks that id is registered as a gate.
func (c *Counter) AssertGate(id ComponentId) error {
	return c.assert(id, KindGate)
}

// AssertConn checks that id is registered as a conn.
func (c *Counter) AssertConn(id ComponentId) error {
	return c.assert(id, KindConn)
}

// AssertConnPoint checks that id is registered as a conn point and returns
// the owning conn's id.
func (c *Counter) AssertConnPoint(id ComponentId) (ComponentId, error) {
	return c.assertWithParent(id, KindConnPoint)
}

// AssertConnSegment checks that id is registered as a conn segment and
// returns the owning conn's id.
func (c *Counter) AssertConnSegment(id ComponentId) (ComponentId, error) {
	return c.assertWithParent(id, KindConnSegment)
}

func (c *Counter) assert(id ComponentId, want Kind) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		return &UnknownIDError{ID: id}
	}
	if e.kind != want {
		return &WrongKindError{ID: id, Expected: want, Actual: e.kind}
	}
	return nil
}

func (c *Counter) assertWithParent(id ComponentId, want Kind) (ComponentId, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		return 0, &UnknownIDError{ID: id}
	}
	if e.kind != want {
		return 0, &WrongKindError{ID: id, Expected: want, Actual: e.kind}
	}
	return e.parent, nil
}

// Live reports whether id is currently registered, regardless of kind.
func (c *Counter) Live(id ComponentId) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[id]
	return ok
}

// LiveIDs returns a snapshot of all currently registered ids of the given
// kind, in no particular order.
func (c *Counter) LiveIDs(kind Kind) []ComponentId {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]ComponentId, 0, len(c.entries))
	for id, e := range c.entries {
		if e.kind == kind {
			out = append(out, id)
		}
	}
	return out
}
