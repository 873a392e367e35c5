// Package sim implements the synchronous, double-buffered simulation
// world of spec.md §4.4: gate instantiation, socket wiring with type
// checking, and tick_all's two-phase compute/flush semantics.
package sim

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/xdsim/catalog"
	"github.com/sarchlab/xdsim/common/ffi"
	"github.com/sarchlab/xdsim/common/ids"
	"github.com/sarchlab/xdsim/common/version"
)

// World is the simulation world: a set of instantiated gates wired by
// producer/consumer sockets, advanced one tick_all call at a time.
// Hooks fire around gate creation, connection, and each tick phase so a
// host can observe the world without coupling to its internals (teacher
// idiom, core/port.go).
type World struct {
	sim.HookableBase

	ids     *ids.Counter
	handles *catalog.Catalog
	gates   map[ids.ComponentId]*SimGate
}

// NewWorld creates an empty simulation world implementing the
// CreateBlankWorld request record (spec.md §6).
func NewWorld(req CreateBlankWorld) *World {
	return &World{
		ids:     req.IDs,
		handles: req.Handles,
		gates:   make(map[ids.ComponentId]*SimGate),
	}
}

// GetGate looks up an instantiated gate by id.
func (w *World) GetGate(id ids.ComponentId) (*SimGate, error) {
	g, ok := w.gates[id]
	if !ok {
		return nil, &GateNotFoundError{Gate: id}
	}
	return g, nil
}

// GetProducer looks up one producer entry by socket.
func (w *World) GetProducer(s Socket) (*ProducerEntry, error) {
	g, err := w.GetGate(s.Gate)
	if err != nil {
		return nil, err
	}
	if s.Index < 0 || s.Index >= len(g.Producers) {
		return nil, &ProducerSocketNotFoundError{Socket: s}
	}
	return &g.Producers[s.Index], nil
}

// GetProducerType returns the concrete ComponentVersion of a producer
// socket's data type.
func (w *World) GetProducerType(s Socket) (version.ComponentVersion, error) {
	p, err := w.GetProducer(s)
	if err != nil {
		return version.ComponentVersion{}, err
	}
	return p.DataType, nil
}

func (w *World) getConsumer(s Socket) (*SimGate, *ConsumerEntry, error) {
	g, err := w.GetGate(s.Gate)
	if err != nil {
		return nil, nil, err
	}
	if s.Index < 0 || s.Index >= len(g.Consumers) {
		return nil, nil, &ConsumerSocketNotFoundError{Socket: s}
	}
	return g, &g.Consumers[s.Index], nil
}

// CreateDefaultGate instantiates a new gate of the given type at its
// library default value, resolving every consumer's requested data type
// and every producer's concrete data type against the handle catalog
// (spec.md §4.4.3 / §6: "CreateDefaultGate{gate, origin}" — only the
// sim-relevant Gate field applies here).
func (w *World) CreateDefaultGate(req CreateDefaultGate) (ids.ComponentId, error) {
	gateType := req.Gate

	handle, ok := w.handles.GetGate(gateType.Package, gateType.Version.String(), gateType.Component)
	if !ok {
		return 0, &GateTypeNotFoundError{Gate: gateType}
	}

	ptr, err := handle.DefaultValue()
	if err != nil {
		return 0, &GateDefinitionError{Reason: err}
	}

	def, err := handle.Definition(ptr)
	if err != nil {
		handle.DropMem(ptr)
		return 0, &GateDefinitionError{Reason: err}
	}

	consumers := make([]ConsumerEntry, 0, len(def.Consumers))
	for _, c := range def.Consumers {
		dataHandle, _, ok := w.handles.FindDataMatching(c.Request)
		if !ok {
			handle.DropMem(ptr)
			return 0, &RequestedDataTypeNotFoundError{Consumer: c.Name}
		}
		consumers = append(consumers, ConsumerEntry{
			Name:          c.Name,
			Request:       c.Request,
			Position:      c.Position,
			DefaultHandle: dataHandle,
		})
	}

	producers := make([]ProducerEntry, 0, len(def.Producers))
	for _, p := range def.Producers {
		dataHandle, ok := w.handles.GetData(p.DataType.Package, p.DataType.Version.String(), p.DataType.Component)
		if !ok {
			handle.DropMem(ptr)
			return 0, &DataTypeNotFoundError{Producer: p.Name}
		}
		defaultVal, err := dataHandle.DefaultValue()
		if err != nil {
			handle.DropMem(ptr)
			return 0, &GateDefinitionError{Reason: err}
		}
		producers = append(producers, ProducerEntry{
			Name:       p.Name,
			DataType:   p.DataType,
			Position:   p.Position,
			Handle:     dataHandle,
			Dependents: make(map[Socket]struct{}),
			ReadOnly:   NewSimData(dataHandle, defaultVal),
		})
	}

	id := w.ids.AllocGate()
	g := &SimGate{ID: id, Handle: handle, Ptr: ptr, Consumers: consumers, Producers: producers}
	w.gates[id] = g

	w.InvokeHook(sim.HookCtx{Domain: w, Pos: HookPosGateCreated, Item: id})
	return id, nil
}

// Connect wires a producer socket to a consumer socket, implementing the
// ConnectIOSockets request record (spec.md §6) via the prepare/commit
// protocol of spec.md §4.4.1: the consumer transitions first, then the
// producer's dependent set is updated, rolling the consumer back if the
// producer side fails.
func (w *World) Connect(req ConnectIOSockets) error {
	producer, consumer := req.Producer, req.Consumer

	p, err := w.GetProducer(producer)
	if err != nil {
		return err
	}
	_, c, err := w.getConsumer(consumer)
	if err != nil {
		return err
	}

	if !c.Request.Matches(p.DataType) {
		return &IOTypeMismatchError{ConsumerSocket: consumer, ProducerSocket: producer}
	}
	if c.Status.Bound {
		return &ConsumerSocketDoubleBoundError{Current: c.Status.Source, New: producer}
	}

	c.Status = ConsumerStatus{Bound: true, Source: producer}

	if _, exists := p.Dependents[consumer]; exists {
		c.Status = ConsumerStatus{}
		return &ProducerSocketDoubleBoundError{Producer: producer, Consumer: consumer}
	}
	p.Dependents[consumer] = struct{}{}

	w.InvokeHook(sim.HookCtx{Domain: w, Pos: HookPosConnected, Item: [2]Socket{producer, consumer}})
	return nil
}

// Disconnect severs a consumer socket from whatever producer currently
// drives it, unwinding both sides of Connect. Used by callers (layout's
// bind_producer) that need to roll back a partially-wired batch of
// connections after a later one fails.
func (w *World) Disconnect(consumer Socket) error {
	_, c, err := w.getConsumer(consumer)
	if err != nil {
		return err
	}
	if !c.Status.Bound {
		return nil
	}

	source := c.Status.Source
	c.Status = ConsumerStatus{}

	if p, err := w.GetProducer(source); err == nil {
		delete(p.Dependents, consumer)
	}
	return nil
}

// TickAll advances every gate by one tick using the two-phase
// compute/flush protocol of spec.md §4.4.2. Per-gate errors are
// collected and returned as a *TickallErrorsError; a clean tick returns
// nil. Gate iteration order is unspecified and must not be relied on by
// component authors.
func (w *World) TickAll() error {
	w.InvokeHook(sim.HookCtx{Domain: w, Pos: HookPosTickPhaseA})

	var gateErrs []*TickSingleGateError

	for _, g := range w.gates {
		var errs []error

		rawPtrs, temps, softErrs, buildErr := w.buildConsumerPtrs(g)
		errs = append(errs, softErrs...)
		if buildErr != nil {
			errs = append(errs, buildErr)
		}

		if buildErr == nil {
			producerPtrs, err := g.Handle.Tick(g.Ptr, rawPtrs)
			if err != nil {
				errs = append(errs, err)
			} else if len(producerPtrs) != len(g.Producers) {
				errs = append(errs, fmt.Errorf("sim: gate %d: tick returned %d producer value(s), expected %d",
					g.ID, len(producerPtrs), len(g.Producers)))
			} else {
				for i := range g.Producers {
					g.Producers[i].WriteOnly = NewSimData(g.Producers[i].Handle, producerPtrs[i])
				}
			}
		}

		for _, t := range temps {
			t.Drop()
		}

		if len(errs) > 0 {
			gateErrs = append(gateErrs, &TickSingleGateError{Gate: g.ID, Errors: errs})
		}
	}

	w.InvokeHook(sim.HookCtx{Domain: w, Pos: HookPosTickPhaseB})

	for _, g := range w.gates {
		for i := range g.Producers {
			p := &g.Producers[i]
			if p.WriteOnly == nil {
				continue
			}
			old := p.ReadOnly
			p.ReadOnly = p.WriteOnly
			p.WriteOnly = nil
			old.Drop()
		}
	}

	if len(gateErrs) > 0 {
		return &TickallErrorsError{Errors: gateErrs}
	}
	return nil
}

// buildConsumerPtrs assembles the ordered consumer-data pointer array a
// gate's tick function expects (spec.md §4.4.2 Phase A step 1). Unbound
// entries get a freshly synthesized temporary value the caller must Drop
// once the tick call returns; bound entries dereference their source
// producer's current read_only value.
func (w *World) buildConsumerPtrs(g *SimGate) ([]ffi.DataPtr, []*SimData, []error, error) {
	ptrs := make([]ffi.DataPtr, len(g.Consumers))
	var temps []*SimData
	var softErrs []error

	for i, c := range g.Consumers {
		if !c.Status.Bound {
			val, err := c.DefaultHandle.DefaultValue()
			if err != nil {
				return nil, temps, softErrs, err
			}
			data := NewSimData(c.DefaultHandle, val)
			temps = append(temps, data)
			ptrs[i] = data.Ptr()
			continue
		}

		source, err := w.GetProducer(c.Status.Source)
		if err != nil {
			// Defensively treat a vanished source as unbound for this
			// tick (spec.md §4.4.2: "should be impossible under
			// invariants but reported defensively").
			softErrs = append(softErrs, &ProducerSocketNotFoundError{Socket: c.Status.Source})
			val, defErr := c.DefaultHandle.DefaultValue()
			if defErr != nil {
				return nil, temps, softErrs, defErr
			}
			data := NewSimData(c.DefaultHandle, val)
			temps = append(temps, data)
			ptrs[i] = data.Ptr()
			continue
		}
		ptrs[i] = source.ReadOnly.Ptr()
	}

	return ptrs, temps, softErrs, nil
}
