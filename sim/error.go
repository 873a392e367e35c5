package sim

import (
	"fmt"

	"github.com/sarchlab/xdsim/common/ids"
)

// GateNotFoundError reports a socket or id referencing a gate the world
// does not have.
type GateNotFoundError struct {
	Gate interface{}
}

func (e *GateNotFoundError) Error() string {
	return fmt.Sprintf("sim: gate %v not found", e.Gate)
}

// ProducerSocketNotFoundError reports a producer socket whose index is
// out of range for its gate, or whose source has vanished mid-tick.
type ProducerSocketNotFoundError struct {
	Socket Socket
}

func (e *ProducerSocketNotFoundError) Error() string {
	return fmt.Sprintf("sim: producer socket %+v not found", e.Socket)
}

// ConsumerSocketNotFoundError reports a consumer socket whose index is
// out of range for its gate.
type ConsumerSocketNotFoundError struct {
	Socket Socket
}

func (e *ConsumerSocketNotFoundError) Error() string {
	return fmt.Sprintf("sim: consumer socket %+v not found", e.Socket)
}

// IOTypeMismatchError reports a connect() whose consumer requirement
// does not accept the producer's concrete data type.
type IOTypeMismatchError struct {
	ConsumerSocket Socket
	ProducerSocket Socket
}

func (e *IOTypeMismatchError) Error() string {
	return fmt.Sprintf("sim: consumer %+v does not accept producer %+v's data type", e.ConsumerSocket, e.ProducerSocket)
}

// ConsumerSocketDoubleBoundError reports a connect() onto a consumer
// socket that is already bound.
type ConsumerSocketDoubleBoundError struct {
	Current Socket
	New     Socket
}

func (e *ConsumerSocketDoubleBoundError) Error() string {
	return fmt.Sprintf("sim: consumer socket already bound to %+v, refusing to rebind to %+v", e.Current, e.New)
}

// ProducerSocketDoubleBoundError reports a connect() whose consumer
// socket was already registered as a dependent of the producer (should
// be unreachable under §4.4.1's invariants; reported defensively).
type ProducerSocketDoubleBoundError struct {
	Producer Socket
	Consumer Socket
}

func (e *ProducerSocketDoubleBoundError) Error() string {
	return fmt.Sprintf("sim: producer %+v already lists consumer %+v as a dependent", e.Producer, e.Consumer)
}

// GateTypeNotFoundError reports create_default_gate called with a gate
// version the handle catalog doesn't carry.
type GateTypeNotFoundError struct {
	Gate interface{}
}

func (e *GateTypeNotFoundError) Error() string {
	return fmt.Sprintf("sim: gate type %v not found", e.Gate)
}

// GateDefinitionError wraps a destructor error encountered while reading
// a newly-created gate's normalized definition.
type GateDefinitionError struct {
	Reason error
}

func (e *GateDefinitionError) Error() string {
	return fmt.Sprintf("sim: reading gate definition: %s", e.Reason)
}

func (e *GateDefinitionError) Unwrap() error {
	return e.Reason
}

// RequestedDataTypeNotFoundError reports a consumer entry whose
// ComponentVersionReq matches no data handle in the catalog.
type RequestedDataTypeNotFoundError struct {
	Consumer string
}

func (e *RequestedDataTypeNotFoundError) Error() string {
	return fmt.Sprintf("sim: no data handle satisfies consumer %q's requested type", e.Consumer)
}

// DataTypeNotFoundError reports a producer entry whose concrete
// ComponentVersion matches no data handle in the catalog.
type DataTypeNotFoundError struct {
	Producer string
}

func (e *DataTypeNotFoundError) Error() string {
	return fmt.Sprintf("sim: no data handle matches producer %q's declared type", e.Producer)
}

// TickSingleGateError collects every error one gate's Phase A compute
// raised.
type TickSingleGateError struct {
	Gate   ids.ComponentId
	Errors []error
}

func (e *TickSingleGateError) Error() string {
	return fmt.Sprintf("sim: gate %v: %d tick error(s)", e.Gate, len(e.Errors))
}

func (e *TickSingleGateError) Unwrap() []error {
	return e.Errors
}

// TickallErrorsError aggregates every TickSingleGateError raised during
// one tick_all call. A tick that produces no errors returns nil instead.
type TickallErrorsError struct {
	Errors []*TickSingleGateError
}

func (e *TickallErrorsError) Error() string {
	return fmt.Sprintf("sim: tick_all: %d gate(s) reported errors", len(e.Errors))
}
