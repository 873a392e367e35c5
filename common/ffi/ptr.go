package ffi

import "unsafe"

// DataPtr is an opaque pointer to component-defined data, returned by a
// library's default_value/deserialize/tick and owned by whichever SimData
// wraps it until drop_mem is called on it.
type DataPtr unsafe.Pointer

// GatePtr is an opaque pointer to component-defined gate state, returned by
// a library's gate_default and owned by the SimGate that wraps it.
type GatePtr unsafe.Pointer

// Nil reports whether p is the null pointer.
func (p DataPtr) Nil() bool { return p == nil }

// Nil reports whether p is the null pointer.
func (p GatePtr) Nil() bool { return p == nil }
