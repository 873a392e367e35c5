package sim

import "github.com/sarchlab/akita/v4/sim"

// HookPosGateCreated marks a successful create_default_gate.
var HookPosGateCreated = &sim.HookPos{Name: "Sim Gate Created"}

// HookPosConnected marks a successful connect.
var HookPosConnected = &sim.HookPos{Name: "Sim Connected"}

// HookPosTickPhaseA marks the start of tick_all's compute phase.
var HookPosTickPhaseA = &sim.HookPos{Name: "Sim Tick Phase A"}

// HookPosTickPhaseB marks the start of tick_all's flush phase.
var HookPosTickPhaseB = &sim.HookPos{Name: "Sim Tick Phase B"}
