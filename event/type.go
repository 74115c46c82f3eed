package event

// Type identifies a simulation event
type Type int

const (
	// TypeBurstRequest asks the emitter for a particle burst.
	// Trigger: pointer click in the sandbox, scripted triggers in the bench
	// Consumer: simulation loop | Payload: *BurstRequestPayload
	TypeBurstRequest Type = iota

	// TypeReset clears all live particles and re-arms the trigger cooldown.
	// Trigger: user reset key
	// Consumer: simulation loop | Payload: nil
	TypeReset
)

// Event is one queued simulation event
type Event struct {
	Type    Type
	Payload any
	Frame   uint64
}
