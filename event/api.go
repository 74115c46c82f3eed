package event

// EmitBurst queues a burst request at the given origin.
// Helper handles payload acquisition; the consumer releases
func EmitBurst(q *Queue, x, y float64, frame uint64) {
	q.Push(Event{
		Type:    TypeBurstRequest,
		Payload: AcquireBurstRequest(x, y),
		Frame:   frame,
	})
}

// EmitReset queues a full simulation reset
func EmitReset(q *Queue, frame uint64) {
	q.Push(Event{
		Type:  TypeReset,
		Frame: frame,
	})
}
