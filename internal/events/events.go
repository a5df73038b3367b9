package events

// Publisher is the one-way output port for live events. Delivery is
// fire-and-forget, at most once.
type Publisher interface {
	Publish(event string, payload interface{})
}

// Event names pushed by the check pipeline
const (
	EventCheckNew         = "check:new"
	EventStatusChanged    = "target:status_changed"
	EventIncidentOpened   = "incident:opened"
	EventIncidentResolved = "incident:resolved"
)

// NopPublisher discards all events
type NopPublisher struct{}

func (NopPublisher) Publish(string, interface{}) {}
