package events

import "slices"

// EventCollector is embedded in aggregates to hold the events raised while the
// aggregate is built. Aggregates in this module are passed by value, so reads
// hand out copies and never the backing slice.
type EventCollector struct {
	events []DomainEvent
}

// Record appends a domain event to the collector.
func (c *EventCollector) Record(event DomainEvent) {
	c.events = append(c.events, event)
}

// Events returns a copy of the recorded events.
func (c *EventCollector) Events() []DomainEvent {
	return slices.Clone(c.events)
}

// ClearEvents returns the recorded events and resets the collector. It
// returns nil when nothing was recorded.
func (c *EventCollector) ClearEvents() []DomainEvent {
	collected := c.events
	c.events = nil
	return collected
}
