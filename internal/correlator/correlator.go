// Package correlator joins TipMessage texts to their TipSent events by tip id.
package correlator

import "sort"

// Correlator holds messages until the matching tip is processed.
// It is scoped to one processing pass and is not safe for concurrent use.
type Correlator struct {
	messages map[string]string
}

// New returns an empty Correlator.
func New() *Correlator {
	return &Correlator{messages: make(map[string]string)}
}

// Remember stores the message of tipID, replacing any earlier one.
func (c *Correlator) Remember(tipID, message string) {
	c.messages[tipID] = message
}

// Take returns and forgets the message of tipID.
// It returns "" and false when no message was remembered.
func (c *Correlator) Take(tipID string) (string, bool) {
	message, ok := c.messages[tipID]
	if ok {
		delete(c.messages, tipID)
	}
	return message, ok
}

// Len returns the number of messages not yet taken.
func (c *Correlator) Len() int {
	return len(c.messages)
}

// Drain forgets every message not yet taken and returns their tip ids in order.
func (c *Correlator) Drain() []string {
	ids := make([]string, 0, len(c.messages))
	for id := range c.messages {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	c.messages = make(map[string]string)

	return ids
}
