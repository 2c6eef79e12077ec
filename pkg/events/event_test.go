package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type testEvent struct {
	id uuid.UUID
	at time.Time
}

func (e testEvent) EventType() string      { return "test.event" }
func (e testEvent) AggregateID() uuid.UUID { return e.id }
func (e testEvent) OccurredAt() time.Time  { return e.at }

func TestEventCollector_Record(t *testing.T) {
	var c EventCollector

	first := testEvent{id: uuid.New(), at: time.Now().UTC()}
	second := testEvent{id: uuid.New(), at: time.Now().UTC()}

	c.Record(first)
	c.Record(second)

	collected := c.Events()
	assert.Len(t, collected, 2)
	assert.Equal(t, first.AggregateID(), collected[0].AggregateID())
	assert.Equal(t, second.AggregateID(), collected[1].AggregateID())
}

func TestEventCollector_ClearEvents(t *testing.T) {
	var c EventCollector

	c.Record(testEvent{id: uuid.New(), at: time.Now().UTC()})

	cleared := c.ClearEvents()
	assert.Len(t, cleared, 1)
	assert.Empty(t, c.Events())

	// Clearing twice is safe.
	assert.Empty(t, c.ClearEvents())
}
