package waitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttachmentIdFromGuardMatchesDeliveries(t *testing.T) {
	g := &Guard{setID: 3, serial: 41}

	derived := AttachmentIdFromGuard(g)
	event := AttachmentId{setID: 3, serial: 41, origin: originEvent}
	missed := AttachmentId{setID: 3, serial: 41, origin: originDeadline}

	// Identity ignores the delivery origin.
	assert.True(t, derived.Equal(event))
	assert.True(t, derived.Equal(missed))
	assert.True(t, event.Equal(missed))

	// Origin is still observable through the guard queries.
	assert.True(t, event.HasEventFrom(g))
	assert.False(t, event.HasMissedDeadline(g))
	assert.True(t, missed.HasMissedDeadline(g))
	assert.False(t, missed.HasEventFrom(g))
}

func TestAttachmentIdDistinguishesAttachments(t *testing.T) {
	g1 := &Guard{setID: 1, serial: 10}
	g2 := &Guard{setID: 1, serial: 11}
	other := &Guard{setID: 2, serial: 10}

	id1 := AttachmentIdFromGuard(g1)
	assert.False(t, id1.Equal(AttachmentIdFromGuard(g2)))
	assert.False(t, id1.Equal(AttachmentIdFromGuard(other)))
	assert.False(t, id1.HasEventFrom(g2))
	assert.False(t, id1.HasEventFrom(other))
}

func TestAttachmentIdLessTotalOrder(t *testing.T) {
	ids := []AttachmentId{
		{setID: 1, serial: 2},
		{setID: 1, serial: 3},
		{setID: 2, serial: 1},
		{setID: 2, serial: 1, origin: originDeadline},
	}

	for i, a := range ids {
		for j, b := range ids {
			if a.Equal(b) {
				assert.False(t, a.Less(b), "%d vs %d", i, j)
				assert.False(t, b.Less(a), "%d vs %d", i, j)
				continue
			}
			// Exactly one direction holds for distinct identities.
			assert.NotEqual(t, a.Less(b), b.Less(a), "%d vs %d", i, j)
		}
	}

	require.True(t, ids[0].Less(ids[1]))
	require.True(t, ids[1].Less(ids[2]))
	require.True(t, ids[0].Less(ids[2]))
}

func TestAttachmentIdString(t *testing.T) {
	id := AttachmentId{setID: 7, serial: 9}
	assert.Contains(t, id.String(), "set:7")
	assert.Contains(t, id.String(), "serial:9")
	assert.Contains(t, id.String(), "event")

	id.origin = originDeadline
	assert.Contains(t, id.String(), "deadline")
}
