package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationHubKeepsLatestPerOrder(t *testing.T) {
	hub := NewLocationHub()
	hub.UpdateLocation(10, 7, 6.9271, 79.8612)
	hub.UpdateLocation(10, 7, 6.9300, 79.8700)
	hub.UpdateLocation(11, 8, 7.2906, 80.6337)

	markers := hub.Markers()
	require.Len(t, markers, 2)
	byOrder := make(map[uint]LocationMarker, len(markers))
	for _, m := range markers {
		byOrder[m.OrderID] = m
	}
	assert.InDelta(t, 6.9300, byOrder[10].Lat, 1e-9)
	assert.Equal(t, uint(7), byOrder[10].CourierID)
}

func TestLocationHubDropOrder(t *testing.T) {
	hub := NewLocationHub()
	hub.UpdateLocation(10, 7, 6.9271, 79.8612)
	hub.DropOrder(10)
	assert.Empty(t, hub.Markers())
}

func TestHubBroadcastToCourier(t *testing.T) {
	hub := NewLocationHub()
	c1 := &Client{CourierID: 7, Send: make(chan []byte, 1)}
	c2 := &Client{CourierID: 8, Send: make(chan []byte, 1)}
	hub.Register(c1)
	hub.Register(c2)
	defer c1.Close()
	defer c2.Close()

	hub.BroadcastToCourier(7, map[string]string{"hello": "world"})
	require.Len(t, c1.Send, 1)
	assert.Empty(t, c2.Send)
}

// A broadcast racing a client disconnect must drop the message instead of
// writing to the closed channel.
func TestHubBroadcastAfterClose(t *testing.T) {
	hub := NewLocationHub()
	c1 := &Client{CourierID: 7, Send: make(chan []byte, 1)}
	c2 := &Client{CourierID: 7, Send: make(chan []byte, 1)}
	hub.Register(c1)
	hub.Register(c2)
	defer c2.Close()

	c1.Close()
	assert.NotPanics(t, func() {
		c1.trySend([]byte(`{"hello":"world"}`))
		hub.BroadcastToCourier(7, map[string]string{"hello": "world"})
		hub.BroadcastAll(map[string]string{"hello": "world"})
	})
	assert.Empty(t, c1.Send)
	assert.Len(t, c2.Send, 2)
}
