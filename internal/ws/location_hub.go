package ws

import (
	"sync"
	"time"
)

// LocationMarker is the latest reported courier position for an order in
// flight. Customer and admin apps subscribe to these.
type LocationMarker struct {
	OrderID   uint    `json:"order_id"`
	CourierID uint    `json:"courier_id"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	UpdatedAt int64   `json:"updated_at"`
}

// LocationHub streams courier positions keyed by order. Couriers push their
// location; everyone connected receives updates.
type LocationHub struct {
	*Hub
	mu      sync.RWMutex
	markers map[uint]LocationMarker
}

func NewLocationHub() *LocationHub {
	return &LocationHub{
		Hub:     NewHub(),
		markers: make(map[uint]LocationMarker),
	}
}

// UpdateLocation stores the latest marker for the order and broadcasts it.
func (h *LocationHub) UpdateLocation(orderID, courierID uint, lat, lng float64) {
	marker := LocationMarker{
		OrderID:   orderID,
		CourierID: courierID,
		Lat:       lat,
		Lng:       lng,
		UpdatedAt: time.Now().Unix(),
	}
	h.mu.Lock()
	h.markers[orderID] = marker
	h.mu.Unlock()
	h.BroadcastAll(marker)
}

// DropOrder removes the marker once the order is delivered.
func (h *LocationHub) DropOrder(orderID uint) {
	h.mu.Lock()
	delete(h.markers, orderID)
	h.mu.Unlock()
}

// Markers returns the current markers for initial load.
func (h *LocationHub) Markers() []LocationMarker {
	h.mu.RLock()
	defer h.mu.RUnlock()
	list := make([]LocationMarker, 0, len(h.markers))
	for _, m := range h.markers {
		list = append(list, m)
	}
	return list
}
