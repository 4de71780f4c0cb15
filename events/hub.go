package events

import (
	"encoding/json"
	"sync"

	"github.com/L1quidL1ght/glimpse/models"
	"github.com/gorilla/websocket"
)

// Event types pushed to connected staff UIs.
const (
	EventGuestUpdate       = "guest_update"
	EventGuestDelete       = "guest_delete"
	EventReservationUpdate = "reservation_update"
	EventReservationDelete = "reservation_delete"
	EventStaffNotif        = "staff_notification"
	EventDashboardUpdate   = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected staff client so write workflows can nudge
// open UIs to refetch their read models.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastGuestUpdate -> a guest aggregate changed, detail and list
// read models are stale.
func BroadcastGuestUpdate(guestID uint) {
	broadcast(Message{
		Event: EventGuestUpdate,
		Data:  map[string]uint{"guest_id": guestID},
	})
}

func BroadcastGuestDelete(guestID uint) {
	broadcast(Message{
		Event: EventGuestDelete,
		Data:  map[string]uint{"guest_id": guestID},
	})
}

func BroadcastReservationUpdate(res models.Reservation) {
	broadcast(Message{
		Event: EventReservationUpdate,
		Data:  res,
	})
}

func BroadcastReservationDelete(reservationID uint) {
	broadcast(Message{
		Event: EventReservationDelete,
		Data:  map[string]uint{"reservation_id": reservationID},
	})
}

func BroadcastStaffNotification(message string) {
	broadcast(Message{
		Event: EventStaffNotif,
		Data:  message,
	})
}

func BroadcastMessage(msg Message) {
	broadcast(msg)
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	for conn := range hub.clients {
		// A dead client is cleaned up by its reader loop; skip here.
		_ = conn.WriteMessage(websocket.TextMessage, data)
	}
}
