package model

import "time"

// EventType names a change to the inventory.
type EventType string

const (
	EventLoaded           EventType = "loaded"
	EventLoadedFromCache  EventType = "loaded-from-cache"
	EventRemoved          EventType = "removed"
	EventRemoveRolledBack EventType = "remove-rolled-back"
	EventCreated          EventType = "created"
	EventImagesAttached   EventType = "images-attached"
	EventUploadFailed     EventType = "upload-failed"
)

// InventoryEvent describes a change to the in-memory vehicle list or to a
// vehicle on the backend.
type InventoryEvent struct {
	Type      EventType `json:"type"`
	VehicleID int64     `json:"vehicleId,omitempty"`
	Count     int       `json:"count"`
	Error     string    `json:"error,omitempty"`
	Time      time.Time `json:"time"`
}
