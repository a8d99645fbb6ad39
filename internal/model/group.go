package model

import "time"

// Group is a named subdivision of an Instance holding Resources. It cannot
// exist without a valid owning Instance; its name is unique within that
// Instance.
type Group struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	OwnerID    string    `json:"owner_id"`
	InstanceID string    `json:"instance_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// GroupDetail is a Group plus a bounded, recency-ordered projection of its
// resources.
type GroupDetail struct {
	Group
	Resources []ResourceSummary `json:"resources"`
}
