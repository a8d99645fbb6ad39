package model

import "time"

// Visibility is an Instance's access policy.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// Instance is the top-level content container. PasswordHash is present iff
// Visibility is private; the owner is immutable after creation.
type Instance struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Thumbnail    BlobRef    `json:"thumbnail"`
	Visibility   Visibility `json:"visibility"`
	PasswordHash string     `json:"-"`
	OwnerID      string     `json:"owner_id"`
	CreatedAt    time.Time  `json:"created_at"`
}

// GroupSummary is the minimal display shape for groups listed under an instance.
type GroupSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InstanceDetail is an Instance plus a bounded, recency-ordered projection of
// its immediate groups.
type InstanceDetail struct {
	Instance
	Groups []GroupSummary `json:"groups"`
}
