package model

import (
	"fmt"
	"time"
)

// ResourceKind discriminates the three leaf content variants. All kind-specific
// behavior dispatches on this tag through exhaustive switches; never compare
// raw strings at call sites.
type ResourceKind string

const (
	KindImage    ResourceKind = "image"
	KindVideo    ResourceKind = "video"
	KindDocument ResourceKind = "document"
)

// Kinds lists every valid resource kind, in a stable order.
var Kinds = []ResourceKind{KindImage, KindVideo, KindDocument}

// ParseResourceKind validates a kind coming off the wire.
func ParseResourceKind(s string) (ResourceKind, error) {
	switch ResourceKind(s) {
	case KindImage:
		return KindImage, nil
	case KindVideo:
		return KindVideo, nil
	case KindDocument:
		return KindDocument, nil
	default:
		return "", fmt.Errorf("unknown resource kind %q", s)
	}
}

// StoragePrefix is the object-store key prefix for blobs of this kind.
func (k ResourceKind) StoragePrefix() string {
	switch k {
	case KindImage:
		return "images"
	case KindVideo:
		return "videos"
	case KindDocument:
		return "documents"
	default:
		return "misc"
	}
}

// BlobRef points at an externally stored binary payload. PublicID is the key
// the blob gateway knows the object by; URL is where clients fetch it.
type BlobRef struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// Resource is a leaf content item belonging to exactly one Group. Its blob
// reference is set atomically with record creation and never points at a
// deleted blob.
type Resource struct {
	ID        string       `json:"id"`
	Kind      ResourceKind `json:"kind"`
	Title     string       `json:"title"`
	OwnerID   string       `json:"owner_id"`
	GroupID   string       `json:"group_id"`
	Blob      BlobRef      `json:"blob"`
	CreatedAt time.Time    `json:"created_at"`
}

// ResourceSummary is the minimal display shape used in child projections.
type ResourceSummary struct {
	ID    string       `json:"id"`
	Kind  ResourceKind `json:"kind"`
	Title string       `json:"title"`
	Blob  BlobRef      `json:"blob"`
}

// ResourceWithOwner enriches a Resource with a minimal owner projection.
type ResourceWithOwner struct {
	Resource
	Owner UserSummary `json:"owner"`
}
