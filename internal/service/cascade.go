package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"mediavault/internal/model"
	"mediavault/internal/repository"
	"mediavault/internal/storage"
)

// CascadeSummary reports what a subtree deletion removed. Counts come from the
// record store's own deletion results; BlobFailures counts blob-gateway
// deletions that failed and were skipped over (the blobs stay orphaned for
// later reconciliation).
type CascadeSummary struct {
	Groups       int                        `json:"groups"`
	Images       int                        `json:"images"`
	Videos       int                        `json:"videos"`
	Documents    int                        `json:"documents"`
	Comments     int                        `json:"comments"`
	BlobFailures map[model.ResourceKind]int `json:"blob_failures,omitempty"`
}

func (s *CascadeSummary) addKindCounts(counts map[model.ResourceKind]int) {
	for kind, n := range counts {
		switch kind {
		case model.KindImage:
			s.Images += n
		case model.KindVideo:
			s.Videos += n
		case model.KindDocument:
			s.Documents += n
		}
	}
}

// Cascader coordinates subtree deletion across the record store and the blob
// gateway. Blob deletions run first with bounded parallelism, each one
// best-effort and isolated; record rows are bulk-deleted only after the blob
// phase finishes. If the process dies mid-cascade, surviving records still
// point at existing blobs (orphan blobs are acceptable, dangling record
// references are not). There is no cancellation path once a cascade starts.
type Cascader struct {
	store     storage.Storage
	instances repository.InstanceRepository
	groups    repository.GroupRepository
	resources repository.ResourceRepository
	comments  repository.CommentRepository
	workers   int
	log       zerolog.Logger
}

// NewCascader constructs a Cascader. workers bounds concurrent blob deletions;
// values below 1 are clamped to 1.
func NewCascader(
	store storage.Storage,
	instances repository.InstanceRepository,
	groups repository.GroupRepository,
	resources repository.ResourceRepository,
	comments repository.CommentRepository,
	workers int,
	log zerolog.Logger,
) *Cascader {
	if workers < 1 {
		workers = 1
	}
	return &Cascader{
		store:     store,
		instances: instances,
		groups:    groups,
		resources: resources,
		comments:  comments,
		workers:   workers,
		log:       log,
	}
}

// DeleteInstance removes an instance and everything under it: resource blobs,
// resource rows, group rows, comment rows, then the instance row. Re-running
// over an already-emptied instance yields zero counts.
func (c *Cascader) DeleteInstance(ctx context.Context, inst *model.Instance) (*CascadeSummary, error) {
	summary := &CascadeSummary{}

	blobs, err := c.resources.ListBlobsByInstance(ctx, inst.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve descendant blobs: %w", err)
	}
	summary.BlobFailures = c.deleteBlobs(ctx, blobs)

	// The thumbnail is not a descendant resource; remove it best-effort without
	// counting it in the summary.
	if inst.Thumbnail.PublicID != "" {
		if err := c.store.Delete(ctx, inst.Thumbnail.PublicID); err != nil {
			c.log.Warn().Err(err).Str("instance_id", inst.ID).
				Str("key", inst.Thumbnail.PublicID).Msg("thumbnail blob delete failed")
		}
	}

	resourceCounts, err := c.resources.DeleteByInstance(ctx, inst.ID)
	if err != nil {
		return nil, fmt.Errorf("delete resource records: %w", err)
	}
	summary.addKindCounts(resourceCounts)

	commentCount, err := c.comments.DeleteByInstance(ctx, inst.ID)
	if err != nil {
		return nil, fmt.Errorf("delete comment records: %w", err)
	}
	summary.Comments = commentCount

	groupCount, err := c.groups.DeleteByInstance(ctx, inst.ID)
	if err != nil {
		return nil, fmt.Errorf("delete group records: %w", err)
	}
	summary.Groups = groupCount

	// A concurrent delete that got here first is benign: the subtree is gone
	// either way, so the summary stays accurate.
	if _, err := c.instances.Delete(ctx, inst.ID); err != nil {
		return nil, fmt.Errorf("delete instance record: %w", err)
	}

	c.log.Info().Str("instance_id", inst.ID).
		Int("groups", summary.Groups).
		Int("images", summary.Images).
		Int("videos", summary.Videos).
		Int("documents", summary.Documents).
		Int("comments", summary.Comments).
		Msg("instance cascade complete")

	return summary, nil
}

// DeleteGroup removes a group and its resources. Comments live on the
// instance, not the group, so none are touched.
func (c *Cascader) DeleteGroup(ctx context.Context, g *model.Group) (*CascadeSummary, error) {
	summary := &CascadeSummary{}

	blobs, err := c.resources.ListBlobsByGroup(ctx, g.ID)
	if err != nil {
		return nil, fmt.Errorf("resolve descendant blobs: %w", err)
	}
	summary.BlobFailures = c.deleteBlobs(ctx, blobs)

	resourceCounts, err := c.resources.DeleteByGroup(ctx, g.ID)
	if err != nil {
		return nil, fmt.Errorf("delete resource records: %w", err)
	}
	summary.addKindCounts(resourceCounts)

	deleted, err := c.groups.Delete(ctx, g.ID)
	if err != nil {
		return nil, fmt.Errorf("delete group record: %w", err)
	}
	if deleted {
		summary.Groups = 1
	}

	c.log.Info().Str("group_id", g.ID).
		Int("images", summary.Images).
		Int("videos", summary.Videos).
		Int("documents", summary.Documents).
		Msg("group cascade complete")

	return summary, nil
}

// deleteBlobs attempts every blob deletion with bounded parallelism and waits
// for all of them (the barrier before record deletion). Failures are logged
// and counted per kind, never propagated: the cascade must finish even if some
// blobs remain orphaned.
func (c *Cascader) deleteBlobs(ctx context.Context, blobs []repository.BlobPointer) map[model.ResourceKind]int {
	failures := make(map[model.ResourceKind]int)
	if len(blobs) == 0 {
		return failures
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, c.workers)
	)
	for _, blob := range blobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(p repository.BlobPointer) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := c.store.Delete(ctx, p.PublicID); err != nil {
				c.log.Warn().Err(err).
					Str("kind", string(p.Kind)).
					Str("key", p.PublicID).
					Msg("blob delete failed")
				mu.Lock()
				failures[p.Kind]++
				mu.Unlock()
			}
		}(blob)
	}
	wg.Wait()

	return failures
}
