package lapse

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/jamesprial/go-lapse-api-wrapper/internal"
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/types"
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/validation"
)

// FriendsFeedIterator pages through the friends feed one node at a time.
type FriendsFeedIterator struct {
	inner *internal.FeedIterator
	err   error
}

// NewFriendsFeedIterator creates a new iterator over the friends feed. Pages
// are fetched lazily as Next is called; paging stops under the same
// conditions as GetFriendsFeed.
func (c *Client) NewFriendsFeedIterator(ctx context.Context, req *types.FriendsFeedRequest) *FriendsFeedIterator {
	if req == nil {
		req = &types.FriendsFeedRequest{}
	}
	it := &FriendsFeedIterator{inner: internal.NewFeedIterator(ctx, c.exec, *req)}
	if err := validation.Struct(req); err != nil {
		it.err = err
	}
	return it
}

// HasNext returns true if there may be more nodes to iterate through.
func (it *FriendsFeedIterator) HasNext() bool {
	if it.err != nil {
		return false
	}
	return it.inner.HasNext()
}

// Next returns the next feed node. When the last page held nothing new it
// returns an error wrapping errors.ErrIteratorDone even though HasNext
// reported true.
func (it *FriendsFeedIterator) Next() (*types.FriendNode, error) {
	if it.err != nil {
		return nil, it.err
	}
	return it.inner.Next()
}

// Error returns any error encountered during iteration. Running out of
// pages is not an error.
func (it *FriendsFeedIterator) Error() error {
	if it.err != nil {
		return it.err
	}
	return it.inner.Err()
}

// Feed returns the nodes fetched so far as a FriendsFeed.
func (it *FriendsFeedIterator) Feed() *types.FriendsFeed {
	return it.inner.Feed()
}

// Collect fetches all remaining nodes up to a maximum (0 means no maximum).
func (it *FriendsFeedIterator) Collect(maxNodes int) ([]*types.FriendNode, error) {
	var nodes []*types.FriendNode
	for it.HasNext() && (maxNodes <= 0 || len(nodes) < maxNodes) {
		node, err := it.Next()
		if stderrors.Is(err, errors.ErrIteratorDone) {
			// the last page held nothing new
			break
		}
		if err != nil {
			return nodes, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// DarkroomIterator pages through the darkroom one media item at a time.
type DarkroomIterator struct {
	inner *internal.DarkroomIterator
	err   error
}

// NewDarkroomIterator creates a new iterator over the darkroom starting at
// req.After.
func (c *Client) NewDarkroomIterator(ctx context.Context, req *types.DarkroomRequest) *DarkroomIterator {
	if req == nil {
		req = &types.DarkroomRequest{}
	}
	it := &DarkroomIterator{inner: internal.NewDarkroomIterator(ctx, c.exec, *req)}
	if err := validation.Struct(req); err != nil {
		it.err = err
	}
	return it
}

// HasNext returns true if there may be more darkroom media.
func (it *DarkroomIterator) HasNext() bool {
	if it.err != nil {
		return false
	}
	return it.inner.HasNext()
}

// Next returns the next darkroom media item.
func (it *DarkroomIterator) Next() (*types.DarkroomMedia, error) {
	if it.err != nil {
		return nil, it.err
	}
	return it.inner.Next()
}

// Error returns any error encountered during iteration. Running out of
// pages is not an error.
func (it *DarkroomIterator) Error() error {
	if it.err != nil {
		return it.err
	}
	return it.inner.Err()
}

// Developed collects the remaining darkroom media whose deadline has passed
// at now.
func (it *DarkroomIterator) Developed(now time.Time) ([]*types.DarkroomMedia, error) {
	var developed []*types.DarkroomMedia
	for it.HasNext() {
		m, err := it.Next()
		if stderrors.Is(err, errors.ErrIteratorDone) {
			break
		}
		if err != nil {
			return developed, err
		}
		if m.Developed(now) {
			developed = append(developed, m)
		}
	}
	return developed, nil
}

// ProfileIterator traverses a friend graph one profile at a time, visiting
// each user id once.
type ProfileIterator struct {
	queue   []profileDepth
	visited map[string]bool
	options *TraversalOptions
}

type profileDepth struct {
	profile *types.Profile
	depth   int
}

// TraversalOptions provides options for friend graph traversal.
type TraversalOptions struct {
	MaxDepth   int                       // Maximum depth to traverse (0 = unlimited)
	FilterFunc func(*types.Profile) bool // Custom filter function
	Order      TraversalOrder            // Order of traversal
}

// TraversalOrder defines the order of graph traversal.
type TraversalOrder int

const (
	// DepthFirst traverses the graph depth-first (default).
	DepthFirst TraversalOrder = iota
	// BreadthFirst traverses the graph breadth-first.
	BreadthFirst
)

// NewProfileIterator creates a new iterator rooted at the given profiles.
func NewProfileIterator(roots []*types.Profile, opts *TraversalOptions) *ProfileIterator {
	if opts == nil {
		opts = &TraversalOptions{Order: DepthFirst}
	}

	it := &ProfileIterator{
		visited: make(map[string]bool),
		options: opts,
	}
	for _, p := range roots {
		if p != nil {
			it.queue = append(it.queue, profileDepth{profile: p})
		}
	}

	// Reverse for depth-first to maintain order
	if opts.Order == DepthFirst {
		for i, j := 0, len(it.queue)-1; i < j; i, j = i+1, j-1 {
			it.queue[i], it.queue[j] = it.queue[j], it.queue[i]
		}
	}
	return it
}

// HasNext returns true if there are more queued profiles. A queued profile
// may still be skipped by Next if it was visited or filtered out.
func (it *ProfileIterator) HasNext() bool {
	return len(it.queue) > 0
}

// Next returns the next profile in the traversal.
func (it *ProfileIterator) Next() (*types.Profile, error) {
	for len(it.queue) > 0 {
		var cur profileDepth
		if it.options.Order == BreadthFirst {
			cur = it.queue[0]
			it.queue = it.queue[1:]
		} else {
			cur = it.queue[len(it.queue)-1]
			it.queue = it.queue[:len(it.queue)-1]
		}

		if it.visited[cur.profile.UserID] {
			continue
		}
		it.visited[cur.profile.UserID] = true

		if it.options.MaxDepth == 0 || cur.depth < it.options.MaxDepth {
			friends := cur.profile.Friends
			if it.options.Order == BreadthFirst {
				for _, f := range friends {
					if f != nil {
						it.queue = append(it.queue, profileDepth{profile: f, depth: cur.depth + 1})
					}
				}
			} else {
				for i := len(friends) - 1; i >= 0; i-- {
					if friends[i] != nil {
						it.queue = append(it.queue, profileDepth{profile: friends[i], depth: cur.depth + 1})
					}
				}
			}
		}

		if it.options.FilterFunc != nil && !it.options.FilterFunc(cur.profile) {
			continue
		}
		return cur.profile, nil
	}

	return nil, &errors.StateError{Operation: "ProfileIterator.Next", Message: fmt.Sprintf("no more profiles available (%d visited)", len(it.visited))}
}
