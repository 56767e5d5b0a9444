package internal

import (
	"context"
	"encoding/json"

	"github.com/jamesprial/go-lapse-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/types"
)

// Feed content typenames that carry media entries.
const (
	typenameMediaShared       = "FriendsFeedItemMediaSharedV1"
	typenameTaggedMediaShared = "FriendsFeedItemTaggedMediaSharedV2"
)

// ExecFunc runs one operation and returns its data object.
type ExecFunc func(ctx context.Context, op Operation) (json.RawMessage, error)

// FeedAssembler accumulates friends feed pages into a FriendsFeed.
//
// The server wraps around to the first page instead of ending the feed, so a
// page containing any node or snap id already seen is discarded whole and
// paging stops.
type FeedAssembler struct {
	limit int

	seenNodes map[string]bool
	seenSnaps map[string]bool
	profiles  map[string]*types.Profile

	feed *types.FriendsFeed
	done bool
}

// NewFeedAssembler creates an assembler. A limit of 0 means no cap.
func NewFeedAssembler(limit int) *FeedAssembler {
	return &FeedAssembler{
		limit:     limit,
		seenNodes: make(map[string]bool),
		seenSnaps: make(map[string]bool),
		profiles:  make(map[string]*types.Profile),
		feed:      &types.FriendsFeed{Nodes: []*types.FriendNode{}},
	}
}

type pendingNode struct {
	node  *types.FriendNode
	owner *profileNode
}

// AddPage folds one friendsFeedItems page into the feed. It returns the nodes
// accepted from this page, the cursor for the next page and whether paging
// should continue.
func (a *FeedAssembler) AddPage(data json.RawMessage) ([]*types.FriendNode, string, bool, error) {
	if a.done {
		return nil, "", false, nil
	}

	var resp struct {
		Items *feedConnection `json:"friendsFeedItems"`
	}
	if err := decode("FriendsFeedItemsGraphQLQuery", data, &resp); err != nil {
		return nil, "", false, err
	}
	if resp.Items == nil || len(resp.Items.Edges) == 0 {
		a.done = true
		return nil, "", false, nil
	}

	pending := make([]pendingNode, 0, len(resp.Items.Edges))
	for i := range resp.Items.Edges {
		item := &resp.Items.Edges[i].Node
		node, ok, err := a.parseItem(item)
		if err != nil {
			return nil, "", false, err
		}
		if ok {
			pending = append(pending, pendingNode{node: node, owner: item.User})
		}
	}

	if a.repeats(resp.Items.Edges, pending) {
		a.done = true
		return nil, "", false, nil
	}

	accepted := make([]*types.FriendNode, 0, len(pending))
	for i := range resp.Items.Edges {
		a.seenNodes[resp.Items.Edges[i].Node.ID] = true
	}
	for _, p := range pending {
		if a.limit > 0 && len(a.feed.Nodes) >= a.limit {
			a.done = true
			break
		}
		profile, err := a.profile(p.owner)
		if err != nil {
			return nil, "", false, err
		}
		p.node.Profile = profile
		for _, snap := range p.node.Entries {
			a.seenSnaps[snap.ID] = true
		}
		profile.Media = append(profile.Media, p.node.Entries...)
		a.feed.Nodes = append(a.feed.Nodes, p.node)
		accepted = append(accepted, p.node)
	}
	if a.limit > 0 && len(a.feed.Nodes) >= a.limit {
		a.done = true
	}

	pi := resp.Items.PageInfo
	if pi == nil || pi.EndCursor == nil || *pi.EndCursor == "" {
		a.done = true
	}
	if a.done {
		return accepted, "", false, nil
	}
	return accepted, *pi.EndCursor, true, nil
}

// Feed returns the feed assembled so far.
func (a *FeedAssembler) Feed() *types.FriendsFeed {
	return a.feed
}

// Done reports whether paging has stopped.
func (a *FeedAssembler) Done() bool {
	return a.done
}

func (a *FeedAssembler) repeats(edges []feedEdge, pending []pendingNode) bool {
	for i := range edges {
		if a.seenNodes[edges[i].Node.ID] {
			return true
		}
	}
	for _, p := range pending {
		for _, snap := range p.node.Entries {
			if a.seenSnaps[snap.ID] {
				return true
			}
		}
	}
	return false
}

// parseItem maps a feed item. ok is false for items without media entries
// such as status updates.
func (a *FeedAssembler) parseItem(item *feedItemNode) (*types.FriendNode, bool, error) {
	if item.Content == nil {
		return nil, false, nil
	}

	var entries []feedEntryNode
	switch item.Content.Typename {
	case typenameMediaShared:
		entries = item.Content.Entries
	case typenameTaggedMediaShared:
		if item.Content.SharedMedia != nil {
			entries = item.Content.SharedMedia.Entries
		}
	default:
		return nil, false, nil
	}
	if item.User == nil {
		return nil, false, &errors.ParseError{Operation: "FriendsFeedItemsGraphQLQuery", Message: "feed item " + item.ID + " has no user"}
	}

	ts, err := requiredTime("timestamp", item.Timestamp)
	if err != nil {
		return nil, false, err
	}

	node := &types.FriendNode{ID: item.ID, Timestamp: ts, Entries: make([]*types.Snap, 0, len(entries))}
	for i := range entries {
		snap, err := snapFromEntry(&entries[i])
		if err != nil {
			return nil, false, err
		}
		node.Entries = append(node.Entries, snap)
	}
	return node, true, nil
}

func (a *FeedAssembler) profile(n *profileNode) (*types.Profile, error) {
	if p, ok := a.profiles[n.ID]; ok {
		return p, nil
	}
	p, err := profileFromNode(n)
	if err != nil {
		return nil, err
	}
	if p.UserID != "" {
		a.profiles[p.UserID] = p
	}
	return p, nil
}

// CollectFeed pages the friends feed through exec until the assembler stops.
func CollectFeed(ctx context.Context, exec ExecFunc, req types.FriendsFeedRequest) (*types.FriendsFeed, error) {
	pageSize := orDefault(req.PageSize, DefaultFeedPageSize)
	assembler := NewFeedAssembler(req.Limit)

	cursor := ""
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := exec(ctx, FriendsFeed(cursor, pageSize))
		if err != nil {
			return nil, err
		}
		_, next, more, err := assembler.AddPage(data)
		if err != nil {
			return nil, err
		}
		if !more {
			return assembler.Feed(), nil
		}
		cursor = next
	}
}
