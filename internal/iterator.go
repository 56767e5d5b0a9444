package internal

import (
	"context"
	"fmt"

	"github.com/jamesprial/go-lapse-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/types"
)

// FeedIterator provides an iterator for paging through the friends feed one
// node at a time. Pages are fetched lazily.
type FeedIterator struct {
	ctx       context.Context
	exec      ExecFunc
	pageSize  int
	assembler *FeedAssembler
	buffer    []*types.FriendNode
	bufferIdx int
	before    string
	hasMore   bool
	err       error
}

// NewFeedIterator creates a new feed iterator.
func NewFeedIterator(ctx context.Context, exec ExecFunc, req types.FriendsFeedRequest) *FeedIterator {
	pageSize := orDefault(req.PageSize, DefaultFeedPageSize)
	if pageSize > 100 {
		pageSize = 100
	}
	return &FeedIterator{
		ctx:       ctx,
		exec:      exec,
		pageSize:  pageSize,
		assembler: NewFeedAssembler(req.Limit),
		hasMore:   true,
	}
}

// HasNext returns true if there may be more feed nodes to iterate through.
func (it *FeedIterator) HasNext() bool {
	if it.err != nil {
		return false
	}
	return it.bufferIdx < len(it.buffer) || it.hasMore
}

// Next returns the next feed node.
func (it *FeedIterator) Next() (*types.FriendNode, error) {
	if it.err != nil {
		return nil, it.err
	}

	for it.bufferIdx >= len(it.buffer) {
		if !it.hasMore {
			return nil, fmt.Errorf("no more feed nodes available: %w", errors.ErrIteratorDone)
		}

		data, err := it.exec(it.ctx, FriendsFeed(it.before, it.pageSize))
		if err != nil {
			it.err = err
			return nil, err
		}

		nodes, next, more, err := it.assembler.AddPage(data)
		if err != nil {
			it.err = err
			return nil, err
		}

		it.buffer = nodes
		it.bufferIdx = 0
		it.before = next
		it.hasMore = more
	}

	node := it.buffer[it.bufferIdx]
	it.bufferIdx++
	return node, nil
}

// Err returns the fetch or mapping error that stopped iteration, if any.
func (it *FeedIterator) Err() error {
	return it.err
}

// Feed returns everything the iterator has fetched so far, with profiles
// deduplicated across pages.
func (it *FeedIterator) Feed() *types.FriendsFeed {
	return it.assembler.Feed()
}

// DarkroomIterator pages through the darkroom with forward cursors.
type DarkroomIterator struct {
	ctx       context.Context
	exec      ExecFunc
	parser    *Parser
	first     int
	buffer    []*types.DarkroomMedia
	bufferIdx int
	after     string
	hasMore   bool
	err       error
}

// NewDarkroomIterator creates a new darkroom iterator starting at req.After.
func NewDarkroomIterator(ctx context.Context, exec ExecFunc, req types.DarkroomRequest) *DarkroomIterator {
	return &DarkroomIterator{
		ctx:     ctx,
		exec:    exec,
		parser:  NewParser(),
		first:   orDefault(req.First, DefaultDarkroomFirst),
		after:   req.After,
		hasMore: true,
	}
}

// HasNext returns true if there may be more darkroom media.
func (it *DarkroomIterator) HasNext() bool {
	if it.err != nil {
		return false
	}
	return it.bufferIdx < len(it.buffer) || it.hasMore
}

// Next returns the next darkroom media item.
func (it *DarkroomIterator) Next() (*types.DarkroomMedia, error) {
	if it.err != nil {
		return nil, it.err
	}

	for it.bufferIdx >= len(it.buffer) {
		if !it.hasMore {
			return nil, fmt.Errorf("no more darkroom media available: %w", errors.ErrIteratorDone)
		}

		data, err := it.exec(it.ctx, Darkroom(it.first, it.after))
		if err != nil {
			it.err = err
			return nil, err
		}
		page, err := it.parser.ParseDarkroom(data)
		if err != nil {
			it.err = err
			return nil, err
		}

		it.buffer = page.Media
		it.bufferIdx = 0
		it.after = page.EndCursor
		it.hasMore = page.EndCursor != "" && len(page.Media) > 0
	}

	m := it.buffer[it.bufferIdx]
	it.bufferIdx++
	return m, nil
}

// Err returns the fetch or mapping error that stopped iteration, if any.
func (it *DarkroomIterator) Err() error {
	return it.err
}
