package lapse

import (
	"github.com/jamesprial/go-lapse-api-wrapper/internal"
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/types"
)

// FriendGraph provides utility methods for walking the friend relationships
// of fetched profiles. Walks visit each user id once, so self-referencing and
// mutual friend lists terminate.
type FriendGraph interface {
	Flatten() []*types.Profile
	Filter(func(*types.Profile) bool) []*types.Profile
	Find(func(*types.Profile) bool) *types.Profile
	GetByID(string) *types.Profile
	GetByUsername(string) *types.Profile
	Friends() []*types.Profile
	GetDepth() int
	Count() int
	Walk(func(p *types.Profile, depth int) bool)
}

// NewFriendGraph creates a new FriendGraph rooted at the given profiles.
func NewFriendGraph(roots ...*types.Profile) FriendGraph {
	return internal.NewFriendGraph(roots...)
}
