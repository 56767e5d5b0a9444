package internal

import (
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/types"
)

// FriendGraph provides utility methods for walking the friend relationships
// hanging off a set of profiles. Friend lists may be cyclic (a profile can be
// its own friend), so every walk tracks visited user ids.
type FriendGraph struct {
	Roots []*types.Profile
}

// NewFriendGraph creates a new FriendGraph rooted at the given profiles.
func NewFriendGraph(roots ...*types.Profile) *FriendGraph {
	return &FriendGraph{Roots: roots}
}

// Walk applies fn to every reachable profile once, depth first, with its
// distance from the nearest root. Returning false from fn stops the walk.
func (g *FriendGraph) Walk(fn func(p *types.Profile, depth int) bool) {
	visited := make(map[string]bool)
	var walk func(profiles []*types.Profile, depth int) bool
	walk = func(profiles []*types.Profile, depth int) bool {
		for _, p := range profiles {
			if p == nil || visited[p.UserID] {
				continue
			}
			visited[p.UserID] = true
			if !fn(p, depth) {
				return false
			}
			if len(p.Friends) > 0 && !walk(p.Friends, depth+1) {
				return false
			}
		}
		return true
	}
	walk(g.Roots, 0)
}

// Flatten returns all reachable profiles, each once.
func (g *FriendGraph) Flatten() []*types.Profile {
	var result []*types.Profile
	g.Walk(func(p *types.Profile, _ int) bool {
		result = append(result, p)
		return true
	})
	return result
}

// Filter returns reachable profiles that match the given filter function.
func (g *FriendGraph) Filter(filterFunc func(*types.Profile) bool) []*types.Profile {
	var result []*types.Profile
	g.Walk(func(p *types.Profile, _ int) bool {
		if filterFunc(p) {
			result = append(result, p)
		}
		return true
	})
	return result
}

// Find returns the first reachable profile that matches the given condition.
func (g *FriendGraph) Find(condition func(*types.Profile) bool) *types.Profile {
	var found *types.Profile
	g.Walk(func(p *types.Profile, _ int) bool {
		if condition(p) {
			found = p
			return false
		}
		return true
	})
	return found
}

// GetByID returns a profile by its user id.
func (g *FriendGraph) GetByID(userID string) *types.Profile {
	return g.Find(func(p *types.Profile) bool {
		return p.UserID == userID
	})
}

// GetByUsername returns a profile by its username.
func (g *FriendGraph) GetByUsername(username string) *types.Profile {
	return g.Find(func(p *types.Profile) bool {
		return p.Username == username
	})
}

// Friends returns the profiles marked as friends of the viewer.
func (g *FriendGraph) Friends() []*types.Profile {
	return g.Filter(func(p *types.Profile) bool {
		return p.IsFriends
	})
}

// GetDepth returns the greatest distance from a root to a reachable profile.
func (g *FriendGraph) GetDepth() int {
	maxDepth := 0
	g.Walk(func(_ *types.Profile, depth int) bool {
		if depth > maxDepth {
			maxDepth = depth
		}
		return true
	})
	return maxDepth
}

// Count returns the number of distinct reachable profiles.
func (g *FriendGraph) Count() int {
	return len(g.Flatten())
}
