package test_generators

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// FeedGenerator renders journal GraphQL payloads for tests. Output is
// deterministic for a given seed.
type FeedGenerator struct {
	rand      *rand.Rand
	usernames []string
	emojis    []string
	base      time.Time
	seq       int
}

// NewFeedGenerator creates a new payload generator
func NewFeedGenerator(seed uint64) *FeedGenerator {
	return &FeedGenerator{
		rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		usernames: []string{
			"alice", "bob", "carol", "dave", "erin", "frank",
			"grace", "heidi", "ivan", "judy", "mallory", "oscar",
		},
		emojis: []string{"📸", "🌅", "🎞️", "🌿", "🔥", "✨"},
		base:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// ISO renders t the way the journal service does.
func ISO(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

func (g *FeedGenerator) next() time.Time {
	g.seq++
	return g.base.Add(time.Duration(g.seq) * time.Minute)
}

// User renders a minimal user object.
func (g *FeedGenerator) User(userID, username string) string {
	return fmt.Sprintf(`{"id":%q,"username":%q,"displayName":%q,"profilePhotoName":"photos/%s"}`,
		userID, username, strings.ToUpper(username[:1])+username[1:], userID)
}

// Snap renders a feed entry whose media id and filtered content path derive
// from snapID.
func (g *FeedGenerator) Snap(snapID string) string {
	taken := g.next()
	return fmt.Sprintf(`{"id":"entry-%s","seen":false,"media":{"id":%q,"takenAt":{"isoString":%q},`+
		`"developsAt":{"isoString":%q},"timezone":"UTC","content":{"filtered":"%s/filtered_0","original":"%s/original"}}}`,
		snapID, snapID, ISO(taken), ISO(taken.Add(time.Hour)), snapID, snapID)
}

// MediaItem renders a FriendsFeedItemMediaSharedV1 edge.
func (g *FeedGenerator) MediaItem(nodeID, userID string, snapIDs ...string) string {
	entries := make([]string, 0, len(snapIDs))
	for _, id := range snapIDs {
		entries = append(entries, g.Snap(id))
	}
	return fmt.Sprintf(`{"cursor":"cur-%s","node":{"id":%q,"content":{"__typename":"FriendsFeedItemMediaSharedV1","entries":[%s]},`+
		`"user":%s,"timestamp":{"isoString":%q}}}`,
		nodeID, nodeID, strings.Join(entries, ","), g.User(userID, userID), ISO(g.next()))
}

// StatusItem renders a status update edge, which carries no media.
func (g *FeedGenerator) StatusItem(nodeID, userID string) string {
	return fmt.Sprintf(`{"cursor":"cur-%s","node":{"id":%q,"content":{"__typename":"FriendsFeedItemStatusUpdatedV1"},`+
		`"user":%s,"timestamp":{"isoString":%q}}}`, nodeID, nodeID, g.User(userID, userID), ISO(g.next()))
}

// FeedPage wraps edges in a friendsFeedItems connection. An empty cursor
// renders a null endCursor.
func (g *FeedGenerator) FeedPage(endCursor string, edges ...string) string {
	cursor := "null"
	if endCursor != "" {
		cursor = fmt.Sprintf("%q", endCursor)
	}
	return fmt.Sprintf(`{"friendsFeedItems":{"edges":[%s],"pageInfo":{"endCursor":%s,"hasPreviousPage":true}}}`,
		strings.Join(edges, ","), cursor)
}

// WrappingFeed renders pages of perPage media items spread across random
// users, followed by a repeat of the first page the way the server wraps
// around. Every page carries a non-null cursor.
func (g *FeedGenerator) WrappingFeed(pages, perPage int) []string {
	out := make([]string, 0, pages+1)
	for p := 0; p < pages; p++ {
		edges := make([]string, 0, perPage)
		for i := 0; i < perPage; i++ {
			n := p*perPage + i
			user := g.usernames[g.rand.IntN(len(g.usernames))]
			edges = append(edges, g.MediaItem(fmt.Sprintf("node-%d", n), user, fmt.Sprintf("snap-%d", n)))
		}
		out = append(out, g.FeedPage(fmt.Sprintf("page-%d", p+1), edges...))
	}
	if pages > 0 {
		out = append(out, out[0])
	}
	return out
}

// Profile renders a profile node. friendIDs are rendered as minimal friend
// profiles under the friends connection.
func (g *FeedGenerator) Profile(userID, username string, friendIDs ...string) string {
	friends := make([]string, 0, len(friendIDs))
	for _, id := range friendIDs {
		friends = append(friends, fmt.Sprintf(`{"cursor":"f-%s","node":{"id":%q,"username":%q,"friendStatus":"FRIENDS"}}`, id, id, id))
	}
	return fmt.Sprintf(`{"id":%q,"username":%q,"displayName":%q,"bio":"hello","profilePhotoName":"photos/%s",`+
		`"emojis":{"emojis":[%q]},"friendStatus":"FRIENDS","isBlocked":false,"blockedMe":false,`+
		`"joinedAt":{"isoString":%q},"kudos":{"emoji":"🔥","totalCount":%d},"tags":[{"type":"LOCATION","text":"Berlin"}],`+
		`"friends":{"totalCount":%d,"edges":[%s]},"albums":{"totalCount":0,"edges":[]}}`,
		userID, username, username, userID, g.emojis[g.rand.IntN(len(g.emojis))], ISO(g.base),
		g.rand.IntN(50), len(friendIDs), strings.Join(friends, ","))
}

// SearchResult renders data.searchUsers with one hit per username.
func (g *FeedGenerator) SearchResult(usernames ...string) string {
	edges := make([]string, 0, len(usernames))
	for _, u := range usernames {
		edges = append(edges, fmt.Sprintf(`{"node":{"id":"id-%s","username":%q,"displayName":%q,"friendStatus":"NONE"}}`, u, u, u))
	}
	return fmt.Sprintf(`{"searchUsers":{"edges":[%s],"pageInfo":{"hasNextPage":false}}}`, strings.Join(edges, ","))
}

// DarkroomPage renders data.darkroom. develops is the developsAt of every
// item; an empty endCursor marks the last page.
func (g *FeedGenerator) DarkroomPage(endCursor string, develops time.Time, ids ...string) string {
	edges := make([]string, 0, len(ids))
	for _, id := range ids {
		edges = append(edges, fmt.Sprintf(`{"cursor":"d-%s","node":{"id":%q,"takenAt":{"isoString":%q},`+
			`"developsAt":{"isoString":%q},"content":{"filtered":"%s/filtered_0"}}}`,
			id, id, ISO(g.next()), ISO(develops), id))
	}
	cursor, hasNext := "null", false
	if endCursor != "" {
		cursor, hasNext = fmt.Sprintf("%q", endCursor), true
	}
	return fmt.Sprintf(`{"darkroom":{"edges":[%s],"pageInfo":{"endCursor":%s,"hasNextPage":%t}}}`,
		strings.Join(edges, ","), cursor, hasNext)
}
