package helpers

import (
	"fmt"
	"strings"
)

// ErrorKind names the error family a malformed payload must produce
type ErrorKind int

const (
	// ErrNone means the payload is odd but must parse
	ErrNone ErrorKind = iota
	// ErrParse expects a *errors.ParseError
	ErrParse
	// ErrTime expects a *errors.TimeFormatError
	ErrTime
	// ErrIdentity expects a *errors.MediaIdentityError
	ErrIdentity
)

// MalformedCase is one adversarial payload and the error family it must map to
type MalformedCase struct {
	Name string
	Data string
	Want ErrorKind
}

// JSONGenerator produces malformed journal API payloads
type JSONGenerator struct{}

// NewJSONGenerator creates a new JSON generator
func NewJSONGenerator() *JSONGenerator {
	return &JSONGenerator{}
}

func iso(s string) string {
	return fmt.Sprintf(`{"isoString":%q}`, s)
}

const (
	goodTime  = "2024-03-15T12:00:00.000Z"
	goodMedia = `{"content":{"filtered":"m1/filtered_0"},"takenAt":` + `{"isoString":"2024-03-15T12:00:00.000Z"}` + `,"developsAt":` + `{"isoString":"2024-03-15T13:00:00.000Z"}` + `}`
)

// GenerateMalformedSnaps returns feed entry nodes for Parser.ParseSnapNode
func (g *JSONGenerator) GenerateMalformedSnaps() []MalformedCase {
	return []MalformedCase{
		{"empty input", ``, ErrParse},
		{"null", `null`, ErrParse},
		{"array instead of object", `[]`, ErrParse},
		{"truncated", `{"id":"e1","media":{"content":`, ErrParse},
		{"seen is a string", `{"id":"e1","seen":"yes","media":` + goodMedia + `}`, ErrParse},
		{"isoString is a number", `{"media":{"content":{"filtered":"m1/filtered_0"},"takenAt":{"isoString":12345}}}`, ErrParse},
		{"no media", `{"id":"e1"}`, ErrIdentity},
		{"null media", `{"id":"e1","media":null}`, ErrIdentity},
		{"null content paths", `{"media":{"content":{"filtered":null,"original":null}}}`, ErrIdentity},
		{"only the delimiter", `{"media":{"content":{"filtered":"/filtered_0"}}}`, ErrIdentity},
		{"missing takenAt", `{"media":{"content":{"filtered":"m1/filtered_0"},"developsAt":` + iso(goodTime) + `}}`, ErrTime},
		{"null isoString", `{"media":{"content":{"filtered":"m1/filtered_0"},"takenAt":{"isoString":null},"developsAt":` + iso(goodTime) + `}}`, ErrTime},
		{"garbage takenAt", `{"media":{"content":{"filtered":"m1/filtered_0"},"takenAt":` + iso("yesterday") + `,"developsAt":` + iso(goodTime) + `}}`, ErrTime},
		{"bare Z", `{"media":{"content":{"filtered":"m1/filtered_0"},"takenAt":` + iso("Z") + `,"developsAt":` + iso(goodTime) + `}}`, ErrTime},
		{"month 13", `{"media":{"content":{"filtered":"m1/filtered_0"},"takenAt":` + iso("2024-13-01T00:00:00.000Z") + `,"developsAt":` + iso(goodTime) + `}}`, ErrTime},
		{"missing developsAt", `{"media":{"content":{"filtered":"m1/filtered_0"},"takenAt":` + iso(goodTime) + `}}`, ErrTime},
		{"unknown fields", `{"id":"e1","extra":{"deep":[1,2,3]},"media":` + goodMedia + `}`, ErrNone},
		{"original only", `{"media":{"content":{"original":"m1/filtered_0"},"takenAt":` + iso(goodTime) + `,"developsAt":` + iso(goodTime) + `}}`, ErrNone},
		{"minute precision", `{"media":{"content":{"filtered":"m1/filtered_0"},"takenAt":` + iso("2024-03-15T12:00Z") + `,"developsAt":` + iso("2024-03-15") + `}}`, ErrNone},
	}
}

// GenerateMalformedProfiles returns raw profile nodes for Parser.ParseProfileNode
func (g *JSONGenerator) GenerateMalformedProfiles() []MalformedCase {
	return []MalformedCase{
		{"null", `null`, ErrParse},
		{"string", `"alice"`, ErrParse},
		{"id is a number", `{"id":42,"username":"alice"}`, ErrParse},
		{"emojis is a string", `{"id":"u1","emojis":"smile"}`, ErrParse},
		{"kudos count is a string", `{"id":"u1","kudos":{"totalCount":"many"}}`, ErrParse},
		{"tags is an object", `{"id":"u1","tags":{"type":"x"}}`, ErrParse},
		{"bad joinedAt", `{"id":"u1","joinedAt":` + iso("31/10/2023") + `}`, ErrTime},
		{"empty object", `{}`, ErrNone},
		{"all nulls", `{"id":"u1","displayName":null,"bio":null,"emojis":null,"kudos":null,"music":null,"joinedAt":null}`, ErrNone},
		{"huge bio", fmt.Sprintf(`{"id":"u1","bio":%q}`, strings.Repeat("x", 1<<20)), ErrNone},
	}
}

// GenerateMalformedDarkroom returns data objects for Parser.ParseDarkroom
func (g *JSONGenerator) GenerateMalformedDarkroom() []MalformedCase {
	edge := func(node string) string {
		return `{"darkroom":{"edges":[{"cursor":"c1","node":` + node + `}],"pageInfo":{"endCursor":"c1","hasNextPage":true}}}`
	}
	return []MalformedCase{
		{"edges is a string", `{"darkroom":{"edges":"none"}}`, ErrParse},
		{"node is an array", edge(`[]`), ErrParse},
		{"no identity", edge(`{"takenAt":`+iso(goodTime)+`,"developsAt":`+iso(goodTime)+`}`), ErrIdentity},
		{"missing developsAt", edge(`{"id":"d1","takenAt":`+iso(goodTime)+`}`), ErrTime},
		{"garbage developsAt", edge(`{"id":"d1","takenAt":`+iso(goodTime)+`,"developsAt":`+iso("soon")+`}`), ErrTime},
		{"null darkroom", `{"darkroom":null}`, ErrNone},
		{"empty edges", `{"darkroom":{"edges":[],"pageInfo":null}}`, ErrNone},
	}
}

// GenerateMalformedAlbums returns data objects for Parser.ParseAlbum
func (g *JSONGenerator) GenerateMalformedAlbums() []MalformedCase {
	album := func(media string) string {
		return `{"album":{"id":"a1","name":"Trip","media":` + media + `}}`
	}
	return []MalformedCase{
		{"album missing", `{}`, ErrParse},
		{"totalCount is a string", album(`{"totalCount":"3","edges":[]}`), ErrParse},
		{"null media node", album(`{"edges":[{"node":{"addedAt":`+iso(goodTime)+`,"media":null}}]}`), ErrIdentity},
		{"missing addedAt", album(`{"edges":[{"node":{"media":{"id":"m1","takenAt":`+iso(goodTime)+`}}}]}`), ErrTime},
		{"bad createdAt", `{"album":{"id":"a1","createdAt":` + iso("never") + `}}`, ErrTime},
		{"no media connection", `{"album":{"id":"a1"}}`, ErrNone},
	}
}

// GenerateMalformedFeedPages returns friendsFeedItems pages
func (g *JSONGenerator) GenerateMalformedFeedPages() []MalformedCase {
	page := func(node string) string {
		return `{"friendsFeedItems":{"edges":[{"cursor":"c1","node":` + node + `}],"pageInfo":{"endCursor":null}}}`
	}
	shared := func(user, ts, entries string) string {
		return `{"id":"n1","content":{"__typename":"FriendsFeedItemMediaSharedV1","entries":` + entries + `}` + user + ts + `}`
	}
	const user = `,"user":{"id":"u1","username":"alice"}`
	ts := `,"timestamp":` + iso(goodTime)
	return []MalformedCase{
		{"edges is a number", `{"friendsFeedItems":{"edges":7}}`, ErrParse},
		{"media item without user", page(shared("", ts, `[]`)), ErrParse},
		{"media item without timestamp", page(shared(user, "", `[]`)), ErrTime},
		{"entry without media", page(shared(user, ts, `[{"id":"e1","seen":false}]`)), ErrIdentity},
		{"unknown typename", page(`{"id":"n1","content":{"__typename":"FriendsFeedItemSomethingNewV9"}}`), ErrNone},
		{"null content", page(`{"id":"n1","content":null}`), ErrNone},
		{"null feed", `{"friendsFeedItems":null}`, ErrNone},
	}
}

// GenerateDeeplyNested wraps a value in depth JSON arrays
func (g *JSONGenerator) GenerateDeeplyNested(depth int) string {
	return strings.Repeat("[", depth) + strings.Repeat("]", depth)
}

// GenerateLargeSearchResult creates a searchUsers result with size users
func (g *JSONGenerator) GenerateLargeSearchResult(size int) string {
	var b strings.Builder
	b.WriteString(`{"searchUsers":{"edges":[`)
	for i := 0; i < size; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, `{"node":{"id":"u%d","username":"user%d"}}`, i, i)
	}
	b.WriteString(`]}}`)
	return b.String()
}

// GenerateMalformedRefreshResponses returns refresh endpoint bodies served
// with status 200 that must all fail the exchange
func (g *JSONGenerator) GenerateMalformedRefreshResponses() []string {
	return []string{
		``,
		`null`,
		`{}`,
		`{"accessToken":""}`,
		`{"accessToken":null}`,
		`{"accessToken":123}`,
		`{"access_token":"snake-case"}`,
		`["token"]`,
		`{"accessToken":"abc"`,
		`<html>Service Unavailable</html>`,
	}
}

// GenerateMalformedJWTs returns access tokens that carry no usable exp claim
func (g *JSONGenerator) GenerateMalformedJWTs() []string {
	return []string{
		"",
		"not-a-jwt",
		"a.b",
		"a.b.c.d",
		"eyJhbGciOiJIUzI1NiJ9.!!!.c2ln",
		"eyJhbGciOiJIUzI1NiJ9.e30.c2ln",                 // {} has no exp
		"eyJhbGciOiJIUzI1NiJ9.eyJleHAiOiJzb29uIn0.c2ln", // exp is a string
		"eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ1MSJ9.c2ln",     // sub only
	}
}
