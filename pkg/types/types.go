package types

import (
	"time"
)

// Media defines the common behavior for every media variant: Snap,
// DarkroomMedia and AlbumMedia.
type Media interface {
	GetID() string
}

// ReactableMedia is media that accepts reactions and comments through the
// client's AddReaction, RemoveReaction and SendComment methods.
type ReactableMedia interface {
	Media
	Reactable() bool
}

// ProfileMusic is the song pinned to a profile.
type ProfileMusic struct {
	Artist     string  `json:"artist"`
	ArtworkURL string  `json:"artwork_url"`
	Duration   float64 `json:"duration"`
	SongTitle  string  `json:"song_title"`
	SongURL    string  `json:"song_url"`
}

// ProfileTag is a short label shown on a profile, such as a school.
type ProfileTag struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Profile is a Lapse user as returned by profile, feed and search queries.
//
// Friends may contain the Profile itself when the server lists a user as
// their own friend; walkers must track visited ids.
type Profile struct {
	UserID           string        `json:"user_id"`
	Username         string        `json:"username"`
	DisplayName      string        `json:"display_name"`
	ProfilePhotoName string        `json:"profile_photo_name"`
	Bio              string        `json:"bio"`
	Emojis           []string      `json:"emojis"`
	IsFriends        bool          `json:"is_friends"`
	IsBlocked        bool          `json:"is_blocked"`
	BlockedMe        bool          `json:"blocked_me"`
	// Kudos is -1 when the server did not include a kudos count.
	Kudos        int           `json:"kudos"`
	Tags         []ProfileTag  `json:"tags"`
	ProfileMusic *ProfileMusic `json:"profile_music"`
	JoinedAt     *time.Time    `json:"joined_at,omitempty"`

	Friends []*Profile `json:"-"`
	Albums  []*Album   `json:"albums,omitempty"`
	Media   []*Snap    `json:"media,omitempty"`
}

// GetID returns the profile's user id.
func (p *Profile) GetID() string {
	return p.UserID
}

// Snap is a published feed media entry.
type Snap struct {
	ID         string    `json:"id"`
	Seen       bool      `json:"seen"`
	TakenAt    time.Time `json:"taken_at"`
	DevelopsAt time.Time `json:"develops_at"`
	FilteredID string    `json:"filtered_id,omitempty"`
	OriginalID string    `json:"original_id,omitempty"`
	// TakenByID is the capturing profile's user id, when present.
	TakenByID string `json:"taken_by_id,omitempty"`
}

// GetID returns the snap's media id.
func (s *Snap) GetID() string { return s.ID }

// Reactable marks Snap as ReactableMedia.
func (s *Snap) Reactable() bool { return true }

// DarkroomMedia is an uploaded photo that has not yet been reviewed.
type DarkroomMedia struct {
	ID         string    `json:"id"`
	TakenAt    time.Time `json:"taken_at"`
	DevelopsAt time.Time `json:"develops_at"`
	FilteredID string    `json:"filtered_id,omitempty"`
	OriginalID string    `json:"original_id,omitempty"`
}

// GetID returns the darkroom media id.
func (d *DarkroomMedia) GetID() string { return d.ID }

// Developed reports whether now has reached the develop deadline. The
// boundary is inclusive.
func (d *DarkroomMedia) Developed(now time.Time) bool {
	return !now.Before(d.DevelopsAt)
}

// Review returns a partition that routes this media to a review basket.
func (d *DarkroomMedia) Review(reviewedAt time.Time, tags ...string) ReviewMediaPartition {
	return ReviewMediaPartition{MediaID: d.ID, ReviewedAt: reviewedAt, Tags: tags}
}

// AlbumMedia is a media item that belongs to an album.
type AlbumMedia struct {
	ID         string    `json:"id"`
	AddedAt    time.Time `json:"added_at"`
	TakenAt    time.Time `json:"taken_at"`
	CapturerID string    `json:"capturer_id"`
}

// GetID returns the album media id.
func (a *AlbumMedia) GetID() string { return a.ID }

// Reactable marks AlbumMedia as ReactableMedia.
func (a *AlbumMedia) Reactable() bool { return true }

// Album is an ordered collection of AlbumMedia.
type Album struct {
	AlbumID    string        `json:"album_id"`
	Name       string        `json:"name,omitempty"`
	Visibility string        `json:"visibility,omitempty"`
	CreatedAt  *time.Time    `json:"created_at,omitempty"`
	UpdatedAt  *time.Time    `json:"updated_at,omitempty"`
	OwnerID    string        `json:"owner_id,omitempty"`
	TotalCount int           `json:"total_count"`
	Media      []*AlbumMedia `json:"media"`
}

// FriendNode binds one profile to the snaps it contributed to a feed window.
type FriendNode struct {
	ID        string    `json:"id"`
	Profile   *Profile  `json:"profile"`
	Timestamp time.Time `json:"timestamp"`
	Entries   []*Snap   `json:"entries"`
}

// FriendsFeed is the ordered result of paging the friends feed.
type FriendsFeed struct {
	Nodes []*FriendNode `json:"nodes"`
}

// Profiles returns the distinct profiles in feed order.
func (f *FriendsFeed) Profiles() []*Profile {
	seen := make(map[*Profile]bool)
	var out []*Profile
	for _, n := range f.Nodes {
		if n.Profile == nil || seen[n.Profile] {
			continue
		}
		seen[n.Profile] = true
		out = append(out, n.Profile)
	}
	return out
}

// SearchUser is the profile projection returned by user search. Use
// Client.ProfileFromSearch to fetch the full Profile.
type SearchUser struct {
	UserID           string `json:"user_id"`
	Username         string `json:"username"`
	DisplayName      string `json:"display_name"`
	ProfilePhotoName string `json:"profile_photo_name"`
	FriendStatus     string `json:"friend_status"`
	BlockedMe        bool   `json:"blocked_me"`
	IsBlocked        bool   `json:"is_blocked"`
}

// ReviewMediaPartition routes one darkroom item to a review basket. It is
// only ever sent to the server.
type ReviewMediaPartition struct {
	MediaID    string    `validate:"required"`
	ReviewedAt time.Time // zero means now
	Tags       []string
}
