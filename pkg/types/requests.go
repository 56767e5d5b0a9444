package types

import "time"

// ProfileRequest describes a profile detail fetch. Zero limits fall back to the
// defaults used by the mobile app.
type ProfileRequest struct {
	UserID string `validate:"required"`

	// AlbumsLimit is the number of most recent albums to include (default 6).
	AlbumsLimit int `validate:"gte=0"`
	// FriendsLimit is the number of friends to include (default 10).
	FriendsLimit int `validate:"gte=0"`
	// MutualLimit is the number of mutual friends to request (default 3).
	MutualLimit int `validate:"gte=0"`
	// PopularLimit is the number of popular friends to request (default 10).
	PopularLimit int `validate:"gte=0"`
}

// FriendsFeedRequest describes a friends feed fetch.
type FriendsFeedRequest struct {
	// Limit caps the number of feed nodes returned. 0 means no cap; paging
	// then stops only when the server runs out of pages or repeats itself.
	Limit int `validate:"gte=0"`
	// PageSize is the number of nodes requested per page (default 10).
	PageSize int `validate:"gte=0,lte=100"`
}

// DarkroomRequest describes a page of the darkroom.
type DarkroomRequest struct {
	// First is the page size (default 30).
	First int    `validate:"gte=0,lte=100"`
	After string // cursor returned by a previous page
}

// DarkroomPage is one page of darkroom media.
type DarkroomPage struct {
	Media     []*DarkroomMedia
	EndCursor string // empty when there are no more pages
}

// ReviewRequest routes darkroom media to the archived, deleted and shared
// baskets in a single call. A media id may appear in at most one basket.
type ReviewRequest struct {
	Archived []ReviewMediaPartition `validate:"dive"`
	Deleted  []ReviewMediaPartition `validate:"dive"`
	Shared   []ReviewMediaPartition `validate:"dive"`
}

// UploadPhotoRequest describes a darkroom upload. Image is the HEIC/JPEG
// encoded payload; encoding is the caller's concern.
type UploadPhotoRequest struct {
	Image []byte `validate:"required"`

	// DevelopIn is how long until the photo develops.
	DevelopIn time.Duration `validate:"gte=0"`
	// FileUUID names the blob; empty generates one.
	FileUUID string `validate:"omitempty,lapse_file_uuid"`
	// TakenAt defaults to now.
	TakenAt time.Time

	// ColorTemperature defaults to 6000.
	ColorTemperature float64
	// ExposureValue defaults to 9.
	ExposureValue float64
	Flash         bool
	// Timezone defaults to the client's device timezone.
	Timezone string
}

// UploadInstantRequest describes an instant sent directly to one user.
type UploadInstantRequest struct {
	Image  []byte `validate:"required"`
	UserID string `validate:"required"`

	FileUUID  string `validate:"omitempty,lapse_file_uuid"`
	InstantID string // empty generates one
	Caption   string
	// TimeLimit is the viewing time in seconds (default 10).
	TimeLimit int `validate:"gte=0"`
}

// ImageRequest describes a CDN image URL.
type ImageRequest struct {
	ContentID string `validate:"required"`
	// Quality is the CDN compression quality, 1 to 100.
	Quality int `validate:"min=1,max=100"`
	// Height in pixels; 0 keeps the original height.
	Height int `validate:"gte=0"`
	// KeepAttribution keeps embedded attribution metadata.
	KeepAttribution bool
}

// CommentRequest describes a comment on a media item.
type CommentRequest struct {
	MediaID string `validate:"required"`
	Text    string `validate:"required"`
	// CommentID defaults to a random UUID.
	CommentID string
}
