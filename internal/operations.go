package internal

import (
	"time"

	"github.com/jamesprial/go-lapse-api-wrapper/pkg/types"
)

// OperationKind is the GraphQL operation type, sent as x-apollo-operation-type.
type OperationKind string

const (
	KindQuery    OperationKind = "query"
	KindMutation OperationKind = "mutation"
)

// Operation is a fully rendered GraphQL request. Its JSON encoding is the
// request body the journal endpoint expects.
type Operation struct {
	Name      string         `json:"operationName"`
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`

	// ResultField is the top-level field under data that holds the result. For
	// mutations it holds the {success} envelope.
	ResultField string        `json:"-"`
	Kind        OperationKind `json:"-"`
}

// UploadDestination selects the blob path prefix for an upload URL.
type UploadDestination int

const (
	// DestinationDarkroom uploads to "<uuid>/filtered_0.heic".
	DestinationDarkroom UploadDestination = iota
	// DestinationInstant uploads to "instant/<uuid>.heic".
	DestinationInstant
)

// Defaults used by the iOS app when rendering variables.
const (
	DefaultAlbumsLimit      = 6
	DefaultFriendsLimit     = 10
	DefaultMutualLimit      = 3
	DefaultPopularLimit     = 10
	DefaultSearchFirst      = 10
	DefaultFeedPageSize     = 10
	DefaultAlbumMediaLast   = 10
	DefaultDarkroomFirst    = 30
	DefaultColorTemperature = 6000
	DefaultExposureValue    = 9
	DefaultInstantTimeLimit = 10
)

func mutation(name, inputType, field string, input map[string]any) Operation {
	return Operation{
		Name:        name,
		Query:       mutationDocument(name, inputType, field),
		Variables:   map[string]any{"input": input},
		ResultField: field,
		Kind:        KindMutation,
	}
}

func isoString(t time.Time) map[string]any {
	return map[string]any{"isoString": types.FormatISOTime(t)}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// nullable maps the empty cursor to JSON null.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// CurrentUser returns the query for the authenticated user's profile.
func CurrentUser() Operation {
	return Operation{
		Name:        "CurrentUserGraphQLQuery",
		Query:       currentUserQuery,
		Variables:   map[string]any{},
		ResultField: "user",
		Kind:        KindQuery,
	}
}

// ProfileDetails returns the profile detail query. Zero limits take the app defaults.
func ProfileDetails(req types.ProfileRequest) Operation {
	return Operation{
		Name:  "ProfileDetailsGraphQLQuery",
		Query: profileDetailsQuery,
		Variables: map[string]any{
			"albumsLimit":  orDefault(req.AlbumsLimit, DefaultAlbumsLimit),
			"friendsLimit": orDefault(req.FriendsLimit, DefaultFriendsLimit),
			"id":           req.UserID,
			"mutualLimit":  orDefault(req.MutualLimit, DefaultMutualLimit),
			"popularLimit": orDefault(req.PopularLimit, DefaultPopularLimit),
		},
		ResultField: "profile",
		Kind:        KindQuery,
	}
}

// SearchUsers returns the user search query.
func SearchUsers(term string, first int) Operation {
	return Operation{
		Name:  "SearchUsersGraphQLQuery",
		Query: searchUsersQuery,
		Variables: map[string]any{
			"first":      orDefault(first, DefaultSearchFirst),
			"searchTerm": term,
		},
		ResultField: "searchUsers",
		Kind:        KindQuery,
	}
}

// FriendsFeed returns one page of the friends feed. The feed is paged
// backwards: before is the previous page's end cursor, empty for the first page.
func FriendsFeed(before string, last int) Operation {
	return Operation{
		Name:  "FriendsFeedItemsGraphQLQuery",
		Query: friendsFeedQuery,
		Variables: map[string]any{
			"before": nullable(before),
			"last":   orDefault(last, DefaultFeedPageSize),
		},
		ResultField: "friendsFeedItems",
		Kind:        KindQuery,
	}
}

// AlbumMedia returns the query for the last media items of an album.
func AlbumMedia(albumID string, last int) Operation {
	return Operation{
		Name:  "AlbumMediaGraphQLQuery",
		Query: albumMediaQuery,
		Variables: map[string]any{
			"id":   albumID,
			"last": orDefault(last, DefaultAlbumMediaLast),
		},
		ResultField: "album",
		Kind:        KindQuery,
	}
}

// Darkroom returns one page of the caller's darkroom.
func Darkroom(first int, after string) Operation {
	return Operation{
		Name:  "DarkroomGraphQLQuery",
		Query: darkroomQuery,
		Variables: map[string]any{
			"first": orDefault(first, DefaultDarkroomFirst),
			"after": nullable(after),
		},
		ResultField: "darkroom",
		Kind:        KindQuery,
	}
}

// ImageUploadURL returns the query for a pre-signed blob upload URL.
func ImageUploadURL(fileUUID string, dest UploadDestination) Operation {
	filename := fileUUID + "/filtered_0.heic"
	if dest == DestinationInstant {
		filename = "instant/" + fileUUID + ".heic"
	}
	return Operation{
		Name:        "ImageUploadURLGraphQLQuery",
		Query:       imageUploadURLQuery,
		Variables:   map[string]any{"filename": filename},
		ResultField: "imageUploadURL",
		Kind:        KindQuery,
	}
}

// CreateMediaParams describes the darkroom registration of an uploaded blob.
type CreateMediaParams struct {
	FileUUID         string
	TakenAt          time.Time
	DevelopIn        time.Duration
	ColorTemperature float64
	ExposureValue    float64
	Flash            bool
	Timezone         string
}

// CreateMedia registers an uploaded blob in the darkroom. The develop
// deadline is now plus DevelopIn.
func CreateMedia(p CreateMediaParams, now time.Time) Operation {
	return mutation("CreateMediaGraphQLMutation", "CreateMediaInput", "createMedia", map[string]any{
		"content": []any{
			map[string]any{
				"filtered": p.FileUUID + "/filtered_0",
				"metadata": map[string]any{
					"colorTemperature": p.ColorTemperature,
					"didFlash":         p.Flash,
					"exposureValue":    p.ExposureValue,
				},
			},
		},
		"developsAt": isoString(now.Add(p.DevelopIn)),
		"faces":      []any{},
		"mediaId":    p.FileUUID,
		"takenAt":    isoString(p.TakenAt),
		"timezone":   p.Timezone,
	})
}

// SendInstantParams describes an instant addressed to one user.
type SendInstantParams struct {
	UserID    string
	FileUUID  string
	InstantID string
	Caption   string
	TimeLimit int
}

// SendInstants delivers an uploaded instant blob.
func SendInstants(p SendInstantParams) Operation {
	var caption any
	if p.Caption != "" {
		caption = p.Caption
	}
	return mutation("SendInstantsGraphQLMutation", "SendInstantsInput", "sendInstants", map[string]any{
		"instants": []any{
			map[string]any{
				"destination": map[string]any{
					"profile": map[string]any{"userId": p.UserID},
				},
				"filename": "instant/" + p.FileUUID,
				"id":       p.InstantID,
				"metadata": map[string]any{
					"caption": caption,
					"frame":   "ORIGINAL",
				},
				"timeLimit": orDefault(p.TimeLimit, DefaultInstantTimeLimit),
			},
		},
	})
}

// ReviewMedia routes darkroom media to the archived, deleted and shared
// baskets. Partitions without a review time are stamped with now.
func ReviewMedia(req types.ReviewRequest, now time.Time) Operation {
	render := func(parts []types.ReviewMediaPartition) []any {
		out := make([]any, 0, len(parts))
		for _, p := range parts {
			at := p.ReviewedAt
			if at.IsZero() {
				at = now
			}
			var tags any
			if p.Tags != nil {
				tags = p.Tags
			}
			out = append(out, map[string]any{
				"mediaId":    p.MediaID,
				"reviewedAt": isoString(at),
				"tags":       tags,
			})
		}
		return out
	}
	return mutation("ReviewMediaGraphQLMutation", "ReviewMediaInput", "reviewMedia", map[string]any{
		"archived": render(req.Archived),
		"deleted":  render(req.Deleted),
		"shared":   render(req.Shared),
	})
}

// CreateStatusUpdate posts a text status ("thought").
func CreateStatusUpdate(id, text string) Operation {
	return mutation("CreateStatusUpdateGraphQLMutation", "CreateStatusUpdateInput", "createStatusUpdate", map[string]any{
		"body": map[string]any{"text": text},
		"id":   id,
	})
}

// RemoveFriendsFeedItem removes a status update from the friends feed.
func RemoveFriendsFeedItem(id string, removedAt time.Time) Operation {
	return mutation("RemoveFriendsFeedItem", "RemoveFriendsFeedItemInput", "removeFriendsFeedItem", map[string]any{
		"id":        id,
		"removedAt": isoString(removedAt),
	})
}

// SendReaction adds an emoji reaction to a media item or status update.
func SendReaction(mediaID, reaction string) Operation {
	return mutation("SendReactionGraphQLMutation", "SendReactionInput", "sendReaction", map[string]any{
		"mediaId":  mediaID,
		"reaction": reaction,
	})
}

// DeleteReaction removes an emoji reaction.
func DeleteReaction(mediaID, reaction string) Operation {
	return mutation("DeleteReactionGraphQLMutation", "DeleteReactionInput", "deleteReaction", map[string]any{
		"mediaId":  mediaID,
		"reaction": reaction,
	})
}

// SendComment comments on a media item.
func SendComment(commentID, mediaID, text string) Operation {
	return mutation("SendCommentGraphQLMutation", "SendCommentInput", "sendComment", map[string]any{
		"id":      commentID,
		"mediaId": mediaID,
		"text":    text,
	})
}

// DeleteComment deletes a comment from a media item.
func DeleteComment(commentID, mediaID string) Operation {
	return mutation("DeleteCommentGraphQLMutation", "DeleteCommentInput", "deleteComment", map[string]any{
		"id":      commentID,
		"mediaId": mediaID,
	})
}

// SendKudos sends kudos to a profile.
func SendKudos(userID string) Operation {
	return mutation("SendKudosGraphQLMutation", "SendKudosInput", "sendKudos", map[string]any{"id": userID})
}

// BlockProfile blocks a profile.
func BlockProfile(userID string) Operation {
	return mutation("BlockProfileGraphQLMutation", "BlockProfileInput", "blockProfile", map[string]any{"blockedUserId": userID})
}

// UnblockProfile unblocks a profile.
func UnblockProfile(userID string) Operation {
	return mutation("UnblockProfileGraphQLMutation", "UnblockProfileInput", "unblockProfile", map[string]any{"unblockedUserId": userID})
}

func SaveBio(bio string) Operation {
	return mutation("SaveBioGraphQLMutation", "SaveBioInput", "saveBio", map[string]any{"bio": bio})
}

func SaveDisplayName(name string) Operation {
	return mutation("SaveDisplayNameGraphQLMutation", "SaveDisplayNameInput", "saveDisplayName", map[string]any{"displayName": name})
}

func SaveUsername(username string) Operation {
	return mutation("SaveUsernameGraphQLMutation", "SaveUsernameInput", "saveUsername", map[string]any{"username": username})
}

func SaveEmojis(emojis []string) Operation {
	if emojis == nil {
		emojis = []string{}
	}
	return mutation("SaveEmojisGraphQLMutation", "SaveEmojisInput", "saveEmojis", map[string]any{"emojis": emojis})
}

// SaveDOB saves a date of birth. dob is forwarded verbatim.
func SaveDOB(dob string, public bool) Operation {
	visibility := "PRIVATE"
	if public {
		visibility = "PUBLIC"
	}
	return mutation("SaveDOBGraphQLMutation", "SaveDateOfBirthInput", "saveDateOfBirth", map[string]any{
		"dob":        map[string]any{"date": dob},
		"visibility": visibility,
	})
}

// SaveMusic pins a song to the caller's profile.
func SaveMusic(m types.ProfileMusic) Operation {
	return mutation("SaveMusicGraphQLMutation", "SaveMusicInput", "saveMusic", map[string]any{
		"artist":     m.Artist,
		"artworkUrl": m.ArtworkURL,
		"duration":   m.Duration,
		"songTitle":  m.SongTitle,
		"songUrl":    m.SongURL,
	})
}
