package internal

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jamesprial/go-lapse-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/types"
)

// mediaIDDelimiter separates the media id from the variant suffix in a
// content path such as "01HDBZ.../filtered_0".
const mediaIDDelimiter = "/filtered_0"

// Parser maps journal GraphQL data objects onto domain types.
type Parser struct{}

// NewParser creates a new parser instance
func NewParser() *Parser {
	return &Parser{}
}

func decode(operation string, data json.RawMessage, v any) error {
	if len(data) == 0 || string(data) == "null" {
		return &errors.ParseError{Operation: operation, Message: "response has no data"}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &errors.ParseError{Operation: operation, Err: err}
	}
	return nil
}

func requiredTime(field string, n *isoNode) (time.Time, error) {
	if n == nil || n.ISOString == nil {
		return time.Time{}, &errors.TimeFormatError{Field: field, Err: fmt.Errorf("timestamp missing")}
	}
	t, err := types.ParseISOTime(*n.ISOString)
	if err != nil {
		return time.Time{}, &errors.TimeFormatError{Field: field, Value: *n.ISOString, Err: err}
	}
	return t, nil
}

func optionalTime(field string, n *isoNode) (*time.Time, error) {
	if n == nil || n.ISOString == nil {
		return nil, nil
	}
	t, err := requiredTime(field, n)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// MediaID derives a media id from its content identifiers: the prefix of
// filtered before "/filtered_0", else the same prefix of original.
func MediaID(filtered, original string) (string, bool) {
	for _, path := range []string{filtered, original} {
		if path == "" {
			continue
		}
		id, _, _ := strings.Cut(path, mediaIDDelimiter)
		if id != "" {
			return id, true
		}
	}
	return "", false
}

func contentPaths(c *contentNode) (filtered, original string) {
	if c == nil {
		return "", ""
	}
	return deref(c.Filtered), deref(c.Original)
}

// profileFromNode maps a profile node without its relationships.
func profileFromNode(n *profileNode) (*types.Profile, error) {
	if n == nil {
		return nil, &errors.ParseError{Message: "profile node is null"}
	}

	p := &types.Profile{
		UserID:           n.ID,
		Username:         n.Username,
		DisplayName:      deref(n.DisplayName),
		ProfilePhotoName: deref(n.ProfilePhotoName),
		Bio:              deref(n.Bio),
		IsFriends:        n.FriendStatus == "FRIENDS",
		IsBlocked:        n.IsBlocked,
		BlockedMe:        n.BlockedMe,
		Kudos:            -1,
	}
	if n.Emojis != nil {
		p.Emojis = n.Emojis.Emojis
	}
	if n.Kudos != nil && n.Kudos.TotalCount != nil {
		p.Kudos = *n.Kudos.TotalCount
	}
	if n.Music != nil {
		p.ProfileMusic = &types.ProfileMusic{
			Artist:     n.Music.Artist,
			ArtworkURL: n.Music.ArtworkURL,
			Duration:   n.Music.Duration,
			SongTitle:  n.Music.SongTitle,
			SongURL:    n.Music.SongURL,
		}
	}
	for _, tag := range n.Tags {
		p.Tags = append(p.Tags, types.ProfileTag{Type: tag.Type, Text: tag.Text})
	}

	joined, err := optionalTime("joinedAt", n.JoinedAt)
	if err != nil {
		return nil, err
	}
	p.JoinedAt = joined

	return p, nil
}

func snapFromEntry(e *feedEntryNode) (*types.Snap, error) {
	if e.Media == nil {
		return nil, &errors.MediaIdentityError{Kind: "snap"}
	}
	filtered, original := contentPaths(e.Media.Content)
	id, ok := MediaID(filtered, original)
	if !ok {
		return nil, &errors.MediaIdentityError{Kind: "snap"}
	}

	takenAt, err := requiredTime("takenAt", e.Media.TakenAt)
	if err != nil {
		return nil, err
	}
	developsAt, err := requiredTime("developsAt", e.Media.DevelopsAt)
	if err != nil {
		return nil, err
	}

	s := &types.Snap{
		ID:         id,
		Seen:       e.Seen,
		TakenAt:    takenAt,
		DevelopsAt: developsAt,
		FilteredID: filtered,
		OriginalID: original,
	}
	if e.Media.TakenBy != nil {
		s.TakenByID = e.Media.TakenBy.ID
	}
	return s, nil
}

// mediaIDOrNode prefers the content-derived id and falls back to the node id.
func mediaIDOrNode(kind string, m *mediaNode) (string, error) {
	filtered, original := contentPaths(m.Content)
	if id, ok := MediaID(filtered, original); ok {
		return id, nil
	}
	if m.ID != "" {
		return m.ID, nil
	}
	return "", &errors.MediaIdentityError{Kind: kind}
}

func albumMediaFromNode(n *albumMediaNode) (*types.AlbumMedia, error) {
	if n.Media == nil {
		return nil, &errors.MediaIdentityError{Kind: "album media"}
	}
	id, err := mediaIDOrNode("album media", n.Media)
	if err != nil {
		return nil, err
	}
	addedAt, err := requiredTime("addedAt", n.AddedAt)
	if err != nil {
		return nil, err
	}
	takenAt, err := requiredTime("takenAt", n.Media.TakenAt)
	if err != nil {
		return nil, err
	}

	am := &types.AlbumMedia{ID: id, AddedAt: addedAt, TakenAt: takenAt}
	if n.Media.TakenBy != nil {
		am.CapturerID = n.Media.TakenBy.ID
	}
	return am, nil
}

func albumFromNode(n *albumNode) (*types.Album, error) {
	a := &types.Album{
		AlbumID:    n.ID,
		Name:       n.Name,
		Visibility: n.Visibility,
		Media:      []*types.AlbumMedia{},
	}
	var err error
	if a.CreatedAt, err = optionalTime("createdAt", n.CreatedAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = optionalTime("updatedAt", n.UpdatedAt); err != nil {
		return nil, err
	}
	if n.CreatedBy != nil {
		a.OwnerID = n.CreatedBy.ID
	}
	if n.Media == nil {
		return a, nil
	}
	if n.Media.TotalCount != nil {
		a.TotalCount = *n.Media.TotalCount
	}
	for i := range n.Media.Edges {
		am, err := albumMediaFromNode(&n.Media.Edges[i].Node)
		if err != nil {
			return nil, err
		}
		a.Media = append(a.Media, am)
	}
	if n.Media.TotalCount == nil {
		a.TotalCount = len(a.Media)
	}
	return a, nil
}

// ParseProfileNode maps a single raw profile node.
func (p *Parser) ParseProfileNode(raw json.RawMessage) (*types.Profile, error) {
	var n profileNode
	if err := decode("profile", raw, &n); err != nil {
		return nil, err
	}
	return profileFromNode(&n)
}

// ParseSnapNode maps a single raw feed entry node ({id, seen, media}).
func (p *Parser) ParseSnapNode(raw json.RawMessage) (*types.Snap, error) {
	var n feedEntryNode
	if err := decode("snap", raw, &n); err != nil {
		return nil, err
	}
	return snapFromEntry(&n)
}

// ParseCurrentUser maps data.user.profile.
func (p *Parser) ParseCurrentUser(data json.RawMessage) (*types.Profile, error) {
	var resp struct {
		User *struct {
			Profile *profileNode `json:"profile"`
		} `json:"user"`
	}
	if err := decode("CurrentUserGraphQLQuery", data, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil || resp.User.Profile == nil {
		return nil, &errors.ParseError{Operation: "CurrentUserGraphQLQuery", Message: "user profile missing"}
	}
	return profileFromNode(resp.User.Profile)
}

// ParseProfileDetails maps data.profile together with its friends and albums.
// A friend with the profile's own id is linked to the profile itself.
func (p *Parser) ParseProfileDetails(data json.RawMessage) (*types.Profile, error) {
	var resp struct {
		Profile *profileNode `json:"profile"`
	}
	if err := decode("ProfileDetailsGraphQLQuery", data, &resp); err != nil {
		return nil, err
	}
	if resp.Profile == nil {
		return nil, &errors.ParseError{Operation: "ProfileDetailsGraphQLQuery", Message: "profile missing"}
	}

	root, err := profileFromNode(resp.Profile)
	if err != nil {
		return nil, err
	}

	// profiles without an id are never shared
	known := make(map[string]*types.Profile)
	if root.UserID != "" {
		known[root.UserID] = root
	}
	if resp.Profile.Friends != nil {
		for i := range resp.Profile.Friends.Edges {
			node := &resp.Profile.Friends.Edges[i].Node
			if friend, ok := known[node.ID]; ok {
				root.Friends = append(root.Friends, friend)
				continue
			}
			friend, err := profileFromNode(node)
			if err != nil {
				return nil, err
			}
			if friend.UserID != "" {
				known[friend.UserID] = friend
			}
			root.Friends = append(root.Friends, friend)
		}
	}

	if resp.Profile.Albums != nil {
		for i := range resp.Profile.Albums.Edges {
			album, err := albumFromNode(&resp.Profile.Albums.Edges[i].Node)
			if err != nil {
				return nil, err
			}
			root.Albums = append(root.Albums, album)
		}
	}

	return root, nil
}

// ParseSearchUsers maps data.searchUsers.
func (p *Parser) ParseSearchUsers(data json.RawMessage) ([]*types.SearchUser, error) {
	var resp struct {
		SearchUsers *searchConnection `json:"searchUsers"`
	}
	if err := decode("SearchUsersGraphQLQuery", data, &resp); err != nil {
		return nil, err
	}
	users := []*types.SearchUser{}
	if resp.SearchUsers == nil {
		return users, nil
	}
	for _, e := range resp.SearchUsers.Edges {
		n := e.Node
		users = append(users, &types.SearchUser{
			UserID:           n.ID,
			Username:         n.Username,
			DisplayName:      deref(n.DisplayName),
			ProfilePhotoName: deref(n.ProfilePhotoName),
			FriendStatus:     n.FriendStatus,
			BlockedMe:        n.BlockedMe,
			IsBlocked:        n.IsBlocked,
		})
	}
	return users, nil
}

// ParseAlbum maps data.album.
func (p *Parser) ParseAlbum(data json.RawMessage) (*types.Album, error) {
	var resp struct {
		Album *albumNode `json:"album"`
	}
	if err := decode("AlbumMediaGraphQLQuery", data, &resp); err != nil {
		return nil, err
	}
	if resp.Album == nil {
		return nil, &errors.ParseError{Operation: "AlbumMediaGraphQLQuery", Message: "album missing"}
	}
	return albumFromNode(resp.Album)
}

// ParseDarkroom maps one page of data.darkroom.
func (p *Parser) ParseDarkroom(data json.RawMessage) (*types.DarkroomPage, error) {
	var resp struct {
		Darkroom *mediaConnection `json:"darkroom"`
	}
	if err := decode("DarkroomGraphQLQuery", data, &resp); err != nil {
		return nil, err
	}
	page := &types.DarkroomPage{Media: []*types.DarkroomMedia{}}
	if resp.Darkroom == nil {
		return page, nil
	}

	for i := range resp.Darkroom.Edges {
		m := &resp.Darkroom.Edges[i].Node
		id, err := mediaIDOrNode("darkroom media", m)
		if err != nil {
			return nil, err
		}
		takenAt, err := requiredTime("takenAt", m.TakenAt)
		if err != nil {
			return nil, err
		}
		if m.DevelopsAt == nil || m.DevelopsAt.ISOString == nil {
			return nil, &errors.TimeFormatError{Field: "developsAt", Err: fmt.Errorf("timestamp missing")}
		}
		d, err := types.NewDarkroomMedia(id, takenAt, types.DevelopsAt(*m.DevelopsAt.ISOString), time.Time{})
		if err != nil {
			return nil, &errors.TimeFormatError{Field: "developsAt", Value: *m.DevelopsAt.ISOString, Err: err}
		}
		d.FilteredID, d.OriginalID = contentPaths(m.Content)
		page.Media = append(page.Media, d)
	}

	if pi := resp.Darkroom.PageInfo; pi != nil && pi.EndCursor != nil && pi.HasNextPage {
		page.EndCursor = *pi.EndCursor
	}
	return page, nil
}

// ParseUploadURL maps data.imageUploadURL.
func (p *Parser) ParseUploadURL(data json.RawMessage) (string, error) {
	var resp struct {
		URL *string `json:"imageUploadURL"`
	}
	if err := decode("ImageUploadURLGraphQLQuery", data, &resp); err != nil {
		return "", err
	}
	if resp.URL == nil || *resp.URL == "" {
		return "", &errors.ParseError{Operation: "ImageUploadURLGraphQLQuery", Message: "upload URL missing"}
	}
	return *resp.URL, nil
}

// CheckSuccess inspects the {success} envelope of a mutation. A false or
// absent flag is an OperationFailedError.
func (p *Parser) CheckSuccess(op Operation, data json.RawMessage) error {
	var envelope map[string]*successNode
	if len(data) > 0 && string(data) != "null" {
		if err := json.Unmarshal(data, &envelope); err != nil {
			return &errors.ParseError{Operation: op.Name, Err: err}
		}
	}
	result := envelope[op.ResultField]
	if result == nil || result.Success == nil || !*result.Success {
		return &errors.OperationFailedError{Operation: op.Name}
	}
	return nil
}
