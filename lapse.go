package lapse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jamesprial/go-lapse-api-wrapper/internal"
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/types"
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/validation"
)

const (
	// DefaultGraphQLURL is the journal sync service endpoint.
	DefaultGraphQLURL = "https://sync-service.production.journal-api.lapse.app/graphql"
	// DefaultRefreshURL is the token refresh endpoint.
	DefaultRefreshURL = "https://auth.production.journal-api.lapse.app/refresh"
	// DefaultImageBaseURL is the CDN prefix for image transformations.
	DefaultImageBaseURL = "https://image.production.journal-api.lapse.app/image/upload/"
	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second
)

// fileUUIDPrefix starts every blob name the iOS app generates.
const fileUUIDPrefix = "01HDBZ"

// RateLimit configures client-side throttling of outbound requests.
type RateLimit struct {
	// RequestsPerMinute defaults to 60.
	RequestsPerMinute float64 `env:"REQUESTS_PER_MINUTE" yaml:"requests_per_minute"`
	// Burst defaults to 10.
	Burst int `env:"BURST" yaml:"burst"`
}

// Config holds the configuration for the Lapse client.
//
// Only RefreshToken is required. Every other field has a default applied by
// NewClient.
//
// Example:
//
//	config := &Config{
//		RefreshToken: "your-refresh-token",
//		Timeout:      10 * time.Second,
//		Logger:       slog.Default(),
//	}
type Config struct {
	// RefreshToken is the long-lived token exchanged for access tokens.
	RefreshToken string `env:"REFRESH_TOKEN" yaml:"refresh_token"`

	// GraphQLURL defaults to DefaultGraphQLURL.
	GraphQLURL string `env:"GRAPHQL_URL" yaml:"graphql_url"`
	// RefreshURL defaults to DefaultRefreshURL.
	RefreshURL string `env:"REFRESH_URL" yaml:"refresh_url"`
	// ImageBaseURL defaults to DefaultImageBaseURL.
	ImageBaseURL string `env:"IMAGE_BASE_URL" yaml:"image_base_url"`

	// HTTPClient to use for requests.
	// Defaults to a client with Timeout if not specified.
	HTTPClient *http.Client `env:"-" yaml:"-"`
	// Timeout for the default HTTP client. Ignored when HTTPClient is set.
	Timeout time.Duration `env:"TIMEOUT" yaml:"timeout"`

	// RateLimit throttles outbound requests.
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_" yaml:"rate_limit"`

	// Device is the header table identifying the emulated iOS device.
	Device DeviceOptions `envPrefix:"DEVICE_" yaml:"device"`

	// Logger for structured diagnostics.
	// Optional. If provided, debug information will be logged during API calls.
	Logger *slog.Logger `env:"-" yaml:"-"`

	// Clock returns the current time. Defaults to time.Now. Used for develop
	// deadlines, review stamps and default capture times.
	Clock func() time.Time `env:"-" yaml:"-"`
}

// Client is the main Lapse API client.
// All API methods require a successful Connect; they connect lazily if the
// caller has not.
type Client struct {
	transport *internal.Client
	session   *internal.Session
	parser    *internal.Parser
	config    *Config
	logger    *slog.Logger
	now       func() time.Time
}

// NewClient creates a new Lapse client with the provided configuration.
// It validates the configuration and applies defaults. No network call is
// made until Connect.
//
// Returns a ConfigError if config is nil, RefreshToken is empty or a URL is
// not absolute.
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, &errors.ConfigError{Message: "config cannot be nil"}
	}
	if config.RefreshToken == "" {
		return nil, &errors.ConfigError{Field: "RefreshToken", Message: "is required"}
	}

	cfg := *config
	if cfg.GraphQLURL == "" {
		cfg.GraphQLURL = DefaultGraphQLURL
	}
	if cfg.RefreshURL == "" {
		cfg.RefreshURL = DefaultRefreshURL
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = DefaultImageBaseURL
	}
	if !strings.HasSuffix(cfg.ImageBaseURL, "/") {
		cfg.ImageBaseURL += "/"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	cfg.Device = cfg.Device.WithDefaults()

	transport, err := internal.NewClient(
		cfg.HTTPClient,
		cfg.GraphQLURL,
		cfg.Device.Headers(),
		&internal.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			Burst:             cfg.RateLimit.Burst,
		},
		cfg.Logger,
	)
	if err != nil {
		return nil, err
	}

	refresher, err := internal.NewRefresher(cfg.HTTPClient, cfg.RefreshURL, cfg.RefreshToken)
	if err != nil {
		return nil, err
	}

	return &Client{
		transport: transport,
		session:   internal.NewSession(transport, refresher, cfg.Logger),
		parser:    internal.NewParser(),
		config:    &cfg,
		logger:    cfg.Logger,
		now:       cfg.Clock,
	}, nil
}

// Connect performs the initial refresh token exchange.
// It is safe to call Connect multiple times; the exchange only happens once
// and every call returns its result.
func (c *Client) Connect(ctx context.Context) error {
	return c.session.Connect(ctx)
}

// IsConnected returns true if the client holds an access token.
func (c *Client) IsConnected() bool {
	return c.session.IsConnected()
}

// TokenExpiresAt returns the expiry of the held access token, or the zero
// time when the token is not a JWT or carries no exp claim.
func (c *Client) TokenExpiresAt() time.Time {
	return c.session.ExpiresAt()
}

// Device returns the resolved device header table.
func (c *Client) Device() DeviceOptions {
	return c.config.Device
}

// ensureConnected lazily initializes the session before handling a request.
func (c *Client) ensureConnected(ctx context.Context, operation string) error {
	if err := c.Connect(ctx); err != nil {
		return &errors.StateError{Operation: operation, Message: "client not connected", Err: err}
	}
	return nil
}

func (c *Client) exec(ctx context.Context, op internal.Operation) (json.RawMessage, error) {
	if err := c.ensureConnected(ctx, op.Name); err != nil {
		return nil, err
	}
	return c.session.Execute(ctx, op)
}

// mutate runs a mutation and checks its success envelope.
func (c *Client) mutate(ctx context.Context, op internal.Operation) error {
	data, err := c.exec(ctx, op)
	if err != nil {
		return err
	}
	return c.parser.CheckSuccess(op, data)
}

// NewFileUUID returns a blob name in the format the iOS app generates:
// "01HDBZ" followed by 20 upper-case hex characters.
func NewFileUUID() string {
	hex := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fileUUIDPrefix + hex[:20]
}

// NewStatusUpdateID returns a fresh status update id.
func NewStatusUpdateID() string {
	return "STATUS_UPDATE:" + uuid.NewString()
}

// CurrentUser returns the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*types.Profile, error) {
	data, err := c.exec(ctx, internal.CurrentUser())
	if err != nil {
		return nil, err
	}
	return c.parser.ParseCurrentUser(data)
}

// GetProfileByID retrieves a profile with its friends and albums.
// Zero limits take the app defaults (6 albums, 10 friends, 3 mutuals,
// 10 popular friends).
func (c *Client) GetProfileByID(ctx context.Context, req *types.ProfileRequest) (*types.Profile, error) {
	if req == nil {
		return nil, &errors.ValidationError{Field: "ProfileRequest", Message: "request cannot be nil"}
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	data, err := c.exec(ctx, internal.ProfileDetails(*req))
	if err != nil {
		return nil, err
	}
	return c.parser.ParseProfileDetails(data)
}

// GetProfileByUsername finds a user by exact username and fetches their
// profile. The first search hit must match exactly; otherwise a
// UserNotFoundError is returned and no profile fetch is made.
func (c *Client) GetProfileByUsername(ctx context.Context, username string) (*types.Profile, error) {
	users, err := c.SearchUsers(ctx, username, 1)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 || users[0].Username != username {
		return nil, &errors.UserNotFoundError{Username: username}
	}
	return c.ProfileFromSearch(ctx, users[0])
}

// SearchUsers searches users by name. A first of 0 returns up to 10 results.
func (c *Client) SearchUsers(ctx context.Context, term string, first int) ([]*types.SearchUser, error) {
	if term == "" {
		return nil, &errors.ValidationError{Field: "term", Message: "search term cannot be empty"}
	}
	data, err := c.exec(ctx, internal.SearchUsers(term, first))
	if err != nil {
		return nil, err
	}
	return c.parser.ParseSearchUsers(data)
}

// ProfileFromSearch fetches the full profile behind a search result.
func (c *Client) ProfileFromSearch(ctx context.Context, user *types.SearchUser) (*types.Profile, error) {
	if user == nil {
		return nil, &errors.ValidationError{Field: "user", Message: "search user cannot be nil"}
	}
	return c.GetProfileByID(ctx, &types.ProfileRequest{UserID: user.UserID})
}

// GetFriendsFeed pages through the friends feed until the server runs out of
// pages, repeats itself, or req.Limit nodes have been collected.
func (c *Client) GetFriendsFeed(ctx context.Context, req *types.FriendsFeedRequest) (*types.FriendsFeed, error) {
	if req == nil {
		req = &types.FriendsFeedRequest{}
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	if err := c.ensureConnected(ctx, "FriendsFeedItemsGraphQLQuery"); err != nil {
		return nil, err
	}

	feed, err := internal.CollectFeed(ctx, c.exec, *req)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("friends feed assembled", "nodes", len(feed.Nodes))
	return feed, nil
}

// GetAlbumByID retrieves the last media items of an album. A last of 0
// returns up to 10 items.
func (c *Client) GetAlbumByID(ctx context.Context, albumID string, last int) (*types.Album, error) {
	if albumID == "" {
		return nil, &errors.ValidationError{Field: "albumID", Message: "album id cannot be empty"}
	}
	data, err := c.exec(ctx, internal.AlbumMedia(albumID, last))
	if err != nil {
		return nil, err
	}
	return c.parser.ParseAlbum(data)
}

// QueryDarkroom returns one page of the authenticated user's darkroom.
func (c *Client) QueryDarkroom(ctx context.Context, req *types.DarkroomRequest) (*types.DarkroomPage, error) {
	if req == nil {
		req = &types.DarkroomRequest{}
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	data, err := c.exec(ctx, internal.Darkroom(req.First, req.After))
	if err != nil {
		return nil, err
	}
	return c.parser.ParseDarkroom(data)
}

// ReviewDarkroom routes developed darkroom media to the archived, deleted and
// shared baskets in one call. A media id may appear in only one basket.
func (c *Client) ReviewDarkroom(ctx context.Context, req *types.ReviewRequest) error {
	if err := validation.ValidateReview(req); err != nil {
		return err
	}
	return c.mutate(ctx, internal.ReviewMedia(*req, c.now()))
}

func partitions(mediaIDs []string) []types.ReviewMediaPartition {
	parts := make([]types.ReviewMediaPartition, 0, len(mediaIDs))
	for _, id := range mediaIDs {
		parts = append(parts, types.ReviewMediaPartition{MediaID: id})
	}
	return parts
}

// ArchiveMedia moves darkroom media to the archive.
func (c *Client) ArchiveMedia(ctx context.Context, mediaIDs ...string) error {
	return c.ReviewDarkroom(ctx, &types.ReviewRequest{Archived: partitions(mediaIDs)})
}

// DeleteMedia deletes darkroom media.
func (c *Client) DeleteMedia(ctx context.Context, mediaIDs ...string) error {
	return c.ReviewDarkroom(ctx, &types.ReviewRequest{Deleted: partitions(mediaIDs)})
}

// ShareMedia publishes darkroom media to the friends feed.
func (c *Client) ShareMedia(ctx context.Context, mediaIDs ...string) error {
	return c.ReviewDarkroom(ctx, &types.ReviewRequest{Shared: partitions(mediaIDs)})
}

// upload requests a pre-signed URL for fileUUID and PUTs data to it.
func (c *Client) upload(ctx context.Context, fileUUID string, dest internal.UploadDestination, data []byte) error {
	raw, err := c.exec(ctx, internal.ImageUploadURL(fileUUID, dest))
	if err != nil {
		return err
	}
	uploadURL, err := c.parser.ParseUploadURL(raw)
	if err != nil {
		return err
	}
	return c.transport.PutBlob(ctx, uploadURL, data)
}

// UploadPhoto uploads an image to the darkroom and registers it to develop
// after req.DevelopIn.
//
// The upload is three calls: request an upload URL, PUT the bytes, register
// the media. If registration fails after the PUT succeeded the blob is left
// orphaned on the server; the registration error is returned.
func (c *Client) UploadPhoto(ctx context.Context, req *types.UploadPhotoRequest) (*types.DarkroomMedia, error) {
	if req == nil {
		return nil, &errors.ValidationError{Field: "UploadPhotoRequest", Message: "request cannot be nil"}
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	now := c.now()
	params := internal.CreateMediaParams{
		FileUUID:         req.FileUUID,
		TakenAt:          req.TakenAt,
		DevelopIn:        req.DevelopIn,
		ColorTemperature: req.ColorTemperature,
		ExposureValue:    req.ExposureValue,
		Flash:            req.Flash,
		Timezone:         req.Timezone,
	}
	if params.FileUUID == "" {
		params.FileUUID = NewFileUUID()
	}
	if params.TakenAt.IsZero() {
		params.TakenAt = now
	}
	if params.ColorTemperature == 0 {
		params.ColorTemperature = internal.DefaultColorTemperature
	}
	if params.ExposureValue == 0 {
		params.ExposureValue = internal.DefaultExposureValue
	}
	if params.Timezone == "" {
		params.Timezone = c.config.Device.Timezone
	}

	if err := c.upload(ctx, params.FileUUID, internal.DestinationDarkroom, req.Image); err != nil {
		return nil, err
	}

	if err := c.mutate(ctx, internal.CreateMedia(params, now)); err != nil {
		c.logger.Warn("media registration failed after upload, blob is orphaned",
			"file_uuid", params.FileUUID, "error", err)
		return nil, err
	}

	media, err := types.NewDarkroomMedia(params.FileUUID, params.TakenAt, types.DevelopIn(req.DevelopIn), now)
	if err != nil {
		return nil, err
	}
	media.FilteredID = params.FileUUID + "/filtered_0"
	return media, nil
}

// UploadInstant uploads an image and sends it as an instant to one user.
// It follows the same three-call sequence as UploadPhoto.
func (c *Client) UploadInstant(ctx context.Context, req *types.UploadInstantRequest) error {
	if req == nil {
		return &errors.ValidationError{Field: "UploadInstantRequest", Message: "request cannot be nil"}
	}
	if err := validation.Struct(req); err != nil {
		return err
	}

	params := internal.SendInstantParams{
		UserID:    req.UserID,
		FileUUID:  req.FileUUID,
		InstantID: req.InstantID,
		Caption:   req.Caption,
		TimeLimit: req.TimeLimit,
	}
	if params.FileUUID == "" {
		params.FileUUID = NewFileUUID()
	}
	if params.InstantID == "" {
		params.InstantID = uuid.NewString()
	}

	if err := c.upload(ctx, params.FileUUID, internal.DestinationInstant, req.Image); err != nil {
		return err
	}

	if err := c.mutate(ctx, internal.SendInstants(params)); err != nil {
		c.logger.Warn("instant delivery failed after upload, blob is orphaned",
			"file_uuid", params.FileUUID, "user_id", params.UserID, "error", err)
		return err
	}
	return nil
}

// CreateStatusUpdate posts a text status and returns its id. An empty id
// generates one.
func (c *Client) CreateStatusUpdate(ctx context.Context, text, id string) (string, error) {
	if text == "" {
		return "", &errors.ValidationError{Field: "text", Message: "status text cannot be empty"}
	}
	if id == "" {
		id = NewStatusUpdateID()
	} else if err := validation.Var(id, "id", "lapse_status_update_id"); err != nil {
		return "", err
	}
	if err := c.mutate(ctx, internal.CreateStatusUpdate(id, text)); err != nil {
		return "", err
	}
	return id, nil
}

// RemoveStatusUpdate removes a status update from the friends feed. A zero
// removedAt means now.
func (c *Client) RemoveStatusUpdate(ctx context.Context, id string, removedAt time.Time) error {
	if id == "" {
		return &errors.ValidationError{Field: "id", Message: "status update id cannot be empty"}
	}
	if removedAt.IsZero() {
		removedAt = c.now()
	}
	return c.mutate(ctx, internal.RemoveFriendsFeedItem(id, removedAt))
}

// AddReaction reacts to a media item with an emoji.
func (c *Client) AddReaction(ctx context.Context, media types.ReactableMedia, reaction string) error {
	mediaID, err := reactableID(media)
	if err != nil {
		return err
	}
	if reaction == "" {
		return &errors.ValidationError{Field: "reaction", Message: "reaction cannot be empty"}
	}
	return c.mutate(ctx, internal.SendReaction(mediaID, reaction))
}

// RemoveReaction removes a previously sent reaction.
func (c *Client) RemoveReaction(ctx context.Context, media types.ReactableMedia, reaction string) error {
	mediaID, err := reactableID(media)
	if err != nil {
		return err
	}
	if reaction == "" {
		return &errors.ValidationError{Field: "reaction", Message: "reaction cannot be empty"}
	}
	return c.mutate(ctx, internal.DeleteReaction(mediaID, reaction))
}

func reactableID(media types.ReactableMedia) (string, error) {
	if media == nil || !media.Reactable() || media.GetID() == "" {
		return "", &errors.ValidationError{Field: "media", Message: "a reactable media item with an id is required"}
	}
	return media.GetID(), nil
}

// SendComment comments on a media item and returns the comment id.
func (c *Client) SendComment(ctx context.Context, req *types.CommentRequest) (string, error) {
	if req == nil {
		return "", &errors.ValidationError{Field: "CommentRequest", Message: "request cannot be nil"}
	}
	if err := validation.Struct(req); err != nil {
		return "", err
	}
	commentID := req.CommentID
	if commentID == "" {
		commentID = uuid.NewString()
	}
	if err := c.mutate(ctx, internal.SendComment(commentID, req.MediaID, req.Text)); err != nil {
		return "", err
	}
	return commentID, nil
}

// DeleteComment deletes a comment from a media item.
func (c *Client) DeleteComment(ctx context.Context, mediaID, commentID string) error {
	if mediaID == "" || commentID == "" {
		return &errors.ValidationError{Field: "commentID", Message: "media id and comment id are required"}
	}
	return c.mutate(ctx, internal.DeleteComment(commentID, mediaID))
}

func requireUserID(userID string) error {
	if userID == "" {
		return &errors.ValidationError{Field: "userID", Message: "user id cannot be empty"}
	}
	return nil
}

// SendKudos sends kudos to a user.
func (c *Client) SendKudos(ctx context.Context, userID string) error {
	if err := requireUserID(userID); err != nil {
		return err
	}
	return c.mutate(ctx, internal.SendKudos(userID))
}

// BlockProfile blocks a user.
func (c *Client) BlockProfile(ctx context.Context, userID string) error {
	if err := requireUserID(userID); err != nil {
		return err
	}
	return c.mutate(ctx, internal.BlockProfile(userID))
}

// UnblockProfile unblocks a user.
func (c *Client) UnblockProfile(ctx context.Context, userID string) error {
	if err := requireUserID(userID); err != nil {
		return err
	}
	return c.mutate(ctx, internal.UnblockProfile(userID))
}

// UpdateBio sets the authenticated user's bio.
func (c *Client) UpdateBio(ctx context.Context, bio string) error {
	return c.mutate(ctx, internal.SaveBio(bio))
}

// UpdateDisplayName sets the authenticated user's display name.
func (c *Client) UpdateDisplayName(ctx context.Context, name string) error {
	return c.mutate(ctx, internal.SaveDisplayName(name))
}

// UpdateUsername sets the authenticated user's username.
func (c *Client) UpdateUsername(ctx context.Context, username string) error {
	if err := validation.Var(username, "username", "required,lapse_username"); err != nil {
		return err
	}
	return c.mutate(ctx, internal.SaveUsername(username))
}

// UpdateEmojis sets the emojis shown on the authenticated user's profile.
func (c *Client) UpdateEmojis(ctx context.Context, emojis []string) error {
	return c.mutate(ctx, internal.SaveEmojis(emojis))
}

// UpdateDOB sets the authenticated user's date of birth. dob is sent as
// given (YYYY-MM-DD); the server validates it.
func (c *Client) UpdateDOB(ctx context.Context, dob string, public bool) error {
	return c.mutate(ctx, internal.SaveDOB(dob, public))
}

// UpdateMusic pins a song to the authenticated user's profile.
func (c *Client) UpdateMusic(ctx context.Context, music types.ProfileMusic) error {
	return c.mutate(ctx, internal.SaveMusic(music))
}

func (c *Client) imageURL(req types.ImageRequest, ext string) (string, error) {
	if err := validation.Struct(&req); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(c.config.ImageBaseURL)
	b.WriteString("q_")
	b.WriteString(strconv.Itoa(req.Quality))
	if req.Height > 0 {
		b.WriteString(",h_")
		b.WriteString(strconv.Itoa(req.Height))
	}
	if req.KeepAttribution {
		b.WriteString(",fl_keep_itc")
	}
	b.WriteString("/")
	b.WriteString(req.ContentID)
	b.WriteString(ext)
	return b.String(), nil
}

// ImageURL renders the CDN URL for a content id:
// <base>q_<quality>[,h_<height>][,fl_keep_itc]/<content id>.jpeg
func (c *Client) ImageURL(req types.ImageRequest) (string, error) {
	return c.imageURL(req, ".jpeg")
}

// originalVariant is appended to an original content id to address its image.
const originalVariant = "/original_0"

// SnapImageURL renders the CDN URL of a snap's filtered image, or of its
// original when there is no filtered variant.
func (c *Client) SnapImageURL(snap *types.Snap, quality int, keepAttribution bool) (string, error) {
	if snap == nil {
		return "", &errors.ValidationError{Field: "snap", Message: "snap cannot be nil"}
	}
	if snap.FilteredID == "" {
		return c.SnapOriginalURL(snap, quality, keepAttribution)
	}
	return c.ImageURL(types.ImageRequest{ContentID: snap.FilteredID, Quality: quality, KeepAttribution: keepAttribution})
}

// SnapOriginalURL renders the CDN URL of a snap's unfiltered original:
// <base>q_<quality>[,fl_keep_itc]/<original id>/original_0.jpeg
func (c *Client) SnapOriginalURL(snap *types.Snap, quality int, keepAttribution bool) (string, error) {
	if snap == nil {
		return "", &errors.ValidationError{Field: "snap", Message: "snap cannot be nil"}
	}
	if snap.OriginalID == "" {
		return "", &errors.ValidationError{Field: "OriginalID", Message: "snap has no original"}
	}
	return c.ImageURL(types.ImageRequest{ContentID: snap.OriginalID + originalVariant, Quality: quality, KeepAttribution: keepAttribution})
}

// ProfilePhotoURL renders the CDN URL of a profile photo. A height of 0
// keeps the original height.
func (c *Client) ProfilePhotoURL(profile *types.Profile, quality, height int) (string, error) {
	if profile == nil || profile.ProfilePhotoName == "" {
		return "", &errors.ValidationError{Field: "ProfilePhotoName", Message: "profile has no photo"}
	}
	return c.imageURL(types.ImageRequest{ContentID: profile.ProfilePhotoName, Quality: quality, Height: height}, ".jpg")
}

// FetchImage downloads the bytes at a CDN URL. Decoding is left to the caller.
// The CDN is public, so this does not require Connect.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	if imageURL == "" {
		return nil, &errors.ValidationError{Field: "imageURL", Message: "url cannot be empty"}
	}
	data, err := c.transport.Get(ctx, imageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	return data, nil
}
