// Package lapse provides a Go client for the Lapse journal API.
//
// # Overview
//
// The client exchanges a long-lived refresh token for an access token, sends
// GraphQL operations to the journal sync service with the headers of the iOS
// app, and maps the responses onto typed profiles, media, albums and feeds.
//
// # Features
//
//   - Refresh token exchange with a single transparent retry on token expiry
//   - Typed errors for transport, auth, mapping and business failures
//   - Client-side rate limiting with Retry-After support
//   - Structured logging via Go's slog package
//   - Friends feed paging that stops when the server wraps around
//   - Darkroom upload, review and instant delivery
//
// # Quick Start
//
//	client, err := lapse.NewClient(&lapse.Config{RefreshToken: os.Getenv("LAPSE_REFRESH_TOKEN")})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := client.Connect(ctx); err != nil {
//		log.Fatal(err)
//	}
//
//	me, err := client.CurrentUser(ctx)
//
// Configuration can also be loaded from LAPSE_* environment variables with
// LoadConfigFromEnv, or from a YAML file with LoadConfigFile.
//
// # Connection Lifecycle
//
// NewClient makes no network calls. Connect performs the refresh exchange
// once; concurrent callers share the running attempt and later calls return
// its outcome. API methods connect lazily if Connect was not called. A failed
// Connect is sticky, so create a new client to try again. The exception is an
// attempt whose caller's context was cancelled or timed out: it is discarded
// and the next Connect tries again.
//
// When the server reports "Token expired at ...", the session refreshes the
// access token once and retries the request once. A second expiry is returned
// to the caller as an AuthTokenExpiredError. No other failure is retried.
//
// # Common Operations
//
// Fetch a profile by username:
//
//	profile, err := client.GetProfileByUsername(ctx, "alice")
//	var notFound *errors.UserNotFoundError
//	if errors.As(err, &notFound) {
//		// the first search hit was not an exact match
//	}
//
// Upload a photo to the darkroom, developing in one hour:
//
//	media, err := client.UploadPhoto(ctx, &types.UploadPhotoRequest{
//		Image:     heicBytes,
//		DevelopIn: time.Hour,
//	})
//
// Review developed media:
//
//	err := client.ReviewDarkroom(ctx, &types.ReviewRequest{
//		Shared:   []types.ReviewMediaPartition{media.Review(time.Time{})},
//	})
//
// # Pagination
//
// The friends feed is paged backwards by cursor. GetFriendsFeed collects pages
// until the end cursor is null, a page is empty, Limit nodes have been
// collected, or a page repeats a node or snap already seen. The server serves
// the first page again after the last, so a repeated page is discarded whole
// and treated as the end of the feed.
//
//	it := client.NewFriendsFeedIterator(ctx, &types.FriendsFeedRequest{PageSize: 20})
//	for it.HasNext() {
//		node, err := it.Next()
//		if err != nil {
//			break
//		}
//		fmt.Println(node.Profile.Username, len(node.Entries))
//	}
//
// Profiles are shared across feed nodes: every node from the same user points
// at one Profile, whose Media collects all of that user's snaps.
//
// # Rate Limiting
//
// Requests pass through a token bucket (60 per minute, burst 10 by default).
// A Retry-After header on any response delays subsequent requests.
//
// # Error Handling
//
// All errors are typed and live in pkg/errors:
//
//	_, err := client.CurrentUser(ctx)
//	switch {
//	case errors.IsCode(err, errors.CodeAuthRejected):
//		// refresh token revoked
//	default:
//		var te *errors.TransportError
//		if errors.As(err, &te) {
//			// network failure or non-2xx status, te.Body holds the response
//		}
//	}
//
// Mutations that the server accepts but reports as unsuccessful fail with an
// OperationFailedError naming the operation.
//
// # Logging
//
// Enable debug logging by providing a logger in the config:
//
//	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
//		Level: slog.LevelDebug,
//	}))
//
//	config := &lapse.Config{
//		// ... other config ...
//		Logger: logger,
//	}
//
// Debug records include truncated response previews. URLs are logged without
// their query strings so pre-signed upload signatures stay out of logs.
//
// # Concurrency
//
// A Client may be shared between goroutines. The access token is guarded, but
// two goroutines that hit an expired token at the same moment will each
// refresh it.
package lapse
