package adversarial_tests

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/jamesprial/go-lapse-api-wrapper/adversarial_tests/helpers"
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/types"
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/validation"
	"github.com/jamesprial/go-lapse-api-wrapper/test_helpers"
)

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	var ve *errors.ValidationError
	if !stderrors.As(err, &ve) {
		t.Errorf("expected ValidationError, got %T: %v", err, err)
	}
}

// assertNoTraffic fails if the client touched the network
func assertNoTraffic(t *testing.T, tc *test_helpers.TestClient) {
	t.Helper()
	if log := tc.MockServer().GetRequestLog(); len(log) != 0 {
		t.Errorf("expected no requests, got %d (first %s %s)", len(log), log[0].Method, log[0].Path)
	}
}

// TestUsernameFuzzing checks hostile usernames never reach the server
func TestUsernameFuzzing(t *testing.T) {
	tc := test_helpers.NewTestClient(t, nil)

	for _, name := range helpers.NewFuzzer(42).FuzzUsername() {
		t.Run(name, func(t *testing.T) {
			if validation.IsValidUsername(name) {
				t.Fatalf("IsValidUsername(%q) = true", name)
			}
			assertValidationError(t, tc.UpdateUsername(context.Background(), name))
		})
	}
	assertNoTraffic(t, tc)
}

// TestFileUUIDFuzzing checks hostile blob names are rejected before upload
func TestFileUUIDFuzzing(t *testing.T) {
	tc := test_helpers.NewTestClient(t, nil)

	for _, id := range helpers.NewFuzzer(42).FuzzFileUUID() {
		t.Run(id, func(t *testing.T) {
			if validation.IsValidFileUUID(id) {
				t.Fatalf("IsValidFileUUID(%q) = true", id)
			}
			if id == "" {
				// empty generates a fresh name
				return
			}
			_, err := tc.UploadPhoto(context.Background(), &types.UploadPhotoRequest{Image: []byte("x"), FileUUID: id})
			assertValidationError(t, err)
			err = tc.UploadInstant(context.Background(), &types.UploadInstantRequest{Image: []byte("x"), UserID: "u1", FileUUID: id})
			assertValidationError(t, err)
		})
	}
	assertNoTraffic(t, tc)
}

func TestStatusUpdateIDFuzzing(t *testing.T) {
	tc := test_helpers.NewTestClient(t, nil)

	for _, id := range helpers.NewFuzzer(42).FuzzStatusUpdateID() {
		t.Run(id, func(t *testing.T) {
			if validation.IsValidStatusUpdateID(id) {
				t.Fatalf("IsValidStatusUpdateID(%q) = true", id)
			}
			if id == "" {
				return
			}
			_, err := tc.CreateStatusUpdate(context.Background(), "hello", id)
			assertValidationError(t, err)
		})
	}
	assertNoTraffic(t, tc)
}

// TestPageSizeFuzzing checks out-of-range page sizes on every paged call
func TestPageSizeFuzzing(t *testing.T) {
	tc := test_helpers.NewTestClient(t, nil)
	ctx := context.Background()

	for _, size := range helpers.NewFuzzer(42).FuzzPageSize() {
		_, err := tc.GetFriendsFeed(ctx, &types.FriendsFeedRequest{PageSize: size})
		assertValidationError(t, err)

		_, err = tc.QueryDarkroom(ctx, &types.DarkroomRequest{First: size})
		assertValidationError(t, err)

		if size < 0 {
			_, err = tc.GetFriendsFeed(ctx, &types.FriendsFeedRequest{Limit: size})
			assertValidationError(t, err)

			_, err = tc.GetProfileByID(ctx, &types.ProfileRequest{UserID: "u1", FriendsLimit: size})
			assertValidationError(t, err)

			_, err = tc.UploadPhoto(ctx, &types.UploadPhotoRequest{Image: []byte("x"), DevelopIn: time.Duration(size)})
			assertValidationError(t, err)
		}
	}
	assertNoTraffic(t, tc)
}

// TestHostileTextIsSentVerbatim checks free text is encoded, not rejected or mangled
func TestHostileTextIsSentVerbatim(t *testing.T) {
	fuzzer := helpers.NewFuzzer(7)
	texts := append(fuzzer.GenerateInjections(), fuzzer.GenerateUnicodeAttacks()...)
	texts = append(texts, fuzzer.GenerateControlCharString()...)

	tc := test_helpers.NewTestClient(t, nil)
	ms := tc.MockServer()
	ms.SetOperation("SaveBioGraphQLMutation", test_helpers.SuccessResponse("saveBio", true))

	for _, text := range texts {
		if err := tc.UpdateBio(context.Background(), text); err != nil {
			t.Fatalf("UpdateBio(%q) failed: %v", text, err)
		}
	}

	reqs := ms.Requests("SaveBioGraphQLMutation")
	if len(reqs) != len(texts) {
		t.Fatalf("requests = %d, want %d", len(reqs), len(texts))
	}
	for i, r := range reqs {
		in, _ := r.Variables["input"].(map[string]any)
		if in["bio"] != texts[i] {
			t.Errorf("request %d bio = %q, want %q", i, in["bio"], texts[i])
		}
	}
}

// TestReviewPartitionFuzzing checks malformed review baskets are refused whole
func TestReviewPartitionFuzzing(t *testing.T) {
	now := test_helpers.FixedClock
	tests := []struct {
		name string
		req  *types.ReviewRequest
	}{
		{"nil request", nil},
		{"empty request", &types.ReviewRequest{}},
		{"empty media id", &types.ReviewRequest{Shared: []types.ReviewMediaPartition{{MediaID: "", ReviewedAt: now}}}},
		{"duplicate within basket", &types.ReviewRequest{Shared: []types.ReviewMediaPartition{{MediaID: "m1", ReviewedAt: now}, {MediaID: "m1", ReviewedAt: now}}}},
		{"duplicate across baskets", &types.ReviewRequest{
			Archived: []types.ReviewMediaPartition{{MediaID: "m1", ReviewedAt: now}},
			Deleted:  []types.ReviewMediaPartition{{MediaID: "m1", ReviewedAt: now}},
		}},
	}

	tc := test_helpers.NewTestClient(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValidationError(t, tc.ReviewDarkroom(context.Background(), tt.req))
		})
	}
	assertNoTraffic(t, tc)
}
