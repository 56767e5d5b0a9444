package internal

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jamesprial/go-lapse-api-wrapper/pkg/types"
)

func TestOperation_JSONBody(t *testing.T) {
	op := SaveBio("hi")
	body, err := json.Marshal(op)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(decoded) != 3 {
		t.Errorf("body keys = %v, want operationName, query and variables only", decoded)
	}
	if decoded["operationName"] != "SaveBioGraphQLMutation" {
		t.Errorf("operationName = %v", decoded["operationName"])
	}
	want := "mutation SaveBioGraphQLMutation($input: SaveBioInput!) { saveBio(input: $input) { __typename success } }"
	if decoded["query"] != want {
		t.Errorf("query = %v, want %s", decoded["query"], want)
	}
}

func TestOperation_Variables(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		op       Operation
		wantKind OperationKind
		want     map[string]any
	}{
		{
			name:     "feed first page",
			op:       FriendsFeed("", 0),
			wantKind: KindQuery,
			want:     map[string]any{"before": nil, "last": DefaultFeedPageSize},
		},
		{
			name:     "feed later page",
			op:       FriendsFeed("c1", 25),
			wantKind: KindQuery,
			want:     map[string]any{"before": "c1", "last": 25},
		},
		{
			name:     "darkroom defaults",
			op:       Darkroom(0, ""),
			wantKind: KindQuery,
			want:     map[string]any{"first": DefaultDarkroomFirst, "after": nil},
		},
		{
			name:     "album defaults",
			op:       AlbumMedia("a1", 0),
			wantKind: KindQuery,
			want:     map[string]any{"id": "a1", "last": DefaultAlbumMediaLast},
		},
		{
			name:     "profile defaults",
			op:       ProfileDetails(types.ProfileRequest{UserID: "u1"}),
			wantKind: KindQuery,
			want: map[string]any{
				"albumsLimit":  DefaultAlbumsLimit,
				"friendsLimit": DefaultFriendsLimit,
				"id":           "u1",
				"mutualLimit":  DefaultMutualLimit,
				"popularLimit": DefaultPopularLimit,
			},
		},
		{
			name:     "darkroom upload filename",
			op:       ImageUploadURL("01HDBZABC", DestinationDarkroom),
			wantKind: KindQuery,
			want:     map[string]any{"filename": "01HDBZABC/filtered_0.heic"},
		},
		{
			name:     "instant upload filename",
			op:       ImageUploadURL("01HDBZABC", DestinationInstant),
			wantKind: KindQuery,
			want:     map[string]any{"filename": "instant/01HDBZABC.heic"},
		},
		{
			name:     "public DOB",
			op:       SaveDOB("2000-01-02", true),
			wantKind: KindMutation,
			want: map[string]any{"input": map[string]any{
				"dob":        map[string]any{"date": "2000-01-02"},
				"visibility": "PUBLIC",
			}},
		},
		{
			name:     "nil emojis",
			op:       SaveEmojis(nil),
			wantKind: KindMutation,
			want:     map[string]any{"input": map[string]any{"emojis": []string{}}},
		},
		{
			name:     "remove feed item",
			op:       RemoveFriendsFeedItem("STATUS_UPDATE:1", now),
			wantKind: KindMutation,
			want: map[string]any{"input": map[string]any{
				"id":        "STATUS_UPDATE:1",
				"removedAt": map[string]any{"isoString": "2024-03-15T12:00Z"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.op.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", tt.op.Kind, tt.wantKind)
			}
			if !reflect.DeepEqual(tt.op.Variables, tt.want) {
				t.Errorf("Variables = %#v, want %#v", tt.op.Variables, tt.want)
			}
		})
	}
}

func TestReviewMedia_StampsMissingReviewTimes(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	earlier := time.Date(2024, 3, 14, 8, 30, 0, 500_000_000, time.UTC)

	op := ReviewMedia(types.ReviewRequest{
		Archived: []types.ReviewMediaPartition{{MediaID: "a"}},
		Shared:   []types.ReviewMediaPartition{{MediaID: "s", ReviewedAt: earlier, Tags: []string{"t"}}},
	}, now)

	in := op.Variables["input"].(map[string]any)
	archived := in["archived"].([]any)[0].(map[string]any)
	if got := archived["reviewedAt"]; !reflect.DeepEqual(got, map[string]any{"isoString": "2024-03-15T12:00Z"}) {
		t.Errorf("archived reviewedAt = %v", got)
	}
	if archived["tags"] != nil {
		t.Errorf("archived tags = %v, want nil", archived["tags"])
	}

	shared := in["shared"].([]any)[0].(map[string]any)
	if got := shared["reviewedAt"]; !reflect.DeepEqual(got, map[string]any{"isoString": "2024-03-14T08:30:00.500Z"}) {
		t.Errorf("shared reviewedAt = %v", got)
	}
	if deleted := in["deleted"].([]any); len(deleted) != 0 {
		t.Errorf("deleted = %v, want empty", deleted)
	}
}

func TestCreateMedia_Content(t *testing.T) {
	taken := time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	op := CreateMedia(CreateMediaParams{
		FileUUID:         "01HDBZABC",
		TakenAt:          taken,
		DevelopIn:        90 * time.Minute,
		ColorTemperature: DefaultColorTemperature,
		ExposureValue:    DefaultExposureValue,
		Timezone:         "Europe/Berlin",
	}, now)

	in := op.Variables["input"].(map[string]any)
	if in["mediaId"] != "01HDBZABC" || in["timezone"] != "Europe/Berlin" {
		t.Errorf("input = %v", in)
	}
	if got := in["developsAt"]; !reflect.DeepEqual(got, map[string]any{"isoString": "2024-03-15T13:30Z"}) {
		t.Errorf("developsAt = %v", got)
	}
	content := in["content"].([]any)[0].(map[string]any)
	if content["filtered"] != "01HDBZABC/filtered_0" {
		t.Errorf("filtered = %v", content["filtered"])
	}
	if !strings.HasPrefix(op.Query, "mutation CreateMediaGraphQLMutation(") {
		t.Errorf("query = %s", op.Query)
	}
}

func TestSendInstants_Defaults(t *testing.T) {
	op := SendInstants(SendInstantParams{UserID: "u1", FileUUID: "01HDBZABC", InstantID: "i1"})

	in := op.Variables["input"].(map[string]any)
	instant := in["instants"].([]any)[0].(map[string]any)
	if instant["timeLimit"] != DefaultInstantTimeLimit {
		t.Errorf("timeLimit = %v, want %d", instant["timeLimit"], DefaultInstantTimeLimit)
	}
	if instant["filename"] != "instant/01HDBZABC" {
		t.Errorf("filename = %v", instant["filename"])
	}
	meta := instant["metadata"].(map[string]any)
	if meta["caption"] != nil {
		t.Errorf("caption = %v, want nil", meta["caption"])
	}
}
