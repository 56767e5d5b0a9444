package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	lapseerrors "github.com/jamesprial/go-lapse-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/types"
)

func TestIsValidFileUUID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"valid", "01HDBZ0123456789ABCDEF0123", true},
		{"lower case hex", "01HDBZ0123456789abcdef0123", false},
		{"wrong prefix", "01HDBA0123456789ABCDEF0123", false},
		{"too short", "01HDBZ0123", false},
		{"too long", "01HDBZ0123456789ABCDEF01234", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidFileUUID(tt.input); got != tt.want {
				t.Errorf("IsValidFileUUID(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidStatusUpdateID(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"STATUS_UPDATE:0b6c3f1e-6f4e-4a53-9c77-3f0f2d3a1b2c", true},
		{"STATUS_UPDATE:", false},
		{"0b6c3f1e-6f4e-4a53-9c77-3f0f2d3a1b2c", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidStatusUpdateID(tt.input); got != tt.want {
				t.Errorf("IsValidStatusUpdateID(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"alice", true},
		{"alice.b_2", true},
		{"Alice", false},
		{"", false},
		{"has space", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidUsername(tt.input); got != tt.want {
				t.Errorf("IsValidUsername(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		wantErr   bool
		wantField string
	}{
		{
			name:  "valid image request",
			input: types.ImageRequest{ContentID: "abc", Quality: 65},
		},
		{
			name:      "quality too high",
			input:     types.ImageRequest{ContentID: "abc", Quality: 101},
			wantErr:   true,
			wantField: "Quality",
		},
		{
			name:      "quality zero",
			input:     types.ImageRequest{ContentID: "abc"},
			wantErr:   true,
			wantField: "Quality",
		},
		{
			name:      "missing content id",
			input:     types.ImageRequest{Quality: 10},
			wantErr:   true,
			wantField: "ContentID",
		},
		{
			name:  "upload with generated uuid",
			input: types.UploadPhotoRequest{Image: []byte{1}, DevelopIn: time.Hour},
		},
		{
			name:      "upload with bad uuid",
			input:     types.UploadPhotoRequest{Image: []byte{1}, FileUUID: "nope"},
			wantErr:   true,
			wantField: "FileUUID",
		},
		{
			name:      "upload without image",
			input:     types.UploadPhotoRequest{},
			wantErr:   true,
			wantField: "Image",
		},
		{
			name:      "negative develop",
			input:     types.UploadPhotoRequest{Image: []byte{1}, DevelopIn: -time.Second},
			wantErr:   true,
			wantField: "DevelopIn",
		},
		{
			name:      "instant without user",
			input:     types.UploadInstantRequest{Image: []byte{1}},
			wantErr:   true,
			wantField: "UserID",
		},
		{
			name:      "feed page too big",
			input:     types.FriendsFeedRequest{PageSize: 500},
			wantErr:   true,
			wantField: "PageSize",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Struct() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			var ve *lapseerrors.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Struct() error type = %T, want *ValidationError", err)
			}
			if !strings.HasSuffix(ve.Field, tt.wantField) {
				t.Errorf("ValidationError.Field = %q, want suffix %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestVar(t *testing.T) {
	tests := []struct {
		name        string
		value       string
		tag         string
		wantErr     bool
		wantMessage string
	}{
		{name: "status update id", value: "STATUS_UPDATE:123e4567-e89b-12d3-a456-426614174000", tag: "lapse_status_update_id"},
		{name: "bad status update id", value: "STATUS:123", tag: "lapse_status_update_id", wantErr: true, wantMessage: "STATUS_UPDATE:<uuid>"},
		{name: "username", value: "alice.b_2", tag: "required,lapse_username"},
		{name: "upper-case username", value: "Alice", tag: "required,lapse_username", wantErr: true, wantMessage: "lower-case"},
		{name: "empty username", value: "", tag: "required,lapse_username", wantErr: true, wantMessage: "is required"},
		{name: "file uuid", value: "01HDBZ0123456789ABCDEF0123", tag: "lapse_file_uuid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Var(tt.value, "field", tt.tag)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Var() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			var ve *lapseerrors.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Var() error type = %T, want *ValidationError", err)
			}
			if ve.Field != "field" || !strings.Contains(ve.Message, tt.wantMessage) {
				t.Errorf("ValidationError = %+v, want field %q with %q", ve, "field", tt.wantMessage)
			}
		})
	}
}

func TestValidateReview(t *testing.T) {
	p := func(id string) types.ReviewMediaPartition { return types.ReviewMediaPartition{MediaID: id} }

	tests := []struct {
		name    string
		req     *types.ReviewRequest
		wantErr string
	}{
		{"nil", nil, "nil"},
		{"empty", &types.ReviewRequest{}, "no media"},
		{"disjoint", &types.ReviewRequest{Archived: []types.ReviewMediaPartition{p("a")}, Shared: []types.ReviewMediaPartition{p("b")}}, ""},
		{"overlap", &types.ReviewRequest{Archived: []types.ReviewMediaPartition{p("a")}, Deleted: []types.ReviewMediaPartition{p("a")}}, "both archived and deleted"},
		{"missing id", &types.ReviewRequest{Shared: []types.ReviewMediaPartition{{}}}, "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateReview(tt.req)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateReview() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateReview() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
