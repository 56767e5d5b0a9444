package types

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestFormatISOTime(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "milliseconds",
			in:   time.Date(2024, 1, 1, 12, 0, 0, 123_000_000, time.UTC),
			want: "2024-01-01T12:00:00.123Z",
		},
		{
			name: "microseconds truncated not rounded",
			in:   time.Date(2024, 1, 1, 12, 0, 5, 999_999_000, time.UTC),
			want: "2024-01-01T12:00:05.999Z",
		},
		{
			name: "sub-millisecond",
			in:   time.Date(2024, 1, 1, 12, 0, 5, 500_000, time.UTC),
			want: "2024-01-01T12:00:05.000Z",
		},
		{
			name: "zero microseconds drops seconds",
			in:   time.Date(2024, 1, 1, 12, 0, 30, 0, time.UTC),
			want: "2024-01-01T12:00Z",
		},
		{
			name: "nanoseconds below a microsecond count as zero",
			in:   time.Date(2024, 1, 1, 12, 0, 30, 999, time.UTC),
			want: "2024-01-01T12:00Z",
		},
		{
			name: "converted to UTC",
			in:   time.Date(2024, 1, 1, 7, 0, 0, 1_000_000, time.FixedZone("EST", -5*3600)),
			want: "2024-01-01T12:00:00.001Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatISOTime(tt.in); got != tt.want {
				t.Errorf("FormatISOTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseISOTime(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"millis with Z", "2023-10-31T12:34:56.789Z", time.Date(2023, 10, 31, 12, 34, 56, 789_000_000, time.UTC), false},
		{"seconds with Z", "2024-01-01T00:00:00Z", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"minutes with Z", "2024-01-01T12:00Z", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), false},
		{"no Z", "2024-01-01T00:00:00.5", time.Date(2024, 1, 1, 0, 0, 0, 500_000_000, time.UTC), false},
		{"offset", "2024-01-01T01:00:00+01:00", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"empty", "", time.Time{}, true},
		{"only Z", "Z", time.Time{}, true},
		{"garbage", "yesterday", time.Time{}, true},
		{"bad month", "2024-13-01T00:00:00Z", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseISOTime(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseISOTime(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseISOTime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	in := time.Date(2025, 6, 7, 8, 9, 10, 11_000_000, time.UTC)
	out, err := ParseISOTime(FormatISOTime(in))
	if err != nil {
		t.Fatalf("ParseISOTime() error = %v", err)
	}
	if !out.Equal(in) {
		t.Errorf("round trip = %v, want %v", out, in)
	}
}

func TestDarkroomMedia_Developed(t *testing.T) {
	deadline := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	d := &DarkroomMedia{ID: "01HDBZ", DevelopsAt: deadline}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before", deadline.Add(-time.Nanosecond), false},
		{"exactly at deadline", deadline, true},
		{"after", deadline.Add(time.Second), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.Developed(tt.now); got != tt.want {
				t.Errorf("Developed(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestDarkroomMedia_Review(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d := &DarkroomMedia{ID: "m1"}
	p := d.Review(at, "beach")
	if p.MediaID != "m1" || !p.ReviewedAt.Equal(at) || len(p.Tags) != 1 || p.Tags[0] != "beach" {
		t.Errorf("Review() = %+v", p)
	}
}

func TestProfile_JSONIgnoresFriends(t *testing.T) {
	p := &Profile{UserID: "u1", Username: "alice", Kudos: -1}
	p.Friends = []*Profile{p}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	s := string(data)
	for _, want := range []string{`"user_id":"u1"`, `"username":"alice"`, `"kudos":-1`, `"profile_music":null`} {
		if !strings.Contains(s, want) {
			t.Errorf("json = %s, want to contain %s", s, want)
		}
	}
}

func TestFriendsFeed_Profiles(t *testing.T) {
	alice := &Profile{UserID: "a"}
	bob := &Profile{UserID: "b"}
	feed := &FriendsFeed{Nodes: []*FriendNode{
		{ID: "1", Profile: alice},
		{ID: "2", Profile: bob},
		{ID: "3", Profile: alice},
		{ID: "4"},
	}}

	got := feed.Profiles()
	if len(got) != 2 || got[0] != alice || got[1] != bob {
		t.Errorf("Profiles() = %v, want [alice bob]", got)
	}
}

func TestMediaInterfaces(t *testing.T) {
	var _ ReactableMedia = (*Snap)(nil)
	var _ ReactableMedia = (*AlbumMedia)(nil)
	var _ Media = (*DarkroomMedia)(nil)
}

func TestNewDarkroomMedia(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		id       string
		deadline Deadline
		want     time.Time
		wantErr  bool
	}{
		{"offset", "m1", DevelopIn(90 * time.Second), now.Add(90 * time.Second), false},
		{"zero offset develops immediately", "m1", DevelopIn(0), now, false},
		{"iso", "m1", DevelopsAt("2024-01-02T00:00:00.000Z"), time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"bad iso", "m1", DevelopsAt("soon"), time.Time{}, true},
		{"empty id", "", DevelopIn(time.Second), time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDarkroomMedia(tt.id, now, tt.deadline, now)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewDarkroomMedia() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !d.DevelopsAt.Equal(tt.want) {
				t.Errorf("DevelopsAt = %v, want %v", d.DevelopsAt, tt.want)
			}
		})
	}

	d, _ := NewDarkroomMedia("m1", now, DevelopIn(0), now)
	if !d.Developed(now) {
		t.Error("zero offset media should be developed at construction time")
	}
}
