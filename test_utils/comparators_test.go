package test_utils

import (
	"testing"
	"time"

	"github.com/jamesprial/go-lapse-api-wrapper/pkg/types"
)

func cyclicPair(bio string) *types.Profile {
	a := &types.Profile{UserID: "a", Username: "alice", Bio: bio}
	b := &types.Profile{UserID: "b", Username: "bob"}
	a.Friends = []*types.Profile{b}
	b.Friends = []*types.Profile{a}
	return a
}

func TestDeepEqual(t *testing.T) {
	taken := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		expected any
		actual   any
		wantErr  bool
	}{
		{"cyclic friends equal", cyclicPair("hi"), cyclicPair("hi"), false},
		{"cyclic friends differ", cyclicPair("hi"), cyclicPair("bye"), true},
		{"sub-millisecond drift", &types.Snap{ID: "m1", TakenAt: taken}, &types.Snap{ID: "m1", TakenAt: taken.Add(300 * time.Microsecond)}, false},
		{"location ignored", &types.Snap{ID: "m1", TakenAt: taken}, &types.Snap{ID: "m1", TakenAt: taken.In(time.FixedZone("X", 3600))}, false},
		{"time differs", &types.Snap{ID: "m1", TakenAt: taken}, &types.Snap{ID: "m1", TakenAt: taken.Add(time.Second)}, true},
		{"nil vs empty slice", &types.Profile{UserID: "a"}, &types.Profile{UserID: "a", Emojis: []string{}}, false},
		{"slice length", &types.Profile{Emojis: []string{"x"}}, &types.Profile{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DeepEqual(tt.expected, tt.actual)
			if (err != nil) != tt.wantErr {
				t.Errorf("DeepEqual() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCompareStringLists(t *testing.T) {
	tests := []struct {
		name     string
		expected []string
		actual   []string
		wantErr  bool
	}{
		{"same order", []string{"a", "b"}, []string{"a", "b"}, false},
		{"reordered", []string{"a", "b"}, []string{"b", "a"}, false},
		{"duplicate counts differ", []string{"a", "a", "b"}, []string{"a", "b", "b"}, true},
		{"length differs", []string{"a"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CompareStringLists(tt.expected, tt.actual)
			if (err != nil) != tt.wantErr {
				t.Errorf("CompareStringLists() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAssertValidSnap(t *testing.T) {
	taken := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		snap    *types.Snap
		wantErr bool
	}{
		{"valid", &types.Snap{ID: "m1", TakenAt: taken, DevelopsAt: taken.Add(time.Hour), FilteredID: "m1/filtered_0"}, false},
		{"nil", nil, true},
		{"path in id", &types.Snap{ID: "m1/filtered_0", TakenAt: taken}, true},
		{"foreign content", &types.Snap{ID: "m1", TakenAt: taken, FilteredID: "m2/filtered_0"}, true},
		{"develops before taken", &types.Snap{ID: "m1", TakenAt: taken, DevelopsAt: taken.Add(-time.Minute)}, true},
		{"no takenAt", &types.Snap{ID: "m1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AssertValidSnap(tt.snap)
			if (err != nil) != tt.wantErr {
				t.Errorf("AssertValidSnap() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
