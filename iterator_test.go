package lapse

import (
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/jamesprial/go-lapse-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/types"
)

// friendCircle builds alice -> bob, carol; bob -> dave, alice; carol -> alice.
func friendCircle() *types.Profile {
	alice := &types.Profile{UserID: "alice", Username: "alice"}
	bob := &types.Profile{UserID: "bob", Username: "bob"}
	carol := &types.Profile{UserID: "carol", Username: "carol"}
	dave := &types.Profile{UserID: "dave", Username: "dave"}
	alice.Friends = []*types.Profile{bob, carol}
	bob.Friends = []*types.Profile{dave, alice}
	carol.Friends = []*types.Profile{alice}
	return alice
}

func collectIDs(t *testing.T, it *ProfileIterator) []string {
	t.Helper()
	var ids []string
	for it.HasNext() {
		p, err := it.Next()
		if err != nil {
			var se *errors.StateError
			if !stderrors.As(err, &se) {
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
			break
		}
		ids = append(ids, p.UserID)
	}
	return ids
}

func TestProfileIterator(t *testing.T) {
	tests := []struct {
		name string
		opts *TraversalOptions
		want []string
	}{
		{
			name: "depth first",
			opts: nil,
			want: []string{"alice", "bob", "dave", "carol"},
		},
		{
			name: "breadth first",
			opts: &TraversalOptions{Order: BreadthFirst},
			want: []string{"alice", "bob", "carol", "dave"},
		},
		{
			name: "max depth",
			opts: &TraversalOptions{Order: BreadthFirst, MaxDepth: 1},
			want: []string{"alice", "bob", "carol"},
		},
		{
			name: "filter keeps traversing",
			opts: &TraversalOptions{FilterFunc: func(p *types.Profile) bool { return p.UserID != "bob" }},
			want: []string{"alice", "dave", "carol"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := NewProfileIterator([]*types.Profile{friendCircle()}, tt.opts)
			got := collectIDs(t, it)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProfileIterator_Exhausted(t *testing.T) {
	it := NewProfileIterator([]*types.Profile{{UserID: "solo"}, nil}, nil)

	p, err := it.Next()
	if err != nil || p.UserID != "solo" {
		t.Fatalf("Next() = %v, %v", p, err)
	}
	if it.HasNext() {
		t.Error("HasNext() = true after the only profile")
	}
	if _, err := it.Next(); err == nil {
		t.Error("expected StateError from an exhausted iterator")
	}
}

func TestNewFriendGraph(t *testing.T) {
	g := NewFriendGraph(friendCircle())

	if g.Count() != 4 {
		t.Errorf("Count() = %d, want 4", g.Count())
	}
	if g.GetDepth() != 2 {
		t.Errorf("GetDepth() = %d, want 2", g.GetDepth())
	}
	if p := g.GetByUsername("dave"); p == nil || p.UserID != "dave" {
		t.Errorf("GetByUsername(dave) = %v", p)
	}
	if p := g.GetByID("nobody"); p != nil {
		t.Errorf("GetByID(nobody) = %v, want nil", p)
	}
}
