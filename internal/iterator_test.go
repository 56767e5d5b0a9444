package internal

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"testing"

	lapseerrors "github.com/jamesprial/go-lapse-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/types"
)

func TestFeedIterator(t *testing.T) {
	src := &scriptedFeed{pages: []json.RawMessage{
		feedPage("c1", feedItem("n1", "alice", "s1"), statusItem("n2", "bob")),
		feedPage("c2", statusItem("n3", "bob")),
		feedPage("c3", feedItem("n4", "alice", "s4")),
		feedPage("c4", feedItem("n1", "alice", "s1")),
	}}

	it := NewFeedIterator(context.Background(), src.exec, types.FriendsFeedRequest{PageSize: 2})

	var ids []string
	for it.HasNext() {
		node, err := it.Next()
		if err != nil {
			// the wrapped page yields no nodes and ends iteration
			if !stderrors.Is(err, lapseerrors.ErrIteratorDone) {
				t.Fatalf("Next() error = %v, want ErrIteratorDone", err)
			}
			break
		}
		ids = append(ids, node.ID)
	}
	if it.Err() != nil {
		t.Errorf("Err() = %v, want nil at end of stream", it.Err())
	}

	if fmt.Sprint(ids) != "[n1 n4]" {
		t.Errorf("ids = %v, want [n1 n4]", ids)
	}
	if len(src.cursors) != 4 {
		t.Errorf("pages fetched = %d, want 4", len(src.cursors))
	}
	if alice := it.Feed().Profiles()[0]; len(alice.Media) != 2 {
		t.Errorf("alice media = %d, want 2", len(alice.Media))
	}
	if it.HasNext() {
		t.Error("HasNext should be false after the feed wrapped")
	}
}

func TestFeedIterator_ErrorIsSticky(t *testing.T) {
	calls := 0
	exec := func(context.Context, Operation) (json.RawMessage, error) {
		calls++
		return nil, fmt.Errorf("network down")
	}

	it := NewFeedIterator(context.Background(), exec, types.FriendsFeedRequest{})
	if _, err := it.Next(); err == nil {
		t.Fatal("expected error")
	}
	if it.HasNext() {
		t.Error("HasNext should be false after an error")
	}
	if _, err := it.Next(); err == nil {
		t.Error("expected sticky error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func darkroomPage(cursor string, hasNext bool, ids ...string) json.RawMessage {
	edges := ""
	for i, id := range ids {
		if i > 0 {
			edges += ","
		}
		edges += fmt.Sprintf(`{"node":{"id":"%s","takenAt":{"isoString":"2024-01-01T12:00:00.000Z"},`+
			`"developsAt":{"isoString":"2024-01-02T12:00:00.000Z"}}}`, id)
	}
	return json.RawMessage(fmt.Sprintf(`{"darkroom":{"edges":[%s],"pageInfo":{"endCursor":"%s","hasNextPage":%t}}}`, edges, cursor, hasNext))
}

func TestDarkroomIterator(t *testing.T) {
	pages := []json.RawMessage{
		darkroomPage("c1", true, "m1", "m2"),
		darkroomPage("c2", false, "m3"),
	}
	var afters []any
	exec := func(_ context.Context, op Operation) (json.RawMessage, error) {
		afters = append(afters, op.Variables["after"])
		return pages[len(afters)-1], nil
	}

	it := NewDarkroomIterator(context.Background(), exec, types.DarkroomRequest{First: 2})
	var ids []string
	for it.HasNext() {
		m, err := it.Next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids = append(ids, m.ID)
	}

	if fmt.Sprint(ids) != "[m1 m2 m3]" {
		t.Errorf("ids = %v", ids)
	}
	if len(afters) != 2 || afters[0] != nil || afters[1] != "c1" {
		t.Errorf("after cursors = %v", afters)
	}
}
