package test_utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/jamesprial/go-lapse-api-wrapper/pkg/types"
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/validation"
)

func AssertValidFileUUID(id string) error {
	if id == "" {
		return fmt.Errorf("file uuid is empty")
	}
	if !validation.IsValidFileUUID(id) {
		return fmt.Errorf("file uuid has invalid format: %s", id)
	}
	return nil
}

// assertMediaIdentity checks that id, filtered and original name the same media
func assertMediaIdentity(id, filtered, original string) error {
	if id == "" {
		return fmt.Errorf("media id is empty")
	}
	if strings.Contains(id, "/") {
		return fmt.Errorf("media id %q contains a path separator", id)
	}
	if filtered != "" && !strings.HasPrefix(filtered, id+"/") {
		return fmt.Errorf("filtered id %q does not belong to %s", filtered, id)
	}
	if original != "" && original != id && !strings.HasPrefix(original, id+"/") {
		return fmt.Errorf("original id %q does not belong to %s", original, id)
	}
	return nil
}

// AssertValidSnap validates that a snap has an identity and a sane timeline
func AssertValidSnap(snap *types.Snap) error {
	if snap == nil {
		return fmt.Errorf("snap is nil")
	}
	if err := assertMediaIdentity(snap.ID, snap.FilteredID, snap.OriginalID); err != nil {
		return fmt.Errorf("snap: %w", err)
	}
	if snap.TakenAt.IsZero() {
		return fmt.Errorf("snap %s has no takenAt", snap.ID)
	}
	if !snap.DevelopsAt.IsZero() && snap.DevelopsAt.Before(snap.TakenAt) {
		return fmt.Errorf("snap %s develops at %v, before it was taken at %v", snap.ID, snap.DevelopsAt, snap.TakenAt)
	}
	return nil
}

// AssertValidDarkroomMedia validates darkroom media the same way as snaps
func AssertValidDarkroomMedia(media *types.DarkroomMedia) error {
	if media == nil {
		return fmt.Errorf("darkroom media is nil")
	}
	if err := assertMediaIdentity(media.ID, media.FilteredID, media.OriginalID); err != nil {
		return fmt.Errorf("darkroom media: %w", err)
	}
	if media.DevelopsAt.Before(media.TakenAt) {
		return fmt.Errorf("darkroom media %s develops before it was taken", media.ID)
	}
	return nil
}

// AssertValidProfile validates the profile and its direct friends
func AssertValidProfile(profile *types.Profile) error {
	if profile == nil {
		return fmt.Errorf("profile is nil")
	}
	if profile.UserID == "" {
		return fmt.Errorf("profile user id is empty")
	}
	if profile.Username != "" && !validation.IsValidUsername(profile.Username) {
		return fmt.Errorf("profile %s has invalid username %q", profile.UserID, profile.Username)
	}
	for i, friend := range profile.Friends {
		if friend == nil || friend.UserID == "" {
			return fmt.Errorf("profile %s friend %d has no user id", profile.UserID, i)
		}
	}
	for _, snap := range profile.Media {
		if err := AssertValidSnap(snap); err != nil {
			return fmt.Errorf("profile %s: %w", profile.UserID, err)
		}
	}
	return nil
}

// AssertFeedValid validates every node and that no node or snap repeats
func AssertFeedValid(feed *types.FriendsFeed) error {
	if feed == nil {
		return fmt.Errorf("feed is nil")
	}
	nodes := make(map[string]bool)
	snaps := make(map[string]bool)
	for i, node := range feed.Nodes {
		if node.ID == "" {
			return fmt.Errorf("node %d has no id", i)
		}
		if nodes[node.ID] {
			return fmt.Errorf("node %s appears twice", node.ID)
		}
		nodes[node.ID] = true
		if node.Profile == nil || node.Profile.UserID == "" {
			return fmt.Errorf("node %s has no author", node.ID)
		}
		for _, snap := range node.Entries {
			if err := AssertValidSnap(snap); err != nil {
				return fmt.Errorf("node %s: %w", node.ID, err)
			}
			if snaps[snap.ID] {
				return fmt.Errorf("snap %s appears twice", snap.ID)
			}
			snaps[snap.ID] = true
		}
	}
	return nil
}

// AssertTimeRange validates that a time is within the expected range
func AssertTimeRange(t, min, max time.Time) error {
	if t.Before(min) || t.After(max) {
		return fmt.Errorf("time %v is outside range [%v, %v]", t, min, max)
	}
	return nil
}
