package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	lapse "github.com/jamesprial/go-lapse-api-wrapper"
)

func main() {
	kind := flag.String("kind", "darkroom", "response kind: current-user, profile, search, album, darkroom, upload-url")
	file := flag.String("file", "", "captured GraphQL data object to replay (reads the built-in sample when empty)")
	flag.Parse()

	if *file == "" {
		// No capture given, check the parsing logic against a sample
		testParsingLogic()
		return
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}

	// Accept either the bare data object or the full {"data": ...} envelope
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		raw = envelope.Data
	}

	if err := replay(lapse.NewParser(), *kind, raw); err != nil {
		log.Fatalf("Failed to parse %s response: %v", *kind, err)
	}
}

func replay(p lapse.Parser, kind string, data json.RawMessage) error {
	switch kind {
	case "current-user":
		me, err := p.ParseCurrentUser(data)
		if err != nil {
			return err
		}
		fmt.Printf("User %s (%s) id=%s\n", me.Username, me.DisplayName, me.UserID)
	case "profile":
		prof, err := p.ParseProfileDetails(data)
		if err != nil {
			return err
		}
		fmt.Printf("Profile %s: %d friend(s), %d album(s)\n", prof.Username, len(prof.Friends), len(prof.Albums))
		for _, f := range prof.Friends {
			fmt.Printf("  - %s\n", f.Username)
		}
	case "search":
		users, err := p.ParseSearchUsers(data)
		if err != nil {
			return err
		}
		fmt.Printf("Search returned %d user(s)\n", len(users))
		for i, u := range users {
			fmt.Printf("%d. %s id=%s\n", i+1, u.Username, u.UserID)
		}
	case "album":
		album, err := p.ParseAlbum(data)
		if err != nil {
			return err
		}
		fmt.Printf("Album %q: %d of %d item(s) loaded\n", album.Name, len(album.Media), album.TotalCount)
	case "darkroom":
		page, err := p.ParseDarkroom(data)
		if err != nil {
			return err
		}
		fmt.Printf("Darkroom page: %d item(s), next cursor=%q\n", len(page.Media), page.EndCursor)
		for _, m := range page.Media {
			fmt.Printf("  %s develops %s\n", m.ID, m.DevelopsAt.Format("Jan 2 15:04"))
		}
	case "upload-url":
		url, err := p.ParseUploadURL(data)
		if err != nil {
			return err
		}
		fmt.Printf("Upload URL: %s\n", url)
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
	return nil
}

func testParsingLogic() {
	fmt.Println("No capture file given. Running parsing logic test...")

	// A darkroom page the way the journal API typically returns it
	sampleResponse := `{
		"darkroom": {
			"edges": [
				{"cursor": "c1", "node": {"id": "m1", "takenAt": {"isoString": "2024-03-15T09:00:00.000Z"}, "developsAt": {"isoString": "2024-03-15T10:00:00.000Z"}}},
				{"cursor": "c2", "node": {"id": "m2", "takenAt": {"isoString": "2024-03-15T09:05:00.000Z"}, "developsAt": {"isoString": "2024-03-15T10:05:00.000Z"}}}
			],
			"pageInfo": {"endCursor": "c2", "hasNextPage": false}
		}
	}`

	if err := replay(lapse.NewParser(), "darkroom", json.RawMessage(sampleResponse)); err != nil {
		log.Fatalf("Failed to parse sample: %v", err)
	}
}
