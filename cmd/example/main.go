package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	lapse "github.com/jamesprial/go-lapse-api-wrapper"
	lapseerrors "github.com/jamesprial/go-lapse-api-wrapper/pkg/errors"
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/types"
)

func main() {
	// Pick up LAPSE_* variables from a local .env when present
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load .env: %v", err)
	}

	config, err := lapse.LoadConfigFromEnv()
	if err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}
	if config.RefreshToken == "" {
		log.Fatal("LAPSE_REFRESH_TOKEN environment variable is required")
	}

	// Route structured logs to stdout; adjust the level as needed.
	config.Logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	// Create the client
	client, err := lapse.NewClient(config)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	// Exchange the refresh token
	ctx := context.Background()
	if err := client.Connect(ctx); err != nil {
		if lapseerrors.IsCode(err, lapseerrors.CodeAuthRejected) {
			log.Fatal("Refresh token was rejected; sign in again to get a new one")
		}
		log.Fatalf("Failed to connect to Lapse: %v", err)
	}

	fmt.Println("Successfully connected to Lapse!")
	if exp := client.TokenExpiresAt(); !exp.IsZero() {
		fmt.Printf("Access token expires at %s\n", exp.Format("15:04:05"))
	}

	me, err := client.CurrentUser(ctx)
	if err != nil {
		log.Fatalf("Failed to get current user: %v", err)
	}
	fmt.Printf("Authenticated as: %s (%s)\n", me.Username, me.DisplayName)

	// Fetch the most recent friends feed
	feed, err := client.GetFriendsFeed(ctx, &types.FriendsFeedRequest{Limit: 20})
	if err != nil {
		log.Printf("Failed to get friends feed: %v", err)
	} else {
		fmt.Printf("\nFriends feed (%d items):\n", len(feed.Nodes))
		for i, node := range feed.Nodes {
			fmt.Printf("%d. %s shared %d photo(s) at %s\n",
				i+1, node.Profile.Username, len(node.Entries), node.Timestamp.Format("Jan 2 15:04"))
		}

		fmt.Println("\nMost active friends:")
		for _, p := range feed.Profiles() {
			if len(p.Media) < 2 {
				continue
			}
			fmt.Printf("  - %s: %d photos\n", p.Username, len(p.Media))
		}

		// Render a CDN link for the first photo in the feed
		if len(feed.Nodes) > 0 && len(feed.Nodes[0].Entries) > 0 {
			url, err := client.SnapImageURL(feed.Nodes[0].Entries[0], 80, false)
			if err == nil {
				fmt.Printf("\nLatest photo: %s\n", url)
			}
		}
	}

	// Load our own profile with friends and walk the friend graph
	profile, err := client.GetProfileByID(ctx, &types.ProfileRequest{UserID: me.UserID, FriendsLimit: 25})
	if err != nil {
		log.Printf("Failed to get profile: %v", err)
		return
	}

	graph := lapse.NewFriendGraph(profile)
	fmt.Printf("\nProfile %s has %d friend(s) loaded, %d album(s)\n",
		profile.Username, len(profile.Friends), len(profile.Albums))
	fmt.Printf("Distinct profiles in graph: %d\n", graph.Count())

	for _, album := range profile.Albums {
		fmt.Printf("  Album %q: %d item(s)\n", album.Name, album.TotalCount)
	}
}
