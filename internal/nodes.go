package internal

// Wire shapes of the journal GraphQL responses. Only the fields the mapper
// reads are declared; pointers mark fields whose absence matters.

type isoNode struct {
	ISOString *string `json:"isoString"`
}

type idNode struct {
	ID string `json:"id"`
}

type pageInfo struct {
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
}

type emojisNode struct {
	Emojis []string `json:"emojis"`
}

type kudosNode struct {
	Emoji      string `json:"emoji"`
	TotalCount *int   `json:"totalCount"`
}

type musicNode struct {
	Artist     string  `json:"artist"`
	ArtworkURL string  `json:"artworkUrl"`
	Duration   float64 `json:"duration"`
	SongTitle  string  `json:"songTitle"`
	SongURL    string  `json:"songUrl"`
}

type tagNode struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type profileNode struct {
	ID               string      `json:"id"`
	Username         string      `json:"username"`
	DisplayName      *string     `json:"displayName"`
	ProfilePhotoName *string     `json:"profilePhotoName"`
	Bio              *string     `json:"bio"`
	Emojis           *emojisNode `json:"emojis"`
	FriendStatus     string      `json:"friendStatus"`
	IsBlocked        bool        `json:"isBlocked"`
	BlockedMe        bool        `json:"blockedMe"`
	JoinedAt         *isoNode    `json:"joinedAt"`
	Kudos            *kudosNode  `json:"kudos"`
	Music            *musicNode  `json:"music"`
	Tags             []tagNode   `json:"tags"`

	Friends        *profileConnection `json:"friends"`
	PopularFriends *profileConnection `json:"popularFriends"`
	Mutuals        *profileConnection `json:"mutuals"`
	Albums         *albumConnection   `json:"albums"`
}

type profileConnection struct {
	TotalCount *int `json:"totalCount"`
	Edges      []struct {
		Cursor string      `json:"cursor"`
		Node   profileNode `json:"node"`
	} `json:"edges"`
}

type contentNode struct {
	Filtered *string `json:"filtered"`
	Original *string `json:"original"`
}

type mediaNode struct {
	ID         string       `json:"id"`
	TakenAt    *isoNode     `json:"takenAt"`
	DevelopsAt *isoNode     `json:"developsAt"`
	TakenBy    *idNode      `json:"takenBy"`
	Timezone   string       `json:"timezone"`
	Content    *contentNode `json:"content"`
}

type albumMediaNode struct {
	AddedAt *isoNode   `json:"addedAt"`
	Media   *mediaNode `json:"media"`
}

type albumMediaConnection struct {
	TotalCount *int `json:"totalCount"`
	Edges      []struct {
		Cursor string         `json:"cursor"`
		Node   albumMediaNode `json:"node"`
	} `json:"edges"`
	PageInfo *pageInfo `json:"pageInfo"`
}

type albumNode struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Visibility string                `json:"visibility"`
	CreatedAt  *isoNode              `json:"createdAt"`
	UpdatedAt  *isoNode              `json:"updatedAt"`
	CreatedBy  *idNode               `json:"createdBy"`
	Media      *albumMediaConnection `json:"media"`
}

type albumConnection struct {
	TotalCount *int `json:"totalCount"`
	Edges      []struct {
		Node albumNode `json:"node"`
	} `json:"edges"`
}

type feedEntryNode struct {
	ID    string     `json:"id"`
	Seen  bool       `json:"seen"`
	Media *mediaNode `json:"media"`
}

type feedContentNode struct {
	Typename    string          `json:"__typename"`
	Entries     []feedEntryNode `json:"entries"`
	SharedMedia *struct {
		Entries []feedEntryNode `json:"entries"`
	} `json:"sharedMedia"`
}

type feedItemNode struct {
	ID        string           `json:"id"`
	Content   *feedContentNode `json:"content"`
	User      *profileNode     `json:"user"`
	Timestamp *isoNode         `json:"timestamp"`
}

type feedEdge struct {
	Cursor string       `json:"cursor"`
	Node   feedItemNode `json:"node"`
}

type feedConnection struct {
	Edges    []feedEdge `json:"edges"`
	PageInfo *pageInfo  `json:"pageInfo"`
}

type mediaConnection struct {
	Edges []struct {
		Cursor string    `json:"cursor"`
		Node   mediaNode `json:"node"`
	} `json:"edges"`
	PageInfo *pageInfo `json:"pageInfo"`
}

type searchUserNode struct {
	ID               string  `json:"id"`
	Username         string  `json:"username"`
	DisplayName      *string `json:"displayName"`
	ProfilePhotoName *string `json:"profilePhotoName"`
	FriendStatus     string  `json:"friendStatus"`
	BlockedMe        bool    `json:"blockedMe"`
	IsBlocked        bool    `json:"isBlocked"`
}

type searchConnection struct {
	Edges []struct {
		Node searchUserNode `json:"node"`
	} `json:"edges"`
	PageInfo *pageInfo `json:"pageInfo"`
}

type successNode struct {
	Success *bool `json:"success"`
}
