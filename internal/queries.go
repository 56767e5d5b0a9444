package internal

import "strings"

// Fragments shared by the read queries. Each query document lists exactly the
// fragments it spreads; GraphQL rejects documents with unused fragments.
const (
	coreProfileFragment = `fragment CoreProfileFragment on Profile { __typename id displayName profilePhotoName username friendStatus isBlocked blockedMe hashedPhoneNumber joinedAt { __typename isoString } }`

	profileMusicDetails = `fragment ProfileMusicDetails on ProfileMusic { __typename artist artworkUrl duration songTitle songUrl }`

	viewProfileMusicFragment = `fragment ViewProfileMusicFragment on Profile { __typename music { __typename ...ProfileMusicDetails } }`

	viewProfileSummaryFragment = `fragment ViewProfileSummaryFragment on Profile { __typename ...CoreProfileFragment ...ViewProfileMusicFragment bio emojis { __typename emojis } kudos { __typename emoji totalCount lastSentAt { __typename isoString } } tags { __typename type text } }`

	profileDetails = `fragment ProfileDetails on Profile { __typename id displayName profilePhotoName username bio emojis { __typename emojis } friendStatus isBlocked blockedMe hashedPhoneNumber joinedAt { __typename isoString } kudos { __typename emoji totalCount lastSentAt { __typename isoString } } music { __typename ...ProfileMusicDetails } tags { __typename type text } }`

	mediaContentFragment = `fragment MediaContentFragment on Media { __typename content { __typename filtered original } }`

	coreMediaFragment = `fragment CoreMediaFragment on Media { __typename id takenAt { __typename isoString } takenBy { __typename id } deletedAt { __typename isoString } }`

	mediaReactionDetails = `fragment MediaReactionDetails on MediaReaction { __typename emoji hasReacted count }`

	mediaWithReactionsFragment = `fragment MediaWithReactionsFragment on Media { __typename reactions { __typename ...MediaReactionDetails } }`

	mediaWithMetadataFragment = `fragment MediaWithMetadataFragment on Media { __typename developsAt { __typename isoString } timezone ...MediaContentFragment submittedToTeam featured }`

	pageInfoSelection = `pageInfo { __typename startCursor endCursor hasNextPage hasPreviousPage }`
)

// compose joins an operation body with its fragments, newline separated, the
// way the Apollo iOS client serialises documents.
func compose(body string, fragments ...string) string {
	parts := make([]string, 0, len(fragments)+1)
	parts = append(parts, body)
	parts = append(parts, fragments...)
	return strings.Join(parts, "\n")
}

// mutationDocument renders the single-field mutation shape used by every
// write operation: the field takes $input and selects only success.
func mutationDocument(name, inputType, field string) string {
	return "mutation " + name + "($input: " + inputType + "!) { " + field + "(input: $input) { __typename success } }"
}

var (
	currentUserQuery = compose(
		`query CurrentUserGraphQLQuery { user { __typename ...UserDetails } }`,
		`fragment UserDetails on User { __typename profile { __typename ...ViewProfileSummaryFragment } }`,
		viewProfileSummaryFragment,
		coreProfileFragment,
		viewProfileMusicFragment,
		profileMusicDetails,
	)

	profileDetailsQuery = compose(
		`query ProfileDetailsGraphQLQuery($id: ID!, $friendsLimit: Int!, $popularLimit: Int!, $mutualLimit: Int!, $albumsLimit: Int!) { profile(id: $id) { __typename ...ProfileDetails friends(first: $friendsLimit) { __typename totalCount edges { __typename node { __typename ...ProfileDetails } } } popularFriends(first: $popularLimit) { __typename edges { __typename cursor node { __typename ...ProfileDetails } } } mutuals(first: $mutualLimit) { __typename totalCount edges { __typename node { __typename ...ProfileDetails } } } albums(last: $albumsLimit) { __typename totalCount edges { __typename node { __typename ...AlbumDetails } } } } }`,
		profileDetails,
		profileMusicDetails,
		`fragment AlbumDetails on Album { __typename id name visibility createdAt { __typename isoString } updatedAt { __typename isoString } createdBy { __typename id } media(first: 3) { __typename totalCount edges { __typename cursor node { __typename ...AlbumMediaDetails } } } }`,
		`fragment AlbumMediaDetails on AlbumMedia { __typename addedAt { __typename isoString } media { __typename ...CoreMediaFragment ...MediaContentFragment } }`,
		coreMediaFragment,
		mediaContentFragment,
	)

	searchUsersQuery = `query SearchUsersGraphQLQuery($searchTerm: String!, $first: Int, $after: String, $last: Int, $before: String) { searchUsers( searchTerm: $searchTerm first: $first after: $after last: $last before: $before ) { __typename edges { __typename cursor node { __typename id displayName profilePhotoName username friendStatus blockedMe isBlocked } } ` + pageInfoSelection + ` } }`

	friendsFeedQuery = compose(
		`query FriendsFeedItemsGraphQLQuery($first: Int, $after: String, $last: Int, $before: String) { friendsFeedItems(first: $first, after: $after, last: $last, before: $before) { __typename edges { __typename cursor node { __typename ...FriendsFeedItemDetails } } `+pageInfoSelection+` } }`,
		`fragment FriendsFeedItemDetails on FriendsFeedItem { __typename id description content { __typename ... on FriendsFeedItemMediaSharedV1 { ...FriendsFeedItemMediaSharedDetails } ... on FriendsFeedItemTaggedMediaSharedV2 { ...FriendsFeedItemTaggedMediaSharedDetails } ... on FriendsFeedItemStatusUpdatedV1 { ...FriendsFeedItemStatusUpdatedDetails } } user { __typename ...ViewProfileSummaryFragment } timestamp { __typename isoString } }`,
		`fragment FriendsFeedItemMediaSharedDetails on FriendsFeedItemMediaSharedV1 { __typename entries { __typename ...FriendsFeedItemMediaSharedEntryDetails } }`,
		`fragment FriendsFeedItemMediaSharedEntryDetails on FriendsFeedItemMediaSharedEntryV1 { __typename id seen media { __typename ...CoreMediaFragment ...MediaWithMetadataFragment ...MediaWithReactionsFragment } }`,
		`fragment FriendsFeedItemTaggedMediaSharedDetails on FriendsFeedItemTaggedMediaSharedV2 { __typename sharedMedia { __typename ...FriendsFeedItemMediaSharedDetails } }`,
		`fragment FriendsFeedItemStatusUpdatedDetails on FriendsFeedItemStatusUpdatedV1 { __typename body { __typename text } }`,
		viewProfileSummaryFragment,
		coreProfileFragment,
		viewProfileMusicFragment,
		profileMusicDetails,
		coreMediaFragment,
		mediaWithMetadataFragment,
		mediaContentFragment,
		mediaWithReactionsFragment,
		mediaReactionDetails,
	)

	albumMediaQuery = compose(
		`query AlbumMediaGraphQLQuery($id: ID!, $first: Int, $after: String, $last: Int, $before: String) { album(id: $id) { __typename id name visibility media(first: $first, after: $after, last: $last, before: $before) { __typename totalCount edges { __typename cursor node { __typename ...AlbumMediaDetails } } `+pageInfoSelection+` } } }`,
		`fragment AlbumMediaDetails on AlbumMedia { __typename addedAt { __typename isoString } media { __typename ...CoreMediaFragment ...MediaContentFragment } }`,
		coreMediaFragment,
		mediaContentFragment,
	)

	darkroomQuery = compose(
		`query DarkroomGraphQLQuery($first: Int, $after: String) { darkroom(first: $first, after: $after) { __typename edges { __typename cursor node { __typename ...DarkroomMediaDetails } } `+pageInfoSelection+` } }`,
		`fragment DarkroomMediaDetails on Media { __typename ...CoreMediaFragment ...MediaWithMetadataFragment }`,
		coreMediaFragment,
		mediaWithMetadataFragment,
		mediaContentFragment,
	)

	imageUploadURLQuery = `query ImageUploadURLGraphQLQuery($filename: String!) { imageUploadURL(filename: $filename) }`
)
