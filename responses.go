package lapse

import (
	"encoding/json"

	"github.com/jamesprial/go-lapse-api-wrapper/internal"
	"github.com/jamesprial/go-lapse-api-wrapper/pkg/types"
)

// Parser maps journal GraphQL data objects onto domain types. It is useful
// for replaying captured responses without a client.
type Parser interface {
	ParseProfileNode(raw json.RawMessage) (*types.Profile, error)
	ParseSnapNode(raw json.RawMessage) (*types.Snap, error)
	ParseCurrentUser(data json.RawMessage) (*types.Profile, error)
	ParseProfileDetails(data json.RawMessage) (*types.Profile, error)
	ParseSearchUsers(data json.RawMessage) ([]*types.SearchUser, error)
	ParseAlbum(data json.RawMessage) (*types.Album, error)
	ParseDarkroom(data json.RawMessage) (*types.DarkroomPage, error)
	ParseUploadURL(data json.RawMessage) (string, error)
}

// NewParser returns the parser the client uses.
func NewParser() Parser {
	return internal.NewParser()
}
