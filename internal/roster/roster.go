package roster

import (
	"context"

	"github.com/Echoviax/emmolb/pkg/models"
)

// Source supplies the ordered known-player name lists for a game's teams.
type Source interface {
	GameRosters(ctx context.Context, gameID string) (models.Rosters, error)
}

// Static is a fixed in-memory roster source keyed by game id, used when no
// league store is configured and in tests.
type Static map[string]models.Rosters

// GameRosters returns the configured rosters for gameID, empty when unknown.
func (s Static) GameRosters(_ context.Context, gameID string) (models.Rosters, error) {
	return s[gameID], nil
}
