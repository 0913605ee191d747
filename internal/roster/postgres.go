package roster

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Echoviax/emmolb/pkg/models"
	_ "github.com/lib/pq"
)

// Client reads player name lists from the league store. Read-only: team and
// league management live elsewhere.
type Client struct {
	db *sql.DB
}

// NewClient creates a roster client for the given Postgres DSN.
func NewClient(dsn string) (*Client, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

// GameRosters returns both teams' player names in lineup slot order.
func (c *Client) GameRosters(ctx context.Context, gameID string) (models.Rosters, error) {
	var awayTeamID, homeTeamID string

	query := `
		SELECT away_team_id, home_team_id
		FROM games
		WHERE game_id = $1
	`
	if err := c.db.QueryRowContext(ctx, query, gameID).Scan(&awayTeamID, &homeTeamID); err != nil {
		return models.Rosters{}, fmt.Errorf("failed to look up game %s: %w", gameID, err)
	}

	away, err := c.teamNames(ctx, awayTeamID)
	if err != nil {
		return models.Rosters{}, err
	}
	home, err := c.teamNames(ctx, homeTeamID)
	if err != nil {
		return models.Rosters{}, err
	}

	return models.Rosters{Away: away, Home: home}, nil
}

// teamNames returns one team's player names in lineup slot order.
func (c *Client) teamNames(ctx context.Context, teamID string) ([]string, error) {
	query := `
		SELECT player_name
		FROM team_rosters
		WHERE team_id = $1
		ORDER BY lineup_slot ASC
	`

	rows, err := c.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster for team %s: %w", teamID, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan roster row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster rows: %w", err)
	}

	return names, nil
}

// Close closes the underlying database handle.
func (c *Client) Close() error {
	return c.db.Close()
}
