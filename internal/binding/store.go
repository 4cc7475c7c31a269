package binding

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rikka-bot/rikka-data/internal/config"
)

// Store persists bindings in Postgres. One row per user; every setter is an
// upsert so first bind and re-bind share a path.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a binding store over the shared pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Get returns the stored binding for a user, or (nil, nil) when absent.
func (s *Store) Get(ctx context.Context, userID string) (*Binding, error) {
	var b Binding
	err := s.pool.QueryRow(ctx, "binding_get", userID).Scan(
		&b.UserID, &b.FriendCode, &b.LxnsAPIKey,
		&b.DivingFishImportToken, &b.DivingFishUsername, &b.DefaultProvider,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get binding %s: %w", userID, err)
	}
	return &b, nil
}

// SetFriendCode stores the user's provider friend code.
func (s *Store) SetFriendCode(ctx context.Context, userID, friendCode string) error {
	return s.upsert(ctx, userID, "friend_code", friendCode)
}

// SetLxnsAPIKey stores the user's LXNS personal API key.
func (s *Store) SetLxnsAPIKey(ctx context.Context, userID, apiKey string) error {
	return s.upsert(ctx, userID, "lxns_api_key", apiKey)
}

// SetDivingFishImportToken stores the user's DivingFish import token.
func (s *Store) SetDivingFishImportToken(ctx context.Context, userID, token string) error {
	return s.upsert(ctx, userID, "diving_fish_import_token", token)
}

// SetDivingFishUsername stores the user's DivingFish display username.
func (s *Store) SetDivingFishUsername(ctx context.Context, userID, username string) error {
	return s.upsert(ctx, userID, "diving_fish_username", username)
}

// SetDefaultProvider stores the user's explicit provider preference.
func (s *Store) SetDefaultProvider(ctx context.Context, userID, providerName string) error {
	return s.upsert(ctx, userID, "default_provider", providerName)
}

// upsert writes one column for a user, creating the row on first write. The
// column name comes from the fixed setter list above, never from input.
func (s *Store) upsert(ctx context.Context, userID, column, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO `+config.BindingsTable+` (user_id, `+column+`)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET
			`+column+` = EXCLUDED.`+column+`,
			updated_at = NOW()`,
		userID, value,
	)
	if err != nil {
		return fmt.Errorf("upsert binding %s.%s: %w", userID, column, err)
	}
	return nil
}
