package repository

import (
	"context"
	"time"

	"github.com/Domenick1991/hotelbooking/internal/domain"
	supa "github.com/supabase-community/supabase-go"
)

type SupabaseProfileRepository struct {
	client *supa.Client
}

func NewSupabaseProfileRepository(client *supa.Client) ProfileRepository {
	return &SupabaseProfileRepository{client: client}
}

func (r *SupabaseProfileRepository) Get(_ context.Context, userID string) (*domain.Profile, error) {
	var rows []domain.Profile
	if _, err := r.client.From(profilesTable).
		Select("*", "", false).
		Eq("id", userID).
		ExecuteTo(&rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (r *SupabaseProfileRepository) Update(_ context.Context, userID, name, phone string) (*domain.Profile, error) {
	update := map[string]interface{}{
		"name":       name,
		"phone":      phone,
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}

	var rows []domain.Profile
	if _, err := r.client.From(profilesTable).
		Update(update, "representation", "").
		Eq("id", userID).
		ExecuteTo(&rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

var _ ProfileRepository = (*SupabaseProfileRepository)(nil)
