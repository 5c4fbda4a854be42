package repository

import (
	"fmt"

	"github.com/Domenick1991/hotelbooking/config"
	supa "github.com/supabase-community/supabase-go"
)

const (
	bookingsTable = "bookings"
	hotelsTable   = "hotels"
	profilesTable = "user_profiles"
)

func NewSupabaseClient(cfg config.SupabaseConfig) (*supa.Client, error) {
	client, err := supa.NewClient(cfg.URL, cfg.ServiceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return client, nil
}
