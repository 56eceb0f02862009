package config

import (
	"fmt"
	"strings"

	"github.com/supabase-community/supabase-go"
)

// NewSupabase builds the identity provider client. Admin user endpoints need the service role key.
func NewSupabase(env Env) (*supabase.Client, error) {
	if strings.TrimSpace(env.SupabaseURL) == "" || strings.TrimSpace(env.SupabaseServiceKey) == "" {
		return nil, fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY must be set")
	}
	client, err := supabase.NewClient(env.SupabaseURL, env.SupabaseServiceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return client, nil
}
