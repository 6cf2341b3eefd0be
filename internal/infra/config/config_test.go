package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GCP_PROJECT_ID", "")
	t.Setenv("FIRESTORE_PROJECT_ID", "")
	t.Setenv("FIREBASE_PROJECT_ID", "")

	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, cfg.FirestoreProjectID, cfg.FirebaseProjectID)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GCP_PROJECT_ID", "padoca-prod")
	t.Setenv("FIREBASE_PROJECT_ID", "padoca-auth")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ALLOWED_ORIGIN", "https://padoca.example.app")

	cfg := Load()
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "padoca-prod", cfg.FirestoreProjectID)
	require.Equal(t, "padoca-auth", cfg.FirebaseProjectID)
	require.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	require.Equal(t, "https://padoca.example.app", cfg.AllowedOrigin)
}
