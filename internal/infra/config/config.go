// internal/infra/config/config.go
package config

import "os"

// Config holds the process-wide environment configuration.
type Config struct {
	Port string

	FirestoreProjectID       string
	FirestoreCredentialsFile string
	FirebaseProjectID        string
	GCPCreds                 string

	// OpenAI: the key comes from env, or from Secret Manager when
	// OPENAI_SECRET_NAME is set and OPENAI_API_KEY is empty.
	OpenAIAPIKey     string
	OpenAISecretName string
	OpenAIBaseURL    string
	OpenAIModel      string

	// SendGrid low-stock alerts (optional; empty key disables mail)
	SendGridAPIKey string
	SendGridFrom   string

	// Frontend origin for CORS
	AllowedOrigin string
}

// Load reads the environment and returns a Config.
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "padoca-inventory")

	return &Config{
		Port: getenvDefault("PORT", "8080"),

		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		FirebaseProjectID:        getenvDefault("FIREBASE_PROJECT_ID", defaultProject),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAISecretName: os.Getenv("OPENAI_SECRET_NAME"),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:      os.Getenv("OPENAI_MODEL"),

		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		SendGridFrom:   os.Getenv("SENDGRID_FROM"),

		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
