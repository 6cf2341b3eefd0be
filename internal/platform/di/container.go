// internal/platform/di/container.go
package di

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	httpin "padoca/internal/adapters/in/http"
	fsrepo "padoca/internal/adapters/out/firestore"
	httpout "padoca/internal/adapters/out/http"
	"padoca/internal/adapters/out/mail"
	"padoca/internal/application/stats"
	usecase "padoca/internal/application/usecase"
	appcfg "padoca/internal/infra/config"
	firestoreinfra "padoca/internal/infra/firestore"
)

// Container bundles everything main.go needs. Firestore and Firebase
// Auth are strict (the app is unusable without them); Secret Manager
// and SendGrid are best-effort (warn and continue degraded).
type Container struct {
	Config *appcfg.Config

	firestore     *firestoreinfra.ClientWrapper
	firebaseAuth  *firebaseauth.Client
	secretManager *secretmanager.Client

	statsRegistry *stats.Registry

	deps httpin.RouterDeps
}

// NewContainer wires clients -> repositories -> usecases -> router deps.
func NewContainer(ctx context.Context) (*Container, error) {
	cfg := appcfg.Load()
	if cfg == nil {
		return nil, errors.New("di: config is nil")
	}

	c := &Container{Config: cfg}

	// Credentials file (optional; mainly for local dev)
	credFile := strings.TrimSpace(cfg.FirestoreCredentialsFile)
	if credFile == "" {
		credFile = strings.TrimSpace(cfg.GCPCreds)
	}
	var clientOpts []option.ClientOption
	if credFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(credFile))
		log.Printf("[di] using credentials file for GCP clients")
	} else {
		log.Printf("[di] using Application Default Credentials")
	}

	// 1) Firestore (strict)
	fsw, err := firestoreinfra.NewClient(ctx, cfg.FirestoreProjectID, credFile)
	if err != nil {
		return nil, fmt.Errorf("di: firestore init: %w", err)
	}
	c.firestore = fsw

	// 2) Firebase Auth (strict: it is the only access gate)
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, clientOpts...)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("di: firebase app init: %w", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("di: firebase auth init: %w", err)
	}
	c.firebaseAuth = authClient
	log.Printf("✅ Firebase Auth ready (project: %s)", cfg.FirebaseProjectID)

	// 3) Secret Manager (best-effort; only needed to resolve the
	//    OpenAI key when it is not in the environment)
	openAIKey := strings.TrimSpace(cfg.OpenAIAPIKey)
	if openAIKey == "" && strings.TrimSpace(cfg.OpenAISecretName) != "" {
		sm, err := secretmanager.NewClient(ctx, clientOpts...)
		if err != nil {
			log.Printf("[di] WARN: secretmanager.NewClient failed: %v (recipe generation disabled until OPENAI_API_KEY is set)", err)
		} else {
			c.secretManager = sm
			if key, err := resolveSecret(ctx, sm, cfg.FirestoreProjectID, cfg.OpenAISecretName); err != nil {
				log.Printf("[di] WARN: OpenAI key secret resolve failed: %v", err)
			} else {
				openAIKey = key
				log.Printf("[di] OpenAI key resolved from Secret Manager")
			}
		}
	}

	// 4) Repositories
	ingredientRepo := fsrepo.NewIngredientRepositoryFS(fsw.Client)

	// 5) Optional low-stock mailer
	var notifier stats.AlertNotifier
	if strings.TrimSpace(cfg.SendGridAPIKey) != "" && strings.TrimSpace(cfg.SendGridFrom) != "" {
		notifier = mail.NewLowStockMailer(
			mail.NewSendGridClient(cfg.SendGridAPIKey),
			authClient,
			cfg.SendGridFrom,
		)
		log.Printf("[di] low-stock mailer enabled from=%s", cfg.SendGridFrom)
	} else {
		log.Printf("[di] low-stock mailer disabled (SENDGRID_API_KEY/SENDGRID_FROM empty)")
	}

	// 6) Aggregation registry + usecases
	c.statsRegistry = stats.NewRegistry(ingredientRepo, notifier)

	recipeGen := httpout.NewOpenAIRecipeClient(openAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)

	c.deps = httpin.RouterDeps{
		FirebaseAuth:  authClient,
		IngredientUC:  usecase.NewIngredientUsecase(ingredientRepo),
		RecipeUC:      usecase.NewRecipeUsecase(recipeGen),
		StatsRegistry: c.statsRegistry,
	}

	return c, nil
}

// RouterDeps returns the wired handler dependencies.
func (c *Container) RouterDeps() httpin.RouterDeps {
	return c.deps
}

// Close releases live subscriptions and external clients.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.statsRegistry != nil {
		c.statsRegistry.Close()
	}
	if c.secretManager != nil {
		_ = c.secretManager.Close()
	}
	if c.firestore != nil {
		_ = c.firestore.Close()
	}
}

// resolveSecret reads one secret version. secretName may be a bare
// secret id (expanded under projectID, version latest) or a full
// projects/.../secrets/.../versions/... resource name.
func resolveSecret(ctx context.Context, sm *secretmanager.Client, projectID, secretName string) (string, error) {
	name := strings.TrimSpace(secretName)
	if name == "" {
		return "", errors.New("secret name is empty")
	}
	if !strings.Contains(name, "/") {
		name = "projects/" + strings.TrimSpace(projectID) + "/secrets/" + name + "/versions/latest"
	}

	resp, err := sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", fmt.Errorf("AccessSecretVersion %s: %w", name, err)
	}
	if resp == nil || resp.Payload == nil {
		return "", fmt.Errorf("empty payload for %s", name)
	}
	return strings.TrimSpace(string(resp.Payload.Data)), nil
}
