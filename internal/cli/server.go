package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/app"
	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/config"
	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/domain"
	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/infra/memory"
	pgstore "github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/infra/postgres"
	redisinfra "github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/infra/redis"
	transport "github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/transport/http"
)

const defaultProfileLimit = 100

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the practice-exam server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	sessionTTL := config.TTLDuration(cfg.Redis.TTL, 2*time.Hour)
	profileTTL := config.TTLDuration(cfg.Profiles.TTL, 5*time.Minute)
	profileLimit := cfg.Profiles.Limit
	if profileLimit <= 0 {
		profileLimit = defaultProfileLimit
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var (
		catalog       app.CatalogReader
		progressStore app.ProgressStore
		profileSource app.ProfileStore
		roles         app.RoleRegistry
	)
	if pool != nil {
		store := pgstore.NewStore(pool)
		catalog, progressStore, profileSource, roles = store, store, store, store
	} else {
		catalog = memory.NewCatalog(sampleQuestions())
		progressStore = memory.NewProgressStore()
		profileSource = memory.NewProfileStore(sampleCandidates())
		roles = memory.NewRoleRegistry(sampleRoles())
	}

	var profiles app.ProfileStore
	if redisClient != nil {
		profiles = redisinfra.NewProfileCache(redisClient, profileSource, profileTTL)
	} else {
		profiles = memory.NewProfileCache(profileSource, profileTTL)
	}

	var sessions app.SessionRegistry
	if redisClient != nil {
		sessions = redisinfra.NewSessionRegistry(redisClient, sessionTTL)
	} else {
		sessions = memory.NewSessionRegistry()
	}

	service := app.NewExamService(catalog, progressStore, profiles, roles, sessions, profileLimit)
	wsHandler := transport.NewWSHandler(service)
	apiHandler := transport.NewAPIHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	mux.HandleFunc("/leaderboard", apiHandler.ServeLeaderboard)
	mux.HandleFunc("/placement", apiHandler.ServePlacement)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting practice-exam service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// sampleQuestions seeds the demo catalog; a Postgres-backed deployment loads
// the real question bank instead.
func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:             "q-pt-1",
			SubjectID:      "portuguese",
			Board:          "FGV",
			Year:           2024,
			ExamName:       "Prefeitura de Salvador",
			Prompt:         "Which option completes the sentence correctly?",
			Options:        []string{"havia", "haviam", "houveram", "houvesse"},
			CorrectLetter:  "A",
			EducationLevel: "superior",
		},
		{
			ID:             "q-pt-2",
			SubjectID:      "portuguese",
			Board:          "CESPE",
			Year:           2023,
			ExamName:       "TRT 5a Regiao",
			Prompt:         "Identify the sentence with correct verbal agreement.",
			Options:        []string{"Fazem dois anos.", "Faz dois anos.", "Fizeram-se tarde."},
			CorrectLetter:  "B",
			EducationLevel: "medio",
		},
	}
}

func sampleCandidates() []domain.CandidateRecord {
	return []domain.CandidateRecord{
		{
			Profile: domain.CandidateProfile{
				ID:           "cand-1",
				DisplayName:  "Ana",
				City:         "Salvador",
				State:        "BA",
				Plan:         domain.PlanPaid,
				TrackedRoles: []string{"role-1"},
			},
			Progress: domain.CandidateProgress{QuestionsResolved: 120, AccuracyRate: 78.3},
		},
		{
			Profile: domain.CandidateProfile{
				ID:           "cand-2",
				DisplayName:  "Bruno",
				City:         "Feira de Santana",
				State:        "BA",
				Plan:         domain.PlanFree,
				TrackedRoles: `["role-1"]`, // legacy JSON-encoded shape
				Disability:   true,
			},
			Progress: domain.CandidateProgress{QuestionsResolved: 80, AccuracyRate: 82.5},
		},
	}
}

func sampleRoles() map[string]domain.Role {
	return map[string]domain.Role{
		"role-1": {
			ID:              "role-1",
			Name:            "Technical Analyst",
			EducationLevel:  "superior",
			OpenSeats:       10,
			DisabilitySeats: 2,
			ReserveSeats:    5,
		},
	}
}
