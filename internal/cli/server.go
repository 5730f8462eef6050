package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lesson-author-service/internal/app"
	"lesson-author-service/internal/config"
	"lesson-author-service/internal/domain"
	"lesson-author-service/internal/infra/memory"
	pgstore "lesson-author-service/internal/infra/postgres"
	redisinfra "lesson-author-service/internal/infra/redis"
	transport "lesson-author-service/internal/transport/http"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the lesson authoring server",
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
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var store app.LessonStore
	var loader memory.LessonLoader
	if pool != nil {
		pg := pgstore.NewLessonStore(pool)
		store = pg
		loader = pg
	} else {
		mem := memory.NewLessonStore()
		seedLessons(ctx, mem)
		store = mem
		loader = mem
	}

	lessonTTL := config.TTLDuration(cfg.Lesson.TTL, 10*time.Minute)
	var lessonRepo app.LessonRepository
	if redisClient != nil {
		lessonRepo = redisinfra.NewLessonRepository(redisClient, loader, lessonTTL)
	} else {
		lessonRepo = memory.NewLessonRepository(loader, lessonTTL)
	}

	var sessions app.SessionRepository
	if redisClient != nil {
		sessions = redisinfra.NewSessionStore(redisClient, redisTTL)
	} else {
		sessions = memory.NewSessionStore()
	}

	service := app.NewLessonService(sessions, lessonRepo, store)
	wsHandler := transport.NewWSHandler(service)
	lessonHandler := transport.NewLessonHandler(service)

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ws/edit", wsHandler.ServeWS)
	lessonHandler.Register(r)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting lesson author service on :%s", finalPort)
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

// seedLessons loads a demo lesson so the storeless mode is usable out of
// the box.
func seedLessons(ctx context.Context, store *memory.LessonStore) {
	passing := 80
	_, _ = store.CreateLesson(ctx, domain.Lesson{
		ID:      "lesson-1",
		Title:   "Linear equations",
		Grade:   "8",
		Type:    "theory",
		Content: "<h2>Linear equations</h2><p>An equation of the form ax + b = 0...</p>",
		QuizData: &domain.QuizDocument{
			Settings: &domain.QuizSettings{PassingScore: passing},
			Questions: []domain.Question{
				{
					ID:     "q1",
					Kind:   domain.KindMultiChoice,
					Prompt: "Solve 2x + 4 = 0",
					Points: 1,
					Options: []domain.Option{
						{ID: "o1", Text: "x = 2", IsCorrect: false},
						{ID: "o2", Text: "x = -2", IsCorrect: true},
					},
				},
			},
		},
	})
}
