// seed registers a demo user with a handful of tasks in the local dev database
// and prints the bearer token to use with curl.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ErlanBelekov/task-tracker/config"
	"github.com/ErlanBelekov/task-tracker/internal/domain"
	"github.com/ErlanBelekov/task-tracker/internal/email"
	"github.com/ErlanBelekov/task-tracker/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/task-tracker/internal/log"
	"github.com/ErlanBelekov/task-tracker/internal/password"
	"github.com/ErlanBelekov/task-tracker/internal/usecase"
)

const (
	seedEmail    = "seed@test.local"
	seedPassword = "Seed-pass1!"
)

type taskSpec struct {
	name        string
	description string
	dueInDays   int // 0 means no due date
}

var tasks = []taskSpec{
	{"Buy milk", "2 litres, semi-skimmed", 1},
	{"Call mom", "", 3},
	{"Renew passport", "Photos first", 30},
	{"Read chapter 4", "", 0},
	{"Pay rent", "Before the 5th", 7},
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if cfg.Storage != "postgres" {
		log.Fatal("seed needs STORAGE=postgres; the memory store does not outlive this process")
	}

	logger := ctxlog.New(os.Stderr, cfg.Env, slog.LevelWarn)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	authUsecase := usecase.NewAuthUsecase(
		postgres.NewUserRepository(pool),
		postgres.NewTokenRepository(pool),
		password.NewBcryptHasher(cfg.BcryptCost),
		email.NewLogSender(logger),
		logger,
	)
	taskUsecase := usecase.NewTaskUsecase(postgres.NewTaskRepository(pool))

	user, err := authUsecase.Register(ctx, seedEmail, seedPassword)
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		user, err = authUsecase.Authenticate(ctx, seedEmail, seedPassword)
		if err != nil {
			log.Fatalf("seed user exists but cannot log in: %v", err)
		}
		fmt.Printf("seed user already exists: %s\n", user.ID)
	case err != nil:
		log.Fatalf("register seed user: %v", err)
	default:
		fmt.Printf("seed user created: %s\n", user.ID)
	}

	token, err := authUsecase.IssueToken(ctx, user)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	today := domain.TruncateDate(time.Now())
	for _, spec := range tasks {
		input := usecase.CreateTaskInput{UserID: user.ID, Name: spec.name}
		if spec.description != "" {
			input.Description = &spec.description
		}
		if spec.dueInDays > 0 {
			due := today.AddDate(0, 0, spec.dueInDays)
			input.DueDate = &due
		}

		task, err := taskUsecase.CreateTask(ctx, input)
		if err != nil {
			log.Fatalf("create task %q: %v", spec.name, err)
		}
		fmt.Printf("  task %s  %s\n", task.ID, task.Name)
	}

	fmt.Printf("\nseeded %d tasks for %s\n\n", len(tasks), seedEmail)
	fmt.Printf("export TOKEN=%s\n", token.Key)
	fmt.Printf("curl -s -H \"Authorization: Bearer $TOKEN\" localhost:%s/tasks\n", cfg.Port)
	fmt.Printf("curl -s -H \"Authorization: Bearer $TOKEN\" 'localhost:%s/tasks?name=buy'\n", cfg.Port)
}
