// Command seed creates or deletes users directly in the database.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/yukikurage/founder-command-center/internal/config"
	"github.com/yukikurage/founder-command-center/internal/database"
	"github.com/yukikurage/founder-command-center/internal/dto"
	"github.com/yukikurage/founder-command-center/internal/logger"
	"github.com/yukikurage/founder-command-center/internal/models"
	"github.com/yukikurage/founder-command-center/internal/repository"
	"github.com/yukikurage/founder-command-center/internal/services"
	"go.uber.org/zap"
)

type options struct {
	username   string
	password   string
	email      string
	firstName  string
	lastName   string
	staff      bool
	superuser  bool
	inactive   bool
	sampleData bool
	delete     bool
}

func main() {
	var opts options
	fs := pflag.NewFlagSet("seed", pflag.ExitOnError)
	fs.StringVar(&opts.username, "username", "testuser", "username to create or delete")
	fs.StringVar(&opts.password, "password", "testpass123", "password of the created user")
	fs.StringVar(&opts.email, "email", "", "email of the created user")
	fs.StringVar(&opts.firstName, "first-name", "", "first name of the created user")
	fs.StringVar(&opts.lastName, "last-name", "", "last name of the created user")
	fs.BoolVar(&opts.staff, "staff", false, "mark the user as staff")
	fs.BoolVar(&opts.superuser, "superuser", false, "mark the user as superuser")
	fs.BoolVar(&opts.inactive, "inactive", false, "create the user deactivated")
	fs.BoolVar(&opts.sampleData, "sample-data", false, "create sample clients, workers and tasks")
	fs.BoolVar(&opts.delete, "delete", false, "delete the user and everything it owns")
	_ = fs.Parse(os.Args[1:])

	if err := run(context.Background(), opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(true)
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := database.Connect(cfg, log)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := database.Migrate(db, log); err != nil {
		return err
	}

	store := repository.NewStore(db)
	auth := services.NewAuthService(store.Users)

	if opts.delete {
		if err := auth.DeleteUser(ctx, opts.username); err != nil {
			return fmt.Errorf("failed to delete %s: %w", opts.username, err)
		}
		log.Info("Deleted user", zap.String("username", opts.username))
		return nil
	}

	user, err := auth.CreateUser(ctx, services.CreateUserInput{
		Username:    opts.username,
		Password:    opts.password,
		Email:       opts.email,
		FirstName:   opts.firstName,
		LastName:    opts.lastName,
		IsStaff:     opts.staff,
		IsSuperuser: opts.superuser,
		Inactive:    opts.inactive,
	})
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.username, err)
	}
	log.Info("Created user", zap.String("username", user.Username), zap.Uint64("id", user.ID))

	if opts.sampleData {
		if err := seedSampleData(ctx, store, user); err != nil {
			return err
		}
		log.Info("Created sample data", zap.String("username", user.Username))
	}
	return nil
}

func seedSampleData(ctx context.Context, store *repository.Store, user *models.User) error {
	clients := services.NewClientService(store)
	workers := services.NewWorkerService(store)
	tasks := services.NewTaskService(store)

	acme, err := clients.Create(ctx, user.ID, dto.ClientPayload{
		Name:         dto.Some("Acme Corp"),
		ContactEmail: dto.Some("hello@acme.example"),
	})
	if err != nil {
		return err
	}
	if _, err := clients.Create(ctx, user.ID, dto.ClientPayload{
		Name:  dto.Some("Globex"),
		Phone: dto.Some("555-0199"),
	}); err != nil {
		return err
	}

	designer, err := workers.Create(ctx, user.ID, dto.WorkerPayload{
		Name:         dto.Some("Dana Designer"),
		Skills:       dto.Some("branding, UI"),
		Availability: dto.Some("Mon-Wed"),
	})
	if err != nil {
		return err
	}
	if _, err := workers.Create(ctx, user.ID, dto.WorkerPayload{
		Name:   dto.Some("Eli Engineer"),
		Skills: dto.Some("Go, Postgres"),
	}); err != nil {
		return err
	}

	for _, payload := range []dto.TaskPayload{
		{
			Description:      dto.Some(json.RawMessage(`"Draft the Acme proposal"`)),
			ClientID:         dto.Some(dto.PK(acme.ID)),
			AssignedWorkerID: dto.Some(dto.PK(designer.ID)),
			Status:           dto.Some(string(models.TaskStatusInProgress)),
		},
		{
			Description: dto.Some(json.RawMessage(`"Send the Acme invoice"`)),
			ClientID:    dto.Some(dto.PK(acme.ID)),
		},
	} {
		if _, err := tasks.Create(ctx, user.ID, payload); err != nil {
			return err
		}
	}
	return nil
}
