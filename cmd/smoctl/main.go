package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"smoweb/app/internal/app/bootstrap"
	"smoweb/app/internal/config"
	"smoweb/app/internal/data/database"
	"smoweb/app/internal/data/migrations"
	"smoweb/app/internal/data/schema"
	"smoweb/app/internal/domain/directory"
	applog "smoweb/app/internal/log"
)

const usage = `usage: smoctl <command> [flags]

commands:
  migrate         apply schema migrations
  seed            create the default categories
  create-user     create a user account
  hash-password   print a bcrypt hash for a password
  check-password  verify a stored user password
  export-dbml     write the database schema as DBML
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "smoctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, usage)
		return eris.New("missing command")
	}

	command, rest := args[0], args[1:]

	// hash-password needs neither configuration nor a database.
	if command == "hash-password" {
		return hashPassword(rest, stdout)
	}

	cfg, err := config.Load()
	if err != nil {
		return eris.Wrap(err, "loading configuration")
	}

	logger, err := applog.NewLogger(cfg.LogLevel)
	if err != nil {
		return eris.Wrap(err, "initialising logger")
	}

	return dispatch(ctx, command, rest, *cfg, logger, stdout)
}

func dispatch(ctx context.Context, command string, args []string, cfg config.Config, logger *logrus.Logger, stdout io.Writer) error {
	switch command {
	case "migrate", "seed", "create-user", "check-password", "export-dbml":
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprint(stdout, usage)
		return eris.Errorf("unknown command %q", command)
	}

	db, err := bootstrap.OpenDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := database.Close(db); closeErr != nil {
			logger.WithError(closeErr).Error("closing database")
		}
	}()

	if command == "migrate" {
		fmt.Fprintf(stdout, "migrated %d tables\n", len(migrations.Models()))
		return nil
	}

	if command == "export-dbml" {
		return exportDBML(ctx, db, args, stdout)
	}

	services, err := bootstrap.BuildServices(db, cfg, logger, nil)
	if err != nil {
		return err
	}

	switch command {
	case "seed":
		created, err := services.Categories.SeedDefaults(ctx)
		if err != nil {
			return eris.Wrap(err, "seeding categories")
		}
		fmt.Fprintf(stdout, "created %d categories\n", created)
		return nil
	case "create-user":
		return createUser(ctx, services.Users, args, stdout)
	default:
		return checkPassword(ctx, services.Users, args, stdout)
	}
}

func hashPassword(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)
	password := fs.String("password", "", "password to hash")
	cost := fs.Int("cost", 0, "bcrypt cost (default when zero)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *password == "" {
		return eris.New("-password is required")
	}

	hash, err := directory.HashPassword(*password, *cost)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, hash)
	return nil
}

func createUser(ctx context.Context, users directory.UserService, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	var input directory.UserInput
	fs.StringVar(&input.Email, "email", "", "email address")
	fs.StringVar(&input.Username, "username", "", "unique username")
	fs.StringVar(&input.Password, "password", "", "initial password")
	fs.StringVar(&input.FirstName, "first", "", "first name")
	fs.StringVar(&input.LastName, "last", "", "last name")
	fs.StringVar(&input.Role, "role", "", "ADMIN, EDITOR, MEMBER or STAFF")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := users.Create(ctx, input)
	if err != nil {
		return eris.Wrap(err, "creating user")
	}
	fmt.Fprintf(stdout, "created user %s (%s, %s)\n", user.Username, user.Email, user.Role)
	return nil
}

func checkPassword(ctx context.Context, users directory.UserService, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("check-password", flag.ContinueOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password to verify")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := users.Authenticate(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "password ok for %s\n", user.Email)
	return nil
}

func exportDBML(ctx context.Context, db *gorm.DB, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("export-dbml", flag.ContinueOnError)
	out := fs.String("out", "", "output file (stdout when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "" {
		return schema.Export(ctx, db, migrations.Models(), stdout)
	}

	file, err := os.Create(*out)
	if err != nil {
		return eris.Wrapf(err, "creating %s", *out)
	}
	if err := schema.Export(ctx, db, migrations.Models(), file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return eris.Wrapf(err, "closing %s", *out)
	}
	fmt.Fprintf(stdout, "wrote %s\n", *out)
	return nil
}
