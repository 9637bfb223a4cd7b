// Command superadmin creates or deletes the superadmin account out of band.
//
//	superadmin create   # uses SUPERADMIN_EMAIL, SUPERADMIN_PASSWORD, ...
//	superadmin delete
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Marco21c/backend-noticias/internal/config"
	"github.com/Marco21c/backend-noticias/internal/db"
	"github.com/Marco21c/backend-noticias/internal/observability"
	"github.com/Marco21c/backend-noticias/internal/security"
	"github.com/Marco21c/backend-noticias/internal/service"
	"github.com/Marco21c/backend-noticias/internal/storage"
)

const usage = "usage: superadmin <create|delete>"

var _ db.SuperadminStore = service.UserStore(nil)

func main() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	backend, err := storage.Open(ctx, cfg, nil, log)
	if err != nil {
		return err
	}
	defer backend.Close(context.Background())

	return execute(ctx, args[0], backend.Users, db.SuperadminFromConfig(cfg), security.NewHasher(), out)
}

func execute(ctx context.Context, cmd string, store db.SuperadminStore, sa db.Superadmin, hasher db.PasswordHasher, out io.Writer) error {
	switch cmd {
	case "create":
		u, created, err := db.EnsureSuperadmin(ctx, store, hasher, sa)
		if err != nil {
			return err
		}
		if !created {
			fmt.Fprintf(out, "superadmin already exists: %s\n", u.Email)
			return nil
		}
		fmt.Fprintf(out, "superadmin created: %s\n", u.Email)
		return nil

	case "delete":
		u, deleted, err := db.RemoveSuperadmin(ctx, store)
		if err != nil {
			return err
		}
		if !deleted {
			fmt.Fprintln(out, "no superadmin found")
			return nil
		}
		fmt.Fprintf(out, "superadmin deleted: %s\n", u.Email)
		return nil

	default:
		return fmt.Errorf("unknown command %q; %s", cmd, usage)
	}
}
