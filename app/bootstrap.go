package app

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"library_lending/db"
	"library_lending/models"
	"library_lending/rules"
)

// BootstrapFirstStaff creates the first staff reader from BOOTSTRAP_EMAIL /
// BOOTSTRAP_PASSWORD so a fresh installation has someone able to log in and
// register everyone else. Skipped when unset or when the reader exists.
func BootstrapFirstStaff(ctx context.Context, cfg Config, repo *db.Repo) {
	if cfg.BootstrapEmail == "" || cfg.BootstrapPassword == "" {
		return
	}
	if _, err := repo.ReaderByEmail(ctx, cfg.BootstrapEmail); err == nil {
		return
	} else if !errors.Is(err, rules.ErrNotFound) {
		log.Printf("bootstrap lookup failed: %v", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("bootstrap hash failed: %v", err)
		return
	}
	reader := &models.Reader{
		ID:             uuid.NewString(),
		FirstName:      "Library",
		LastName:       "Staff",
		Email:          cfg.BootstrapEmail,
		PasswordHash:   string(hash),
		IsLibraryStaff: true,
	}
	if err := repo.CreateReader(ctx, reader); err != nil {
		log.Printf("bootstrap create failed: %v", err)
		return
	}
	log.Printf("[BOOTSTRAP] Created the first staff reader for %s", cfg.BootstrapEmail)
}
