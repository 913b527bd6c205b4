package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/rickymcpower/hrSfera/internal/adapter/repository/postgres"
	"github.com/rickymcpower/hrSfera/internal/domain"
	"github.com/rickymcpower/hrSfera/internal/pkg/config"
	"github.com/rickymcpower/hrSfera/internal/pkg/logger"

	_ "github.com/lib/pq" // postgres driver
)

// Seeds a tenant and its first admin so a fresh deployment has a login.
func main() {
	tenantName := flag.String("tenant", "Demo Pharmacy", "Name of the tenant to create")
	adminName := flag.String("name", "Admin", "Name of the admin user")
	adminEmail := flag.String("email", "admin@example.com", "Email of the admin user")
	adminPassword := flag.String("password", "", "Password of the admin user (required)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := logger.New(cfg.LogLevel)

	if *adminPassword == "" {
		logger.Error("-password is required")
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.PostgresURL)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(*adminPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", "error", err)
		os.Exit(1)
	}

	now := time.Now().UTC()
	tenant := &domain.Tenant{
		ID:        uuid.New(),
		Name:      *tenantName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	admin := &domain.User{
		ID:           uuid.New(),
		TenantID:     tenant.ID,
		Name:         *adminName,
		Email:        *adminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tenants := postgres.NewTenantRepository(db, logger)
	users := postgres.NewUserRepository(db, logger)

	if err := tenants.Store(ctx, tenant); err != nil {
		logger.Error("failed to create tenant", "error", err)
		os.Exit(1)
	}
	if err := users.Store(ctx, admin); err != nil {
		logger.Error("failed to create admin", "error", err)
		os.Exit(1)
	}

	logger.Info("seeded tenant", "tenant_id", tenant.ID, "admin_email", admin.Email)
}
