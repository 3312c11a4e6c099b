package main

import (
	"context"
	"errors"
	"time"

	"github.com/prysm/crm-system/internal/core/domain"
	"github.com/prysm/crm-system/internal/core/ports"
	"github.com/prysm/crm-system/internal/core/service"
	"github.com/prysm/crm-system/internal/infrastructure/config"
	"github.com/prysm/crm-system/internal/infrastructure/db/mongo"
	"github.com/prysm/crm-system/pkg/logger"
)

type seedUser struct {
	name     string
	email    string
	password string
	role     domain.Role
}

var seedUsers = []seedUser{
	{"Alice Admin", "alice@prysm.dev", "admin-password", domain.RoleAdmin},
	{"Bob Fields", "bob@prysm.dev", "employee-password", domain.RoleEmployee},
	{"Carla Reyes", "carla@prysm.dev", "employee-password", domain.RoleEmployee},
}

type seedCustomer struct {
	name    string
	email   string
	phone   string
	company string
}

var seedCustomers = []seedCustomer{
	{"Acme Corp", "contact@acme.com", "9999999999", "Acme"},
	{"Globex", "hello@globex.com", "8888888888", "Globex Inc"},
}

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Service: "crm-seed", Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	userRepo := mongo.NewUserRepository(db)
	customerRepo := mongo.NewCustomerRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("users index creation failed")
	}
	if err := customerRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("customers index creation failed")
	}

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)

	created, skipped := 0, 0
	for _, u := range seedUsers {
		_, err := authService.Register(ctx, u.name, u.email, u.password, u.role)
		switch {
		case errors.Is(err, domain.ErrUserExists):
			skipped++
		case err != nil:
			log.Fatal().Err(err).Str("email", u.email).Msg("seeding user failed")
		default:
			created++
			log.Info().Str("email", u.email).Str("role", string(u.role)).Msg("user seeded")
		}
	}

	customerService := service.NewCustomerService(customerRepo, nil, log)
	for _, c := range seedCustomers {
		_, err := customerService.Create(ctx, toCustomerInput(c))
		switch {
		case errors.Is(err, domain.ErrCustomerExists):
			skipped++
		case err != nil:
			log.Fatal().Err(err).Str("email", c.email).Msg("seeding customer failed")
		default:
			created++
			log.Info().Str("name", c.name).Msg("customer seeded")
		}
	}

	log.Info().Int("created", created).Int("skipped", skipped).Msg("seed completed")
}

func toCustomerInput(c seedCustomer) ports.CreateCustomerInput {
	return ports.CreateCustomerInput{
		Name:    c.name,
		Email:   c.email,
		Phone:   c.phone,
		Company: c.company,
	}
}
