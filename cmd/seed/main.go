package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"facilityhub/internal/config"
	"facilityhub/internal/database"
	"facilityhub/internal/domain"
	"facilityhub/internal/pkg/jwt"
	"facilityhub/internal/pkg/logger"
	"facilityhub/internal/repository"
)

// Seeds a local database with one user per role and a few facilities, and
// prints ready-to-use dev tokens.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("database connect failed")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	userRepo := repository.NewUserRepository(db)
	facilityRepo := repository.NewFacilityRepository(db)
	ctx := context.Background()

	log.Info("cleaning old data")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM maintenance_requests")
	db.Exec("DELETE FROM facilities")
	db.Exec("DELETE FROM users")

	log.Info("creating users")
	users := []domain.User{
		{Username: "admin", Email: "admin@facilityhub.local", FirstName: "Ada", LastName: "Adminson", Role: domain.RoleAdmin, IsActive: true},
		{Username: "manager", Email: "manager@facilityhub.local", FirstName: "Mark", LastName: "Manning", Role: domain.RoleManager, IsActive: true},
		{Username: "tech", Email: "tech@facilityhub.local", FirstName: "Tina", LastName: "Tooler", Role: domain.RoleTechnician, IsActive: true},
		{Username: "employee", Email: "employee@facilityhub.local", FirstName: "Eve", LastName: "Everly", Role: domain.RoleEmployee, IsActive: true},
	}

	j := jwt.New(cfg.JWTSecret, 7*24*time.Hour)
	for i := range users {
		hash, _ := bcrypt.GenerateFromPassword([]byte(users[i].Username+"123"), bcrypt.DefaultCost)
		users[i].PasswordHash = string(hash)
		if err := userRepo.Create(ctx, &users[i]); err != nil {
			log.WithError(err).Fatal("seed user failed")
		}

		token, _ := j.GenerateToken(users[i].ID, users[i].Role)
		fmt.Printf("%-10s %s\n", users[i].Username, token)
	}

	log.Info("creating facilities")
	facilities := []domain.Facility{
		{Name: "Conference Room A", Location: "Floor 1", Capacity: 12, IsActive: true},
		{Name: "Conference Room B", Location: "Floor 2", Capacity: 8, IsActive: true},
		{Name: "Gym", Location: "Basement", Capacity: 30, IsActive: true},
		{Name: "Auditorium", Location: "Floor 3", Capacity: 120, IsActive: true},
	}
	for i := range facilities {
		if err := facilityRepo.Create(ctx, &facilities[i]); err != nil {
			log.WithError(err).Fatal("seed facility failed")
		}
	}

	log.Info("seed complete")
}
