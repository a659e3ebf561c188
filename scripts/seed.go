//go:build ignore

package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/hugh/skychat/internal/database"
	"github.com/hugh/skychat/internal/database/models"
	"github.com/hugh/skychat/pkg/config"
	"github.com/hugh/skychat/pkg/util"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to apply schema: %v", err)
	}

	email := os.Getenv("SEED_EMAIL")
	if email == "" {
		email = "demo@example.com"
	}

	var existing models.User
	err = db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		fmt.Printf("Seed user already exists: %s\n", email)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("failed to look up seed user: %v", err)
	}

	org := &models.Organization{ID: "org_demo", Domain: "example.com", Slug: "demo", Name: "Demo Organization"}
	user := &models.User{ID: "user_demo", Email: email, FirstName: "Demo", LastName: "User"}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return fmt.Errorf("creating organization: %w", err)
		}
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("creating user: %w", err)
		}

		chat := &models.Chat{Title: "Sydney to Bangkok in May", UserID: &user.ID, OrganizationID: org.ID}
		if err := tx.Create(chat).Error; err != nil {
			return fmt.Errorf("creating chat: %w", err)
		}

		msg := &models.Message{
			ChatID:  chat.ID,
			Role:    "user",
			Content: datatypes.JSON(`[{"type":"text","text":"Find me a flight from SYD to BKK on 2025-05-02"}]`),
		}
		if err := tx.Create(msg).Error; err != nil {
			return fmt.Errorf("creating message: %w", err)
		}

		itinerary := "Day 1: arrive in Bangkok"
		doc := &models.Document{Title: "Bangkok itinerary", Content: &itinerary, Kind: models.DocumentKindText, UserID: user.ID}
		if err := tx.Create(doc).Error; err != nil {
			return fmt.Errorf("creating document: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	fmt.Printf("Seed data created successfully!\n")
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("Organization: %s\n", org.Name)
}
