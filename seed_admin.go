package main

import (
	"log"

	"photostudio-server/config"
	"photostudio-server/database"
	"photostudio-server/models"
	"photostudio-server/utils"
)

// seedAdminUser ensures the studio's administrator account exists. The
// credentials come from the environment; with no password set, no admin is
// created.
func seedAdminUser() error {
	cfg := config.AppConfig.Admin
	if cfg.Password == "" {
		log.Println("⚠️ ADMIN_PASSWORD not set, skipping admin account seed")
		return nil
	}

	db := database.GetDB()

	var existing models.User
	if err := db.Where("email = ?", cfg.Email).First(&existing).Error; err == nil {
		return nil
	}

	hash, err := utils.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        cfg.Email,
		FullName:     "Studio Admin",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Created admin account: %s", admin.Email)
	return nil
}
