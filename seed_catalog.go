package main

import (
	"log"

	"photostudio-server/database"
	"photostudio-server/models"
)

func seedPackages() error {
	db := database.GetDB()

	packages := []models.PhotoPackage{
		{
			Slug:        "wedding-essential",
			Name:        "Wedding Essential",
			Category:    "Wedding",
			Description: "Half-day coverage of your ceremony with one photographer",
			Features: models.StringList{
				"4 hours of coverage",
				"1 photographer",
				"150+ edited photos",
				"Online gallery",
			},
			SortOrder: 1,
			IsActive:  true,
		},
		{
			Slug:        "wedding-premium",
			Name:        "Wedding Premium",
			Category:    "Wedding",
			Description: "Full-day coverage, two photographers and a printed album",
			Features: models.StringList{
				"10 hours of coverage",
				"2 photographers",
				"400+ edited photos",
				"Printed album",
				"Online gallery",
			},
			SortOrder: 2,
			IsActive:  true,
		},
		{
			Slug:        "portrait-studio",
			Name:        "Studio Portrait Session",
			Category:    "Portrait",
			Description: "One-hour studio session for individuals and couples",
			Features: models.StringList{
				"1 hour in studio",
				"3 backdrop setups",
				"25 edited photos",
			},
			SortOrder: 3,
			IsActive:  true,
		},
		{
			Slug:        "family-outdoor",
			Name:        "Family Outdoor Session",
			Category:    "Family",
			Description: "Golden-hour session at a location of your choice",
			Features: models.StringList{
				"90 minutes on location",
				"50 edited photos",
				"Online gallery",
			},
			SortOrder: 4,
			IsActive:  true,
		},
		{
			Slug:        "event-coverage",
			Name:        "Event Coverage",
			Category:    "Event",
			Description: "Corporate events, parties and celebrations",
			Features: models.StringList{
				"Up to 6 hours of coverage",
				"200+ edited photos",
				"48h turnaround highlights",
			},
			SortOrder: 5,
			IsActive:  true,
		},
	}

	for _, pkg := range packages {
		var existing models.PhotoPackage
		if err := db.Where("slug = ?", pkg.Slug).First(&existing).Error; err != nil {
			if err := db.Create(&pkg).Error; err != nil {
				log.Printf("Failed to create package %s: %v", pkg.Slug, err)
				return err
			}
			log.Printf("✅ Created package: %s", pkg.Slug)
		}
	}

	return nil
}

func seedAddOns() error {
	db := database.GetDB()

	// Add-ons belong to one package's catalog each
	addOnsByPackage := map[string][]models.AddOn{
		"wedding-essential": {
			{Slug: "we-second-shooter", Name: "Second photographer"},
			{Slug: "we-engagement", Name: "Engagement mini-session"},
		},
		"wedding-premium": {
			{Slug: "wp-drone", Name: "Drone coverage"},
			{Slug: "wp-video-highlights", Name: "Video highlights reel"},
			{Slug: "wp-parent-albums", Name: "Parent album copies"},
		},
		"portrait-studio": {
			{Slug: "ps-makeup", Name: "Hair and makeup artist"},
			{Slug: "ps-extra-retouch", Name: "10 extra retouched photos"},
		},
		"family-outdoor": {
			{Slug: "fo-prints", Name: "Print package"},
		},
		"event-coverage": {
			{Slug: "ec-photo-booth", Name: "Photo booth setup"},
			{Slug: "ec-same-day", Name: "Same-day edit slideshow"},
		},
	}

	for packageSlug, addOns := range addOnsByPackage {
		var pkg models.PhotoPackage
		if err := db.Where("slug = ?", packageSlug).First(&pkg).Error; err != nil {
			log.Printf("⚠️ Skipping add-ons for unknown package %s", packageSlug)
			continue
		}

		for _, addOn := range addOns {
			addOn.PackageID = pkg.ID
			var existing models.AddOn
			if err := db.Where("slug = ?", addOn.Slug).First(&existing).Error; err != nil {
				if err := db.Create(&addOn).Error; err != nil {
					log.Printf("Failed to create add-on %s: %v", addOn.Slug, err)
					return err
				}
				log.Printf("✅ Created add-on: %s", addOn.Slug)
			}
		}
	}

	return nil
}
