/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/config"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/database"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/model"
	"github.com/Riyan-Almaiman/makan-forms-updated-sub000/internal/utils"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with initial data",
	Long: `Seed the database with an admin account and baseline reference data.
Safe to run repeatedly: existing records are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect database: %w", err)
		}
		defer func() {
			sqlDB, _ := db.DB()
			if sqlDB != nil {
				sqlDB.Close()
			}
		}()

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		adminPassword, _ := cmd.Flags().GetString("admin-password")
		if err := seedAdmin(db, adminPassword); err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
		if err := seedReferenceData(db); err != nil {
			return fmt.Errorf("failed to seed reference data: %w", err)
		}

		log.Println("Database seeding completed successfully!")
		return nil
	},
}

// seedAdmin 创建初始管理员账号
func seedAdmin(db *gorm.DB, password string) error {
	var count int64
	if err := db.Model(&model.UserModel{}).
		Where("role = ?", model.RoleAdmin).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Admin user already exists, skipping")
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now()
	admin := &model.UserModel{
		TaqniaID:     "admin",
		Name:         "Administrator",
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("Created admin user (taqnia_id: admin)")
	return nil
}

// seedReferenceData 创建基础参考数据
func seedReferenceData(db *gorm.DB) error {
	layers := []string{"Roads", "Buildings", "Hydrology", "Vegetation", "Utilities"}
	for _, name := range layers {
		if err := upsertNamed(db, &model.LayerModel{}, name, func(now time.Time) interface{} {
			return &model.LayerModel{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
		}); err != nil {
			return err
		}
	}

	remarks := []string{"New collection", "Update", "Revision", "Field verification"}
	for _, name := range remarks {
		if err := upsertNamed(db, &model.RemarkModel{}, name, func(now time.Time) interface{} {
			return &model.RemarkModel{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
		}); err != nil {
			return err
		}
	}

	products := []string{"Topographic Base Map"}
	for _, name := range products {
		if err := upsertNamed(db, &model.ProductModel{}, name, func(now time.Time) interface{} {
			return &model.ProductModel{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
		}); err != nil {
			return err
		}
	}

	log.Printf("Seeded %d layers, %d remarks, %d products", len(layers), len(remarks), len(products))
	return nil
}

// upsertNamed 按名称幂等插入参考数据
func upsertNamed(db *gorm.DB, probe interface{}, name string, build func(time.Time) interface{}) error {
	var count int64
	if err := db.Model(probe).Where("name = ?", name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(build(time.Now())).Error
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("config", "", "Config file path (default: search in current directory, ./config, or $HOME/.makan-forms)")
	seedCmd.Flags().String("admin-password", "changeme", "Initial password for the admin account")
}
