package config

import (
	"timeclass-backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB(dsn string) error {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}

	// Auto Migration: creates/updates tables from the model structs
	db.AutoMigrate(&model.User{})
	db.AutoMigrate(&model.Teacher{})
	db.AutoMigrate(&model.WorkHour{})
	db.AutoMigrate(&model.Claim{})
	db.AutoMigrate(&model.Comment{})
	db.AutoMigrate(&model.Setting{})

	DB = db
	return nil
}
