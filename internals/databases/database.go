package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"kehadiranku_backend/internals/configs"
	attendancemodel "kehadiranku_backend/internals/features/attendance/checkins/model"
	sessionmodel "kehadiranku_backend/internals/features/attendance/sessions/model"
	campusmodel "kehadiranku_backend/internals/features/campus/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("connecting to PostgreSQL...")

	sslmode := configs.GetEnvOr("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=kehadiranku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{
		// duplicate-key errors surface as gorm.ErrDuplicatedKey,
		// the checkin uniqueness guard depends on this
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("DB connect failed: %v", err)
	}
	DB = db
	log.Println("DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
}

// Migrate creates/updates the campus reference tables and the attendance tables.
func Migrate() {
	if err := DB.AutoMigrate(
		&campusmodel.CourseModel{},
		&campusmodel.LectureModel{},
		&campusmodel.CourseMemberModel{},
		&sessionmodel.SessionModel{},
		&attendancemodel.CheckinModel{},
	); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}
}
