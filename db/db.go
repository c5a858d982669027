package db

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"library_lending/models"
)

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(conn); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return conn
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Author{},
		&models.Domain{},
		&models.Book{},
		&models.Edition{},
		&models.Reader{},
		&models.Loan{},
		&models.LoanExtension{},
	); err != nil {
		return err
	}

	// the daily and period caps scan a reader's loans by date
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_reader_loandate
	  ON %s (reader_id, loan_date DESC);
	`, models.LoanTable, models.LoanTable)).Error; err != nil {
		return err
	}

	// the LIM aggregate scans extensions by date
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_extensiondate
	  ON %s (extension_date);
	`, models.ExtensionTable, models.ExtensionTable)).Error; err != nil {
		return err
	}

	return nil
}
