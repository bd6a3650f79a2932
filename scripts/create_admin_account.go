package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Account struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	Name         string
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"default:'admin'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func main() {
	// Parse command line flags
	role := flag.String("role", "admin", "Account role (admin or manager)")
	password := flag.String("password", "dev-password-123", "Account password")
	dbPath := flag.String("db", "customers.sqlite", "Path to the local store")
	flag.Parse()

	if *role != "admin" && *role != "manager" {
		log.Fatal("Role must be admin or manager, got:", *role)
	}

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(&Account{}); err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}

	email := fmt.Sprintf("%s@customer-directory.dev", *role)

	// Check if account already exists
	var existing Account
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		fmt.Printf("Development account already exists for role '%s'!\n", *role)
		fmt.Printf("Email: %s\n", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	account := Account{
		Email:        email,
		Name:         fmt.Sprintf("Development %s", *role),
		PasswordHash: string(hash),
		Role:         *role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(&account).Error; err != nil {
		log.Fatal("Failed to create account:", err)
	}

	fmt.Printf("Development account created for role '%s'!\n", *role)
	fmt.Printf("Email: %s\n", email)
	fmt.Printf("Password: %s\n", *password)
	fmt.Println("\nLog in with:")
	fmt.Printf("curl -X POST http://localhost:8080/api/v1/auth/login \\\n")
	fmt.Printf("  -H 'Content-Type: application/json' \\\n")
	fmt.Printf("  -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", email, *password)
}
