// Command create_admin provisions an admin user, or promotes an existing
// user to admin if the email is already registered.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/ntarasov/shop_backend/internal/config"
	"github.com/ntarasov/shop_backend/internal/hash"
	"github.com/ntarasov/shop_backend/internal/models"
)

func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("both -email and -password are required")
	}

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := config.InitDB(ctx, cfg.DSN())
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var user models.User
	err = db.WithContext(ctx).Where("email = ?", *email).First(&user).Error
	switch {
	case err == nil:
		if user.Role == "admin" {
			log.Printf("user %s is already an admin", *email)
			return
		}
		if err := db.WithContext(ctx).Model(&user).Update("role", "admin").Error; err != nil {
			log.Fatalf("promote user: %v", err)
		}
		log.Printf("user %s promoted to admin", *email)

	case errors.Is(err, gorm.ErrRecordNotFound):
		pwHash, err := hash.HashPassword(*password)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		user = models.User{
			Email:        *email,
			PasswordHash: pwHash,
			Role:         "admin",
		}
		if err := db.WithContext(ctx).Create(&user).Error; err != nil {
			log.Fatalf("create admin: %v", err)
		}
		log.Printf("admin %s created", *email)

	default:
		log.Fatalf("lookup user: %v", err)
	}
}
