package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/kumawatvinit/ShopSpot/config"
	"github.com/kumawatvinit/ShopSpot/internal/domain/entity"
	"github.com/kumawatvinit/ShopSpot/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@shopspot.dev"
	password := "admin123"
	name := "Store Admin"
	hash, err := helpers.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password, phone, address, answer, role)
		VALUES ($1, $2, $3, '', '', 'seeded', $4)
		ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role
		RETURNING id
	`, name, email, hash, entity.RoleAdmin).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", id, email, password)

	// Base categories
	for _, catName := range []string{"Electronics", "Books", "Clothing"} {
		var catID string
		if err := db.QueryRow(`
			INSERT INTO categories (name, slug)
			VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET updated_at = now()
			RETURNING id
		`, catName, helpers.Slugify(catName)).Scan(&catID); err != nil {
			log.Fatalf("failed to upsert category %s: %v", catName, err)
		}
		fmt.Printf("category ensured: %s id=%s\n", catName, catID)
	}
}
