package main

import (
	"Backend-CMS/internal/app/ds"
	"Backend-CMS/internal/app/dsn"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("=== CMS Migration ===")

	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	startTime := time.Now()

	fmt.Println("1. Checking database connection...")
	var result int
	db.Raw("SELECT 1").Scan(&result)
	if result != 1 {
		log.Fatal("   Database connection failed")
	}
	fmt.Println("   Database connection successful")

	fmt.Println("2. Migrating tables...")
	err = db.AutoMigrate(
		&ds.Article{},
		&ds.Topic{},
		&ds.Project{},
		&ds.Subscriber{},
		&ds.Users{},
	)
	if err != nil {
		log.Fatal("Failed to migrate tables:", err)
	}
	fmt.Println("   Tables migrated")

	fmt.Println("3. Enabling pg_trgm extension...")
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pg_trgm").Error; err != nil {
		log.Printf("Warning: could not enable pg_trgm extension: %v", err)
	} else {
		fmt.Println("   pg_trgm extension enabled")
	}

	fmt.Println("4. Creating search indexes...")
	createIndexesSQL := []string{
		// Trigram indexes back the LOWER(...) LIKE search paths.
		`CREATE INDEX IF NOT EXISTS idx_articles_title_trgm ON articles USING gin (title gin_trgm_ops)
		 WHERE is_delete = false`,
		`CREATE INDEX IF NOT EXISTS idx_articles_description_trgm ON articles USING gin (description gin_trgm_ops)
		 WHERE is_delete = false`,
		`CREATE INDEX IF NOT EXISTS idx_projects_title_trgm ON projects USING gin (title gin_trgm_ops)
		 WHERE is_delete = false`,
		`CREATE INDEX IF NOT EXISTS idx_subscribers_email_trgm ON subscribers USING gin (email gin_trgm_ops)
		 WHERE is_delete = false`,

		// Pagination orderings.
		`CREATE INDEX IF NOT EXISTS idx_articles_pagination ON articles(created_at DESC)
		 WHERE is_delete = false`,
		`CREATE INDEX IF NOT EXISTS idx_projects_pagination ON projects(created_at DESC)
		 WHERE is_delete = false`,
		`CREATE INDEX IF NOT EXISTS idx_subscribers_pagination ON subscribers(subscribed_at DESC)
		 WHERE is_delete = false`,
	}

	for i, sql := range createIndexesSQL {
		idxStart := time.Now()
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("   Index %d: %v", i+1, err)
		} else {
			fmt.Printf("   Index %d created in %v\n", i+1, time.Since(idxStart))
		}
	}

	fmt.Println("5. Seeding admin account...")
	seedAdmin(db)

	fmt.Println("6. Updating statistics...")
	for _, table := range []string{"articles", "topics", "projects", "subscribers"} {
		if err := db.Exec("ANALYZE " + table).Error; err != nil {
			log.Printf("Warning analyzing %s: %v", table, err)
		}
	}

	fmt.Println("\n=== Migration Completed ===")
	fmt.Printf("Total time: %v\n", time.Since(startTime))
}

// seedAdmin creates the default moderator account once.
func seedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&ds.Users{}).Where("login = ?", "admin").Count(&count)
	if count > 0 {
		fmt.Println("   Admin account already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("change-me-on-first-login"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Warning: could not hash admin password: %v", err)
		return
	}

	admin := ds.Users{
		Login:       "admin",
		Password:    string(hash),
		IsModerator: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Warning: could not seed admin account: %v", err)
		return
	}
	fmt.Println("   Admin account created (login: admin)")
}
