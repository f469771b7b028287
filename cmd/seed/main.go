// Command seed bulk-loads users and posts from CSV files. Bad or
// duplicate rows are logged and skipped; the run never aborts on a
// per-row failure. It also purges expired token revocation records.
package main

import (
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/devRaxx/blogsite-api/internal/auth"
	"github.com/devRaxx/blogsite-api/internal/models"
	"github.com/devRaxx/blogsite-api/internal/repositories"
	"github.com/devRaxx/blogsite-api/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	usersPath := flag.String("users", "users.csv", "CSV file with users (username,password,is_active,is_superuser)")
	postsPath := flag.String("posts", "posts.csv", "CSV file with posts (title,body,author_id)")
	flag.Parse()

	cfg := config.Load()
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	if err := db.Postgres.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	postRepo := repositories.NewPostgresPostRepository(db.Postgres)
	tokenRepo := repositories.NewPostgresTokenRepository(db.Postgres)

	seedUsers(userRepo, *usersPath)
	seedPosts(postRepo, userRepo, *postsPath)

	ttl := time.Duration(cfg.AccessTokenExpireMinutes) * time.Minute
	tokenService := auth.NewTokenService(cfg.JWTSecret, ttl, tokenRepo)
	purged, err := tokenService.PurgeExpired()
	if err != nil {
		log.Printf("Failed to purge expired revocation records: %v", err)
	} else {
		log.Printf("Purged %d expired revocation records.", purged)
	}
}

func seedUsers(users repositories.UserRepository, path string) {
	rows, err := readCSV(path)
	if err != nil {
		log.Printf("Skipping users: %v", err)
		return
	}

	created := 0
	for _, row := range rows {
		username := row["username"]
		password := row["password"]
		if username == "" || password == "" {
			log.Printf("Skipping user due to missing required fields: %v", row)
			continue
		}
		if _, err := users.GetUserByUsername(username); err == nil {
			log.Printf("Skipping user due to duplicate username: %s", username)
			continue
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Skipping user %s, failed to hash password: %v", username, err)
			continue
		}

		user := &models.User{
			Username:       username,
			HashedPassword: string(hashedPassword),
			IsActive:       parseBool(row["is_active"], true),
			IsSuperuser:    parseBool(row["is_superuser"], false),
		}
		if err := users.CreateUser(user); err != nil {
			log.Printf("Skipping user %s, insert failed: %v", username, err)
			continue
		}
		created++
	}
	log.Printf("Seeded %d users from %s.", created, path)
}

func seedPosts(posts repositories.PostRepository, users repositories.UserRepository, path string) {
	rows, err := readCSV(path)
	if err != nil {
		log.Printf("Skipping posts: %v", err)
		return
	}

	created := 0
	for _, row := range rows {
		title := row["title"]
		body := row["body"]
		if title == "" || body == "" || row["author_id"] == "" {
			log.Printf("Skipping post due to missing required fields: %v", row)
			continue
		}
		authorID, err := strconv.ParseUint(row["author_id"], 10, 32)
		if err != nil {
			log.Printf("Skipping post %q, bad author_id %q", title, row["author_id"])
			continue
		}
		if _, err := users.GetUserByID(uint(authorID)); err != nil {
			log.Printf("Skipping post %q, author %d not found", title, authorID)
			continue
		}

		post := &models.Post{
			Title:    title,
			Body:     body,
			AuthorID: uint(authorID),
		}
		if err := posts.CreatePost(post); err != nil {
			log.Printf("Skipping post %q, insert failed: %v", title, err)
			continue
		}
		created++
	}
	log.Printf("Seeded %d posts from %s.", created, path)
}

// readCSV returns the file's records as header-keyed maps.
func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.ToLower(header[i]))
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("Skipping malformed row in %s: %v", path, err)
			continue
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseBool(value string, defaultValue bool) bool {
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}
