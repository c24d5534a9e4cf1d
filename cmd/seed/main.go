package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"

	"github.com/inkwell-app/inkwell-api/config"
	"github.com/inkwell-app/inkwell-api/internal/domain/entity"
	"github.com/inkwell-app/inkwell-api/internal/domain/repository"
	pginfra "github.com/inkwell-app/inkwell-api/internal/infrastructure/postgres"
	"github.com/inkwell-app/inkwell-api/pkg/helpers"
)

// seed creates the admin account and a starter blog with one post. Safe to
// run repeatedly; existing rows are left alone.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.AppName+"-seed", cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	users := pginfra.NewUserRepository(pool)
	blogs := pginfra.NewBlogRepository(pool)
	posts := pginfra.NewPostRepository(pool)

	admin, err := users.GetByEmail(ctx, "admin@inkwell.dev")
	switch {
	case errors.Is(err, repository.ErrNotFound):
		hash, err := helpers.HashPassword("ChangeMe123!")
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		admin = &entity.User{
			Email:       "admin@inkwell.dev",
			UserName:    "admin",
			DisplayName: "Inkwell Admin",
			Password:    hash,
			Role:        entity.RoleAdmin,
		}
		if err := users.Create(ctx, admin); err != nil {
			log.Fatalf("create admin: %v", err)
		}
		log.Printf("created admin user %s", admin.Email)
	case err != nil:
		log.Fatalf("look up admin: %v", err)
	default:
		log.Printf("admin user already exists")
	}

	if _, err := blogs.GetByTitle(ctx, "Inkwell Updates"); errors.Is(err, repository.ErrNotFound) {
		blog := &entity.Blog{
			Title:       "Inkwell Updates",
			Description: "News and release notes from the Inkwell team.",
			UserID:      admin.ID,
		}
		if err := blogs.Create(ctx, blog); err != nil {
			log.Fatalf("create blog: %v", err)
		}

		post := &entity.Post{
			Title:   "Welcome to Inkwell",
			Slug:    helpers.Slugify("Welcome to Inkwell"),
			Content: "Inkwell is a place to write, publish, and discuss. Create an account and start your first blog.",
			UserID:  admin.ID,
			BlogID:  blog.ID,
		}
		if err := posts.Create(ctx, post); err != nil {
			log.Fatalf("create post: %v", err)
		}
		log.Printf("seeded starter blog and post")
	} else if err != nil {
		log.Fatalf("look up blog: %v", err)
	} else {
		log.Printf("starter blog already exists")
	}
}
