package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"movievault/internal/config"
	"movievault/internal/db"
	"movievault/internal/model"
	"movievault/internal/repository"
)

const (
	demoUsername = "johndoe"
	demoPassword = "password123"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Movie{}, &model.Review{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	movieRepo := repository.NewMovieRepository(gormDB)

	user, err := userRepo.FindByUsername(ctx, demoUsername)
	if err == gorm.ErrRecordNotFound {
		user, err = createDemoUser(ctx, userRepo)
	}
	if err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}
	log.Printf("Demo user ready: %s (%s)", user.Username, user.ID)

	existing, err := movieRepo.ListByOwner(ctx, user.ID)
	if err != nil {
		log.Fatalf("Failed to list watchlist: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Watchlist already has %d entries, skipping movie seed", len(existing))
		return
	}

	for _, movie := range demoMovies(user.ID) {
		if err := movieRepo.Create(ctx, &movie); err != nil {
			log.Fatalf("Failed to seed movie %q: %v", movie.Title, err)
		}
		log.Printf("Seeded movie: %s (%d)", movie.Title, movie.ReleaseYear)
	}
	log.Println("Seed completed")
}

func createDemoUser(ctx context.Context, repo repository.UserRepository) (*model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		FirstName:    "John",
		LastName:     "Doe",
		DOB:          time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC),
		Gender:       model.GenderMale,
		Phone:        "5550001234",
		Email:        "john.doe@example.com",
		Username:     demoUsername,
		PasswordHash: string(hashed),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func demoMovies(owner uuid.UUID) []model.Movie {
	return []model.Movie{
		{
			Title:        "The Shawshank Redemption",
			Description:  "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
			Genres:       model.StringList{"Drama", "Crime"},
			ReleaseYear:  1994,
			Rating:       9.3,
			OTTPlatforms: model.StringList{"Netflix"},
			AddedBy:      owner,
			Notes:        "Rewatch before reviewing",
		},
		{
			Title:        "Spirited Away",
			Description:  "A young girl wanders into a world ruled by gods, witches, and spirits, where humans are changed into beasts.",
			Genres:       model.StringList{"Animation", "Fantasy"},
			ReleaseYear:  2001,
			Rating:       8.6,
			OTTPlatforms: model.StringList{"Max"},
			AddedBy:      owner,
		},
		{
			Title:       "Blade Runner 2049",
			Description: "A young blade runner's discovery of a long-buried secret leads him to track down former blade runner Rick Deckard.",
			Genres:      model.StringList{"Sci-Fi", "Thriller"},
			ReleaseYear: 2017,
			Rating:      8.0,
			AddedBy:     owner,
		},
	}
}
