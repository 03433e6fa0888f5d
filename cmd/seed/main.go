package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"recipehub/internal/config"
	"recipehub/internal/db"
	apperrors "recipehub/internal/errors"
	"recipehub/internal/fanout"
	"recipehub/internal/idalloc"
	"recipehub/internal/repository"
	"recipehub/internal/service"
)

// Fixture is the seed file layout. Recipes are referenced by title in saves
// because their IDs are allocated at seed time.
type Fixture struct {
	Users []struct {
		Username string `json:"username"`
		Password string `json:"password"`
	} `json:"users"`
	Recipes []struct {
		Author      string `json:"author"`
		Title       string `json:"title"`
		Ingredients string `json:"ingredients"`
		Steps       string `json:"steps"`
	} `json:"recipes"`
	Follows []struct {
		Follower string `json:"follower"`
		Followed string `json:"followed"`
	} `json:"follows"`
	Saves []struct {
		Username string `json:"username"`
		Title    string `json:"title"`
	} `json:"saves"`
}

// Summary counts what a seed run created.
type Summary struct {
	Users, SkippedUsers, Recipes, Follows, Saves int
}

func main() {
	source := flag.String("fixture", "seed.json", "fixture path or http(s) URL")
	flag.Parse()

	cfg := config.Load()
	logger := cfg.Logger()

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	logger.Info("loading fixture", "source", *source)
	fixture, err := loadFixture(*source)
	if err != nil {
		logger.Error("failed to load fixture", "error", err)
		os.Exit(1)
	}

	store := repository.NewStore(gormDB)
	ids := idalloc.New(cfg.IDMin, cfg.IDMax, cfg.IDMaxAttempts)
	engine := fanout.NewEngine(logger)
	services := seeder{
		auth:    service.NewAuthService(store.Users(), ids, nil, nil),
		recipes: service.NewRecipeService(store, ids, engine, nil),
		social:  service.NewSocialService(store, engine, nil),
		saved:   service.NewSavedService(store),
		logger:  logger,
	}

	sum, err := services.seed(context.Background(), fixture)
	if err != nil {
		logger.Error("seed failed", "error", err)
		os.Exit(1)
	}
	logger.Info("seed completed",
		"users", sum.Users, "skipped_users", sum.SkippedUsers,
		"recipes", sum.Recipes, "follows", sum.Follows, "saves", sum.Saves)
}

// loadFixture reads a fixture from a local file or an http(s) URL.
func loadFixture(source string) (*Fixture, error) {
	var body []byte
	var err error
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		body, err = fetch(source)
	} else {
		body, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}

	var f Fixture
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &f, nil
}

func fetch(url string) ([]byte, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fixture: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fixture URL returned status code: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

type seeder struct {
	auth    service.AuthService
	recipes service.RecipeService
	social  service.SocialService
	saved   service.SavedService
	logger  *slog.Logger
}

// seed replays the fixture through the services so notifications are
// produced exactly as they would be for live traffic. Users that already
// exist are kept.
func (s seeder) seed(ctx context.Context, f *Fixture) (Summary, error) {
	var sum Summary
	for _, u := range f.Users {
		if _, err := s.auth.Register(ctx, u.Username, u.Password); err != nil {
			if errors.Is(err, apperrors.ErrConflict) {
				s.logger.Info("user exists, skipping", "username", u.Username)
				sum.SkippedUsers++
				continue
			}
			return sum, fmt.Errorf("register %s: %w", u.Username, err)
		}
		sum.Users++
	}

	for _, fl := range f.Follows {
		if err := s.social.Follow(ctx, fl.Follower, fl.Followed); err != nil {
			return sum, fmt.Errorf("follow %s -> %s: %w", fl.Follower, fl.Followed, err)
		}
		sum.Follows++
	}

	byTitle := make(map[string]int, len(f.Recipes))
	for _, r := range f.Recipes {
		recipe, err := s.recipes.Create(ctx, r.Author, service.RecipeInput{
			Title:       r.Title,
			Ingredients: r.Ingredients,
			Steps:       r.Steps,
		})
		if err != nil {
			return sum, fmt.Errorf("recipe %q: %w", r.Title, err)
		}
		byTitle[r.Title] = recipe.ID
		sum.Recipes++
	}

	for _, sv := range f.Saves {
		id, ok := byTitle[sv.Title]
		if !ok {
			return sum, fmt.Errorf("save %q: recipe not in fixture", sv.Title)
		}
		if err := s.saved.Save(ctx, sv.Username, id); err != nil {
			return sum, fmt.Errorf("save %q for %s: %w", sv.Title, sv.Username, err)
		}
		sum.Saves++
	}
	return sum, nil
}
