package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

//go:embed seed_data.json
var seedData []byte

type seedFile struct {
	Categories []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	} `json:"categories"`
	Products []struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Stock       int     `json:"stock"`
		Category    string  `json:"category"`
	} `json:"products"`
	Users []struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"users"`
}

// SeedOptions tunes Seed. The zero value hashes with bcrypt.DefaultCost.
type SeedOptions struct {
	BcryptCost int
	Logger     logrus.FieldLogger
}

// Seed loads the demo catalog and users in one transaction. It does nothing
// when any user already exists.
func Seed(ctx context.Context, db *bun.DB, opts SeedOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	count, err := NewUserStore(db).Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		logger.Info("database already seeded, skipping")
		return nil
	}

	var data seedFile
	if err := json.Unmarshal(seedData, &data); err != nil {
		return fmt.Errorf("decode seed data: %w", err)
	}

	err = db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		categories := NewCategoryStore(db)
		byName := make(map[string]int64, len(data.Categories))
		for _, c := range data.Categories {
			category := &Category{Name: c.Name, Description: c.Description}
			if err := categories.CreateTx(ctx, tx, category); err != nil {
				return fmt.Errorf("seed category %s: %w", c.Name, err)
			}
			byName[c.Name] = category.ID
		}

		products := NewProductStore(db)
		for _, p := range data.Products {
			categoryID, ok := byName[p.Category]
			if !ok {
				return fmt.Errorf("seed product %s: unknown category %s", p.Name, p.Category)
			}
			product := &Product{
				Name:        p.Name,
				Description: p.Description,
				Price:       p.Price,
				Stock:       p.Stock,
				CategoryID:  categoryID,
			}
			if err := products.CreateTx(ctx, tx, product); err != nil {
				return fmt.Errorf("seed product %s: %w", p.Name, err)
			}
		}

		users := NewUserStore(db)
		for _, u := range data.Users {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", u.Username, err)
			}
			user := &User{Username: u.Username, Email: u.Email, PasswordHash: string(hash)}
			if err := users.CreateTx(ctx, tx, user); err != nil {
				return fmt.Errorf("seed user %s: %w", u.Username, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"categories": len(data.Categories),
		"products":   len(data.Products),
		"users":      len(data.Users),
	}).Info("database seeded")
	return nil
}
