// Command seed loads catalog fixtures from a JSON file and upserts them, so
// reseeding an environment is idempotent.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/minhvuongle/yenvang-backend/internal/catalog"
	"github.com/minhvuongle/yenvang-backend/pkg/config"
	"github.com/minhvuongle/yenvang-backend/pkg/db"
	"github.com/minhvuongle/yenvang-backend/pkg/db/models"
	"github.com/minhvuongle/yenvang-backend/pkg/enums"
	"github.com/minhvuongle/yenvang-backend/pkg/logger"
	"github.com/minhvuongle/yenvang-backend/pkg/types"
)

type seedProduct struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	Images         []string             `json:"images"`
	BasePrice      int64                `json:"basePrice"`
	Category       string               `json:"category"`
	Types          types.ProductTypes   `json:"types,omitempty"`
	VolumeOptions  []string             `json:"volumeOptions,omitempty"`
	PackageOptions types.PackageOptions `json:"packageOptions,omitempty"`
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	file := flag.String("file", "seed/products.json", "path to the products fixture file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	raw, err := os.ReadFile(*file)
	if err != nil {
		logg.Error(ctx, "failed to read fixture file", err)
		os.Exit(1)
	}

	var fixtures []seedProduct
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		logg.Error(ctx, "failed to parse fixture file", err)
		os.Exit(1)
	}

	repo := catalog.NewRepository(dbClient.DB())

	var seedErr error
	seeded := 0
	for _, fixture := range fixtures {
		product, err := toProduct(fixture)
		if err != nil {
			seedErr = multierr.Append(seedErr, fmt.Errorf("%s: %w", fixture.Name, err))
			continue
		}
		if err := repo.Upsert(ctx, product); err != nil {
			seedErr = multierr.Append(seedErr, fmt.Errorf("%s: %w", fixture.Name, err))
			continue
		}
		seeded++
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"file":   *file,
		"seeded": seeded,
		"failed": len(multierr.Errors(seedErr)),
	})
	if seedErr != nil {
		logg.Error(ctx, "seeding finished with failures", seedErr)
		os.Exit(1)
	}
	logg.Info(ctx, "seeding complete")
}

func toProduct(fixture seedProduct) (*models.Product, error) {
	id, err := uuid.Parse(fixture.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid id: %w", err)
	}
	category, err := enums.ParseProductCategory(fixture.Category)
	if err != nil {
		return nil, err
	}
	if fixture.BasePrice < 0 {
		return nil, fmt.Errorf("base price must be non-negative")
	}
	return &models.Product{
		ID:             id,
		Name:           fixture.Name,
		Description:    fixture.Description,
		Images:         fixture.Images,
		BasePrice:      fixture.BasePrice,
		Category:       category,
		Types:          fixture.Types,
		VolumeOptions:  fixture.VolumeOptions,
		PackageOptions: fixture.PackageOptions,
	}, nil
}
