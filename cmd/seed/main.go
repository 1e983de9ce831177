// Package main provides a CLI for seeding the tag and ingredient catalogs
// from JSON files, typically before first launch:
//
//	seed -data-path ./data -tags tags.json -ingredients ingredients.json
//
// Entries that already exist are skipped, so the tool is safe to re-run.
package main

import (
	"context"
	"encoding/json/v2"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/savorly/savorly-server/internal/config"
	domainerrors "github.com/savorly/savorly-server/internal/errors"
	"github.com/savorly/savorly-server/internal/logger"
	"github.com/savorly/savorly-server/internal/service"
	"github.com/savorly/savorly-server/internal/store/sqlite"
)

type tagSeed struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type ingredientSeed struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func main() {
	tagsFile := flag.String("tags", "", "Path to a JSON file with tags")
	ingredientsFile := flag.String("ingredients", "", "Path to a JSON file with ingredients")

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *tagsFile == "" && *ingredientsFile == "" {
		fmt.Fprintln(os.Stderr, "Nothing to do: pass -tags and/or -ingredients")
		flag.Usage()
		os.Exit(2)
	}

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	st, err := sqlite.Open(filepath.Join(cfg.Data.BasePath, "savorly.db"), log.Logger)
	if err != nil {
		log.Error("Failed to open database", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	ctx := context.Background()

	if *tagsFile != "" {
		if err := seedTags(ctx, service.NewTagService(st, log.Logger), *tagsFile, log); err != nil {
			log.Error("Seeding tags failed", "error", err)
			os.Exit(1)
		}
	}

	if *ingredientsFile != "" {
		if err := seedIngredients(ctx, service.NewIngredientService(st, log.Logger), *ingredientsFile, log); err != nil {
			log.Error("Seeding ingredients failed", "error", err)
			os.Exit(1)
		}
	}
}

func seedTags(ctx context.Context, svc *service.TagService, path string, log *logger.Logger) error {
	var seeds []tagSeed
	if err := readSeedFile(path, &seeds); err != nil {
		return err
	}

	created, skipped := 0, 0
	for _, seed := range seeds {
		_, err := svc.Create(ctx, service.CreateTagRequest{
			Name:  seed.Name,
			Color: seed.Color,
			Slug:  seed.Slug,
		})
		switch {
		case err == nil:
			created++
		case errors.Is(err, domainerrors.ErrAlreadyExists):
			skipped++
		default:
			return fmt.Errorf("create tag %q: %w", seed.Name, err)
		}
	}

	log.Info("Tags seeded", "created", created, "skipped", skipped)
	return nil
}

func seedIngredients(ctx context.Context, svc *service.IngredientService, path string, log *logger.Logger) error {
	var seeds []ingredientSeed
	if err := readSeedFile(path, &seeds); err != nil {
		return err
	}

	created, skipped := 0, 0
	for _, seed := range seeds {
		_, err := svc.Create(ctx, service.CreateIngredientRequest{
			Name:            seed.Name,
			MeasurementUnit: seed.MeasurementUnit,
		})
		switch {
		case err == nil:
			created++
		case errors.Is(err, domainerrors.ErrAlreadyExists):
			skipped++
		default:
			return fmt.Errorf("create ingredient %q: %w", seed.Name, err)
		}
	}

	log.Info("Ingredients seeded", "created", created, "skipped", skipped)
	return nil
}

func readSeedFile(path string, v any) error {
	data, err := os.ReadFile(path) //#nosec G304 -- path comes from the operator
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
