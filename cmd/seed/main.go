// Command seed creates a user allowed to request tokens and, optionally,
// inserts sample vinyles into the configured record store.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"vinyle_backend/internal/app/di"
	authusecase "vinyle_backend/internal/feature/auth/usecase"
	"vinyle_backend/internal/feature/vinyle/domain/entity"
	vinyleusecase "vinyle_backend/internal/feature/vinyle/usecase"
	"vinyle_backend/internal/platform/config"
	"vinyle_backend/internal/platform/db"
	jwtmw "vinyle_backend/internal/platform/jwt"
	"vinyle_backend/internal/platform/logger"
)

func main() {
	courriel := flag.String("courriel", "", "email of the user to create")
	motDePasse := flag.String("mot-de-passe", "", "password of the user to create (min 8 characters)")
	withSamples := flag.Bool("exemples", false, "also insert the sample vinyles")
	flag.Parse()

	cfg := config.Load()
	slog.SetDefault(logger.New("vinyle-seed", cfg.LogLevel))

	if *courriel == "" && !*withSamples {
		slog.Error("nothing to do: pass -courriel/-mot-de-passe and/or -exemples")
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, cfg, *courriel, *motDePasse, *withSamples); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, courriel, motDePasse string, withSamples bool) error {
	stores, err := di.NewStores(ctx, cfg, db.LoadConfigFromEnv())
	if err != nil {
		return err
	}
	defer func() { _ = stores.Close(context.Background()) }()

	if courriel != "" {
		jetonUC := authusecase.NewJetonUsecase(stores.Utilisateurs, jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTTTL))
		err := jetonUC.Register(ctx, courriel, motDePasse)
		switch {
		case errors.Is(err, authusecase.ErrUtilisateurAlreadyExists):
			slog.Warn("user already exists", "courriel", courriel)
		case err != nil:
			return err
		default:
			slog.Info("user created", "courriel", courriel)
		}
	}

	if withSamples {
		uc := vinyleusecase.NewVinyleUsecase(stores.Vinyles)
		for _, v := range sampleVinyles() {
			created, err := uc.Add(ctx, v)
			if err != nil {
				return err
			}
			slog.Info("sample vinyle inserted", "id", created.ID, "titre", created.Titre)
		}
	}
	return nil
}

func sampleVinyles() []entity.Vinyle {
	duree := func(s float64) *float64 { return &s }
	prix := 32.99
	return []entity.Vinyle{
		{
			Titre:   "The Dark Side of the Moon",
			Artiste: "Pink Floyd",
			Chansons: []entity.Song{
				{Nom: "Speak to Me", Duree: duree(68)},
				{Nom: "Breathe", Duree: duree(169)},
				{Nom: "Time", Duree: duree(413)},
				{Nom: "Money", Duree: duree(382)},
			},
			Genres:       []string{"Rock Progressif", "Rock Psychédélique"},
			DateParution: time.Date(1973, time.March, 1, 0, 0, 0, 0, time.UTC),
			PrixAchat:    &prix,
			Possession:   true,
		},
		{
			Titre:   "In the Court of the Crimson King",
			Artiste: "King Crimson",
			Chansons: []entity.Song{
				{Nom: "21st Century Schizoid Man", Duree: duree(444)},
				{Nom: "I Talk to the Wind", Duree: duree(365)},
				{Nom: "Epitaph", Duree: duree(529)},
			},
			Genres:       []string{"Rock Progressif"},
			DateParution: time.Date(1969, time.October, 10, 0, 0, 0, 0, time.UTC),
			Possession:   true,
		},
		{
			Titre:   "Kind of Blue",
			Artiste: "Miles Davis",
			Chansons: []entity.Song{
				{Nom: "So What", Duree: duree(562)},
				{Nom: "Freddie Freeloader", Duree: duree(586)},
				{Nom: "Blue in Green", Duree: duree(337)},
			},
			Genres:       []string{"Jazz", "Jazz Modal"},
			DateParution: time.Date(1959, time.August, 17, 0, 0, 0, 0, time.UTC),
			Possession:   false,
		},
	}
}
