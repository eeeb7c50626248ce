package main

import (
	"github.com/edura-learn/edura_api/services"

	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.PostgresService{},
		&services.RedisService{},
		&services.MinIOService{},
		&services.MonitoringService{},

		&services.JWTService{},
		&services.AuthMiddleware{},

		&services.AuthService{},
		&services.ContentService{},
		&services.EnrollmentService{},
		&services.ProgressService{},
		&services.NoteService{},

		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
