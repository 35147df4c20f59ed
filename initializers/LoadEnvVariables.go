package initializers

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// LoadEnvVariables reads a .env file from the working directory when one exists.
// Variables already present in the environment win.
func LoadEnvVariables() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}
}
