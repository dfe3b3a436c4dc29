package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/ledgerlight/backend/internal/config"
	v1 "github.com/ledgerlight/backend/internal/controllers/v1"
	"github.com/ledgerlight/backend/internal/models"
	"github.com/ledgerlight/backend/internal/router"
	"github.com/ledgerlight/backend/internal/store"
	"github.com/ledgerlight/backend/internal/taxonomy"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Local development configuration can be kept in a .env file
	_ = godotenv.Load()

	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Create the directory the database lives in
	err = os.MkdirAll(filepath.Dir(cfg.Database.Path), os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	err = models.Connect(fmt.Sprintf("%s?_pragma=foreign_keys(1)", cfg.Database.Path))
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Seed the category taxonomy on first start. Later taxonomy changes
	// are picked up via the category reload endpoint.
	s := store.New(models.DB)
	categories, err := s.GetCategories()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	if len(categories) == 0 {
		err = s.SaveCategories(taxonomy.Load(cfg.Taxonomy.Source))
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
	}

	r, err := router.Config()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	router.AttachRoutes(&r.RouterGroup, v1.Options{Config: cfg})

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
