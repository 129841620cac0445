package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultWeatherAPIURL is the conditions endpoint queried when WEATHER_API_URL is unset.
const DefaultWeatherAPIURL = "https://api.weather.com/v3/weather/conditions"

// DefaultSampleSchedule runs the sampler every 15 minutes.
const DefaultSampleSchedule = "*/15 * * * *"

// Config holds all the environment‐driven settings for the application.
type Config struct {
	// Database (Postgres)
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int
	DatabaseURL      string

	// Weather API
	WeatherAPIKey string
	WeatherAPIURL string

	// Scheduler
	SampleCities   []string
	SampleSchedule string
}

// Load reads and validates all required environment variables, applying defaults
// where appropriate. It returns an error if any required variable is missing or malformed.
func Load() (*Config, error) {
	// Weather API settings. The key is never defaulted.
	apiKey := os.Getenv("WEATHER_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("WEATHER_API_KEY is required")
	}
	apiURL := os.Getenv("WEATHER_API_URL")
	if apiURL == "" {
		apiURL = DefaultWeatherAPIURL
	}

	// Postgres settings
	pgUser := os.Getenv("POSTGRES_USER")
	if pgUser == "" {
		return nil, fmt.Errorf("POSTGRES_USER is required")
	}
	pgPass := os.Getenv("POSTGRES_PASSWORD")
	if pgPass == "" {
		return nil, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	pgDB := os.Getenv("POSTGRES_DB")
	if pgDB == "" {
		return nil, fmt.Errorf("POSTGRES_DB is required")
	}
	pgHost := os.Getenv("POSTGRES_HOST")
	if pgHost == "" {
		pgHost = "db"
	}
	pgPortStr := os.Getenv("POSTGRES_PORT")
	if pgPortStr == "" {
		pgPortStr = "5432"
	}
	pgPort, err := strconv.Atoi(pgPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid POSTGRES_PORT %q: %w", pgPortStr, err)
	}
	databaseURL := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPass, pgHost, pgPort, pgDB,
	)

	// Scheduler settings. An empty city list leaves the sampler idle.
	sampleCities := splitCities(os.Getenv("SAMPLE_CITIES"))
	sampleSchedule := os.Getenv("SAMPLE_SCHEDULE")
	if sampleSchedule == "" {
		sampleSchedule = DefaultSampleSchedule
	}

	return &Config{
		PostgresUser:     pgUser,
		PostgresPassword: pgPass,
		PostgresDB:       pgDB,
		PostgresHost:     pgHost,
		PostgresPort:     pgPort,
		DatabaseURL:      databaseURL,

		WeatherAPIKey: apiKey,
		WeatherAPIURL: apiURL,

		SampleCities:   sampleCities,
		SampleSchedule: sampleSchedule,
	}, nil
}

// splitCities parses a comma-separated list, dropping blanks.
func splitCities(raw string) []string {
	var cities []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cities = append(cities, c)
		}
	}
	return cities
}
