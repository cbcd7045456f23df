package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/arkadito/clash-league/internal/platform/logging"
)

// Config stores runtime configuration for the engine.
type Config struct {
	AppEnv                 string
	ServiceName            string
	ServiceVersion         string
	HTTPAddr               string
	CORSAllowedOrigins     []string
	ReadTimeout            time.Duration
	WriteTimeout           time.Duration
	TeamCount              int
	GamesPerTeam           int
	MaxTeamCost            float64
	RNGSeed                uint64
	Noise                  float64
	SnapshotPath           string
	ArchiveDBPath          string
	UptraceEnabled         bool
	UptraceDSN             string
	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string
	PyroscopeUploadRate    time.Duration
	LogLevel               logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	teamCount, err := getEnvAsInt("LEAGUE_TEAM_COUNT", 20)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_TEAM_COUNT: %w", err)
	}
	if teamCount < 16 {
		return Config{}, fmt.Errorf("LEAGUE_TEAM_COUNT must be >= 16 to seed a full postseason bracket")
	}

	gamesPerTeam, err := getEnvAsInt("LEAGUE_GAMES_PER_TEAM", 30)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_GAMES_PER_TEAM: %w", err)
	}
	if gamesPerTeam < 1 {
		return Config{}, fmt.Errorf("LEAGUE_GAMES_PER_TEAM must be >= 1")
	}

	maxTeamCost, err := getEnvAsFloat("LEAGUE_MAX_TEAM_COST", 20.0)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_MAX_TEAM_COST: %w", err)
	}
	if maxTeamCost <= 0 {
		return Config{}, fmt.Errorf("LEAGUE_MAX_TEAM_COST must be > 0")
	}

	rngSeed, err := getEnvAsUint64("LEAGUE_RNG_SEED", 1337)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_RNG_SEED: %w", err)
	}

	noise, err := getEnvAsFloat("LEAGUE_NOISE", 0.05)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_NOISE: %w", err)
	}
	if noise < 0 || noise > 0.25 {
		return Config{}, fmt.Errorf("LEAGUE_NOISE must be within [0, 0.25]")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg := Config{
		AppEnv:                 appEnv,
		ServiceName:            getEnv("APP_SERVICE_NAME", "clash-league-engine"),
		ServiceVersion:         getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:               getEnv("APP_HTTP_ADDR", ":8080"),
		CORSAllowedOrigins:     splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ReadTimeout:            readTimeout,
		WriteTimeout:           writeTimeout,
		TeamCount:              teamCount,
		GamesPerTeam:           gamesPerTeam,
		MaxTeamCost:            maxTeamCost,
		RNGSeed:                rngSeed,
		Noise:                  noise,
		SnapshotPath:           getEnv("LEAGUE_SNAPSHOT_PATH", "league_state.json"),
		ArchiveDBPath:          strings.TrimSpace(getEnv("ARCHIVE_DB_PATH", "")),
		UptraceEnabled:         uptraceEnabled,
		UptraceDSN:             uptraceDSN,
		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeUploadRate:    pyroscopeUploadRate,
		LogLevel:               parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsUint64(key string, fallback uint64) (uint64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
