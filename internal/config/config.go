package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissing = errors.New("missing config value")

var (
	v        = viper.New()
	replacer = strings.NewReplacer(".", "_")
)

func init() {
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	v.SetDefault("app.addr", ":8080")
	v.SetDefault("app.base_path", "")
	v.SetDefault("app.shutdown_timeout", 30*time.Second)
	v.SetDefault("sessions.prune_interval", time.Minute)
	v.SetDefault("sessions.keep_finished", time.Hour)
	v.SetDefault("highscores.limit", 10)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "minesweeper.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("jwt.lifetime", 30*24*time.Hour)
	v.SetDefault("cookies.secure", true)
	v.SetDefault("cookies.samesite", "strict")
}

// Load reads a .env file from the working directory if there is one, then
// the config file at path if it is not empty. Environment variables win
// over both: a key such as postgres.user is read from POSTGRES_USER.
func Load(path string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("unable to load .env: %w", err)
	}
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("unable to read config %s: %w", path, err)
	}
	return nil
}

func envName(key string) string {
	return strings.ToUpper(replacer.Replace(key))
}

func lookup(key string) (string, error) {
	if !v.IsSet(key) {
		return "", fmt.Errorf("%w: no %s env variable set", ErrMissing, envName(key))
	}
	return v.GetString(key), nil
}

// secret reads key directly or from the file named by key_file.
func secret(key string) ([]byte, error) {
	if v.IsSet(key) {
		return []byte(v.GetString(key)), nil
	}
	path := v.GetString(key + "_file")
	if path == "" {
		return nil, fmt.Errorf(
			"%w: no %s or %s_FILE env variable set", ErrMissing, envName(key), envName(key),
		)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", path, err)
	}
	return data, nil
}

func Development() bool {
	return v.GetBool("development")
}

type App struct {
	Addr            string
	BasePath        string
	ShutdownTimeout time.Duration
	HighscoreLimit  int
	AllowedOrigins  []string

	// finished sessions are dropped after KeepFinished, checked every
	// PruneInterval
	PruneInterval time.Duration
	KeepFinished  time.Duration
}

func NewApp() App {
	return App{
		Addr:            v.GetString("app.addr"),
		BasePath:        strings.TrimSuffix(v.GetString("app.base_path"), "/"),
		ShutdownTimeout: v.GetDuration("app.shutdown_timeout"),
		HighscoreLimit:  v.GetInt("highscores.limit"),
		AllowedOrigins:  v.GetStringSlice("app.allowed_origins"),
		PruneInterval:   v.GetDuration("sessions.prune_interval"),
		KeepFinished:    v.GetDuration("sessions.keep_finished"),
	}
}

type Log struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func NewLog() Log {
	return Log{
		Level:      v.GetString("log.level"),
		File:       v.GetString("log.file"),
		MaxSizeMB:  v.GetInt("log.max_size_mb"),
		MaxBackups: v.GetInt("log.max_backups"),
		MaxAgeDays: v.GetInt("log.max_age_days"),
	}
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Store struct {
	Driver     string
	SQLitePath string
}

func NewStore() (*Store, error) {
	s := &Store{
		Driver:     strings.ToLower(v.GetString("store.driver")),
		SQLitePath: v.GetString("store.sqlite_path"),
	}
	switch s.Driver {
	case DriverPostgres, DriverSQLite:
		return s, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", s.Driver)
}
