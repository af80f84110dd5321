package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	SessionSecret string

	// Feature configuration: the poll view ships as one parameterized
	// surface instead of separate deadline/delete variants.
	VotingDeadline time.Time // zero value = no deadline enforcement
	OwnerDelete    bool
}

// DeadlineEnforced reports whether vote mutations are gated on a deadline.
func (c Config) DeadlineEnforced() bool {
	return !c.VotingDeadline.IsZero()
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var deadline string
	var ownerDelete string

	// Load .env if present; real environment still wins for set keys
	_ = godotenv.Load()

	fs := flag.NewFlagSet("meetup-poll", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session token secret (prefer env)")

	// Feature flags
	fs.StringVar(&deadline, "deadline", "", "Voting deadline, RFC3339 (empty disables enforcement)")
	fs.StringVar(&ownerDelete, "owner-delete", "", "Allow owners to delete their options (on/off)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	// Secrets - MUST be provided
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("SESSION_SECRET")
	}
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	if deadline == "" {
		deadline = os.Getenv("VOTING_DEADLINE")
	}
	if deadline != "" {
		t, err := time.Parse(time.RFC3339, deadline)
		if err != nil {
			return Config{}, errors.New("invalid VOTING_DEADLINE, expected RFC3339")
		}
		cfg.VotingDeadline = t
	}

	if ownerDelete == "" {
		ownerDelete = os.Getenv("OWNER_DELETE")
	}
	switch ownerDelete {
	case "", "on", "true", "1":
		cfg.OwnerDelete = true
	case "off", "false", "0":
		cfg.OwnerDelete = false
	default:
		return Config{}, errors.New("owner-delete must be on or off")
	}

	return cfg, nil
}
