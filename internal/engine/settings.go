package engine

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Persisted settings: exactly two named string values, the caller-supplied
// API keys. Read at startup, written on every change.

const (
	SettingYouTubeKey = "youtube_api_key"
	SettingGeminiKey  = "gemini_api_key"
)

var (
	settingsDB   *sql.DB
	settingsOnce sync.Once
	settingsErr  error
)

// openSettingsDB opens (or creates) the SQLite settings database.
func openSettingsDB() (*sql.DB, error) {
	settingsOnce.Do(func() {
		dbPath := cfg.SettingsPath
		if dbPath == "" {
			dir := filepath.Join(os.Getenv("HOME"), ".go_tube")
			if err := os.MkdirAll(dir, 0750); err != nil {
				settingsErr = fmt.Errorf("settings: mkdir %s: %w", dir, err)
				return
			}
			dbPath = filepath.Join(dir, "settings.db")
		}
		db, err := sql.Open("sqlite", dbPath)
		if err != nil {
			settingsErr = fmt.Errorf("settings: open db: %w", err)
			return
		}
		db.SetMaxOpenConns(1) // SQLite: single writer
		if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS settings (
			name       TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`); err != nil {
			settingsErr = fmt.Errorf("settings: init schema: %w", err)
			return
		}
		settingsDB = db
	})
	return settingsDB, settingsErr
}

// LoadSetting reads one named value; missing names yield "".
func LoadSetting(name string) (string, error) {
	db, err := openSettingsDB()
	if err != nil {
		return "", err
	}
	var value string
	err = db.QueryRow(`SELECT value FROM settings WHERE name = ?`, name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("settings: load %s: %w", name, err)
	}
	return value, nil
}

// SaveSetting upserts one named value.
func SaveSetting(name, value string) error {
	db, err := openSettingsDB()
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = db.Exec(`INSERT INTO settings (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		name, value, now)
	if err != nil {
		return fmt.Errorf("settings: save %s: %w", name, err)
	}
	return nil
}

// ValidateYouTubeKey checks the expected key shape (AIza…, 39 chars).
func ValidateYouTubeKey(key string) error {
	key = strings.TrimSpace(key)
	if !strings.HasPrefix(key, "AIza") || len(key) != 39 {
		return fmt.Errorf("%w: YouTube API key must start with AIza and be 39 characters", ErrInvalidInput)
	}
	return nil
}

// SaveAPIKeys validates and persists the supplied keys, updating the live
// config so subsequent calls pick them up. Empty arguments leave the
// corresponding stored value untouched.
func SaveAPIKeys(youtubeKey, geminiKey string) error {
	youtubeKey = strings.TrimSpace(youtubeKey)
	geminiKey = strings.TrimSpace(geminiKey)
	if youtubeKey == "" && geminiKey == "" {
		return fmt.Errorf("%w: at least one key is required", ErrInvalidInput)
	}
	if youtubeKey != "" {
		if err := ValidateYouTubeKey(youtubeKey); err != nil {
			return err
		}
		if err := SaveSetting(SettingYouTubeKey, youtubeKey); err != nil {
			return err
		}
		cfg.YouTubeAPIKey = youtubeKey
	}
	if geminiKey != "" {
		if err := SaveSetting(SettingGeminiKey, geminiKey); err != nil {
			return err
		}
		cfg.GeminiAPIKey = geminiKey
	}
	return nil
}

// LoadStoredKeys fills config keys from the settings store when the
// environment left them empty. Missing store entries are not an error.
func LoadStoredKeys() error {
	if cfg.YouTubeAPIKey == "" {
		v, err := LoadSetting(SettingYouTubeKey)
		if err != nil {
			return err
		}
		cfg.YouTubeAPIKey = v
	}
	if cfg.GeminiAPIKey == "" {
		v, err := LoadSetting(SettingGeminiKey)
		if err != nil {
			return err
		}
		cfg.GeminiAPIKey = v
	}
	return nil
}
