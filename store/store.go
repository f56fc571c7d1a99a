package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SessionRecord is the persisted client-side session: the signed session
// token plus enough identity to show who is logged in.
type SessionRecord struct {
	Token   string    `json:"token"`
	Email   string    `json:"email"`
	SavedAt time.Time `json:"saved_at"`
}

// DefaultSessionPath returns the session file location under the user
// config dir.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "movie-booking-cli", "session.json"), nil
}

// LoadSession reads the session record at path. A missing file is not an
// error; the second return reports whether a record was present.
func LoadSession(path string) (SessionRecord, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return SessionRecord{}, false, nil
		}
		return SessionRecord{}, false, err
	}

	var record SessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return SessionRecord{}, false, errors.New("invalid session file format")
	}
	if strings.TrimSpace(record.Token) == "" {
		return SessionRecord{}, false, nil
	}
	return record, true, nil
}

func SaveSession(path string, record SessionRecord) error {
	if strings.TrimSpace(record.Token) == "" {
		return errors.New("session token is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	record.SavedAt = time.Now()
	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o600)
}

// ClearSession removes the session file. Clearing an absent session is a
// no-op.
func ClearSession(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
