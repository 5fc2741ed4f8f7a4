package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Active is the local pointer to the game the CLI is currently playing.
type Active struct {
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"`
}

func baseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".sky")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

func activePath() (string, error) {
	dir, err := baseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "session.json"), nil
}

func SaveActive(a Active) error {
	path, err := activePath()
	if err != nil {
		return err
	}
	body, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, body, 0o600); err != nil {
		return err
	}
	return nil
}

func LoadActive() (Active, error) {
	path, err := activePath()
	if err != nil {
		return Active{}, err
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return Active{}, err
	}
	var a Active
	if err := json.Unmarshal(body, &a); err != nil {
		return Active{}, err
	}
	if strings.TrimSpace(a.SessionID) == "" {
		return Active{}, fmt.Errorf("no active session, run `sky new` first")
	}
	return a, nil
}

func ClearActive() error {
	path, err := activePath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return os.Remove(path)
}
