// Package creds stores the scraping API key in the OS keyring, with a
// plain-file fallback for environments without one (CI, containers).
package creds

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name for keyring storage.
	KeyringService = "partscout"
	keyringUser    = "scraping-api-key"
	// FallbackFile holds the key when the keyring is unavailable.
	FallbackFile = ".partscout/api_key"
)

// ErrNotFound is returned when no key has been stored.
var ErrNotFound = errors.New("no api key stored")

// useFileStorage caches whether the keyring is reachable.
var useFileStorage *bool

func fileStorage() bool {
	if useFileStorage != nil {
		return *useFileStorage
	}
	if os.Getenv("CI") != "" || os.Getenv("CODESPACES") != "" {
		result := true
		useFileStorage = &result
		return true
	}

	const testKey = "_keyring_probe_"
	err := keyring.Set(KeyringService, testKey, "probe")
	result := err != nil
	if !result {
		keyring.Delete(KeyringService, testKey)
	}
	useFileStorage = &result
	return result
}

func fallbackPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(home, FallbackFile)
	return path, os.MkdirAll(filepath.Dir(path), 0700)
}

// Save stores the API key.
func Save(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("api key is empty")
	}
	if !fileStorage() {
		if err := keyring.Set(KeyringService, keyringUser, key); err == nil {
			log.Debug().Msg("API key stored in OS keyring")
			return nil
		}
		// Keyring turned out unusable after all; fall through to file.
	}
	path, err := fallbackPath()
	if err != nil {
		return err
	}
	log.Debug().Str("path", path).Msg("API key stored in fallback file")
	return os.WriteFile(path, []byte(key), 0600)
}

// Load returns the stored API key, or ErrNotFound.
func Load() (string, error) {
	if !fileStorage() {
		if key, err := keyring.Get(KeyringService, keyringUser); err == nil {
			return key, nil
		}
	}
	path, err := fallbackPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", ErrNotFound
	}
	return key, nil
}

// Clear removes the stored key from both backends. Missing entries are not
// an error.
func Clear() error {
	if err := keyring.Delete(KeyringService, keyringUser); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		log.Debug().Err(err).Msg("Keyring delete failed")
	}
	path, err := fallbackPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
