package config

import (
	"os"

	"github.com/antonlindstrom/pgstore"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

type WebConfig struct {
	Listen         string
	AllowedOrigins []string
	Sessions       sessions.Store
}

// NewWebConfig keeps flash sessions in PostgreSQL when a database URL
// is given and in signed cookies otherwise. Cookie keys are read from files;
// if a path is empty a random key is generated, which invalidates
// sessions on every restart.
func NewWebConfig(listen string, allowedOrigins []string, cookieAuth, cookieEnc, databaseUrl string, logger *zerolog.Logger) (WebConfig, error) {
	self := WebConfig{Listen: listen, AllowedOrigins: allowedOrigins}

	cookieAuthKey, err := readKey(cookieAuth, 64, logger)
	if err != nil {
		return self, errors.WithMessage(err, "While reading web cookie authentication key")
	}
	cookieEncKey, err := readKey(cookieEnc, 32, logger)
	if err != nil {
		return self, errors.WithMessage(err, "While reading web cookie encryption key")
	}

	if databaseUrl == "" {
		store := sessions.NewCookieStore(cookieAuthKey, cookieEncKey)
		store.Options.HttpOnly = true
		self.Sessions = store
	} else if store, err := pgstore.NewPGStore(databaseUrl, cookieAuthKey, cookieEncKey); err != nil {
		return self, errors.WithMessage(err, "While creating PostgreSQL session store")
	} else {
		store.Options.HttpOnly = true
		self.Sessions = store
	}

	return self, nil
}

func readKey(path string, length int, logger *zerolog.Logger) ([]byte, error) {
	if path == "" {
		logger.Warn().Int("length", length).Msg("No cookie key file given, generating a random key")
		key := securecookie.GenerateRandomKey(length)
		if key == nil {
			return nil, errors.New("Failed to generate random cookie key")
		}
		return key, nil
	}
	return os.ReadFile(path)
}
