// Package secretstore keeps the OAuth1 signing credentials in a small
// Badger-backed KV store. Encryption at rest comes from Badger options
// (value log + key registry), not from this wrapper.
package secretstore

import (
	"errors"
	"os"
	"strings"

	badger "github.com/dgraph-io/badger/v4"
)

// Fixed keys for the OAuth1 quadruple.
const (
	keyConsumerKey    = "oauth/consumer_key"
	keyConsumerSecret = "oauth/consumer_secret"
	keyToken          = "oauth/token"
	keyTokenSecret    = "oauth/token_secret"
)

// Credentials is the OAuth1 quadruple as stored.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	Token          string
	TokenSecret    string
}

// Store is a small KV wrapper over Badger.
type Store struct {
	db *badger.DB
}

// OpenOptions configures Open.
type OpenOptions struct {
	Path          string
	EncryptionKey []byte // 32 bytes; if nil, DB is opened without encryption
	ReadOnly      bool
}

// Open opens (or creates) the store at opts.Path.
func Open(opts OpenOptions) (*Store, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return nil, errors.New("secretstore: path is required")
	}
	bopts := badger.DefaultOptions(opts.Path).
		WithLogger(nil).
		WithReadOnly(opts.ReadOnly)
	if len(opts.EncryptionKey) > 0 {
		// Badger requires index cache for encrypted workloads
		bopts = bopts.
			WithEncryptionKey(opts.EncryptionKey).
			WithIndexCacheSize(100 << 20)
	}
	db, err := badger.Open(bopts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying DB.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) get(txn *badger.Txn, key string) (string, error) {
	item, err := txn.Get([]byte(key))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return "", nil
		}
		return "", err
	}
	var out string
	err = item.Value(func(val []byte) error {
		out = string(val)
		return nil
	})
	return out, err
}

// LoadCredentials reads the stored OAuth1 quadruple. Missing keys come
// back as empty strings; the caller validates completeness.
func (s *Store) LoadCredentials() (Credentials, error) {
	var creds Credentials
	if s == nil || s.db == nil {
		return creds, errors.New("secretstore: not opened")
	}
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		if creds.ConsumerKey, err = s.get(txn, keyConsumerKey); err != nil {
			return err
		}
		if creds.ConsumerSecret, err = s.get(txn, keyConsumerSecret); err != nil {
			return err
		}
		if creds.Token, err = s.get(txn, keyToken); err != nil {
			return err
		}
		creds.TokenSecret, err = s.get(txn, keyTokenSecret)
		return err
	})
	return creds, err
}

// SaveCredentials writes the OAuth1 quadruple in one transaction.
func (s *Store) SaveCredentials(creds Credentials) error {
	if s == nil || s.db == nil {
		return errors.New("secretstore: not opened")
	}
	return s.db.Update(func(txn *badger.Txn) error {
		pairs := map[string]string{
			keyConsumerKey:    creds.ConsumerKey,
			keyConsumerSecret: creds.ConsumerSecret,
			keyToken:          creds.Token,
			keyTokenSecret:    creds.TokenSecret,
		}
		for k, v := range pairs {
			if err := txn.Set([]byte(k), []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
}

// FromEnv reads the quadruple from the environment (dev convenience;
// pairs with godotenv loading in pkg/config).
func FromEnv() Credentials {
	return Credentials{
		ConsumerKey:    os.Getenv("ALLY_CONSUMER_KEY"),
		ConsumerSecret: os.Getenv("ALLY_CONSUMER_SECRET"),
		Token:          os.Getenv("ALLY_OAUTH_TOKEN"),
		TokenSecret:    os.Getenv("ALLY_OAUTH_TOKEN_SECRET"),
	}
}

// Complete reports whether all four parts are present.
func (c Credentials) Complete() bool {
	return c.ConsumerKey != "" && c.ConsumerSecret != "" && c.Token != "" && c.TokenSecret != ""
}
