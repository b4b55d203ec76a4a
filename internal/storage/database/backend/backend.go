// Package backend opens the configured database.DB implementation.
package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/LeJamon/goQortald/internal/storage/database"
	"github.com/LeJamon/goQortald/internal/storage/database/bbolt"
	"github.com/LeJamon/goQortald/internal/storage/database/compression"
	"github.com/LeJamon/goQortald/internal/storage/database/leveldb"
	"github.com/LeJamon/goQortald/internal/storage/database/memory"
	"github.com/LeJamon/goQortald/internal/storage/database/pebble"
	"github.com/LeJamon/goQortald/internal/storage/database/sqldb"
)

// Supported backend types.
const (
	TypeMemory  = "memory"
	TypePebble  = "pebble"
	TypeBolt    = "bbolt"
	TypeLevelDB = "leveldb"
	TypeSQL     = "sql"
)

// Types lists every supported backend type.
var Types = []string{TypeMemory, TypePebble, TypeBolt, TypeLevelDB, TypeSQL}

// Config selects and locates a backend.
type Config struct {
	Type string `toml:"type" mapstructure:"type"`
	// Path is the directory or file of the embedded stores.
	Path string `toml:"path" mapstructure:"path"`
	// Driver and DSN configure the sql backend.
	Driver string `toml:"driver" mapstructure:"driver"`
	DSN    string `toml:"dsn" mapstructure:"dsn"`
	// Compression stores values lz4-compressed.
	Compression bool `toml:"compression" mapstructure:"compression"`
}

// Validate checks that the fields the selected type needs are set.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Type) {
	case TypeMemory:
		return nil
	case TypePebble, TypeBolt, TypeLevelDB:
		if c.Path == "" {
			return fmt.Errorf("storage type %s requires a path", c.Type)
		}
		return nil
	case TypeSQL:
		if _, err := sqldb.DialectFor(c.Driver); err != nil {
			return err
		}
		if c.DSN == "" {
			return fmt.Errorf("storage type %s requires a dsn", c.Type)
		}
		return nil
	case "":
		return fmt.Errorf("storage type is required")
	}
	return fmt.Errorf("invalid storage type: %s (valid options: %s)", c.Type, strings.Join(Types, ", "))
}

// Open opens the backend described by cfg, wrapped for compression when
// enabled. The caller owns the returned database.
func Open(ctx context.Context, cfg Config) (database.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		db  database.DB
		err error
	)
	switch strings.ToLower(cfg.Type) {
	case TypeMemory:
		db = memory.New()
	case TypePebble:
		db, err = pebble.Open(cfg.Path)
	case TypeBolt:
		db, err = bbolt.Open(cfg.Path)
	case TypeLevelDB:
		db, err = leveldb.Open(cfg.Path)
	case TypeSQL:
		db, err = sqldb.Open(ctx, cfg.Driver, cfg.DSN)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Compression {
		return compression.Wrap(db), nil
	}
	return db, nil
}
