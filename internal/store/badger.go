package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/ideaboard/ideaboard-server/internal/config"
	apperrors "github.com/ideaboard/ideaboard-server/internal/errors"
	"github.com/ideaboard/ideaboard-server/internal/id"
	"github.com/ideaboard/ideaboard-server/internal/record"
)

// embeddedStore is the embedded backend: a Badger database on the local
// filesystem. Keys are the canonical "<table>:<key>" form; values are the
// JSON document bodies unchanged.
type embeddedStore struct {
	db     *badger.DB
	logger *slog.Logger
}

// openEmbedded opens the on-disk Badger database at the configured path.
func openEmbedded(cfg config.StorageConfig, logger *slog.Logger) (Store, error) {
	opts := badger.DefaultOptions(cfg.Path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.CodeStorageUnavailable, "failed to open embedded database at %s", cfg.Path)
	}

	if logger != nil {
		logger.Info("embedded database opened", "path", cfg.Path)
	}

	return &embeddedStore{db: db, logger: logger}, nil
}

// Create inserts one record. The native key is a fresh NanoID; Badger has
// no key generator of its own, so identity assignment happens here.
func (s *embeddedStore) Create(ctx context.Context, table string, doc []byte) (Row, error) {
	if err := ctx.Err(); err != nil {
		return Row{}, mapEmbeddedErr(err)
	}

	key, err := id.NewKey()
	if err != nil {
		return Row{}, apperrors.Wrap(err, apperrors.CodeInternal, "failed to generate record key")
	}
	ref := record.Ref{Table: table, Key: key}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(ref.String()), doc)
	})
	if err != nil {
		return Row{}, mapEmbeddedErr(err)
	}

	return Row{Ref: ref, Doc: doc}, nil
}

// List returns every record of a table via a prefix scan. Badger iterates
// in key order; that ordering is backend-native, not part of the contract.
func (s *embeddedStore) List(ctx context.Context, table string) ([]Row, error) {
	prefix := []byte(table + ":")
	rows := []Row{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.PrefetchValues = true

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			key := string(it.Item().Key())
			ref, err := record.ParseRef(key)
			if err != nil {
				// Keys are written through Ref.String, so this is corruption.
				if s.logger != nil {
					s.logger.Warn("skipping record with malformed key", "key", key)
				}
				continue
			}

			doc, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}

			rows = append(rows, Row{Ref: ref, Doc: doc})
		}

		return nil
	})
	if err != nil {
		return nil, mapEmbeddedErr(err)
	}

	return rows, nil
}

// Get retrieves one record by reference.
func (s *embeddedStore) Get(ctx context.Context, ref record.Ref) (Row, error) {
	if err := ctx.Err(); err != nil {
		return Row{}, mapEmbeddedErr(err)
	}

	var doc []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(ref.String()))
		if err != nil {
			return err
		}
		doc, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return Row{}, mapEmbeddedErr(err)
	}

	return Row{Ref: ref, Doc: doc}, nil
}

// Update replaces the full document of an existing record.
func (s *embeddedStore) Update(ctx context.Context, ref record.Ref, doc []byte) (Row, error) {
	if err := ctx.Err(); err != nil {
		return Row{}, mapEmbeddedErr(err)
	}

	key := []byte(ref.String())
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Set(key, doc)
	})
	if err != nil {
		return Row{}, mapEmbeddedErr(err)
	}

	return Row{Ref: ref, Doc: doc}, nil
}

// Delete removes a record, reporting not-found for unknown references.
func (s *embeddedStore) Delete(ctx context.Context, ref record.Ref) error {
	if err := ctx.Err(); err != nil {
		return mapEmbeddedErr(err)
	}

	key := []byte(ref.String())
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	return mapEmbeddedErr(err)
}

// Close gracefully closes the database.
func (s *embeddedStore) Close() error {
	if s.logger != nil {
		s.logger.Info("closing embedded database")
	}
	return s.db.Close()
}

// mapEmbeddedErr converts Badger and context errors to domain errors so no
// backend-specific error type escapes the store.
func mapEmbeddedErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return apperrors.ErrNotFound
	case errors.Is(err, badger.ErrDBClosed), errors.Is(err, badger.ErrBlockedWrites):
		return apperrors.Wrap(err, apperrors.CodeStorageUnavailable, "embedded database unavailable")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apperrors.Wrap(err, apperrors.CodeStorageUnavailable, "storage operation timed out")
	default:
		return apperrors.Wrap(err, apperrors.CodeStorageRejected, "embedded database rejected the operation")
	}
}
