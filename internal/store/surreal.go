package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/ideaboard/ideaboard-server/internal/config"
	apperrors "github.com/ideaboard/ideaboard-server/internal/errors"
	"github.com/ideaboard/ideaboard-server/internal/record"
)

// remoteStore is the networked backend: a SurrealDB instance reached over
// the configured endpoint with namespace, database, and credentials. The
// engine assigns native record IDs; they stringify to the same
// "<table>:<key>" canonical form the embedded backend uses.
type remoteStore struct {
	db     *surrealdb.DB
	logger *slog.Logger
}

// openRemote connects, authenticates, and selects the namespace/database.
// Everything in the handshake maps to storage-unavailable: the backend is
// not reachable in a usable state.
func openRemote(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (Store, error) {
	db, err := surrealdb.FromEndpointURLString(ctx, cfg.Address)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.CodeStorageUnavailable, "failed to connect to %s", cfg.Address)
	}

	if err := db.Use(ctx, cfg.Namespace, cfg.Database); err != nil {
		_ = db.Close(ctx)
		return nil, apperrors.Wrapf(err, apperrors.CodeStorageUnavailable, "failed to select namespace %s / database %s", cfg.Namespace, cfg.Database)
	}

	if _, err := db.SignIn(ctx, surrealdb.Auth{Username: cfg.Username, Password: cfg.Password}); err != nil {
		_ = db.Close(ctx)
		return nil, apperrors.Wrap(err, apperrors.CodeStorageUnavailable, "failed to authenticate with remote database")
	}

	if logger != nil {
		logger.Info("remote database connected",
			"address", cfg.Address,
			"namespace", cfg.Namespace,
			"database", cfg.Database,
		)
	}

	return &remoteStore{db: db, logger: logger}, nil
}

// Create inserts one record; the engine assigns the native record ID.
func (s *remoteStore) Create(ctx context.Context, table string, doc []byte) (Row, error) {
	fields, err := decodeDoc(doc)
	if err != nil {
		return Row{}, err
	}

	created, err := surrealdb.Create[map[string]any](ctx, s.db, models.Table(table), fields)
	if err != nil {
		return Row{}, mapRemoteErr(err)
	}
	if created == nil {
		return Row{}, apperrors.StorageRejected("remote database returned no record for create")
	}

	return rowFromResult(*created)
}

// List returns every record of a table in engine order.
func (s *remoteStore) List(ctx context.Context, table string) ([]Row, error) {
	results, err := surrealdb.Select[[]map[string]any](ctx, s.db, models.Table(table))
	if err != nil {
		return nil, mapRemoteErr(err)
	}

	rows := []Row{}
	if results == nil {
		return rows, nil
	}

	for _, result := range *results {
		row, err := rowFromResult(result)
		if err != nil {
			// Surface the corruption in logs; the listing itself proceeds.
			if s.logger != nil {
				s.logger.Warn("skipping record with malformed identity", "table", table, "error", err)
			}
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Get retrieves one record by reference.
func (s *remoteStore) Get(ctx context.Context, ref record.Ref) (Row, error) {
	result, err := surrealdb.Select[map[string]any](ctx, s.db, models.NewRecordID(ref.Table, ref.Key))
	if err != nil {
		return Row{}, mapRemoteErr(err)
	}
	if result == nil || len(*result) == 0 {
		return Row{}, apperrors.ErrNotFound
	}

	return rowFromResult(*result)
}

// Update replaces the full document of an existing record. SurrealDB's
// update would upsert a missing record, so existence is checked first to
// honor the not-found contract.
func (s *remoteStore) Update(ctx context.Context, ref record.Ref, doc []byte) (Row, error) {
	if _, err := s.Get(ctx, ref); err != nil {
		return Row{}, err
	}

	fields, err := decodeDoc(doc)
	if err != nil {
		return Row{}, err
	}

	updated, err := surrealdb.Update[map[string]any](ctx, s.db, models.NewRecordID(ref.Table, ref.Key), fields)
	if err != nil {
		return Row{}, mapRemoteErr(err)
	}
	if updated == nil {
		return Row{}, apperrors.ErrNotFound
	}

	return rowFromResult(*updated)
}

// Delete removes a record, reporting not-found for unknown references.
func (s *remoteStore) Delete(ctx context.Context, ref record.Ref) error {
	if _, err := s.Get(ctx, ref); err != nil {
		return err
	}

	_, err := surrealdb.Delete[map[string]any](ctx, s.db, models.NewRecordID(ref.Table, ref.Key))
	return mapRemoteErr(err)
}

// Close terminates the connection.
func (s *remoteStore) Close() error {
	if s.logger != nil {
		s.logger.Info("closing remote database connection")
	}
	return s.db.Close(context.Background())
}

// decodeDoc unmarshals a JSON document body into driver fields.
func decodeDoc(doc []byte) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorageRejected, "malformed record document")
	}
	return fields, nil
}

// rowFromResult splits a driver result into the composite reference and the
// JSON document body. The engine's RecordID is the one place backend key
// structure is visible; it is normalized here and nowhere else.
func rowFromResult(result map[string]any) (Row, error) {
	raw, ok := result["id"]
	if !ok {
		return Row{}, apperrors.InvalidIdentity("remote record has no id")
	}
	delete(result, "id")

	rid, ok := raw.(models.RecordID)
	if !ok {
		return Row{}, apperrors.InvalidIdentityf("remote record id has unexpected type %T", raw)
	}
	ref := record.Ref{Table: rid.Table, Key: fmt.Sprint(rid.ID)}

	doc, err := json.Marshal(result)
	if err != nil {
		return Row{}, apperrors.Wrap(err, apperrors.CodeStorageRejected, "failed to encode record document")
	}

	return Row{Ref: ref, Doc: doc}, nil
}

// mapRemoteErr converts driver and context errors to domain errors.
func mapRemoteErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apperrors.Wrap(err, apperrors.CodeStorageUnavailable, "storage operation timed out")
	default:
		return apperrors.Wrap(err, apperrors.CodeStorageRejected, "remote database rejected the operation")
	}
}
