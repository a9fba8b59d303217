// Package store is the platform contact store. Contacts live in MySQL, one row
// per contact plus one table per repeated field.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/apperr"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/model"
)

// Store gives access to the contacts tables.
type Store struct {
	db *sqlx.DB

	// selectKeyWhereId is a prepared statement for looking up the key of a contact.
	selectKeyWhereId *sqlx.Stmt

	// selectWhereKey is a prepared statement for selecting the contact with a given key.
	selectWhereKey *sqlx.Stmt

	// deleteWhereKey is a prepared statement for deleting the contact with a given key.
	deleteWhereKey *sqlx.Stmt
}

// CreateDatabase opens a MySQL connection with the given DSN, usually
// config.Config.DSN.
func CreateDatabase(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty data source name: %w", apperr.ErrInvalidArgument)
	}
	return sql.Open("mysql", dsn)
}

// New wraps the sql database and prepares all statements. The database can be
// a real database for production use or a mock database within unit tests.
func New(sqlDB *sql.DB) (*Store, error) {
	s := &Store{db: sqlx.NewDb(sqlDB, "mysql")}
	var err error

	// Prepared statements offer a significant speed increase if executed many times.
	s.selectKeyWhereId, err = s.db.Preparex(`
		SELECT lookup_key FROM contacts WHERE id = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare key lookup: %w", err)
	}
	s.selectWhereKey, err = s.db.Preparex(`
		SELECT * FROM contacts WHERE lookup_key = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare select: %w", err)
	}
	s.deleteWhereKey, err = s.db.Preparex(`
		DELETE FROM contacts WHERE lookup_key = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare delete: %w", err)
	}
	return s, nil
}

// Close releases the prepared statements and the database.
func (s *Store) Close() error {
	return errors.Join(
		s.selectKeyWhereId.Close(),
		s.selectWhereKey.Close(),
		s.deleteWhereKey.Close(),
		s.db.Close(),
	)
}

// QueryContacts returns all contacts ordered by id.
func (s *Store) QueryContacts(ctx context.Context) ([]model.Contact, error) {
	var rows []contactRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM contacts ORDER BY id`); err != nil {
		return nil, err
	}
	return s.hydrate(ctx, rows)
}

// QueryKey returns the lookup key of the contact with the given id.
func (s *Store) QueryKey(ctx context.Context, id int64) (string, error) {
	var key string
	err := s.selectKeyWhereId.GetContext(ctx, &key, id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("contact %d: %w", id, apperr.ErrNotFound)
	}
	return key, err
}

// QueryContact returns the contact with the given lookup key.
func (s *Store) QueryContact(ctx context.Context, key string) (model.Contact, error) {
	var rows []contactRow
	if err := s.selectWhereKey.SelectContext(ctx, &rows, key); err != nil {
		return model.Contact{}, err
	}
	if len(rows) == 0 {
		return model.Contact{}, fmt.Errorf("contact key %s: %w", key, apperr.ErrNotFound)
	}
	contacts, err := s.hydrate(ctx, rows)
	if err != nil {
		return model.Contact{}, err
	}
	return contacts[0], nil
}

// QueryContactsByPhoneNumber returns the contacts that have a phone number
// equal to phoneNumber.
func (s *Store) QueryContactsByPhoneNumber(ctx context.Context, phoneNumber string) ([]model.Contact, error) {
	var rows []contactRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT DISTINCT c.*
		FROM contacts c
			JOIN contact_phones p ON p.contact_id = c.id
		WHERE p.phone_number = ?
		ORDER BY c.id`, phoneNumber)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, rows)
}

// QueryContactsByEmail returns the contacts that have an email address equal
// to email.
func (s *Store) QueryContactsByEmail(ctx context.Context, email string) ([]model.Contact, error) {
	var rows []contactRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT DISTINCT c.*
		FROM contacts c
			JOIN contact_emails e ON e.contact_id = c.id
		WHERE e.email = ?
		ORDER BY c.id`, email)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, rows)
}

// AddContact inserts the contact with a fresh lookup key and returns the
// newly assigned id. An id set on c is ignored.
func (s *Store) AddContact(ctx context.Context, c model.Contact) (int64, error) {
	row := newContactRow(c)
	row.Key = uuid.NewString()

	var id int64
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.NamedExecContext(ctx, `
			INSERT INTO contacts (lookup_key, full_name, family_name, given_name, middle_name,
				name_prefix, name_suffix, nick_name, org_name, org_title, note, portrait_uri)
			VALUES (:lookup_key, :full_name, :family_name, :given_name, :middle_name,
				:name_prefix, :name_suffix, :nick_name, :org_name, :org_title, :note, :portrait_uri)
		`, &row)
		if err != nil {
			return err
		}
		id, err = result.LastInsertId()
		if err != nil {
			return err
		}
		return insertChildren(ctx, tx, id, c)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateContact replaces all fields of the stored contact with the id of c.
func (s *Store) UpdateContact(ctx context.Context, c model.Contact) error {
	if c.ID == nil {
		return fmt.Errorf("contact without id: %w", apperr.ErrInvalidArgument)
	}
	row := newContactRow(c)
	row.ID = *c.ID

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		var count int
		if err := tx.GetContext(ctx, &count, `SELECT COUNT(*) FROM contacts WHERE id = ?`, row.ID); err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("contact %d: %w", row.ID, apperr.ErrNotFound)
		}
		_, err := tx.NamedExecContext(ctx, `
			UPDATE contacts SET full_name=:full_name, family_name=:family_name,
				given_name=:given_name, middle_name=:middle_name, name_prefix=:name_prefix,
				name_suffix=:name_suffix, nick_name=:nick_name, org_name=:org_name,
				org_title=:org_title, note=:note, portrait_uri=:portrait_uri
			WHERE id=:id
		`, &row)
		if err != nil {
			return err
		}
		for _, table := range childTables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE contact_id = ?", row.ID); err != nil {
				return err
			}
		}
		return insertChildren(ctx, tx, row.ID, c)
	})
}

// DeleteContact removes the contact with the given lookup key. The rows of
// the repeated fields are removed by the database.
func (s *Store) DeleteContact(ctx context.Context, key string) error {
	result, err := s.deleteWhereKey.ExecContext(ctx, key)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return fmt.Errorf("contact key %s: %w", key, apperr.ErrNotFound)
	}
	return nil
}

// inTx runs f in a transaction that is committed when f succeeds and rolled
// back otherwise.
func (s *Store) inTx(ctx context.Context, f func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := f(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
