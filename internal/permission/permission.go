// Package permission keeps the grant state of the contact permissions in the
// database.
package permission

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/model"
)

// Policy decides how a permission request is answered.
type Policy string

const (
	// PolicyGrant grants every requested permission.
	PolicyGrant Policy = "grant"
	// PolicyDeny denies every requested permission.
	PolicyDeny Policy = "deny"
	// PolicyPrompt leaves the decision to an administrator who edits the
	// grants table. A request only reports the stored state.
	PolicyPrompt Policy = "prompt"
)

// Manager answers permission checks and requests.
type Manager struct {
	db     *sqlx.DB
	policy Policy
	logger zerolog.Logger
}

// New returns a Manager over the permission_grants table.
func New(sqlDB *sql.DB, policy Policy, logger zerolog.Logger) *Manager {
	return &Manager{
		db:     sqlx.NewDb(sqlDB, "mysql"),
		policy: policy,
		logger: logger,
	}
}

// Check returns the stored status of p. A permission that was never decided
// is denied.
func (m *Manager) Check(ctx context.Context, p model.Permission) (model.GrantStatus, error) {
	var status model.GrantStatus
	err := m.db.GetContext(ctx, &status, `SELECT status FROM permission_grants WHERE permission = ?`, p)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PermissionDenied, nil
	}
	if err != nil {
		return model.PermissionDenied, fmt.Errorf("check %s: %w", p, err)
	}
	return status, nil
}

// Request applies the policy to every permission in ps and returns the
// resulting status of each, in the same order.
func (m *Manager) Request(ctx context.Context, ps []model.Permission) ([]model.GrantStatus, error) {
	results := make([]model.GrantStatus, 0, len(ps))
	for _, p := range ps {
		var status model.GrantStatus
		switch m.policy {
		case PolicyGrant:
			status = model.PermissionGranted
		case PolicyDeny:
			status = model.PermissionDenied
		default:
			current, err := m.Check(ctx, p)
			if err != nil {
				return nil, err
			}
			results = append(results, current)
			continue
		}
		_, err := m.db.ExecContext(ctx, `
			INSERT INTO permission_grants (permission, status) VALUES (?, ?)
			ON DUPLICATE KEY UPDATE status = VALUES(status)`, p, status)
		if err != nil {
			return nil, fmt.Errorf("store %s: %w", p, err)
		}
		m.logger.Info().Str("permission", string(p)).Int("status", int(status)).
			Str("policy", string(m.policy)).Msg("permission decided")
		results = append(results, status)
	}
	return results, nil
}
