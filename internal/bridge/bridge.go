// Package bridge exposes the platform contact store, permission subsystem and
// contacts application through the framework contact contract.
package bridge

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/apperr"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/mapper"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/model"
	pkgmodel "gitlab.com/dirk.krummacker/contacts-bridge/pkg/model"
)

// Store is the platform contact store.
type Store interface {
	QueryContacts(ctx context.Context) ([]model.Contact, error)
	QueryKey(ctx context.Context, id int64) (string, error)
	QueryContact(ctx context.Context, key string) (model.Contact, error)
	QueryContactsByPhoneNumber(ctx context.Context, phoneNumber string) ([]model.Contact, error)
	QueryContactsByEmail(ctx context.Context, email string) ([]model.Contact, error)
	AddContact(ctx context.Context, c model.Contact) (int64, error)
	UpdateContact(ctx context.Context, c model.Contact) error
	DeleteContact(ctx context.Context, key string) error
}

// PermissionManager is the platform permission subsystem.
type PermissionManager interface {
	Check(ctx context.Context, p model.Permission) (model.GrantStatus, error)
	Request(ctx context.Context, ps []model.Permission) ([]model.GrantStatus, error)
}

// AbilityStarter starts an external interface.
type AbilityStarter interface {
	StartAbility(ctx context.Context, want model.Want) error
}

// permissions are required together for any access to the store.
var permissions = []model.Permission{model.ReadContacts, model.WriteContacts}

// Bridge implements the framework contact operations.
type Bridge struct {
	store    Store
	perms    PermissionManager
	starter  AbilityStarter
	logger   zerolog.Logger

	// launched, if set, runs after every launch attempt has finished.
	launched func()
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger used for launch results and no-op calls.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Bridge) {
		b.logger = l
	}
}

// New returns a Bridge over the given platform collaborators.
func New(store Store, perms PermissionManager, starter AbilityStarter, opts ...Option) *Bridge {
	b := &Bridge{
		store:   store,
		perms:   perms,
		starter: starter,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// GetAll returns every contact in the store.
func (b *Bridge) GetAll(ctx context.Context) ([]pkgmodel.Contact, error) {
	contacts, err := b.store.QueryContacts(ctx)
	if err != nil {
		return nil, err
	}
	return toFrameworkAll(contacts), nil
}

// GetAllWithoutPhotos returns every contact in the store. Photos are never
// loaded eagerly, so this is the same as GetAll.
func (b *Bridge) GetAllWithoutPhotos(ctx context.Context) ([]pkgmodel.Contact, error) {
	return b.GetAll(ctx)
}

// GetContactByID returns the contact with the given record id.
func (b *Bridge) GetContactByID(ctx context.Context, recordID string) (pkgmodel.Contact, error) {
	id, err := mapper.ParseRecordID(recordID)
	if err != nil {
		return pkgmodel.Contact{}, err
	}
	key, err := b.store.QueryKey(ctx, id)
	if err != nil {
		return pkgmodel.Contact{}, err
	}
	c, err := b.store.QueryContact(ctx, key)
	if err != nil {
		return pkgmodel.Contact{}, err
	}
	return mapper.ToFramework(c), nil
}

// GetCount returns the number of contacts in the store.
func (b *Bridge) GetCount(ctx context.Context) (int, error) {
	contacts, err := b.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(contacts), nil
}

// GetPhotoForID returns the thumbnail path of the contact with the given
// record id. It is empty when the contact has no portrait.
func (b *Bridge) GetPhotoForID(ctx context.Context, recordID string) (string, error) {
	c, err := b.GetContactByID(ctx, recordID)
	if err != nil {
		return "", err
	}
	return c.ThumbnailPath, nil
}

// AddContact creates the contact and returns it as stored, including the
// newly assigned record id.
func (b *Bridge) AddContact(ctx context.Context, c pkgmodel.Contact) (pkgmodel.Contact, error) {
	pc, err := mapper.ToPlatform(c)
	if err != nil {
		return pkgmodel.Contact{}, err
	}
	id, err := b.store.AddContact(ctx, pc)
	if err != nil {
		return pkgmodel.Contact{}, err
	}
	return b.GetContactByID(ctx, fmt.Sprint(id))
}

// UpdateContact replaces the stored contact with the same record id. It
// returns once the store has confirmed the write.
func (b *Bridge) UpdateContact(ctx context.Context, c pkgmodel.Contact) error {
	if c.RecordID == "" {
		return fmt.Errorf("recordID invalid: %w", apperr.ErrInvalidArgument)
	}
	pc, err := mapper.ToPlatform(c)
	if err != nil {
		return err
	}
	return b.store.UpdateContact(ctx, pc)
}

// DeleteContact removes the contact with the record id of c. It returns once
// the store has confirmed the deletion.
func (b *Bridge) DeleteContact(ctx context.Context, c pkgmodel.Contact) error {
	id, err := mapper.ParseRecordID(c.RecordID)
	if err != nil {
		return err
	}
	key, err := b.store.QueryKey(ctx, id)
	if err != nil {
		return err
	}
	return b.store.DeleteContact(ctx, key)
}

// GetContactsMatchingString returns the contacts whose full name contains s.
// The comparison is case-sensitive.
func (b *Bridge) GetContactsMatchingString(ctx context.Context, s string) ([]pkgmodel.Contact, error) {
	contacts, err := b.store.QueryContacts(ctx)
	if err != nil {
		return nil, err
	}
	out := []pkgmodel.Contact{}
	for _, c := range contacts {
		name := c.FullName()
		if name != "" && strings.Contains(name, s) {
			out = append(out, mapper.ToFramework(c))
		}
	}
	return out, nil
}

// GetContactsByPhoneNumber returns the contacts that have the phone number.
func (b *Bridge) GetContactsByPhoneNumber(ctx context.Context, phoneNumber string) ([]pkgmodel.Contact, error) {
	contacts, err := b.store.QueryContactsByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}
	return toFrameworkAll(contacts), nil
}

// GetContactsByEmailAddress returns the contacts that have the email
// address.
func (b *Bridge) GetContactsByEmailAddress(ctx context.Context, email string) ([]pkgmodel.Contact, error) {
	contacts, err := b.store.QueryContactsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return toFrameworkAll(contacts), nil
}

// WritePhotoToPath is not available on this platform.
func (b *Bridge) WritePhotoToPath(_ context.Context, _ string, _ string) (bool, error) {
	return false, apperr.ErrNotSupported
}

// EnableNotesUsage has no effect on this platform, notes are always usable.
func (b *Bridge) EnableNotesUsage(_ context.Context, enabled bool) {
	b.logger.Debug().Bool("enabled", enabled).Msg("notes usage toggle ignored")
}

func toFrameworkAll(contacts []model.Contact) []pkgmodel.Contact {
	out := make([]pkgmodel.Contact, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, mapper.ToFramework(c))
	}
	return out
}
