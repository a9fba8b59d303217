package store

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/model"
)

// childTables hold the repeated fields of a contact.
var childTables = []string{
	"contact_phones",
	"contact_emails",
	"contact_postal_addresses",
	"contact_im_addresses",
	"contact_events",
}

// contactRow is one row of the contacts table. Optional blocks are NULL when
// absent.
type contactRow struct {
	ID          int64          `db:"id"`
	Key         string         `db:"lookup_key"`
	FullName    string         `db:"full_name"`
	FamilyName  string         `db:"family_name"`
	GivenName   string         `db:"given_name"`
	MiddleName  string         `db:"middle_name"`
	NamePrefix  string         `db:"name_prefix"`
	NameSuffix  string         `db:"name_suffix"`
	NickName    sql.NullString `db:"nick_name"`
	OrgName     sql.NullString `db:"org_name"`
	OrgTitle    sql.NullString `db:"org_title"`
	Note        sql.NullString `db:"note"`
	PortraitURI sql.NullString `db:"portrait_uri"`
}

func newContactRow(c model.Contact) contactRow {
	var row contactRow
	if c.Name != nil {
		row.FullName = c.Name.FullName
		row.FamilyName = c.Name.FamilyName
		row.GivenName = c.Name.GivenName
		row.MiddleName = c.Name.MiddleName
		row.NamePrefix = c.Name.NamePrefix
		row.NameSuffix = c.Name.NameSuffix
	}
	if c.NickName != nil {
		row.NickName = sql.NullString{String: c.NickName.NickName, Valid: true}
	}
	if c.Organization != nil {
		row.OrgName = sql.NullString{String: c.Organization.Name, Valid: true}
		row.OrgTitle = sql.NullString{String: c.Organization.Title, Valid: true}
	}
	if c.Note != nil {
		row.Note = sql.NullString{String: c.Note.NoteContent, Valid: true}
	}
	if c.Portrait != nil {
		row.PortraitURI = sql.NullString{String: c.Portrait.URI, Valid: true}
	}
	return row
}

func (r contactRow) toContact() model.Contact {
	id := r.ID
	c := model.Contact{
		ID:  &id,
		Key: r.Key,
		Name: &model.Name{
			FullName:   r.FullName,
			FamilyName: r.FamilyName,
			GivenName:  r.GivenName,
			MiddleName: r.MiddleName,
			NamePrefix: r.NamePrefix,
			NameSuffix: r.NameSuffix,
		},
	}
	if r.NickName.Valid {
		c.NickName = &model.NickName{NickName: r.NickName.String}
	}
	if r.OrgName.Valid || r.OrgTitle.Valid {
		c.Organization = &model.Organization{Name: r.OrgName.String, Title: r.OrgTitle.String}
	}
	if r.Note.Valid {
		c.Note = &model.Note{NoteContent: r.Note.String}
	}
	if r.PortraitURI.Valid {
		c.Portrait = &model.Portrait{URI: r.PortraitURI.String}
	}
	return c
}

// childRow is a row of one of the child tables.
type childRow[T any] interface {
	owner() int64
	value() T
}

type phoneRow struct {
	ContactID int64 `db:"contact_id"`
	model.PhoneNumber
}

func (r phoneRow) owner() int64 { return r.ContactID }
func (r phoneRow) value() model.PhoneNumber { return r.PhoneNumber }

type emailRow struct {
	ContactID int64 `db:"contact_id"`
	model.Email
}

func (r emailRow) owner() int64 { return r.ContactID }
func (r emailRow) value() model.Email { return r.Email }

type postalAddressRow struct {
	ContactID int64 `db:"contact_id"`
	model.PostalAddress
}

func (r postalAddressRow) owner() int64 { return r.ContactID }
func (r postalAddressRow) value() model.PostalAddress { return r.PostalAddress }

type imAddressRow struct {
	ContactID int64 `db:"contact_id"`
	model.ImAddress
}

func (r imAddressRow) owner() int64 { return r.ContactID }
func (r imAddressRow) value() model.ImAddress { return r.ImAddress }

type eventRow struct {
	ContactID int64 `db:"contact_id"`
	model.Event
}

func (r eventRow) owner() int64 { return r.ContactID }
func (r eventRow) value() model.Event { return r.Event }

// selectChildren loads the child rows of all given contacts, grouped by
// contact id and in stored order.
func selectChildren[T any, R childRow[T]](ctx context.Context, db *sqlx.DB, query string, ids []int64) (map[int64][]T, error) {
	query, args, err := sqlx.In(query, ids)
	if err != nil {
		return nil, err
	}
	var rows []R
	if err := db.SelectContext(ctx, &rows, db.Rebind(query), args...); err != nil {
		return nil, err
	}
	out := make(map[int64][]T)
	for _, r := range rows {
		out[r.owner()] = append(out[r.owner()], r.value())
	}
	return out, nil
}

// hydrate turns contact rows into contacts including their repeated fields.
func (s *Store) hydrate(ctx context.Context, rows []contactRow) ([]model.Contact, error) {
	contacts := make([]model.Contact, 0, len(rows))
	if len(rows) == 0 {
		return contacts, nil
	}
	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}

	phones, err := selectChildren[model.PhoneNumber, phoneRow](ctx, s.db, `
		SELECT contact_id, label_name, phone_number FROM contact_phones
		WHERE contact_id IN (?) ORDER BY contact_id, position`, ids)
	if err != nil {
		return nil, err
	}
	emails, err := selectChildren[model.Email, emailRow](ctx, s.db, `
		SELECT contact_id, label_name, email FROM contact_emails
		WHERE contact_id IN (?) ORDER BY contact_id, position`, ids)
	if err != nil {
		return nil, err
	}
	addresses, err := selectChildren[model.PostalAddress, postalAddressRow](ctx, s.db, `
		SELECT contact_id, label_name, postal_address, street, pobox, neighborhood, city,
			region, postcode, country
		FROM contact_postal_addresses
		WHERE contact_id IN (?) ORDER BY contact_id, position`, ids)
	if err != nil {
		return nil, err
	}
	ims, err := selectChildren[model.ImAddress, imAddressRow](ctx, s.db, `
		SELECT contact_id, label_name, im_address FROM contact_im_addresses
		WHERE contact_id IN (?) ORDER BY contact_id, position`, ids)
	if err != nil {
		return nil, err
	}
	events, err := selectChildren[model.Event, eventRow](ctx, s.db, `
		SELECT contact_id, label_id, label_name, event_date FROM contact_events
		WHERE contact_id IN (?) ORDER BY contact_id, position`, ids)
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		c := r.toContact()
		c.PhoneNumbers = phones[r.ID]
		c.Emails = emails[r.ID]
		c.PostalAddresses = addresses[r.ID]
		c.ImAddresses = ims[r.ID]
		c.Events = events[r.ID]
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// insertChildren writes the repeated fields of c for the contact id.
func insertChildren(ctx context.Context, tx *sqlx.Tx, id int64, c model.Contact) error {
	for i, p := range c.PhoneNumbers {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO contact_phones (contact_id, position, label_name, phone_number)
			VALUES (?, ?, ?, ?)`, id, i, p.LabelName, p.PhoneNumber); err != nil {
			return err
		}
	}
	for i, e := range c.Emails {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO contact_emails (contact_id, position, label_name, email)
			VALUES (?, ?, ?, ?)`, id, i, e.LabelName, e.Email); err != nil {
			return err
		}
	}
	for i, a := range c.PostalAddresses {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO contact_postal_addresses (contact_id, position, label_name, postal_address,
				street, pobox, neighborhood, city, region, postcode, country)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, id, i, a.LabelName, a.PostalAddress,
			a.Street, a.Pobox, a.Neighborhood, a.City, a.Region, a.Postcode, a.Country); err != nil {
			return err
		}
	}
	for i, a := range c.ImAddresses {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO contact_im_addresses (contact_id, position, label_name, im_address)
			VALUES (?, ?, ?, ?)`, id, i, a.LabelName, a.ImAddress); err != nil {
			return err
		}
	}
	for i, ev := range c.Events {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO contact_events (contact_id, position, label_id, label_name, event_date)
			VALUES (?, ?, ?, ?, ?)`, id, i, ev.LabelID, ev.LabelName, ev.EventDate); err != nil {
			return err
		}
	}
	return nil
}
