// Package mapper translates contacts between the platform contact store
// representation and the representation exposed to the framework.
package mapper

import (
	"fmt"
	"strconv"
	"time"

	"gitlab.com/dirk.krummacker/contacts-bridge/internal/apperr"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/model"
	pkgmodel "gitlab.com/dirk.krummacker/contacts-bridge/pkg/model"
)

// birthdayLabel is the label name attached to birthday events written to the
// store.
const birthdayLabel = "birthday"

// eventDateLayouts are tried in order when a stored event date is read.
var eventDateLayouts = []string{"2006/1/2", "2006-1-2", time.RFC3339}

// ParseRecordID converts a framework record id into a store id. Anything that
// is not a base 10 integer is rejected.
func ParseRecordID(recordID string) (int64, error) {
	id, err := strconv.ParseInt(recordID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("contactId invalid: %q: %w", recordID, apperr.ErrInvalidArgument)
	}
	return id, nil
}

// ToFramework converts a store contact into a framework contact. It never
// fails. Lists keep their length and order.
func ToFramework(c model.Contact) pkgmodel.Contact {
	out := pkgmodel.Contact{
		BackTitle:       "",
		Department:      "",
		IsStarred:       false,
		EmailAddresses:  mapSlice(c.Emails, toFrameworkEmail),
		PhoneNumbers:    mapSlice(c.PhoneNumbers, toFrameworkPhoneNumber),
		PostalAddresses: mapSlice(c.PostalAddresses, toFrameworkPostalAddress),
		ImAddresses:     mapSlice(c.ImAddresses, toFrameworkImAddress),
		Birthday:        birthdayOf(c.Events),
	}
	if c.ID != nil {
		out.RecordID = strconv.FormatInt(*c.ID, 10)
	}
	if c.Name != nil {
		out.FamilyName = c.Name.FamilyName
		out.GivenName = c.Name.GivenName
		out.MiddleName = c.Name.MiddleName
		out.Prefix = c.Name.NamePrefix
		out.Suffix = c.Name.NameSuffix
	}
	if c.NickName != nil {
		out.DisplayName = c.NickName.NickName
	}
	if c.Organization != nil {
		out.Company = c.Organization.Name
		out.JobTitle = c.Organization.Title
	}
	if c.Note != nil {
		out.Note = c.Note.NoteContent
	}

	// The portrait is the only url the store knows about. Without one the
	// list still carries a single null entry.
	var portrait *pkgmodel.UrlAddress
	if c.Portrait != nil && c.Portrait.URI != "" {
		portrait = &pkgmodel.UrlAddress{URL: c.Portrait.URI, Label: ""}
		out.HasThumbnail = true
		out.ThumbnailPath = c.Portrait.URI
	}
	out.UrlAddresses = []*pkgmodel.UrlAddress{portrait}
	return out
}

// ToPlatform converts a framework contact into a store contact. The only
// failure is a record id that is set but not numeric.
func ToPlatform(c pkgmodel.Contact) (model.Contact, error) {
	out := model.Contact{
		Emails:          nonNil(mapSlice(c.EmailAddresses, toPlatformEmail)),
		PhoneNumbers:    nonNil(mapSlice(c.PhoneNumbers, toPlatformPhoneNumber)),
		PostalAddresses: nonNil(mapSlice(c.PostalAddresses, toPlatformPostalAddress)),
		ImAddresses:     nonNil(mapSlice(c.ImAddresses, toPlatformImAddress)),
		Name: &model.Name{
			// No separators between the parts.
			FullName:   c.GivenName + c.MiddleName + c.FamilyName,
			FamilyName: c.FamilyName,
			GivenName:  c.GivenName,
			MiddleName: c.MiddleName,
			NamePrefix: c.Prefix,
			NameSuffix: c.Suffix,
		},
	}
	if c.RecordID != "" {
		id, err := ParseRecordID(c.RecordID)
		if err != nil {
			return model.Contact{}, err
		}
		out.ID = &id
	}
	if c.DisplayName != "" {
		out.NickName = &model.NickName{NickName: c.DisplayName}
	}
	if c.Note != "" {
		out.Note = &model.Note{NoteContent: c.Note}
	}
	if c.Company != "" && c.JobTitle != "" {
		out.Organization = &model.Organization{Name: c.Company, Title: c.JobTitle}
	}
	if ev, ok := birthdayEvent(c.Birthday); ok {
		out.Events = []model.Event{ev}
	}
	if c.ThumbnailPath != "" {
		out.Portrait = &model.Portrait{URI: c.ThumbnailPath}
	}
	return out, nil
}

// birthdayOf returns the birthday stored in the first birthday event. Later
// birthday events are ignored. A date that cannot be read yields nil.
func birthdayOf(events []model.Event) *pkgmodel.Birthday {
	for _, ev := range events {
		if ev.LabelID != model.EventBirthday {
			continue
		}
		t, ok := parseEventDate(ev.EventDate)
		if !ok {
			return nil
		}
		return &pkgmodel.Birthday{
			Day:   t.Day(),
			Month: int(t.Month()),
			Year:  t.Year(),
		}
	}
	return nil
}

func parseEventDate(s string) (time.Time, bool) {
	for _, layout := range eventDateLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t.In(time.Local), true
		}
	}
	return time.Time{}, false
}

func birthdayEvent(b *pkgmodel.Birthday) (model.Event, bool) {
	if b == nil || b.Day == 0 || b.Month == 0 || b.Year == 0 {
		return model.Event{}, false
	}
	return model.Event{
		LabelID:   model.EventBirthday,
		LabelName: birthdayLabel,
		EventDate: fmt.Sprintf("%d/%d/%d", b.Year, b.Month, b.Day),
	}, true
}

func toFrameworkEmail(e model.Email) pkgmodel.EmailAddress {
	return pkgmodel.EmailAddress{Label: e.LabelName, Email: e.Email}
}

func toPlatformEmail(e pkgmodel.EmailAddress) model.Email {
	return model.Email{LabelName: e.Label, Email: e.Email}
}

func toFrameworkPhoneNumber(p model.PhoneNumber) pkgmodel.PhoneNumber {
	return pkgmodel.PhoneNumber{Label: p.LabelName, Number: p.PhoneNumber}
}

func toPlatformPhoneNumber(p pkgmodel.PhoneNumber) model.PhoneNumber {
	return model.PhoneNumber{LabelName: p.Label, PhoneNumber: p.Number}
}

// toFrameworkPostalAddress fills State from Region, the store has no
// separate state field.
func toFrameworkPostalAddress(a model.PostalAddress) pkgmodel.PostalAddress {
	return pkgmodel.PostalAddress{
		Label:            a.LabelName,
		FormattedAddress: a.PostalAddress,
		Street:           a.Street,
		Pobox:            a.Pobox,
		Neighborhood:     a.Neighborhood,
		City:             a.City,
		Region:           a.Region,
		State:            a.Region,
		PostCode:         a.Postcode,
		Country:          a.Country,
	}
}

func toPlatformPostalAddress(a pkgmodel.PostalAddress) model.PostalAddress {
	return model.PostalAddress{
		LabelName:     a.Label,
		PostalAddress: a.FormattedAddress,
		Street:        a.Street,
		Pobox:         a.Pobox,
		Neighborhood:  a.Neighborhood,
		City:          a.City,
		Region:        a.Region,
		Postcode:      a.PostCode,
		Country:       a.Country,
	}
}

// The store keeps the user name in the label and the service in the address.
func toFrameworkImAddress(a model.ImAddress) pkgmodel.InstantMessageAddress {
	return pkgmodel.InstantMessageAddress{Username: a.LabelName, Service: a.ImAddress}
}

func toPlatformImAddress(a pkgmodel.InstantMessageAddress) model.ImAddress {
	return model.ImAddress{LabelName: a.Username, ImAddress: a.Service}
}

// mapSlice applies f to every element. A nil input gives a nil output.
func mapSlice[S, T any](in []S, f func(S) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
