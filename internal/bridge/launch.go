package bridge

import (
	"context"

	"gitlab.com/dirk.krummacker/contacts-bridge/internal/mapper"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/model"
	pkgmodel "gitlab.com/dirk.krummacker/contacts-bridge/pkg/model"
)

const (
	contactsBundle  = "com.ohos.contacts"
	contactsAbility = "com.ohos.contacts.MainAbility"

	pageAdd     = "page_flag_save_contact"
	pageDetails = "page_flag_contact_details"
)

// OpenContactForm opens the "new contact" page of the contacts application,
// prefilled with the name and the first phone number of c. It does not wait
// for the user and returns c unchanged. The record id is not used.
func (b *Bridge) OpenContactForm(ctx context.Context, c pkgmodel.Contact) (pkgmodel.Contact, error) {
	pc, err := mapper.ToPlatform(withoutRecordID(c))
	if err != nil {
		return pkgmodel.Contact{}, err
	}
	b.launch(ctx, pageAdd, map[string]any{
		"contactName": pc.FullName(),
		"phoneNumber": firstPhoneNumber(pc),
	})
	return c, nil
}

// OpenExistingContact opens the details page of the contact with the first
// phone number of c and returns c unchanged. The record id is not used.
func (b *Bridge) OpenExistingContact(ctx context.Context, c pkgmodel.Contact) (pkgmodel.Contact, error) {
	return b.openDetails(ctx, c, false)
}

// EditExistingContact opens the details page for editing and returns c
// unchanged. The record id is not used.
func (b *Bridge) EditExistingContact(ctx context.Context, c pkgmodel.Contact) (pkgmodel.Contact, error) {
	return b.openDetails(ctx, c, false)
}

// ViewExistingContact opens the details page of the contact with the record
// id of c and returns c unchanged. A record id that is not numeric is
// rejected.
func (b *Bridge) ViewExistingContact(ctx context.Context, c pkgmodel.Contact) (pkgmodel.Contact, error) {
	return b.openDetails(ctx, c, true)
}

func (b *Bridge) openDetails(ctx context.Context, c pkgmodel.Contact, withID bool) (pkgmodel.Contact, error) {
	submitted := c
	if !withID {
		submitted = withoutRecordID(c)
	}
	pc, err := mapper.ToPlatform(submitted)
	if err != nil {
		return pkgmodel.Contact{}, err
	}
	params := map[string]any{
		"phoneNumber": firstPhoneNumber(pc),
	}
	if withID && pc.ID != nil {
		params["contactId"] = *pc.ID
	}
	b.launch(ctx, pageDetails, params)
	return c, nil
}

func withoutRecordID(c pkgmodel.Contact) pkgmodel.Contact {
	c.RecordID = ""
	return c
}

// launch starts the contacts application in the background. The outcome is
// only logged.
func (b *Bridge) launch(ctx context.Context, page string, params map[string]any) {
	params["pageFlag"] = page
	want := model.Want{
		BundleName:  contactsBundle,
		AbilityName: contactsAbility,
		Parameters:  params,
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		if b.launched != nil {
			defer b.launched()
		}
		if err := b.starter.StartAbility(ctx, want); err != nil {
			b.logger.Error().Err(err).Str("page", page).Msg("failed to start contacts ability")
			return
		}
		b.logger.Info().Str("page", page).Msg("started contacts ability")
	}()
}

func firstPhoneNumber(c model.Contact) string {
	if len(c.PhoneNumbers) == 0 {
		return ""
	}
	return c.PhoneNumbers[0].PhoneNumber
}
