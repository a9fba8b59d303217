package model

// EventBirthday is the reserved event label id that marks a birthday.
const EventBirthday = 3

// Contact is the data structure for a person in the platform contact store.
// All blocks with the exception of the ID are optional.
type Contact struct {
	ID              *int64
	Key             string
	Name            *Name
	NickName        *NickName
	Organization    *Organization
	Note            *Note
	PhoneNumbers    []PhoneNumber
	Emails          []Email
	PostalAddresses []PostalAddress
	ImAddresses     []ImAddress
	Events          []Event
	Portrait        *Portrait
}

// FullName returns the synthesized full name or an empty string.
func (c Contact) FullName() string {
	if c.Name == nil {
		return ""
	}
	return c.Name.FullName
}

type Name struct {
	FullName   string
	FamilyName string
	GivenName  string
	MiddleName string
	NamePrefix string
	NameSuffix string
}

type NickName struct {
	NickName string
}

type Organization struct {
	Name  string
	Title string
}

type Note struct {
	NoteContent string
}

type PhoneNumber struct {
	LabelName   string `db:"label_name"`
	PhoneNumber string `db:"phone_number"`
}

type Email struct {
	LabelName string `db:"label_name"`
	Email     string `db:"email"`
}

type PostalAddress struct {
	LabelName     string `db:"label_name"`
	PostalAddress string `db:"postal_address"`
	Street        string `db:"street"`
	Pobox         string `db:"pobox"`
	Neighborhood  string `db:"neighborhood"`
	City          string `db:"city"`
	Region        string `db:"region"`
	Postcode      string `db:"postcode"`
	Country       string `db:"country"`
}

type ImAddress struct {
	LabelName string `db:"label_name"`
	ImAddress string `db:"im_address"`
}

// Event is a dated entry of a contact. The date is stored as text in the
// form year/month/day.
type Event struct {
	LabelID   int    `db:"label_id"`
	LabelName string `db:"label_name"`
	EventDate string `db:"event_date"`
}

type Portrait struct {
	URI string
}

// Permission names a capability that must be granted before the contact
// store may be accessed.
type Permission string

const (
	ReadContacts  Permission = "READ_CONTACTS"
	WriteContacts Permission = "WRITE_CONTACTS"
)

// GrantStatus is the state of a single permission.
type GrantStatus int

const (
	PermissionDenied  GrantStatus = -1
	PermissionGranted GrantStatus = 0
)

// Want describes an external interface to start.
type Want struct {
	BundleName  string         `json:"bundleName"`
	AbilityName string         `json:"abilityName"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}
