package model

// Contact is the data structure for a person as seen by the framework. All
// fields with the exception of the RecordID field are optional. RecordID is
// required for updates and deletions and is assigned by the contact store on
// creation.
type Contact struct {
	RecordID        string                  `json:"recordID"`
	BackTitle       string                  `json:"backTitle,omitempty"`
	Company         string                  `json:"company,omitempty"`
	EmailAddresses  []EmailAddress          `json:"emailAddresses,omitempty"`
	DisplayName     string                  `json:"displayName,omitempty"`
	FamilyName      string                  `json:"familyName,omitempty"`
	GivenName       string                  `json:"givenName,omitempty"`
	MiddleName      string                  `json:"middleName,omitempty"`
	JobTitle        string                  `json:"jobTitle,omitempty"`
	PhoneNumbers    []PhoneNumber           `json:"phoneNumbers,omitempty"`
	HasThumbnail    bool                    `json:"hasThumbnail"`
	ThumbnailPath   string                  `json:"thumbnailPath,omitempty"`
	IsStarred       bool                    `json:"isStarred"`
	PostalAddresses []PostalAddress         `json:"postalAddresses,omitempty"`
	Prefix          string                  `json:"prefix,omitempty"`
	Suffix          string                  `json:"suffix,omitempty"`
	Department      string                  `json:"department"`
	Birthday        *Birthday               `json:"birthday,omitempty"`
	ImAddresses     []InstantMessageAddress `json:"imAddresses,omitempty"`
	UrlAddresses    []*UrlAddress           `json:"urlAddresses,omitempty"`
	Note            string                  `json:"note,omitempty"`
}

type EmailAddress struct {
	Label string `json:"label"`
	Email string `json:"email"`
}

type PhoneNumber struct {
	Label  string `json:"label"`
	Number string `json:"number"`
}

type PostalAddress struct {
	Label            string `json:"label"`
	FormattedAddress string `json:"formattedAddress"`
	Street           string `json:"street"`
	Pobox            string `json:"pobox"`
	Neighborhood     string `json:"neighborhood"`
	City             string `json:"city"`
	Region           string `json:"region"`
	State            string `json:"state"`
	PostCode         string `json:"postCode"`
	Country          string `json:"country"`
}

type InstantMessageAddress struct {
	Username string `json:"username"`
	Service  string `json:"service"`
}

// Birthday holds the calendar parts of a birthday. Month is 1-based. A zero
// value in any part means the part is unknown.
type Birthday struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

type UrlAddress struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// AuthorizationStatus is the answer to a permission check or request.
type AuthorizationStatus string

const (
	Authorized AuthorizationStatus = "authorized"
	Denied     AuthorizationStatus = "denied"
	// Undetermined is part of the contract but never returned by this service.
	Undetermined AuthorizationStatus = "undefined"
)
