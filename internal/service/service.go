package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/apperr"
	"gitlab.com/dirk.krummacker/contacts-bridge/pkg/model"
)

// Contacts is the set of framework contact operations served over HTTP.
type Contacts interface {
	GetAll(ctx context.Context) ([]model.Contact, error)
	GetAllWithoutPhotos(ctx context.Context) ([]model.Contact, error)
	GetContactByID(ctx context.Context, recordID string) (model.Contact, error)
	GetCount(ctx context.Context) (int, error)
	GetPhotoForID(ctx context.Context, recordID string) (string, error)
	AddContact(ctx context.Context, c model.Contact) (model.Contact, error)
	UpdateContact(ctx context.Context, c model.Contact) error
	DeleteContact(ctx context.Context, c model.Contact) error
	GetContactsMatchingString(ctx context.Context, s string) ([]model.Contact, error)
	GetContactsByPhoneNumber(ctx context.Context, phoneNumber string) ([]model.Contact, error)
	GetContactsByEmailAddress(ctx context.Context, email string) ([]model.Contact, error)
	CheckPermission(ctx context.Context) (model.AuthorizationStatus, error)
	RequestPermission(ctx context.Context) (model.AuthorizationStatus, error)
	OpenContactForm(ctx context.Context, c model.Contact) (model.Contact, error)
	OpenExistingContact(ctx context.Context, c model.Contact) (model.Contact, error)
	ViewExistingContact(ctx context.Context, c model.Contact) (model.Contact, error)
	EditExistingContact(ctx context.Context, c model.Contact) (model.Contact, error)
	WritePhotoToPath(ctx context.Context, recordID string, file string) (bool, error)
	EnableNotesUsage(ctx context.Context, enabled bool)
}

// handler serves the REST API on top of a Contacts implementation.
type handler struct {
	contacts Contacts
}

// SetupHttpRouter initializes the REST API router and registers all endpoints.
func SetupHttpRouter(contacts Contacts, requestLogging bool) *gin.Engine {
	var router *gin.Engine
	if requestLogging {
		router = gin.Default()
	} else {
		log.Info().Msg("Turning off HTTP request logging.")
		router = gin.New()
		router.Use(gin.Recovery())
	}
	h := &handler{contacts: contacts}
	router.GET("/contacts", h.findContacts)
	router.GET("/contacts/count", h.countContacts)
	router.POST("/contacts", h.createContact)
	router.POST("/contacts/form", h.openContactForm)
	router.GET("/contacts/:id", h.findContactByID)
	router.PUT("/contacts/:id", h.updateContactByID)
	router.DELETE("/contacts/:id", h.deleteContactByID)
	router.GET("/contacts/:id/photo", h.findPhotoByID)
	router.PUT("/contacts/:id/photo", h.writePhotoByID)
	router.POST("/contacts/:id/open", h.openExistingContact)
	router.POST("/contacts/:id/view", h.viewExistingContact)
	router.POST("/contacts/:id/edit", h.editExistingContact)
	router.GET("/permission", h.checkPermission)
	router.POST("/permission", h.requestPermission)
	router.PUT("/settings/notes-usage", h.enableNotesUsage)
	return router
}

// findContacts responds with a list of contacts as JSON.
//
// Without URL parameters all contacts are returned. The URL parameter 'match' restricts the result
// to contacts whose full name contains the value (case-sensitive). The URL parameters 'phone' and
// 'email' restrict the result to contacts with exactly this phone number or email address. Only one
// of 'match', 'phone' and 'email' may be given. If the URL parameter 'photos' is 'false', the
// contacts are read without photos.
//
// REST API calls:
//
//	> curl "http://localhost:8080/contacts"
//	> curl "http://localhost:8080/contacts?photos=false"
//	> curl "http://localhost:8080/contacts?match=Muster"
//	> curl "http://localhost:8080/contacts?phone=%2B420%20111"
//	> curl "http://localhost:8080/contacts?email=erika@example.com"
func (h *handler) findContacts(c *gin.Context) {
	match, hasMatch := c.GetQuery("match")
	phone, hasPhone := c.GetQuery("phone")
	email, hasEmail := c.GetQuery("email")
	filters := 0
	for _, set := range []bool{hasMatch, hasPhone, hasEmail} {
		if set {
			filters++
		}
	}
	if filters > 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "only one of match, phone and email is allowed"})
		return
	}

	var contacts []model.Contact
	var err error
	ctx := c.Request.Context()
	switch {
	case hasMatch:
		contacts, err = h.contacts.GetContactsMatchingString(ctx, match)
	case hasPhone:
		contacts, err = h.contacts.GetContactsByPhoneNumber(ctx, phone)
	case hasEmail:
		contacts, err = h.contacts.GetContactsByEmailAddress(ctx, email)
	case c.Query("photos") == "false":
		contacts, err = h.contacts.GetAllWithoutPhotos(ctx)
	default:
		contacts, err = h.contacts.GetAll(ctx)
	}
	if err != nil {
		abortWithError(c, err)
		return
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}
	c.IndentedJSON(http.StatusOK, contacts)
}

// countContacts responds with the number of contacts.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/count
func (h *handler) countContacts(c *gin.Context) {
	count, err := h.contacts.GetCount(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"count": count})
}

// createContact creates the contact specified in the request's JSON. It responds with the full
// contact data as stored, including the newly assigned recordID.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts --request "POST" --include --header "Content-Type: application/json" --data '{"givenName": "Hans", "familyName": "Wurst", "phoneNumbers": [{"label": "mobile", "number": "0815"}], "birthday": {"day": 2, "month": 3, "year": 1969}}'
func (h *handler) createContact(c *gin.Context) {
	var newContact model.Contact
	if err := c.BindJSON(&newContact); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	created, err := h.contacts.AddContact(c.Request.Context(), newContact)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, created)
}

// findContactByID locates the contact whose recordID matches the id parameter of the request URL,
// then returns that contact as a response.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/56
func (h *handler) findContactByID(c *gin.Context) {
	contact, err := h.contacts.GetContactByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, contact)
}

// updateContactByID replaces the contact whose recordID matches the id parameter of the request
// URL with the contact in the JSON. A recordID inside the JSON is ignored.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/56 --request "PUT" --include --header "Content-Type: application/json" --data '{"givenName": "Rudi", "familyName": "Voeller"}'
func (h *handler) updateContactByID(c *gin.Context) {
	var submitted model.Contact
	if err := c.BindJSON(&submitted); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	submitted.RecordID = c.Param("id")
	if err := h.contacts.UpdateContact(c.Request.Context(), submitted); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// deleteContactByID deletes the contact whose recordID matches the id parameter of the request
// URL.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/56 --request "DELETE"
func (h *handler) deleteContactByID(c *gin.Context) {
	err := h.contacts.DeleteContact(c.Request.Context(), model.Contact{RecordID: c.Param("id")})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// findPhotoByID responds with the thumbnail path of the contact.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/56/photo
func (h *handler) findPhotoByID(c *gin.Context) {
	path, err := h.contacts.GetPhotoForID(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"thumbnailPath": path})
}

type photoRequest struct {
	File string `json:"file"`
}

// writePhotoByID would write the photo of the contact to a file. This is not supported.
func (h *handler) writePhotoByID(c *gin.Context) {
	var req photoRequest
	if err := c.BindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	if _, err := h.contacts.WritePhotoToPath(c.Request.Context(), c.Param("id"), req.File); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// openContactForm opens the "new contact" page of the contacts application, prefilled with the
// contact in the JSON. It responds with the submitted contact right away.
//
// Example REST API call:
//
//	> curl http://localhost:8080/contacts/form --request "POST" --header "Content-Type: application/json" --data '{"givenName": "Hans", "phoneNumbers": [{"label": "mobile", "number": "0815"}]}'
func (h *handler) openContactForm(c *gin.Context) {
	h.launch(c, h.contacts.OpenContactForm, false)
}

// openExistingContact opens the details page of the contact in the contacts application.
func (h *handler) openExistingContact(c *gin.Context) {
	h.launch(c, h.contacts.OpenExistingContact, true)
}

// viewExistingContact opens the details page of the contact for viewing.
func (h *handler) viewExistingContact(c *gin.Context) {
	h.launch(c, h.contacts.ViewExistingContact, true)
}

// editExistingContact opens the details page of the contact for editing.
func (h *handler) editExistingContact(c *gin.Context) {
	h.launch(c, h.contacts.EditExistingContact, true)
}

func (h *handler) launch(c *gin.Context, open func(context.Context, model.Contact) (model.Contact, error), withID bool) {
	var submitted model.Contact
	if err := c.BindJSON(&submitted); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	if withID {
		submitted.RecordID = c.Param("id")
	}
	echoed, err := open(c.Request.Context(), submitted)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, echoed)
}

// checkPermission responds with the current authorization status.
//
// Example REST API call:
//
//	> curl http://localhost:8080/permission
func (h *handler) checkPermission(c *gin.Context) {
	status, err := h.contacts.CheckPermission(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"status": status})
}

// requestPermission requests read and write access and responds with the resulting status.
//
// Example REST API call:
//
//	> curl http://localhost:8080/permission --request "POST"
func (h *handler) requestPermission(c *gin.Context) {
	status, err := h.contacts.RequestPermission(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"status": status})
}

type notesUsageRequest struct {
	Enabled bool `json:"enabled"`
}

// enableNotesUsage accepts the notes usage toggle. It has no effect.
func (h *handler) enableNotesUsage(c *gin.Context) {
	var req notesUsageRequest
	if err := c.BindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	h.contacts.EnableNotesUsage(c.Request.Context(), req.Enabled)
	c.Status(http.StatusNoContent)
}

// abortWithError translates err into an HTTP status and a JSON message.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
	case errors.Is(err, apperr.ErrNotSupported):
		c.AbortWithStatusJSON(http.StatusNotImplemented, gin.H{"message": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}
