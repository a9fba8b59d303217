package integrationtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/bridge"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/config"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/launcher"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/permission"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/service"
	"gitlab.com/dirk.krummacker/contacts-bridge/internal/store"
	"gitlab.com/dirk.krummacker/contacts-bridge/pkg/model"
)

// setupRouter connects to the database configured by the DBHOST, DBUSER, DBPWD and DBNAME
// environment variables and returns a router over it. The tests are skipped when DBHOST is not set.
func setupRouter(t *testing.T, policy permission.Policy) *gin.Engine {
	if os.Getenv("DBHOST") == "" {
		t.Skip("DBHOST not set, skipping integration test")
	}
	cfg, err := config.New()
	require.NoError(t, err)
	sqlDB, err := store.CreateDatabase(cfg.DSN())
	require.NoError(t, err)
	s, err := store.New(sqlDB)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	b := bridge.New(s, permission.New(sqlDB, policy, zerolog.Nop()), launcher.LogStarter{Logger: zerolog.Nop()})
	gin.SetMode(gin.ReleaseMode)
	return service.SetupHttpRouter(b, false)
}

func serve(router *gin.Engine, method string, url string, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request, _ := http.NewRequest(method, url, strings.NewReader(body))
	router.ServeHTTP(recorder, request)
	return recorder
}

// TestContactHappyPath tests a POST, GET, PUT, and DELETE with valid data.
func TestContactHappyPath(t *testing.T) {
	router := setupRouter(t, permission.PolicyGrant)
	familyName := "Mustermann-" + uuid.NewString()[:8]

	// test the endpoint for creating a contact
	postRecorder := serve(router, "POST", "/contacts", `
		{
			"givenName": "Erika",
			"familyName": "`+familyName+`",
			"phoneNumbers": [{"label": "mobile", "number": "+49 0815 4711"}],
			"emailAddresses": [{"label": "work", "email": "erika@example.com"}],
			"postalAddresses": [{"label": "home", "street": "Heidestrasse 17", "city": "Koeln", "region": "NRW"}],
			"imAddresses": [{"username": "erika", "service": "xmpp"}],
			"company": "ACME",
			"jobTitle": "Engineer",
			"birthday": {"day": 2, "month": 3, "year": 1969}
		}
	`)
	require.Equal(t, http.StatusCreated, postRecorder.Code, postRecorder.Body.String())
	var created model.Contact
	require.NoError(t, json.Unmarshal(postRecorder.Body.Bytes(), &created))
	id := created.RecordID
	assert.NotEmpty(t, id)
	defer serve(router, "DELETE", "/contacts/"+id, "")
	assert.Equal(t, "Erika", created.GivenName)
	assert.Equal(t, &model.Birthday{Day: 2, Month: 3, Year: 1969}, created.Birthday)
	assert.Equal(t, "ACME", created.Company)
	assert.Equal(t, "NRW", created.PostalAddresses[0].State)
	assert.Equal(t, model.InstantMessageAddress{Username: "erika", Service: "xmpp"}, created.ImAddresses[0])

	// test the endpoint for finding a contact
	getRecorder := serve(router, "GET", "/contacts/"+id, "")
	assert.Equal(t, http.StatusOK, getRecorder.Code)
	var found model.Contact
	require.NoError(t, json.Unmarshal(getRecorder.Body.Bytes(), &found))
	assert.Equal(t, created, found)

	// test the search endpoints
	matchRecorder := serve(router, "GET", "/contacts?match="+familyName, "")
	assert.Equal(t, http.StatusOK, matchRecorder.Code)
	var matched []model.Contact
	require.NoError(t, json.Unmarshal(matchRecorder.Body.Bytes(), &matched))
	require.Len(t, matched, 1)
	assert.Equal(t, id, matched[0].RecordID)

	phoneRecorder := serve(router, "GET", "/contacts?phone=%2B49%200815%204711", "")
	assert.Equal(t, http.StatusOK, phoneRecorder.Code)
	assert.Contains(t, phoneRecorder.Body.String(), `"recordID": "`+id+`"`)

	// test the endpoint for updating a contact
	putRecorder := serve(router, "PUT", "/contacts/"+id, `
		{
			"givenName": "Rudi",
			"familyName": "`+familyName+`",
			"phoneNumbers": [{"label": "mobile", "number": "+49 1234567890"}]
		}
	`)
	assert.Equal(t, http.StatusNoContent, putRecorder.Code, putRecorder.Body.String())

	// test if a subsequent lookup of the contact returns the updated values
	getRecorder = serve(router, "GET", "/contacts/"+id, "")
	assert.Equal(t, http.StatusOK, getRecorder.Code)
	var updated model.Contact
	require.NoError(t, json.Unmarshal(getRecorder.Body.Bytes(), &updated))
	assert.Equal(t, "Rudi", updated.GivenName)
	assert.Equal(t, []model.PhoneNumber{{Label: "mobile", Number: "+49 1234567890"}}, updated.PhoneNumbers)
	assert.Nil(t, updated.Birthday)
	assert.Empty(t, updated.Company)
	assert.Empty(t, updated.EmailAddresses)

	// test the endpoint for deleting a contact
	deleteRecorder := serve(router, "DELETE", "/contacts/"+id, "")
	assert.Equal(t, http.StatusNoContent, deleteRecorder.Code)

	// test if a subsequent lookup of the contact fails
	getRecorder = serve(router, "GET", "/contacts/"+id, "")
	assert.Equal(t, http.StatusNotFound, getRecorder.Code)
}

func TestUpdateContactUnknownId(t *testing.T) {
	router := setupRouter(t, permission.PolicyGrant)
	recorder := serve(router, "PUT", "/contacts/999999999", `{"givenName": "Nobody"}`)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestDeleteContactUnknownId(t *testing.T) {
	router := setupRouter(t, permission.PolicyGrant)
	recorder := serve(router, "DELETE", "/contacts/999999999", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestFindContactInvalidId(t *testing.T) {
	router := setupRouter(t, permission.PolicyGrant)
	recorder := serve(router, "GET", "/contacts/abc", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

// TestCountFollowsCreate expects the count to grow by one per created contact.
func TestCountFollowsCreate(t *testing.T) {
	router := setupRouter(t, permission.PolicyGrant)
	count := func() int {
		recorder := serve(router, "GET", "/contacts/count", "")
		require.Equal(t, http.StatusOK, recorder.Code)
		var body struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
		return body.Count
	}

	before := count()
	postRecorder := serve(router, "POST", "/contacts", `{"givenName": "Count", "familyName": "`+uuid.NewString()[:8]+`"}`)
	require.Equal(t, http.StatusCreated, postRecorder.Code)
	var created model.Contact
	require.NoError(t, json.Unmarshal(postRecorder.Body.Bytes(), &created))
	defer serve(router, "DELETE", "/contacts/"+created.RecordID, "")
	assert.Equal(t, before+1, count())
}

// TestPermissionGranted expects a granting policy to authorize after a request.
func TestPermissionGranted(t *testing.T) {
	router := setupRouter(t, permission.PolicyGrant)
	recorder := serve(router, "POST", "/permission", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status": "authorized"}`, recorder.Body.String())

	recorder = serve(router, "GET", "/permission", "")
	assert.JSONEq(t, `{"status": "authorized"}`, recorder.Body.String())
}
