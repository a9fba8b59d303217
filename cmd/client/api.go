package main

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"gitlab.com/dirk.krummacker/contacts-bridge/pkg/model"
)

// api talks to the REST API of the contacts bridge.
type api struct {
	client *resty.Client
}

func newAPI(baseURL string) *api {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second)
	return &api{client: c}
}

type errorBody struct {
	Message string `json:"message"`
}

func check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		if e, ok := resp.Error().(*errorBody); ok && e.Message != "" {
			return fmt.Errorf("%s %s: %d %s", resp.Request.Method, resp.Request.URL, resp.StatusCode(), e.Message)
		}
		return fmt.Errorf("%s %s: %d", resp.Request.Method, resp.Request.URL, resp.StatusCode())
	}
	return nil
}

func (a *api) list(match string) ([]model.Contact, error) {
	var contacts []model.Contact
	req := a.client.R().SetResult(&contacts).SetError(&errorBody{})
	if match != "" {
		req.SetQueryParam("match", match)
	}
	if err := check(req.Get("/contacts")); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (a *api) get(id string) (model.Contact, error) {
	var contact model.Contact
	resp, err := a.client.R().
		SetResult(&contact).
		SetError(&errorBody{}).
		SetPathParam("id", id).
		Get("/contacts/{id}")
	return contact, check(resp, err)
}

func (a *api) add(c model.Contact) (model.Contact, error) {
	var created model.Contact
	resp, err := a.client.R().
		SetBody(&c).
		SetResult(&created).
		SetError(&errorBody{}).
		Post("/contacts")
	return created, check(resp, err)
}

func (a *api) update(c model.Contact) error {
	return check(a.client.R().
		SetBody(&c).
		SetError(&errorBody{}).
		SetPathParam("id", c.RecordID).
		Put("/contacts/{id}"))
}

func (a *api) delete(id string) error {
	return check(a.client.R().
		SetError(&errorBody{}).
		SetPathParam("id", id).
		Delete("/contacts/{id}"))
}

func (a *api) count() (int, error) {
	var body struct {
		Count int `json:"count"`
	}
	resp, err := a.client.R().SetResult(&body).SetError(&errorBody{}).Get("/contacts/count")
	return body.Count, check(resp, err)
}

func (a *api) permission(request bool) (model.AuthorizationStatus, error) {
	var body struct {
		Status model.AuthorizationStatus `json:"status"`
	}
	req := a.client.R().SetResult(&body).SetError(&errorBody{})
	var resp *resty.Response
	var err error
	if request {
		resp, err = req.Post("/permission")
	} else {
		resp, err = req.Get("/permission")
	}
	return body.Status, check(resp, err)
}
