package crmapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/softnova/crm-console/leads"
)

var _ leads.Repo = (*LeadsService)(nil)

// LeadsService is the /leads resource
type LeadsService struct {
	client *Client
}

// leadList accepts both a bare array and the {"leads": [...], "total": n} envelope
type leadList []leads.Lead

func (l *leadList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []leads.Lead
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*l = list
		return nil
	}
	var envelope struct {
		Leads []leads.Lead `json:"leads"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	*l = envelope.Leads
	return nil
}

func (s *LeadsService) List(ctx context.Context, page, limit int) ([]leads.Lead, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	var list leadList
	err := s.client.do(ctx, call{
		method: http.MethodGet,
		path:   "/leads",
		query:  url.Values{"page": {strconv.Itoa(page)}, "limit": {strconv.Itoa(limit)}},
		out:    &list,
		authed: true,
	})
	if err != nil {
		return nil, err
	}
	if list == nil {
		return []leads.Lead{}, nil
	}
	return list, nil
}

func (s *LeadsService) Get(ctx context.Context, id int64) (leads.Lead, error) {
	var l leads.Lead
	err := s.client.do(ctx, call{
		method: http.MethodGet,
		path:   fmt.Sprintf("/leads/%d", id),
		out:    &l,
		authed: true,
	})
	if err != nil {
		return leads.Lead{}, err
	}
	return l, nil
}

// UpdateStatus sends PUT /leads/{id}/estado. Any response body is ignored.
func (s *LeadsService) UpdateStatus(ctx context.Context, id int64, status leads.Status) error {
	return s.client.do(ctx, call{
		method: http.MethodPut,
		path:   fmt.Sprintf("/leads/%d/estado", id),
		body:   map[string]leads.Status{"estado": status},
		authed: true,
	})
}
