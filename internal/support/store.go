package support

import (
	"context"
	"net/url"

	"storefront/internal/forms"
	"storefront/internal/httpx"
)

type Store interface {
	FAQs(ctx context.Context) ([]FAQ, error)
	Contact(ctx context.Context, form ContactForm) (*Ticket, error)
	Lookup(ctx context.Context, ticketNumber, email string) (*Ticket, error)
	Ask(ctx context.Context, message string) (*AssistantReply, error)
}

type APIStore struct {
	client *httpx.Client
}

func NewAPIStore(client *httpx.Client) *APIStore {
	return &APIStore{client: client}
}

func (s *APIStore) FAQs(ctx context.Context) ([]FAQ, error) {
	var faqs []FAQ
	if err := s.client.Get(ctx, "/support/faqs", nil, &faqs); err != nil {
		return nil, err
	}
	return faqs, nil
}

func (s *APIStore) Contact(ctx context.Context, form ContactForm) (*Ticket, error) {
	if form.Channel == "" {
		form.Channel = "contact_form"
	}
	if err := forms.Validate.Struct(form); err != nil {
		return nil, err
	}

	var reply struct {
		Ticket Ticket `json:"ticket"`
	}
	if err := s.client.Post(ctx, "/support/contact", form, &reply); err != nil {
		return nil, err
	}
	return &reply.Ticket, nil
}

func (s *APIStore) Lookup(ctx context.Context, ticketNumber, email string) (*Ticket, error) {
	query := url.Values{}
	query.Set("email", email)
	var ticket Ticket
	if err := s.client.Get(ctx, "/support/tickets/"+url.PathEscape(ticketNumber), query, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *APIStore) Ask(ctx context.Context, message string) (*AssistantReply, error) {
	body := struct {
		Message string `json:"message"`
	}{Message: message}
	var reply AssistantReply
	if err := s.client.Post(ctx, "/support/assistant", body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
