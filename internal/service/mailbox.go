package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DhruvDFT/PD-Assignments-11-Jul/internal/config"
)

// MailMessage is the slice of a mailbox message the resume scanner needs.
type MailMessage struct {
	ID          string
	Subject     string
	From        string
	Attachments []string
}

// Mailbox is the narrow seam between the resume pipeline and whatever mail
// provider backs it. Search returns at most limit messages matching query.
type Mailbox interface {
	Search(ctx context.Context, query string, limit int) ([]MailMessage, error)
}

// GmailMailbox talks to the Gmail REST API with a pre-issued OAuth access
// token. Only list and metadata reads are used.
type GmailMailbox struct {
	cfg    *config.MailboxConfig
	client *http.Client
}

func NewGmailMailbox(cfg *config.MailboxConfig) *GmailMailbox {
	return &GmailMailbox{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type gmailListResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type gmailMessage struct {
	ID      string `json:"id"`
	Payload struct {
		Headers []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"headers"`
		Parts []struct {
			Filename string `json:"filename"`
		} `json:"parts"`
	} `json:"payload"`
}

func (m *GmailMailbox) Search(ctx context.Context, query string, limit int) ([]MailMessage, error) {
	listURL := fmt.Sprintf("%s/users/me/messages?q=%s&maxResults=%d",
		strings.TrimRight(m.cfg.APIBase, "/"), url.QueryEscape(query), limit)

	var list gmailListResponse
	if err := m.getJSON(ctx, listURL, &list); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	out := make([]MailMessage, 0, len(list.Messages))
	for _, ref := range list.Messages {
		msgURL := fmt.Sprintf("%s/users/me/messages/%s?format=full",
			strings.TrimRight(m.cfg.APIBase, "/"), ref.ID)

		var msg gmailMessage
		if err := m.getJSON(ctx, msgURL, &msg); err != nil {
			return nil, fmt.Errorf("fetch message %s: %w", ref.ID, err)
		}

		mm := MailMessage{ID: msg.ID}
		for _, h := range msg.Payload.Headers {
			switch h.Name {
			case "Subject":
				mm.Subject = h.Value
			case "From":
				mm.From = h.Value
			}
		}
		for _, p := range msg.Payload.Parts {
			if p.Filename != "" {
				mm.Attachments = append(mm.Attachments, p.Filename)
			}
		}
		out = append(out, mm)
	}
	return out, nil
}

func (m *GmailMailbox) getJSON(ctx context.Context, rawURL string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.cfg.AccessToken)

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mailbox API returned %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
