package emailsync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

// Message is a normalized inbox message from the monitored mailbox.
type Message struct {
	ID         string
	Subject    string
	Body       string
	From       string
	ReceivedAt time.Time
}

// MailClient lists inbox messages received at or after a given time.
type MailClient interface {
	ListMessages(ctx context.Context, since time.Time) ([]Message, error)
}

// HTTPMailClient reads the monitored mailbox over a Graph-style REST API.
// Calls go through a circuit breaker so a flapping mail provider fails fast
// instead of tying up the sync worker.
type HTTPMailClient struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	baseURL string
	mailbox string
	token   string
}

func NewHTTPMailClient(baseURL, mailbox, token string) *HTTPMailClient {
	return &HTTPMailClient{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "mail-provider",
			Timeout: 60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
		baseURL: baseURL,
		mailbox: mailbox,
		token:   token,
	}
}

type graphMessagePage struct {
	Value []struct {
		ID      string `json:"id"`
		Subject string `json:"subject"`
		Body    struct {
			Content string `json:"content"`
		} `json:"body"`
		BodyPreview string `json:"bodyPreview"`
		From        struct {
			EmailAddress struct {
				Address string `json:"address"`
			} `json:"emailAddress"`
		} `json:"from"`
		ReceivedDateTime time.Time `json:"receivedDateTime"`
	} `json:"value"`
}

func (c *HTTPMailClient) ListMessages(ctx context.Context, since time.Time) ([]Message, error) {
	result, err := c.breaker.Execute(func() (any, error) {
		return c.fetchPage(ctx, since)
	})
	if err != nil {
		return nil, err
	}
	return result.([]Message), nil
}

func (c *HTTPMailClient) fetchPage(ctx context.Context, since time.Time) ([]Message, error) {
	filter := fmt.Sprintf(
		"receivedDateTime ge %s and (contains(subject, 'PTO') or contains(subject, 'leave') or contains(subject, 'vacation'))",
		since.UTC().Format(time.RFC3339),
	)
	query := url.Values{}
	query.Set("$filter", filter)
	query.Set("$select", "id,subject,bodyPreview,body,receivedDateTime,from")
	query.Set("$top", "50")

	endpoint := fmt.Sprintf("%s/users/%s/mailFolders/inbox/messages?%s",
		c.baseURL, url.PathEscape(c.mailbox), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail provider request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call mail provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("mail provider returned status %d: %s", resp.StatusCode, string(body))
	}

	var page graphMessagePage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode mail provider response: %w", err)
	}

	messages := make([]Message, 0, len(page.Value))
	for _, m := range page.Value {
		body := m.Body.Content
		if body == "" {
			body = m.BodyPreview
		}
		messages = append(messages, Message{
			ID:         m.ID,
			Subject:    m.Subject,
			Body:       body,
			From:       m.From.EmailAddress.Address,
			ReceivedAt: m.ReceivedDateTime,
		})
	}
	return messages, nil
}
