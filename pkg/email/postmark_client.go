package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mrz1836/postmark"
)

type postmarkClient struct {
	client *postmark.Client
	config Config
}

// PostmarkOption adjusts the underlying Postmark client.
type PostmarkOption func(*postmark.Client)

// WithPostmarkBaseURL points the client at another API root.
func WithPostmarkBaseURL(u string) PostmarkOption {
	return func(c *postmark.Client) { c.BaseURL = u }
}

func WithPostmarkHTTPClient(hc *http.Client) PostmarkOption {
	return func(c *postmark.Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

// NewPostmarkClient creates a Postmark-backed email sender.
func NewPostmarkClient(cfg Config, opts ...PostmarkOption) (EmailSender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}
	if !ValidAddress(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	if !ValidAddress(cfg.SupportEmail) {
		return nil, fmt.Errorf("%w: SupportEmail must be a valid email address", ErrInvalidConfig)
	}

	client := postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
	for _, opt := range opts {
		opt(client)
	}
	return &postmarkClient{client: client, config: cfg}, nil
}

// SendEmail implements EmailSender using Postmark's transactional API.
// Replies go to the support address.
func (c *postmarkClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	resp, err := c.client.SendEmail(ctx, postmark.Email{
		From:       c.config.SenderEmail,
		ReplyTo:    c.config.SupportEmail,
		To:         params.SendTo,
		Subject:    params.Subject,
		Tag:        params.Tag,
		HTMLBody:   params.BodyHTML,
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSendEmail,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}
