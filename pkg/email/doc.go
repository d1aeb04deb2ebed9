// Package email sends transactional emails through a provider-agnostic
// EmailSender.
//
// Two implementations are provided:
//   - the Postmark client for production delivery, with replies routed to
//     the support address
//   - DevSender for local development, which writes each message to disk as
//     an HTML file and a JSON metadata file
//
// NewSender picks Postmark when both tokens are configured.
//
// # Usage
//
//	sender, err := email.NewSender(cfg, log)
//	if err != nil {
//		return err
//	}
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "ana@example.com",
//		Subject:  "Bem-vinda",
//		BodyHTML: "<p>Olá</p>",
//		Tag:      "welcome",
//	})
//
// # Error Handling
//
// Parameter problems wrap ErrInvalidParams and provider failures wrap
// ErrFailedToSendEmail, so callers can map them with errors.Is.
package email
