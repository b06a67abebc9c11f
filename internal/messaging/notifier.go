// Package messaging implements the booking handoff: the follow-up SMS with
// the booking link sent when a call completes the script. Dispatch is
// best-effort; a failure is logged and never reaches the caller.
package messaging

import (
	"context"
	"fmt"

	"github.com/groomingco/edge-voice-service/pkg/logger"
	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// Notifier dispatches the booking link to the caller's phone.
type Notifier interface {
	SendBookingLink(ctx context.Context, to, name, service string) error
}

// messageCreator is the slice of the Twilio REST API the notifier uses.
type messageCreator interface {
	CreateMessage(params *api.CreateMessageParams) (*api.ApiV2010Message, error)
}

// TwilioNotifier sends the booking SMS through the Twilio Messages API.
type TwilioNotifier struct {
	api        messageCreator
	from       string
	bookingURL string
}

// NewTwilioNotifier builds a notifier from account credentials.
func NewTwilioNotifier(accountSID, authToken, from, bookingURL string) *TwilioNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioNotifier{
		api:        client.Api,
		from:       from,
		bookingURL: bookingURL,
	}
}

// SendBookingLink composes and dispatches the booking SMS. The Twilio SDK
// call has no context hook, so it runs on its own goroutine and the result
// of a dispatch that outlives ctx is discarded, not applied.
func (n *TwilioNotifier) SendBookingLink(ctx context.Context, to, name, service string) error {
	if to == "" {
		return fmt.Errorf("missing destination number")
	}

	body := fmt.Sprintf(
		"Hey %s, this is Edge from Grooming Co. Tap this link to finish booking your %s: %s",
		name, service, n.bookingURL)

	params := &api.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.from)
	params.SetBody(body)

	done := make(chan error, 1)
	go func() {
		_, err := n.api.CreateMessage(params)
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("create message: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NoopNotifier is used when Twilio credentials, the origin number, or the
// booking URL are not configured. Completion still sounds successful to
// the caller; only the SMS is skipped.
type NoopNotifier struct{}

// NewNoopNotifier logs the degraded mode once at startup.
func NewNoopNotifier() *NoopNotifier {
	logger.Base().Warn("booking handoff disabled: Twilio SMS not configured")
	return &NoopNotifier{}
}

func (n *NoopNotifier) SendBookingLink(_ context.Context, to, _, _ string) error {
	logger.Base().Info("booking handoff skipped (disabled)", zap.String("to", to))
	return nil
}
