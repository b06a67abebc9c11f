package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	api "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessageAPI struct {
	params *api.CreateMessageParams
	err    error
	block  chan struct{}
}

func (f *fakeMessageAPI) CreateMessage(params *api.CreateMessageParams) (*api.ApiV2010Message, error) {
	f.params = params
	if f.block != nil {
		<-f.block
	}
	return &api.ApiV2010Message{}, f.err
}

func TestSendBookingLinkComposesMessage(t *testing.T) {
	fake := &fakeMessageAPI{}
	n := &TwilioNotifier{api: fake, from: "+15550001111", bookingURL: "https://example.com/book"}

	err := n.SendBookingLink(context.Background(), "+15559990000", "Marcus", "taper and line up")
	require.NoError(t, err)

	require.NotNil(t, fake.params)
	require.NotNil(t, fake.params.To)
	require.NotNil(t, fake.params.From)
	require.NotNil(t, fake.params.Body)
	assert.Equal(t, "+15559990000", *fake.params.To)
	assert.Equal(t, "+15550001111", *fake.params.From)
	assert.Equal(t,
		"Hey Marcus, this is Edge from Grooming Co. Tap this link to finish booking your taper and line up: https://example.com/book",
		*fake.params.Body)
}

func TestSendBookingLinkPropagatesDispatchError(t *testing.T) {
	fake := &fakeMessageAPI{err: errors.New("twilio 500")}
	n := &TwilioNotifier{api: fake, from: "+15550001111", bookingURL: "https://example.com/book"}

	err := n.SendBookingLink(context.Background(), "+15559990000", "Marcus", "taper")
	assert.Error(t, err)
}

func TestSendBookingLinkRequiresDestination(t *testing.T) {
	fake := &fakeMessageAPI{}
	n := &TwilioNotifier{api: fake, from: "+15550001111", bookingURL: "https://example.com/book"}

	err := n.SendBookingLink(context.Background(), "", "Marcus", "taper")
	assert.Error(t, err)
	assert.Nil(t, fake.params)
}

func TestSendBookingLinkDiscardsLateDispatch(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	fake := &fakeMessageAPI{block: block}
	n := &TwilioNotifier{api: fake, from: "+15550001111", bookingURL: "https://example.com/book"}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := n.SendBookingLink(ctx, "+15559990000", "Marcus", "taper")

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestNoopNotifierAlwaysSucceeds(t *testing.T) {
	n := NewNoopNotifier()
	assert.NoError(t, n.SendBookingLink(context.Background(), "+15559990000", "Marcus", "taper"))
}
