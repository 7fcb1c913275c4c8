package eventbus

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/modules/contracts/domain/aggregates/contract"
	"github.com/Kameshwaran-Palani/gritsea-contract-craft-sub001/pkg/logging"
)

func captureLogger(level logrus.Level) (*logrus.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	log := logrus.New()
	log.SetOutput(buf)
	log.SetLevel(level)
	return log, buf
}

func TestPublisher_DispatchesByEventType(t *testing.T) {
	publisher := NewEventPublisher(logging.ConsoleLogger(logrus.WarnLevel))

	var got contract.StatusChangedEvent
	publisher.Subscribe(func(e contract.StatusChangedEvent) {
		got = e
	})
	signedCalled := false
	publisher.Subscribe(func(e contract.SignedEvent) {
		signedCalled = true
	})

	id := uuid.New()
	publisher.Publish(contract.StatusChangedEvent{
		ContractID: id,
		From:       contract.StatusDraft,
		To:         contract.StatusSentForSignature,
		Trigger:    contract.TriggerShare,
	})

	assert.Equal(t, id, got.ContractID)
	assert.Equal(t, contract.StatusSentForSignature, got.To)
	assert.False(t, signedCalled, "subscriber for a different event type must not fire")
}

func TestPublisher_WarnsWhenNothingMatches(t *testing.T) {
	log, buf := captureLogger(logrus.WarnLevel)
	publisher := NewEventPublisher(log)

	publisher.Subscribe(func(e contract.StatusChangedEvent) {
		t.Error("should not be called")
	})
	publisher.Publish(contract.SignedEvent{ContractID: uuid.New(), ClientName: "Acme Ltd"})

	assert.Contains(t, buf.String(), "no matching subscribers")
}

func TestMatchSignature(t *testing.T) {
	onShared := func(e contract.SharedEvent) {}

	assert.True(t, MatchSignature(onShared, []interface{}{contract.SharedEvent{}}))
	assert.False(t, MatchSignature(onShared, []interface{}{contract.SignedEvent{}}))
	assert.False(t, MatchSignature(onShared, []interface{}{}))
	assert.False(t, MatchSignature(onShared, []interface{}{contract.SharedEvent{}, contract.SharedEvent{}}))
	assert.True(t, MatchSignature(func(ctx context.Context) {}, []interface{}{context.Background()}))
}

func TestPublisher_PanicRecovery(t *testing.T) {
	t.Run("panic is logged and delivery continues", func(t *testing.T) {
		log, buf := captureLogger(logrus.ErrorLevel)
		publisher := NewEventPublisher(log)

		delivered := false
		publisher.Subscribe(func(e contract.SignedEvent) {
			panic("notifier down")
		})
		publisher.Subscribe(func(e contract.SignedEvent) {
			delivered = true
		})

		publisher.Publish(contract.SignedEvent{ContractID: uuid.New(), ClientName: "Acme Ltd"})

		assert.True(t, delivered, "remaining subscribers must still run")
		assert.Contains(t, buf.String(), "panicked")
		assert.Contains(t, buf.String(), "notifier down")
	})

	t.Run("all subscribers panicking counts as unhandled", func(t *testing.T) {
		log, buf := captureLogger(logrus.WarnLevel)
		publisher := NewEventPublisher(log)

		publisher.Subscribe(func(e contract.SignedEvent) {
			panic("always")
		})
		publisher.Publish(contract.SignedEvent{ContractID: uuid.New()})

		assert.Contains(t, buf.String(), "no matching subscribers")
	})
}

func TestPublisher_PublishE(t *testing.T) {
	t.Run("no subscribers", func(t *testing.T) {
		publisher := NewEventPublisher(nil).(EventBusWithError)
		err := publisher.PublishE(contract.SignedEvent{})
		require.ErrorIs(t, err, ErrNoSubscribers)
	})

	t.Run("joins errors from every failing subscriber", func(t *testing.T) {
		publisher := NewEventPublisher(nil).(EventBusWithError)

		errWebhook := errors.New("webhook delivery failed")
		errMail := errors.New("mail delivery failed")
		publisher.Subscribe(func(e contract.SignedEvent) error { return errWebhook })
		publisher.Subscribe(func(e contract.SignedEvent) error { return errMail })

		err := publisher.PublishE(contract.SignedEvent{ContractID: uuid.New()})
		require.ErrorIs(t, err, errWebhook)
		require.ErrorIs(t, err, errMail)
	})

	t.Run("panic surfaces as error without stopping others", func(t *testing.T) {
		publisher := NewEventPublisher(nil).(EventBusWithError)

		delivered := false
		publisher.Subscribe(func(e contract.SignedEvent) error { panic("boom") })
		publisher.Subscribe(func(e contract.SignedEvent) error { delivered = true; return nil })

		err := publisher.PublishE(contract.SignedEvent{})
		require.Error(t, err)
		assert.True(t, delivered)
	})

	t.Run("non-error return is rejected", func(t *testing.T) {
		publisher := NewEventPublisher(nil).(EventBusWithError)
		publisher.Subscribe(func(e contract.SignedEvent) int { return 1 })

		err := publisher.PublishE(contract.SignedEvent{})
		require.ErrorIs(t, err, ErrInvalidHandlerReturn)
	})
}
