package notifier

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func verifiedBody(t *testing.T) []byte {
	t.Helper()

	body, err := json.Marshal(Message{
		ID:        "msg-1",
		Kind:      KindPaymentVerified,
		Email:     "aditi@campus.edu",
		Name:      "Aditi",
		EventName: "Hackathon 2026",
	})
	require.NoError(t, err)
	return body
}

func TestWorkerHandle(t *testing.T) {
	t.Run("sends and acks", func(t *testing.T) {
		m, sent := newCapturingMailer(nil)
		w := NewWorker(nil, m, zap.NewNop())

		assert.NoError(t, w.handle(verifiedBody(t), false))
		assert.Len(t, *sent, 1)
	})

	t.Run("malformed message is dropped, not requeued", func(t *testing.T) {
		m, sent := newCapturingMailer(nil)
		w := NewWorker(nil, m, zap.NewNop())

		assert.NoError(t, w.handle([]byte("{not json"), false))
		assert.Empty(t, *sent)
	})

	t.Run("send failure requeues once", func(t *testing.T) {
		m, _ := newCapturingMailer(assert.AnError)
		w := NewWorker(nil, m, zap.NewNop())

		err := w.handle(verifiedBody(t), false)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("failure on redelivery drops the message", func(t *testing.T) {
		m, _ := newCapturingMailer(assert.AnError)
		w := NewWorker(nil, m, zap.NewNop())

		assert.NoError(t, w.handle(verifiedBody(t), true))
	})
}
