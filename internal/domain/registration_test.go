package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketPayloadRoundTrip(t *testing.T) {
	payload, err := TicketPayload{EventID: 5, UserID: 9}.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"eventId":5,"userId":9}`, string(payload))

	decoded, err := DecodeTicketPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, uint(5), decoded.EventID)
	assert.Equal(t, uint(9), decoded.UserID)
}

func TestDecodeTicketPayloadRejectsGarbage(t *testing.T) {
	_, err := DecodeTicketPayload([]byte("scan me"))
	assert.Error(t, err)
}

func TestCanLogin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin, Status: UserStatusPending}).CanLogin())
	assert.True(t, (&User{Role: RoleStudent, Status: UserStatusApproved}).CanLogin())
	assert.False(t, (&User{Role: RoleClub, Status: UserStatusPending}).CanLogin())
	assert.False(t, (&User{Role: RoleClub, Status: UserStatusRejected}).CanLogin())
}
