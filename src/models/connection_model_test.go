package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPairKeyForUnordered(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	assert.Equal(t, PairKeyFor(a, b), PairKeyFor(b, a))
	assert.NotEqual(t, PairKeyFor(a, b), PairKeyFor(a, primitive.NewObjectID()))
}

func TestNewConnectionRequestSelf(t *testing.T) {
	id := primitive.NewObjectID()

	req, err := NewConnectionRequest(id, id, StatusInterested)
	assert.Nil(t, req)
	assert.ErrorIs(t, err, ErrSelfRequest)
}

func TestNewConnectionRequestFields(t *testing.T) {
	from := primitive.NewObjectID()
	to := primitive.NewObjectID()

	req, err := NewConnectionRequest(from, to, StatusIgnore)
	require.NoError(t, err)

	assert.Equal(t, from, req.FromUserId)
	assert.Equal(t, to, req.ToUserId)
	assert.Equal(t, StatusIgnore, req.Status)
	assert.Equal(t, PairKeyFor(from, to), req.PairKey)
	assert.False(t, req.Id.IsZero())
	assert.False(t, req.CreatedAt.IsZero())
	assert.Equal(t, req.CreatedAt, req.UpdatedAt)
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		current ConnectionStatus
		desired ConnectionStatus
		wantErr error
	}{
		{"same interested", StatusInterested, StatusInterested, ErrSameStatus},
		{"same ignore", StatusIgnore, StatusIgnore, ErrSameStatus},
		{"ignore to interested blocked", StatusIgnore, StatusInterested, ErrIgnoredPair},
		{"interested to ignore allowed", StatusInterested, StatusIgnore, nil},
		{"interested to accept allowed", StatusInterested, StatusAccept, nil},
		{"interested to reject allowed", StatusInterested, StatusReject, nil},
		// Last write wins: an accepted pair can still be re-marked by send.
		{"accept to interested allowed", StatusAccept, StatusInterested, nil},
		{"reject to ignore allowed", StatusReject, StatusIgnore, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row := &ConnectionRequest{Status: tc.current}
			err := row.CanTransition(tc.desired)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestParseSendStatus(t *testing.T) {
	for _, valid := range []string{"interested", "ignore"} {
		status, ok := ParseSendStatus(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, ConnectionStatus(valid), status)
	}
	for _, invalid := range []string{"accept", "reject", "", "INTERESTED", "friend"} {
		_, ok := ParseSendStatus(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestParseReviewStatus(t *testing.T) {
	for _, valid := range []string{"accept", "reject"} {
		status, ok := ParseReviewStatus(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, ConnectionStatus(valid), status)
	}
	for _, invalid := range []string{"interested", "ignore", "", "accepted"} {
		_, ok := ParseReviewStatus(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestOtherParty(t *testing.T) {
	from := primitive.NewObjectID()
	to := primitive.NewObjectID()
	row := &ConnectionRequest{FromUserId: from, ToUserId: to}

	assert.Equal(t, to, row.OtherParty(from))
	assert.Equal(t, from, row.OtherParty(to))
}
