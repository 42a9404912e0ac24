package lib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestJWTRoundTrip(t *testing.T) {
	InitAuth("test-secret", time.Hour)

	userID := primitive.NewObjectID()
	token, err := GenerateJWT(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), claims["userId"])
}

func TestVerifyJWTGarbage(t *testing.T) {
	InitAuth("test-secret", time.Hour)

	_, err := VerifyJWT("not.a.token")
	assert.Error(t, err)
}

func TestVerifyJWTWrongSecret(t *testing.T) {
	InitAuth("first-secret", time.Hour)
	token, err := GenerateJWT(primitive.NewObjectID())
	require.NoError(t, err)

	InitAuth("second-secret", time.Hour)
	_, err = VerifyJWT(token)
	assert.Error(t, err)
}

func TestVerifyJWTExpired(t *testing.T) {
	InitAuth("test-secret", -time.Minute)
	token, err := GenerateJWT(primitive.NewObjectID())
	require.NoError(t, err)

	_, err = VerifyJWT(token)
	assert.Error(t, err)
}

func TestMessageResponse(t *testing.T) {
	m := MessageResponse("hello")
	assert.Equal(t, "hello", m["message"])
}
