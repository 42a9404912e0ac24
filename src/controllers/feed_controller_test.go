package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devmesh/Backend-Dev-Mesh/src/models"
)

func TestNormalizeFeedPaging(t *testing.T) {
	cases := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
		wantSkip  int
	}{
		{"defaults", 1, 10, 1, 10, 0},
		{"zero page", 0, 10, 1, 10, 0},
		{"negative page", -3, 10, 1, 10, 0},
		{"zero limit falls back to default", 1, 0, 1, 10, 0},
		{"negative limit falls back to default", 1, -20, 1, 10, 0},
		{"limit clamped to max", 1, 1000, 1, 50, 0},
		{"limit at max untouched", 1, 50, 1, 50, 0},
		{"skip uses clamped limit", 3, 1000, 3, 50, 100},
		{"third page", 3, 10, 3, 10, 20},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, limit, skip := normalizeFeedPaging(tc.page, tc.limit)
			assert.Equal(t, tc.wantPage, page)
			assert.Equal(t, tc.wantLimit, limit)
			assert.Equal(t, tc.wantSkip, skip)
		})
	}
}

func TestFeedExclusionSet(t *testing.T) {
	me := primitive.NewObjectID()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	carol := primitive.NewObjectID()

	row := func(from, to primitive.ObjectID, status models.ConnectionStatus) models.ConnectionRequest {
		return models.ConnectionRequest{FromUserId: from, ToUserId: to, Status: status}
	}

	cases := []struct {
		name string
		rows []models.ConnectionRequest
		want []primitive.ObjectID
	}{
		{"empty ledger excludes only self", nil, []primitive.ObjectID{me}},
		{
			"outgoing row excludes the recipient",
			[]models.ConnectionRequest{row(me, alice, models.StatusInterested)},
			[]primitive.ObjectID{me, alice},
		},
		{
			"incoming row excludes the sender",
			[]models.ConnectionRequest{row(bob, me, models.StatusInterested)},
			[]primitive.ObjectID{me, bob},
		},
		{
			"every status contributes",
			[]models.ConnectionRequest{
				row(me, alice, models.StatusIgnore),
				row(bob, me, models.StatusReject),
				row(me, carol, models.StatusAccept),
			},
			[]primitive.ObjectID{me, alice, bob, carol},
		},
		{
			"duplicate endpoints across rows are deduplicated",
			[]models.ConnectionRequest{
				row(me, alice, models.StatusInterested),
				row(alice, bob, models.StatusAccept),
				row(bob, me, models.StatusReject),
			},
			[]primitive.ObjectID{me, alice, bob},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := feedExclusionSet(me, tc.rows)
			assert.Equal(t, tc.want, got)
			assert.Contains(t, got, me, "the user must never see itself")
		})
	}
}
