package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ConnectionStatus string

const (
	StatusIgnore     ConnectionStatus = "ignore"
	StatusInterested ConnectionStatus = "interested"
	StatusAccept     ConnectionStatus = "accept"
	StatusReject     ConnectionStatus = "reject"
)

// ConnectionRequest is one row of the ledger: a directed request between
// two distinct users. At most one row exists per unordered pair, enforced
// by the unique index on pairKey. Rows are mutated in place, never deleted.
type ConnectionRequest struct {
	Id         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FromUserId primitive.ObjectID `json:"fromUserId" bson:"fromUserId"`
	ToUserId   primitive.ObjectID `json:"toUserId" bson:"toUserId"`
	Status     ConnectionStatus   `json:"status" bson:"status"`
	PairKey    string             `json:"-" bson:"pairKey"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

var (
	ErrSelfRequest = errors.New("cannot send a connection request to yourself")
	ErrSameStatus  = errors.New("request already marked with this status")
	ErrIgnoredPair = errors.New("cannot send 'interested' request after ignoring")
)

// ParseSendStatus accepts the statuses a sender may set.
func ParseSendStatus(s string) (ConnectionStatus, bool) {
	switch ConnectionStatus(s) {
	case StatusInterested, StatusIgnore:
		return ConnectionStatus(s), true
	}
	return "", false
}

// ParseReviewStatus accepts the statuses a recipient may set.
func ParseReviewStatus(s string) (ConnectionStatus, bool) {
	switch ConnectionStatus(s) {
	case StatusAccept, StatusReject:
		return ConnectionStatus(s), true
	}
	return "", false
}

// PairKeyFor returns the canonical key of an unordered user pair: both hex
// ids sorted and joined, so either direction maps to the same key.
func PairKeyFor(a, b primitive.ObjectID) string {
	ah, bh := a.Hex(), b.Hex()
	if ah > bh {
		ah, bh = bh, ah
	}
	return ah + ":" + bh
}

// NewConnectionRequest builds a ledger row. Self requests are rejected
// here so they can never reach the store.
func NewConnectionRequest(from, to primitive.ObjectID, status ConnectionStatus) (*ConnectionRequest, error) {
	if from == to {
		return nil, ErrSelfRequest
	}

	now := time.Now()
	return &ConnectionRequest{
		Id:         primitive.NewObjectID(),
		FromUserId: from,
		ToUserId:   to,
		Status:     status,
		PairKey:    PairKeyFor(from, to),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// CanTransition decides whether an existing row may move to desired.
// Repeating the current status is a conflict, and the ignore→interested
// edge is blocked while interested→ignore is not: dismissing someone is
// always possible, undoing a dismissal is not.
func (r *ConnectionRequest) CanTransition(desired ConnectionStatus) error {
	if r.Status == desired {
		return ErrSameStatus
	}
	if r.Status == StatusIgnore && desired == StatusInterested {
		return ErrIgnoredPair
	}
	return nil
}

// OtherParty returns the user on the other side of the row.
func (r *ConnectionRequest) OtherParty(userID primitive.ObjectID) primitive.ObjectID {
	if r.FromUserId == userID {
		return r.ToUserId
	}
	return r.FromUserId
}
