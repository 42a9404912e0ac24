package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/devmesh/Backend-Dev-Mesh/src/lib"
	"github.com/devmesh/Backend-Dev-Mesh/src/models"
)

const (
	feedDefaultLimit = 10
	feedMaxLimit     = 50
)

// normalizeFeedPaging clamps limit to [1, feedMaxLimit] (default 10) and
// page to >= 1, and returns the resulting skip offset.
func normalizeFeedPaging(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = feedDefaultLimit
	}
	if limit > feedMaxLimit {
		limit = feedMaxLimit
	}
	return page, limit, (page - 1) * limit
}

// feedExclusionSet returns the user ids hidden from userID's feed: the user
// itself plus both endpoints of every ledger row, whatever the status,
// deduplicated. Ignored and rejected users never come back.
func feedExclusionSet(userID primitive.ObjectID, rows []models.ConnectionRequest) []primitive.ObjectID {
	exclude := []primitive.ObjectID{userID}
	seen := map[primitive.ObjectID]struct{}{userID: {}}
	for _, row := range rows {
		for _, id := range [2]primitive.ObjectID{row.FromUserId, row.ToUserId} {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				exclude = append(exclude, id)
			}
		}
	}
	return exclude
}

// GetFeed returns a page of users the authenticated user has not interacted with yet
func GetFeed(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	_, limit, skip := normalizeFeedPaging(
		c.QueryInt("page", 1),
		c.QueryInt("limit", feedDefaultLimit),
	)

	connections := lib.DB.Collection("connections")
	cursor, err := connections.Find(c.Context(), bson.M{
		"$or": []bson.M{
			{"fromUserId": user.Id},
			{"toUserId": user.Id},
		},
	})
	if err != nil {
		lib.Log.Error("Error loading ledger for feed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	defer cursor.Close(c.Context())

	var rows []models.ConnectionRequest
	if err := cursor.All(c.Context(), &rows); err != nil {
		lib.Log.Error("Error decoding ledger for feed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	exclude := feedExclusionSet(user.Id, rows)

	opts := options.Find().
		SetProjection(models.SafeProjection()).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	userCursor, err := lib.DB.Collection("users").Find(
		c.Context(),
		bson.M{"_id": bson.M{"$nin": exclude}},
		opts,
	)
	if err != nil {
		lib.Log.Error("Error finding feed users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	defer userCursor.Close(c.Context())

	var feed []models.UserSafe
	if err := userCursor.All(c.Context(), &feed); err != nil {
		lib.Log.Error("Error decoding feed users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	if feed == nil {
		feed = []models.UserSafe{}
	}

	return c.JSON(fiber.Map{
		"message": "Feed fetched successfully",
		"users":   feed,
	})
}
