package controllers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/devmesh/Backend-Dev-Mesh/src/lib"
	"github.com/devmesh/Backend-Dev-Mesh/src/models"
)

// SendConnectionRequest sends or updates a connection request ("interested" or "ignore") to another user
func SendConnectionRequest(c *fiber.Ctx) error {
	status, ok := models.ParseSendStatus(c.Params("status"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(
			fmt.Sprintf("Invalid status: %s", c.Params("status"))))
	}

	toUserID, err := primitive.ObjectIDFromHex(c.Params("toUserId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	// Obtener usuario autenticado del middleware
	user := c.Locals("user").(models.User)

	if user.Id == toUserID {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(
			"You can't send a connection request to yourself"))
	}

	// Serializar las operaciones sobre este par
	pairKey := models.PairKeyFor(user.Id, toUserID)
	release := lib.AcquirePairLock(c.Context(), pairKey)
	defer release()

	// Buscar una solicitud existente en cualquier dirección
	connections := lib.DB.Collection("connections")
	var existing models.ConnectionRequest
	err = connections.FindOne(c.Context(), bson.M{"pairKey": pairKey}).Decode(&existing)

	switch {
	case err == nil:
		return applySendTransition(c, &existing, status)
	case err != mongo.ErrNoDocuments:
		lib.Log.Error("Error checking existing connection request", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	// No hay solicitud previa: el destinatario debe existir
	var target models.User
	err = lib.DB.Collection("users").FindOne(
		c.Context(),
		bson.M{"_id": toUserID},
		options.FindOne().SetProjection(bson.M{"firstName": 1, "email": 1}),
	).Decode(&target)
	if err == mongo.ErrNoDocuments {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse("User not found"))
	} else if err != nil {
		lib.Log.Error("Error finding target user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	request, err := models.NewConnectionRequest(user.Id, toUserID, status)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(
			"You can't send a connection request to yourself"))
	}

	if _, err := connections.InsertOne(c.Context(), request); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Perdimos la carrera contra otra petición para el mismo par
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(
				"A connection request already exists for this pair"))
		}
		lib.Log.Error("Error creating connection request", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse(
			"Failed to send connection request"))
	}

	if status == models.StatusInterested {
		lib.Notify(target.Email, "New connection request",
			fmt.Sprintf("%s is interested in connecting with you.", user.FirstName))
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%s is %s to %s", user.FirstName, status, toUserID.Hex()),
		"data":    request,
	})
}

// applySendTransition mutates an existing pair request in place, or rejects
// the redundant/disallowed transition.
func applySendTransition(c *fiber.Ctx, existing *models.ConnectionRequest, status models.ConnectionStatus) error {
	if err := existing.CanTransition(status); err != nil {
		if errors.Is(err, models.ErrSameStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(
				fmt.Sprintf("Request already marked as '%s'.", existing.Status)))
		}
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(
			"Cannot send 'interested' request after ignoring."))
	}

	now := time.Now()
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": now}}
	if _, err := lib.DB.Collection("connections").UpdateOne(c.Context(), bson.M{"_id": existing.Id}, update); err != nil {
		lib.Log.Error("Error updating connection request", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse(
			"Failed to update connection request"))
	}

	existing.Status = status
	existing.UpdatedAt = now

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Request updated to '%s'.", status),
		"data":    existing,
	})
}

// ReviewConnectionRequest accepts or rejects a pending "interested" request addressed to the authenticated user
func ReviewConnectionRequest(c *fiber.Ctx) error {
	status, ok := models.ParseReviewStatus(c.Params("status"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(
			fmt.Sprintf("Invalid review status: %s", c.Params("status"))))
	}

	requestedUserID, err := primitive.ObjectIDFromHex(c.Params("requestedUserId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid user ID format"))
	}

	// Obtener usuario autenticado del middleware
	user := c.Locals("user").(models.User)

	// Solo el destinatario puede revisar, y solo una solicitud "interested":
	// el filtro y la actualización son un solo paso atómico, por lo que dos
	// revisiones concurrentes no pueden procesar la misma solicitud
	filter := bson.M{
		"fromUserId": requestedUserID,
		"toUserId":   user.Id,
		"status":     models.StatusInterested,
	}
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.ConnectionRequest
	err = lib.DB.Collection("connections").FindOneAndUpdate(c.Context(), filter, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return c.Status(fiber.StatusNotFound).JSON(lib.MessageResponse(
			"No 'interested' connection request found to review."))
	} else if err != nil {
		lib.Log.Error("Error reviewing connection request", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if status == models.StatusAccept {
		notifyAccepted(c.Context(), requestedUserID, user.FirstName)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Connection request '%sed'.", status),
		"data":    updated,
	})
}

func notifyAccepted(ctx context.Context, requesterID primitive.ObjectID, accepterName string) {
	var requester models.User
	err := lib.DB.Collection("users").FindOne(
		ctx,
		bson.M{"_id": requesterID},
		options.FindOne().SetProjection(bson.M{"email": 1}),
	).Decode(&requester)
	if err != nil {
		lib.Log.Warn("Skipping acceptance email", zap.Error(err))
		return
	}

	lib.Notify(requester.Email, "Connection accepted",
		fmt.Sprintf("%s accepted your connection request.", accepterName))
}

// GetIncomingRequests returns pending "interested" requests addressed to the authenticated user
func GetIncomingRequests(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	return listPendingRequests(c, bson.M{
		"toUserId": user.Id,
		"status":   models.StatusInterested,
	}, "fromUserId")
}

// GetOutgoingRequests returns pending "interested" requests sent by the authenticated user
func GetOutgoingRequests(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	return listPendingRequests(c, bson.M{
		"fromUserId": user.Id,
		"status":     models.StatusInterested,
	}, "toUserId")
}

// listPendingRequests fetches ledger rows matching filter and populates the
// side named by populate ("fromUserId" or "toUserId") with safe fields.
func listPendingRequests(c *fiber.Ctx, filter bson.M, populate string) error {
	connections := lib.DB.Collection("connections")
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	cursor, err := connections.Find(c.Context(), filter, opts)
	if err != nil {
		lib.Log.Error("Error finding connection requests", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	defer cursor.Close(c.Context())

	var requests []models.ConnectionRequest
	if err := cursor.All(c.Context(), &requests); err != nil {
		lib.Log.Error("Error decoding connection requests", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	// Popular los perfiles en una sola consulta
	ids := make([]primitive.ObjectID, 0, len(requests))
	for _, request := range requests {
		if populate == "fromUserId" {
			ids = append(ids, request.FromUserId)
		} else {
			ids = append(ids, request.ToUserId)
		}
	}

	profiles, err := fetchSafeProfiles(c.Context(), ids)
	if err != nil {
		lib.Log.Error("Error populating request users", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(fiber.Map{
		"message": "Requests fetched successfully",
		"data":    assemblePendingRequests(requests, ids, profiles),
	})
}

type pendingRequestResponse struct {
	Id        primitive.ObjectID      `json:"id"`
	User      models.UserSafe         `json:"user"`
	Status    models.ConnectionStatus `json:"status"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

// assemblePendingRequests joins each ledger row with the populated profile of
// its other endpoint (ids[i]). Rows whose user no longer exists are omitted.
func assemblePendingRequests(requests []models.ConnectionRequest, ids []primitive.ObjectID, profiles map[primitive.ObjectID]models.UserSafe) []pendingRequestResponse {
	response := make([]pendingRequestResponse, 0, len(requests))
	for i, request := range requests {
		profile, ok := profiles[ids[i]]
		if !ok {
			continue
		}
		response = append(response, pendingRequestResponse{
			Id:        request.Id,
			User:      profile,
			Status:    request.Status,
			CreatedAt: request.CreatedAt,
			UpdatedAt: request.UpdatedAt,
		})
	}
	return response
}

// GetConnections returns the safe profiles of every user connected (status "accept") to the authenticated user
func GetConnections(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	connections := lib.DB.Collection("connections")
	filter := bson.M{
		"status": models.StatusAccept,
		"$or": []bson.M{
			{"fromUserId": user.Id},
			{"toUserId": user.Id},
		},
	}

	cursor, err := connections.Find(c.Context(), filter)
	if err != nil {
		lib.Log.Error("Error finding connections", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}
	defer cursor.Close(c.Context())

	var rows []models.ConnectionRequest
	if err := cursor.All(c.Context(), &rows); err != nil {
		lib.Log.Error("Error decoding connections", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	// Quedarnos con el perfil del otro extremo de cada fila
	ids := make([]primitive.ObjectID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.OtherParty(user.Id))
	}

	profiles, err := fetchSafeProfiles(c.Context(), ids)
	if err != nil {
		lib.Log.Error("Error populating connections", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	data := make([]models.UserSafe, 0, len(ids))
	for _, id := range ids {
		if profile, ok := profiles[id]; ok {
			data = append(data, profile)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Connections fetched successfully",
		"data":    data,
	})
}

// fetchSafeProfiles loads the safe projection of the given users in one query.
func fetchSafeProfiles(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSafe, error) {
	profiles := make(map[primitive.ObjectID]models.UserSafe, len(ids))
	if len(ids) == 0 {
		return profiles, nil
	}

	opts := options.Find().SetProjection(models.SafeProjection())
	cursor, err := lib.DB.Collection("users").Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.UserSafe
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	for _, u := range users {
		profiles[u.Id] = u
	}
	return profiles, nil
}
