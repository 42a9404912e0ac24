package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/devmesh/Backend-Dev-Mesh/src/lib"
	"github.com/devmesh/Backend-Dev-Mesh/src/models"
)

// GetProfile returns the authenticated user's own profile
func GetProfile(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	return c.JSON(user)
}

// UpdateProfile updates the editable profile fields of the authenticated user
func UpdateProfile(c *fiber.Ctx) error {

	var body struct {
		FirstName *string   `json:"firstName"`
		LastName  *string   `json:"lastName"`
		Gender    *string   `json:"gender"`
		Bio       *string   `json:"bio"`
		Skills    *[]string `json:"skills"`
		Age       *int      `json:"age"`
	}

	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	// Solo los campos editables; email y password tienen sus propios flujos
	set := bson.M{"updatedAt": time.Now()}
	if body.FirstName != nil {
		set["firstName"] = *body.FirstName
	}
	if body.LastName != nil {
		set["lastName"] = *body.LastName
	}
	if body.Gender != nil {
		if !models.ValidGender(*body.Gender) {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Gender not valid"))
		}
		set["gender"] = *body.Gender
	}
	if body.Bio != nil {
		if len(*body.Bio) > 2000 {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Bio is too long"))
		}
		set["bio"] = *body.Bio
	}
	if body.Skills != nil {
		set["skills"] = *body.Skills
	}
	if body.Age != nil {
		if *body.Age < 18 {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("You must be at least 18"))
		}
		set["age"] = *body.Age
	}

	user := c.Locals("user").(models.User)
	if _, err := lib.DB.Collection("users").UpdateOne(
		c.Context(),
		bson.M{"_id": user.Id},
		bson.M{"$set": set},
	); err != nil {
		lib.Log.Error("Error updating profile", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to update profile"))
	}

	return c.JSON(lib.MessageResponse("Profile updated!"))
}
