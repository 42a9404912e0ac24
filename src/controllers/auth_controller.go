package controllers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/devmesh/Backend-Dev-Mesh/src/lib"
	"github.com/devmesh/Backend-Dev-Mesh/src/models"
)

const resetTokenTTL = time.Hour

// Signup handles user registration, validates input, checks for duplicates, hashes password, creates user, and sets JWT cookie
func Signup(c *fiber.Ctx) error {

	var userData struct {
		FirstName string   `json:"firstName"`
		LastName  string   `json:"lastName"`
		Email     string   `json:"email"`
		Password  string   `json:"password"`
		Gender    string   `json:"gender"`
		Bio       string   `json:"bio"`
		Skills    []string `json:"skills"`
		Age       int      `json:"age"`
	}

	if err := c.BodyParser(&userData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	if userData.FirstName == "" || userData.LastName == "" || userData.Email == "" || userData.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("All fields are required"))
	}

	if !strings.Contains(userData.Email, "@") {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Please enter a valid email address"))
	}

	if len(userData.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(
			"Password must be at least 8 characters long"))
	}

	if !models.ValidGender(userData.Gender) {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Gender not valid"))
	}

	if userData.Age != 0 && userData.Age < 18 {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("You must be at least 18"))
	}

	if len(userData.Bio) > 2000 {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Bio is too long"))
	}

	users := lib.DB.Collection("users")

	// Verificar que el email no esté registrado
	email := strings.ToLower(strings.TrimSpace(userData.Email))
	err := users.FindOne(c.Context(), bson.M{"email": email}).Err()
	if err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Email already exists"))
	} else if err != mongo.ErrNoDocuments {
		lib.Log.Error("Error checking existing email", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(userData.Password), 10)
	if err != nil {
		lib.Log.Error("Error hashing password", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	now := time.Now()
	newUser := models.User{
		FirstName: strings.TrimSpace(userData.FirstName),
		LastName:  strings.TrimSpace(userData.LastName),
		Email:     email,
		Password:  string(hashedPassword),
		Gender:    userData.Gender,
		Bio:       userData.Bio,
		Skills:    userData.Skills,
		Age:       userData.Age,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	result, err := users.InsertOne(c.Context(), newUser)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Email already exists"))
		}
		lib.Log.Error("Error creating user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Failed to create user"))
	}
	newUser.Id = result.InsertedID.(primitive.ObjectID)

	token, err := lib.GenerateJWT(newUser.Id)
	if err != nil {
		lib.Log.Error("Error generating token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	setAuthCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User added!",
		"token":   token,
	})
}

// Login authenticates a user by email and password, generates JWT, and sets cookie
func Login(c *fiber.Ctx) error {

	var loginData struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&loginData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid request body"))
	}

	if loginData.Email == "" || loginData.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Email and password are required"))
	}

	var user models.User
	email := strings.ToLower(strings.TrimSpace(loginData.Email))
	err := lib.DB.Collection("users").FindOne(c.Context(), bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid credentials"))
		}
		lib.Log.Error("Error finding user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(loginData.Password)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid credentials"))
	}

	token, err := lib.GenerateJWT(user.Id)
	if err != nil {
		lib.Log.Error("Error generating token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	setAuthCookie(c, token)

	return c.JSON(fiber.Map{
		"message": "User logged in successfully!",
		"token":   token,
	})
}

// Logout clears the authentication cookie to log out the user
func Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Now().Add(-1 * time.Hour),
		HTTPOnly: true,
		SameSite: "Strict",
		Path:     "/",
	})
	return c.JSON(lib.MessageResponse("Logged out successfully"))
}

// ForgotPassword issues a password reset token and emails it to the user
func ForgotPassword(c *fiber.Ctx) error {

	var body struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil || body.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Email is required"))
	}

	// La respuesta es la misma exista o no la cuenta
	response := lib.MessageResponse("If the account exists, a reset email has been sent")

	users := lib.DB.Collection("users")
	email := strings.ToLower(strings.TrimSpace(body.Email))

	var user models.User
	err := users.FindOne(c.Context(), bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err != mongo.ErrNoDocuments {
			lib.Log.Error("Error finding user for reset", zap.Error(err))
		}
		return c.JSON(response)
	}

	resetToken := uuid.NewString()
	update := bson.M{"$set": bson.M{
		"resetToken":       resetToken,
		"resetTokenExpiry": time.Now().Add(resetTokenTTL),
		"updatedAt":        time.Now(),
	}}
	if _, err := users.UpdateOne(c.Context(), bson.M{"_id": user.Id}, update); err != nil {
		lib.Log.Error("Error storing reset token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	lib.Notify(user.Email, "Password Reset",
		"Click on this link to reset your password: https://devmesh.dev/reset-password?token="+resetToken)

	return c.JSON(response)
}

// ResetPassword applies a previously issued reset token and sets a new password
func ResetPassword(c *fiber.Ctx) error {

	var body struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil || body.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Token is required"))
	}

	if len(body.Password) < 8 {
		return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse(
			"Password must be at least 8 characters long"))
	}

	users := lib.DB.Collection("users")

	var user models.User
	filter := bson.M{
		"resetToken":       body.Token,
		"resetTokenExpiry": bson.M{"$gt": time.Now()},
	}
	err := users.FindOne(c.Context(), filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.Status(fiber.StatusBadRequest).JSON(lib.MessageResponse("Invalid or expired token"))
		}
		lib.Log.Error("Error finding reset token", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(body.Password), 10)
	if err != nil {
		lib.Log.Error("Error hashing password", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	update := bson.M{
		"$set":   bson.M{"password": string(hashedPassword), "updatedAt": time.Now()},
		"$unset": bson.M{"resetToken": "", "resetTokenExpiry": ""},
	}
	if _, err := users.UpdateOne(c.Context(), bson.M{"_id": user.Id}, update); err != nil {
		lib.Log.Error("Error resetting password", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("Server error"))
	}

	return c.JSON(lib.MessageResponse("Password updated successfully"))
}

func setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Strict",
		Path:     "/",
	})
}
