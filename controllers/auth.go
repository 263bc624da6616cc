package controllers

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/homekaro/home-service-api/redis"

	"github.com/homekaro/home-service-api/models"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// signToken issues a session token carrying only the user id. There is no
// expiry claim; the token stays valid as long as the signature does.
func signToken(userID uint) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "your_secret_key" // Replace with secure key in production
	}

	return token.SignedString([]byte(secret))
}

func userProjection(user *models.User) fiber.Map {
	return fiber.Map{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
	}
}

// Register handles user registration
func (h *AuthController) Register(c *fiber.Ctx) error {
	type RegisterInput struct {
		Email      string      `json:"email"`
		Password   string      `json:"password"`
		Name       string      `json:"name"`
		Phone      string      `json:"phone"`
		Role       models.Role `json:"role"`
		Profession string      `json:"profession"`
		Experience int         `json:"experience"`
		HourlyRate float64     `json:"hourlyRate"`
	}

	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if input.Email == "" || input.Password == "" || input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}
	if len(input.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Password must be at least 6 characters",
		})
	}
	if len(input.Name) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name must be at least 2 characters",
		})
	}

	if input.Role == "" {
		input.Role = models.RoleCustomer
	}
	// Admin accounts are seeded, never self-registered
	if input.Role != models.RoleCustomer && input.Role != models.RoleWorker {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid role",
		})
	}

	var existingUser models.User
	if h.DB.Where("email = ?", input.Email).First(&existingUser).RowsAffected > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "User already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	user := models.User{
		Email:    input.Email,
		Password: string(hashedPassword),
		Name:     input.Name,
		Phone:    input.Phone,
		Role:     input.Role,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		switch user.Role {
		case models.RoleCustomer:
			return tx.Create(&models.Customer{UserID: user.ID}).Error
		case models.RoleWorker:
			profession := input.Profession
			if profession == "" {
				profession = "General Service"
			}
			hourlyRate := input.HourlyRate
			if hourlyRate == 0 {
				hourlyRate = 50
			}
			return tx.Create(&models.Worker{
				UserID:     user.ID,
				Profession: profession,
				Experience: input.Experience,
				HourlyRate: hourlyRate,
				Skills:     datatypes.JSON([]byte("[]")),
			}).Error
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user: " + err.Error(),
		})
	}

	tokenString, err := signToken(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": tokenString,
		"user":  userProjection(&user),
	})
}

// Login handles user authentication. An optional role in the body gates the
// login to that role: a correct password with the wrong role still fails.
func (h *AuthController) Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string      `json:"email"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var user models.User
	if h.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if input.Role != "" && user.Role != input.Role {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials for " + strings.ToLower(string(input.Role)) + " login",
		})
	}

	tokenString, err := signToken(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": tokenString,
		"user":  userProjection(&user),
	})
}

// AdminLogin is the admin-only login gate
func (h *AuthController) AdminLogin(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var user models.User
	if h.DB.Where("email = ?", input.Email).First(&user).RowsAffected == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if user.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied. Admin privileges required.",
		})
	}

	tokenString, err := signToken(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": tokenString,
		"user":  userProjection(&user),
	})
}

// Logout pushes the presented token onto the redis blacklist so the auth
// middleware rejects it from now on. Without redis the token simply stays
// valid until its signature does.
func (h *AuthController) Logout(c *fiber.Ctx) error {
	if redis.Client != nil {
		if token, ok := c.Locals("user").(*jwt.Token); ok {
			redis.Client.Set(redis.Ctx, "blacklist:"+token.Raw, "1", 24*time.Hour)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}
