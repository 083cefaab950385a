package security

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"stockflow/internal/repository"
	"stockflow/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var (
	jwtSecret     []byte
	jwtSecretOnce sync.Once
)

// secretKey resolves JWT_SECRET once, on first use rather than at import
// time, so packages can link against security without the variable set.
func secretKey() []byte {
	jwtSecretOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")

		if secret == "" {
			if err := godotenv.Load(); err != nil {
				log.Printf("No .env file found while loading JWT secret: %v", err)
			}
			secret = os.Getenv("JWT_SECRET")
		}

		if secret == "" {
			log.Fatal("JWT_SECRET environment variable is not set")
		}

		jwtSecret = []byte(secret)
	})

	return jwtSecret
}

func AuthenticateUser(username, password string, repo *repository.Repository) (*models.User, error) {
	var user models.User

	query := repo.GoquDBWrapper.
		Select("id", "username", "fullname", "password_hash", "role").
		From("users").
		Where(goqu.Ex{"username": username})

	if _, err := query.Executor().ScanStruct(&user); err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}

	return &user, nil
}

func GenerateJWT(userID int, role string, username string, fullname string) (string, error) {
	claims := jwt.MapClaims{
		"userID":   fmt.Sprintf("%d", userID),
		"role":     role,
		"username": username,
		"fullname": fullname,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// CurrentUserID returns the authenticated user's ID, or nil when the request
// carries no identity (public route).
func CurrentUserID(c *gin.Context) *int {
	value, ok := c.Get("userID")
	if !ok {
		return nil
	}
	idString, ok := value.(string)
	if !ok {
		return nil
	}
	var id int
	if _, err := fmt.Sscanf(idString, "%d", &id); err != nil {
		return nil
	}
	return &id
}

// CurrentUserFullname returns the display name carried in the JWT claims.
func CurrentUserFullname(c *gin.Context) string {
	value, ok := c.Get("fullname")
	if !ok {
		return ""
	}
	fullname, _ := value.(string)
	return fullname
}
