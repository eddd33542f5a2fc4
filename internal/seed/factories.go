package seed

import (
	"fmt"
	"strings"
	"sync"

	"quitemap/internal/models"
	"quitemap/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

// ExamplePassword is the plaintext password of every seeded user.
const ExamplePassword = "example-pass1"

var (
	hashOnce   sync.Once
	passwdHash string
)

// examplePasswordHash hashes ExamplePassword once; bcrypt per user would make
// large seeds crawl.
func examplePasswordHash() string {
	hashOnce.Do(func() {
		h, err := service.HashPassword(ExamplePassword)
		if err != nil {
			panic(err)
		}
		passwdHash = h
	})
	return passwdHash
}

func fakeUser(i int) *models.User {
	username := fmt.Sprintf("%s_%d", strings.ToLower(gofakeit.Username()), i)
	if len(username) > 45 {
		username = username[:45]
	}
	return &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		FullName: gofakeit.Name(),
		Password: examplePasswordHash(),
		IsActive: true,
	}
}

func fakePost(userID uint) *models.Post {
	title := gofakeit.Sentence(gofakeit.Number(3, 8))
	if len(title) > 200 {
		title = title[:200]
	}
	return &models.Post{
		Title:       title,
		Content:     gofakeit.Paragraph(2, 4, 12, "\n\n"),
		UserID:      userID,
		IsPublished: gofakeit.Number(0, 9) < 8,
	}
}
