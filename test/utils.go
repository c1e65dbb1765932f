package test

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"fitmuseapi/models"
	"fitmuseapi/services"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const FakeUserPassword = "sekret123"

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {

	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func GenerateUserToken(userPk string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userPk,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	t, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		log.Fatalf("Error when signing user token for %s. Error %s ", userPk, err)
	}
	return t
}

func NewJSONAuthRequest(method string, target string, userPk string, param interface{}) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	token := GenerateUserToken(userPk)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	return req
}

func NewJSONAuthRequestRaw(method string, target string, userPk string, json string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(json))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	token := GenerateUserToken(userPk)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	return req
}

func NewRefString(data string) *string {
	return &data
}

// FakeUser creates an account with the well-known FakeUserPassword so login
// flows can be exercised.
func FakeUser(db *gorm.DB) *models.UserAccount {
	return FakeUserNamed(db, "ourname")
}

func FakeUserNamed(db *gorm.DB, username string) *models.UserAccount {
	hash, err := bcrypt.GenerateFromPassword([]byte(FakeUserPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error hashing fake user password: %s", err)
	}
	user := &models.UserAccount{
		Username: username,
		Password: string(hash),
		LastIp:   "123.122.122.122",
	}
	db.Create(&user)
	return user
}

// LLMServiceMock answers every call with canned payloads.
type LLMServiceMock struct {
	AnalyzeResponse  string
	CompleteResponse string
	ImageBytes       []byte
	Err              error
}

func (m *LLMServiceMock) AnalyzeImage(ctx context.Context, prompt string, imageBase64 string, modelName services.LLMModelName) (*services.LLMResponse, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &services.LLMResponse{
		Response:         m.AnalyzeResponse,
		InputTokenCount:  10,
		OutputTokenCount: 13,
		TotalTokenCount:  23,
	}, nil
}

func (m *LLMServiceMock) Complete(ctx context.Context, prompt string, modelName services.LLMModelName) (*services.LLMResponse, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &services.LLMResponse{
		Response:         m.CompleteResponse,
		InputTokenCount:  10,
		OutputTokenCount: 13,
		TotalTokenCount:  23,
	}, nil
}

func (m *LLMServiceMock) GenerateImage(ctx context.Context, prompt string, modelName services.LLMModelName) (*services.LLMResponse, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &services.LLMResponse{Images: [][]byte{m.ImageBytes}}, nil
}

type AWSProviderMock struct {
	MockUrl string
}

func (awsService AWSProviderMock) InitPresignClient(ctx context.Context) error {
	return nil
}

func (awsService AWSProviderMock) PresignLink(ctx context.Context, bucketName string, fileName string) (string, error) {
	return fmt.Sprintf("https://fakebucketurl.com/%s", fileName), nil
}

func (awsService AWSProviderMock) GetPresignedR2FileReadURL(ctx context.Context, bucketName, fileKey string) (string, error) {
	return awsService.MockUrl, nil
}

func (awsService AWSProviderMock) UploadToPresignedURL(ctx context.Context, bucketName, url string, fileContent []byte) (string, int, error) {
	return url, 204, nil
}

// URLCacheMock serves a fixed URL for any object key.
type URLCacheMock struct {
	MockUrl string
	Err     error
}

func (m URLCacheMock) GetReadURL(ctx context.Context, objectKey string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.MockUrl, nil
}
