package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/yamanekazuki/hr-qa-assistant/internal/config"
	"github.com/yamanekazuki/hr-qa-assistant/internal/dto"
	"github.com/yamanekazuki/hr-qa-assistant/internal/entity"
	"github.com/yamanekazuki/hr-qa-assistant/internal/pkg/logger"
	"github.com/yamanekazuki/hr-qa-assistant/internal/repository"
	"github.com/yamanekazuki/hr-qa-assistant/pkg/events"
	natspub "github.com/yamanekazuki/hr-qa-assistant/pkg/nats"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// IOAuthService signs users in with Google and issues the bearer tokens the
// rest of the API authenticates with.
type IOAuthService interface {
	AuthURL(state string) string
	HandleCallback(ctx context.Context, code string) (*dto.LoginResponse, error)
	Me(ctx context.Context, email string) (*dto.MeResponse, error)
}

type googleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type oauthService struct {
	oauthConfig   *oauth2.Config
	userRepo      repository.UserRepository
	natsPublisher *natspub.Publisher
	logger        logger.ILogger
	jwtSecret     string
	adminEmail    string
}

func NewOAuthService(cfg *config.Config, userRepo repository.UserRepository, natsPublisher *natspub.Publisher, sysLogger logger.ILogger) IOAuthService {
	return &oauthService{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.Auth.GoogleClientID,
			ClientSecret: cfg.Auth.GoogleClientSecret,
			RedirectURL:  cfg.Auth.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		userRepo:      userRepo,
		natsPublisher: natsPublisher,
		logger:        sysLogger,
		jwtSecret:     cfg.Auth.JWTSecret,
		adminEmail:    cfg.Auth.AdminEmail,
	}
}

func (s *oauthService) AuthURL(state string) string {
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (s *oauthService) HandleCallback(ctx context.Context, code string) (*dto.LoginResponse, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "failed to exchange authorization code")
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Google account has no email")
	}

	user, err := s.upsertUser(ctx, info)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	if s.natsPublisher != nil {
		if err := s.natsPublisher.Publish(ctx, events.NewUserSignedInEvent(user.Id, user.Email)); err != nil {
			s.logger.Warn("Auth", "Failed to publish sign-in event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		User:        toUserDTO(user),
	}, nil
}

func (s *oauthService) Me(ctx context.Context, email string) (*dto.MeResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "user not found")
	}
	return &dto.MeResponse{
		User:    toUserDTO(user),
		IsAdmin: user.Role == entity.UserRoleAdmin,
	}, nil
}

func (s *oauthService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := s.oauthConfig.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch Google user info: %w", err)
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode Google user info: %w", err)
	}
	return &info, nil
}

func (s *oauthService) upsertUser(ctx context.Context, info *googleUserInfo) (*entity.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, info.Email)
	if err != nil {
		return nil, err
	}

	role := entity.UserRoleUser
	if s.adminEmail != "" && info.Email == s.adminEmail {
		role = entity.UserRoleAdmin
	}

	if user == nil {
		user = &entity.User{Id: uuid.New(), Email: info.Email}
	}
	user.FullName = info.Name
	user.Role = role
	if info.Picture != "" {
		user.AvatarURL = &info.Picture
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *oauthService) issueToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"email":   user.Email,
		"role":    string(user.Role),
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func toUserDTO(user *entity.User) dto.UserDTO {
	return dto.UserDTO{
		Id:       user.Id,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role),
	}
}
