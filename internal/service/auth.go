package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"vendorhub/internal/model"
	"vendorhub/internal/repository"
)

const (
	minPasswordLen = 6
	tokenIssuer    = "vendorhub"
)

// Claims is the JWT payload handed to the dashboard.
type Claims struct {
	UserID   string `json:"user_id"`
	VendorID string `json:"vendor_id"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users   UserStore
	vendors VendorStore
	secret  []byte
	ttl     time.Duration
	now     func() time.Time
}

func NewAuthService(users UserStore, vendors VendorStore, jwtSecret string, ttl time.Duration) *AuthService {
	return &AuthService{
		users:   users,
		vendors: vendors,
		secret:  []byte(jwtSecret),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Register creates the account and an initial vendor profile named after
// the restaurant.
func (s *AuthService) Register(ctx context.Context, email, password, restaurantName string) (*model.User, *model.Vendor, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var v validator
	v.email("email", email)
	v.minLen("password", password, minPasswordLen, "Password must be at least 6 characters.")
	v.minLen("restaurant_name", restaurantName, 2, "Restaurant name must be at least 2 characters.")
	if err := v.err(); err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{Email: email, PasswordHash: hash}
	vendor := &model.Vendor{
		Name:        strings.TrimSpace(restaurantName),
		Email:       email,
		OpeningTime: "10:00",
		ClosingTime: "22:00",
	}
	if err := s.users.CreateWithVendor(ctx, user, vendor); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, fmt.Errorf("create user: %w", err)
	}
	return user, vendor, nil
}

func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, *model.Vendor, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	vendor, err := s.vendors.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, nil, storeErr("get vendor", err)
	}
	return user, vendor, nil
}

func (s *AuthService) IssueToken(userID, vendorID string) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:   userID,
		VendorID: vendorID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *AuthService) ParseToken(tokenString string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid || claims.UserID == "" || claims.VendorID == "" {
		return nil, errors.New("invalid token claims")
	}
	return &claims, nil
}
