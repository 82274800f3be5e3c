package service

import (
	"errors"
	"fmt"
	"time"

	"clinical-chat-be/internal/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the result of credential verification. It is established once
// at connection admission and never re-validated per message.
type Identity struct {
	UserId uuid.UUID
	Email  string
}

type ITokenService interface {
	Issue(user *entity.User) (string, error)
	Verify(tokenStr string) (*Identity, error)
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string) ITokenService {
	return &tokenService{
		secret: []byte(secret),
		ttl:    24 * time.Hour,
	}
}

func (s *tokenService) Issue(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"email":   user.Email,
		"exp":     time.Now().Add(s.ttl).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *tokenService) Verify(tokenStr string) (*Identity, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userIdStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("token missing user_id")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return nil, errors.New("invalid user id in token")
	}

	identity := &Identity{UserId: userId}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	return identity, nil
}
