package db

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const tokenExpirationDays = 90

var ErrInvalidToken = errors.New("invalid token")

func hashToken(uid uuid.UUID) string {
	bytes := uid[:]
	hashBytes := sha256.Sum256(bytes)
	return hex.EncodeToString(hashBytes[:])
}

// CreateAuthToken stores the hash of a fresh token and returns the token itself. The plain token is
// never persisted.
func CreateAuthToken(ctx context.Context, userId int64) (token string, id int64, err error) {
	uid := uuid.New()
	hash := hashToken(uid)

	err = Conn.QueryRowContext(ctx, "INSERT INTO auth_tokens (user_id, token_hash) VALUES ($1, $2) RETURNING id", userId, hash).Scan(&id)

	if err != nil {
		return "", 0, fmt.Errorf("error creating auth token: %v", err)
	}

	return uid.String(), id, nil
}

func ValidateAuthToken(ctx context.Context, token string) (*AuthToken, error) {
	uid, err := uuid.Parse(token)

	if err != nil {
		return nil, ErrInvalidToken
	}

	var authToken AuthToken
	err = Conn.GetContext(ctx, &authToken, "SELECT * FROM auth_tokens WHERE token_hash = $1 AND created_at > $2 AND deleted_at IS NULL", hashToken(uid), time.Now().AddDate(0, 0, -tokenExpirationDays))

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInvalidToken
		}

		return nil, fmt.Errorf("error validating token: %v", err)
	}

	return &authToken, nil
}

func DeleteAuthToken(ctx context.Context, id int64) error {
	_, err := Conn.ExecContext(ctx, "UPDATE auth_tokens SET deleted_at = NOW() WHERE id = $1", id)

	if err != nil {
		return fmt.Errorf("error deleting auth token: %v", err)
	}

	return nil
}
