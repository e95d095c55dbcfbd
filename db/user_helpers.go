package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"forum-server/shared"

	"github.com/jmoiron/sqlx"
)

func GetUser(ctx context.Context, userId int64) (*User, error) {
	var user User
	err := Conn.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", userId)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting user: %v", err)
	}

	return &user, nil
}

func GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	err := Conn.GetContext(ctx, &user, "SELECT * FROM users WHERE LOWER(username) = LOWER($1)", username)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting user: %v", err)
	}

	return &user, nil
}

func CreateUser(ctx context.Context, username, email string, isStaff bool) (*User, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return nil, shared.ValidationError("Username must be at least 3 characters")
	}

	var user User
	err := WithTx(ctx, "create user", func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &user, "INSERT INTO users (username, email, is_staff) VALUES ($1, $2, $3) RETURNING *", username, strings.TrimSpace(email), isStaff)
		if err != nil {
			if IsNonUniqueErr(err) {
				return shared.ConflictError("A user with that username already exists")
			}
			return fmt.Errorf("error creating user: %v", err)
		}

		_, err = tx.ExecContext(ctx, "INSERT INTO profiles (user_id) VALUES ($1)", user.Id)
		if err != nil {
			return fmt.Errorf("error creating profile: %v", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &user, nil
}

func ListUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	err := Conn.SelectContext(ctx, &users, "SELECT * FROM users ORDER BY id")

	if err != nil {
		return nil, fmt.Errorf("error listing users: %v", err)
	}

	return users, nil
}

func userExists(ctx context.Context, q Queryer, userId int64) (bool, error) {
	var exists bool
	err := q.GetContext(ctx, &exists, "SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)", userId)
	if err != nil {
		return false, fmt.Errorf("error checking user: %v", err)
	}
	return exists, nil
}
