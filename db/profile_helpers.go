package db

import (
	"context"
	"fmt"

	"forum-server/sanitize"

	"github.com/pkg/errors"
)

// GetOrCreateProfile returns the user's profile, creating an empty one the first time.
func GetOrCreateProfile(ctx context.Context, userId int64) (*Profile, error) {
	var profile Profile
	err := Conn.GetContext(ctx, &profile, `
		INSERT INTO profiles (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING *
	`, userId)

	if err != nil {
		return nil, errors.Wrap(err, "error getting or creating profile")
	}

	return &profile, nil
}

// UpdateAvatar stores the new avatar path and returns the previous one so the caller can remove the
// old file.
func UpdateAvatar(ctx context.Context, userId int64, path string) (previous *string, err error) {
	_, err = GetOrCreateProfile(ctx, userId)
	if err != nil {
		return nil, err
	}

	err = Conn.GetContext(ctx, &previous, `
		UPDATE profiles p SET avatar_path = $2, updated_at = NOW()
		FROM profiles prev
		WHERE p.user_id = $1 AND prev.user_id = p.user_id
		RETURNING prev.avatar_path
	`, userId, path)

	if err != nil {
		return nil, errors.Wrap(err, "error updating avatar")
	}

	return previous, nil
}

func UpdateBio(ctx context.Context, userId int64, bio string) (*Profile, error) {
	bio, err := sanitize.Bio(bio)
	if err != nil {
		return nil, err
	}

	_, err = GetOrCreateProfile(ctx, userId)
	if err != nil {
		return nil, err
	}

	var profile Profile
	err = Conn.GetContext(ctx, &profile, "UPDATE profiles SET bio = $2, updated_at = NOW() WHERE user_id = $1 RETURNING *", userId, bio)
	if err != nil {
		return nil, errors.Wrap(err, "error updating bio")
	}

	return &profile, nil
}

func CountUserContent(ctx context.Context, userId int64) (posts int, threads int, err error) {
	err = Conn.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM posts WHERE author_id = $1),
			(SELECT COUNT(*) FROM threads WHERE author_id = $1)
	`, userId).Scan(&posts, &threads)

	if err != nil {
		return 0, 0, fmt.Errorf("error counting user content: %v", err)
	}

	return posts, threads, nil
}
