package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"forum-server/shared"

	"github.com/pkg/errors"
)

func CreateSection(ctx context.Context, title, description string, order int) (*Section, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.ValidationError("Section title cannot be empty")
	}
	if order < 0 {
		return nil, shared.ValidationError("Section order cannot be negative")
	}

	var section Section
	err := Conn.GetContext(ctx, &section, "INSERT INTO sections (title, description, sort_order) VALUES ($1, $2, $3) RETURNING *", title, strings.TrimSpace(description), order)

	if err != nil {
		if IsNonUniqueErr(err) {
			return nil, shared.ConflictError("A section with that title already exists")
		}
		return nil, errors.Wrap(err, "error creating section")
	}

	return &section, nil
}

func ListSections(ctx context.Context) ([]*Section, error) {
	var sections []*Section
	err := Conn.SelectContext(ctx, &sections, "SELECT * FROM sections ORDER BY sort_order, title")

	if err != nil {
		return nil, fmt.Errorf("error listing sections: %v", err)
	}

	return sections, nil
}

func CreateSubsection(ctx context.Context, sectionId int64, title, description string, order int) (*Subsection, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.ValidationError("Subsection title cannot be empty")
	}
	if order < 0 {
		return nil, shared.ValidationError("Subsection order cannot be negative")
	}

	var subsection Subsection
	err := Conn.GetContext(ctx, &subsection, "INSERT INTO subsections (section_id, title, description, sort_order) VALUES ($1, $2, $3, $4) RETURNING *", sectionId, title, strings.TrimSpace(description), order)

	if err != nil {
		if IsForeignKeyErr(err) {
			return nil, shared.NotFoundError("Section not found")
		}
		if IsNonUniqueErr(err) {
			return nil, shared.ConflictError("A subsection with that title already exists in this section")
		}
		return nil, errors.Wrap(err, "error creating subsection")
	}

	return &subsection, nil
}

func GetSubsection(ctx context.Context, id int64) (*Subsection, error) {
	var subsection Subsection
	err := Conn.GetContext(ctx, &subsection, "SELECT * FROM subsections WHERE id = $1", id)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, fmt.Errorf("error getting subsection: %v", err)
	}

	return &subsection, nil
}

// ListSectionsWithSubsections loads the full section tree with two queries.
func ListSectionsWithSubsections(ctx context.Context) ([]shared.SectionView, error) {
	sections, err := ListSections(ctx)
	if err != nil {
		return nil, err
	}

	var subsections []*Subsection
	err = Conn.SelectContext(ctx, &subsections, "SELECT * FROM subsections ORDER BY section_id, sort_order, title")
	if err != nil {
		return nil, fmt.Errorf("error listing subsections: %v", err)
	}

	bySection := map[int64][]shared.SubsectionView{}
	for _, sub := range subsections {
		bySection[sub.SectionId] = append(bySection[sub.SectionId], sub.ToApi())
	}

	res := make([]shared.SectionView, 0, len(sections))
	for _, s := range sections {
		subs := bySection[s.Id]
		if subs == nil {
			subs = []shared.SubsectionView{}
		}
		res = append(res, shared.SectionView{
			Id:          s.Id,
			Title:       s.Title,
			Description: s.Description,
			Subsections: subs,
		})
	}

	return res, nil
}

func GetForumStats(ctx context.Context) (*shared.ForumStats, error) {
	var stats shared.ForumStats
	err := Conn.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM threads),
			(SELECT COUNT(*) FROM posts)
	`).Scan(&stats.Users, &stats.Threads, &stats.Posts)

	if err != nil {
		return nil, fmt.Errorf("error getting forum stats: %v", err)
	}

	return &stats, nil
}
