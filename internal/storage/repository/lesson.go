package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/daniilsolovey/course-platform/internal/models"
)

// CreateLesson вставляет новый урок и возвращает его ID.
func (s *Storage) CreateLesson(ctx context.Context, lesson models.Lesson) (int64, error) {
	const op = "storage.CreateLesson"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO lessons (name, description, photo, video_url, course_id, owner_uid)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		lesson.Name, lesson.Description, lesson.Photo, lesson.VideoURL,
		lesson.CourseID, lesson.OwnerUID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadLesson возвращает данные урока по его ID.
func (s *Storage) ReadLesson(ctx context.Context, id int64) (*models.Lesson, error) {
	const op = "storage.ReadLesson"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, photo, video_url, course_id, owner_uid, created_at
	          FROM lessons WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Lesson
	err := row.Scan(&result.ID, &result.Name, &result.Description, &result.Photo,
		&result.VideoURL, &result.CourseID, &result.OwnerUID, &result.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListLessons возвращает список всех уроков с пагинацией.
func (s *Storage) ListLessons(ctx context.Context, limit, offset int) ([]*models.Lesson, error) {
	const op = "storage.ListLessons"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, photo, video_url, course_id, owner_uid, created_at
	          FROM lessons
	          ORDER BY id
	          LIMIT $1 OFFSET $2`
	return s.queryLessons(ctx, op, query, limit, offset)
}

// ListLessonsByCourse возвращает все уроки курса.
func (s *Storage) ListLessonsByCourse(ctx context.Context, courseID int64) ([]*models.Lesson, error) {
	const op = "storage.ListLessonsByCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, photo, video_url, course_id, owner_uid, created_at
	          FROM lessons
	          WHERE course_id = $1
	          ORDER BY id`
	return s.queryLessons(ctx, op, query, courseID)
}

func (s *Storage) queryLessons(ctx context.Context, op, query string, args ...any) ([]*models.Lesson, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []*models.Lesson
	for rows.Next() {
		var item models.Lesson
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Photo,
			&item.VideoURL, &item.CourseID, &item.OwnerUID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = rows.Close(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateLesson обновляет данные урока по его ID и возвращает количество изменённых строк.
// Владелец и курс урока при обновлении не меняются.
func (s *Storage) UpdateLesson(ctx context.Context, lesson models.Lesson) (int, error) {
	const op = "storage.UpdateLesson"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE lessons
	          SET name = $1, description = $2, photo = $3, video_url = $4
	          WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query,
		lesson.Name, lesson.Description, lesson.Photo, lesson.VideoURL, lesson.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveLesson удаляет урок по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveLesson(ctx context.Context, id int64) (int, error) {
	const op = "storage.RemoveLesson"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM lessons WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CountLessonsByCourse возвращает количество уроков курса.
func (s *Storage) CountLessonsByCourse(ctx context.Context, courseID int64) (int, error) {
	const op = "storage.CountLessonsByCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var count int
	query := `SELECT COUNT(*) FROM lessons WHERE course_id = $1`
	if err := s.DB.QueryRowContext(ctx, query, courseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
