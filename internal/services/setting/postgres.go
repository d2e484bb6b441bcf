package setting

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"menu-system/internal/apperrors"
	"menu-system/internal/database"
	"menu-system/internal/logger"
	"menu-system/internal/models"
)

// Repository persists settings in PostgreSQL.
type Repository struct {
	db     *database.DB
	logger *logger.Logger
}

// NewRepository creates a settings repository.
func NewRepository(db *database.DB, log *logger.Logger) *Repository {
	return &Repository{db: db, logger: log}
}

// Upsert writes the setting, inserting or replacing by key.
func (r *Repository) Upsert(ctx context.Context, setting models.Setting) error {
	err := r.db.Exec(ctx, database.UpsertSettingSQL, setting.Key, setting.Value, string(setting.Type))
	if err != nil {
		return fmt.Errorf("upsert setting %q: %w", setting.Key, err)
	}
	return nil
}

// FindByKey returns the setting or (nil, nil) when the key is absent.
func (r *Repository) FindByKey(ctx context.Context, key string) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.QueryRow(ctx, database.GetSettingByKeySQL, key).
		Scan(&setting.Key, &setting.Value, &setting.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query setting %q: %w", key, err)
	}
	return &setting, nil
}

// FindAll returns all settings ordered by key.
func (r *Repository) FindAll(ctx context.Context) ([]models.Setting, error) {
	rows, err := r.db.Query(ctx, database.GetAllSettingsSQL)
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()

	var settings []models.Setting
	for rows.Next() {
		var setting models.Setting
		if err := rows.Scan(&setting.Key, &setting.Value, &setting.Type); err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}
	return settings, rows.Err()
}

// Delete removes the setting by key.
func (r *Repository) Delete(ctx context.Context, key string) error {
	tag, err := r.db.ExecTag(ctx, database.DeleteSettingSQL, key)
	if err != nil {
		return fmt.Errorf("delete setting %q: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("setting", key)
	}
	return nil
}
