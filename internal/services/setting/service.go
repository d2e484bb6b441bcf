package setting

import (
	"context"
	"fmt"

	"menu-system/internal/apperrors"
	"menu-system/internal/logger"
	"menu-system/internal/models"
	"menu-system/internal/validation"
)

// Repo is the storage contract the settings service depends on.
type Repo interface {
	Upsert(ctx context.Context, setting models.Setting) error
	FindByKey(ctx context.Context, key string) (*models.Setting, error)
	FindAll(ctx context.Context) ([]models.Setting, error)
	Delete(ctx context.Context, key string) error
}

// Service orchestrates the flat key/value settings store.
type Service struct {
	repo   Repo
	rules  *validation.BusinessRuleValidator
	logger *logger.Logger
}

// NewService creates a settings service.
func NewService(repo Repo, rules *validation.BusinessRuleValidator, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		rules:  rules,
		logger: log,
	}
}

// Upsert validates and writes a setting, creating or replacing by key.
func (s *Service) Upsert(ctx context.Context, req models.UpsertSettingRequest) (models.SettingResponse, error) {
	if err := req.Validate(); err != nil {
		return models.SettingResponse{}, err
	}

	setting, err := models.NewSetting(req.Key, req.Value, req.Type)
	if err != nil {
		return models.SettingResponse{}, err
	}
	if err := s.rules.SettingValueMatchesType(setting.Value, setting.Type); err != nil {
		return models.SettingResponse{}, err
	}

	if err := s.repo.Upsert(ctx, setting); err != nil {
		return models.SettingResponse{}, fmt.Errorf("upsert setting: %w", err)
	}
	return models.NewSettingResponse(setting), nil
}

// Get returns one setting or a NotFoundError.
func (s *Service) Get(ctx context.Context, key string) (models.SettingResponse, error) {
	setting, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return models.SettingResponse{}, fmt.Errorf("find setting %q: %w", key, err)
	}
	if setting == nil {
		return models.SettingResponse{}, apperrors.NewNotFound("setting", key)
	}
	return models.NewSettingResponse(*setting), nil
}

// List returns all settings ordered by key.
func (s *Service) List(ctx context.Context) ([]models.SettingResponse, error) {
	settings, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	responses := make([]models.SettingResponse, 0, len(settings))
	for _, setting := range settings {
		responses = append(responses, models.NewSettingResponse(setting))
	}
	return responses, nil
}

// Delete removes the setting by key.
func (s *Service) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}
