package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/domain"
	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

// SettingsUseCase reads and writes the key/value configuration store. Values
// are stored as strings; the typed getters parse and fall back to a default on
// missing or unparseable values.
type SettingsUseCase struct {
	settingRepo repository.SettingRepository
}

// NewSettingsUseCase builds the settings use case.
func NewSettingsUseCase(settingRepo repository.SettingRepository) *SettingsUseCase {
	return &SettingsUseCase{settingRepo: settingRepo}
}

var settingGroups = map[string]bool{
	entity.SettingGroupGeneral:     true,
	entity.SettingGroupEmail:       true,
	entity.SettingGroupTax:         true,
	entity.SettingGroupMonitoring:  true,
	entity.SettingGroupScanner:     true,
	entity.SettingGroupPerformance: true,
}

// Put upserts one setting.
func (uc *SettingsUseCase) Put(ctx context.Context, req dto.PutSettingRequest) (*dto.SettingResponse, error) {
	if req.Key == "" || !settingGroups[req.Group] {
		return nil, domain.ErrInvalidInput
	}
	setting := &entity.Setting{
		Key:       req.Key,
		Value:     req.Value,
		Group:     req.Group,
		UpdatedAt: time.Now(),
	}
	if err := uc.settingRepo.Upsert(setting); err != nil {
		return nil, err
	}
	return settingResponse(setting), nil
}

// Get loads one setting.
func (uc *SettingsUseCase) Get(ctx context.Context, key string) (*dto.SettingResponse, error) {
	setting, err := uc.settingRepo.Get(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, domain.ErrNotFound
	}
	return settingResponse(setting), nil
}

// GetGroup lists the settings of one group.
func (uc *SettingsUseCase) GetGroup(ctx context.Context, group string) ([]dto.SettingResponse, error) {
	if !settingGroups[group] {
		return nil, domain.ErrInvalidInput
	}
	settings, err := uc.settingRepo.GetGroup(group)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SettingResponse, 0, len(settings))
	for _, s := range settings {
		out = append(out, *settingResponse(s))
	}
	return out, nil
}

// GetString returns the raw value or def when the key is absent.
func (uc *SettingsUseCase) GetString(key, def string) string {
	setting, err := uc.settingRepo.Get(key)
	if err != nil || setting == nil {
		return def
	}
	return setting.Value
}

// GetInt parses the value as integer, falling back to def.
func (uc *SettingsUseCase) GetInt(key string, def int) int {
	setting, err := uc.settingRepo.Get(key)
	if err != nil || setting == nil {
		return def
	}
	n, err := strconv.Atoi(setting.Value)
	if err != nil {
		return def
	}
	return n
}

// GetBool parses the value as boolean, falling back to def.
func (uc *SettingsUseCase) GetBool(key string, def bool) bool {
	setting, err := uc.settingRepo.Get(key)
	if err != nil || setting == nil {
		return def
	}
	b, err := strconv.ParseBool(setting.Value)
	if err != nil {
		return def
	}
	return b
}

// GetDecimal parses the value as decimal, falling back to def.
func (uc *SettingsUseCase) GetDecimal(key string, def decimal.Decimal) decimal.Decimal {
	setting, err := uc.settingRepo.Get(key)
	if err != nil || setting == nil {
		return def
	}
	d, err := decimal.NewFromString(setting.Value)
	if err != nil {
		return def
	}
	return d
}

func settingResponse(s *entity.Setting) *dto.SettingResponse {
	return &dto.SettingResponse{
		Key:       s.Key,
		Value:     s.Value,
		Group:     s.Group,
		UpdatedAt: s.UpdatedAt,
	}
}
