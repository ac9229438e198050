package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/domain"
	"github.com/automaten-pro/automaten-api/internal/domain/entity"
)

// memSettings is an in-memory SettingRepository for tests.
type memSettings struct {
	items map[string]*entity.Setting
}

func newMemSettings() *memSettings {
	return &memSettings{items: map[string]*entity.Setting{}}
}

func (m *memSettings) Get(key string) (*entity.Setting, error) {
	s, ok := m.items[key]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memSettings) GetGroup(group string) ([]*entity.Setting, error) {
	out := []*entity.Setting{}
	for _, s := range m.items {
		if s.Group == group {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSettings) Upsert(s *entity.Setting) error {
	cp := *s
	m.items[s.Key] = &cp
	return nil
}

func TestPutAcceptsEveryGroup(t *testing.T) {
	repo := newMemSettings()
	uc := NewSettingsUseCase(repo)

	groups := []string{
		entity.SettingGroupGeneral,
		entity.SettingGroupEmail,
		entity.SettingGroupTax,
		entity.SettingGroupMonitoring,
		entity.SettingGroupScanner,
		entity.SettingGroupPerformance,
	}
	for _, group := range groups {
		_, err := uc.Put(context.Background(), dto.PutSettingRequest{
			Key: group + ".sample", Value: "1", Group: group,
		})
		require.NoError(t, err, "group %s", group)
	}

	out, err := uc.GetGroup(context.Background(), entity.SettingGroupPerformance)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "performance.sample", out[0].Key)
}

func TestPutRejectsUnknownGroup(t *testing.T) {
	uc := NewSettingsUseCase(newMemSettings())

	_, err := uc.Put(context.Background(), dto.PutSettingRequest{
		Key: "x", Value: "1", Group: "misc",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION", domain.CodeOf(err))
}

func TestTypedGettersParseAndFallBack(t *testing.T) {
	repo := newMemSettings()
	uc := NewSettingsUseCase(repo)

	require.NoError(t, repo.Upsert(&entity.Setting{Key: "tax.rate", Value: "0.07", Group: entity.SettingGroupTax}))
	require.NoError(t, repo.Upsert(&entity.Setting{Key: "report.expiry_days", Value: "14", Group: entity.SettingGroupMonitoring}))
	require.NoError(t, repo.Upsert(&entity.Setting{Key: "email.enabled", Value: "false", Group: entity.SettingGroupEmail}))
	require.NoError(t, repo.Upsert(&entity.Setting{Key: "email.report_to", Value: "ops@example.com", Group: entity.SettingGroupEmail}))
	require.NoError(t, repo.Upsert(&entity.Setting{Key: "broken.int", Value: "a lot", Group: entity.SettingGroupGeneral}))

	assert.True(t, uc.GetDecimal("tax.rate", decimal.NewFromFloat(0.19)).Equal(decimal.NewFromFloat(0.07)))
	assert.Equal(t, 14, uc.GetInt("report.expiry_days", 7))
	assert.False(t, uc.GetBool("email.enabled", true))
	assert.Equal(t, "ops@example.com", uc.GetString("email.report_to", "owner@example.com"))

	// absent or unparseable values fall back to the default
	assert.Equal(t, 7, uc.GetInt("broken.int", 7))
	assert.Equal(t, 5, uc.GetInt("missing", 5))
	assert.True(t, uc.GetDecimal("missing", decimal.NewFromInt(50)).Equal(decimal.NewFromInt(50)))
}
