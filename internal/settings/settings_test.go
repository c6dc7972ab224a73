package settings

import (
	"context"
	"encoding/json"
	"testing"

	"carebook/internal/model"
	"carebook/internal/validator"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client, validator.New()), mr
}

func TestStore_GetReturnsDefaultsWhenEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	settings, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)
	assert.Equal(t, model.MoodNeutral, settings.Wellness.DefaultMood)
	assert.Equal(t, "HSA Card", settings.Billing.DefaultPaymentMethod)
	for _, id := range model.DashboardWidgets {
		assert.True(t, settings.Dashboard.WidgetVisibility[id], "widget %s should default to visible", id)
	}
}

func TestStore_PutRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	settings := model.DefaultSettings()
	settings.Wellness.WaterIntakeGoalLiters = 3.0
	settings.Billing.DefaultPaymentMethod = "Visa"
	settings.Dashboard.WidgetVisibility["explore"] = false
	require.NoError(t, store.Put(ctx, settings))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got.Wellness.WaterIntakeGoalLiters)
	assert.Equal(t, "Visa", got.Billing.DefaultPaymentMethod)
	assert.False(t, got.Dashboard.WidgetVisibility["explore"])
}

func TestStore_PartialBlobFallsBackToDefaults(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	// A blob from an older build that only knows about billing, and only
	// some of its fields.
	require.NoError(t, mr.Set("appSettings", `{"billing":{"default_payment_method":"Cash"}}`))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Cash", got.Billing.DefaultPaymentMethod)
	assert.True(t, got.Billing.DueDateRemindersEnabled)
	assert.Equal(t, model.DefaultSettings().Wellness, got.Wellness)
	assert.True(t, got.Dashboard.WidgetVisibility["stats"])
}

func TestStore_UpdateSection(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		section string
		payload string
		check   func(t *testing.T, s model.AppSettings)
		wantErr error
	}{
		{
			name:    "wellness_partial_update_keeps_other_fields",
			section: "wellness",
			payload: `{"reminder_time":"21:30"}`,
			check: func(t *testing.T, s model.AppSettings) {
				assert.Equal(t, "21:30", s.Wellness.ReminderTime)
				assert.Equal(t, 2.5, s.Wellness.WaterIntakeGoalLiters)
			},
		},
		{
			name:    "dashboard_widget_hidden",
			section: "dashboard",
			payload: `{"widget_visibility":{"family":false}}`,
			check: func(t *testing.T, s model.AppSettings) {
				assert.False(t, s.Dashboard.WidgetVisibility["family"])
				assert.True(t, s.Dashboard.WidgetVisibility["stats"])
			},
		},
		{
			name:    "unknown_section_rejected",
			section: "appearance",
			payload: `{}`,
			wantErr: ErrUnknownSection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.UpdateSection(ctx, tt.section, json.RawMessage(tt.payload))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, got)

			persisted, err := store.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, got, persisted)
		})
	}
}

func TestStore_UpdateSectionValidatesPayload(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.UpdateSection(ctx, "wellness", json.RawMessage(`{"reminder_time":"25:00"}`))
	require.Error(t, err)

	_, err = store.UpdateSection(ctx, "wellness", json.RawMessage(`{"default_mood":"Grumpy"}`))
	require.Error(t, err)

	// Rejected payloads leave the stored blob untouched.
	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), got)
}

func TestStore_Reset(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	settings := model.DefaultSettings()
	settings.Wellness.SleepGoalHours = 9
	require.NoError(t, store.Put(ctx, settings))
	require.NoError(t, store.Reset(ctx))

	got, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), got)
}
