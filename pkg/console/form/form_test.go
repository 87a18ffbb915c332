package form

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventForm struct {
	Title       string
	Description string
	StartDate   string
	EndDate     string
	StartTime   string
	EndTime     string
	MapURL      string
	Capacity    float64
}

func eventFormConfig() Config[eventForm] {
	return Config[eventForm]{
		Empty: func() eventForm { return eventForm{Capacity: 1} },
		Fields: map[string][]Rule[eventForm]{
			"title": {
				Required[eventForm](func(v eventForm) string { return v.Title }, "Event title is required"),
				MinLen[eventForm](func(v eventForm) string { return v.Title }, 3, MinLenMessage("Event title", 3)),
			},
			"description": {
				Required[eventForm](func(v eventForm) string { return v.Description }, "Event description is required"),
				MinLen[eventForm](func(v eventForm) string { return v.Description }, 10, MinLenMessage("Event description", 10)),
			},
			"endDate": {
				DateOrder[eventForm](
					func(v eventForm) string { return v.StartDate },
					func(v eventForm) string { return v.EndDate },
					"End date must be after start date",
				),
			},
			"endTime": {
				TimeOrder[eventForm](
					func(v eventForm) string { return v.StartTime },
					func(v eventForm) string { return v.EndTime },
					"End time must be after start time",
				),
			},
			"mapUrl": {
				URL[eventForm](func(v eventForm) string { return v.MapURL }, "Map URL must be a valid link"),
			},
			"capacity": {
				GreaterThan[eventForm](func(v eventForm) float64 { return v.Capacity }, 0, "Capacity must be greater than 0"),
			},
		},
	}
}

func validEventForm() eventForm {
	return eventForm{
		Title:       "Annual Expo",
		Description: "Two day exhibition with partner booths",
		StartDate:   "2025-03-01",
		EndDate:     "2025-03-02",
		StartTime:   "09:00",
		EndTime:     "18:00",
		MapURL:      "https://maps.example.com/venue",
		Capacity:    250,
	}
}

func TestUntouchedFieldsNeverShowErrors(t *testing.T) {
	f := New(eventFormConfig())
	f.Open(nil)

	// Every field is empty or invalid, but nothing was touched yet.
	assert.True(t, f.Validate("title"))
	assert.True(t, f.Validate("description"))
	assert.Empty(t, f.Error("title"))

	f.Touch("title")
	assert.False(t, f.Validate("title"))
	assert.Equal(t, "Event title is required", f.Error("title"))
	assert.Empty(t, f.Error("description"))
}

func TestTouchRecomputesOnlyThatField(t *testing.T) {
	f := New(eventFormConfig())
	f.Open(nil)

	f.Touch("description")
	assert.Equal(t, "Event description is required", f.Error("description"))
	assert.Empty(t, f.Error("title"))
	assert.True(t, f.Validate("title"))
}

func TestOpenResetsStaleState(t *testing.T) {
	f := New(eventFormConfig())
	f.Open(nil)
	f.Touch("title")
	require.NotEmpty(t, f.Error("title"))
	f.Close()

	f.Open(nil)
	assert.Empty(t, f.Errors())
	assert.True(t, f.Validate("title"))
}

func TestOpenWithRecordSelectsEditMode(t *testing.T) {
	f := New(eventFormConfig())
	record := validEventForm()
	f.Open(&record)

	assert.True(t, f.IsEditing())
	assert.Equal(t, "Annual Expo", f.Values().Title)

	f.Open(nil)
	assert.False(t, f.IsEditing())
	assert.Equal(t, float64(1), f.Values().Capacity)
}

func TestValidateAllTouchesEverything(t *testing.T) {
	f := New(eventFormConfig())
	f.Open(nil)

	assert.False(t, f.ValidateAll())
	assert.Equal(t, "Event title is required", f.Error("title"))
	assert.Equal(t, "Event description is required", f.Error("description"))

	f.SetValues(validEventForm())
	assert.True(t, f.ValidateAll())
	assert.Empty(t, f.Errors())
}

func TestSubmitBlocksWithoutNetworkCallOnInvalidForm(t *testing.T) {
	f := New(eventFormConfig())
	f.Open(nil)

	called := false
	err := f.Submit(context.Background(), func(context.Context, eventForm) error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, ErrValidationFailed)
	assert.False(t, called)
	assert.True(t, f.IsOpen())
	assert.Equal(t, "Event title is required", f.Error("title"))
}

func TestSubmitKeepsFormOpenOnActionFailure(t *testing.T) {
	f := New(eventFormConfig())
	f.Open(nil)
	f.SetValues(validEventForm())

	serverErr := errors.New("title already exists")
	err := f.Submit(context.Background(), func(context.Context, eventForm) error {
		return serverErr
	})

	require.ErrorIs(t, err, serverErr)
	assert.True(t, f.IsOpen())
	assert.Equal(t, "Annual Expo", f.Values().Title)
}

func TestSubmitClosesOnSuccess(t *testing.T) {
	f := New(eventFormConfig())
	f.Open(nil)
	f.SetValues(validEventForm())

	var submitted eventForm
	err := f.Submit(context.Background(), func(_ context.Context, v eventForm) error {
		submitted = v
		return nil
	})

	require.NoError(t, err)
	assert.False(t, f.IsOpen())
	assert.Equal(t, "Annual Expo", submitted.Title)
}

func TestSubmitOnClosedForm(t *testing.T) {
	f := New(eventFormConfig())
	err := f.Submit(context.Background(), func(context.Context, eventForm) error { return nil })
	require.ErrorIs(t, err, ErrNotOpen)
}

func TestNegativeNumericValueFailsRule(t *testing.T) {
	f := New(eventFormConfig())
	record := validEventForm()
	record.Capacity = -5
	f.Open(&record)

	called := false
	err := f.Submit(context.Background(), func(context.Context, eventForm) error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, ErrValidationFailed)
	assert.False(t, called)
	assert.True(t, f.IsOpen())
	assert.Equal(t, "Capacity must be greater than 0", f.Error("capacity"))
}
