package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsinnovation/hub-api/internal/models"
	"github.com/rsinnovation/hub-api/internal/models/dto"
)

func TestValidateEventRequestDefaultsStatus(t *testing.T) {
	status, err := validateEventRequest(dto.EventRequest{
		Title:       "Hackathon",
		Description: "A 48 hour build sprint.",
	})
	require.NoError(t, err)
	assert.Equal(t, models.EventUpcoming, status)

	status, err = validateEventRequest(dto.EventRequest{
		Title:       "Hackathon",
		Description: "A 48 hour build sprint.",
		Status:      "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, models.EventCompleted, status)

	_, err = validateEventRequest(dto.EventRequest{
		Title:       "Hackathon",
		Description: "A 48 hour build sprint.",
		Status:      "cancelled",
	})
	assert.Error(t, err)
}

func TestValidateProgramRequest(t *testing.T) {
	_, err := validateProgramRequest(dto.ProgramRequest{
		Title:       "Ab",
		Description: "Long enough description.",
		Category:    "courses",
	})
	assert.ErrorIs(t, err, errTitleTooShort)

	_, err = validateProgramRequest(dto.ProgramRequest{
		Title:       "Course",
		Description: "short",
		Category:    "courses",
	})
	assert.ErrorIs(t, err, errDescriptionTooShort)

	category, err := validateProgramRequest(dto.ProgramRequest{
		Title:       "Course",
		Description: "Long enough description.",
		Category:    "courses",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryCourses, category)
}
