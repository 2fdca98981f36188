package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"guesthouse/shared/failure"
	"guesthouse/shared/validator"
)

type stayRequest struct {
	Name     string `json:"name"      validate:"required"`
	Email    string `json:"email"     validate:"required,email"`
	CheckIn  string `json:"check_in"  validate:"required,date"`
	Guests   int    `json:"guests"    validate:"gte=1,lte=2"`
	Status   string `json:"status"    validate:"omitempty,oneof=pending confirmed cancelled"`
	Nights   int    `json:"-"         validate:"omitempty,gt=0"`
}

func validStay() stayRequest {
	return stayRequest{
		Name:    "Ana",
		Email:   "ana@example.com",
		CheckIn: "2024-06-01",
		Guests:  2,
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*stayRequest)
		expectError string
	}{
		{name: "valid struct", mutate: func(*stayRequest) {}},
		{name: "missing name", mutate: func(r *stayRequest) { r.Name = "" }, expectError: "name is required"},
		{name: "invalid email", mutate: func(r *stayRequest) { r.Email = "ana" }, expectError: "email must be a valid email address"},
		{name: "bad date", mutate: func(r *stayRequest) { r.CheckIn = "01/06/2024" }, expectError: "check_in must be a date formatted as yyyy-mm-dd"},
		{name: "too many guests", mutate: func(r *stayRequest) { r.Guests = 3 }, expectError: "guests must be less than or equal to 2"},
		{name: "unknown status", mutate: func(r *stayRequest) { r.Status = "archived" }, expectError: "status must be one of pending confirmed cancelled"},
		{name: "hidden field keeps go name", mutate: func(r *stayRequest) { r.Nights = -1 }, expectError: "Nights must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validStay()
			tt.mutate(&data)

			err := validator.ValidateStruct(&data)

			if tt.expectError == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.expectError)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "valid date", field: "2024-12-31", tag: "date"},
		{name: "invalid date", field: "2024-13-01", tag: "date", expectError: true},
		{name: "valid email", field: "test@example.com", tag: "email"},
		{name: "invalid email", field: "invalid-email", tag: "email", expectError: true},
		{name: "number in range", field: 30, tag: "gte=1,lte=730"},
		{name: "number out of range", field: 731, tag: "gte=1,lte=730", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:     "valid JSON",
			jsonBody: `{"name":"Ana","email":"ana@example.com","check_in":"2024-06-01","guests":1}`,
		},
		{
			name:        "invalid field",
			jsonBody:    `{"name":"Ana","email":"ana","check_in":"2024-06-01","guests":1}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"name":"Ana","email":}`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data stayRequest

			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
