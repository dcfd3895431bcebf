package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateUserRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request CreateUserRequest
		wantErr bool
	}{
		{
			name: "valid request",
			request: CreateUserRequest{
				Name:     "Jane Doe",
				Email:    "jane@example.com",
				Password: "securepass123",
			},
			wantErr: false,
		},
		{
			name: "missing name",
			request: CreateUserRequest{
				Email:    "jane@example.com",
				Password: "securepass123",
			},
			wantErr: true,
		},
		{
			name: "invalid email",
			request: CreateUserRequest{
				Name:     "Jane Doe",
				Email:    "not-an-email",
				Password: "securepass123",
			},
			wantErr: true,
		},
		{
			name: "password too short",
			request: CreateUserRequest{
				Name:     "Jane Doe",
				Email:    "jane@example.com",
				Password: "short",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoginRequest_Validation(t *testing.T) {
	valid := LoginRequest{Email: "jane@example.com", Password: "pw"}
	assert.NoError(t, valid.Validate())

	missing := LoginRequest{Email: "jane@example.com"}
	assert.Error(t, missing.Validate())
}

func TestUpdatePasswordRequest_Validation(t *testing.T) {
	valid := UpdatePasswordRequest{CurrentPassword: "oldpass", NewPassword: "newpassword1"}
	assert.NoError(t, valid.Validate())

	short := UpdatePasswordRequest{CurrentPassword: "oldpass", NewPassword: "short"}
	assert.Error(t, short.Validate())
}
