package reader

import (
	"context"
	"testing"

	"libraryapi/internal/apperr"
	"libraryapi/internal/platform/crypto"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"", RoleReader, false},
		{"reader", RoleReader, false},
		{"admin", RoleAdmin, false},
		{"ADMIN", "", true},
		{"librarian", "", true},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidRole, tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestReader_CanManage(t *testing.T) {
	owner := Reader{ID: 1, Role: RoleReader}
	admin := Reader{ID: 2, Role: RoleAdmin}

	assert.True(t, owner.CanManage(1))
	assert.False(t, owner.CanManage(3))
	assert.True(t, admin.CanManage(1))
}

func TestContext_RoundTrip(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	ctx := NewContext(context.Background(), Reader{ID: 9, Email: "a@example.com"})
	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(9), got.ID)
}

func TestService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)

	t.Run("defaults to reader role and normalizes email", func(t *testing.T) {
		service := NewService(mockRepo, true, nil)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *Reader) error {
			assert.Equal(t, "ada@example.com", r.Email)
			assert.Equal(t, RoleReader, r.Role)
			assert.True(t, crypto.VerifyPassword(r.PasswordHash, "s3cret-pass"))
			r.ID = 1
			return nil
		})

		got, err := service.Register(context.Background(), RegisterCommand{
			Name:     " Ada ",
			Email:    " Ada@Example.com ",
			Password: "s3cret-pass",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.ID)
		assert.Equal(t, "Ada", got.Name)
	})

	t.Run("duplicate email", func(t *testing.T) {
		service := NewService(mockRepo, true, nil)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ErrEmailTaken)

		_, err := service.Register(context.Background(), RegisterCommand{Name: "A", Email: "a@example.com", Password: "password1"})
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("admin registration allowed", func(t *testing.T) {
		service := NewService(mockRepo, true, nil)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		got, err := service.Register(context.Background(), RegisterCommand{Name: "B", Email: "b@example.com", Password: "password1", Role: RoleAdmin})
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, got.Role)
	})

	t.Run("admin registration disabled", func(t *testing.T) {
		service := NewService(mockRepo, false, nil)

		_, err := service.Register(context.Background(), RegisterCommand{Name: "B", Email: "b@example.com", Password: "password1", Role: RoleAdmin})
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo, true, nil)

	t.Run("rehashes password and normalizes email", func(t *testing.T) {
		mockRepo.EXPECT().Update(gomock.Any(), int64(5), gomock.Any()).DoAndReturn(func(_ context.Context, _ int64, ch Changes) (Reader, error) {
			require.NotNil(t, ch.Email)
			assert.Equal(t, "new@example.com", *ch.Email)
			require.NotNil(t, ch.PasswordHash)
			assert.True(t, crypto.VerifyPassword(*ch.PasswordHash, "new-password"))
			assert.Nil(t, ch.Name)
			return Reader{ID: 5, Email: *ch.Email}, nil
		})

		got, err := service.Update(context.Background(), 5, UpdateCommand{
			Email:    ptr("NEW@example.com"),
			Password: ptr("new-password"),
		})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", got.Email)
	})

	t.Run("empty update returns current record", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(5)).Return(Reader{ID: 5, Name: "Ada"}, nil)

		got, err := service.Update(context.Background(), 5, UpdateCommand{})
		require.NoError(t, err)
		assert.Equal(t, "Ada", got.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().Update(gomock.Any(), int64(99), gomock.Any()).Return(Reader{}, ErrNotFound)

		_, err := service.Update(context.Background(), 99, UpdateCommand{Name: ptr("X")})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
