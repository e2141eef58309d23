package user

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinicdesk/internal/client"
	"github.com/jwalitptl/clinicdesk/internal/fakeapi"
	"github.com/jwalitptl/clinicdesk/internal/model"
)

func setup(t *testing.T) (*Service, *fakeapi.Server) {
	t.Helper()
	fake := fakeapi.New()
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)

	api, err := client.New(client.Config{BaseURL: srv.URL, Timeout: 2 * time.Second})
	require.NoError(t, err)
	return NewService(api, nil), fake
}

func TestCreate_ValidatesBeforeNetwork(t *testing.T) {
	svc, fake := setup(t)
	cases := []struct {
		name string
		req  model.CreateUserRequest
		want string
	}{
		{"missing name", model.CreateUserRequest{Email: "a@b.io", Password: "secret1", Role: model.UserRoleStaff}, "name: is required"},
		{"bad email", model.CreateUserRequest{Name: "A", Email: "nope", Password: "secret1", Role: model.UserRoleStaff}, "email: must be a valid email"},
		{"short password", model.CreateUserRequest{Name: "A", Email: "a@b.io", Password: "123", Role: model.UserRoleStaff}, "password: must be at least 6 characters long"},
		{"bad role", model.CreateUserRequest{Name: "A", Email: "a@b.io", Password: "secret1", Role: "janitor"}, "role: has an unsupported value"},
		{"blank name", model.CreateUserRequest{Name: "   ", Email: "a@b.io", Password: "secret1", Role: model.UserRoleStaff}, "name: is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := svc.Create(context.Background(), tc.req)
			assert.False(t, res.Success)
			assert.Contains(t, res.Error, tc.want)
		})
	}
	assert.Zero(t, fake.Calls("POST /users"))
}

func TestLifecycle(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	created := svc.Create(ctx, model.CreateUserRequest{Name: " Dr. Grey ", Email: "grey@clinic.io", Password: "secret1", Role: model.UserRoleDoctor})
	require.True(t, created.Success, created.Error)
	assert.Equal(t, "Dr. Grey", created.Data.Name)

	dup := svc.Create(ctx, model.CreateUserRequest{Name: "Other", Email: "grey@clinic.io", Password: "secret1", Role: model.UserRoleDoctor})
	assert.Equal(t, "Email already registered", dup.Error)

	role := model.UserRoleAdmin
	updated := svc.Update(ctx, created.Data.ID, model.UpdateUserRequest{Role: &role})
	require.True(t, updated.Success, updated.Error)
	assert.Equal(t, model.UserRoleAdmin, updated.Data.Role)

	short := "123"
	assert.Contains(t, svc.Update(ctx, created.Data.ID, model.UpdateUserRequest{Password: &short}).Error, "password")

	list := svc.List(ctx, model.UserFilter{SearchTerm: "grey"})
	require.True(t, list.Success)
	assert.Len(t, list.Data, 1)

	assert.True(t, svc.Delete(ctx, created.Data.ID).Success)
	missing := svc.Delete(ctx, created.Data.ID)
	assert.Equal(t, "User not found", missing.Error)
}
