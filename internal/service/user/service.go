package user

import (
	"context"
	"strings"

	"github.com/jwalitptl/clinicdesk/internal/client"
	"github.com/jwalitptl/clinicdesk/internal/model"
	"github.com/jwalitptl/clinicdesk/internal/service"
	"github.com/jwalitptl/clinicdesk/pkg/logger"
	"github.com/jwalitptl/clinicdesk/pkg/validator"
)

const (
	msgList   = "Failed to fetch users"
	msgCreate = "Failed to create user"
	msgUpdate = "Failed to update user"
	msgDelete = "Failed to delete user"
)

type UserServicer interface {
	List(ctx context.Context, filter model.UserFilter) service.Result[[]model.User]
	Create(ctx context.Context, req model.CreateUserRequest) service.Result[model.User]
	Update(ctx context.Context, id string, req model.UpdateUserRequest) service.Result[model.User]
	Delete(ctx context.Context, id string) service.Result[struct{}]
}

type Service struct {
	api       client.UserAPI
	validator validator.Validator
	log       *logger.Logger
}

var _ UserServicer = (*Service)(nil)

func NewService(api client.UserAPI, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{api: api, validator: validator.New(), log: log.With("user-service")}
}

func (s *Service) List(ctx context.Context, filter model.UserFilter) service.Result[[]model.User] {
	users, err := s.api.ListUsers(ctx, filter)
	if err != nil {
		return service.Failed[[]model.User](err, msgList)
	}
	return service.OK(users)
}

// Create checks the request locally before anything is sent.
func (s *Service) Create(ctx context.Context, req model.CreateUserRequest) service.Result[model.User] {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validator.Validate(req); err != nil {
		return service.Result[model.User]{Error: err.Error()}
	}

	u, err := s.api.CreateUser(ctx, req)
	if err != nil {
		return service.Failed[model.User](err, msgCreate)
	}
	s.log.Info("user created", "id", u.ID, "role", u.Role)
	return service.OK(*u)
}

func (s *Service) Update(ctx context.Context, id string, req model.UpdateUserRequest) service.Result[model.User] {
	if err := s.validator.Validate(req); err != nil {
		return service.Result[model.User]{Error: err.Error()}
	}

	u, err := s.api.UpdateUser(ctx, id, req)
	if err != nil {
		return service.Failed[model.User](err, msgUpdate)
	}
	s.log.Info("user updated", "id", id)
	return service.OK(*u)
}

func (s *Service) Delete(ctx context.Context, id string) service.Result[struct{}] {
	if err := s.api.DeleteUser(ctx, id); err != nil {
		return service.Failed[struct{}](err, msgDelete)
	}
	s.log.Info("user deleted", "id", id)
	return service.OK(struct{}{})
}
