package fakeapi

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinicdesk/internal/model"
)

// SeedTemplates replaces the stored templates.
func (s *Server) SeedTemplates(ts ...model.Template) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates = s.templates[:0]
	for _, t := range ts {
		if t.ID == "" {
			t.ID = s.nextID("tpl")
		}
		s.templates = append(s.templates, t.Clone())
	}
}

// Templates returns a copy of the stored templates.
func (s *Server) Templates() []model.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Template, len(s.templates))
	for i, t := range s.templates {
		out[i] = t.Clone()
	}
	return out
}

// Patients returns the stored patient records keyed by id.
func (s *Server) Patients() map[string]model.PatientRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]model.PatientRecord, len(s.patients))
	for _, id := range sortedKeys(s.patients) {
		out[id] = s.patients[id]
	}
	return out
}

// SeedPatient stores rec under its id.
func (s *Server) SeedPatient(rec model.PatientRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patients[rec.ID] = rec
}

// SeedUsers replaces the stored users.
func (s *Server) SeedUsers(us ...model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append([]model.User(nil), us...)
}

func (s *Server) templateIndex(id string) int {
	return slices.IndexFunc(s.templates, func(t model.Template) bool { return t.ID == id })
}

func (s *Server) listTemplates(c *gin.Context) {
	ok(c, http.StatusOK, s.Templates())
}

func (s *Server) getTemplate(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.templateIndex(c.Param("id"))
	if i < 0 {
		fail(c, http.StatusNotFound, "Template not found")
		return
	}
	ok(c, http.StatusOK, s.templates[i])
}

func (s *Server) createTemplate(c *gin.Context) {
	var in model.TemplateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		fail(c, http.StatusBadRequest, "Template name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	t := fromInput(in)
	t.ID = s.nextID("tpl")
	t.CreatedBy = "fake-admin"
	t.CreatedAt, t.UpdatedAt = &now, &now
	s.templates = append(s.templates, t)
	ok(c, http.StatusCreated, t)
}

func (s *Server) updateTemplate(c *gin.Context) {
	var in model.TemplateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.templateIndex(c.Param("id"))
	if i < 0 {
		fail(c, http.StatusNotFound, "Template not found")
		return
	}
	now := time.Now().UTC()
	t := fromInput(in)
	t.ID = s.templates[i].ID
	t.CreatedBy = s.templates[i].CreatedBy
	t.CreatedAt, t.UpdatedAt = s.templates[i].CreatedAt, &now
	s.templates[i] = t
	ok(c, http.StatusOK, t)
}

func (s *Server) deleteTemplate(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.templateIndex(c.Param("id"))
	if i < 0 {
		fail(c, http.StatusNotFound, "Template not found")
		return
	}
	s.templates = slices.Delete(s.templates, i, i+1)
	ok(c, http.StatusOK, nil)
}

func fromInput(in model.TemplateInput) model.Template {
	return model.Template{
		Name:          in.Name,
		Description:   in.Description,
		Sections:      in.Sections,
		StatusOptions: in.StatusOptions,
		IsVisible:     in.IsVisible,
		IsDefault:     in.IsDefault,
	}.Clone()
}

func (s *Server) getPatient(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, found := s.patients[c.Param("id")]
	if !found {
		fail(c, http.StatusNotFound, "Patient not found")
		return
	}
	ok(c, http.StatusOK, rec)
}

func (s *Server) createPatient(c *gin.Context) {
	var rec model.PatientRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	if rec.PersonalInfo == nil || strings.TrimSpace(rec.PersonalInfo.Name) == "" {
		fail(c, http.StatusBadRequest, "Patient name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	rec.ID = s.nextID("pat")
	rec.CreatedAt, rec.UpdatedAt = &now, &now
	s.patients[rec.ID] = rec
	ok(c, http.StatusCreated, rec)
}

func (s *Server) updatePatient(c *gin.Context) {
	var rec model.PatientRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := c.Param("id")
	prev, found := s.patients[id]
	if !found {
		fail(c, http.StatusNotFound, "Patient not found")
		return
	}
	now := time.Now().UTC()
	rec.ID = id
	rec.CreatedAt, rec.UpdatedAt = prev.CreatedAt, &now
	s.patients[id] = rec
	ok(c, http.StatusOK, rec)
}

func (s *Server) exportPatients(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	s.mu.Lock()
	body, ct := s.export, s.exportCT
	s.mu.Unlock()

	c.Header("Content-Disposition", `attachment; filename="patients.`+format+`"`)
	c.Data(http.StatusOK, ct, body)
}

func (s *Server) listUsers(c *gin.Context) {
	term := strings.ToLower(c.Query("search"))
	role := c.Query("role")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.User{}
	for _, u := range s.users {
		if role != "" && u.Role != role {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(u.Name+" "+u.Email), term) {
			continue
		}
		out = append(out, u)
	}
	ok(c, http.StatusOK, out)
}

func (s *Server) createUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, req.Email) {
			fail(c, http.StatusConflict, "Email already registered")
			return
		}
	}
	now := time.Now().UTC()
	u := model.User{
		ID:     s.nextID("usr"),
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		Active: true,
		Audit:  model.Audit{CreatedAt: &now, UpdatedAt: &now},
	}
	s.users = append(s.users, u)
	ok(c, http.StatusCreated, u)
}

func (s *Server) updateUser(c *gin.Context) {
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.users, func(u model.User) bool { return u.ID == c.Param("id") })
	if i < 0 {
		fail(c, http.StatusNotFound, "User not found")
		return
	}
	u := &s.users[i]
	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.Active != nil {
		u.Active = *req.Active
	}
	now := time.Now().UTC()
	u.UpdatedAt = &now
	ok(c, http.StatusOK, *u)
}

func (s *Server) deleteUser(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.users, func(u model.User) bool { return u.ID == c.Param("id") })
	if i < 0 {
		fail(c, http.StatusNotFound, "User not found")
		return
	}
	s.users = slices.Delete(s.users, i, i+1)
	ok(c, http.StatusOK, nil)
}
