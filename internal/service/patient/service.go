// Package patient runs one intake session: a patient draft, the custom
// template portion, client-side validation and submission.
package patient

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/jwalitptl/clinicdesk/internal/client"
	"github.com/jwalitptl/clinicdesk/internal/formschema"
	"github.com/jwalitptl/clinicdesk/internal/model"
	"github.com/jwalitptl/clinicdesk/internal/patientform"
	"github.com/jwalitptl/clinicdesk/internal/service"
	apperrors "github.com/jwalitptl/clinicdesk/pkg/errors"
	"github.com/jwalitptl/clinicdesk/pkg/logger"
	"github.com/jwalitptl/clinicdesk/pkg/validator"
)

const (
	msgLoad   = "Failed to load patient"
	msgCreate = "Failed to create patient"
	msgUpdate = "Failed to update patient"

	maxAge = 150
)

// personalRules are the client-side checks run before a draft is sent.
type personalRules struct {
	Name           string `json:"name" validate:"required"`
	Phone          string `json:"phone" validate:"omitempty,phone"`
	CompanionPhone string `json:"companionPhone" validate:"omitempty,phone"`
}

// Session is one create or edit flow. It is safe for concurrent use.
type Session struct {
	api       client.PatientAPI
	templates client.TemplateAPI
	checker   validator.Validator
	log       *logger.Logger
	store     *patientform.Store

	mu       sync.RWMutex
	id       string
	template *model.Template
	values   formschema.Values
	status   string
	audit    model.Audit
}

// NewSession starts a create-mode session with an empty draft. templates may
// be nil when no custom template is used.
func NewSession(api client.PatientAPI, templates client.TemplateAPI, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{
		api:       api,
		templates: templates,
		checker:   validator.New(),
		log:       log.With("intake-session"),
		store:     patientform.New(),
		values:    formschema.Values{},
	}
}

// Store exposes the draft for editing.
func (s *Session) Store() *patientform.Store {
	return s.store
}

// ID returns the record id in edit mode and "" in create mode.
func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// Template returns the selected custom template, if any.
func (s *Session) Template() (model.Template, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.template == nil {
		return model.Template{}, false
	}
	return s.template.Clone(), true
}

// Load switches the session to edit mode for record id. The draft is
// replaced wholesale with the server copy.
func (s *Session) Load(ctx context.Context, id string) service.Result[model.PatientRecord] {
	rec, err := s.api.GetPatient(ctx, id)
	if err != nil {
		return service.Failed[model.PatientRecord](err, msgLoad)
	}

	var tpl *model.Template
	if rec.TemplateID != "" && s.templates != nil {
		t, err := s.templates.GetTemplate(ctx, rec.TemplateID)
		if err != nil {
			return service.Failed[model.PatientRecord](err, msgLoad)
		}
		tpl = t
	}

	s.store.Initialize(rec.PatientForm)

	s.mu.Lock()
	s.id = rec.ID
	s.template = tpl
	s.status = rec.Status
	s.audit = rec.Audit
	s.values = formschema.Values{}
	if tpl != nil {
		s.values = formschema.FromPayload(*tpl, rec.CustomFields)
	}
	s.mu.Unlock()

	s.log.Debug("patient loaded", "id", rec.ID, "template", rec.TemplateID)
	return service.OK(*rec)
}

// SelectTemplate attaches t and seeds its values and default status.
func (s *Session) SelectTemplate(t model.Template) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := t.Clone()
	s.template = &c
	s.values = formschema.NewValues(c)
	s.status = ""
	if def, ok := c.DefaultStatus(); ok {
		s.status = def.Name
	}
}

// SetValue records raw input for a custom field.
func (s *Session) SetValue(field, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[field] = raw
}

// Values returns a copy of the custom field input.
func (s *Session) Values() formschema.Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(formschema.Values, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// SetStatus picks one of the template's status options by name.
func (s *Session) SetStatus(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.template == nil {
		return apperrors.NewBadRequest("no template selected", nil)
	}
	for _, st := range s.template.StatusOptions {
		if st.Name == name {
			s.status = name
			return nil
		}
	}
	return apperrors.NewBadRequest("unknown status "+strconv.Quote(name), nil)
}

func (s *Session) Status() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Validate runs every client-side check. The result is nil or
// validator.FieldErrors; custom field errors are keyed by field name.
func (s *Session) Validate() error {
	info := s.store.PersonalInfo().State()
	errs := validator.FieldErrors{}

	rules := personalRules{
		Name:           strings.TrimSpace(info.Name),
		Phone:          strings.TrimSpace(info.Phone),
		CompanionPhone: strings.TrimSpace(info.CompanionPhone),
	}
	if err := s.checker.Validate(rules); err != nil {
		fe, ok := err.(validator.FieldErrors)
		if !ok {
			return err
		}
		for k, v := range fe {
			errs.Add(k, v)
		}
	}

	if age := strings.TrimSpace(info.Age); age != "" {
		n, err := strconv.Atoi(age)
		if err != nil {
			errs.Add("age", "must be a whole number")
		} else if err := s.checker.ValidateField("age", n, "gte=0,lte="+strconv.Itoa(maxAge)); err != nil {
			errs.Add("age", "must be between 0 and "+strconv.Itoa(maxAge))
		}
	}

	s.mu.RLock()
	tpl, values := s.template, s.values
	if tpl != nil {
		if err := values.Validate(*tpl); err != nil {
			if fe, ok := err.(validator.FieldErrors); ok {
				for k, v := range fe {
					errs.Add(k, v)
				}
			}
		}
	}
	s.mu.RUnlock()

	return errs.Err()
}

// Record assembles the submission payload from the current draft.
func (s *Session) Record() (model.PatientRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec := model.PatientRecord{
		ID:          s.id,
		PatientForm: s.store.Snapshot(),
		Status:      s.status,
		Audit:       s.audit,
	}
	if s.template != nil {
		payload, err := s.values.Payload(*s.template)
		if err != nil {
			return model.PatientRecord{}, apperrors.NewBadRequest("invalid custom field input", err)
		}
		rec.TemplateID = s.template.ID
		rec.CustomFields = payload
	}
	return rec, nil
}

// Submit validates and sends the draft: create in create mode, update in
// edit mode. On failure the draft is left as it was; a validation failure
// never reaches the network.
func (s *Session) Submit(ctx context.Context) service.Result[model.PatientRecord] {
	id := s.ID()
	fallback := msgCreate
	if id != "" {
		fallback = msgUpdate
	}

	if err := s.Validate(); err != nil {
		return service.Result[model.PatientRecord]{Error: err.Error()}
	}
	rec, err := s.Record()
	if err != nil {
		return service.Failed[model.PatientRecord](err, fallback)
	}

	var saved *model.PatientRecord
	if id == "" {
		saved, err = s.api.CreatePatient(ctx, rec)
	} else {
		saved, err = s.api.UpdatePatient(ctx, id, rec)
	}
	if err != nil {
		s.log.Warn(err, "patient submit failed", "id", id)
		return service.Failed[model.PatientRecord](err, fallback)
	}

	s.mu.Lock()
	s.id = saved.ID
	s.audit = saved.Audit
	s.mu.Unlock()
	s.log.Info("patient saved", "id", saved.ID)
	return service.OK(*saved)
}
