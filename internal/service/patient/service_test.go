package patient

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinicdesk/internal/model"
	"github.com/jwalitptl/clinicdesk/internal/patientform"
	apperrors "github.com/jwalitptl/clinicdesk/pkg/errors"
	"github.com/jwalitptl/clinicdesk/pkg/validator"
)

// MockPatientAPI is a mock implementation of client.PatientAPI
type MockPatientAPI struct {
	mock.Mock
}

func (m *MockPatientAPI) GetPatient(ctx context.Context, id string) (*model.PatientRecord, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.PatientRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPatientAPI) CreatePatient(ctx context.Context, rec model.PatientRecord) (*model.PatientRecord, error) {
	args := m.Called(ctx, rec)
	if v := args.Get(0); v != nil {
		return v.(*model.PatientRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPatientAPI) UpdatePatient(ctx context.Context, id string, rec model.PatientRecord) (*model.PatientRecord, error) {
	args := m.Called(ctx, id, rec)
	if v := args.Get(0); v != nil {
		return v.(*model.PatientRecord), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTemplateAPI is a mock implementation of client.TemplateAPI
type MockTemplateAPI struct {
	mock.Mock
}

func (m *MockTemplateAPI) ListTemplates(ctx context.Context) ([]model.Template, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Template), args.Error(1)
}

func (m *MockTemplateAPI) GetTemplate(ctx context.Context, id string) (*model.Template, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.Template), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTemplateAPI) CreateTemplate(ctx context.Context, in model.TemplateInput) (*model.Template, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *MockTemplateAPI) UpdateTemplate(ctx context.Context, id string, in model.TemplateInput) (*model.Template, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(*model.Template), args.Error(1)
}

func (m *MockTemplateAPI) DeleteTemplate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var intakeTemplate = model.Template{
	ID:   "tpl-1",
	Name: "Cardiology",
	Sections: []model.Section{{
		Name: "history", Label: "History",
		Fields: []model.Field{
			{Name: "pain_score", Label: "Pain", Type: model.FieldNumber, Required: true},
			{Name: "smoker", Label: "Smoker", Type: model.FieldBoolean, Default: false, Order: 1},
		},
	}},
	StatusOptions: []model.PatientStatusOption{
		{Name: "waiting", Label: "Waiting", Color: "#cccccc", IsDefault: true},
		{Name: "seen", Label: "Seen", Color: "#00aa00"},
	},
}

func fieldErrors(t *testing.T, err error) validator.FieldErrors {
	t.Helper()
	var fe validator.FieldErrors
	require.ErrorAs(t, err, &fe)
	return fe
}

func TestValidate_PersonalInfo(t *testing.T) {
	s := NewSession(&MockPatientAPI{}, nil, nil)

	fe := fieldErrors(t, s.Validate())
	assert.Equal(t, "is required", fe["name"])

	pi := s.Store().PersonalInfo()
	pi.Update(patientform.PersonalName, "Jane")
	pi.Update(patientform.PersonalAge, "151")
	pi.Update(patientform.PersonalPhone, "call me")
	fe = fieldErrors(t, s.Validate())
	assert.NotContains(t, fe, "name")
	assert.Equal(t, "must be between 0 and 150", fe["age"])
	assert.Equal(t, "must be a valid phone number", fe["phone"])

	pi.Update(patientform.PersonalAge, "forty")
	fe = fieldErrors(t, s.Validate())
	assert.Equal(t, "must be a whole number", fe["age"])

	pi.Update(patientform.PersonalAge, "0")
	pi.Update(patientform.PersonalPhone, "+20 100 555 1234")
	assert.NoError(t, s.Validate())

	pi.Update(patientform.PersonalAge, "")
	assert.NoError(t, s.Validate(), "age is optional")
}

func TestSubmit_ValidationNeverReachesNetwork(t *testing.T) {
	api := &MockPatientAPI{}
	s := NewSession(api, nil, nil)

	res := s.Submit(context.Background())
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "name: is required")
	api.AssertNotCalled(t, "CreatePatient", mock.Anything, mock.Anything)
}

func TestSubmit_CreateWithTemplate(t *testing.T) {
	api := &MockPatientAPI{}
	s := NewSession(api, nil, nil)
	s.SelectTemplate(intakeTemplate)
	assert.Equal(t, "waiting", s.Status())

	s.Store().PersonalInfo().Update(patientform.PersonalName, "Jane")
	s.Store().VitalSigns().Update(patientform.VitalIntake, "500")
	s.Store().VitalSigns().Update(patientform.VitalUOP, "200")

	fe := fieldErrors(t, s.Validate())
	assert.Equal(t, "is required", fe["pain_score"])

	s.SetValue("pain_score", "6")
	require.NoError(t, s.SetStatus("seen"))
	assert.Error(t, s.SetStatus("discharged"))

	api.On("CreatePatient", mock.Anything, mock.MatchedBy(func(rec model.PatientRecord) bool {
		return rec.ID == "" &&
			rec.TemplateID == "tpl-1" &&
			rec.Status == "seen" &&
			rec.PersonalInfo.Name == "Jane" &&
			rec.VitalSigns.Balance == "300" &&
			rec.CustomFields["pain_score"] == 6.0 &&
			rec.CustomFields["smoker"] == false
	})).Return(&model.PatientRecord{ID: "pat-1"}, nil).Once()

	res := s.Submit(context.Background())
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "pat-1", s.ID())
	api.AssertExpectations(t)
}

func TestSubmit_FailureLeavesDraft(t *testing.T) {
	api := &MockPatientAPI{}
	s := NewSession(api, nil, nil)
	s.Store().PersonalInfo().Update(patientform.PersonalName, "Jane")
	before := s.Store().Snapshot()

	api.On("CreatePatient", mock.Anything, mock.Anything).Return(nil, apperrors.NewTransport(errors.New("offline"))).Once()
	api.On("CreatePatient", mock.Anything, mock.Anything).Return(nil, apperrors.FromStatus(422, "Duplicate national id")).Once()

	res := s.Submit(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, "Failed to create patient", res.Error)

	res = s.Submit(context.Background())
	assert.Equal(t, "Duplicate national id", res.Error)

	assert.Equal(t, before, s.Store().Snapshot())
	assert.Equal(t, "", s.ID(), "still in create mode")
}

func TestLoad_EditMode(t *testing.T) {
	api := &MockPatientAPI{}
	templates := &MockTemplateAPI{}
	rec := &model.PatientRecord{
		ID: "pat-7",
		PatientForm: model.PatientForm{
			PersonalInfo:      &model.PersonalInfo{Name: "Omar", Age: "61"},
			MedicalConditions: &model.MedicalConditions{Hypertension: true},
		},
		TemplateID:   "tpl-1",
		Status:       "waiting",
		CustomFields: map[string]any{"pain_score": 4.0},
	}
	api.On("GetPatient", mock.Anything, "pat-7").Return(rec, nil).Once()
	templates.On("GetTemplate", mock.Anything, "tpl-1").Return(&intakeTemplate, nil).Once()

	s := NewSession(api, templates, nil)
	s.Store().ImagingResults().Update(patientform.ImagingCXR, "left over")

	res := s.Load(context.Background(), "pat-7")
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "pat-7", s.ID())
	assert.Equal(t, "Omar", s.Store().PersonalInfo().State().Name)
	assert.Equal(t, "", s.Store().ImagingResults().State().CXR, "initialize replaces the whole draft")
	assert.Contains(t, s.Store().VisibleNotes(), patientform.NoteHypertension)
	assert.Equal(t, "4", s.Values()["pain_score"])
	assert.Equal(t, "waiting", s.Status())

	api.On("UpdatePatient", mock.Anything, "pat-7", mock.MatchedBy(func(r model.PatientRecord) bool {
		return r.ID == "pat-7" && r.CustomFields["pain_score"] == 4.0
	})).Return(rec, nil).Once()
	assert.True(t, s.Submit(context.Background()).Success)
	api.AssertExpectations(t)
}

func TestLoad_Failure(t *testing.T) {
	api := &MockPatientAPI{}
	api.On("GetPatient", mock.Anything, "nope").Return(nil, apperrors.FromStatus(404, "Patient not found")).Once()
	s := NewSession(api, nil, nil)
	s.Store().PersonalInfo().Update(patientform.PersonalName, "Draft")

	res := s.Load(context.Background(), "nope")
	assert.False(t, res.Success)
	assert.Equal(t, "Patient not found", res.Error)
	assert.Equal(t, "Draft", s.Store().PersonalInfo().State().Name)
}
