package template

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinicdesk/internal/cache"
	"github.com/jwalitptl/clinicdesk/internal/model"
	apperrors "github.com/jwalitptl/clinicdesk/pkg/errors"
)

// MockTemplateAPI is a mock implementation of client.TemplateAPI
type MockTemplateAPI struct {
	mock.Mock
}

func (m *MockTemplateAPI) ListTemplates(ctx context.Context) ([]model.Template, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]model.Template), args.Error(1)
	}
	return nil, args.Error(1)
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
	if v := args.Get(0); v != nil {
		return v.(*model.Template), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTemplateAPI) UpdateTemplate(ctx context.Context, id string, in model.TemplateInput) (*model.Template, error) {
	args := m.Called(ctx, id, in)
	if v := args.Get(0); v != nil {
		return v.(*model.Template), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTemplateAPI) DeleteTemplate(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var (
	cardiology = model.Template{ID: "t1", Name: "Cardiology Intake", Description: "Heart failure follow-up"}
	pediatrics = model.Template{ID: "t2", Name: "Pediatrics", Description: "Well-child visit"}
	general    = model.Template{ID: "t3", Name: "General", Description: "Cardiac screening add-on"}
)

func newService(api *MockTemplateAPI) (*Service, cache.TemplateCache) {
	c := cache.NewMemory(time.Minute)
	return NewService(api, c, nil, nil), c
}

func names(list []model.Template) []string {
	out := []string{}
	for _, t := range list {
		out = append(out, t.Name)
	}
	return out
}

func TestList_FiltersCaseInsensitively(t *testing.T) {
	api := &MockTemplateAPI{}
	api.On("ListTemplates", mock.Anything).Return([]model.Template{cardiology, pediatrics, general}, nil).Once()
	svc, _ := newService(api)
	ctx := context.Background()

	res := svc.List(ctx, "CARDI")
	require.True(t, res.Success)
	assert.Equal(t, []string{"Cardiology Intake", "General"}, names(res.Data))

	res = svc.List(ctx, "")
	assert.Len(t, res.Data, 3)

	res = svc.List(ctx, "   ")
	assert.Len(t, res.Data, 3)

	res = svc.List(ctx, "zzz")
	require.True(t, res.Success)
	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)

	api.AssertNumberOfCalls(t, "ListTemplates", 1)
}

func TestFilter_IsSubsetOfInput(t *testing.T) {
	all := []model.Template{cardiology, pediatrics, general}
	for _, term := range []string{"", "a", "visit", "CHILD", "heart", "nothing"} {
		got := Filter(all, term)
		assert.LessOrEqual(t, len(got), len(all))
		for _, tpl := range got {
			assert.Contains(t, all, tpl)
		}
	}
}

func TestList_FetchFailure(t *testing.T) {
	api := &MockTemplateAPI{}
	api.On("ListTemplates", mock.Anything).Return(nil, apperrors.FromStatus(500, "database offline")).Once()
	api.On("ListTemplates", mock.Anything).Return(nil, apperrors.NewTransport(errors.New("dial tcp"))).Once()
	svc, _ := newService(api)

	res := svc.List(context.Background(), "")
	assert.False(t, res.Success)
	assert.Equal(t, "database offline", res.Error)

	res = svc.List(context.Background(), "")
	assert.Equal(t, "Failed to fetch templates", res.Error)
}

func TestList_StaleFallsBackOnRefetchFailure(t *testing.T) {
	api := &MockTemplateAPI{}
	api.On("ListTemplates", mock.Anything).Return(nil, apperrors.NewTransport(errors.New("offline"))).Once()
	svc, c := newService(api)
	ctx := context.Background()
	require.NoError(t, c.Store(ctx, cache.Entry{Templates: []model.Template{cardiology}, Stale: true}))

	res := svc.List(ctx, "")
	require.True(t, res.Success)
	assert.Equal(t, []string{"Cardiology Intake"}, names(res.Data))
}

func TestCreate_AppendsToCacheAndMarksStale(t *testing.T) {
	api := &MockTemplateAPI{}
	in := model.TemplateInput{Name: "Oncology"}
	created := &model.Template{ID: "t9", Name: "Oncology"}
	api.On("ListTemplates", mock.Anything).Return([]model.Template{cardiology}, nil).Once()
	api.On("CreateTemplate", mock.Anything, in).Return(created, nil).Once()
	api.On("ListTemplates", mock.Anything).Return(nil, apperrors.NewTransport(errors.New("offline"))).Once()
	svc, c := newService(api)
	ctx := context.Background()

	require.True(t, svc.List(ctx, "").Success)

	res := svc.Create(ctx, in)
	require.True(t, res.Success)
	assert.Equal(t, "t9", res.Data.ID)

	entry, found, err := c.Load(ctx)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, entry.Stale)
	assert.Equal(t, []string{"Cardiology Intake", "Oncology"}, names(entry.Templates))

	res2 := svc.List(ctx, "onco")
	require.True(t, res2.Success)
	assert.Equal(t, []string{"Oncology"}, names(res2.Data))
	api.AssertExpectations(t)
}

func TestCreate_FailureLeavesCacheUntouched(t *testing.T) {
	api := &MockTemplateAPI{}
	api.On("ListTemplates", mock.Anything).Return([]model.Template{cardiology}, nil).Once()
	api.On("CreateTemplate", mock.Anything, mock.Anything).Return(nil, apperrors.FromStatus(200, "")).Once()
	api.On("CreateTemplate", mock.Anything, mock.Anything).Return(nil, apperrors.FromStatus(400, "Name already taken")).Once()
	svc, c := newService(api)
	ctx := context.Background()
	require.True(t, svc.List(ctx, "").Success)
	before, _, _ := c.Load(ctx)

	res := svc.Create(ctx, model.TemplateInput{Name: "X"})
	assert.False(t, res.Success)
	assert.Equal(t, "Failed to create template", res.Error)

	res = svc.Create(ctx, model.TemplateInput{Name: "X"})
	assert.Equal(t, "Name already taken", res.Error)

	after, _, _ := c.Load(ctx)
	assert.Equal(t, before.Templates, after.Templates)
	assert.False(t, after.Stale)
}

func TestUpdate_FailureLeavesCacheUntouched(t *testing.T) {
	api := &MockTemplateAPI{}
	api.On("ListTemplates", mock.Anything).Return([]model.Template{cardiology, pediatrics}, nil).Once()
	api.On("UpdateTemplate", mock.Anything, "t1", mock.Anything).Return(nil, apperrors.FromStatus(400, "Section names must be unique")).Once()
	api.On("UpdateTemplate", mock.Anything, "t1", mock.Anything).Return(nil, apperrors.NewTransport(errors.New("offline"))).Once()
	svc, c := newService(api)
	ctx := context.Background()
	require.True(t, svc.List(ctx, "").Success)
	before, _, _ := c.Load(ctx)

	renamed := cardiology
	renamed.Name = "Cardiology v2"
	res := svc.Update(ctx, "t1", renamed.Input())
	assert.False(t, res.Success)
	assert.Equal(t, "Section names must be unique", res.Error)

	res = svc.Update(ctx, "t1", renamed.Input())
	assert.Equal(t, "Failed to update template", res.Error)

	after, found, _ := c.Load(ctx)
	require.True(t, found)
	assert.Equal(t, before.Templates, after.Templates)
	assert.Equal(t, []string{"Cardiology Intake", "Pediatrics"}, names(after.Templates))
	assert.False(t, after.Stale)
	api.AssertExpectations(t)
}

func TestUpdateAndDelete_PatchCache(t *testing.T) {
	api := &MockTemplateAPI{}
	api.On("ListTemplates", mock.Anything).Return([]model.Template{cardiology, pediatrics}, nil).Once()
	renamed := cardiology
	renamed.Name = "Cardiology v2"
	api.On("UpdateTemplate", mock.Anything, "t1", mock.Anything).Return(&renamed, nil).Once()
	api.On("DeleteTemplate", mock.Anything, "t2").Return(nil).Once()
	api.On("DeleteTemplate", mock.Anything, "t1").Return(apperrors.FromStatus(404, "Template not found")).Once()
	svc, c := newService(api)
	ctx := context.Background()
	require.True(t, svc.List(ctx, "").Success)

	res := svc.Update(ctx, "t1", renamed.Input())
	require.True(t, res.Success)
	entry, _, _ := c.Load(ctx)
	assert.Equal(t, []string{"Cardiology v2", "Pediatrics"}, names(entry.Templates))

	assert.True(t, svc.Delete(ctx, "t2").Success)
	entry, _, _ = c.Load(ctx)
	assert.Equal(t, []string{"Cardiology v2"}, names(entry.Templates))

	del := svc.Delete(ctx, "t1")
	assert.False(t, del.Success)
	assert.Equal(t, "Template not found", del.Error)
	entry, _, _ = c.Load(ctx)
	assert.Len(t, entry.Templates, 1)
}

func TestDuplicate(t *testing.T) {
	api := &MockTemplateAPI{}
	src := model.Template{
		ID:        "t1",
		Name:      "Cardiology",
		IsDefault: true,
		IsVisible: true,
		Sections:  []model.Section{{ID: "s1", Name: "history", Label: "History"}},
	}
	want := model.TemplateInput{
		Name:      "Cardiology (Copy)",
		IsDefault: false,
		IsVisible: true,
		Sections:  []model.Section{{ID: "s1", Name: "history", Label: "History"}},
	}
	api.On("CreateTemplate", mock.Anything, want).Return(&model.Template{ID: "t2", Name: want.Name}, nil).Once()
	svc, _ := newService(api)

	res := svc.Duplicate(context.Background(), src)
	require.True(t, res.Success)
	assert.Equal(t, "Cardiology (Copy)", res.Data.Name)
	assert.True(t, src.IsDefault, "source is not modified")
	api.AssertExpectations(t)
}

func TestDuplicateFailure(t *testing.T) {
	api := &MockTemplateAPI{}
	api.On("CreateTemplate", mock.Anything, mock.Anything).Return(nil, apperrors.NewTransport(errors.New("x"))).Once()
	svc, _ := newService(api)

	res := svc.Duplicate(context.Background(), cardiology)
	assert.False(t, res.Success)
	assert.Equal(t, "Failed to duplicate template", res.Error)
}

func TestGet(t *testing.T) {
	api := &MockTemplateAPI{}
	api.On("GetTemplate", mock.Anything, "t1").Return(&cardiology, nil).Once()
	api.On("GetTemplate", mock.Anything, "t404").Return(nil, apperrors.NewTransport(errors.New("x"))).Once()
	svc, _ := newService(api)

	assert.Equal(t, "t1", svc.Get(context.Background(), "t1").Data.ID)
	assert.Equal(t, "Failed to fetch template", svc.Get(context.Background(), "t404").Error)
}
