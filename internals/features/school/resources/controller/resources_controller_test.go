package controller_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AungS8430/schooler/internals/clients/schoolapi"
	"github.com/AungS8430/schooler/internals/features/school/resources/controller"
	"github.com/AungS8430/schooler/internals/features/school/resources/model"
	routes "github.com/AungS8430/schooler/internals/features/school/resources/route"
	helper "github.com/AungS8430/schooler/internals/helpers"
	"github.com/AungS8430/schooler/internals/helpers/testkit"
)

type fakeAPI []model.Resource

func (f fakeAPI) Resources(ctx context.Context, cred schoolapi.Credentials) ([]model.Resource, error) {
	return f, nil
}

func TestListFiltersAndKeepsAllCategories(t *testing.T) {
	api := fakeAPI{
		{ID: 1, Title: "Leave Form", Categories: []string{"Forms"}},
		{ID: 2, Title: "Campus Map", Categories: []string{"Campus"}},
	}
	views := &testkit.Views{}
	app := testkit.App(views, helper.ErrorHandler)
	routes.ResourcesRoutes(app.Group("/app"), controller.NewResourcesController(api))

	resp, err := app.Test(httptest.NewRequest("GET", "/app/resources?category=forms", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	r := views.Last()
	assert.Equal(t, "pages/resources", r.Name)
	assert.Equal(t, []string{"Campus", "Forms"}, r.Bind["Categories"])
	list := r.Bind["Resources"].([]model.Resource)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].ID)
}
