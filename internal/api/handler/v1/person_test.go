package v1

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

type fakePersonService struct {
	PersonService

	created domain.Person
	filter  domain.PersonFilter
}

func (f *fakePersonService) List(_ context.Context, filter domain.PersonFilter) ([]domain.Person, error) {
	f.filter = filter
	return []domain.Person{}, nil
}

func (f *fakePersonService) Create(_ context.Context, p domain.Person) (domain.Person, error) {
	f.created = p
	p.ID = 1
	return p, nil
}

func newPersonRouter(svc PersonService) *gin.Engine {
	h := NewPersonHandler(svc)
	router := gin.New()
	router.GET("/people", h.HandleListPeople)
	router.POST("/people", h.HandleCreatePerson)

	return router
}

func TestPersonHandler_Create(t *testing.T) {
	tests := []struct {
		name      string
		cpf       string
		wantCode  int
		wantField bool
	}{
		{"dotted", "123.456.789-09", http.StatusCreated, false},
		{"digits only", "12345678909", http.StatusCreated, false},
		{"mixed separators", "123.456789-09", http.StatusUnprocessableEntity, true},
		{"too short", "123.456.789", http.StatusUnprocessableEntity, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakePersonService{}
			rec := serve(t, newPersonRouter(svc), http.MethodPost, "/people", map[string]any{
				"full_name":  "Maria Souza",
				"cpf":        tt.cpf,
				"birth_date": "1990-04-21",
				"profile_id": 2,
			})
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			if tt.wantField {
				assert.Equal(t, "must be a valid CPF (000.000.000-00)", decodeErr(t, rec).Errors["cpf"])
				return
			}
			require.NotNil(t, svc.created.CPF)
			assert.Equal(t, tt.cpf, *svc.created.CPF)
			require.NotNil(t, svc.created.BirthDate)
			assert.Equal(t, 1990, svc.created.BirthDate.Year())
		})
	}
}

func TestPersonHandler_Create_BlankOptionals(t *testing.T) {
	svc := &fakePersonService{}
	rec := serve(t, newPersonRouter(svc), http.MethodPost, "/people", map[string]any{
		"full_name":  "Joao Lima",
		"cpf":        "",
		"email":      "",
		"profile_id": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Nil(t, svc.created.CPF)
	assert.Nil(t, svc.created.Email)
	assert.Nil(t, svc.created.BirthDate)
}

func TestPersonHandler_List(t *testing.T) {
	svc := &fakePersonService{}
	router := newPersonRouter(svc)

	rec := serve(t, router, http.MethodGet, "/people?active=false&profile_id=3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.filter.Active)
	assert.False(t, *svc.filter.Active)
	require.NotNil(t, svc.filter.ProfileID)
	assert.Equal(t, uint(3), *svc.filter.ProfileID)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())

	rec = serve(t, router, http.MethodGet, "/people?active=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
