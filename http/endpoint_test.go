package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	rbac "github.com/paulvitic/rbac-admin"
	"github.com/paulvitic/rbac-admin/inMemory"
	"github.com/paulvitic/rbac-admin/rbactest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type probeEndpoint struct{}

func (p *probeEndpoint) Path() string { return "/probe" }

func (p *probeEndpoint) Get(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("get"))
}

func (p *probeEndpoint) Delete(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Patch is not a supported handler name and Put has the wrong signature.
func (p *probeEndpoint) Patch(w http.ResponseWriter, r *http.Request) {}
func (p *probeEndpoint) Put(w http.ResponseWriter)                    {}

func TestRequestHandlers(t *testing.T) {
	handlers := requestHandlers(&probeEndpoint{})
	assert.Equal(t, map[HttpMethod]string{GET: "Get", DELETE: "Delete"}, handlers)
}

func TestBindEndpoint(t *testing.T) {
	router := mux.NewRouter()
	BindEndpoint(&probeEndpoint{}, router)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/probe", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "get", rr.Body.String())

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/probe", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

type fixture struct {
	service     *rbactest.Service
	coordinator *rbac.Coordinator
	server      *Server
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	service := rbactest.NewService(inMemory.Seed()...)
	coordinator := rbac.NewCoordinator(service)
	server := NewServer("localhost:0", rbac.NewNopLogger()).WithEndpoints(
		NewUsersEndpoint(coordinator),
		NewUserEndpoint(coordinator),
		NewFetchEndpoint(coordinator),
		NewStateEndpoint(coordinator),
	)
	return &fixture{service: service, coordinator: coordinator, server: server}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	rr := httptest.NewRecorder()
	f.server.Router().ServeHTTP(rr, httptest.NewRequest(method, path, &payload))
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	return out
}

func TestHealthCheck(t *testing.T) {
	f := newFixture(t)
	rr := f.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Status: UP", rr.Body.String())
}

func TestFetchAndList(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodGet, "/users", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[listResponse](t, rr).Items, "nothing fetched yet")

	rr = f.do(t, http.MethodPost, "/users/fetch", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]rbac.User](t, rr), 3)

	rr = f.do(t, http.MethodGet, "/users?search=john&sort=email&direction=desc&size=1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[listResponse](t, rr)
	require.Len(t, list.Items, 1)
	assert.Equal(t, rbac.ID(1), list.Items[0].ID)
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, 2, list.TotalPages)
	assert.True(t, list.HasNext)

	rr = f.do(t, http.MethodGet, "/users?sort=id", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestListBeyondLastPage(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/users/fetch", nil).Code)

	rr := f.do(t, http.MethodGet, "/users?page=4611686018427387904&size=2", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	list := decode[listResponse](t, rr)
	assert.Empty(t, list.Items)
	assert.Equal(t, 3, list.Count)
	assert.False(t, list.HasNext)
}

func TestFetchFailure(t *testing.T) {
	f := newFixture(t)
	f.service.Err = assert.AnError

	rr := f.do(t, http.MethodPost, "/users/fetch", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, assert.AnError.Error(), decode[errorResponse](t, rr).Error)
}

func TestCreateUser(t *testing.T) {
	f := newFixture(t)

	rr := f.do(t, http.MethodPost, "/users", rbac.UserDraft{Name: "Ann", Email: "ann@x.com", Role: rbac.RoleViewer, Status: rbac.StatusActive})
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, rbac.ID(4), decode[rbac.User](t, rr).ID)

	rr = f.do(t, http.MethodPost, "/users", rbac.UserDraft{Name: "Ann", Email: "ann", Role: rbac.RoleViewer})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "Valid email is required", decode[errorResponse](t, rr).Error)

	rr = httptest.NewRecorder()
	f.server.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString("{")))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateUser(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/users/fetch", nil)

	rr := f.do(t, http.MethodPut, "/users/2", rbac.User{ID: 7, Name: "Jane Doe", Email: "jane@doe.com", Role: rbac.RoleAdmin})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, rbac.ID(2), decode[rbac.User](t, rr).ID, "path identity wins")

	rr = f.do(t, http.MethodPut, "/users/99", rbac.User{Name: "X", Email: "x@x.com", Role: rbac.RoleAdmin})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, rbac.MessageUpdateFailed, decode[errorResponse](t, rr).Error)

	rr = f.do(t, http.MethodGet, "/users/state", nil)
	state := decode[stateResponse](t, rr)
	assert.Equal(t, rbac.PhaseFailed, state.Phase)
	assert.Equal(t, rbac.MessageUpdateFailed, state.Error)
	assert.Equal(t, 3, state.Count)
}

func TestDeleteUser(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodPost, "/users/fetch", nil)

	rr := f.do(t, http.MethodDelete, "/users/2", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Len(t, f.coordinator.Users(), 2)

	rr = f.do(t, http.MethodDelete, "/users/2", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, rbac.MessageDeleteFailed, decode[errorResponse](t, rr).Error)

	rr = f.do(t, http.MethodDelete, "/users/abc", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code, "non numeric ids do not match the route")
}
