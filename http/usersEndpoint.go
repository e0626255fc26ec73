package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	rbac "github.com/paulvitic/rbac-admin"
)

type listResponse struct {
	Items      []rbac.User `json:"items"`
	Count      int         `json:"count"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
	HasPrev    bool        `json:"hasPrev"`
	HasNext    bool        `json:"hasNext"`
}

// UsersEndpoint lists the coordinator's users and adds new ones.
type UsersEndpoint struct {
	coordinator *rbac.Coordinator
}

func NewUsersEndpoint(coordinator *rbac.Coordinator) *UsersEndpoint {
	return &UsersEndpoint{coordinator: coordinator}
}

func (e *UsersEndpoint) Path() string {
	return "/users"
}

// Get filters, sorts and pages the current list without calling the service.
func (e *UsersEndpoint) Get(w http.ResponseWriter, r *http.Request) {
	query, err := toUserQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res := rbac.Select(e.coordinator.Users(), query)
	writeJSON(w, http.StatusOK, listResponse{
		Items:      res.Items(),
		Count:      res.Count(),
		Page:       res.PageNumber(),
		TotalPages: res.TotalPages(),
		HasPrev:    res.HasPrev(),
		HasNext:    res.HasNext(),
	})
}

func (e *UsersEndpoint) Post(w http.ResponseWriter, r *http.Request) {
	var draft rbac.UserDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "malformed user")
		return
	}
	res := e.coordinator.AddUser(r.Context(), draft)
	if !res.Ok() {
		writeFailure(w, res.Err())
		return
	}
	writeJSON(w, http.StatusCreated, res.Value())
}

func toUserQuery(r *http.Request) (rbac.UserQuery, error) {
	params := r.URL.Query()
	query := rbac.NewUserQuery()
	query.Search = params.Get("search")

	var err error
	if query.SortKey, err = rbac.ParseSortKey(params.Get("sort")); err != nil {
		return query, err
	}
	if query.Direction, err = rbac.ParseDirection(params.Get("direction")); err != nil {
		return query, err
	}
	if query.PageIndex, err = intParam(params.Get("page")); err != nil {
		return query, err
	}
	if query.PageSize, err = intParam(params.Get("size")); err != nil {
		return query, err
	}
	return query, nil
}

func intParam(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.Atoi(value)
}

// UserEndpoint updates and deletes a single user.
type UserEndpoint struct {
	coordinator *rbac.Coordinator
}

func NewUserEndpoint(coordinator *rbac.Coordinator) *UserEndpoint {
	return &UserEndpoint{coordinator: coordinator}
}

func (e *UserEndpoint) Path() string {
	return "/users/{userId:[0-9]+}"
}

// Put replaces the whole record; the identity in the path wins over the body.
func (e *UserEndpoint) Put(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed user id")
		return
	}
	var user rbac.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, "malformed user")
		return
	}
	user.ID = id

	res := e.coordinator.UpdateUser(r.Context(), user)
	if !res.Ok() {
		writeFailure(w, res.Err())
		return
	}
	writeJSON(w, http.StatusOK, res.Value())
}

func (e *UserEndpoint) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed user id")
		return
	}
	res := e.coordinator.DeleteUser(r.Context(), id)
	if !res.Ok() {
		writeFailure(w, res.Err())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FetchEndpoint reloads the list from the service.
type FetchEndpoint struct {
	coordinator *rbac.Coordinator
}

func NewFetchEndpoint(coordinator *rbac.Coordinator) *FetchEndpoint {
	return &FetchEndpoint{coordinator: coordinator}
}

func (e *FetchEndpoint) Path() string {
	return "/users/fetch"
}

func (e *FetchEndpoint) Post(w http.ResponseWriter, r *http.Request) {
	res := e.coordinator.FetchUsers(r.Context())
	if !res.Ok() {
		writeFailure(w, res.Err())
		return
	}
	writeJSON(w, http.StatusOK, res.Value())
}

type stateResponse struct {
	SessionID rbac.SessionID `json:"sessionId"`
	Seq       uint64         `json:"seq"`
	Phase     rbac.Phase     `json:"phase"`
	Error     string         `json:"error,omitempty"`
	Count     int            `json:"count"`
}

// StateEndpoint reports the request phase and last error.
type StateEndpoint struct {
	coordinator *rbac.Coordinator
}

func NewStateEndpoint(coordinator *rbac.Coordinator) *StateEndpoint {
	return &StateEndpoint{coordinator: coordinator}
}

func (e *StateEndpoint) Path() string {
	return "/users/state"
}

func (e *StateEndpoint) Get(w http.ResponseWriter, r *http.Request) {
	state := e.coordinator.State()
	writeJSON(w, http.StatusOK, stateResponse{
		SessionID: state.SessionID,
		Seq:       state.Seq,
		Phase:     state.Phase,
		Error:     state.Error,
		Count:     len(state.Users),
	})
}
