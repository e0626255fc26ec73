package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"

	"github.com/gorilla/mux"
	rbac "github.com/paulvitic/rbac-admin"
)

// HttpMethod represents HTTP methods as constants
type HttpMethod string

const (
	GET    HttpMethod = "GET"
	POST   HttpMethod = "POST"
	PUT    HttpMethod = "PUT"
	DELETE HttpMethod = "DELETE"
)

// Endpoint is bound to a path. Its exported Get, Post, Put and Delete methods
// with the signature func(http.ResponseWriter, *http.Request) become the
// handlers of the matching HTTP method.
type Endpoint interface {
	// Path returns the endpoint's URL path
	Path() string
}

// BindEndpoint registers every handler method of endpoint on router.
func BindEndpoint(endpoint Endpoint, router *mux.Router) {
	for method, methodName := range requestHandlers(endpoint) {
		handler := reflect.ValueOf(endpoint).MethodByName(methodName).Interface().(func(http.ResponseWriter, *http.Request))
		router.HandleFunc(endpoint.Path(), handler).Methods(string(method))
	}
}

func requestHandlers(endpoint Endpoint) map[HttpMethod]string {
	typ := reflect.TypeOf(endpoint)
	handlers := make(map[HttpMethod]string)

	methodMap := map[string]HttpMethod{
		"Get":    GET,
		"Post":   POST,
		"Put":    PUT,
		"Delete": DELETE,
	}

	for i := range typ.NumMethod() {
		method := typ.Method(i)
		if httpMethod, exists := methodMap[method.Name]; exists && isValidHandlerSignature(method.Type) {
			handlers[httpMethod] = method.Name
		}
	}
	return handlers
}

// isValidHandlerSignature checks for receiver, http.ResponseWriter, *http.Request and no results
func isValidHandlerSignature(methodType reflect.Type) bool {
	if methodType.NumIn() != 3 || methodType.NumOut() != 0 {
		return false
	}
	responseWriterType := reflect.TypeOf((*http.ResponseWriter)(nil)).Elem()
	requestType := reflect.TypeOf((*http.Request)(nil))

	return methodType.In(1) == responseWriterType && methodType.In(2) == requestType
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeFailure maps a coordinator failure to a status code. The body carries
// the message the coordinator surfaced, never the cause.
func writeFailure(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, rbac.ErrValidation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, rbac.ErrNotFound):
		status = http.StatusNotFound
	}
	writeError(w, status, err.Error())
}

func userID(r *http.Request) (rbac.ID, error) {
	return rbac.ParseID(mux.Vars(r)["userId"])
}
