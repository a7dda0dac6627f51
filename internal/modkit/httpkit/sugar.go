package httpkit

import (
	"net/http"

	phttp "cobrify/internal/platform/net/http"
)

// Get mounts a no-body JSON handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) { phttp.GetJSON(r, path, h) }

// Delete mounts a no-body JSON handler under DELETE
func Delete(r Router, path string, h func(*http.Request) (any, error)) { phttp.DeleteJSON(r, path, h) }

// Post mounts a no-body JSON handler under POST
func Post(r Router, path string, h func(*http.Request) (any, error)) {
	r.Post(path, phttp.JSONHandlerNoBody(h))
}

// PostJSON mounts a JSON handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}

// PutJSON mounts a JSON handler under PUT
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PutJSON(r, path, h)
}

// AcceptJSON mounts a JSON handler under POST that replies 202
func AcceptJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.AcceptJSON(r, path, h)
}
