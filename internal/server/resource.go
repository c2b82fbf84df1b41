package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// resource wires one entity collection's CRUD surface. The update path
// takes the id from the URL, so a body id is ignored rather than trusted.
type resource[T any] struct {
	list   func() []T
	get    func(id string) (T, bool)
	create func(ctx context.Context, draft T) (T, error)
	update func(ctx context.Context, entity T) (T, error)
	remove func(ctx context.Context, id string) error
	setID  func(entity *T, id string)
}

func (res resource[T]) mount(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		items := res.list()
		if items == nil {
			items = []T{}
		}
		writeJSON(w, http.StatusOK, items)
	})
	r.Post("/", func(w http.ResponseWriter, req *http.Request) {
		var draft T
		if !decodeBody(w, req, &draft) {
			return
		}
		created, err := res.create(req.Context(), draft)
		if err != nil {
			writeMutationError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	})
	r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
		entity, ok := res.get(chi.URLParam(req, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeJSON(w, http.StatusOK, entity)
	})
	r.Put("/{id}", func(w http.ResponseWriter, req *http.Request) {
		var entity T
		if !decodeBody(w, req, &entity) {
			return
		}
		res.setID(&entity, chi.URLParam(req, "id"))
		updated, err := res.update(req.Context(), entity)
		if err != nil {
			writeMutationError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	})
	r.Delete("/{id}", func(w http.ResponseWriter, req *http.Request) {
		if err := res.remove(req.Context(), chi.URLParam(req, "id")); err != nil {
			writeMutationError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
