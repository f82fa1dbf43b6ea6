package controller

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/atelier-moveis/atelier-backend/database/model"
)

func TestPhotoLifecycle(t *testing.T) {
	env := newTestEnv(t)

	t.Run("upload requires a file", func(t *testing.T) {
		body, contentType := multipartBody(t, nil, "file", nil, 0)
		w := env.request(http.MethodPost, "/photos", "admin-token", body, contentType)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
		if got := w.Body.String(); got != `{"error":"Nenhuma imagem enviada"}` {
			t.Fatalf("body = %s", got)
		}
	})

	var url string
	t.Run("upload", func(t *testing.T) {
		body, contentType := multipartBody(t, nil, "file", []string{"fachada.jpg"}, 0)
		w := env.request(http.MethodPost, "/photos", "admin-token", body, contentType)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		var resp struct {
			URL string `json:"url"`
		}
		decodeBody(t, w, &resp)
		if resp.URL == "" {
			t.Fatalf("body = %s", w.Body.String())
		}
		url = resp.URL
	})

	t.Run("public listing", func(t *testing.T) {
		w := env.request(http.MethodGet, "/photos", "", nil, "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		var photos []model.Photo
		decodeBody(t, w, &photos)
		if len(photos) != 1 || photos[0].URL != url {
			t.Fatalf("photos = %+v", photos)
		}
	})

	t.Run("update requires description", func(t *testing.T) {
		w := env.request(http.MethodPut, "/photos/1", "admin-token", bytes.NewBufferString(`{}`), "application/json")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", w.Code)
		}
		if got := w.Body.String(); got != `{"error":"Descrição é obrigatória"}` {
			t.Fatalf("body = %s", got)
		}
	})

	t.Run("update", func(t *testing.T) {
		w := env.request(http.MethodPut, "/photos/1", "admin-token", bytes.NewBufferString(`{"description":"Fachada da loja"}`), "application/json")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		var photo model.Photo
		if err := env.db.First(&photo, 1).Error; err != nil {
			t.Fatal(err)
		}
		if photo.Description != "Fachada da loja" {
			t.Fatalf("description = %q", photo.Description)
		}
	})

	t.Run("delete", func(t *testing.T) {
		w := env.request(http.MethodDelete, "/photos/1", "admin-token", nil, "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		if len(env.store.deletes) != 1 {
			t.Fatalf("blob deletes = %v", env.store.deletes)
		}
	})

	t.Run("delete missing", func(t *testing.T) {
		w := env.request(http.MethodDelete, "/photos/1", "admin-token", nil, "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", w.Code)
		}
		if got := w.Body.String(); got != `{"error":"Foto não encontrada"}` {
			t.Fatalf("body = %s", got)
		}
	})
}
