// Package fakebackend serves the inventory REST contract from memory so that
// client code can be tested against real HTTP exchanges.
package fakebackend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/gorilla/mux"

	"github.com/autopeer-io/inventory/internal/inventory/core/model"
)

// Operation names accepted by Fail and Calls.
const (
	OpList   = "list"
	OpCreate = "create"
	OpDelete = "delete"
	OpUpload = "upload"
)

// UploadedFile is one file received by the upload endpoint.
type UploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type failure struct {
	status int
	body   string
	once   bool
}

// Backend is an in-memory inventory backend.
type Backend struct {
	mu        sync.Mutex
	cars      []model.VehicleRecord
	nextID    int64
	nextAsset int64
	failures  map[string]failure
	calls     map[string]int
	uploads   map[int64][][]UploadedFile

	server *httptest.Server
}

// New starts a Backend on a loopback listener. Call Close when done.
func New() *Backend {
	b := &Backend{
		nextID:    1,
		nextAsset: 1,
		failures:  map[string]failure{},
		calls:     map[string]int{},
		uploads:   map[int64][][]UploadedFile{},
	}
	b.server = httptest.NewServer(b.router())
	return b
}

// URL is the base URL to point a client at.
func (b *Backend) URL() string { return b.server.URL }

// Close shuts the server down.
func (b *Backend) Close() { b.server.Close() }

// Seed replaces the stored vehicles. Ids must be set.
func (b *Backend) Seed(records ...model.VehicleRecord) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.cars = model.CloneRecords(records)
	for _, r := range records {
		if r.ID >= b.nextID {
			b.nextID = r.ID + 1
		}
	}
}

// Cars returns a copy of the stored vehicles.
func (b *Backend) Cars() []model.VehicleRecord {
	b.mu.Lock()
	defer b.mu.Unlock()
	return model.CloneRecords(b.cars)
}

// Fail makes every following call of op answer status with body.
func (b *Backend) Fail(op string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[op] = failure{status: status, body: body}
}

// FailOnce makes only the next call of op fail.
func (b *Backend) FailOnce(op string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[op] = failure{status: status, body: body, once: true}
}

// Recover clears any configured failure for op.
func (b *Backend) Recover(op string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.failures, op)
}

// Calls returns how many requests op has received.
func (b *Backend) Calls(op string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[op]
}

// Uploads returns every batch received for id, in arrival order.
func (b *Backend) Uploads(id int64) [][]UploadedFile {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]UploadedFile(nil), b.uploads[id]...)
}

func (b *Backend) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(contentTypeApplicationJsonMiddleware)

	r.HandleFunc("/cars/", b.intercept(OpList, b.listHandler)).Methods(http.MethodGet)
	r.HandleFunc("/cars/", b.intercept(OpCreate, b.createHandler)).Methods(http.MethodPost)
	r.HandleFunc("/cars/{id:[0-9]+}/", b.intercept(OpDelete, b.deleteHandler)).Methods(http.MethodDelete)
	r.HandleFunc("/cars/{id:[0-9]+}/upload-images/", b.intercept(OpUpload, b.uploadHandler)).Methods(http.MethodPost)

	return r
}

func contentTypeApplicationJsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// intercept counts the call and answers with a configured failure if any.
func (b *Backend) intercept(op string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls[op]++
		f, failing := b.failures[op]
		if failing && f.once {
			delete(b.failures, op)
		}
		b.mu.Unlock()

		if failing {
			_, _ = io.Copy(io.Discard, r.Body)
			w.WriteHeader(f.status)
			_, _ = io.WriteString(w, f.body)
			return
		}
		next(w, r)
	}
}

func (b *Backend) listHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, b.Cars())
}

func (b *Backend) createHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"non_field_errors": {err.Error()}})
		return
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"non_field_errors": {err.Error()}})
		return
	}
	for _, key := range []string{model.FieldFeatures, model.FieldExtras} {
		if raw, ok := fields[key]; !ok || string(raw) == "null" {
			writeJSON(w, http.StatusBadRequest, map[string][]string{key: {"This field may not be null."}})
			return
		}
	}

	var draft model.VehicleDraft
	if err := json.Unmarshal(body, &draft); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"non_field_errors": {err.Error()}})
		return
	}
	if draft.Make == "" {
		writeJSON(w, http.StatusBadRequest, map[string][]string{model.FieldMake: {"This field may not be blank."}})
		return
	}

	b.mu.Lock()
	rec := model.VehicleRecord{ID: b.nextID, VehicleDraft: draft, Images: []model.Image{}}
	b.nextID++
	b.cars = append(b.cars, rec)
	b.mu.Unlock()

	writeJSON(w, http.StatusCreated, rec)
}

func (b *Backend) deleteHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.cars {
		if b.cars[i].ID == id {
			b.cars = append(b.cars[:i], b.cars[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func (b *Backend) uploadHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"images": {err.Error()}})
		return
	}
	headers := r.MultipartForm.File["images"]
	if len(headers) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string][]string{"images": {"No files were submitted."}})
		return
	}

	batch := make([]UploadedFile, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string][]string{"images": {err.Error()}})
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string][]string{"images": {err.Error()}})
			return
		}
		batch = append(batch, UploadedFile{Name: h.Filename, ContentType: h.Header.Get("Content-Type"), Data: data})
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.cars {
		if b.cars[i].ID != id {
			continue
		}
		for _, f := range batch {
			b.cars[i].Images = append(b.cars[i].Images, model.Image{
				AssetID: b.nextAsset,
				URL:     fmt.Sprintf("/media/cars/%d/%s", id, f.Name),
			})
			b.nextAsset++
		}
		b.uploads[id] = append(b.uploads[id], batch)
		writeJSON(w, http.StatusOK, b.cars[i])
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
