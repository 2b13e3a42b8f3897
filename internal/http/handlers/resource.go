package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/hongminglow/stockroom/internal/http/respond"
	"github.com/hongminglow/stockroom/internal/models"
	"github.com/hongminglow/stockroom/internal/storage/sandbox"
)

// resource serves list/detail CRUD for one table. In is the request payload.
type resource[T any, In any] struct {
	table    *sandbox.Table[T]
	validate func(in In, creating bool) error
	build    func(id int64, in In, now time.Time) T
	apply    func(existing T, in In, now time.Time) T
	filter   func(q url.Values) (func(T) bool, error)
	insert   func(in In) (T, error)
	remove   func(id int64) error
	now      func() time.Time
}

// Register mounts the collection at base, e.g. "/items/".
func (res *resource[T, In]) Register(r *mux.Router, base string) {
	r.HandleFunc(base, res.handleList).Methods(http.MethodGet)
	r.HandleFunc(base, res.handleCreate).Methods(http.MethodPost)
	r.HandleFunc(base+"{id:[0-9]+}/", res.handleGet).Methods(http.MethodGet)
	r.HandleFunc(base+"{id:[0-9]+}/", res.handleUpdate).Methods(http.MethodPut)
	r.HandleFunc(base+"{id:[0-9]+}/", res.handleDelete).Methods(http.MethodDelete)
}

func (res *resource[T, In]) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var keep func(T) bool
	if res.filter != nil {
		var err error
		if keep, err = res.filter(q); err != nil {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	page, err := paginate(res.table.List(keep), q)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, page)
}

func (res *resource[T, In]) handleGet(w http.ResponseWriter, r *http.Request) {
	row, err := res.table.Get(pathID(r))
	if err != nil {
		notFound(w)
		return
	}
	respond.JSON(w, http.StatusOK, row)
}

func (res *resource[T, In]) handleCreate(w http.ResponseWriter, r *http.Request) {
	in, ok := res.decode(w, r, true)
	if !ok {
		return
	}
	if res.insert != nil {
		row, err := res.insert(in)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		respond.JSON(w, http.StatusCreated, row)
		return
	}
	now := res.clock()
	row := res.table.Insert(func(id int64) T { return res.build(id, in, now) })
	respond.JSON(w, http.StatusCreated, row)
}

func (res *resource[T, In]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	in, ok := res.decode(w, r, false)
	if !ok {
		return
	}
	now := res.clock()
	row, err := res.table.Replace(pathID(r), func(existing T) T { return res.apply(existing, in, now) })
	if err != nil {
		notFound(w)
		return
	}
	respond.JSON(w, http.StatusOK, row)
}

func (res *resource[T, In]) handleDelete(w http.ResponseWriter, r *http.Request) {
	remove := res.table.Delete
	if res.remove != nil {
		remove = res.remove
	}
	if err := remove(pathID(r)); err != nil {
		notFound(w)
		return
	}
	respond.NoContent(w)
}

func (res *resource[T, In]) decode(w http.ResponseWriter, r *http.Request, creating bool) (In, bool) {
	var in In
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return in, false
	}
	if res.validate != nil {
		if err := res.validate(in, creating); err != nil {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return in, false
		}
	}
	return in, true
}

func (res *resource[T, In]) clock() time.Time {
	if res.now != nil {
		return res.now().UTC()
	}
	return time.Now().UTC()
}

// paginate applies limit/offset. Count is always the full filtered total.
func paginate[T any](rows []T, q url.Values) (models.Page[T], error) {
	limit, err := intParam(q, "limit")
	if err != nil {
		return models.Page[T]{}, err
	}
	offset, err := intParam(q, "offset")
	if err != nil {
		return models.Page[T]{}, err
	}

	count := len(rows)
	start := min(offset, count)
	end := count
	if limit > 0 && start+limit < count {
		end = start + limit
	}
	return models.Page[T]{Results: append([]T{}, rows[start:end]...), Count: count}, nil
}

func intParam(q url.Values, key string) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New(key + " must be a non-negative integer")
	}
	return n, nil
}

func idParam(q url.Values, key string) (int64, bool, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, errors.New(key + " must be an integer id")
	}
	return id, true, nil
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func notFound(w http.ResponseWriter) {
	respond.Error(w, http.StatusNotFound, "Not found.")
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, sandbox.ErrAlreadyExists):
		respond.Error(w, http.StatusBadRequest, "record already exists")
	case errors.Is(err, sandbox.ErrNotFound):
		notFound(w)
	default:
		respond.Error(w, http.StatusBadRequest, err.Error())
	}
}
