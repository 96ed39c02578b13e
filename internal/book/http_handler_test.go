package book

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"libraryapi/internal/platform/date"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo))

	t.Run("success with pagination", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any(), 5, 2).Return([]Book{
			{ID: 6, Title: "Dune", Authors: []AuthorRef{{ID: 1, Name: "Herbert"}}, Genres: []GenreRef{}},
		}, nil)

		w := httptest.NewRecorder()
		handler.List(w, httptest.NewRequest(http.MethodGet, "/books/?skip=5&limit=2", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `"title":"Dune"`)
		assert.Contains(t, body, `"authors":[{"id":1,"name":"Herbert"}]`)
		assert.Contains(t, body, `"skip":5`)
		assert.Contains(t, body, `"count":1`)
	})

	t.Run("negative skip", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.List(w, httptest.NewRequest(http.MethodGet, "/books/?skip=-1", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any(), 0, 10).Return(nil, context.DeadlineExceeded)

		w := httptest.NewRecorder()
		handler.List(w, httptest.NewRequest(http.MethodGet, "/books/", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "deadline")
	})
}

func TestHTTPHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo))

	newReq := func(id string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/books/"+id, nil)
		r.SetPathValue("id", id)
		return r
	}

	t.Run("found", func(t *testing.T) {
		published := date.Of(time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC))
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(3)).Return(Book{ID: 3, Title: "Dune", PublicationDate: &published}, nil)

		w := httptest.NewRecorder()
		handler.Get(w, newReq("3"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"publication_date":"1965-08-01"`)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), int64(4)).Return(Book{}, ErrNotFound)

		w := httptest.NewRecorder()
		handler.Get(w, newReq("4"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"NOT_FOUND"`)
	})

	t.Run("bad id", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Get(w, newReq("abc"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo))

	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		handler.Create(w, httptest.NewRequest(http.MethodPost, "/books/", strings.NewReader(body)))
		return w
	}

	t.Run("defaults copies", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd CreateCommand) (Book, error) {
				assert.Equal(t, DefaultCopies, cmd.AvailableCopies)
				require.NotNil(t, cmd.PublicationDate)
				assert.Equal(t, "2001-02-03", cmd.PublicationDate.String())
				return Book{ID: 1, Title: cmd.Title, AvailableCopies: cmd.AvailableCopies}, nil
			})

		w := post(`{"title":"Dune","publication_date":"2001-02-03"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"available_copies":1`)
	})

	t.Run("explicit zero copies", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, cmd CreateCommand) (Book, error) {
				assert.Equal(t, 0, cmd.AvailableCopies)
				return Book{ID: 2}, nil
			})

		w := post(`{"title":"Dune","publication_date":"1965-08-01","available_copies":0}`)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("unknown author", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(Book{}, ErrAuthorNotFound)

		w := post(`{"title":"Dune","publication_date":"1965-08-01","author_ids":[99]}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	tests := []struct {
		name string
		body string
		code string
	}{
		{"blank title", `{"title":"   "}`, "VALIDATION_ERROR"},
		{"missing publication date", `{"title":"Dune"}`, "VALIDATION_ERROR"},
		{"negative copies", `{"title":"Dune","available_copies":-1}`, "VALIDATION_ERROR"},
		{"duplicate author ids", `{"title":"Dune","author_ids":[1,1]}`, "VALIDATION_ERROR"},
		{"non-positive genre id", `{"title":"Dune","genre_ids":[0]}`, "VALIDATION_ERROR"},
		{"bad date", `{"title":"Dune","publication_date":"03/02/2001"}`, "BAD_REQUEST"},
		{"malformed json", `{"title":`, "BAD_REQUEST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"code":"`+tt.code+`"`)
		})
	}
}

func TestHTTPHandler_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo))

	put := func(id, body string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPut, "/books/"+id, strings.NewReader(body))
		r.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.Update(w, r)
		return w
	}

	t.Run("omitted relations stay unchanged", func(t *testing.T) {
		mockRepo.EXPECT().Update(gomock.Any(), int64(1), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, cmd UpdateCommand) (Book, error) {
				assert.Nil(t, cmd.AuthorIDs)
				assert.Nil(t, cmd.GenreIDs)
				require.NotNil(t, cmd.AvailableCopies)
				assert.Equal(t, 4, *cmd.AvailableCopies)
				return Book{ID: 1, AvailableCopies: 4}, nil
			})

		w := put("1", `{"available_copies":4}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("empty list clears relations", func(t *testing.T) {
		mockRepo.EXPECT().Update(gomock.Any(), int64(1), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, cmd UpdateCommand) (Book, error) {
				require.NotNil(t, cmd.AuthorIDs)
				assert.Empty(t, *cmd.AuthorIDs)
				return Book{ID: 1}, nil
			})

		w := put("1", `{"author_ids":[]}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().Update(gomock.Any(), int64(9), gomock.Any()).Return(Book{}, ErrNotFound)

		w := put("9", `{"title":"x"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("blank title", func(t *testing.T) {
		w := put("1", `{"title":""}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo))

	del := func(id string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodDelete, "/books/"+id, nil)
		r.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.Delete(w, r)
		return w
	}

	mockRepo.EXPECT().Delete(gomock.Any(), int64(1)).Return(nil)
	assert.Equal(t, http.StatusNoContent, del("1").Code)

	mockRepo.EXPECT().Delete(gomock.Any(), int64(2)).Return(ErrHasLoans)
	w := del("2")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"CONFLICT"`)
}
