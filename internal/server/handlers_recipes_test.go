package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/api"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/constants"
)

const chiliBody = `{
	"recipeName": "Mom's Chili!",
	"ingredients": [{"name": "beef", "amount": "1 lb"}],
	"instructions": "Brown & simmer"
}`

func decodeRecipe(t *testing.T, rr *httptest.ResponseRecorder) *api.Recipe {
	t.Helper()
	var recipe api.Recipe
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &recipe))
	return &recipe
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHandleCreateRecipe(t *testing.T) {
	t.Run("allocates id and sanitizes", func(t *testing.T) {
		s := newTestServer(t, 41)

		rr := s.do(t, http.MethodPost, "/recipes", "alice", jsonBody(chiliBody))

		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		recipe := decodeRecipe(t, rr)
		assert.Equal(t, int64(42), recipe.RecipeID)
		assert.Equal(t, "alice", recipe.UserID)
		assert.Equal(t, "moms-chili", recipe.Slug)
		assert.Equal(t, "Brown &amp; simmer", recipe.Instructions)
	})

	t.Run("missing identity", func(t *testing.T) {
		s := newTestServer(t, 0)

		rr := s.do(t, http.MethodPost, "/recipes", "", jsonBody(chiliBody))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing recipe name", func(t *testing.T) {
		s := newTestServer(t, 0)

		rr := s.do(t, http.MethodPost, "/recipes", "alice", jsonBody(`{"instructions":"x"}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		s := newTestServer(t, 0)

		rr := s.do(t, http.MethodPost, "/recipes", "alice", jsonBody(`{`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "invalid request body", decodeError(t, rr).Error)
	})
}

func TestRecipeRoutes(t *testing.T) {
	s := newTestServer(t, 0)

	created := decodeRecipe(t, s.do(t, http.MethodPost, "/recipes", "alice", jsonBody(chiliBody)))
	require.Equal(t, int64(1), created.RecipeID)

	t.Run("list", func(t *testing.T) {
		rr := s.do(t, http.MethodGet, "/recipes", "alice", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp api.ListRecipesResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Count)
	})

	t.Run("other owner sees nothing", func(t *testing.T) {
		rr := s.do(t, http.MethodGet, "/recipes/1", "bob", nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "RECIPE_NOT_FOUND", decodeError(t, rr).Code)
	})

	t.Run("get by id", func(t *testing.T) {
		rr := s.do(t, http.MethodGet, "/recipes/1", "alice", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "moms-chili", decodeRecipe(t, rr).Slug)
	})

	t.Run("get by slug", func(t *testing.T) {
		rr := s.do(t, http.MethodGet, "/recipes/slug/moms-chili", "alice", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, int64(1), decodeRecipe(t, rr).RecipeID)
	})

	t.Run("slug of a name with a slash is routable", func(t *testing.T) {
		rr := s.do(t, http.MethodPost, "/recipes", "alice",
			jsonBody(`{"recipeName":"Salt/Pepper Steak","ingredients":[],"instructions":"Sear"}`))
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		steak := decodeRecipe(t, rr)
		require.Equal(t, "salt-pepper-steak", steak.Slug)

		rr = s.do(t, http.MethodGet, "/recipes/slug/"+steak.Slug, "alice", nil)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, steak.RecipeID, decodeRecipe(t, rr).RecipeID)
	})

	t.Run("invalid id", func(t *testing.T) {
		rr := s.do(t, http.MethodGet, "/recipes/abc", "alice", nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("update", func(t *testing.T) {
		rr := s.do(t, http.MethodPut, "/recipes/1", "alice",
			jsonBody(`{"recipeName":"Dad's Stew","ingredients":[],"instructions":"Stir"}`))

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		recipe := decodeRecipe(t, rr)
		assert.Equal(t, "dads-stew", recipe.Slug)
		assert.Equal(t, created.CreatedAt, recipe.CreatedAt)
	})

	t.Run("update missing", func(t *testing.T) {
		rr := s.do(t, http.MethodPut, "/recipes/99", "alice", jsonBody(`{"recipeName":"x"}`))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rr := s.do(t, http.MethodDelete, "/recipes/1", "alice", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		rr = s.do(t, http.MethodGet, "/recipes/1", "alice", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func multipartImage(t *testing.T, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="`+constants.ImageFormField+`"; filename="upload"`)
	h.Set(constants.ContentTypeHeader, contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func TestHandleUploadRecipeImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	gif := []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00;")

	upload := func(t *testing.T, s *testServer, path, contentType string, data []byte) *httptest.ResponseRecorder {
		body, formType := multipartImage(t, contentType, data)
		req := httptest.NewRequest(http.MethodPost, path, body)
		req.Header.Set(constants.ContentTypeHeader, formType)
		req.Header.Set(constants.AuthorizationHeader, constants.BearerPrefix+idToken("alice"))
		rr := httptest.NewRecorder()
		s.router.ServeHTTP(rr, req)
		return rr
	}

	t.Run("png accepted", func(t *testing.T) {
		s := newTestServer(t, 0)
		s.do(t, http.MethodPost, "/recipes", "alice", jsonBody(chiliBody))

		rr := upload(t, s, "/recipes/1/image", "image/png", png)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		assert.Equal(t, "https://images.example.com/alice.png", decodeRecipe(t, rr).Image)
		assert.Equal(t, 1, s.images.uploads)
	})

	t.Run("gif rejected before upload", func(t *testing.T) {
		s := newTestServer(t, 0)
		s.do(t, http.MethodPost, "/recipes", "alice", jsonBody(chiliBody))

		rr := upload(t, s, "/recipes/1/image", "image/gif", gif)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid image", decodeError(t, rr).Error)
		assert.Equal(t, 0, s.images.uploads)
		assert.Empty(t, decodeRecipe(t, s.do(t, http.MethodGet, "/recipes/1", "alice", nil)).Image)
	})

	t.Run("missing part", func(t *testing.T) {
		s := newTestServer(t, 0)
		s.do(t, http.MethodPost, "/recipes", "alice", jsonBody(chiliBody))

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("other", "x"))
		require.NoError(t, mw.Close())
		req := httptest.NewRequest(http.MethodPost, "/recipes/1/image", &buf)
		req.Header.Set(constants.ContentTypeHeader, mw.FormDataContentType())
		req.Header.Set(constants.AuthorizationHeader, constants.BearerPrefix+idToken("alice"))
		rr := httptest.NewRecorder()
		s.router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, 0, s.images.uploads)
	})
}
