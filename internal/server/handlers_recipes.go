package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/DeanGilewicz/serverless-recipes-BE/internal/api"
	"github.com/DeanGilewicz/serverless-recipes-BE/internal/constants"
)

// handleListRecipes handles GET /recipes
func (r *Router) handleListRecipes(w http.ResponseWriter, req *http.Request) {
	resp, err := r.svc.ListRecipes(req.Context(), ownerFromContext(req))
	if err != nil {
		r.handleAndLogError(w, req, err, "list recipes")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleCreateRecipe handles POST /recipes
func (r *Router) handleCreateRecipe(w http.ResponseWriter, req *http.Request) {
	var body api.RecipeInput
	if err := decodeRequestBody(w, req, &body); err != nil {
		return
	}

	recipe, err := r.svc.CreateRecipe(req.Context(), ownerFromContext(req), &body)
	if err != nil {
		r.handleAndLogError(w, req, err, "create recipe")
		return
	}

	writeJSON(w, http.StatusCreated, recipe)
}

// handleGetRecipe handles GET /recipes/{id}
func (r *Router) handleGetRecipe(w http.ResponseWriter, req *http.Request) {
	id, ok := getRecipeID(w, req)
	if !ok {
		return
	}

	recipe, err := r.svc.GetRecipe(req.Context(), ownerFromContext(req), id)
	if err != nil {
		r.handleAndLogError(w, req, err, "get recipe")
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}

// handleGetRecipeBySlug handles GET /recipes/slug/{slug}
func (r *Router) handleGetRecipeBySlug(w http.ResponseWriter, req *http.Request) {
	slug, ok := getRequiredURLParam(w, req, "slug")
	if !ok {
		return
	}

	recipe, err := r.svc.GetRecipeBySlug(req.Context(), ownerFromContext(req), slug)
	if err != nil {
		r.handleAndLogError(w, req, err, "get recipe")
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}

// handleUpdateRecipe handles PUT /recipes/{id}
func (r *Router) handleUpdateRecipe(w http.ResponseWriter, req *http.Request) {
	id, ok := getRecipeID(w, req)
	if !ok {
		return
	}

	var body api.RecipeInput
	if err := decodeRequestBody(w, req, &body); err != nil {
		return
	}

	recipe, err := r.svc.UpdateRecipe(req.Context(), ownerFromContext(req), id, &body)
	if err != nil {
		r.handleAndLogError(w, req, err, "update recipe")
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}

// handleDeleteRecipe handles DELETE /recipes/{id}
func (r *Router) handleDeleteRecipe(w http.ResponseWriter, req *http.Request) {
	id, ok := getRecipeID(w, req)
	if !ok {
		return
	}

	recipe, err := r.svc.DeleteRecipe(req.Context(), ownerFromContext(req), id)
	if err != nil {
		r.handleAndLogError(w, req, err, "delete recipe")
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}

// handleUploadRecipeImage handles POST /recipes/{id}/image with a multipart body whose "image"
// part carries the file. The part's own Content-Type is the declared image type.
func (r *Router) handleUploadRecipeImage(w http.ResponseWriter, req *http.Request) {
	id, ok := getRecipeID(w, req)
	if !ok {
		return
	}

	req.Body = http.MaxBytesReader(w, req.Body, constants.MaxImageUploadBytes)
	if err := req.ParseMultipartForm(constants.MaxImageUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorResponse(w, http.StatusRequestEntityTooLarge, "Invalid image", "image is too large")
			return
		}
		writeErrorResponse(w, http.StatusBadRequest, "Invalid image", err.Error())
		return
	}
	defer func() { _ = req.MultipartForm.RemoveAll() }()

	file, header, err := req.FormFile(constants.ImageFormField)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid image",
			constants.ImageFormField+" part is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid image", err.Error())
		return
	}

	recipe, err := r.svc.UploadRecipeImage(req.Context(), ownerFromContext(req), id,
		header.Header.Get(constants.ContentTypeHeader), data)
	if err != nil {
		r.handleAndLogError(w, req, err, "upload recipe image")
		return
	}

	writeJSON(w, http.StatusOK, recipe)
}
