package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"treetroopers/internal/application/editsession"
	"treetroopers/internal/domain/content"
	"treetroopers/internal/domain/theme"
)

// stateResponse is returned by every edit operation so the page can re-render.
type stateResponse struct {
	Editing   bool                `json:"editing"`
	PanelOpen bool                `json:"panelOpen"`
	Version   uint64              `json:"version"`
	Content   content.SiteContent `json:"content"`
	Theme     theme.Theme         `json:"theme"`
}

func writeState(w http.ResponseWriter) {
	v := stores.Session.View()
	writeJSON(w, http.StatusOK, stateResponse{
		Editing:   v.Editing,
		PanelOpen: v.PanelOpen,
		Version:   v.Version,
		Content:   v.Content,
		Theme:     v.Theme,
	})
}

// editError maps edit-session errors to status codes.
func editError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, editsession.ErrNotEditing),
		errors.Is(err, editsession.ErrAlreadyEditing),
		errors.Is(err, editsession.ErrPanelClosed):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, content.ErrUnknownCollection),
		errors.Is(err, content.ErrIndexOutOfRange):
		writeError(w, http.StatusNotFound, err.Error())
	case isUploadError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		internalError(w, err)
	}
}

// bodyHarvest decodes the optional on-page text sent as the JSON body of an
// item edit. An empty body yields nil.
func bodyHarvest(w http.ResponseWriter, r *http.Request) (*editsession.Harvest, bool) {
	var h *editsession.Harvest
	if err := strictDecode(r, &h); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	return h, true
}

// formHarvest decodes the optional "harvest" multipart field sent with an
// upload. Call it after the form has been parsed.
func formHarvest(w http.ResponseWriter, r *http.Request) (*editsession.Harvest, bool) {
	v := r.FormValue("harvest")
	if v == "" {
		return nil, true
	}
	var h editsession.Harvest
	dec := json.NewDecoder(strings.NewReader(v))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&h); err != nil {
		writeError(w, http.StatusBadRequest, "invalid harvest field")
		return nil, false
	}
	return &h, true
}

func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	i, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "index must be an integer")
		return 0, false
	}
	return i, true
}

// handleEditStart handles POST /api/edit/start
func handleEditStart(w http.ResponseWriter, r *http.Request) {
	if err := stores.Session.StartEdit(); err != nil {
		editError(w, err)
		return
	}
	writeState(w)
}

// handleEditSave handles POST /api/edit/save. The body is the text harvested
// from the page; an empty body saves the live content as is.
func handleEditSave(w http.ResponseWriter, r *http.Request) {
	var h editsession.Harvest
	if err := strictDecode(r, &h); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := stores.Session.SaveEdits(r.Context(), h); err != nil {
		editError(w, err)
		return
	}
	writeState(w)
}

// handleEditCancel handles POST /api/edit/cancel
func handleEditCancel(w http.ResponseWriter, r *http.Request) {
	if err := stores.Session.CancelEdits(); err != nil {
		editError(w, err)
		return
	}
	writeState(w)
}

// handleAddItem handles POST /api/edit/items/{collection}. The optional body
// is the unsaved page text.
func handleAddItem(w http.ResponseWriter, r *http.Request) {
	col, err := content.ParseCollection(r.PathValue("collection"))
	if err != nil {
		editError(w, err)
		return
	}
	if col == content.CollectionGallery {
		writeError(w, http.StatusBadRequest, "photos are added by uploading to /api/edit/gallery")
		return
	}
	h, ok := bodyHarvest(w, r)
	if !ok {
		return
	}
	if err := stores.Session.AddItem(h, col); err != nil {
		editError(w, err)
		return
	}
	writeState(w)
}

// handleDeleteItem handles DELETE /api/edit/items/{collection}/{index}. The
// optional body is the unsaved page text, indexed as rendered before the delete.
func handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	col, err := content.ParseCollection(r.PathValue("collection"))
	if err != nil {
		editError(w, err)
		return
	}
	i, ok := pathIndex(w, r)
	if !ok {
		return
	}
	h, ok := bodyHarvest(w, r)
	if !ok {
		return
	}
	if err := stores.Session.DeleteItem(h, col, i); err != nil {
		editError(w, err)
		return
	}
	writeState(w)
}

type themeRequest struct {
	P1      string               `json:"p1"`
	P2      string               `json:"p2"`
	P3      string               `json:"p3"`
	Harvest *editsession.Harvest `json:"harvest"`
}

// handleSetTheme handles PUT /api/edit/theme. Blank colours keep their value.
func handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := stores.Session.SetTheme(req.Harvest, req.P1, req.P2, req.P3); err != nil {
		editError(w, err)
		return
	}
	writeState(w)
}

// handleSetLogo handles POST /api/edit/logo (multipart "image", optional "harvest")
func handleSetLogo(w http.ResponseWriter, r *http.Request) {
	src, h, ok := readUpload(w, r)
	if !ok {
		return
	}
	if err := stores.Session.SetLogo(h, src); err != nil {
		editError(w, err)
		return
	}
	writeState(w)
}

// handleSetOfficerPhoto handles POST /api/edit/officers/{index}/photo (multipart "image", optional "harvest")
func handleSetOfficerPhoto(w http.ResponseWriter, r *http.Request) {
	i, ok := pathIndex(w, r)
	if !ok {
		return
	}
	src, h, ok := readUpload(w, r)
	if !ok {
		return
	}
	if err := stores.Session.SetOfficerPhoto(h, i, src); err != nil {
		editError(w, err)
		return
	}
	writeState(w)
}

// handleAddPhoto handles POST /api/edit/gallery (multipart "image", optional "harvest")
func handleAddPhoto(w http.ResponseWriter, r *http.Request) {
	src, h, ok := readUpload(w, r)
	if !ok {
		return
	}
	if err := stores.Session.AddPhoto(h, src); err != nil {
		editError(w, err)
		return
	}
	writeState(w)
}

// handleSetBeforeAfter handles POST /api/edit/before-after (multipart
// "image" plus "choice": any value containing "after" replaces the after image).
func handleSetBeforeAfter(w http.ResponseWriter, r *http.Request) {
	src, h, ok := readUpload(w, r)
	if !ok {
		return
	}
	if _, err := stores.Session.SetBeforeAfterImage(h, r.FormValue("choice"), src); err != nil {
		editError(w, err)
		return
	}
	writeState(w)
}

// readUpload reads the uploaded image and the page text sent with it. On
// failure the response has been written.
func readUpload(w http.ResponseWriter, r *http.Request) (string, *editsession.Harvest, bool) {
	src, err := readImageDataURL(w, r)
	if err != nil {
		editError(w, err)
		return "", nil, false
	}
	h, ok := formHarvest(w, r)
	return src, h, ok
}
