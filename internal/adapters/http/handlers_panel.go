package web

import (
	"net/http"

	"treetroopers/internal/application/editsession"
	"treetroopers/internal/domain/eventlist"
)

type panelResponse struct {
	Rows []eventlist.PanelRow `json:"rows"`
}

// panelRequest carries the panel's unsaved row inputs. Move and delete apply
// them first when present so typing is not lost.
type panelRequest struct {
	Rows    []eventlist.PanelRow `json:"rows"`
	From    int                  `json:"from"`
	To      int                  `json:"to"`
	Harvest *editsession.Harvest `json:"harvest"`
}

func writeRows(w http.ResponseWriter, rows []eventlist.PanelRow, err error) {
	if err != nil {
		editError(w, err)
		return
	}
	if rows == nil {
		rows = []eventlist.PanelRow{}
	}
	writeJSON(w, http.StatusOK, panelResponse{Rows: rows})
}

func decodePanel(w http.ResponseWriter, r *http.Request) (panelRequest, bool) {
	var req panelRequest
	if err := strictDecode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	return req, true
}

// handlePanelRows handles GET /api/edit/events/panel
func handlePanelRows(w http.ResponseWriter, r *http.Request) {
	rows, err := stores.Session.PanelRows()
	writeRows(w, rows, err)
}

// handlePanelOpen handles POST /api/edit/events/panel/open
func handlePanelOpen(w http.ResponseWriter, r *http.Request) {
	rows, err := stores.Session.OpenPanel()
	writeRows(w, rows, err)
}

// handlePanelClose handles POST /api/edit/events/panel/close {harvest?}.
// Unapplied row edits are dropped; typed page text is kept.
func handlePanelClose(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePanel(w, r)
	if !ok {
		return
	}
	stores.Session.ClosePanel(req.Harvest)
	writeState(w)
}

// handlePanelAdd handles POST /api/edit/events/panel/add
func handlePanelAdd(w http.ResponseWriter, r *http.Request) {
	rows, err := stores.Session.PanelAdd()
	writeRows(w, rows, err)
}

// handlePanelSort handles POST /api/edit/events/panel/sort
func handlePanelSort(w http.ResponseWriter, r *http.Request) {
	rows, err := stores.Session.PanelSort(siteLocation())
	writeRows(w, rows, err)
}

// handlePanelApply handles POST /api/edit/events/panel/apply {rows, harvest?}
func handlePanelApply(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePanel(w, r)
	if !ok {
		return
	}
	rows, err := stores.Session.PanelApply(req.Harvest, req.Rows)
	writeRows(w, rows, err)
}

// handlePanelMove handles POST /api/edit/events/panel/move {rows?, from, to}.
// An out-of-range destination leaves the order unchanged.
func handlePanelMove(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePanel(w, r)
	if !ok {
		return
	}
	rows, err := stores.Session.PanelMove(req.Rows, req.From, req.To)
	writeRows(w, rows, err)
}

// handlePanelDelete handles DELETE /api/edit/events/panel/{index} {rows?}
func handlePanelDelete(w http.ResponseWriter, r *http.Request) {
	i, ok := pathIndex(w, r)
	if !ok {
		return
	}
	req, ok := decodePanel(w, r)
	if !ok {
		return
	}
	rows, err := stores.Session.PanelDelete(req.Rows, i)
	writeRows(w, rows, err)
}
