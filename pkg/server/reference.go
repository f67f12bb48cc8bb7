package server

import (
	"net/http"
)

func (s *Server) handleGetRates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, s.controller.Rates(), http.StatusOK)
}

func (s *Server) handleListVehicleClasses(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, s.controller.Classes().List(), http.StatusOK)
}
