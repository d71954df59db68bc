package handlers

import "net/http"

// Health handles GET /health for load balancers and probes.
func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// Root handles GET / with the service banner.
func Root(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Arithmetic Service is running",
	})
}
