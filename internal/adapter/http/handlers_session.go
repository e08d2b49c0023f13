package adapthttp

import "net/http"

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	token, err := s.sessions.CreateOrRefresh(r.Context(), s.clientAddress(r))
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if s.metrics != nil {
		s.metrics.SessionsCreated.Inc()
	}
	w.Header().Set("Token", token)
	writeJSON(w, http.StatusCreated, map[string]any{"token": token})
}

func (s *Server) handleOnlineCount(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	n, err := s.sessions.OnlineCount(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"online_users": n})
}
