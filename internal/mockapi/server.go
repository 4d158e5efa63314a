package mockapi

import (
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

type Options struct {
	// Latency is added to every request.
	Latency time.Duration
	// FailureRate is the fraction of requests answered with a 500.
	FailureRate float64
	Logger      *slog.Logger
}

type Server struct {
	store *Store
	opts  Options
	rnd   func() float64
}

func NewServer(store *Store, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Server{store: store, opts: opts, rnd: rand.Float64}
}

// Router mounts the backend routes under /api.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.chaos)
	api.HandleFunc("/products", s.listProducts).Methods(http.MethodGet)
	api.HandleFunc("/product/{id}", s.deleteProduct).Methods(http.MethodDelete)
	api.HandleFunc("/dashboard-summary", s.dashboardSummary).Methods(http.MethodGet)
	return r
}

func (s *Server) chaos(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.Latency > 0 {
			select {
			case <-time.After(s.opts.Latency):
			case <-r.Context().Done():
				return
			}
		}
		if s.opts.FailureRate > 0 && s.rnd() < s.opts.FailureRate {
			s.opts.Logger.Info("mock_failure", slog.String("path", r.URL.Path))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Simulated server failure"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid page"})
			return
		}
		page = p
	}
	writeJSON(w, http.StatusOK, s.store.List(page, r.URL.Query().Get("search")))
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.store.Delete(id) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Product not found"})
		return
	}
	s.opts.Logger.Info("mock_product_deleted", slog.String("id", id))
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product removed"})
}

func (s *Server) dashboardSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Summary())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
