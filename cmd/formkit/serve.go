package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
	"github.com/goliatone/go-formkit/pkg/renderers/react"
	"github.com/goliatone/go-formkit/pkg/store"
)

func newServeCommand(dir *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored definitions for preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openStore(*dir)
			if err != nil {
				return err
			}
			return runServer(commandContext(cmd), addr, s)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8787", "listen address")
	return cmd
}

type previewServer struct {
	store *store.Store
	html  *html.Renderer
}

// newPreviewHandler wires the preview routes over a store.
func newPreviewHandler(s *store.Store) (http.Handler, error) {
	htmlRenderer, err := html.New()
	if err != nil {
		return nil, err
	}
	srv := &previewServer{store: s, html: htmlRenderer}

	router := mux.NewRouter()
	router.Use(requestLogger)
	router.HandleFunc("/forms", srv.handleList).Methods(http.MethodGet)
	router.HandleFunc("/forms/{id}", srv.handleDefinition).Methods(http.MethodGet)
	router.HandleFunc("/forms/{id}/schema", srv.handleSchema).Methods(http.MethodGet)
	router.HandleFunc("/forms/{id}/component", srv.handleComponent).Methods(http.MethodGet)
	router.HandleFunc("/forms/{id}/preview", srv.handlePreview).Methods(http.MethodGet)
	router.HandleFunc("/forms/{id}/submissions", srv.handleSubmission).Methods(http.MethodPost)
	return router, nil
}

func runServer(ctx context.Context, addr string, s *store.Store) error {
	router, err := newPreviewHandler(s)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", addr).Info("preview server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}

func (s *previewServer) load(w http.ResponseWriter, r *http.Request) (formkit.FormDefinition, bool) {
	id := mux.Vars(r)["id"]
	def, err := s.store.Load(id)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "form not found", http.StatusNotFound)
		return formkit.FormDefinition{}, false
	}
	if err != nil {
		logrus.WithError(err).Error("load definition")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return formkit.FormDefinition{}, false
	}
	return def, true
}

func (s *previewServer) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List()
	if err != nil {
		logrus.WithError(err).Error("list definitions")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"forms": ids})
}

func (s *previewServer) handleDefinition(w http.ResponseWriter, r *http.Request) {
	def, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, def)
}

func (s *previewServer) handleSchema(w http.ResponseWriter, r *http.Request) {
	def, ok := s.load(w, r)
	if !ok {
		return
	}
	payload, err := formkit.ToJSONSchema(def)
	if err != nil {
		logrus.WithError(err).Error("project schema")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/schema+json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

func (s *previewServer) handleComponent(w http.ResponseWriter, r *http.Request) {
	def, ok := s.load(w, r)
	if !ok {
		return
	}
	exporter := react.New()
	w.Header().Set("Content-Type", exporter.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(exporter.Source(def))
}

func (s *previewServer) handlePreview(w http.ResponseWriter, r *http.Request) {
	def, ok := s.load(w, r)
	if !ok {
		return
	}
	page, err := s.html.Render(r.Context(), def, render.RenderOptions{})
	if err != nil {
		logrus.WithError(err).Error("render preview")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.html.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}

func (s *previewServer) handleSubmission(w http.ResponseWriter, r *http.Request) {
	def, ok := s.load(w, r)
	if !ok {
		return
	}

	var values map[string]any
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		http.Error(w, "request body must be a JSON object", http.StatusBadRequest)
		return
	}

	if errs := formkit.Validate(def, values); len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"accepted": false,
			"errors":   errs,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"accepted": true,
		"values":   values,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("encode response")
	}
}
