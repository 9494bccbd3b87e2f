package routes

import (
	"fmt"
	"io"
	"net/http"

	"github.com/docker/cli/cli/command/formatter/tabwriter"
	"github.com/go-chi/chi"
	"github.com/go-chi/cors"
)

type AddRoutesFn func(router chi.Router)

// Add registers the routes behind a cors handler that lets the catalogue
// frontend call the api from the browser.
func Add(r chi.Router, routes ...AddRoutesFn) {
	cors := cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})

	r.Use(cors)

	for _, route := range routes {
		route(r)
	}
}

// Print writes the method and path of every registered route.
func Print(r chi.Router, out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "Method\tRoute\tMiddlewares")

	err := chi.Walk(r, func(method, route string, _ http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\n", method, route, len(middlewares))

		return nil
	})
	if err != nil {
		return fmt.Errorf("walking routes: %w", err)
	}

	return w.Flush()
}
