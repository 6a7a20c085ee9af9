package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/net/context"
)

type httpStatusService struct {
	srv     *http.Server
	handler *apiHandler
}

func (h *httpStatusService) launch(handler *apiHandler, addr string) {
	h.handler = handler

	api := []struct {
		path   string
		method string
		fn     http.HandlerFunc
	}{
		{"/api/status", "GET", handler.apiStatus},
		{"/api/refresh", "POST", handler.apiRefresh},
		{"/api/next", "POST", handler.apiNext},
		{"/api/config", "POST", handler.apiConfig},
	}

	r := mux.NewRouter()
	r.Use(handler.BasicAuth)
	for _, e := range api {
		r.HandleFunc(e.path, e.fn).Methods(e.method)
	}
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("./static")))).Methods("GET")
	r.HandleFunc("/", handler.rootHandler)

	h.srv = &http.Server{Addr: addr, Handler: r}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("status service listening on %s", addr)
		log.Print(h.srv.ListenAndServe())
	}()
}

func (h *httpStatusService) stop() {
	if h.srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	h.srv.Shutdown(ctx)
}
