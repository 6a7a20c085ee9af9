package main

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"
)

func init() {
	// wait group for runStatusService
	wg.Add(1)
}

type statusResponse struct {
	Response string      `json:"response"`
	Error    string      `json:"error,omitempty"`
	Board    boardStatus `json:"board,omitempty"`
}

// configRequest is the POST /api/config body.
type configRequest struct {
	Plugin string          `json:"plugin"`
	Config json.RawMessage `json:"config"`
}

type apiHandler struct {
	rt     runtimeConfig
	secret string
	user   string
	realm  string
}

func newAPIHandler(rt runtimeConfig) apiHandler {
	secret := rt.settings.GetString(sAPISecret)
	if secret == "" {
		// no configured secret means a per-run one; read it from the log
		secret = rt.clock.Now().String()
		rt.logger.Printf("api secret for this run: %s", secret)
	}
	return apiHandler{
		rt:     rt,
		secret: secret,
		user:   rt.settings.GetString(sAPIUser),
		realm:  "signboard",
	}
}

// BasicAuth binds to a object instance, and without accessors it
// will bind the string values instead of references
func (m *apiHandler) getUser() string {
	return m.user
}

func (m *apiHandler) getSecret() string {
	return m.secret
}

func (m *apiHandler) getRealm() string {
	return m.realm
}

// BasicAuth - provide a middleware to authenticate users
func (m *apiHandler) BasicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(user), []byte(m.getUser())) != 1 || subtle.ConstantTimeCompare([]byte(pass), []byte(m.getSecret())) != 1 {
			w.Header().Set("WWW-Authenticate", `Basic realm="`+m.getRealm()+`"`)
			w.WriteHeader(401)
			w.Write([]byte("Unauthorised.\n"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeAnswer(w http.ResponseWriter, sr statusResponse) {
	output, _ := json.Marshal(sr)
	w.Write(output)
}

func (m *apiHandler) apiStatus(w http.ResponseWriter, r *http.Request) {
	writeAnswer(w, statusResponse{Response: "OK", Board: m.rt.status.get()})
}

func (m *apiHandler) apiRefresh(w http.ResponseWriter, r *http.Request) {
	m.rt.comms.board <- boardMsg{id: msgRefresh}
	writeAnswer(w, statusResponse{Response: "OK"})
}

func (m *apiHandler) apiNext(w http.ResponseWriter, r *http.Request) {
	m.rt.comms.board <- boardMsg{id: msgNextPlugin}
	writeAnswer(w, statusResponse{Response: "OK"})
}

func (m *apiHandler) apiConfig(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		w.WriteHeader(400)
		writeAnswer(w, statusResponse{Response: "BAD", Error: err.Error()})
		return
	}
	var req configRequest
	if err := json.Unmarshal(body, &req); err != nil || req.Plugin == "" {
		w.WriteHeader(400)
		writeAnswer(w, statusResponse{Response: "BAD", Error: "want {plugin, config}"})
		return
	}
	m.rt.comms.board <- configMsg(req.Plugin, []byte(req.Config))
	writeAnswer(w, statusResponse{Response: "OK"})
}

func (m *apiHandler) rootHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/static/index.html", 301)
}

func startStatusService(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "Status"}
	go runStatusService(rt)
}

func runStatusService(rt runtimeConfig) {
	defer wg.Done()
	defer func() {
		rt.logger.Println("exiting runStatusService")
	}()

	handler := newAPIHandler(rt)
	rt.statusSvc.launch(&handler, rt.settings.GetString(sHTTPAddr))

	comms := rt.comms

	for {
		select {
		case <-comms.quit:
			rt.logger.Println("got a quit signal in runStatusService")
			rt.statusSvc.stop()
			return
		default:
			rt.clock.Sleep(dSvcSleep)
		}
	}
}

// testStatusService records launch/stop without binding a port.
type testStatusService struct {
	launched bool
	stopped  bool
	addr     string
	handler  *apiHandler
}

func (t *testStatusService) launch(handler *apiHandler, addr string) {
	t.launched = true
	t.addr = addr
	t.handler = handler
}

func (t *testStatusService) stop() {
	t.stopped = true
}
