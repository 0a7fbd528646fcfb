// Package demobackend is a toy prediction backend for exercising the
// backend and fallback paths by hand. It speaks the same wire format as a
// real model server and can be switched between answer modes at runtime.
package demobackend

import (
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/raysh454/jobcheck/internal/logging"
	"github.com/raysh454/jobcheck/internal/predictor"
)

// keywords drive the derived probability: each hit adds 0.15 to a base of 0.1.
var keywords = []string{
	"work from home", "no experience", "western union", "wire transfer",
	"upfront", "guaranteed", "telegram", "whatsapp", "urgent", "bank account",
}

// State is the runtime-adjustable part of Config.
type State struct {
	ResponseKey string  `json:"response_key"`
	Probability float64 `json:"probability"`
	Mode        string  `json:"mode"`
	Requests    int     `json:"requests"`
}

// DemoBackend is a simple HTTP server imitating a fraud model.
type DemoBackend struct {
	cfg    Config
	logger logging.Logger
	tmpl   *template.Template

	mu    sync.RWMutex
	state State
}

// NewDemoBackend creates a new demo backend instance.
func NewDemoBackend(cfg Config, logger logging.Logger) *DemoBackend {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	d := &DemoBackend{
		cfg:    cfg,
		logger: logger.With(logging.Field{Key: "component", Value: "demobackend"}),
		tmpl:   template.Must(template.New("control").Parse(controlPanelHTML)),
	}
	d.reset()
	return d
}

func (d *DemoBackend) reset() {
	d.mu.Lock()
	d.state = State{ResponseKey: d.cfg.ResponseKey, Probability: d.cfg.Probability, Mode: d.cfg.Mode}
	d.mu.Unlock()
}

// Handler returns the routes without listening, for tests and embedding.
func (d *DemoBackend) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /predict", d.predictHandler)

	// Control panel for switching answers
	mux.HandleFunc("GET /demo/control", d.controlPanelHandler)
	mux.HandleFunc("GET /demo/state", d.stateHandler)
	mux.HandleFunc("POST /demo/set", d.setHandler)
	mux.HandleFunc("POST /demo/reset", d.resetHandler)
	return mux
}

// Start listens on cfg.Port.
func (d *DemoBackend) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Port)
	d.logger.Info("demo backend starting",
		logging.Field{Key: "predict", Value: "http://localhost" + addr + "/predict"},
		logging.Field{Key: "control", Value: "http://localhost" + addr + "/demo/control"})
	return http.ListenAndServe(addr, d.Handler())
}

// Score derives a probability from keyword hits in text.
func Score(text string) float64 {
	text = strings.ToLower(text)
	p := 0.1
	for _, k := range keywords {
		if strings.Contains(text, k) {
			p += 0.15
		}
	}
	return math.Min(p, 0.99)
}

func (d *DemoBackend) predictHandler(w http.ResponseWriter, r *http.Request) {
	var req predictor.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	d.mu.Lock()
	d.state.Requests++
	st := d.state
	d.mu.Unlock()

	d.logger.Info("prediction requested",
		logging.Field{Key: "mode", Value: st.Mode},
		logging.Field{Key: "text_len", Value: len(req.FullText)})

	switch st.Mode {
	case ModeError:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "model unavailable"})
		return
	case ModeMalformed:
		writeJSON(w, http.StatusOK, map[string]string{"label": "fraudulent"})
		return
	case ModeSlow:
		select {
		case <-time.After(d.cfg.Delay):
		case <-r.Context().Done():
			return
		}
	}

	p := st.Probability
	if p < 0 {
		p = Score(req.FullText)
	}
	writeJSON(w, http.StatusOK, map[string]float64{st.ResponseKey: p})
}

func (d *DemoBackend) stateHandler(w http.ResponseWriter, r *http.Request) {
	d.mu.RLock()
	st := d.state
	d.mu.RUnlock()
	writeJSON(w, http.StatusOK, st)
}

// setHandler updates any of key, probability and mode from form values.
func (d *DemoBackend) setHandler(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.FormValue("key"))
	mode := r.FormValue("mode")
	probStr := r.FormValue("probability")

	var prob float64
	if probStr != "" {
		v, err := strconv.ParseFloat(probStr, 64)
		if err != nil || v > 1 {
			http.Error(w, "Invalid probability", http.StatusBadRequest)
			return
		}
		prob = v
	}
	switch mode {
	case "", ModeOK, ModeError, ModeMalformed, ModeSlow:
	default:
		http.Error(w, "Invalid mode", http.StatusBadRequest)
		return
	}

	d.mu.Lock()
	if key != "" {
		d.state.ResponseKey = key
	}
	if probStr != "" {
		d.state.Probability = prob
	}
	if mode != "" {
		d.state.Mode = mode
	}
	st := d.state
	d.mu.Unlock()

	d.logger.Info("demo state changed",
		logging.Field{Key: "key", Value: st.ResponseKey},
		logging.Field{Key: "probability", Value: st.Probability},
		logging.Field{Key: "mode", Value: st.Mode})
	writeJSON(w, http.StatusOK, st)
}

func (d *DemoBackend) resetHandler(w http.ResponseWriter, r *http.Request) {
	d.reset()
	d.stateHandler(w, r)
}

// controlPanelHandler serves the control panel.
func (d *DemoBackend) controlPanelHandler(w http.ResponseWriter, r *http.Request) {
	d.mu.RLock()
	data := struct {
		State
		Keys  []string
		Modes []string
	}{
		State: d.state,
		Keys:  append(append([]string(nil), predictor.ResponseKeys...), "score"),
		Modes: []string{ModeOK, ModeError, ModeMalformed, ModeSlow},
	}
	d.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html")
	_ = d.tmpl.Execute(w, data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

const controlPanelHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Demo Backend Control Panel</title>
    <style>
        body { font-family: system-ui, -apple-system, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; background: #f5f5f5; }
        h1 { color: #333; border-bottom: 2px solid #007bff; padding-bottom: 10px; }
        .card { background: white; border-radius: 8px; padding: 20px; margin: 15px 0; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        .info-box { background: #e7f3ff; padding: 15px; border-radius: 8px; margin-bottom: 20px; border-left: 4px solid #007bff; }
        label { display: block; margin: 10px 0 4px; font-weight: bold; }
        button { padding: 8px 16px; border: none; border-radius: 4px; cursor: pointer; background: #007bff; color: white; margin-top: 15px; }
        .reset-btn { background: #dc3545; }
        code { background: #eee; padding: 2px 4px; border-radius: 3px; }
    </style>
</head>
<body>
    <h1>Demo Backend Control Panel</h1>

    <div class="info-box">
        <strong>How to use:</strong> point jobcheck at <code>/predict</code> with <code>-backend</code>,
        then switch the answer here to watch the checker fall back to its local rules.
        Served {{.Requests}} predictions so far.
    </div>

    <form class="card" method="post" action="/demo/set">
        <label for="key">Response key</label>
        <select id="key" name="key">
            {{range .Keys}}<option value="{{.}}" {{if eq . $.ResponseKey}}selected{{end}}>{{.}}</option>{{end}}
        </select>

        <label for="probability">Probability (negative derives it from keywords)</label>
        <input id="probability" name="probability" type="number" step="0.01" max="1" value="{{.Probability}}">

        <label for="mode">Mode</label>
        <select id="mode" name="mode">
            {{range .Modes}}<option value="{{.}}" {{if eq . $.Mode}}selected{{end}}>{{.}}</option>{{end}}
        </select>

        <button type="submit">Apply</button>
    </form>

    <form method="post" action="/demo/reset">
        <button class="reset-btn" type="submit">Reset</button>
    </form>
</body>
</html>`
