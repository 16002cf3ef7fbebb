package scansion

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	So "github.com/maroda/scansion/obvy"
	Ss "github.com/maroda/scansion/server"
	St "github.com/maroda/scansion/types"
)

const (
	maxBodyBytes   = 1 << 20
	defaultHistory = 24 * time.Hour
)

// SetupMux handles all data serving:
// - Prometheus metric endpoint
// - Websocket for line-by-line scansion
// - Version and meter vocabulary for programmatic use
// - Poem analysis and stored history
func (v *View) SetupMux() *mux.Router {
	r := mux.NewRouter()

	r.Handle("/metrics", v.Stats.Handler())
	r.HandleFunc("/ws", v.WebsocketHandler)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(v.StatsMiddleware)
	api.HandleFunc("/version", v.VersionHandler).Methods(http.MethodGet)
	api.HandleFunc("/meters", v.MetersHandler).Methods(http.MethodGet)
	api.HandleFunc("/system", v.SystemHandler).Methods(http.MethodGet)
	api.HandleFunc("/analyze", v.AnalyzeHandler)
	api.HandleFunc("/history", v.HistoryHandler).Methods(http.MethodGet)

	return r
}

var Version = "dev"

func (v *View) VersionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"version": Version})
}

// MeterInfo describes one template of the closed vocabulary
type MeterInfo struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Glyph    string `json:"glyph"`
	Template []int  `json:"template"`
}

func (v *View) MetersHandler(w http.ResponseWriter, r *http.Request) {
	meters := make([]MeterInfo, 0, len(St.Meters))
	for _, m := range St.Meters {
		meters = append(meters, MeterInfo{
			Key:      m.String(),
			Label:    m.Label(),
			Glyph:    string(m.Glyph()),
			Template: m.Template(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(meters)
}

// AnalyzeRequest is the body of POST /api/analyze.
// Text is split on line breaks, or on sentence punctuation when Sentences is set.
type AnalyzeRequest struct {
	Language  St.Language `json:"language"`
	Text      string      `json:"text"`
	Sentences bool        `json:"sentences"`
}

func (v *View) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "invalid method, use POST", http.StatusMethodNotAllowed)
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	req.Language = normalizeLang(string(req.Language), v.Language)

	var lines []string
	if req.Sentences {
		lines = Ss.SplitIntoLines(req.Text)
	} else {
		lines = Ss.SplitVerses(req.Text)
	}
	if len(lines) == 0 {
		http.Error(w, "no text to analyze", http.StatusBadRequest)
		return
	}

	poem, err := v.Analyze(r.Context(), req.Language, lines)
	if errors.Is(err, Ss.ErrUnsupportedLanguage) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		slog.Error("Analyze request failed", slog.Any("Error", err))
		http.Error(w, "analysis failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(poem)
}

// HistoryHandler lists stored analyses created within ?since= (default 24h)
func (v *View) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	if v.Output == nil {
		http.Error(w, "no output configured", http.StatusInternalServerError)
		return
	}

	since := defaultHistory
	if s := r.URL.Query().Get("since"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			http.Error(w, "invalid since duration", http.StatusBadRequest)
			return
		}
		since = d
	}

	// Buffered analyses are not visible until flushed
	if err := v.Output.Flush(); err != nil {
		slog.Error("Output flush failed", slog.Any("Error", err))
	}

	now := time.Now()
	poems, err := v.Output.QueryRange(now.Add(-since), now.Add(time.Nanosecond))
	if err != nil {
		slog.Error("History query failed", slog.Any("Error", err))
		http.Error(w, "history not available from "+v.Output.Type(), http.StatusInternalServerError)
		return
	}
	if poems == nil {
		poems = []*St.PoemAnalysis{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(poems)
}

// SystemInfo reports how this process is wired
type SystemInfo struct {
	Version      string `json:"version"`
	Language     string `json:"language"`
	EnglishWords int    `json:"english_words"`
	RussianModel string `json:"russian_model"`
	Output       string `json:"output"`
	MIDIPort     string `json:"midi_port,omitempty"`
	MIDIChannel  int    `json:"midi_channel,omitempty"`
	MIDIRoot     int    `json:"midi_root,omitempty"`
}

func (v *View) SystemHandler(w http.ResponseWriter, r *http.Request) {
	info := &SystemInfo{
		Version:  Version,
		Language: string(v.Language),
		Output:   "none",
	}

	if v.Lexicon != nil {
		info.EnglishWords = len(v.Lexicon.English)
		switch acc := v.Lexicon.Russian.(type) {
		case *Ss.HTTPAccentizer:
			info.RussianModel = acc.URL
		case *Ss.DictAccentizer:
			info.RussianModel = "dictionary (" + strconv.Itoa(len(acc.Dict)) + " words)"
		case nil:
			info.RussianModel = "none"
		default:
			info.RussianModel = "custom"
		}
	}

	if v.Output != nil {
		info.Output = v.Output.Type()
		v.getMIDISystemInfo(info)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}

// Analyze runs a poem through the lexicon with tracing and stats,
// then hands it to the output adapter if there is one
func (v *View) Analyze(ctx context.Context, lang St.Language, lines []string) (*St.PoemAnalysis, error) {
	if v.Lexicon == nil {
		return nil, errors.New("no lexicon loaded")
	}

	ctx, span := otel.Tracer(So.TracerName).Start(ctx, "AnalyzePoem")
	defer span.End()
	span.SetAttributes(
		attribute.String("scansion.language", string(lang)),
		attribute.Int("scansion.lines", len(lines)))

	start := time.Now()
	poem, err := v.Lexicon.AnalyzePoem(ctx, lang, lines)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("scansion.dominant", poem.Dominant.String()))
	if v.Stats != nil {
		v.Stats.RecAnalyzeTimer(time.Since(start).Seconds())
		v.Stats.RecAnalysis(string(lang), poem.Dominant.String(), poem.Analyzed)
	}

	if v.Output != nil {
		if err := v.Output.WritePoem(poem); err != nil {
			// the analysis is still good, only the output missed it
			slog.Error("Output write failed",
				slog.String("output", v.Output.Type()),
				slog.String("id", poem.ID),
				slog.Any("Error", err))
		}
	}

	return poem, nil
}

// RespWriter is a wrapper with StatsMiddleware, used for Prometheus
type RespWriter struct {
	http.ResponseWriter
	Status int
}

// WriteHeader is a helper for StatsMiddleware, used for Prometheus
func (w *RespWriter) WriteHeader(status int) {
	w.Status = status
	w.ResponseWriter.WriteHeader(status)
}

// Write is a helper for StatsMiddleware, used for Prometheus
func (w *RespWriter) Write(b []byte) (int, error) {
	return w.ResponseWriter.Write(b)
}

func (v *View) StatsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := &RespWriter{
			ResponseWriter: w,
			Status:         200,
		}
		next.ServeHTTP(wrapped, r)

		v.Stats.RecWWW(strconv.Itoa(wrapped.Status), r.Method)
	})
}

// StartWeb serves the API until ctx is done.
// HTTP handlers are wrapped for OpenTelemetry.
func StartWeb(ctx context.Context, addr string, view *View) error {
	if view.Stats == nil {
		view.Stats = So.NewStatsInternal()
	}

	view.server = &http.Server{
		Addr:              addr,
		Handler:           otelhttp.NewHandler(view.SetupMux(), "scansion"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := view.server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Web server shutdown failed", slog.Any("Error", err))
		}
	}()

	slog.Info("Starting Scansion web server...", slog.String("Port", addr))
	if err := view.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Could not start web server", slog.Any("Error", err))
		return err
	}

	return nil
}

// normalizeLang lower-cases a language code and falls back to def when empty.
// Anything else is passed through for the analyzer to reject.
func normalizeLang(s string, def St.Language) St.Language {
	if s = strings.TrimSpace(strings.ToLower(s)); s == "" {
		return def
	}
	return St.Language(s)
}
