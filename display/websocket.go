package scansion

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	Ss "github.com/maroda/scansion/server"
	St "github.com/maroda/scansion/types"
)

const (
	wsReadLimit  = 64 << 10
	wsLineTimout = 15 * time.Second
)

// LineRequest is one client message on /ws
type LineRequest struct {
	Language St.Language `json:"language"`
	Line     string      `json:"line"`
}

// LineError is sent instead of an analysis when a line cannot be scanned
type LineError struct {
	Number int    `json:"line_number"`
	Error  string `json:"error"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebsocketHandler scans lines as they arrive, answering each message
// with a LineAnalysis numbered by arrival order
func (v *View) WebsocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsReadLimit)

	number := 0
	for {
		var req LineRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("Websocket read ended", slog.Any("Error", err))
			}
			return // Connection closed
		}

		number++
		reply := v.scanLineMessage(r.Context(), number, req)
		if err := conn.WriteJSON(reply); err != nil {
			return // Connection closed
		}
	}
}

func (v *View) scanLineMessage(ctx context.Context, number int, req LineRequest) any {
	line := strings.TrimSpace(req.Line)
	if line == "" {
		return LineError{Number: number, Error: "empty line"}
	}
	if v.Lexicon == nil {
		return LineError{Number: number, Error: "no lexicon loaded"}
	}

	ctx, cancel := context.WithTimeout(ctx, wsLineTimout)
	defer cancel()

	lang := normalizeLang(string(req.Language), v.Language)
	la, err := v.Lexicon.AnalyzeLine(ctx, lang, number, line)
	if errors.Is(err, Ss.ErrUnsupportedLanguage) {
		return LineError{Number: number, Error: err.Error()}
	}
	if err != nil {
		slog.Error("Websocket line failed", slog.Any("Error", err))
		return LineError{Number: number, Error: "analysis failed"}
	}

	if v.Stats != nil {
		v.Stats.RecAnalysis(string(lang), la.Meter.String(), 1)
	}
	return la
}
