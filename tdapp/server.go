/*
	Tweetdiary
	Copyright (c) 2024 Tweetdiary authors

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package tdapp

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tweetdiary/tweetdiary/day"
	"github.com/tweetdiary/tweetdiary/twitter"
	"go.uber.org/zap"
)

type server struct {
	app *App
	log *zap.Logger
	mux *http.ServeMux
}

func (s *server) fillRoutes() {
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("GET /api/day", s.handleDay)
	s.mux.HandleFunc("GET /api/profile", s.handleProfile)
	s.mux.HandleFunc("GET /api/logs", s.handleLogs)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	w.Header().Set("Server", "Tweetdiary")
	s.mux.ServeHTTP(w, r)
	s.log.Info(r.Method+" "+r.RequestURI,
		zap.String("method", r.Method),
		zap.String("uri", r.RequestURI),
		zap.Duration("duration", time.Since(start)))
}

// dayResponse is what the rendering frontend consumes for one daily
// note: the day's posts, the author metadata current on that day, and
// the metadata current today (for the note header).
type dayResponse struct {
	Date         string      `json:"date"`
	Posts        []day.Post  `json:"posts"`
	Profile      day.Profile `json:"profile"`
	TodayProfile day.Profile `json:"today_profile"`

	// Set when the archive could not be read or parsed; the day then
	// renders with an empty post list rather than an error.
	ArchiveError string `json:"archive_error,omitempty"`
}

// handleDay resolves a daily note's date, posts, and profile. The note
// query parameter is the note's vault path; non-daily notes are a 404.
func (s *server) handleDay(w http.ResponseWriter, r *http.Request) {
	notePath := r.URL.Query().Get("note")
	date, ok := day.DailyNoteDate(s.app.cfg.DiaryRoot, notePath)
	if !ok {
		http.Error(w, "not a daily-log note", http.StatusNotFound)
		return
	}

	resp := dayResponse{
		Date:  date,
		Posts: []day.Post{},
	}

	// archive read or parse failures downgrade to an empty day
	if posts, err := s.postsForDate(r.Context(), date); err != nil {
		s.log.Warn("archive unavailable, rendering empty day",
			zap.String("date", date), zap.Error(err))
		resp.ArchiveError = err.Error()
	} else {
		resp.Posts = posts
	}

	resolver := s.app.profileResolver()
	resp.Profile = resolver.Snapshot(date)
	resp.TodayProfile = resolver.Snapshot(day.EasternDate(time.Now()))

	writeJSON(w, resp)
}

func (s *server) handleProfile(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if _, err := time.Parse(day.DateFormat, date); err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}
	writeJSON(w, s.app.profileResolver().Snapshot(date))
}

// handleLogs upgrades the connection and subscribes it to the process
// log until the client goes away.
func (s *server) handleLogs(w http.ResponseWriter, r *http.Request) {
	conn, err := logsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("upgrading log connection", zap.Error(err))
		return
	}
	day.AddLogConn(conn)
	defer func() {
		day.RemoveLogConn(conn)
		conn.Close()
	}()

	// drain control frames; returning unsubscribes
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *server) postsForDate(ctx context.Context, date string) ([]day.Post, error) {
	archive, err := twitter.Open(ctx, s.app.cfg.ArchiveRoot)
	if err != nil {
		return nil, err
	}
	extractor := &twitter.Extractor{Archive: archive, Log: day.Log.Named("twitter")}
	return extractor.PostsForDate(ctx, date)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		day.Log.Error("encoding response", zap.Error(err))
	}
}

var logsUpgrader = websocket.Upgrader{
	// the API is loopback-only; the frontend's origin is not fixed
	CheckOrigin: func(*http.Request) bool { return true },
}
