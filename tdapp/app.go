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

// Package tdapp wires the extraction pipeline to the local API the
// rendering frontend talks to.
package tdapp

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/tweetdiary/tweetdiary/day"
	"github.com/tweetdiary/tweetdiary/profile"
	"go.uber.org/zap"
)

// App is the running application: configuration plus the API server.
type App struct {
	cfg *Config
	log *zap.Logger
}

// New builds an App from cfg.
func New(cfg *Config) *App {
	return &App{
		cfg: cfg,
		log: day.Log.Named("app"),
	}
}

// Run serves the local API until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	srv := &server{app: a, log: day.Log.Named("http")}
	srv.fillRoutes()

	httpServer := &http.Server{
		Addr:              a.cfg.Listen,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() { errChan <- httpServer.ListenAndServe() }()

	a.log.Info("serving local API",
		zap.String("listen", a.cfg.Listen),
		zap.String("archive_root", a.cfg.ArchiveRoot))

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// profileResolver opens the metadata root for one resolution. No state
// is kept between lookups, so snapshots added while running are picked
// up on the next request.
func (a *App) profileResolver() *profile.Resolver {
	return &profile.Resolver{
		FS:  os.DirFS(a.cfg.MetadataRoot),
		Log: day.Log.Named("profile"),
	}
}
