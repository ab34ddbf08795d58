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

// Command tweetdiary serves the local API that resolves a daily note's
// posts and profile metadata from a Twitter export archive.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tweetdiary/tweetdiary/day"
	"github.com/tweetdiary/tweetdiary/tdapp"
	"go.uber.org/zap"
)

func main() {
	configFile := flag.String("config", tdapp.DefaultConfigFilePath(), "path of the config file")
	flag.Parse()

	cfg, err := tdapp.LoadConfig(*configFile)
	if err != nil {
		day.Log.Fatal("loading config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tdapp.New(cfg).Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		day.Log.Fatal("running app", zap.Error(err))
	}
}
