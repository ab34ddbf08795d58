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

package day

import (
	"errors"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the main process log. All named logs should be derivatives of
// this logger. The console gets a human-readable encoding; subscribed
// websocket connections (the rendering frontend's log pane) get JSON.
var Log = newLogger()

func newLogger() *zap.Logger {
	frontendOut := zapcore.Lock(zapcore.AddSync(logSubscribers))
	consoleOut := zapcore.Lock(os.Stderr)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = func(ts time.Time, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(ts.UTC().Format("2006/01/02 15:04:05.000"))
	}
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), consoleOut, zap.InfoLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), frontendOut, zap.InfoLevel),
	)

	return zap.New(core)
}

// subscriberPool fans writes out to the subscribed websocket
// connections. It is best-effort: an error writing to one conn does
// not prevent writes to the others, and write errors are discarded,
// except that writing to a closed connection removes it from the pool.
type subscriberPool struct {
	conns   []*websocket.Conn
	connsMu sync.RWMutex
}

func (p *subscriberPool) Write(b []byte) (int, error) {
	p.connsMu.RLock()
	for _, conn := range p.conns {
		err := conn.WriteMessage(websocket.TextMessage, b)
		// the handler that subscribed this conn should unsubscribe it
		// when it closes, but we may find out first
		if errors.Is(err, websocket.ErrCloseSent) {
			defer p.remove(conn)
		}
	}
	p.connsMu.RUnlock()
	return len(b), nil
}

func (p *subscriberPool) add(conn *websocket.Conn) {
	p.connsMu.Lock()
	p.conns = append(p.conns, conn)
	p.connsMu.Unlock()
}

func (p *subscriberPool) remove(conn *websocket.Conn) {
	p.connsMu.Lock()
	for i, c := range p.conns {
		if c == conn {
			p.conns = append(p.conns[:i], p.conns[i+1:]...)
			break
		}
	}
	p.connsMu.Unlock()
}

var logSubscribers = new(subscriberPool)

// AddLogConn subscribes conn to the process log output. When the conn
// is closed, it should be removed with RemoveLogConn.
func AddLogConn(conn *websocket.Conn) {
	logSubscribers.add(conn)
}

// RemoveLogConn unsubscribes conn from the log output. It is
// idempotent.
func RemoveLogConn(conn *websocket.Conn) {
	logSubscribers.remove(conn)
}
