package server

import (
	"context"
	"net/http"

	cws "github.com/coder/websocket"
	"github.com/creachadair/jrpc2"
)

// wsChannel adapts a WebSocket connection to the jrpc2 Channel interface.
type wsChannel struct {
	conn *cws.Conn
	ctx  context.Context
}

func (c *wsChannel) Send(data []byte) error {
	return c.conn.Write(c.ctx, cws.MessageText, data)
}

func (c *wsChannel) Recv() ([]byte, error) {
	_, data, err := c.conn.Read(c.ctx)
	return data, err
}

func (c *wsChannel) Close() error {
	return c.conn.Close(cws.StatusNormalClosure, "")
}

// serveWS runs one jrpc2 server per WebSocket connection and registers
// it for push notifications until the peer goes away.
func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := cws.Accept(w, r, nil)
	if err != nil {
		s.log.Error("websocket accept: %v", err)
		return
	}
	srv := jrpc2.NewServer(s.methods, &jrpc2.ServerOptions{
		AllowPush: true,
		Logger: func(text string) {
			s.log.Debug("jrpc2: %s", text)
		},
	})
	s.notifier.Register(srv)
	defer s.notifier.Unregister(srv)

	s.log.Info("websocket client %s connected", r.RemoteAddr)
	srv.Start(&wsChannel{conn: conn, ctx: s.ctx})
	if err := srv.Wait(); err != nil {
		s.log.Debug("websocket client %s: %v", r.RemoteAddr, err)
	}
	s.log.Info("websocket client %s disconnected", r.RemoteAddr)
}
