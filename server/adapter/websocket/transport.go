package adapterwebsocket

import (
	"context"
	"errors"

	"splashbot/server/domain"

	"github.com/coder/websocket"
)

// ErrBinaryFrame は ArenaUpdate がテキストフレーム以外で届いた場合に返されます。
var ErrBinaryFrame = errors.New("binary frames are not supported")

type wsTransport struct {
	conn *websocket.Conn
}

// NewTransportFrom は conn を domain.Transport として包みます。
// readLimit が正であれば1フレームの最大サイズとして設定します。
func NewTransportFrom(conn *websocket.Conn, readLimit int64) domain.Transport {
	if readLimit > 0 {
		conn.SetReadLimit(readLimit)
	}
	return &wsTransport{conn: conn}
}

func (t *wsTransport) Read(ctx context.Context) ([]byte, error) {
	typ, data, err := t.conn.Read(ctx)
	if err != nil {
		return nil, err
	}
	if typ != websocket.MessageText {
		return nil, ErrBinaryFrame
	}
	return data, nil
}

func (t *wsTransport) Write(ctx context.Context, data []byte) error {
	return t.conn.Write(ctx, websocket.MessageText, data)
}

func (t *wsTransport) Close(code int32, reason string) error {
	return t.conn.Close(websocket.StatusCode(code), reason)
}
