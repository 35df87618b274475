// replay は改行区切りの ArenaUpdate JSON を標準入力から読み、/ws に送って返ってきた行動を出力します。
//
//	ADDR=localhost PORT=8080 go run ./server/cmd/replay < turns.ndjson
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"splashbot/utils"

	"github.com/coder/websocket"
	"github.com/golang-jwt/jwt/v5"
)

const maxLineBytes = 1 << 20

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := utils.GetEnvDefault("ADDR", "localhost")
	port := utils.GetEnvDefault("PORT", "8080")
	serverURL := fmt.Sprintf("ws://%s/ws", net.JoinHostPort(addr, port))

	header, err := authHeader(utils.GetEnvDefault("AUTH_SECRET", ""))
	if err != nil {
		slog.Error("failed to sign token", "err", err)
		os.Exit(1)
	}

	n, err := replay(ctx, serverURL, header, os.Stdin, os.Stdout)
	if err != nil {
		slog.Error("replay failed", "server", serverURL, "turns", n, "err", err)
		os.Exit(1)
	}
	slog.Info("replay finished", "server", serverURL, "turns", n)
}

// authHeader は secret が設定されていれば、サーバーと同じ HS256 の Bearer トークンを作ります。
func authHeader(secret string) (http.Header, error) {
	if secret == "" {
		return nil, nil
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "replay",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}
	h := http.Header{}
	h.Set("Authorization", "Bearer "+signed)
	return h, nil
}

func replay(ctx context.Context, serverURL string, header http.Header, in io.Reader, out io.Writer) (int, error) {
	conn, _, err := websocket.Dial(ctx, serverURL, &websocket.DialOptions{HTTPHeader: header})
	if err != nil {
		return 0, fmt.Errorf("dial: %w", err)
	}
	defer conn.CloseNow()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	turns := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := conn.Write(ctx, websocket.MessageText, line); err != nil {
			return turns, fmt.Errorf("write turn %d: %w", turns+1, err)
		}
		_, reply, err := conn.Read(ctx)
		if err != nil {
			return turns, fmt.Errorf("read turn %d: %w", turns+1, err)
		}
		turns++
		fmt.Fprintf(out, "%d\t%s\n", turns, reply)
	}
	if err := scanner.Err(); err != nil {
		return turns, fmt.Errorf("read input: %w", err)
	}
	return turns, conn.Close(websocket.StatusNormalClosure, "")
}
