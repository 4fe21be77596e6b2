package router

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/gobwas/ws"
	"github.com/lintang-b-s/Mazex/pkg/concurrent"
	"github.com/lintang-b-s/Mazex/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/Mazex/pkg/http/server"
	"github.com/mailru/easygo/netpoll"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

/*
handleWebsocket serves streamed maze generation on config.WebsocketPort until ctx is done.
Connections are registered in netpoll (epoll) instead of holding one reading goroutine each,
a goroutine from the pool is scheduled only when a connection has a request to read.
ref: https://sergey.kamardin.org/articles/million-websocket-and-go/
*/
func (api *API) handleWebsocket(ctx context.Context, config http_server.Config,
	mazeService controllers.MazeService, errChan chan error,
) {
	viper.SetDefault("WEBSOCKET_WORKERS", 16)
	viper.SetDefault("WEBSOCKET_QUEUE_SIZE", 64)

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", config.WebsocketPort))
	if err != nil {
		errChan <- err
		return
	}
	api.log.Info(fmt.Sprintf("maze generator websocket API run on port %d", config.WebsocketPort))

	acceptDesc := netpoll.Must(netpoll.HandleListener(
		ln, netpoll.EventRead|netpoll.EventOneShot,
	))

	api.poller, err = netpoll.New(nil)
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	workers := viper.GetInt("WEBSOCKET_WORKERS")
	api.pool = concurrent.NewWorkerPool[int, int](workers, viper.GetInt("WEBSOCKET_QUEUE_SIZE"))
	api.hub = controllers.NewHub(api.pool, mazeService, api.log)
	api.pool.Spawn(workers)

	// accept signals the result of the next ln.Accept().
	accept := make(chan error, 1)

	api.poller.Start(acceptDesc, func(ev netpoll.Event) {
		defer api.poller.Resume(acceptDesc)
		err := api.pool.ScheduleTimeout(time.Millisecond, func() {
			conn, err := ln.Accept()
			if err != nil {
				accept <- err
				return
			}

			accept <- nil
			api.handle(ctx, conn)
		})
		if err == nil {
			err = <-accept
		}
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			// pool saturated or temporary accept failure: cool down before the next accept
			delay := 5 * time.Millisecond
			api.log.Sugar().Infof("accept error: %v; retrying in %s", err, delay)
			time.Sleep(delay)
		}
	})

	<-ctx.Done()

	api.poller.Stop(acceptDesc)
	ln.Close()

	api.hub.RemoveAllUser()
	api.pool.Close()

	api.log.Info("websocket server stopped")
}

// handle upgrades conn to a websocket and serves its generate requests from the pool.
func (api *API) handle(ctx context.Context, conn net.Conn) {
	br := bufio.NewReader(conn)

	rw := struct {
		io.Reader
		io.Writer
	}{br, conn}

	hs, err := ws.Upgrade(rw)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("connection", nameConn(conn)))
		conn.Close()
		return
	}

	api.log.Info("established websocket connection", zap.String("connection", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := api.hub.Register(conn)

	desc := netpoll.Must(netpoll.HandleRead(conn))

	api.poller.Start(desc, func(ev netpoll.Event) {
		if ev&(netpoll.EventReadHup|netpoll.EventHup) != 0 {
			// peer closed its end
			api.log.Info("user disconnected from websocket server", zap.String("connection", nameConn(conn)))

			api.poller.Stop(desc)
			api.hub.Remove(user)
			conn.Close()
			return
		}

		api.pool.Schedule(func() {
			if err := user.GenerateMaze(ctx); err != nil {
				api.log.Error("websocket maze generation", zap.Error(err))
				api.poller.Stop(desc)
				api.hub.Remove(user)
				conn.Close()
			}
		})
	})
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
