package router

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/lintang-b-s/Mazex/pkg/concurrent"
	"github.com/lintang-b-s/Mazex/pkg/http/router/controllers"
	router_helper "github.com/lintang-b-s/Mazex/pkg/http/router/routerhelper"
	http_server "github.com/lintang-b-s/Mazex/pkg/http/server"
	"github.com/mailru/easygo/netpoll"
	"github.com/spf13/viper"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"go.uber.org/zap"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "net/http/pprof"
)

type API struct {
	log    *zap.Logger
	hub    *controllers.Hub
	poller netpoll.Poller
	pool   *concurrent.WorkerPool[int, int]
}

func NewAPI(log *zap.Logger) *API {
	return &API{log: log}
}

//	@title			Mazex API
//	@version		1.0
//	@description	Maze generation and solving server.

//	@contact.name	Lintang Birda Saputra
//	@contact.url	_
//	@contact.email	lintang.birda.saputra@mail.ugm.ac.id

//	@license.name	BSD License
//	@license.url	https://opensource.org/license/bsd-2-clause

// @host		localhost
// @BasePath	/api
func (api *API) Run(
	ctx context.Context,
	config http_server.Config,
	log *zap.Logger,

	useRateLimit bool,
	mazeService controllers.MazeService,
) error {
	log.Info("Run httprouter API")

	router := httprouter.New()

	router.GET("/doc/*any", swaggerHandler)

	router.Handler(http.MethodGet, "/debug/pprof/*item", http.DefaultServeMux)

	group := router_helper.NewRouteGroup(router, "/api")

	mazeRoutes := controllers.New(mazeService, log)

	mazeRoutes.Routes(group)

	chain, err := api.middleware(useRateLimit)
	if err != nil {
		return err
	}

	var (
		errChan      chan error = make(chan error, 1)
		errProxyChan chan error = make(chan error, 1)
	)

	go func() {
		api.handleWebsocket(ctx, config, mazeService, errChan)
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", api.upstream("maze generator", "tcp", "localhost"+":"+strconv.Itoa(config.WebsocketPort)))

	proxyServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.ProxyPort),
		Handler: mux,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},

		ReadTimeout:       viper.GetDuration("HTTP_SERVER_READ_TIMEOUT"),
		WriteTimeout:      config.Timeout + viper.GetDuration("HTTP_SERVER_WRITE_TIMEOUT"),
		IdleTimeout:       viper.GetDuration("HTTP_SERVER_IDLE_TIMEOUT"),
		ReadHeaderTimeout: viper.GetDuration("HTTP_SERVER_READ_HEADER_TIMEOUT"),
	}

	go func() {
		api.log.Info(fmt.Sprintf("websocket proxy running on port %d", config.ProxyPort))
		if err := proxyServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errProxyChan <- err
		}
	}()

	srv := http_server.New(ctx, chain.Then(router), config, false)
	log.Info(fmt.Sprintf("API run on port %d", config.Port))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		log.Error("websocket error, shutting down server", zap.Error(err))
		_ = srv.Shutdown(ctx)
		_ = proxyServer.Shutdown(ctx)
		return err
	case err := <-errProxyChan:
		log.Error("websocket proxy error, shutting down server", zap.Error(err))
		_ = srv.Shutdown(ctx)
		return err
	case err := <-serverErr:
		log.Info("HTTP server stopped", zap.Error(err))
		_ = proxyServer.Shutdown(ctx)
		return err

	case <-ctx.Done():
		log.Info("context canceled, shutting down server")
		_ = srv.Shutdown(context.Background())
		_ = proxyServer.Shutdown(context.Background())
		return ctx.Err()
	}
}

/*
middleware builds the chain in front of the API routes. Forwarding headers are honoured only from
the comma separated TRUSTED_PROXIES (ips or cidrs, none by default). With useRateLimit every client
gets RATE_LIMIT_RPS requests per second with RATE_LIMIT_BURST burst, and at most
RATE_LIMIT_MAX_CLIENTS buckets are kept.
*/
func (api *API) middleware(useRateLimit bool) (alice.Chain, error) {
	viper.SetDefault("TRUSTED_PROXIES", "")
	viper.SetDefault("RATE_LIMIT_RPS", 10)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_MAX_CLIENTS", 10000)

	corsHandler := cors.New(cors.Options{ //nolint:gocritic // ignore
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300, //nolint:mnd // ignore
	})

	forwarded, err := NewRealIP(strings.Split(viper.GetString("TRUSTED_PROXIES"), ","))
	if err != nil {
		return alice.Chain{}, err
	}

	mwChain := []alice.Constructor{corsHandler.Handler, EnforceJSONHandler, api.recoverPanic,
		forwarded, Heartbeat("healthz"), Logger(api.log), Labels}
	if useRateLimit {
		limit, err := NewLimit(viper.GetFloat64("RATE_LIMIT_RPS"), viper.GetInt("RATE_LIMIT_BURST"),
			viper.GetInt("RATE_LIMIT_MAX_CLIENTS"))
		if err != nil {
			return alice.Chain{}, err
		}
		mwChain = append(mwChain, limit)
	}
	return alice.New(mwChain...), nil
}

func swaggerHandler(res http.ResponseWriter, req *http.Request, p httprouter.Params) {
	httpSwagger.WrapHandler(res, req)
}
