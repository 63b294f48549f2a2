package app

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Gthulhu/schedsim/config"
	"github.com/Gthulhu/schedsim/rest"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func TestRunServerGracefulShutdown(t *testing.T) {
	engine := echo.New()
	engine.HideBanner = true
	engine.HidePort = true
	engine.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	errCh := make(chan error, 1)
	go func() { errCh <- runServer(engine, "127.0.0.1:0") }()
	require.Eventually(t, func() bool { return engine.ListenerAddr() != nil }, 5*time.Second, 10*time.Millisecond)

	resp, err := http.Get("http://" + engine.ListenerAddr().String() + "/ping")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, engine.Shutdown(ctx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not return after shutdown")
	}
}

func TestRunServerReportsListenError(t *testing.T) {
	assert.Error(t, runServer(echo.New(), "bad-address"))
}

func TestStartRestAppStops(t *testing.T) {
	handler, err := rest.NewHandler(rest.Params{})
	require.NoError(t, err)

	lc := fxtest.NewLifecycle(t)
	require.NoError(t, StartRestApp(lc, config.ServerConfig{Host: "127.0.0.1:0"}, handler))
	lc.RequireStart()
	lc.RequireStop()
	// give the serve goroutine time to observe the closed server
	time.Sleep(50 * time.Millisecond)
}
