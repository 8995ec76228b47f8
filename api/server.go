package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/storefront/storefront-backend/usecases"
	"github.com/storefront/storefront-backend/utils"
)

type Option func(*options)

func WithLocalTest(localTest bool) Option {
	return func(o *options) {
		o.localTest = localTest
	}
}

type options struct {
	localTest bool
}

func NewServer(
	router *gin.Engine,
	conf Configuration,
	uc usecases.Usecases,
	auth utils.Authentication,
	opts ...Option,
) *http.Server {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	addRoutes(router, conf, uc, auth)

	host := "0.0.0.0"
	if o.localTest {
		host = "localhost"
	}

	// leave the handlers a few seconds to answer with their own timeout error
	maxTimeout := conf.DefaultTimeout + 5*time.Second

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%s", host, conf.Port),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       maxTimeout,
		WriteTimeout:      maxTimeout,
		IdleTimeout:       2 * maxTimeout,
		Handler:           h2c.NewHandler(router, &http2.Server{}),
	}
}
