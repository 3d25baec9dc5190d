package main

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"allstock/internal/config"
	"allstock/internal/dashboard"
	"allstock/internal/provider"
	"allstock/internal/render"
)

type server struct {
	pipeline *dashboard.Pipeline
	presets  []string
	timeout  time.Duration
	log      logrus.FieldLogger
}

func newServer(p *dashboard.Pipeline, cfg config.Config, log logrus.FieldLogger) *server {
	return &server{
		pipeline: p,
		presets:  cfg.Presets,
		timeout:  cfg.Server.PipelineTimeout(),
		log:      log,
	}
}

func (s *server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestID())
	r.Use(requestLogger(s.log))
	r.Use(recoverPanic(s.log))

	r.GET("/", s.handlePage)
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group("/api")
	api.GET("/dashboard", s.handleDashboard)
	api.GET("/quote", s.handleQuote)
	api.GET("/rates", s.handleRates)
	api.GET("/news", s.handleNews)
	return r
}

// runContext bounds one pipeline run by the request and the configured timeout.
func (s *server) runContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), s.timeout)
}

func (s *server) handlePage(c *gin.Context) {
	page := render.Page{Presets: s.presets}
	raw, present := c.GetQuery("symbol")
	if !present {
		s.writePage(c, http.StatusOK, page)
		return
	}

	page.Query = raw
	sym, err := provider.NormalizeSymbol(raw)
	if err != nil {
		page.Error = render.Message(err)
		s.writePage(c, http.StatusBadRequest, page)
		return
	}
	page.Query = sym.String()

	ctx, cancel := s.runContext(c)
	defer cancel()
	res := s.pipeline.Run(ctx, sym)
	s.logRun(c, res)

	view := render.NewView(res)
	page.View = &view
	s.writePage(c, http.StatusOK, page)
}

func (s *server) writePage(c *gin.Context, status int, page render.Page) {
	var buf bytes.Buffer
	if err := render.HTML(&buf, page); err != nil {
		s.log.WithError(err).WithField("request_id", c.GetString(requestIDKey)).Error("render page")
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (s *server) handleDashboard(c *gin.Context) {
	sym, ok := s.symbolParam(c)
	if !ok {
		return
	}
	ctx, cancel := s.runContext(c)
	defer cancel()
	res := s.pipeline.Run(ctx, sym)
	s.logRun(c, res)
	c.JSON(http.StatusOK, res)
}

func (s *server) handleQuote(c *gin.Context) {
	sym, ok := s.symbolParam(c)
	if !ok {
		return
	}
	ctx, cancel := s.runContext(c)
	defer cancel()
	c.JSON(http.StatusOK, gin.H{"symbol": sym, "quote": s.pipeline.Quote(ctx, sym)})
}

func (s *server) handleRates(c *gin.Context) {
	ctx, cancel := s.runContext(c)
	defer cancel()
	c.JSON(http.StatusOK, gin.H{"base": "USD", "rates": s.pipeline.Rates(ctx)})
}

func (s *server) handleNews(c *gin.Context) {
	sym, ok := s.symbolParam(c)
	if !ok {
		return
	}
	ctx, cancel := s.runContext(c)
	defer cancel()
	c.JSON(http.StatusOK, gin.H{"symbol": sym, "news": s.pipeline.News(ctx, sym)})
}

// symbolParam reads ?symbol= and answers 400 itself when it is blank.
func (s *server) symbolParam(c *gin.Context) (provider.Symbol, bool) {
	sym, err := provider.NormalizeSymbol(c.Query("symbol"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      render.Message(err),
			"request_id": c.GetString(requestIDKey),
		})
		return "", false
	}
	return sym, true
}

func (s *server) logRun(c *gin.Context, res dashboard.Result) {
	s.log.WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDKey),
		"run_id":     res.RunID,
		"symbol":     res.Symbol.String(),
		"quote":      res.Quote.Provenance,
		"rates":      res.Rates.Provenance,
		"news":       res.News.Provenance,
		"elapsed":    res.Elapsed.String(),
	}).Info("dashboard served")
}
