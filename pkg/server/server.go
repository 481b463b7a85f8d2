package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nikogura/talent-match/pkg/catalog"
	"github.com/nikogura/talent-match/pkg/engine"
	"github.com/nikogura/talent-match/pkg/logger"
	"github.com/nikogura/talent-match/pkg/model"
	"github.com/nikogura/talent-match/pkg/profile"
	"github.com/pkg/errors"
)

const shutdownTimeout = 10 * time.Second

// Server exposes the engine over HTTP.
type Server struct {
	engine *engine.Engine
	log    *logger.Logger
	router *gin.Engine
}

// matchRequest is an answer sheet plus optional size overrides.
type matchRequest struct {
	catalog.AnswerSheet
	TopN          int `json:"top_n,omitempty"`
	DomainCount   int `json:"domain_count,omitempty"`
	JobsPerDomain int `json:"jobs_per_domain,omitempty"`
	Count         int `json:"count,omitempty"`
}

type conditionsRequest struct {
	ConditionAnswers model.ConditionAnswers `json:"condition_answers"`
}

type characterSummary struct {
	Name             string `json:"name"`
	Image            string `json:"image"`
	ShortDescription string `json:"short_description"`
}

// New builds the router. Mode is a gin mode; empty leaves gin's current mode.
func New(e *engine.Engine, log *logger.Logger, mode string) (s *Server) {
	if log == nil {
		log = logger.Nop()
	}
	if mode != "" {
		gin.SetMode(mode)
	}

	s = &Server{
		engine: e,
		log:    log,
		router: gin.New(),
	}
	s.router.Use(gin.Recovery(), RequestLogger(log))
	s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() (h http.Handler) {
	h = s.router
	return h
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) (err error) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
			return err
		}
		err = errors.Wrapf(err, "server failed on %s", addr)
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.log.Info("server shutting down")
	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		err = errors.Wrap(err, "failed to shut down server")
	}
	return err
}

func (s *Server) routes() {
	s.router.GET("/healthz", s.health)

	api := s.router.Group("/api/v1")
	api.GET("/characters", s.listCharacters)
	api.GET("/characters/:name", s.getCharacter)
	api.POST("/diagnosis", s.diagnose)
	api.POST("/conditions", s.conditions)
	api.POST("/jobs/rank", s.rankJobs)
	api.POST("/jobs/domains", s.jobDomains)
	api.POST("/jobs/sample", s.sampleJobs)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"characters": len(s.engine.Catalog.Characters),
		"jobs":       len(s.engine.Catalog.Jobs),
		"policy":     s.engine.Ranker.Scorer().Policy(),
	})
}

func (s *Server) listCharacters(c *gin.Context) {
	summaries := make([]characterSummary, 0, len(s.engine.Catalog.Characters))
	for _, ch := range s.engine.Catalog.Characters {
		summaries = append(summaries, characterSummary{
			Name:             ch.Name,
			Image:            ch.Image,
			ShortDescription: ch.ShortDescription,
		})
	}
	c.JSON(http.StatusOK, gin.H{"characters": summaries})
}

func (s *Server) getCharacter(c *gin.Context) {
	name := c.Param("name")
	ch, ok := s.engine.Catalog.ByName(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown character: " + name})
		return
	}
	c.JSON(http.StatusOK, ch)
}

func (s *Server) diagnose(c *gin.Context) {
	var req matchRequest
	if !s.bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, s.engine.Report(req.AnswerSheet))
}

func (s *Server) conditions(c *gin.Context) {
	var req conditionsRequest
	if !s.bind(c, &req) {
		return
	}
	tags := profile.CollectTags(req.ConditionAnswers, s.engine.Catalog.ConditionQuestions)
	c.JSON(http.StatusOK, gin.H{"conditions": tags})
}

func (s *Server) rankJobs(c *gin.Context) {
	var req matchRequest
	if !s.bind(c, &req) {
		return
	}
	report := s.engine.Match(req.AnswerSheet, engine.Options{TopN: req.TopN})
	c.JSON(http.StatusOK, gin.H{
		"result": report.Result,
		"jobs":   nonNil(report.TopJobs),
	})
}

func (s *Server) jobDomains(c *gin.Context) {
	var req matchRequest
	if !s.bind(c, &req) {
		return
	}
	report := s.engine.Match(req.AnswerSheet, engine.Options{
		DomainCount:   req.DomainCount,
		JobsPerDomain: req.JobsPerDomain,
	})
	domains := report.Domains
	if domains == nil {
		domains = []model.JobDomainCardView{}
	}
	c.JSON(http.StatusOK, gin.H{
		"result":  report.Result,
		"domains": domains,
	})
}

func (s *Server) sampleJobs(c *gin.Context) {
	var req matchRequest
	if !s.bind(c, &req) {
		return
	}
	report := s.engine.Match(req.AnswerSheet, engine.Options{Sample: true, SampleCount: req.Count})
	c.JSON(http.StatusOK, gin.H{
		"result": report.Result,
		"jobs":   nonNil(report.Sampled),
	})
}

// bind decodes the JSON body, answering 400 on failure.
func (s *Server) bind(c *gin.Context, req interface{}) (ok bool) {
	err := c.ShouldBindJSON(req)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return ok
	}
	ok = true
	return ok
}

func nonNil(cards []model.JobCardView) (out []model.JobCardView) {
	out = cards
	if out == nil {
		out = []model.JobCardView{}
	}
	return out
}
