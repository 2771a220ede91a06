package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/spinlab/internal/engine"
	"github.com/abhisek/spinlab/internal/errs"
	"github.com/abhisek/spinlab/internal/logger"
	"github.com/abhisek/spinlab/internal/profiles"
)

type handlers struct {
	m   *profiles.Manager
	log *logger.Logger
}

// registerRoutes sets up all API routes on the gin router.
func registerRoutes(router *gin.Engine, h *handlers) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	cat := router.Group("/catalog")
	cat.GET("/paths", h.catalogPaths)
	cat.GET("/items", h.catalogItems)

	router.GET("/users", h.listUsers)
	router.POST("/users", h.createUser)

	u := router.Group("/users/:user")
	u.DELETE("", h.resetUser)
	u.GET("/history", h.history)
	u.GET("/dashboard", h.query(func(c *gin.Context, e *engine.Engine) (any, error) {
		return e.Dashboard(), nil
	}))

	u.GET("/items", h.query(func(c *gin.Context, e *engine.Engine) (any, error) {
		return e.ItemStates(c.Query("path"))
	}))
	u.GET("/items/:item", h.query(func(c *gin.Context, e *engine.Engine) (any, error) {
		return e.ItemState(c.Param("item"))
	}))
	u.POST("/items/:item/watch", h.command(func(c *gin.Context, e *engine.Engine) (any, error) {
		return e.StartWatching(c.Param("item"))
	}))
	u.POST("/items/:item/practice", h.command(func(c *gin.Context, e *engine.Engine) (any, error) {
		return e.StartPracticing(c.Param("item"))
	}))
	u.POST("/items/:item/master", h.command(func(c *gin.Context, e *engine.Engine) (any, error) {
		return e.MarkMastered(c.Param("item"))
	}))
	u.POST("/items/:item/watch-time", h.command(func(c *gin.Context, e *engine.Engine) (any, error) {
		var req struct {
			Seconds int `json:"seconds"`
		}
		if err := bindJSON(c, &req); err != nil {
			return nil, err
		}
		return e.AddWatchTime(c.Param("item"), req.Seconds)
	}))
	u.POST("/xp", h.command(func(c *gin.Context, e *engine.Engine) (any, error) {
		var req struct {
			Amount int    `json:"amount"`
			Reason string `json:"reason"`
		}
		if err := bindJSON(c, &req); err != nil {
			return nil, err
		}
		return e.AddBonusXP(req.Amount, req.Reason)
	}))

	u.GET("/recommended", h.query(func(c *gin.Context, e *engine.Engine) (any, error) {
		limit, err := queryInt(c, "limit", 5)
		if err != nil {
			return nil, err
		}
		return e.Recommended(limit), nil
	}))
	u.GET("/completion", h.query(func(c *gin.Context, e *engine.Engine) (any, error) {
		return e.OverallCompletion(), nil
	}))
	u.GET("/paths/:path", h.query(func(c *gin.Context, e *engine.Engine) (any, error) {
		p, err := e.Catalog().Path(c.Param("path"))
		if err != nil {
			return nil, err
		}
		comp, err := e.PathCompletion(p.ID)
		if err != nil {
			return nil, err
		}
		return engine.PathSummary{Path: p, Completion: comp}, nil
	}))
	u.GET("/modules/:module", h.query(func(c *gin.Context, e *engine.Engine) (any, error) {
		return e.ModuleCompletion(c.Param("module"))
	}))
	u.GET("/streak", h.query(func(c *gin.Context, e *engine.Engine) (any, error) {
		return e.Streak(), nil
	}))
	u.GET("/level", h.query(func(c *gin.Context, e *engine.Engine) (any, error) {
		return e.Level(), nil
	}))

	u.GET("/badges", h.query(func(c *gin.Context, e *engine.Engine) (any, error) {
		return e.Badges(), nil
	}))
	u.GET("/badges/definitions", h.query(func(c *gin.Context, e *engine.Engine) (any, error) {
		return e.BadgeDefinitions(), nil
	}))
	u.GET("/badges/next", h.query(func(c *gin.Context, e *engine.Engine) (any, error) {
		limit, err := queryInt(c, "limit", 3)
		if err != nil {
			return nil, err
		}
		return e.NextBadges(limit), nil
	}))
	u.GET("/notifications", h.query(func(c *gin.Context, e *engine.Engine) (any, error) {
		return e.PendingBadges(), nil
	}))
	u.DELETE("/notifications/:badge", h.command(func(c *gin.Context, e *engine.Engine) (any, error) {
		if err := e.AcknowledgeBadge(c.Param("badge")); err != nil {
			return nil, err
		}
		return e.PendingBadges(), nil
	}))

	ob := u.Group("/onboarding")
	ob.GET("", h.query(func(c *gin.Context, e *engine.Engine) (any, error) {
		return e.Onboarding(), nil
	}))
	ob.POST("/next", h.command(func(c *gin.Context, e *engine.Engine) (any, error) {
		return e.OnboardingNext()
	}))
	ob.POST("/back", h.command(func(c *gin.Context, e *engine.Engine) (any, error) {
		return e.OnboardingBack()
	}))
	ob.POST("/skip", h.command(func(c *gin.Context, e *engine.Engine) (any, error) {
		return e.SkipOnboarding()
	}))
	ob.POST("/answers", h.command(func(c *gin.Context, e *engine.Engine) (any, error) {
		var req engine.AnswerUpdate
		if err := bindJSON(c, &req); err != nil {
			return nil, err
		}
		return e.SetOnboardingAnswers(req)
	}))
	ob.POST("/quiz", h.command(func(c *gin.Context, e *engine.Engine) (any, error) {
		return e.StartQuiz()
	}))
	ob.POST("/quiz/answer", h.command(func(c *gin.Context, e *engine.Engine) (any, error) {
		var req struct {
			Yes *bool `json:"yes"`
		}
		if err := bindJSON(c, &req); err != nil {
			return nil, err
		}
		if req.Yes == nil {
			return nil, errs.Invalid("yes", "answer is required")
		}
		return e.AnswerQuiz(*req.Yes)
	}))
}

type handlerFunc func(c *gin.Context, e *engine.Engine) (any, error)

// command runs fn as a persisted command for the path's user.
func (h *handlers) command(fn handlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var out any
		err := h.m.Do(c.Request.Context(), c.Param("user"), func(e *engine.Engine) error {
			var err error
			out, err = fn(c, e)
			return err
		})
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// query runs fn read-only for the path's user.
func (h *handlers) query(fn handlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var out any
		err := h.m.View(c.Request.Context(), c.Param("user"), func(e *engine.Engine) error {
			var err error
			out, err = fn(c, e)
			return err
		})
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func (h *handlers) catalogPaths(c *gin.Context) {
	c.JSON(http.StatusOK, h.m.Catalog().Paths())
}

func (h *handlers) catalogItems(c *gin.Context) {
	c.JSON(http.StatusOK, h.m.Catalog().Items())
}

func (h *handlers) listUsers(c *gin.Context) {
	users, err := h.m.Users(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if users == nil {
		users = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *handlers) createUser(c *gin.Context) {
	id, err := h.m.Create(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *handlers) resetUser(c *gin.Context) {
	if err := h.m.Reset(c.Request.Context(), c.Param("user")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) history(c *gin.Context) {
	limit, err := queryInt(c, "limit", profiles.DefaultHistoryLimit)
	if err != nil {
		h.fail(c, err)
		return
	}
	acts, err := h.m.History(c.Request.Context(), c.Param("user"), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	if acts == nil {
		acts = []profiles.Activity{}
	}
	c.JSON(http.StatusOK, acts)
}

func bindJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return errs.Invalid("body", "%v", err)
	}
	return nil
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errs.Invalid(key, "must be a non-negative integer, got %q", raw)
	}
	return n, nil
}
