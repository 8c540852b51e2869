package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tastegraph/recipechat/conversation"
	"github.com/tastegraph/recipechat/core"
	"github.com/tastegraph/recipechat/search"
	"github.com/tastegraph/recipechat/storage"
)

type turnRequest struct {
	Message string `json:"message" binding:"required"`
}

type turnResponse struct {
	SessionKey  string           `json:"session_key"`
	Seq         int              `json:"seq"`
	Reset       bool             `json:"reset"`
	Summary     string           `json:"summary"`
	Recipes     []recipeResult   `json:"recipes"`
	Relaxations []relaxationInfo `json:"relaxations,omitempty"`
	Conflicts   []conflictInfo   `json:"conflicts,omitempty"`
	Misses      []string         `json:"unresolved_terms,omitempty"`
	Exhausted   bool             `json:"exhausted"`
}

type recipeResult struct {
	Id          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Ingredients []string       `json:"ingredients,omitempty"`
	Steps       []string       `json:"steps,omitempty"`
	Servings    int            `json:"servings,omitempty"`
	Nutrition   *nutritionInfo `json:"nutrition,omitempty"`
	Score       float32        `json:"score"`
}

type nutritionInfo struct {
	CaloriesKcal float64 `json:"calories_kcal"`
	FatG         float64 `json:"fat_g"`
	CarbsG       float64 `json:"carbs_g"`
	ProteinG     float64 `json:"protein_g"`
}

type relaxationInfo struct {
	Step        string `json:"step"`
	Description string `json:"description"`
}

type conflictInfo struct {
	Name     string `json:"name"`
	Previous string `json:"previous"`
	New      string `json:"new"`
	TurnSeq  int    `json:"turn_seq"`
}

type sessionResponse struct {
	SessionKey string `json:"session_key"`
	Turns      int    `json:"turns"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleCreateSession mints an opaque session key. The session itself is
// created lazily on its first turn.
func (s *Server) handleCreateSession(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{"session_key": uuid.NewString()})
}

func (s *Server) handleGetSession(c *gin.Context) {
	state, err := s.manager.Session(c.Request.Context(), c.Param("key"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	if err != nil {
		s.logger.Error("session lookup failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, sessionResponse{
		SessionKey: state.Key,
		Turns:      len(state.Turns),
		CreatedAt:  state.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:  state.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	if err := s.manager.ResetSession(c.Request.Context(), c.Param("key")); err != nil {
		s.logger.Error("session delete failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleSubmitTurn(c *gin.Context) {
	var req turnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message required"})
		return
	}

	result, err := s.manager.SubmitTurn(c.Request.Context(), c.Param("key"), req.Message)
	switch {
	case errors.Is(err, conversation.ErrEmptyMessage),
		errors.Is(err, conversation.ErrSessionKeyRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, conversation.ErrExtractionFailed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "could not understand that, please rephrase",
		})
		return
	case errors.Is(err, search.ErrCorpusUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "search is temporarily unavailable, please retry",
		})
		return
	case err != nil:
		s.logger.Error("turn processing failed",
			"session", c.Param("key"),
			"request_id", c.GetHeader("X-Request-ID"),
			"err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, buildTurnResponse(c.Param("key"), result))
}

func buildTurnResponse(sessionKey string, result *conversation.TurnResult) turnResponse {
	resp := turnResponse{
		SessionKey: sessionKey,
		Seq:        result.Seq,
		Reset:      result.Reset,
		Summary:    result.Summary,
		Recipes:    make([]recipeResult, 0, len(result.Recipes)),
		Misses:     result.Misses,
		Exhausted:  result.Exhausted,
	}

	for _, ranked := range result.Recipes {
		r := ranked.Recipe
		item := recipeResult{
			Id:          strconv.FormatUint(uint64(r.Id), 10),
			Name:        r.Name,
			Description: r.Description,
			Ingredients: r.RawIngredients,
			Steps:       r.Steps,
			Servings:    r.Servings,
			Score:       ranked.Score,
		}
		if r.Nutrition != (core.Nutrition{}) {
			item.Nutrition = &nutritionInfo{
				CaloriesKcal: r.Nutrition.CaloriesKcal,
				FatG:         r.Nutrition.FatG,
				CarbsG:       r.Nutrition.CarbsG,
				ProteinG:     r.Nutrition.ProteinG,
			}
		}
		resp.Recipes = append(resp.Recipes, item)
	}

	for _, step := range result.Relaxations {
		resp.Relaxations = append(resp.Relaxations, relaxationInfo{
			Step:        string(step),
			Description: step.Describe(),
		})
	}

	for _, conflict := range result.Conflicts {
		resp.Conflicts = append(resp.Conflicts, conflictInfo{
			Name:     conflict.Name,
			Previous: conflict.Previous.String(),
			New:      conflict.New.String(),
			TurnSeq:  conflict.TurnSeq,
		})
	}

	return resp
}
