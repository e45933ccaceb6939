package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"greencalc/internal/domain/models"
	"greencalc/internal/repository"
	"greencalc/internal/service/calculator"
	"greencalc/internal/service/countries"
)

const sessionKeyLastCalculation = "last_calculation"

// CalculatorHandler serves the calculator form, the results page and the
// JSON calculation API.
type CalculatorHandler struct {
	engine    *calculator.Engine
	directory *countries.Directory
	history   repository.HistoryRepository
	logger    *zap.Logger
}

// NewCalculatorHandler constructs the HTTP handler adapter.
func NewCalculatorHandler(engine *calculator.Engine, directory *countries.Directory, history repository.HistoryRepository, logger *zap.Logger) *CalculatorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculatorHandler{engine: engine, directory: directory, history: history, logger: logger}
}

// sessionPayload carries the last form and its results across the
// POST-redirect-GET hop. Stored as a JSON string to keep the cookie codec
// trivial.
type sessionPayload struct {
	Input  models.CalculationInput  `json:"input"`
	Result models.CalculationResult `json:"result"`
}

func (h *CalculatorHandler) formContext(errMessage string) gin.H {
	return gin.H{
		"Countries": h.directory.List(),
		"Crops":     h.engine.Tables().Crops(),
		"Systems": []models.SystemType{
			models.SystemSoil,
			models.SystemSoilless,
			models.SystemHydroponic,
			models.SystemAeroponic,
			models.SystemVertical,
		},
		"Levels": []models.SetupLevel{
			models.SetupLocal,
			models.SetupStandard,
			models.SetupHighTech,
		},
		"SolarRatePct": calculator.SolarSavingsRate * 100,
		"Error":        errMessage,
	}
}

// ShowForm renders the calculator form.
func (h *CalculatorHandler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.formContext(""))
}

// Calculate handles the form submission: normalize, compute, persist, stash
// in the session and redirect to the results page.
func (h *CalculatorHandler) Calculate(c *gin.Context) {
	raw := map[string]string{}
	for _, field := range []string{
		calculator.FieldArea,
		calculator.FieldCrop,
		calculator.FieldSystemType,
		calculator.FieldSetupLevel,
		calculator.FieldCountry,
		calculator.FieldCurrencyOverride,
		calculator.FieldUseSolar,
		calculator.FieldProductionCost,
		calculator.FieldPricePerKg,
		calculator.FieldCapexPerM2,
	} {
		raw[field] = c.PostForm(field)
	}

	country := h.directory.Find(raw[calculator.FieldCountry])

	input, err := h.engine.Normalize(raw, country)
	if err != nil {
		h.renderFormError(c, err)
		return
	}

	result, err := h.engine.Compute(input, country)
	if err != nil {
		h.renderFormError(c, err)
		return
	}

	// A failed history write must not block showing the projection.
	record := models.NewHistoryRecord(input, *result, time.Now())
	if err := h.history.Append(c.Request.Context(), record); err != nil {
		h.logger.Error("failed to append history record", zap.Error(err))
	}

	payload, err := json.Marshal(sessionPayload{Input: input, Result: *result})
	if err != nil {
		h.logger.Error("failed to encode session payload", zap.Error(err))
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyLastCalculation, string(payload))
	if err := session.Save(); err != nil {
		h.logger.Error("failed to save session", zap.Error(err))
	}

	c.Redirect(http.StatusSeeOther, "/results")
}

// Results renders the last calculation from the session, or sends the user
// back to the form when there is none.
func (h *CalculatorHandler) Results(c *gin.Context) {
	session := sessions.Default(c)

	raw, ok := session.Get(sessionKeyLastCalculation).(string)
	if !ok || raw == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	var payload sessionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		h.logger.Warn("discarding unreadable session payload", zap.Error(err))
		session.Delete(sessionKeyLastCalculation)
		_ = session.Save()
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	c.HTML(http.StatusOK, "results.html", gin.H{
		"Input":  payload.Input,
		"Result": payload.Result,
	})
}

// CalculateJSON is the API variant: a JSON body in, the result record or a
// structured validation error out.
func (h *CalculatorHandler) CalculateJSON(c *gin.Context) {
	var input models.CalculationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"kind":    "bad_request",
			"message": "invalid request body",
		}})
		return
	}

	input.SystemType = models.ParseSystemType(string(input.SystemType))
	input.SetupLevel = models.ParseSetupLevel(string(input.SetupLevel))

	country := h.directory.Find(input.CountryCode)

	result, err := h.engine.Compute(input, country)
	if err != nil {
		if verr, ok := calculator.AsValidation(err); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gin.H{
				"kind":    "validation",
				"field":   verr.Field,
				"message": verr.Message,
			}})
			return
		}
		h.logger.Error("calculation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
			"kind":    "internal",
			"message": "calculation failed",
		}})
		return
	}

	record := models.NewHistoryRecord(input, *result, time.Now())
	if err := h.history.Append(c.Request.Context(), record); err != nil {
		h.logger.Error("failed to append history record", zap.Error(err))
	}

	c.JSON(http.StatusOK, result)
}

func (h *CalculatorHandler) renderFormError(c *gin.Context, err error) {
	if verr, ok := calculator.AsValidation(err); ok {
		c.HTML(http.StatusUnprocessableEntity, "index.html", h.formContext(verr.Message))
		return
	}
	h.logger.Error("calculation failed", zap.Error(err))
	c.HTML(http.StatusInternalServerError, "index.html", h.formContext("calculation failed, please try again"))
}
