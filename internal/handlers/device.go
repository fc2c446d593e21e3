package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	statusOK      = "ok"
	statusModeSet = "mode_set"

	errToggleLED       = "failed to toggle led"
	errSetSpeed        = "failed to set speed"
	errMissingPercent  = "missing percent"
	errGetState        = "failed to load state"
	errSetMode         = "failed to set mode"
	errInvalidBodyPref = "invalid body: "
)

// logAndJSONError logs err under logKey and answers with userMsg.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// logAndTextError is logAndJSONError for the plain-text endpoints.
func (h *Handler) logAndTextError(c *gin.Context, httpCode int, userMsg, logKey string, err error) {
	if h.log != nil && err != nil {
		h.log.Errorw(logKey, "err", err)
	}
	c.String(httpCode, userMsg)
}

// modeRequest is the body of POST /api/v1/device/mode.
type modeRequest struct {
	// Automatic makes the reported speed follow the tachometer.
	Automatic *bool `json:"automatic" binding:"required" example:"true"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Toggle the LED
// @Description  Flips the LED and answers with the new state.
// @Tags         cgi
// @Produce      plain
// @Success      200  {string}  string  "ON or OFF"
// @Failure      500  {string}  string
// @Router       /cgi-bin/toggle_led [get]
func (h *Handler) toggleLED(c *gin.Context) {
	st, err := h.services.Device.ToggleLED(c.Request.Context())
	if err != nil {
		h.logAndTextError(c, http.StatusInternalServerError, errToggleLED, "device_toggle_led_failed", err)
		return
	}
	c.String(http.StatusOK, st.LEDText())
}

// @Summary      Set the fan speed
// @Description  Leading digits of percent are used; values above 100 are ignored. Answers with the speed in effect.
// @Tags         cgi
// @Produce      plain
// @Param        percent  query     string  true   "Speed percent"
// @Param        id       query     int     false  "Cache buster"
// @Success      200      {string}  string  "speed"
// @Failure      400      {string}  string
// @Failure      500      {string}  string
// @Router       /cgi-bin/set_speed [get]
func (h *Handler) setSpeed(c *gin.Context) {
	raw, ok := c.GetQuery("percent")
	if !ok {
		c.String(http.StatusBadRequest, errMissingPercent)
		return
	}
	st, err := h.services.Device.SetSpeed(c.Request.Context(), raw)
	if err != nil {
		h.logAndTextError(c, http.StatusInternalServerError, errSetSpeed, "device_set_speed_failed", err)
		return
	}
	c.String(http.StatusOK, strconv.Itoa(st.Speed()))
}

// @Summary      Read the LED state
// @Tags         cgi
// @Produce      plain
// @Param        id   query     int     false  "Cache buster"
// @Success      200  {string}  string  "ON or OFF"
// @Failure      500  {string}  string
// @Router       /ledstate [get]
func (h *Handler) ledState(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndTextError(c, http.StatusInternalServerError, errGetState, "device_led_state_failed", err)
		return
	}
	c.String(http.StatusOK, st.LEDText())
}

// @Summary      Read the fan speed
// @Description  Manual speed, or the measured speed in automatic mode.
// @Tags         cgi
// @Produce      plain
// @Param        id   query     int     false  "Cache buster"
// @Success      200  {string}  string  "speed"
// @Failure      500  {string}  string
// @Router       /get_speed [get]
func (h *Handler) getSpeed(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndTextError(c, http.StatusInternalServerError, errGetState, "device_get_speed_failed", err)
		return
	}
	c.String(http.StatusOK, strconv.Itoa(st.Speed()))
}

// @Summary      Get device state
// @Tags         device
// @Produce      json
// @Success      200  {object}  models.DeviceState
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/device/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Monitoring.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "device_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Set speed mode
// @Description  automatic=true reports the tachometer reading as the speed.
// @Tags         device
// @Accept       json
// @Produce      json
// @Param        body  body      modeRequest  true  "Mode payload"
// @Success      200   {object}  map[string]interface{}  "status, state"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/device/mode [post]
// @Security     BearerAuth
func (h *Handler) setMode(c *gin.Context) {
	var req modeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	st, err := h.services.Device.SetMode(c.Request.Context(), *req.Automatic)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSetMode, "device_set_mode_failed", err, "automatic", *req.Automatic)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusModeSet, "state": st})
}
