package status

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/andydunstall/ringcast/simulator"
)

// Handler is a handler in the status API.
//
// The handler registers routes that expose APIs to inspect the status of
// that component.
type Handler interface {
	// Register registers routes on the given group for the handler.
	Register(group *gin.RouterGroup)
}

type errorMessage struct {
	Error string `json:"error"`
}

// SimulationHandler exposes the results of recent simulations.
type SimulationHandler struct {
	store *simulator.Store
}

func NewSimulationHandler(store *simulator.Store) *SimulationHandler {
	return &SimulationHandler{
		store: store,
	}
}

func (h *SimulationHandler) Register(group *gin.RouterGroup) {
	group.GET("/runs", h.listRunsRoute)
	group.GET("/runs/:id", h.runRoute)
	group.GET("/runs/:id/devices/:device", h.deviceRoute)
}

func (h *SimulationHandler) listRunsRoute(c *gin.Context) {
	results := h.store.List()
	if results == nil {
		results = []*simulator.Result{}
	}
	c.JSON(http.StatusOK, results)
}

func (h *SimulationHandler) runRoute(c *gin.Context) {
	result, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorMessage{Error: "run not found"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *SimulationHandler) deviceRoute(c *gin.Context) {
	result, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorMessage{Error: "run not found"})
		return
	}

	id, err := strconv.Atoi(c.Param("device"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorMessage{Error: "invalid device"})
		return
	}

	device, ok := result.Device(id)
	if !ok {
		c.JSON(http.StatusNotFound, errorMessage{Error: "device not found"})
		return
	}
	c.JSON(http.StatusOK, device)
}

var _ Handler = &SimulationHandler{}
