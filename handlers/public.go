package handlers

import (
	"net/http"

	"taxi-booking-api/models"
	"taxi-booking-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetStateMachineInfo documents the booking lifecycle for API consumers
func (e *Env) GetStateMachineInfo(c *gin.Context) {
	transitions := statemachine.GetAllTransitions()

	out := make([]gin.H, 0, len(transitions))
	for _, t := range transitions {
		out = append(out, gin.H{
			"from":  t.From,
			"to":    t.To,
			"actor": t.Actor,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"statuses": []models.Status{
			models.StatusPending,
			models.StatusAssigned,
			models.StatusCompleted,
			models.StatusCancelled,
		},
		"terminal":    []models.Status{models.StatusCompleted, models.StatusCancelled},
		"transitions": out,
	})
}
