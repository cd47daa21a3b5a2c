package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/planhive/planhive-api/internal/constants"
	"github.com/planhive/planhive-api/internal/database"
	apierrors "github.com/planhive/planhive-api/internal/errors"
	"github.com/planhive/planhive-api/internal/models"
)

// RequirePlanOrganizer checks that the :planId plan exists and that the
// caller organizes it. A plan that exists but belongs to someone else is
// reported as not found rather than forbidden.
func RequirePlanOrganizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		planID := c.Param("planId")

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		var plan models.Plan
		err := database.GetDB().
			Where("id = ? AND organizer_id = ?", planID, userID).
			First(&plan).Error
		if err != nil {
			apierrors.NotFound(c, "Plan not found or authorized.")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPlan, plan)
		c.Next()
	}
}

// GetPlan retrieves the plan loaded by RequirePlanOrganizer from context
func GetPlan(c *gin.Context) (models.Plan, bool) {
	value, exists := c.Get(constants.ContextKeyPlan)
	if !exists {
		return models.Plan{}, false
	}

	plan, ok := value.(models.Plan)
	return plan, ok
}
