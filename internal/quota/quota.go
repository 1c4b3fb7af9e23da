// Package quota computes the staffing shortfall of a project and drafts the
// notification a director should receive when helpers are missing. It is
// pure: persisting the draft is the caller's responsibility.
package quota

import (
	"fmt"
	"time"

	"github.com/sgpa-dev/sgpa-api/internal/models"
)

// ShortfallMessage is the notification template for an under-staffed
// project. The wording is a user-visible contract inherited from the legacy
// system.
const ShortfallMessage = "El proyecto '%s' requiere %d ayudante(s) pero solo tiene %d registrado(s). " +
	"Por favor, complete los formularios de ayudantes."

// Evaluate compares the project's required helper count against the forms
// registered for it and returns a draft notification for the project owner
// when helpers are missing, or nil when the quota is met. Every form counts
// as registered regardless of its review status; that matches the legacy
// behavior and is preserved deliberately.
func Evaluate(project *models.Project, forms []models.HelperForm) *models.Notification {
	registered := len(forms)
	if project.Shortfall(registered) <= 0 {
		return nil
	}

	return &models.Notification{
		Date: time.Now().UTC(),
		Message: fmt.Sprintf(ShortfallMessage,
			project.Name,
			project.RequiredHelpers,
			registered,
		),
		RecipientID: project.OwnerID,
	}
}
