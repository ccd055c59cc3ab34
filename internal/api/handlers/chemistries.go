package handlers

import (
	"net/http"

	"cell-dashboard/internal/api/models"
	"cell-dashboard/internal/model"

	"github.com/gin-gonic/gin"
)

var chemistryNames = map[model.Chemistry]string{
	model.ChemistryLFP: "Lithium Iron Phosphate",
	model.ChemistryNMC: "Nickel Manganese Cobalt",
}

// ListChemistries handles GET /api/v1/chemistries. The frontend uses this to
// populate its per-cell type selectors.
func ListChemistries(c *gin.Context) {
	chemistries := make([]models.ChemistryInfo, 0, len(chemistryNames))
	for _, chem := range model.Chemistries() {
		spec, ok := chem.Spec()
		if !ok {
			continue
		}
		chemistries = append(chemistries, models.ChemistryInfo{
			ID:             string(chem),
			Name:           chemistryNames[chem],
			NominalVoltage: spec.NominalVoltage,
			MinVoltage:     spec.MinVoltage,
			MaxVoltage:     spec.MaxVoltage,
		})
	}
	c.JSON(http.StatusOK, gin.H{"chemistries": chemistries})
}
