package domain

import "fmt"

// AlertType is the severity category of an alert.
type AlertType string

const (
	AlertInfo    AlertType = "info"
	AlertWarning AlertType = "warning"
	AlertDanger  AlertType = "danger"
)

// Alert is one human-readable advisory. Alerts are ephemeral and regenerated
// on every evaluation; their order is the insertion order of the rules that
// produced them, not severity order.
type Alert struct {
	Type    AlertType `json:"type"`
	Message string    `json:"message"`
}

// Alert rule thresholds.
const (
	roughSeaWaveHeight     = 3.0
	lowSustainabilityScore = 60
	lowStockHealthPercent  = 50.0
)

// GenerateAlerts emits every applicable advisory for the current evaluation:
// a rough-sea danger alert, a low-sustainability warning, and per-species
// low-stock and protected-species alerts in species list order. Rules never
// suppress each other; both species rules may fire for the same record.
func GenerateAlerts(species []SpeciesRecord, score int, cond Conditions) []Alert {
	var alerts []Alert

	if cond.WaveHeight > roughSeaWaveHeight {
		alerts = append(alerts, Alert{
			Type:    AlertDanger,
			Message: fmt.Sprintf("Rough seas: wave height %.1f m exceeds safe operating conditions", cond.WaveHeight),
		})
	}

	if score < lowSustainabilityScore {
		alerts = append(alerts, Alert{
			Type:    AlertWarning,
			Message: fmt.Sprintf("Regional sustainability score is low (%d/100)", score),
		})
	}

	for _, sp := range species {
		if sp.StockHealth < lowStockHealthPercent {
			alerts = append(alerts, Alert{
				Type:    AlertWarning,
				Message: fmt.Sprintf("%s stock health is low (%.0f%%)", sp.Name, sp.StockHealth),
			})
		}
		if sp.LegalStatus == StatusProtected {
			alerts = append(alerts, Alert{
				Type:    AlertInfo,
				Message: fmt.Sprintf("%s is a protected species; catch and release only", sp.Name),
			})
		}
	}

	return alerts
}
