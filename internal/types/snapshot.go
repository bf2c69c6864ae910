package types

// DashboardSnapshot is the point-in-time aggregate served by
// GET /api/dashboard/. It is replaced wholesale on every refresh and
// never merged field-by-field with the previous snapshot.
//
// SeverityPercent values are passed through verbatim: the server is
// authoritative and the client does not validate that they sum to 100
// or are non-negative.
type DashboardSnapshot struct {
	TotalAlertsToday   int64                `json:"total_alerts_today"`
	LastScanSecondsAgo int64                `json:"last_scan_seconds_ago"`
	SeverityPercent    map[Severity]float64 `json:"severity_percent"`
	TimelineHourly     []TimelineBucket     `json:"timeline_hourly"`
	IncidentsToday     []IncidentCount      `json:"incidents_today"`
	ThreatMapPoints    []ThreatPoint        `json:"threat_map_points"`
}

// TimelineBucket is one hour of case activity, chronological within
// TimelineHourly.
type TimelineBucket struct {
	Hour  int   `json:"hour"`
	Cases int64 `json:"cases"`
}

// IncidentCount is today's tally for one incident type.
type IncidentCount struct {
	IncidentType IncidentType `json:"incident_type"`
	Count        int64        `json:"count"`
}

// ThreatPoint is one scatter point on the threat map: origin zone on x,
// target cluster on y.
type ThreatPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SeverityValues returns the percent values in canonical severity order.
func (s *DashboardSnapshot) SeverityValues() []float64 {
	vals := make([]float64, 0, len(SeverityOrder))
	for _, sev := range SeverityOrder {
		vals = append(vals, s.SeverityPercent[sev])
	}
	return vals
}
