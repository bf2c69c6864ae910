package types

// Severity levels used by alerts, cases and the dashboard aggregate.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// SeverityOrder is the canonical display order. Derived views (legend
// labels, donut segments) are always built in this order so that color
// assignment stays stable across refreshes.
var SeverityOrder = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// IncidentType classifies what kind of activity an alert or case covers.
type IncidentType string

const (
	IncidentBruteForce        IncidentType = "BRUTE_FORCE"
	IncidentSQLInjection      IncidentType = "SQL_INJECTION"
	IncidentXSS               IncidentType = "XSS"
	IncidentPathTraversal     IncidentType = "PATH_TRAVERSAL"
	IncidentSuspiciousService IncidentType = "SUSPICIOUS_SERVICE"
	IncidentDDOSBot           IncidentType = "DDOS_BOT"
	IncidentDataTheft         IncidentType = "DATA_THEFT"
	IncidentPhishing          IncidentType = "PHISHING"
	IncidentInsider           IncidentType = "INSIDER"
	IncidentCryptojack        IncidentType = "CRYPTOJACK"
)

// CaseStatus tracks a case through its handling lifecycle.
type CaseStatus string

const (
	StatusOpen       CaseStatus = "OPEN"
	StatusInProgress CaseStatus = "IN_PROGRESS"
	StatusResolved   CaseStatus = "RESOLVED"
)

// Verdict is the analyst's conclusion for a case.
type Verdict string

const (
	VerdictTruePositive  Verdict = "TRUE_POSITIVE"
	VerdictFalsePositive Verdict = "FALSE_POSITIVE"
	VerdictDuplicate     Verdict = "DUPLICATE"
	VerdictOther         Verdict = "OTHER"
)

// DispatchChannel is a destination a case can be handed off to.
type DispatchChannel string

const (
	ChannelTelegram DispatchChannel = "TELEGRAM"
	ChannelSIEM     DispatchChannel = "SIEM"
)
