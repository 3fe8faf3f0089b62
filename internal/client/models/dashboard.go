package models

import (
	"math"
	"time"
)

// RiskStatus classifies a visited URL.
type RiskStatus string

const (
	RiskSafe       RiskStatus = "safe"
	RiskSuspicious RiskStatus = "suspicious"
	RiskDangerous  RiskStatus = "dangerous"
	RiskUnknown    RiskStatus = "unknown"
)

// Normalize maps anything outside the known set to RiskUnknown.
func (s RiskStatus) Normalize() RiskStatus {
	switch s {
	case RiskSafe, RiskSuspicious, RiskDangerous:
		return s
	default:
		return RiskUnknown
	}
}

// HistoryItem is one scanned URL in the dashboard history.
type HistoryItem struct {
	ID        string     `json:"id"`
	URL       string     `json:"url"`
	Score     int        `json:"score"`
	VisitedAt time.Time  `json:"visitedAt"`
	Favicon   string     `json:"favicon,omitempty"`
	Status    RiskStatus `json:"status"`
}

// DashboardData is the aggregate returned by GET /dashboard/summary.
type DashboardData struct {
	ProtectedPercentage float64       `json:"protectedPercentage"`
	BlockedCount        int           `json:"blockedCount"`
	AttemptsDetected    int           `json:"attemptsDetected"`
	Credits             int           `json:"credits"`
	History             []HistoryItem `json:"history"`
	CarouselTips        []string      `json:"carouselTips"`
}

// ProtectedPercent is ProtectedPercentage rounded to a whole percent.
func (d DashboardData) ProtectedPercent() int {
	return int(math.Round(d.ProtectedPercentage))
}

// Tip returns the i-th awareness tip, wrapping around the list.
func (d DashboardData) Tip(i int) string {
	n := len(d.CarouselTips)
	if n == 0 {
		return ""
	}
	i %= n
	if i < 0 {
		i += n
	}
	return d.CarouselTips[i]
}
