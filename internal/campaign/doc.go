// Package campaign holds the marketing dataset rendered by the dashboard.
//
// It owns the campaign records and their table column model, the static chart
// and insight datasets, and the live metric feed that drifts the revenue card
// while the dashboard is open.
package campaign
