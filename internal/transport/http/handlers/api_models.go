package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/manish9869/onehealth-api/internal/core/domain"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// Envelope is the success wrapper the dashboard expects on data endpoints.
type Envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

// OK wraps a payload in the success envelope.
func OK(data any) Envelope {
	return Envelope{Status: "success", Data: data}
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}

// ReadinessResponse reports per-dependency readiness.
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// UserSummary describes a minimal view of an operator account returned by the API.
type UserSummary struct {
	ID           string            `json:"id"`
	Username     string            `json:"username"`
	Email        string            `json:"email"`
	FullName     string            `json:"full_name"`
	Status       domain.UserStatus `json:"status"`
	Role         string            `json:"role"`
	TwoFAEnabled bool              `json:"twofa_enabled"`
	LastLogin    *time.Time        `json:"last_login,omitempty"`
}

// NewUserSummary converts a domain user for API output.
func NewUserSummary(user domain.User) UserSummary {
	return UserSummary{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FullName:     user.FullName,
		Status:       user.Status,
		Role:         user.Role,
		TwoFAEnabled: user.TwoFAEnabled,
		LastLogin:    user.LastLogin,
	}
}

// NavigationNodeView is one menu entry in API output.
type NavigationNodeView struct {
	Path        string               `json:"path"`
	DisplayName string               `json:"display_name"`
	FeatureID   int                  `json:"feature_id"`
	Children    []NavigationNodeView `json:"children,omitempty"`
}

// NewNavigationView converts a filtered navigation tree for API output.
func NewNavigationView(tree []domain.NavigationNode) []NavigationNodeView {
	views := make([]NavigationNodeView, 0, len(tree))
	for _, node := range tree {
		views = append(views, NavigationNodeView{
			Path:        node.Path,
			DisplayName: node.DisplayName,
			FeatureID:   node.FeatureID,
			Children:    NewNavigationView(node.Children),
		})
	}
	if len(views) == 0 {
		return nil
	}
	return views
}

// MenuEntryView is one renderable menu entry in API output.
type MenuEntryView struct {
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Link     string          `json:"link,omitempty"`
	Children []MenuEntryView `json:"children,omitempty"`
}

// NewMenuEntriesView converts menu entries for API output.
func NewMenuEntriesView(entries []domain.MenuEntry) []MenuEntryView {
	views := make([]MenuEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, MenuEntryView{
			Key:      entry.Key,
			Label:    entry.Label,
			Link:     entry.Link,
			Children: NewMenuEntriesView(entry.Children),
		})
	}
	if len(views) == 0 {
		return nil
	}
	return views
}

// TotalsView mirrors domain.Totals in API output.
type TotalsView struct {
	SubTotal       float64 `json:"sub_total"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	GrandTotal     float64 `json:"grand_total"`
	CurrentBalance float64 `json:"current_balance"`
	FinalPending   float64 `json:"final_pending"`
}

// NewTotalsView converts computed totals for API output.
func NewTotalsView(totals domain.Totals) TotalsView {
	return TotalsView{
		SubTotal:       totals.SubTotal,
		DiscountAmount: totals.DiscountAmount,
		TaxAmount:      totals.TaxAmount,
		GrandTotal:     totals.GrandTotal,
		CurrentBalance: totals.CurrentBalance,
		FinalPending:   totals.FinalPending,
	}
}
