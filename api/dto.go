/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Response: Complex response wrappers

QUANTITIES:
  Decimal quantities serialize as strings so clients never lose precision
  to JSON float parsing.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/warp/consolidation-engine/consolidation"
	"github.com/warp/consolidation-engine/report"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// SummaryDTO is the movement-level summary panel.
type SummaryDTO struct {
	Movements          int    `json:"movements"`
	TotalQuantity      string `json:"total_quantity"`
	UniqueProducts     int    `json:"unique_products"`
	UniqueSources      int    `json:"unique_sources"`
	UniqueDestinations int    `json:"unique_destinations"`
}

// BalanceSummaryDTO is the aggregation summary panel.
type BalanceSummaryDTO struct {
	Rows           int    `json:"rows"`
	UniqueStores   int    `json:"unique_stores"`
	UniqueProducts int    `json:"unique_products"`
	TotalSales     string `json:"total_sales"`
	TotalStock     string `json:"total_stock"`
}

// AnalysisResponse is returned after a successful run and by the summary
// endpoint.
type AnalysisResponse struct {
	Summary  SummaryDTO        `json:"summary"`
	Balances BalanceSummaryDTO `json:"balances"`
	Warnings []string          `json:"warnings,omitempty"`
}

// BalanceDTO is one row of the balance table.
type BalanceDTO struct {
	Store          string `json:"store"`
	ProductCode    string `json:"product_code"`
	ProductName    string `json:"product_name"`
	Sales          string `json:"sales"`
	Stock          string `json:"stock"`
	ForecastDemand string `json:"forecast_demand"`
}

// MovementDTO is one enriched transfer recommendation.
type MovementDTO struct {
	ProductName string `json:"product_name"`
	ProductCode string `json:"product_code"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Quantity    string `json:"quantity"`
	FromSOH     string `json:"from_soh"`
	ToSOH       string `json:"to_soh"`
	FromSales   string `json:"from_sales"`
	ToSales     string `json:"to_sales"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toSummaryDTO(s report.Summary) SummaryDTO {
	return SummaryDTO{
		Movements:          s.Movements,
		TotalQuantity:      s.TotalQuantity.String(),
		UniqueProducts:     s.UniqueProducts,
		UniqueSources:      s.UniqueSources,
		UniqueDestinations: s.UniqueDestinations,
	}
}

func toBalanceSummaryDTO(s report.BalanceSummary) BalanceSummaryDTO {
	return BalanceSummaryDTO{
		Rows:           s.Rows,
		UniqueStores:   s.UniqueStores,
		UniqueProducts: s.UniqueProducts,
		TotalSales:     s.TotalSales.String(),
		TotalStock:     s.TotalStock.String(),
	}
}

func toAnalysisResponse(result *consolidation.Result) AnalysisResponse {
	return AnalysisResponse{
		Summary:  toSummaryDTO(report.Summarize(result.Movements)),
		Balances: toBalanceSummaryDTO(report.SummarizeBalances(result.Balances)),
		Warnings: result.Warnings,
	}
}

func toBalanceDTOs(balances []consolidation.Balance) []BalanceDTO {
	dtos := make([]BalanceDTO, len(balances))
	for i, b := range balances {
		dtos[i] = BalanceDTO{
			Store:          b.Store,
			ProductCode:    b.ProductCode,
			ProductName:    b.ProductName,
			Sales:          b.Sales.String(),
			Stock:          b.Stock.String(),
			ForecastDemand: b.ForecastDemand.String(),
		}
	}
	return dtos
}

func toMovementDTOs(movements []consolidation.EnrichedMovement) []MovementDTO {
	dtos := make([]MovementDTO, len(movements))
	for i, m := range movements {
		dtos[i] = MovementDTO{
			ProductName: m.ProductName,
			ProductCode: m.ProductCode,
			Source:      m.Source,
			Destination: m.Destination,
			Quantity:    m.Quantity.String(),
			FromSOH:     m.FromSOH.String(),
			ToSOH:       m.ToSOH.String(),
			FromSales:   m.FromSales.String(),
			ToSales:     m.ToSales.String(),
		}
	}
	return dtos
}
