package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/site-visits/internal/domain"
	"github.com/pkordes/site-visits/internal/handler/gen"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"visit_id", "visit_date", "visit_time", "customer_name",
	"requester_id", "driver_id", "driver_name", "status",
	"start_odometer", "end_odometer", "distance",
}

// GetTripLog handles GET /trip-log.
// It returns every visit that reached the road, newest first.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetTripLog(ctx context.Context, req gen.GetTripLogRequestObject) (gen.GetTripLogResponseObject, error) {
	from, to := dateRange(req.Params.From, req.Params.To)
	if from != nil && to != nil && from.After(*to) {
		return gen.GetTripLog422JSONResponse(fieldError("from", "must not be after to")), nil
	}

	rows, err := s.tripLog.Export(ctx, from, to)
	if err != nil {
		return nil, err
	}

	if req.Params.Format != nil && *req.Params.Format == gen.GetTripLogParamsFormatCsv {
		return buildCSVResponse(rows), nil
	}
	return buildJSONResponse(rows), nil
}

// buildJSONResponse converts domain rows to the typed JSON response.
func buildJSONResponse(rows []domain.TripLogRow) gen.GetTripLog200JSONResponse {
	out := make(gen.GetTripLog200JSONResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, tripLogRowToResponse(r))
	}
	return out
}

// buildCSVResponse encodes domain rows as CSV and wraps them in the streaming
// response type. Readings that do not exist yet are empty cells.
func buildCSVResponse(rows []domain.TripLogRow) gen.GetTripLog200TextcsvResponse {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	// bytes.Buffer writes never fail.
	_ = w.Write(csvHeaders)
	for _, r := range rows {
		_ = w.Write(tripLogRowToCSVRecord(r))
	}
	w.Flush()

	return gen.GetTripLog200TextcsvResponse{
		Body:          &buf,
		ContentLength: int64(buf.Len()),
	}
}

func tripLogRowToResponse(r domain.TripLogRow) gen.TripLogRow {
	row := gen.TripLogRow{
		VisitId:       r.VisitID.UUID(),
		VisitDate:     openapi_types.Date{Time: r.VisitDate},
		VisitTime:     r.VisitTime,
		CustomerName:  r.CustomerName,
		RequesterId:   r.RequesterID.UUID(),
		DriverId:      r.DriverID.UUID(),
		Status:        gen.VisitStatus(r.Status),
		StartOdometer: int64(r.StartOdometer),
	}
	if r.DriverName != "" {
		row.DriverName = &r.DriverName
	}
	if r.EndOdometer != nil {
		end := int64(*r.EndOdometer)
		row.EndOdometer = &end
	}
	if r.Distance != nil {
		d := int64(*r.Distance)
		row.Distance = &d
	}
	return row
}

func tripLogRowToCSVRecord(r domain.TripLogRow) []string {
	return []string{
		r.VisitID.String(),
		r.VisitDate.Format("2006-01-02"),
		r.VisitTime,
		r.CustomerName,
		r.RequesterID.String(),
		r.DriverID.String(),
		r.DriverName,
		string(r.Status),
		strconv.FormatInt(int64(r.StartOdometer), 10),
		formatOptionalReading(r.EndOdometer),
		formatOptionalReading(r.Distance),
	}
}

// formatOptionalReading returns the decimal reading, or "" if r is nil.
func formatOptionalReading(r *domain.OdometerReading) string {
	if r == nil {
		return ""
	}
	return strconv.FormatInt(int64(*r), 10)
}
