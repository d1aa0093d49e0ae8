package handler

import (
	"context"

	"github.com/pkordes/site-visits/internal/handler/gen"
)

// ListDrivers handles GET /drivers.
func (s *Server) ListDrivers(ctx context.Context, _ gen.ListDriversRequestObject) (gen.ListDriversResponseObject, error) {
	drivers, err := s.visits.ActiveDrivers(ctx)
	if err != nil {
		return nil, err
	}

	data := make([]gen.Driver, len(drivers))
	for i, d := range drivers {
		data[i] = gen.Driver{Id: d.ID.UUID(), FullName: d.FullName}
	}
	return gen.ListDrivers200JSONResponse{Data: data}, nil
}
