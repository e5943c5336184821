package projections

import (
	"context"

	apptStore "studio/internal/adapters/storage/appointment"
	"studio/internal/application/listutil"
	"studio/internal/domain/appointment"
)

// AdminAppointmentStore defines the store interface needed by the admin table projection.
type AdminAppointmentStore interface {
	ListFiltered(ctx context.Context, filter apptStore.ListFilter) ([]appointment.Appointment, error)
	CountFiltered(ctx context.Context, filter apptStore.ListFilter) (int, error)
}

// AdminAppointmentRow is one row of the admin bookings table.
type AdminAppointmentRow struct {
	Appointment   appointment.Appointment
	CategoryStyle appointment.Style
	StatusStyle   appointment.Style
	TimeLabel     string
	PriceLabel    string
}

// GetAdminAppointmentsQuery carries the table's paging and filter parameters.
type GetAdminAppointmentsQuery struct {
	Params listutil.ListParams
}

// GetAdminAppointmentsResult carries one page of rows plus pagination metadata.
type GetAdminAppointmentsResult struct {
	Rows     []AdminAppointmentRow
	PageInfo listutil.PageInfo
}

// GetAdminAppointmentsDeps holds dependencies for the projection.
type GetAdminAppointmentsDeps struct {
	AppointmentStore AdminAppointmentStore
}

// QueryGetAdminAppointments returns one page of the admin bookings table,
// filtered by category/status and client-name search, newest day first.
// PRE: query.Params came from listutil.ParseListParams
// POST: PageInfo reflects the filtered total, not the page size
func QueryGetAdminAppointments(ctx context.Context, query GetAdminAppointmentsQuery, deps GetAdminAppointmentsDeps) (GetAdminAppointmentsResult, error) {
	filter := apptStore.ListFilter{
		Category: query.Params.Filters["category"],
		Status:   query.Params.Filters["status"],
		Search:   query.Params.Search,
	}

	total, err := deps.AppointmentStore.CountFiltered(ctx, filter)
	if err != nil {
		return GetAdminAppointmentsResult{}, err
	}

	pageInfo := listutil.NewPageInfo(query.Params.Page, query.Params.PerPage, total)
	filter.Limit = pageInfo.PerPage
	filter.Offset = pageInfo.Offset()

	appts, err := deps.AppointmentStore.ListFiltered(ctx, filter)
	if err != nil {
		return GetAdminAppointmentsResult{}, err
	}

	rows := make([]AdminAppointmentRow, 0, len(appts))
	for _, a := range appts {
		rows = append(rows, AdminAppointmentRow{
			Appointment:   a,
			CategoryStyle: appointment.CategoryStyles[a.Category],
			StatusStyle:   appointment.StatusStyles[a.Status],
			TimeLabel:     blockTimeLabel(a),
			PriceLabel:    FormatPrice(a.PriceCents),
		})
	}

	return GetAdminAppointmentsResult{Rows: rows, PageInfo: pageInfo}, nil
}
