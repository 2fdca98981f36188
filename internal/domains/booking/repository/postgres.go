package repository

import (
	"context"
	"fmt"

	"guesthouse/infras/otel"
	"guesthouse/infras/postgres"
	"guesthouse/internal/domains/booking/engine"
	"guesthouse/internal/domains/booking/model"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	gRepo "guesthouse/shared/repository"
)

type statusUpdate struct {
	Status string `db:"status"`
}

type postgresRepository struct {
	gRepo.Repository[model.Booking]
	otel otel.Otel
}

func NewPostgres(db *postgres.Connection, otel otel.Otel) Booking {
	return &postgresRepository{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func normalize(booking *model.Booking) {
	booking.CheckIn = engine.DateOf(booking.CheckIn)
	booking.CheckOut = engine.DateOf(booking.CheckOut)
}

func (r *postgresRepository) Insert(ctx context.Context, booking model.Booking) error {
	return r.Repository.Insert(ctx, booking) //nolint:wrapcheck
}

func (r *postgresRepository) Get(ctx context.Context, id string) (model.Booking, error) {
	booking, err := r.Repository.Get(ctx, r.ByPrimary(id))
	if err != nil {
		return booking, err //nolint:wrapcheck
	}

	normalize(&booking)

	return booking, nil
}

func (r *postgresRepository) ListAll(ctx context.Context) (bookings []model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ListAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{
		SortBy:  fmt.Sprintf("%s.%s", model.TableName, constant.FieldCreatedAt),
		SortDir: gDto.SortDirDesc,
	}

	bookings, err = r.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	for idx := range bookings {
		normalize(&bookings[idx])
	}

	return bookings, nil
}

func (r *postgresRepository) SetStatus(ctx context.Context, id string, status model.Status) error {
	mod := shared.TransformFields(statusUpdate{Status: status.String()}, constant.AdminSubject)

	return r.Update(ctx, mod, r.ByPrimary(id)) //nolint:wrapcheck
}

func (r *postgresRepository) Delete(ctx context.Context, id string) error {
	return r.Repository.Delete(ctx, r.ByPrimary(id)) //nolint:wrapcheck
}
