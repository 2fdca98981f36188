package repository

import (
	"context"
	"fmt"
	"time"

	gcpFirestore "cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/booking/model"
	"guesthouse/shared/constant"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"
)

const (
	fieldStatus     = "status"
	fieldCreatedAt  = "createdAt"
	fieldModifiedAt = "modifiedAt"
	fieldModifiedBy = "modifiedBy"
)

// document is the stored shape of a booking. The document id is the booking id.
type document struct {
	RoomID     string    `firestore:"roomId"`
	RoomName   string    `firestore:"roomName"`
	GuestName  string    `firestore:"guestName"`
	GuestEmail string    `firestore:"guestEmail"`
	CheckIn    time.Time `firestore:"checkIn"`
	CheckOut   time.Time `firestore:"checkOut"`
	Guests     int       `firestore:"guests"`
	Message    *string   `firestore:"message,omitempty"`
	Status     string    `firestore:"status"`
	CreatedAt  time.Time `firestore:"createdAt"`
	ModifiedAt time.Time `firestore:"modifiedAt"`
	CreatedBy  string    `firestore:"createdBy"`
	ModifiedBy string    `firestore:"modifiedBy"`
}

func toDocument(booking model.Booking) document {
	return document{
		RoomID:     booking.RoomID,
		RoomName:   booking.RoomName,
		GuestName:  booking.GuestName,
		GuestEmail: booking.GuestEmail,
		CheckIn:    booking.CheckIn,
		CheckOut:   booking.CheckOut,
		Guests:     booking.Guests,
		Message:    booking.Message,
		Status:     booking.Status.String(),
		CreatedAt:  booking.CreatedAt,
		ModifiedAt: booking.ModifiedAt,
		CreatedBy:  booking.CreatedBy,
		ModifiedBy: booking.ModifiedBy,
	}
}

func (d document) toModel(id string) (model.Booking, error) {
	bookingStatus, err := model.ParseStatus(d.Status)
	if err != nil {
		return model.Booking{}, fmt.Errorf("booking %s: %w", id, err)
	}

	booking := model.Booking{
		ID:         id,
		RoomID:     d.RoomID,
		RoomName:   d.RoomName,
		GuestName:  d.GuestName,
		GuestEmail: d.GuestEmail,
		CheckIn:    d.CheckIn,
		CheckOut:   d.CheckOut,
		Guests:     d.Guests,
		Message:    d.Message,
		Status:     bookingStatus,
		Metadata: gModel.Metadata{
			CreatedAt:  d.CreatedAt,
			ModifiedAt: d.ModifiedAt,
			CreatedBy:  d.CreatedBy,
			ModifiedBy: d.ModifiedBy,
		},
	}

	normalize(&booking)

	return booking, nil
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

type firestoreRepository struct {
	client     *gcpFirestore.Client
	collection string
	otel       otel.Otel
}

func NewFirestore(client *gcpFirestore.Client, collection string, otel otel.Otel) Booking {
	return &firestoreRepository{
		client:     client,
		collection: collection,
		otel:       otel,
	}
}

func (r *firestoreRepository) doc(id string) *gcpFirestore.DocumentRef {
	return r.client.Collection(r.collection).Doc(id)
}

func (r *firestoreRepository) Insert(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Insert")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = r.doc(booking.ID).Create(ctx, toDocument(booking)); err != nil {
		log.Error().Err(err).Str("id", booking.ID).Msg("failed to insert booking")

		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

func (r *firestoreRepository) Get(ctx context.Context, id string) (booking model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	snapshot, err := r.doc(id).Get(ctx)
	if isNotFound(err) {
		return booking, ErrNotFound
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	var doc document
	if err = snapshot.DataTo(&doc); err != nil {
		return booking, fmt.Errorf("failed to decode booking: %w", err)
	}

	return doc.toModel(snapshot.Ref.ID)
}

func (r *firestoreRepository) ListAll(ctx context.Context) (bookings []model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ListAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	snapshots, err := r.client.Collection(r.collection).
		OrderBy(fieldCreatedAt, gcpFirestore.Desc).
		Documents(ctx).
		GetAll()
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")

		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings = make([]model.Booking, 0, len(snapshots))

	for _, snapshot := range snapshots {
		var doc document
		if err := snapshot.DataTo(&doc); err != nil {
			log.Warn().Err(err).Str("id", snapshot.Ref.ID).Msg("skipping unreadable booking")

			continue
		}

		booking, err := doc.toModel(snapshot.Ref.ID)
		if err != nil {
			log.Warn().Err(err).Msg("skipping booking with unknown status")

			continue
		}

		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *firestoreRepository) SetStatus(ctx context.Context, id string, bookingStatus model.Status) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.SetStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, err = r.doc(id).Update(ctx, []gcpFirestore.Update{
		{Path: fieldStatus, Value: bookingStatus.String()},
		{Path: fieldModifiedAt, Value: timezone.Now()},
		{Path: fieldModifiedBy, Value: constant.AdminSubject},
	})
	if isNotFound(err) {
		return ErrNotFound
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	return nil
}

func (r *firestoreRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, err = r.doc(id).Delete(ctx, gcpFirestore.Exists)
	if isNotFound(err) {
		return ErrNotFound
	}

	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	return nil
}
