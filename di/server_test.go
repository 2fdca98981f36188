package di

import (
	"context"
	"testing"
	"time"

	gcpFirestore "cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	otelMocks "guesthouse/infras/otel/mocks"
)

func TestServer_close(t *testing.T) {
	t.Run("postgres deployment holds no firestore client", func(t *testing.T) {
		s := &Server{Otel: otelMocks.NewOtel()}

		assert.NotPanics(t, s.close)
	})

	t.Run("firestore client is released", func(t *testing.T) {
		client, err := gcpFirestore.NewClient(context.Background(), "guesthouse-test",
			option.WithEndpoint("127.0.0.1:1"),
			option.WithoutAuthentication(),
		)
		require.NoError(t, err)

		s := &Server{Otel: otelMocks.NewOtel(), Firestore: client}
		s.close()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		_, err = client.Collection("bookings").Doc("b1").Get(ctx)
		require.Error(t, err)
		assert.Equal(t, codes.Canceled, status.Code(err))
	})
}
