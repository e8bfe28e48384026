package service

import (
	"context"
	"hotel-booking/internal/dto"
	"hotel-booking/internal/model"
	"hotel-booking/pkg/logger"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportService_Hotels(t *testing.T) {
	repo := &fakeImportRepo{}
	s := NewImportService(logger.NewNop(), repo)

	src := "name;location;services;rooms_quantity;image_id\n" +
		"Cosmos Collection Altay Resort;Республика Алтай, Майминский район;['Wi-Fi', 'Бассейн'];23;1\n" +
		"Skala;Республика Алтай, Чемал;Wi-Fi, Парковка;15;\n"

	n, err := s.Import(context.Background(), "hotels", strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	hotels, ok := repo.records.([]model.Hotel)
	require.True(t, ok)
	assert.Equal(t, "Cosmos Collection Altay Resort", hotels[0].Name)
	assert.JSONEq(t, `["Wi-Fi", "Бассейн"]`, string(hotels[0].Services))
	require.NotNil(t, hotels[0].ImageID)
	assert.Equal(t, 1, *hotels[0].ImageID)
	assert.JSONEq(t, `["Wi-Fi", "Парковка"]`, string(hotels[1].Services))
	assert.Nil(t, hotels[1].ImageID)
}

func TestImportService_Bookings(t *testing.T) {
	repo := &fakeImportRepo{}
	s := NewImportService(logger.NewNop(), repo)

	src := "room_id;user_id;date_from;date_to;price\n1;1;2026-10-20;2026-10-22;4500\n"
	n, err := s.Import(context.Background(), "bookings", strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	bookings := repo.records.([]model.Booking)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC), bookings[0].DateFrom)
	assert.Equal(t, 4500, bookings[0].Price)
}

func TestImportService_Errors(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		src     string
		wantErr error
	}{
		{name: "unknown table", table: "payments", src: "id\n1\n", wantErr: dto.ErrUnknownImportTable},
		{name: "empty file", table: "hotels", src: "", wantErr: dto.ErrInvalidImportFile},
		{name: "bad number", table: "rooms", src: "hotel_id;name;price;quantity\n1;Deluxe;cheap;2\n", wantErr: dto.ErrInvalidImportFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewImportService(logger.NewNop(), &fakeImportRepo{})
			_, err := s.Import(context.Background(), tt.table, strings.NewReader(tt.src))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
