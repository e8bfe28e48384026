package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"hotel-booking/internal/dto"
	"hotel-booking/internal/model"
	"hotel-booking/internal/repository"
	"hotel-booking/pkg/logger"
	"io"
	"strconv"
	"strings"
	"time"

	"gorm.io/datatypes"
)

const importDelimiter = ';'

type ImportService interface {
	// Import reads a semicolon separated file with a header row into table.
	Import(ctx context.Context, table string, src io.Reader) (int64, error)
}

type importService struct {
	log        *logger.Logger
	importRepo repository.ImportRepository
}

func NewImportService(log *logger.Logger, importRepo repository.ImportRepository) ImportService {
	return &importService{log: log, importRepo: importRepo}
}

type csvRow map[string]string

func (r csvRow) str(key string) string {
	return strings.TrimSpace(r[key])
}

func (r csvRow) integer(key string) (int, error) {
	v, err := strconv.Atoi(r.str(key))
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", key, err)
	}
	return v, nil
}

func (r csvRow) optionalInt(key string) (*int, error) {
	if r.str(key) == "" {
		return nil, nil
	}
	v, err := r.integer(key)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r csvRow) date(key string) (time.Time, error) {
	v, err := time.Parse(dto.DateLayout, r.str(key))
	if err != nil {
		return time.Time{}, fmt.Errorf("column %s: %w", key, err)
	}
	return v, nil
}

// services accepts a JSON array or a comma separated list.
func (r csvRow) services(key string) (datatypes.JSON, error) {
	raw := r.str(key)
	if raw == "" {
		return datatypes.JSON("[]"), nil
	}
	if strings.HasPrefix(raw, "[") {
		normalized := strings.ReplaceAll(raw, "'", `"`)
		if !json.Valid([]byte(normalized)) {
			return nil, fmt.Errorf("column %s: invalid JSON", key)
		}
		return datatypes.JSON(normalized), nil
	}
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func readRows(src io.Reader) ([]csvRow, error) {
	reader := csv.NewReader(src)
	reader.Comma = importDelimiter
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff")))
	}

	var rows []csvRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(csvRow, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseHotel(r csvRow) (model.Hotel, error) {
	qty, err := r.integer("rooms_quantity")
	if err != nil {
		return model.Hotel{}, err
	}
	services, err := r.services("services")
	if err != nil {
		return model.Hotel{}, err
	}
	imageID, err := r.optionalInt("image_id")
	if err != nil {
		return model.Hotel{}, err
	}
	return model.Hotel{
		Name:          r.str("name"),
		Location:      r.str("location"),
		Services:      services,
		RoomsQuantity: qty,
		ImageID:       imageID,
	}, nil
}

func parseRoom(r csvRow) (model.Room, error) {
	hotelID, err := r.integer("hotel_id")
	if err != nil {
		return model.Room{}, err
	}
	price, err := r.integer("price")
	if err != nil {
		return model.Room{}, err
	}
	qty, err := r.integer("quantity")
	if err != nil {
		return model.Room{}, err
	}
	services, err := r.services("services")
	if err != nil {
		return model.Room{}, err
	}
	imageID, err := r.optionalInt("image_id")
	if err != nil {
		return model.Room{}, err
	}
	return model.Room{
		HotelID:     uint(hotelID),
		Name:        r.str("name"),
		Description: r.str("description"),
		Price:       price,
		Services:    services,
		Quantity:    qty,
		ImageID:     imageID,
	}, nil
}

func parseBooking(r csvRow) (model.Booking, error) {
	roomID, err := r.integer("room_id")
	if err != nil {
		return model.Booking{}, err
	}
	userID, err := r.integer("user_id")
	if err != nil {
		return model.Booking{}, err
	}
	from, err := r.date("date_from")
	if err != nil {
		return model.Booking{}, err
	}
	to, err := r.date("date_to")
	if err != nil {
		return model.Booking{}, err
	}
	price, err := r.integer("price")
	if err != nil {
		return model.Booking{}, err
	}
	return model.Booking{
		RoomID:   uint(roomID),
		UserID:   uint(userID),
		DateFrom: from,
		DateTo:   to,
		Price:    price,
	}, nil
}

func parseAll[T any](rows []csvRow, parse func(csvRow) (T, error)) ([]T, error) {
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		v, err := parse(row)
		if err != nil {
			// +2 accounts for the header and 1-based numbering.
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *importService) Import(ctx context.Context, table string, src io.Reader) (int64, error) {
	rows, err := readRows(src)
	if err != nil {
		s.log.WarnContext(ctx, "Failed to read import file", logger.ErrorField(err), logger.StringField("table", table))
		return 0, dto.ErrInvalidImportFile
	}

	var records interface{}
	switch table {
	case "hotels":
		records, err = parseAll(rows, parseHotel)
	case "rooms":
		records, err = parseAll(rows, parseRoom)
	case "bookings":
		records, err = parseAll(rows, parseBooking)
	default:
		return 0, dto.ErrUnknownImportTable
	}
	if err != nil {
		s.log.WarnContext(ctx, "Failed to parse import file", logger.ErrorField(err), logger.StringField("table", table))
		return 0, dto.ErrInvalidImportFile
	}
	if len(rows) == 0 {
		return 0, nil
	}

	inserted, err := s.importRepo.Insert(ctx, records)
	if err != nil {
		return 0, fmt.Errorf("failed to import %s: %w", table, err)
	}
	s.log.InfoContext(ctx, "Imported rows", logger.StringField("table", table), logger.IntField("rows", int(inserted)))
	return inserted, nil
}
