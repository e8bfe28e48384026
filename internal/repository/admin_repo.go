package repository

import (
	"context"
	"errors"
	"fmt"
	"hotel-booking/internal/model"
	"hotel-booking/pkg/utils"
	"reflect"

	"gorm.io/gorm"
)

var (
	ErrAdminViewNotFound    = errors.New("admin view not found")
	ErrAdminDeleteForbidden = errors.New("deleting from this view is not allowed")
)

// AdminView describes one table exposed in the admin panel.
type AdminView struct {
	Name       string   `json:"name"`
	Label      string   `json:"label"`
	Columns    []string `json:"columns"`
	CanDelete  bool     `json:"can_delete"`
	PageSize   int      `json:"page_size"`
	model      interface{}
	modelType  reflect.Type
	preloading []string
}

func newAdminView(name, label string, m interface{}, columns []string, canDelete bool, preload ...string) AdminView {
	return AdminView{
		Name:       name,
		Label:      label,
		Columns:    columns,
		CanDelete:  canDelete,
		PageSize:   50,
		model:      m,
		modelType:  reflect.TypeOf(m).Elem(),
		preloading: preload,
	}
}

// AdminViews lists the registered views in menu order.
func AdminViews() []AdminView {
	return []AdminView{
		newAdminView("users", "Пользователи", &model.User{}, []string{"id", "email"}, false),
		newAdminView("hotels", "Отели", &model.Hotel{}, []string{"id", "name", "location", "services", "rooms_quantity", "image_id"}, true),
		newAdminView("rooms", "Номера", &model.Room{}, []string{"id", "hotel_id", "name", "description", "price", "services", "quantity", "image_id"}, true),
		newAdminView("bookings", "Бронирования", &model.Booking{}, []string{"id", "room_id", "user_id", "date_from", "date_to", "price", "total_cost", "total_days"}, true, "Room"),
	}
}

type AdminPage struct {
	View  AdminView   `json:"view"`
	Total int64       `json:"total"`
	Items interface{} `json:"items"`
}

type AdminRepository interface {
	Views() []AdminView
	List(ctx context.Context, view string, page, pageSize int) (*AdminPage, error)
	Get(ctx context.Context, view string, id uint) (interface{}, error)
	Delete(ctx context.Context, view string, id uint) error
}

type adminRepository struct {
	db    *gorm.DB
	views map[string]AdminView
	order []AdminView
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	views := AdminViews()
	byName := make(map[string]AdminView, len(views))
	for _, v := range views {
		byName[v.Name] = v
	}
	return &adminRepository{db: db, views: byName, order: views}
}

func (r *adminRepository) Views() []AdminView {
	return r.order
}

func (r *adminRepository) view(name string) (AdminView, error) {
	v, ok := r.views[name]
	if !ok {
		return AdminView{}, fmt.Errorf("%s: %w", name, ErrAdminViewNotFound)
	}
	return v, nil
}

func (r *adminRepository) List(ctx context.Context, name string, page, pageSize int) (*AdminPage, error) {
	v, err := r.view(name)
	if err != nil {
		return nil, err
	}
	if pageSize <= 0 {
		pageSize = v.PageSize
	}
	if page < 1 {
		page = 1
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(v.model).Count(&total).Error; err != nil {
		return nil, err
	}

	items := reflect.New(reflect.SliceOf(v.modelType))
	db := r.db.WithContext(ctx).Model(v.model)
	for _, p := range v.preloading {
		db = utils.WithPreload(p)(db)
	}
	err = utils.ApplyOptions(db, utils.WithPage(pageSize, (page-1)*pageSize)).
		Order("id").
		Find(items.Interface()).Error
	if err != nil {
		return nil, err
	}
	return &AdminPage{View: v, Total: total, Items: items.Elem().Interface()}, nil
}

func (r *adminRepository) Get(ctx context.Context, name string, id uint) (interface{}, error) {
	v, err := r.view(name)
	if err != nil {
		return nil, err
	}
	item := reflect.New(v.modelType)
	db := r.db.WithContext(ctx)
	for _, p := range v.preloading {
		db = utils.WithPreload(p)(db)
	}
	if err := db.First(item.Interface(), id).Error; err != nil {
		return nil, err
	}
	return item.Interface(), nil
}

func (r *adminRepository) Delete(ctx context.Context, name string, id uint) error {
	v, err := r.view(name)
	if err != nil {
		return err
	}
	if !v.CanDelete {
		return fmt.Errorf("%s: %w", name, ErrAdminDeleteForbidden)
	}
	item := reflect.New(v.modelType).Interface()
	result := r.db.WithContext(ctx).Delete(item, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
