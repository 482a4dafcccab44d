package services

import (
	"github.com/shringarlabs/shringar/app/models"
	"github.com/shringarlabs/shringar/app/repositories"
)

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	Orders         int64                        `json:"orders"`
	OrdersByStatus map[models.OrderStatus]int64 `json:"ordersByStatus"`
	Revenue        int64                        `json:"revenue"` // whole rupees, paid orders only
	Users          int64                        `json:"users"`
	Products       int64                        `json:"products"`
	ProductsLive   int64                        `json:"productsLive"`
	OutOfStock     []models.Product             `json:"outOfStock"`
	RecentOrders   []models.Order               `json:"recentOrders"`
}

// StatsService aggregates counters for the admin dashboard.
type StatsService struct {
	orders   *repositories.OrderRepository
	users    *repositories.UserRepository
	products *repositories.ProductRepository
}

func NewStatsService() *StatsService {
	return &StatsService{
		orders:   repositories.NewOrderRepository(),
		users:    repositories.NewUserRepository(),
		products: repositories.NewProductRepository(),
	}
}

// Dashboard gathers the summary in one pass.
func (s *StatsService) Dashboard() (DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.Orders, err = s.orders.Count(); err != nil {
		return stats, err
	}
	if stats.OrdersByStatus, err = s.orders.CountByStatus(); err != nil {
		return stats, err
	}
	if stats.Revenue, err = s.orders.Revenue(); err != nil {
		return stats, err
	}
	if stats.Users, err = s.users.Count(); err != nil {
		return stats, err
	}
	if stats.Products, err = s.products.Count(); err != nil {
		return stats, err
	}
	if stats.ProductsLive, err = s.products.CountInStock(); err != nil {
		return stats, err
	}
	if stats.OutOfStock, err = s.products.OutOfStock(); err != nil {
		return stats, err
	}
	if stats.RecentOrders, err = s.orders.Recent(5); err != nil {
		return stats, err
	}

	return stats, nil
}
