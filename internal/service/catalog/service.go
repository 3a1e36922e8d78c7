// Package catalog serves the course list, course details with live
// availability, payment methods and static info pages.
package catalog

import (
	"context"

	"github.com/m3rciful/coursebot/internal/domain"
)

// Store is the persistence surface the service needs.
type Store interface {
	ListActiveCourses(ctx context.Context) ([]domain.Course, error)
	GetCourse(ctx context.Context, id int64) (*domain.Course, error)
	CountApprovedPayments(ctx context.Context, courseID int64) (int64, error)
	ListActivePaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
	GetPaymentMethod(ctx context.Context, id int64) (*domain.PaymentMethod, error)
	GetInfoPage(ctx context.Context, key string) (domain.LocalizedText, error)
}

// Service reads the sellable catalog.
type Service struct {
	store Store
}

// New builds the catalog service.
func New(store Store) *Service {
	return &Service{store: store}
}

// Details bundles a course with its current occupancy.
type Details struct {
	Course        domain.Course
	ApprovedCount int64
}

// Available reports whether the course can still be sold.
func (d Details) Available() bool {
	return d.Course.Available(d.ApprovedCount)
}

// Courses lists active courses in display order.
func (s *Service) Courses(ctx context.Context) ([]domain.Course, error) {
	return s.store.ListActiveCourses(ctx)
}

// CourseDetails fetches one course together with its approved-payment count.
func (s *Service) CourseDetails(ctx context.Context, id int64) (*Details, error) {
	course, err := s.store.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	approved, err := s.store.CountApprovedPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Details{Course: *course, ApprovedCount: approved}, nil
}

// PaymentMethods lists active payment methods in display order.
func (s *Service) PaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error) {
	return s.store.ListActivePaymentMethods(ctx)
}

// PaymentMethod fetches one method by id.
func (s *Service) PaymentMethod(ctx context.Context, id int64) (*domain.PaymentMethod, error) {
	return s.store.GetPaymentMethod(ctx, id)
}

// InfoPage fetches the localized content of a static page.
func (s *Service) InfoPage(ctx context.Context, key string) (domain.LocalizedText, error) {
	return s.store.GetInfoPage(ctx, key)
}
