// Package migrator реализует перенос данных между хранилищами:
// из реляционного в документное и обратно.
package migrator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/barber-booking/internal/lib/sl"
	"github.com/magabrotheeeer/barber-booking/internal/models"
)

// batchSize — размер страницы при переносе аккаунтов и записей.
const batchSize = 100

// SourceStore описывает контракт хранилища-источника.
type SourceStore interface {
	ListAccounts(ctx context.Context, limit, offset int) ([]*models.BarberAccount, error)
	ListServices(ctx context.Context, barberUID string, onlyActive bool) ([]*models.Service, error)
	ListAppointments(ctx context.Context, barberUID string, limit, offset int) ([]*models.Appointment, error)
}

// DestStore описывает контракт хранилища-приёмника.
type DestStore interface {
	PutAccounts(ctx context.Context, accounts []*models.BarberAccount) error
	PutServices(ctx context.Context, services []*models.Service) error
	PutAppointments(ctx context.Context, appointments []*models.Appointment) error
}

// Report — итог переноса данных.
type Report struct {
	Accounts      int      // перенесено аккаунтов
	FailedBarbers []string // барберы, чьи каталоги перенести не удалось
}

// Service переносит данные из одного хранилища в другое.
type Service struct {
	src SourceStore
	dst DestStore
	log *slog.Logger
}

// New создает новый экземпляр Service.
func New(src SourceStore, dst DestStore, log *slog.Logger) *Service {
	return &Service{src: src, dst: dst, log: log}
}

// Run переносит все данные: сначала все аккаунты, затем каталог услуг
// и записи каждого барбера. Сбой переноса каталога одного барбера
// фиксируется в отчёте и не прерывает перенос остальных.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	const op = "migrator.Run"
	report := &Report{}

	accounts, err := s.copyAccounts(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, acc := range accounts {
		if err := s.copyBarberData(ctx, acc.UID); err != nil {
			s.log.Error("failed to migrate barber data",
				slog.String("barber_uid", acc.UID), sl.Err(err))
			report.FailedBarbers = append(report.FailedBarbers, acc.UID)
		}
	}

	s.log.Info("migration finished",
		slog.Int("accounts", report.Accounts),
		slog.Int("failed_barbers", len(report.FailedBarbers)))
	return report, nil
}

func (s *Service) copyAccounts(ctx context.Context, report *Report) ([]*models.BarberAccount, error) {
	var all []*models.BarberAccount
	for offset := 0; ; offset += batchSize {
		page, err := s.src.ListAccounts(ctx, batchSize, offset)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 {
			break
		}
		if err := s.dst.PutAccounts(ctx, page); err != nil {
			return nil, err
		}
		report.Accounts += len(page)
		all = append(all, page...)
		if len(page) < batchSize {
			break
		}
	}
	return all, nil
}

func (s *Service) copyBarberData(ctx context.Context, barberUID string) error {
	services, err := s.src.ListServices(ctx, barberUID, false)
	if err != nil {
		return err
	}
	if len(services) > 0 {
		if err := s.dst.PutServices(ctx, services); err != nil {
			return err
		}
	}

	for offset := 0; ; offset += batchSize {
		page, err := s.src.ListAppointments(ctx, barberUID, batchSize, offset)
		if err != nil {
			return err
		}
		if len(page) == 0 {
			break
		}
		if err := s.dst.PutAppointments(ctx, page); err != nil {
			return err
		}
		if len(page) < batchSize {
			break
		}
	}
	return nil
}
