package orders

import (
	"context"
	"errors"
	"fmt"

	orderRepo "github.com/m04kA/SMC-CounselingService/internal/infra/storage/order"
	"github.com/m04kA/SMC-CounselingService/internal/service/orders/models"
)

// Service сервис для чтения и административного удаления заказов
type Service struct {
	orderRepo       OrderRepository
	appointmentRepo AppointmentRepository
	slotRepo        SlotRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(
	orderRepo OrderRepository,
	appointmentRepo AppointmentRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		orderRepo:       orderRepo,
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает заказ вместе со встречами.
// Клиент имеет доступ только к собственным заказам.
func (s *Service) GetByID(ctx context.Context, orderID, clientID int64) (*models.OrderResponse, error) {
	s.logger.Info("GetByID: fetching order id=%d for client=%d", orderID, clientID)

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("GetByID: order id=%d not found", orderID)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("GetByID: repository error for order id=%d: %v", orderID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if order.ClientID != clientID {
		s.logger.Warn("GetByID: access denied for client=%d to order id=%d", clientID, orderID)
		return nil, ErrAccessDenied
	}

	appointments, err := s.appointmentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		s.logger.Error("GetByID: failed to get appointments for order id=%d: %v", orderID, err)
		return nil, fmt.Errorf("%w: GetByID - failed to get appointments: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched order id=%d with %d appointments", orderID, len(appointments))
	return models.FromDomainOrder(order, appointments), nil
}

// GetClientOrders получает заказы аутентифицированного клиента
func (s *Service) GetClientOrders(ctx context.Context, clientID int64) (*models.OrderListResponse, error) {
	s.logger.Info("GetClientOrders: fetching orders for client=%d", clientID)

	if clientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	orders, err := s.orderRepo.GetByClientID(ctx, clientID)
	if err != nil {
		s.logger.Error("GetClientOrders: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetClientOrders - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientOrders: successfully fetched %d orders for client=%d", len(orders), clientID)
	return models.FromDomainOrderList(orders), nil
}

// Delete удаляет заказ (административная операция).
// Встречи удаляются каскадно, забронированные под заказ слоты освобождаются.
// Все изменения выполняются в одной транзакции.
func (s *Service) Delete(ctx context.Context, orderID int64) error {
	s.logger.Info("Delete: deleting order id=%d", orderID)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		slotIDs, err := s.appointmentRepo.GetSlotIDsByOrderID(txCtx, orderID)
		if err != nil {
			return fmt.Errorf("%w: failed to get slot ids: %v", ErrInternal, err)
		}

		if err := s.slotRepo.Release(txCtx, slotIDs); err != nil {
			return fmt.Errorf("%w: failed to release slots: %v", ErrInternal, err)
		}

		if err := s.orderRepo.Delete(txCtx, orderID); err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("%w: failed to delete order: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrOrderNotFound) {
			s.logger.Error("Delete: failed to delete order id=%d: %v", orderID, err)
		}
		return err
	}

	s.logger.Info("Delete: successfully deleted order id=%d", orderID)
	return nil
}
