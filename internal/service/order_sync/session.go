package order_sync

import (
	"context"
	"fmt"

	"canteen/internal/entities"
)

// Session - вошедший пользователь и его корзина. Живет от входа до выхода,
// глобального состояния у клиента нет.
type Session struct {
	User entities.User
	Cart *entities.Cart
}

func NewSession(user entities.User) *Session {
	return &Session{
		User: user,
		Cart: entities.NewCart(),
	}
}

// Checkout отправляет корзину сессии как заказ. Корзина очищается только
// после успешного ответа, при ошибке ее можно отправить повторно.
func Checkout(ctx context.Context, session *Session, submitter OrderSubmitter) (*entities.Order, error) {
	if session == nil {
		return nil, ErrNoSession
	}
	if session.Cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	placed, err := submitter.PlaceOrder(ctx, session.User.Email, session.Cart.Lines())
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	session.Cart.Clear()
	return placed, nil
}
