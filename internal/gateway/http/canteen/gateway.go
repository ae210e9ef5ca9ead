package canteen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"canteen/internal/dto"
	"canteen/internal/entities"
	retrierconfig "canteen/pkg/retrier"
	"canteen/pkg/retrier/backoff_adapter"

	"github.com/AlekSi/pointer"
)

const serviceName = "canteen-api"

const (
	initialInterval = 100 * time.Millisecond
	maxInterval     = 2 * time.Second
	maxElapsedTime  = 3 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
)

const maxResponseBytes = 4 << 20

// Gateway - клиент HTTP API столовой. Повторяется только Login: остальные
// вызовы либо создают данные, либо вызываются опросом, у которого свой
// интервал.
type Gateway struct {
	baseURL string
	client  httpDoer
	retrier retrier
}

func New(baseURL string, client httpDoer) *Gateway {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     isRetryable,
	}

	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		retrier: backoff_adapter.New(retryConfig),
	}
}

func (g *Gateway) Signup(ctx context.Context, name, email, password string) (*entities.User, error) {
	req := dto.UserSignupRequest{Name: name, Email: email, Password: password}

	var resp dto.UserResponse
	err := g.executeWithMetrics(ctx, "Signup", false, func(ctx context.Context) error {
		return g.do(ctx, http.MethodPost, "/api/users/signup", req, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("gateway canteen, signup: %w", err)
	}
	return dto.ToUser(&resp.User), nil
}

func (g *Gateway) Login(ctx context.Context, email string) (*entities.User, error) {
	req := dto.UserLoginRequest{Email: email}

	var resp dto.UserResponse
	err := g.executeWithMetrics(ctx, "Login", true, func(ctx context.Context) error {
		return g.do(ctx, http.MethodPost, "/api/users/login", req, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("gateway canteen, login: %w", err)
	}
	return dto.ToUser(&resp.User), nil
}

// PlaceOrder отправляет позиции корзины. totalAmount считается здесь же,
// сервер сверяет его с позициями.
func (g *Gateway) PlaceOrder(ctx context.Context, email string, items []entities.LineItem) (*entities.Order, error) {
	req := dto.OrderCreateRequest{
		UserEmail:   email,
		Items:       dto.FromLineItems(items),
		TotalAmount: pointer.ToFloat64(entities.OrderTotal(items).InexactFloat64()),
	}

	var resp dto.OrderCreateResponse
	err := g.executeWithMetrics(ctx, "PlaceOrder", false, func(ctx context.Context) error {
		return g.do(ctx, http.MethodPost, "/api/orders", req, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("gateway canteen, place order: %w", err)
	}

	placed := dto.ToOrder(&resp.NewOrder)
	return &placed, nil
}

func (g *Gateway) GetUserOrders(ctx context.Context, email string) ([]entities.Order, error) {
	var resp []dto.Order
	err := g.executeWithMetrics(ctx, "GetUserOrders", false, func(ctx context.Context) error {
		return g.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(email), nil, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("gateway canteen, get user orders: %w", err)
	}
	return dto.ToOrders(resp), nil
}

func (g *Gateway) do(ctx context.Context, method, path string, body, dst any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	limited := io.LimitReader(resp.Body, maxResponseBytes)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg dto.MessageResponse
		_ = json.NewDecoder(limited).Decode(&msg)
		return newStatusError(resp.StatusCode, msg.Message)
	}

	if err := json.NewDecoder(limited).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrUnavailable) {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// транспорт: соединение не установилось или оборвалось
	var netErr net.Error
	var urlErr *url.Error
	return errors.As(err, &netErr) || errors.As(err, &urlErr)
}

func (g *Gateway) executeWithMetrics(ctx context.Context, method string, retry bool, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	var err error
	if retry {
		err = g.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
			attempt++
			return fn(ctx)
		})
	} else {
		attempt = 1
		err = fn(ctx)
	}

	code := statusCode(err)
	GatewayRequestDuration.WithLabelValues(serviceName, method, code).Observe(time.Since(start).Seconds())
	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(serviceName, method, code).Inc()
	}

	return err
}

func statusCode(err error) string {
	if err == nil {
		return "OK"
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return strconv.Itoa(statusErr.Code)
	}
	return "TRANSPORT"
}
