package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/product"
	"storefront-be/internal/state"

	"go.uber.org/zap"
)

const (
	DefaultStorageKey  = "cart"
	defaultSaveTimeout = 2 * time.Second
)

// Storage is the durable key-value boundary the cart is persisted to.
// Load returns nil data and no error when the key does not exist.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

type Metrics struct {
	Saves        metrics.Counter
	SaveFailures metrics.Counter
}

// Store holds the cart. It is read from storage once at construction and
// written back after every committed change. Storage failures are logged
// and never surface to callers.
type Store struct {
	state       *state.Store[Cart, Action]
	storage     Storage
	key         string
	log         *zap.Logger
	saveTimeout time.Duration

	Metrics Metrics
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

func WithSaveTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.saveTimeout = d
	}
}

// NewStore builds a cart backed by storage. A nil storage keeps the cart in
// memory only.
func NewStore(ctx context.Context, storage Storage, opts ...Option) *Store {
	s := &Store{
		storage:     storage,
		key:         DefaultStorageKey,
		saveTimeout: defaultSaveTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Named("cart")
	}

	s.state = state.New(s.load(ctx), Reduce, state.WithEqual[Cart, Action](sameCart))
	if s.storage != nil {
		s.state.Subscribe(s.persist)
	}
	return s
}

func (s *Store) Snapshot() state.Snapshot[Cart] {
	return s.state.Snapshot()
}

func (s *Store) Subscribe(l state.Listener[Cart]) func() {
	return s.state.Subscribe(l)
}

// Dispatch applies a and reports whether the cart changed.
func (s *Store) Dispatch(a Action) bool {
	return s.state.Dispatch(a)
}

// AddToCart adds one unit of p in size. Products without sizes use "".
func (s *Store) AddToCart(p product.Product, size string) {
	s.Dispatch(AddToCart{Product: p, Size: size})
}

func (s *Store) RemoveFromCart(cartItemID string) {
	s.Dispatch(RemoveFromCart{CartItemID: cartItemID})
}

func (s *Store) UpdateQuantity(cartItemID string, quantity int) {
	s.Dispatch(UpdateQuantity{CartItemID: cartItemID, Quantity: quantity})
}

func (s *Store) ClearCart() {
	s.Dispatch(ClearCart{})
}

func (s *Store) load(ctx context.Context) Cart {
	if s.storage == nil {
		return Empty()
	}

	log := s.log.With(zap.String("key", s.key))

	data, err := s.storage.Load(ctx, s.key)
	if err != nil {
		log.Warn("could not load cart from storage, starting empty",
			zap.Error(fmt.Errorf("%w: %v", ErrLoadCart, err)))
		return Empty()
	}
	if data == nil {
		return Empty()
	}

	c, err := Decode(data)
	if err != nil {
		log.Warn("stored cart is malformed, starting empty", zap.Error(err))
		return Empty()
	}

	log.Debug("cart restored", zap.Int("lines", len(c.Items)))
	return c
}

func (s *Store) persist(snap state.Snapshot[Cart]) {
	log := s.log.With(zap.String("key", s.key), zap.Uint64("version", snap.Version))

	data, err := Encode(snap.State)
	if err != nil {
		s.Metrics.SaveFailures.Inc()
		log.Warn("could not encode cart", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
	defer cancel()

	if err := s.storage.Save(ctx, s.key, data); err != nil {
		s.Metrics.SaveFailures.Inc()
		log.Warn("could not save cart to storage",
			zap.Error(fmt.Errorf("%w: %v", ErrSaveCart, err)))
		return
	}
	s.Metrics.Saves.Inc()
}

// Encode serializes c in the storage format {"items":[...]}.
func Encode(c Cart) ([]byte, error) {
	if c.Items == nil {
		c.Items = []Line{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeCart, err)
	}
	return data, nil
}

// Decode parses the storage format and repairs inconsistent lines.
func Decode(data []byte) (Cart, error) {
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return Cart{}, fmt.Errorf("%w: %v", ErrDecodeCart, err)
	}
	return normalize(c), nil
}
