package repository

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fander/internal/domain"
)

// Document агрегат {users, products, orders}, целиком сохраняемый в один JSON-файл
type Document struct {
	Users    []domain.User    `json:"users"`
	Products []domain.Product `json:"products"`
	Orders   []domain.Order   `json:"orders"`
}

// FileStore хранилище поверх единственного JSON-документа на диске.
// Каждая операция — полное чтение, мутация в памяти и полная перезапись файла.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore открывает хранилище и сразу сеет документ по умолчанию,
// если файла нет или он не разбирается.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load читает документ с диска. Отсутствующий или битый файл заменяется
// сеянным документом, который тут же сохраняется.
func (s *FileStore) load() (*Document, error) {
	raw, err := os.ReadFile(s.path)
	if err == nil {
		var d Document
		if jsonErr := json.Unmarshal(raw, &d); jsonErr == nil {
			return &d, nil
		}
	}
	d, err := seedDocument()
	if err != nil {
		return nil, err
	}
	if err := s.save(d); err != nil {
		return nil, err
	}
	return d, nil
}

// save перезаписывает файл целиком, с отступами
func (s *FileStore) save(d *Document) error {
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}

func seedDocument() (*Document, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	if err != nil {
		return nil, err
	}
	return &Document{
		Users: []domain.User{
			{
				ID:       uuid.NewString(),
				Username: "admin",
				Password: string(hashed),
				IsAdmin:  true,
			},
		},
		Products: []domain.Product{
			{
				ID:          uuid.NewString(),
				Name:        "Jaket Kulit Rocker",
				Category:    "Jaket",
				Price:       2500000,
				Description: "Jaket kulit domba premium dengan desain klasik, tahan lama, dan nyaman dipakai.",
				ImageUrl:    "https://placehold.co/400x300/1f2937/ffffff?text=Jaket+Kulit+Rocker",
			},
			{
				ID:          uuid.NewString(),
				Name:        "Tas Selempang Pria",
				Category:    "Tas",
				Price:       950000,
				Description: "Tas kulit sapi asli dengan ruang penyimpanan luas dan desain elegan.",
				ImageUrl:    "https://placehold.co/400x300/374151/ffffff?text=Tas+Selempang+Pria",
			},
			{
				ID:          uuid.NewString(),
				Name:        "ID Card Kulit",
				Category:    "Aksesoris",
				Price:       550000,
				Description: "ID Card holder berbahan kulit premium untuk tampilan profesional dan elegan.",
				ImageUrl:    "https://placehold.co/400x300/1f2937/ffffff?text=ID+CARD+Kulit",
			},
		},
		Orders: []domain.Order{},
	}, nil
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	v := ctx.Value(txKey{})
	if v == nil {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

func (s *FileStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		s.mu.RLock()
	}
}
func (s *FileStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		s.mu.RUnlock()
	}
}
func (s *FileStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		s.mu.Lock()
	}
}
func (s *FileStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		s.mu.Unlock()
	}
}

// Ensure interfaces
var (
	_ UserRepository    = (*FileStore)(nil)
	_ ProductRepository = (*FileStore)(nil)
	_ OrderRepository   = (*FileStore)(nil)
)

// UserRepository implementation

func (s *FileStore) CreateUser(ctx context.Context, u *domain.User) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	d, err := s.load()
	if err != nil {
		return err
	}
	u.ID = uuid.NewString()
	d.Users = append(d.Users, *u)
	return s.save(d)
}

func (s *FileStore) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, u := range d.Users {
		if u.ID == id {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, u := range d.Users {
		if strings.EqualFold(u.Username, username) {
			cp := u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) UpdateUser(ctx context.Context, u *domain.User) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	d, err := s.load()
	if err != nil {
		return err
	}
	for i := range d.Users {
		if d.Users[i].ID == u.ID {
			d.Users[i] = *u
			return s.save(d)
		}
	}
	return ErrNotFound
}

// ProductRepository implementation

func (s *FileStore) CreateProduct(ctx context.Context, p *domain.Product) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	d, err := s.load()
	if err != nil {
		return err
	}
	p.ID = uuid.NewString()
	d.Products = append(d.Products, *p)
	return s.save(d)
}

func (s *FileStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, p := range d.Products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) UpdateProduct(ctx context.Context, p *domain.Product) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	d, err := s.load()
	if err != nil {
		return err
	}
	for i := range d.Products {
		if d.Products[i].ID == p.ID {
			d.Products[i] = *p
			return s.save(d)
		}
	}
	return ErrNotFound
}

func (s *FileStore) DeleteProduct(ctx context.Context, id string) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	d, err := s.load()
	if err != nil {
		return err
	}
	for i := range d.Products {
		if d.Products[i].ID == id {
			d.Products = append(d.Products[:i], d.Products[i+1:]...)
			return s.save(d)
		}
	}
	return ErrNotFound
}

func (s *FileStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, len(d.Products))
	copy(out, d.Products)
	return out, nil
}

// OrderRepository implementation

func (s *FileStore) CreateOrder(ctx context.Context, o *domain.Order) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	d, err := s.load()
	if err != nil {
		return err
	}
	o.ID = uuid.NewString()
	o.CreatedAt = time.Now().UTC()
	d.Orders = append(d.Orders, *o)
	return s.save(d)
}

func (s *FileStore) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	for _, o := range d.Orders {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) UpdateOrder(ctx context.Context, o *domain.Order) error {
	s.wlock(ctx)
	defer s.wunlock(ctx)
	d, err := s.load()
	if err != nil {
		return err
	}
	for i := range d.Orders {
		if d.Orders[i].ID == o.ID {
			d.Orders[i] = *o
			return s.save(d)
		}
	}
	return ErrNotFound
}

func (s *FileStore) ListOrders(ctx context.Context) ([]domain.Order, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	return newestFirst(d.Orders), nil
}

func (s *FileStore) ListOrdersByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	s.rlock(ctx)
	defer s.runlock(ctx)
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	mine := make([]domain.Order, 0)
	for _, o := range d.Orders {
		if o.UserID == userID {
			mine = append(mine, o)
		}
	}
	return newestFirst(mine), nil
}

// newestFirst сортирует по createdAt по убыванию; при равных метках
// порядок добавления обращается (последний добавленный — первый).
func newestFirst(orders []domain.Order) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	for i := len(orders) - 1; i >= 0; i-- {
		out = append(out, orders[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Tx manager using write lock to emulate transaction boundary
type FileTx struct{ store *FileStore }

func NewFileTx(store *FileStore) *FileTx { return &FileTx{store: store} }

var _ TxManager = (*FileTx)(nil)

func (tx *FileTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Держим блокировку записи и помечаем контекст, чтобы репозиторные методы пропускали внутренние локи
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
