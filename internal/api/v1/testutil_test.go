package v1_test

import (
	"context"
	"sync"
	"time"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/billing"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context helpers — inject principal/role into context for DoCtx
// ---------------------------------------------------------------------------

func merchantCtx(merchantID int64) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, middleware.ContextKeyMerchantID, merchantID)
	ctx = context.WithValue(ctx, middleware.ContextKeyRole, domain.RoleMerchant)
	return ctx
}

func adminCtx(merchantID int64) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, middleware.ContextKeyMerchantID, merchantID)
	ctx = context.WithValue(ctx, middleware.ContextKeyRole, domain.RoleAdmin)
	return ctx
}

// ---------------------------------------------------------------------------
// Mock DataStore
// ---------------------------------------------------------------------------

type mockDataStore struct {
	merchants  domain.MerchantRepository
	products   domain.ProductRepository
	categories domain.CategoryRepository
	favorites  domain.FavoriteRepository
	visits     domain.VisitRepository
	audit      domain.AuditRepository
	payments   domain.PaymentSettingsRepository
}

func (m *mockDataStore) Merchants() domain.MerchantRepository              { return m.merchants }
func (m *mockDataStore) Products() domain.ProductRepository                { return m.products }
func (m *mockDataStore) Categories() domain.CategoryRepository             { return m.categories }
func (m *mockDataStore) Favorites() domain.FavoriteRepository              { return m.favorites }
func (m *mockDataStore) Visits() domain.VisitRepository                    { return m.visits }
func (m *mockDataStore) Audit() domain.AuditRepository                     { return m.audit }
func (m *mockDataStore) PaymentSettings() domain.PaymentSettingsRepository { return m.payments }

// ---------------------------------------------------------------------------
// Mock Auditor — counts entries so tests can assert exactly-once recording
// ---------------------------------------------------------------------------

type recordedAudit struct {
	ActorID int64
	Action  string
	Details string
	IP      string
}

type mockAuditor struct {
	mu      sync.Mutex
	entries []recordedAudit
}

func (m *mockAuditor) Record(_ context.Context, actorID int64, action, details, ip string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, recordedAudit{ActorID: actorID, Action: action, Details: details, IP: ip})
}

func (m *mockAuditor) recorded() []recordedAudit {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]recordedAudit, len(m.entries))
	copy(out, m.entries)
	return out
}

// ---------------------------------------------------------------------------
// Mock MerchantRepository
// ---------------------------------------------------------------------------

type mockMerchantRepo struct {
	createFunc        func(ctx context.Context, m *domain.Merchant) error
	getByIDFunc       func(ctx context.Context, id int64) (*domain.Merchant, error)
	getByEmailFunc    func(ctx context.Context, email string) (*domain.Merchant, error)
	updateProfileFunc func(ctx context.Context, id int64, patch domain.ProfilePatch) (*domain.Merchant, error)
	updateBannerFunc  func(ctx context.Context, id int64, bannerURL string) (*domain.Merchant, error)
	countFunc         func(ctx context.Context) (int64, error)
}

func (m *mockMerchantRepo) Create(ctx context.Context, mc *domain.Merchant) error {
	return m.createFunc(ctx, mc)
}

func (m *mockMerchantRepo) GetByID(ctx context.Context, id int64) (*domain.Merchant, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockMerchantRepo) GetByEmail(ctx context.Context, email string) (*domain.Merchant, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockMerchantRepo) UpdateProfile(ctx context.Context, id int64, patch domain.ProfilePatch) (*domain.Merchant, error) {
	return m.updateProfileFunc(ctx, id, patch)
}

func (m *mockMerchantRepo) UpdateBanner(ctx context.Context, id int64, bannerURL string) (*domain.Merchant, error) {
	return m.updateBannerFunc(ctx, id, bannerURL)
}

func (m *mockMerchantRepo) Count(ctx context.Context) (int64, error) {
	return m.countFunc(ctx)
}

// ---------------------------------------------------------------------------
// Mock ProductRepository
// ---------------------------------------------------------------------------

type mockProductRepo struct {
	createFunc          func(ctx context.Context, p *domain.Product) error
	getByIDFunc         func(ctx context.Context, id int64) (*domain.Product, error)
	listByMerchantFunc  func(ctx context.Context, merchantID int64) ([]*domain.Product, error)
	updateFunc          func(ctx context.Context, id, merchantID int64, patch domain.ProductPatch) (*domain.Product, error)
	deleteFunc          func(ctx context.Context, id, merchantID int64) error
	countFunc           func(ctx context.Context) (int64, error)
	countByMerchantFunc func(ctx context.Context) ([]domain.MerchantProductCount, error)
}

func (m *mockProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return m.createFunc(ctx, p)
}

func (m *mockProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockProductRepo) ListByMerchant(ctx context.Context, merchantID int64) ([]*domain.Product, error) {
	return m.listByMerchantFunc(ctx, merchantID)
}

func (m *mockProductRepo) Update(ctx context.Context, id, merchantID int64, patch domain.ProductPatch) (*domain.Product, error) {
	return m.updateFunc(ctx, id, merchantID, patch)
}

func (m *mockProductRepo) Delete(ctx context.Context, id, merchantID int64) error {
	return m.deleteFunc(ctx, id, merchantID)
}

func (m *mockProductRepo) Count(ctx context.Context) (int64, error) {
	return m.countFunc(ctx)
}

func (m *mockProductRepo) CountByMerchant(ctx context.Context) ([]domain.MerchantProductCount, error) {
	return m.countByMerchantFunc(ctx)
}

// ---------------------------------------------------------------------------
// Mock CategoryRepository
// ---------------------------------------------------------------------------

type mockCategoryRepo struct {
	listFunc   func(ctx context.Context) ([]*domain.Category, error)
	existsFunc func(ctx context.Context, id int64) (bool, error)
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	return m.listFunc(ctx)
}

func (m *mockCategoryRepo) Exists(ctx context.Context, id int64) (bool, error) {
	return m.existsFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock FavoriteRepository
// ---------------------------------------------------------------------------

type mockFavoriteRepo struct {
	createFunc         func(ctx context.Context, f *domain.Favorite) error
	listByMerchantFunc func(ctx context.Context, merchantID int64) ([]*domain.Favorite, error)
	listProductIDsFunc func(ctx context.Context, merchantID int64) ([]int64, error)
	deleteFunc         func(ctx context.Context, merchantID, productID int64) error
}

func (m *mockFavoriteRepo) Create(ctx context.Context, f *domain.Favorite) error {
	return m.createFunc(ctx, f)
}

func (m *mockFavoriteRepo) ListByMerchant(ctx context.Context, merchantID int64) ([]*domain.Favorite, error) {
	return m.listByMerchantFunc(ctx, merchantID)
}

func (m *mockFavoriteRepo) ListProductIDs(ctx context.Context, merchantID int64) ([]int64, error) {
	return m.listProductIDsFunc(ctx, merchantID)
}

func (m *mockFavoriteRepo) Delete(ctx context.Context, merchantID, productID int64) error {
	return m.deleteFunc(ctx, merchantID, productID)
}

// ---------------------------------------------------------------------------
// Mock VisitRepository
// ---------------------------------------------------------------------------

type mockVisitRepo struct {
	recordFunc        func(ctx context.Context, v *domain.SiteVisit) error
	countFunc         func(ctx context.Context) (int64, error)
	countSinceFunc    func(ctx context.Context, since time.Time) (int64, error)
	countByDayFunc    func(ctx context.Context, since time.Time) ([]domain.DailyVisitCount, error)
	countByDeviceFunc func(ctx context.Context, since time.Time) ([]domain.DeviceVisitCount, error)
}

func (m *mockVisitRepo) Record(ctx context.Context, v *domain.SiteVisit) error {
	return m.recordFunc(ctx, v)
}

func (m *mockVisitRepo) Count(ctx context.Context) (int64, error) {
	return m.countFunc(ctx)
}

func (m *mockVisitRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	return m.countSinceFunc(ctx, since)
}

func (m *mockVisitRepo) CountByDay(ctx context.Context, since time.Time) ([]domain.DailyVisitCount, error) {
	return m.countByDayFunc(ctx, since)
}

func (m *mockVisitRepo) CountByDevice(ctx context.Context, since time.Time) ([]domain.DeviceVisitCount, error) {
	return m.countByDeviceFunc(ctx, since)
}

// ---------------------------------------------------------------------------
// Mock AuditRepository
// ---------------------------------------------------------------------------

type mockAuditRepo struct {
	recordFunc        func(ctx context.Context, e *domain.AuditEntry) error
	listPaginatedFunc func(ctx context.Context, limit, offset int) ([]*domain.AuditEntry, int64, error)
}

func (m *mockAuditRepo) Record(ctx context.Context, e *domain.AuditEntry) error {
	return m.recordFunc(ctx, e)
}

func (m *mockAuditRepo) ListPaginated(ctx context.Context, limit, offset int) ([]*domain.AuditEntry, int64, error) {
	return m.listPaginatedFunc(ctx, limit, offset)
}

// ---------------------------------------------------------------------------
// Mock PaymentSettingsRepository
// ---------------------------------------------------------------------------

type mockPaymentRepo struct {
	getFunc         func(ctx context.Context, merchantID int64) (*domain.PaymentSettings, error)
	getPlatformFunc func(ctx context.Context) (*domain.PaymentSettings, error)
	upsertFunc      func(ctx context.Context, s *domain.PaymentSettings) error
}

func (m *mockPaymentRepo) Get(ctx context.Context, merchantID int64) (*domain.PaymentSettings, error) {
	return m.getFunc(ctx, merchantID)
}

func (m *mockPaymentRepo) GetPlatform(ctx context.Context) (*domain.PaymentSettings, error) {
	return m.getPlatformFunc(ctx)
}

func (m *mockPaymentRepo) Upsert(ctx context.Context, s *domain.PaymentSettings) error {
	return m.upsertFunc(ctx, s)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	registerFunc     func(ctx context.Context, email, password, businessName, phone string) (*domain.Merchant, error)
	loginFunc        func(ctx context.Context, email, password string) (string, string, error)
	refreshTokenFunc func(ctx context.Context, refreshToken string) (string, error)
}

func (m *mockAuthService) Register(ctx context.Context, email, password, businessName, phone string) (*domain.Merchant, error) {
	return m.registerFunc(ctx, email, password, businessName, phone)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error) {
	return m.loginFunc(ctx, email, password)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshTokenFunc(ctx, refreshToken)
}

// ---------------------------------------------------------------------------
// Mock PaymentProvider
// ---------------------------------------------------------------------------

type mockPaymentProvider struct {
	createChargeFunc func(ctx context.Context, creds *domain.PaymentSettings, req billing.ChargeRequest) (*billing.Charge, error)
	getChargeFunc    func(ctx context.Context, creds *domain.PaymentSettings, txid string) (*billing.Charge, error)
}

func (m *mockPaymentProvider) CreateCharge(ctx context.Context, creds *domain.PaymentSettings, req billing.ChargeRequest) (*billing.Charge, error) {
	return m.createChargeFunc(ctx, creds, req)
}

func (m *mockPaymentProvider) GetCharge(ctx context.Context, creds *domain.PaymentSettings, txid string) (*billing.Charge, error) {
	return m.getChargeFunc(ctx, creds, txid)
}
